// Package report renders finger penalty results as text, JSON and SVG.
package report

import (
	"github.com/verte-zerg/keystrain/internal/penalty"
)

// EmptyMessage is printed instead of a summary for resources that produced
// no characters.
const EmptyMessage = "File is empty or could not be read"

// Entry is the result of one (resource, layout) analysis.
type Entry struct {
	Resource string
	Layout   string
	Name     string
	Result   penalty.Result
	Err      error
}

// Readable reports whether the entry carries a usable result.
func (e Entry) Readable() bool {
	return e.Err == nil && e.Result.Chars > 0
}

// Report collects the entries of a run in analysis order.
type Report struct {
	Entries []Entry
}

// Add appends an entry.
func (r *Report) Add(e Entry) {
	r.Entries = append(r.Entries, e)
}

// Resources returns the analysed resources in first-seen order.
func (r Report) Resources() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, e := range r.Entries {
		if _, ok := seen[e.Resource]; ok {
			continue
		}
		seen[e.Resource] = struct{}{}
		out = append(out, e.Resource)
	}
	return out
}

// ForResource returns the entries of one resource in analysis order.
func (r Report) ForResource(resource string) []Entry {
	var out []Entry
	for _, e := range r.Entries {
		if e.Resource == resource {
			out = append(out, e)
		}
	}
	return out
}
