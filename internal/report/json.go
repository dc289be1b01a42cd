package report

import (
	"encoding/json"
	"io"

	"github.com/verte-zerg/keystrain/internal/finger"
)

type jsonDocument struct {
	Resources []jsonResource `json:"resources"`
}

type jsonResource struct {
	Path    string       `json:"path"`
	Layouts []jsonLayout `json:"layouts"`
	Ranking []string     `json:"ranking,omitempty"`
}

type jsonLayout struct {
	Layout    string                `json:"layout"`
	Name      string                `json:"name"`
	Total     int                   `json:"total"`
	Chars     int                   `json:"chars"`
	PerChar   float64               `json:"per_char"`
	PerFinger map[finger.Finger]int `json:"per_finger"`
	Error     string                `json:"error,omitempty"`
}

// WriteJSON writes the report as an indented JSON document. Per-finger maps
// are keyed by finger code.
func WriteJSON(w io.Writer, rep Report) error {
	doc := jsonDocument{Resources: make([]jsonResource, 0)}
	for _, resource := range rep.Resources() {
		entries := rep.ForResource(resource)
		out := jsonResource{Path: resource}
		for _, e := range entries {
			l := jsonLayout{
				Layout:    e.Layout,
				Name:      e.Name,
				Total:     e.Result.Total,
				Chars:     e.Result.Chars,
				PerChar:   e.Result.PerChar(),
				PerFinger: e.Result.PerFinger,
			}
			if l.PerFinger == nil {
				l.PerFinger = map[finger.Finger]int{}
			}
			if e.Err != nil {
				l.Error = e.Err.Error()
			}
			out.Layouts = append(out.Layouts, l)
		}
		for _, e := range Rank(entries) {
			out.Ranking = append(out.Ranking, e.Layout)
		}
		doc.Resources = append(doc.Resources, out)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
