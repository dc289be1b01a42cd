package report

import (
	"fmt"
	"io"
	"strings"
)

const heading = "Finger load analyzer"

var separator = strings.Repeat("=", 50)

// WriteText renders the whole report: one summary per entry followed by a
// layout comparison per resource.
func WriteText(w io.Writer, rep Report, opts Options) error {
	if err := writeLines(w, []string{heading, separator}); err != nil {
		return err
	}
	for _, resource := range rep.Resources() {
		entries := rep.ForResource(resource)
		for _, e := range entries {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
			if err := WriteSummary(w, e, opts); err != nil {
				return err
			}
			if _, err := fmt.Fprintln(w, separator); err != nil {
				return err
			}
		}
		if ComparisonTable(entries) == nil {
			continue
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
		if err := WriteComparison(w, resource, entries); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, separator); err != nil {
			return err
		}
	}
	return nil
}
