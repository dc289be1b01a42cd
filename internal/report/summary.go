package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/verte-zerg/keystrain/internal/finger"
	"github.com/verte-zerg/keystrain/internal/penalty"
)

// Title returns the heading of an entry, e.g. "voina.txt (Diktor)".
func (e Entry) Title() string {
	return fmt.Sprintf("%s (%s)", e.Resource, layoutName(e))
}

// FingerTable returns the per-finger penalty table, left pinky first.
func FingerTable(res penalty.Result) []string {
	headers := []string{"Finger", "Code", "Penalty", "Share"}
	rows := make([][]string, 0, finger.Count)
	for _, f := range finger.All() {
		v := res.PerFinger[f]
		rows = append(rows, []string{
			f.String(),
			f.Code(),
			humanize.Comma(int64(v)),
			formatShare(v, res.Total),
		})
	}
	return formatTable(headers, rows, map[int]bool{2: true, 3: true})
}

// Totals returns the total penalty, character count and penalty per character.
func Totals(res penalty.Result) []string {
	return formatTable(nil, [][]string{
		{"Total penalty:", humanize.Comma(int64(res.Total))},
		{"Characters:", humanize.Comma(int64(res.Chars))},
		{"Per character:", strconv.FormatFloat(res.PerChar(), 'f', 3, 64)},
	}, map[int]bool{1: true})
}

// WriteSummary writes the heading, finger table, totals and optionally the
// bar chart of one entry.
func WriteSummary(w io.Writer, e Entry, opts Options) error {
	if _, err := fmt.Fprintf(w, "Analyzing %s...\n", e.Title()); err != nil {
		return err
	}
	if !e.Readable() {
		_, err := fmt.Fprintln(w, EmptyMessage)
		return err
	}
	lines := FingerTable(e.Result)
	lines = append(lines, "")
	lines = append(lines, Totals(e.Result)...)
	if err := writeLines(w, lines); err != nil {
		return err
	}
	if !opts.Bars {
		return nil
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	return WriteBars(w, e.Result, opts)
}

func formatShare(v, total int) string {
	if total == 0 {
		return "0.00%"
	}
	return fmt.Sprintf("%.2f%%", float64(v)/float64(total)*100)
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
