package report

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/dustin/go-humanize"
)

// Rank orders the readable entries by penalty per character, lowest first.
// Ties fall back to the total penalty and then the layout id.
func Rank(entries []Entry) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Readable() {
			out = append(out, e)
		}
	}
	slices.SortStableFunc(out, func(a, b Entry) int {
		return cmp.Or(
			cmp.Compare(a.Result.PerChar(), b.Result.PerChar()),
			cmp.Compare(a.Result.Total, b.Result.Total),
			cmp.Compare(a.Layout, b.Layout),
		)
	})
	return out
}

// ComparisonTable compares the layouts analysed for one resource. It returns
// nil when fewer than two layouts produced a result.
func ComparisonTable(entries []Entry) []string {
	ranked := Rank(entries)
	if len(ranked) < 2 {
		return nil
	}
	best := ranked[0].Result.PerChar()
	headers := []string{"#", "Layout", "Total", "Chars", "Per char", "vs best"}
	rows := make([][]string, 0, len(ranked))
	for i, e := range ranked {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			layoutName(e),
			humanize.Comma(int64(e.Result.Total)),
			humanize.Comma(int64(e.Result.Chars)),
			strconv.FormatFloat(e.Result.PerChar(), 'f', 3, 64),
			relative(e.Result.PerChar(), best),
		})
	}
	return formatTable(headers, rows, map[int]bool{0: true, 2: true, 3: true, 4: true, 5: true})
}

// WriteComparison writes the comparison table of one resource, if any.
func WriteComparison(w io.Writer, resource string, entries []Entry) error {
	lines := ComparisonTable(entries)
	if lines == nil {
		return nil
	}
	if _, err := fmt.Fprintf(w, "Comparison for %s:\n", resource); err != nil {
		return err
	}
	return writeLines(w, lines)
}

func relative(v, best float64) string {
	if best == 0 || v == best {
		return "-"
	}
	return fmt.Sprintf("+%.1f%%", (v-best)/best*100)
}
