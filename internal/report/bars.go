package report

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/verte-zerg/keystrain/internal/finger"
	"github.com/verte-zerg/keystrain/internal/penalty"
)

const (
	barRune     = "█"
	minBarWidth = 10
)

// FingerColors holds one colour per finger, left pinky first.
var FingerColors = [finger.Count]string{
	"#ff6b6b", "#ffa726", "#ffee58", "#66bb6a", "#42a5f5",
	"#5c6bc0", "#ab47bc", "#ec407a", "#26c6da", "#26a69a",
}

// WriteBars draws a horizontal bar per finger scaled to the largest penalty.
func WriteBars(w io.Writer, res penalty.Result, opts Options) error {
	var renderer *lipgloss.Renderer
	if opts.Color {
		renderer = lipgloss.NewRenderer(w)
	}
	return writeLines(w, BarLines(res, opts.Width, renderer))
}

// BarLines renders the bar chart within width columns. Bars are coloured
// when renderer is non-nil.
func BarLines(res penalty.Result, width int, renderer *lipgloss.Renderer) []string {
	fingers := finger.All()
	labels := make([]string, len(fingers))
	values := make([]string, len(fingers))
	labelWidth, valueWidth, maxVal := 0, 0, 0
	for i, f := range fingers {
		labels[i] = f.String()
		values[i] = humanize.Comma(int64(res.PerFinger[f]))
		labelWidth = max(labelWidth, displayWidth(labels[i]))
		valueWidth = max(valueWidth, displayWidth(values[i]))
		maxVal = max(maxVal, res.PerFinger[f])
	}

	barWidth := width - labelWidth - valueWidth - 2
	if barWidth < minBarWidth {
		barWidth = minBarWidth
	}

	lines := make([]string, 0, len(fingers))
	for i, f := range fingers {
		n := 0
		if maxVal > 0 {
			n = int(math.Round(float64(res.PerFinger[f]) / float64(maxVal) * float64(barWidth)))
		}
		bar := strings.Repeat(barRune, n)
		if renderer != nil && n > 0 {
			bar = renderer.NewStyle().Foreground(lipgloss.Color(FingerColors[f])).Render(bar)
		}
		line := fmt.Sprintf("%s %s %s", padCell(labels[i], labelWidth, false), bar, values[i])
		lines = append(lines, line)
	}
	return lines
}
