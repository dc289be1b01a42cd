package report

import (
	"bytes"
	"fmt"
	"html"
	"path/filepath"
	"strings"

	"github.com/verte-zerg/keystrain/internal/finger"
)

const (
	svgBarWidth    = 16.0
	svgGroupGap    = 20.0
	svgPlotHeight  = 320.0
	svgMarginLeft  = 70.0
	svgMarginRight = 30.0
	svgMarginTop   = 70.0
	svgMarginBot   = 110.0
	svgTicks       = 5
)

// LayoutColors are used for the bars of successive layouts in a grouped chart.
var LayoutColors = []string{
	"#42a5f5", "#ff6b6b", "#66bb6a", "#ffa726", "#ab47bc", "#26c6da",
}

// SVGFileName returns the chart file name for a resource.
func SVGFileName(resource string) string {
	base := strings.TrimSuffix(filepath.Base(resource), filepath.Ext(resource))
	if base == "" || base == "." || base == string(filepath.Separator) {
		base = "resource"
	}
	return base + ".svg"
}

// RenderSVG draws a grouped bar chart for one resource: a group per finger
// and a bar per readable layout.
func RenderSVG(resource string, entries []Entry) []byte {
	var bars []Entry
	for _, e := range entries {
		if e.Readable() {
			bars = append(bars, e)
		}
	}
	fingers := finger.All()
	groupWidth := float64(max(len(bars), 1))*svgBarWidth + svgGroupGap
	plotWidth := float64(len(fingers)) * groupWidth
	width := svgMarginLeft + plotWidth + svgMarginRight
	height := svgMarginTop + svgPlotHeight + svgMarginBot

	maxVal := 0
	for _, e := range bars {
		for _, f := range fingers {
			maxVal = max(maxVal, e.Result.PerFinger[f])
		}
	}
	scale := 0.0
	if maxVal > 0 {
		scale = svgPlotHeight / (float64(maxVal) * 1.15)
	}
	baseY := svgMarginTop + svgPlotHeight

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f" font-family="sans-serif">`+"\n",
		width, height, width, height)
	fmt.Fprintf(&buf, `  <rect width="%.1f" height="%.1f" fill="#ffffff"/>`+"\n", width, height)
	fmt.Fprintf(&buf, `  <text x="%.1f" y="28" text-anchor="middle" font-size="18" font-weight="bold">Finger penalties: %s</text>`+"\n",
		width/2, html.EscapeString(resource))

	renderAxis(&buf, maxVal, scale, baseY, plotWidth)

	for gi, f := range fingers {
		x0 := svgMarginLeft + float64(gi)*groupWidth + svgGroupGap/2
		for bi, e := range bars {
			v := e.Result.PerFinger[f]
			h := float64(v) * scale
			x := x0 + float64(bi)*svgBarWidth
			fmt.Fprintf(&buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="#000000" stroke-width="0.5"><title>%s %s: %d</title></rect>`+"\n",
				x, baseY-h, svgBarWidth, h, LayoutColors[bi%len(LayoutColors)],
				html.EscapeString(layoutName(e)), f.Code(), v)
		}
		cx := x0 + float64(len(bars))*svgBarWidth/2
		fmt.Fprintf(&buf, `  <text x="%.1f" y="%.1f" font-size="11" text-anchor="end" transform="rotate(-45 %.1f %.1f)">%s</text>`+"\n",
			cx, baseY+16, cx, baseY+16, html.EscapeString(f.String()))
	}

	renderLegend(&buf, bars, width)
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderAxis(buf *bytes.Buffer, maxVal int, scale, baseY, plotWidth float64) {
	fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#000000"/>`+"\n",
		svgMarginLeft, baseY, svgMarginLeft+plotWidth, baseY)
	if maxVal == 0 {
		return
	}
	step := float64(maxVal) / svgTicks
	for i := 1; i <= svgTicks; i++ {
		v := step * float64(i)
		y := baseY - v*scale
		fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#cccccc" stroke-dasharray="4 4"/>`+"\n",
			svgMarginLeft, y, svgMarginLeft+plotWidth, y)
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-size="11" text-anchor="end">%.0f</text>`+"\n",
			svgMarginLeft-6, y+4, v)
	}
}

func renderLegend(buf *bytes.Buffer, bars []Entry, width float64) {
	x := width - svgMarginRight - 160
	for i, e := range bars {
		y := 44 + float64(i)*16
		fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="10" height="10" fill="%s"/>`+"\n",
			x, y, LayoutColors[i%len(LayoutColors)])
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-size="11">%s (%d)</text>`+"\n",
			x+14, y+9, html.EscapeString(layoutName(e)), e.Result.Total)
	}
}

func layoutName(e Entry) string {
	if e.Name != "" {
		return e.Name
	}
	return e.Layout
}
