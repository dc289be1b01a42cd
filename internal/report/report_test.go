package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/verte-zerg/keystrain/internal/finger"
	"github.com/verte-zerg/keystrain/internal/penalty"
)

func result(per map[finger.Finger]int, chars int) penalty.Result {
	res := penalty.NewResult()
	for f, v := range per {
		res.PerFinger[f] = v
		res.Total += v
	}
	res.Chars = chars
	return res
}

func sampleReport() Report {
	var rep Report
	rep.Add(Entry{
		Resource: "voina.txt", Layout: "qwerty", Name: "Qwerty",
		Result: result(map[finger.Finger]int{finger.LeftPinky: 300, finger.RightIndex: 100}, 100),
	})
	rep.Add(Entry{
		Resource: "voina.txt", Layout: "diktor", Name: "Diktor",
		Result: result(map[finger.Finger]int{finger.LeftPinky: 50, finger.RightIndex: 150}, 100),
	})
	rep.Add(Entry{
		Resource: "missing.txt", Layout: "qwerty", Name: "Qwerty",
		Result: penalty.ZeroResult(), Err: errors.New("resource not found"),
	})
	return rep
}

func TestReportGrouping(t *testing.T) {
	rep := sampleReport()
	if diff := cmp.Diff([]string{"voina.txt", "missing.txt"}, rep.Resources()); diff != "" {
		t.Fatalf("unexpected resources (-want +got):\n%s", diff)
	}
	if got := len(rep.ForResource("voina.txt")); got != 2 {
		t.Fatalf("expected 2 entries, got %d", got)
	}
	if rep.ForResource("missing.txt")[0].Readable() {
		t.Fatalf("failed entry must not be readable")
	}
}

func TestWriteSummary(t *testing.T) {
	var buf bytes.Buffer
	e := sampleReport().Entries[0]
	if err := WriteSummary(&buf, e, Options{Width: 60}); err != nil {
		t.Fatalf("WriteSummary failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Analyzing voina.txt (Qwerty)...",
		"Left pinky",
		"75.00%",
		"Total penalty:    400",
		"Characters:       100",
		"Per character:  4.000",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, barRune) {
		t.Fatalf("bars must be omitted when disabled")
	}
}

func TestWriteSummaryEmpty(t *testing.T) {
	var buf bytes.Buffer
	e := Entry{Resource: "empty.txt", Layout: "qwerty", Result: penalty.NewResult()}
	if err := WriteSummary(&buf, e, Options{Bars: true}); err != nil {
		t.Fatalf("WriteSummary failed: %v", err)
	}
	want := "Analyzing empty.txt (qwerty)...\n" + EmptyMessage + "\n"
	if buf.String() != want {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestBarLinesScale(t *testing.T) {
	res := result(map[finger.Finger]int{finger.LeftPinky: 1000, finger.LeftRing: 500}, 10)
	lines := BarLines(res, 40, nil)
	if len(lines) != finger.Count {
		t.Fatalf("expected %d lines, got %d", finger.Count, len(lines))
	}
	// 40 columns minus the "Right middle" label, the "1,000" value and two
	// separators leave 21 cells for the longest bar.
	if got := strings.Count(lines[0], barRune); got != 21 {
		t.Fatalf("expected 21 cells for the largest bar, got %d", got)
	}
	if got := strings.Count(lines[1], barRune); got != 11 {
		t.Fatalf("expected 11 cells for half the largest bar, got %d", got)
	}
	if strings.Contains(lines[2], barRune) || !strings.HasSuffix(lines[2], " 0") {
		t.Fatalf("unexpected zero bar %q", lines[2])
	}
	if got := strings.Count(BarLines(res, 0, nil)[0], barRune); got != minBarWidth {
		t.Fatalf("expected minimum bar width %d, got %d", minBarWidth, got)
	}
}

func TestComparison(t *testing.T) {
	entries := sampleReport().ForResource("voina.txt")
	ranked := Rank(entries)
	if ranked[0].Layout != "diktor" || ranked[1].Layout != "qwerty" {
		t.Fatalf("unexpected ranking: %s, %s", ranked[0].Layout, ranked[1].Layout)
	}
	lines := ComparisonTable(entries)
	if len(lines) != 3 {
		t.Fatalf("expected header and two rows, got %d", len(lines))
	}
	if !strings.Contains(lines[1], "Diktor") || !strings.HasSuffix(lines[1], "-") {
		t.Fatalf("unexpected best row %q", lines[1])
	}
	if !strings.HasSuffix(lines[2], "+100.0%") {
		t.Fatalf("unexpected second row %q", lines[2])
	}
	if ComparisonTable(entries[:1]) != nil {
		t.Fatalf("expected no comparison for a single layout")
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteText(&buf, sampleReport(), Options{Width: 60, Bars: true}); err != nil {
		t.Fatalf("WriteText failed: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, heading+"\n"+separator+"\n") {
		t.Fatalf("missing heading:\n%s", out)
	}
	if !strings.Contains(out, "Comparison for voina.txt:") {
		t.Fatalf("missing comparison:\n%s", out)
	}
	if strings.Contains(out, "Comparison for missing.txt") {
		t.Fatalf("unexpected comparison for failed resource")
	}
	if !strings.Contains(out, "Analyzing missing.txt (Qwerty)...\n"+EmptyMessage) {
		t.Fatalf("missing empty message:\n%s", out)
	}
	if !strings.Contains(out, barRune) {
		t.Fatalf("expected bar chart")
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleReport()); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}
	var doc struct {
		Resources []struct {
			Path    string `json:"path"`
			Ranking []string
			Layouts []struct {
				Layout    string         `json:"layout"`
				Total     int            `json:"total"`
				PerFinger map[string]int `json:"per_finger"`
				Error     string         `json:"error"`
			} `json:"layouts"`
		} `json:"resources"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(doc.Resources) != 2 {
		t.Fatalf("expected 2 resources, got %d", len(doc.Resources))
	}
	voina := doc.Resources[0]
	if diff := cmp.Diff([]string{"diktor", "qwerty"}, voina.Ranking); diff != "" {
		t.Fatalf("unexpected ranking (-want +got):\n%s", diff)
	}
	if voina.Layouts[0].PerFinger["f5l"] != 300 || voina.Layouts[0].PerFinger["f2r"] != 100 {
		t.Fatalf("unexpected per-finger map: %v", voina.Layouts[0].PerFinger)
	}
	missing := doc.Resources[1].Layouts[0]
	if missing.Error == "" || missing.Total != 0 || len(missing.PerFinger) != 0 {
		t.Fatalf("unexpected failed layout: %+v", missing)
	}
}

func TestRenderSVG(t *testing.T) {
	rep := sampleReport()
	entries := append(rep.ForResource("voina.txt"), rep.ForResource("missing.txt")...)
	out := string(RenderSVG("a<b>.txt", entries))
	if !strings.HasPrefix(out, "<svg ") || !strings.HasSuffix(out, "</svg>\n") {
		t.Fatalf("not an svg document")
	}
	if !strings.Contains(out, "a&lt;b&gt;.txt") {
		t.Fatalf("expected escaped title")
	}
	// one bar per finger for each readable layout
	if got := strings.Count(out, "<title>"); got != 2*finger.Count {
		t.Fatalf("expected %d bars, got %d", 2*finger.Count, got)
	}
	if !strings.Contains(out, "Diktor (200)") {
		t.Fatalf("expected legend entry")
	}
}

func TestSVGFileName(t *testing.T) {
	cases := map[string]string{
		"corpus/voina-i-mir.txt": "voina-i-mir.svg",
		"digramms":               "digramms.svg",
		"/":                      "resource.svg",
	}
	for in, want := range cases {
		if got := SVGFileName(in); got != want {
			t.Fatalf("SVGFileName(%q) = %q, want %q", in, got, want)
		}
	}
}
