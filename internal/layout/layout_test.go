package layout

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/verte-zerg/keystrain/internal/finger"
)

func TestBuiltinLayouts(t *testing.T) {
	tables, err := Builtin()
	if err != nil {
		t.Fatalf("Builtin failed: %v", err)
	}
	var ids []string
	for _, tbl := range tables {
		ids = append(ids, tbl.ID)
	}
	if diff := cmp.Diff([]string{"diktor", "diktor-alt", "qwerty"}, ids); diff != "" {
		t.Fatalf("unexpected builtin ids (-want +got):\n%s", diff)
	}

	qwerty, err := Find(tables, "qwerty")
	if err != nil {
		t.Fatalf("find qwerty: %v", err)
	}
	pos, ok := qwerty.Position('а')
	if !ok || pos != (Position{Row: 2, Col: 4}) {
		t.Fatalf("unexpected position for а: %+v %v", pos, ok)
	}
	if got := qwerty.FingerFor('а'); got != finger.LeftIndex {
		t.Fatalf("expected left index for а, got %v", got)
	}
	if got := qwerty.FingerFor('ж'); got != finger.RightPinky {
		t.Fatalf("expected right pinky for ж, got %v", got)
	}
	if qwerty.Shift == nil || qwerty.Enter == nil || qwerty.Space == nil {
		t.Fatalf("expected all slots on qwerty")
	}
	if len(qwerty.Home) != finger.Count {
		t.Fatalf("expected %d homes, got %d", finger.Count, len(qwerty.Home))
	}

	alt, err := Find(tables, "diktor-alt")
	if err != nil {
		t.Fatalf("find diktor-alt: %v", err)
	}
	if !alt.IsAlt('#') || !alt.IsAlt('\\') {
		t.Fatalf("expected alt layer symbols on diktor-alt")
	}
	if alt.IsAlt('у') {
		t.Fatalf("base key reported as alt")
	}
}

func TestFingerForDefaultsToLeftThumb(t *testing.T) {
	tbl := &Table{
		Keys:    map[rune]Position{'x': {Row: 0, Col: 0}},
		Fingers: map[rune]finger.Finger{},
	}
	if got := tbl.FingerFor('x'); got != finger.LeftThumb {
		t.Fatalf("expected left thumb, got %v", got)
	}
	if got := LookupOr(map[string]int{"a": 1}, "b", 7); got != 7 {
		t.Fatalf("expected fallback 7, got %d", got)
	}
}

func TestDecodeYAML(t *testing.T) {
	data := []byte(`name: Tiny
fingers: [f2l, f2r]
slots:
  space: [1, 0]
home:
  f2l: [0, 0]
  f2r: [0, 1]
rows:
  - row: 0
    start: 0
    keys: "ab"
assign:
  b: f3r
`)
	tbl, err := Decode(data, FormatYAML, "tiny")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if tbl.Name != "Tiny" || tbl.ID != "tiny" {
		t.Fatalf("unexpected identity: %q %q", tbl.ID, tbl.Name)
	}
	if got := tbl.FingerFor('a'); got != finger.LeftIndex {
		t.Fatalf("expected left index for a, got %v", got)
	}
	if got := tbl.FingerFor('b'); got != finger.RightMiddle {
		t.Fatalf("expected override to right middle, got %v", got)
	}
	if tbl.Space == nil || *tbl.Space != (Position{Row: 1, Col: 0}) {
		t.Fatalf("unexpected space slot: %+v", tbl.Space)
	}
	if tbl.HomeOf(finger.LeftPinky) != nil {
		t.Fatalf("expected no home for left pinky")
	}
	if diff := cmp.Diff([]rune{'a', 'b'}, tbl.Alphabet()); diff != "" {
		t.Fatalf("unexpected alphabet (-want +got):\n%s", diff)
	}
}

func TestDecodeRejectsInvalidTables(t *testing.T) {
	cases := map[string]string{
		"duplicate key": "[[rows]]\nrow = 0\nkeys = \"aa\"\n",
		"bad finger":    "fingers = [\"f9x\"]\n[[rows]]\nrow = 0\nkeys = \"a\"\n",
		"bad slot":      "[slots]\ntab = [0, 0]\n[[rows]]\nrow = 0\nkeys = \"a\"\n",
		"short pos":     "[home]\nf2l = [0]\n[[rows]]\nrow = 0\nkeys = \"a\"\n",
		"no keys":       "name = \"empty\"\n",
		"assign absent": "[assign]\nz = \"f2l\"\n[[rows]]\nrow = 0\nkeys = \"a\"\n",
	}
	for name, data := range cases {
		if _, err := Decode([]byte(data), FormatTOML, "bad"); !errors.Is(err, ErrInvalidTable) {
			t.Fatalf("%s: expected ErrInvalidTable, got %v", name, err)
		}
	}
}

func TestLoadAllUserOverridesBuiltin(t *testing.T) {
	dir := t.TempDir()
	user := "name = \"Mine\"\n[[rows]]\nrow = 0\nkeys = \"q\"\n"
	if err := os.WriteFile(filepath.Join(dir, "qwerty.toml"), []byte(user), 0o644); err != nil {
		t.Fatalf("write layout: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644); err != nil {
		t.Fatalf("write notes: %v", err)
	}
	tables, err := LoadAll(dir)
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	qwerty, err := Find(tables, "QWERTY")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if qwerty.Name != "Mine" {
		t.Fatalf("expected user layout to win, got %q", qwerty.Name)
	}
	if len(tables) != 3 {
		t.Fatalf("expected 3 layouts, got %d", len(tables))
	}
}

func TestSelect(t *testing.T) {
	tables, err := Builtin()
	if err != nil {
		t.Fatalf("Builtin failed: %v", err)
	}
	got, err := Select(tables, []string{"qwerty", " ", "diktor"})
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if len(got) != 2 || got[0].ID != "qwerty" || got[1].ID != "diktor" {
		t.Fatalf("unexpected selection order")
	}
	all, err := Select(tables, []string{"all"})
	if err != nil || len(all) != len(tables) {
		t.Fatalf("expected all layouts, got %d %v", len(all), err)
	}
	if _, err := Select(tables, []string{"dvorak"}); !errors.Is(err, ErrUnknownLayout) {
		t.Fatalf("expected ErrUnknownLayout, got %v", err)
	}
}
