package reportui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/keystrain/internal/finger"
	"github.com/verte-zerg/keystrain/internal/penalty"
	"github.com/verte-zerg/keystrain/internal/report"
)

func sampleReport() report.Report {
	res := penalty.NewResult()
	res.PerFinger[finger.LeftIndex] = 12
	res.Total = 12
	res.Chars = 6

	var rep report.Report
	rep.Add(report.Entry{Resource: "a.txt", Layout: "qwerty", Name: "Qwerty", Result: res})
	rep.Add(report.Entry{Resource: "a.txt", Layout: "diktor", Name: "Diktor", Result: res})
	rep.Add(report.Entry{Resource: "b.txt", Layout: "qwerty", Name: "Qwerty", Result: penalty.ZeroResult(), Err: errors.New("boom")})
	return rep
}

func resize(m *Model, w, h int) {
	m.Update(tea.WindowSizeMsg{Width: w, Height: h})
}

func TestModelTabs(t *testing.T) {
	m := NewModel(sampleReport())
	if got := strings.Join(m.tabs, ","); got != "a.txt,b.txt,Compare" {
		t.Fatalf("unexpected tabs %q", got)
	}
	if m.View() != "" {
		t.Fatalf("expected empty view before the first resize")
	}
	resize(m, 100, 40)
	view := m.View()
	if !strings.Contains(view, "a.txt (Qwerty)") || !strings.Contains(view, "Left index") {
		t.Fatalf("expected first resource in view:\n%s", view)
	}
	if lines := strings.Split(view, "\n"); len(lines) != 40 {
		t.Fatalf("expected view to fill 40 lines, got %d", len(lines))
	}
}

func TestModelNavigation(t *testing.T) {
	m := NewModel(sampleReport())
	resize(m, 100, 40)

	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.activeTab != 1 {
		t.Fatalf("expected tab 1, got %d", m.activeTab)
	}
	if view := m.View(); !strings.Contains(view, report.EmptyMessage+": boom") {
		t.Fatalf("expected failure message:\n%s", view)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if !m.onCompare() {
		t.Fatalf("expected compare tab")
	}
	if view := m.View(); !strings.Contains(view, "Per char") || !strings.Contains(view, "Diktor") {
		t.Fatalf("expected comparison table:\n%s", view)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.activeTab != 0 {
		t.Fatalf("expected wrap to first tab, got %d", m.activeTab)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if !m.onCompare() {
		t.Fatalf("expected wrap to last tab")
	}
}

func TestModelToggleBarsAndQuit(t *testing.T) {
	m := NewModel(sampleReport())
	resize(m, 100, 60)
	if !strings.Contains(m.View(), "█") {
		t.Fatalf("expected bars by default")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("b")})
	if strings.Contains(m.View(), "█") {
		t.Fatalf("expected bars to be hidden")
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}
