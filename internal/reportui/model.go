// Package reportui provides the Bubble Tea browser over a finished run.
package reportui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/verte-zerg/keystrain/internal/report"
)

const compareTitle = "Compare"

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	titleStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
)

// Model implements the report browser: one tab per resource and a final
// tab comparing every (resource, layout) pair.
type Model struct {
	report report.Report

	tabs      []string
	activeTab int
	viewports []viewport.Model
	table     table.Model
	showBars  bool

	width  int
	height int
}

// NewModel constructs a browser over rep.
func NewModel(rep report.Report) *Model {
	m := &Model{
		report:   rep,
		showBars: true,
	}
	m.tabs = append(rep.Resources(), compareTitle)
	m.viewports = make([]viewport.Model, len(m.tabs)-1)
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
	m.table = buildTable(rep, 0, 1)
	m.renderTabContents()
	return m
}

// Run opens the browser in the alternate screen and blocks until it quits.
func Run(rep report.Report) error {
	_, err := tea.NewProgram(NewModel(rep), tea.WithAltScreen()).Run()
	return err
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderTabContents()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			return m, tea.Quit
		}
		switch msg.String() {
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l", "tab":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "b":
			m.showBars = !m.showBars
			m.renderTabContents()
			return m, nil
		case "g", "home":
			if m.onCompare() {
				m.table.GotoTop()
			} else {
				m.viewports[m.activeTab].GotoTop()
			}
			return m, nil
		case "G", "end":
			if m.onCompare() {
				m.table.GotoBottom()
			} else {
				m.viewports[m.activeTab].GotoBottom()
			}
			return m, nil
		default:
			var cmd tea.Cmd
			if m.onCompare() {
				m.table, cmd = m.table.Update(msg)
				return m, cmd
			}
			m.viewports[m.activeTab], cmd = m.viewports[m.activeTab].Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderTabs(), m.width, headerHeight)
	body := fitLines(m.renderBody(), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) onCompare() bool {
	return m.activeTab == len(m.tabs)-1
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	headerHeight = max(1, lipgloss.Height(activeNavStyle.Render("X")))
	footerHeight = 1
	bodyHeight = max(1, m.height-headerHeight-footerHeight)
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = bodyHeight
	}
	m.table.SetWidth(m.width)
	m.table.SetHeight(max(1, bodyHeight-1))
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	next := m.activeTab + delta
	if next < 0 {
		next = count - 1
	}
	if next >= count {
		next = 0
	}
	m.activeTab = next
	if m.onCompare() {
		m.table.Focus()
	} else {
		m.table.Blur()
	}
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		label := truncateLine(tab, 24)
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(label))
		} else {
			parts = append(parts, inactiveNavStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderBody() string {
	if m.onCompare() {
		if len(m.report.Entries) == 0 {
			return "No results."
		}
		return tableMutedStyle.Render(m.table.View())
	}
	return m.viewports[m.activeTab].View()
}

func (m *Model) renderFooter() string {
	help := "Nav: left/right  Scroll: up/down/pgup/pgdn  Bars: b  Quit: q"
	return headerStyle.Render(truncateLine(help, m.width))
}

func (m *Model) renderTabContents() {
	width := m.width
	if width <= 0 {
		width = 80
	}
	resources := m.tabs[:len(m.tabs)-1]
	for i, resource := range resources {
		m.viewports[i].SetContent(renderResource(m.report.ForResource(resource), width, m.showBars))
	}
}

func renderResource(entries []report.Entry, width int, bars bool) string {
	var lines []string
	for _, e := range entries {
		lines = append(lines, titleStyle.Render(e.Title()))
		if !e.Readable() {
			msg := report.EmptyMessage
			if e.Err != nil {
				msg += ": " + e.Err.Error()
			}
			lines = append(lines, errorStyle.Render(msg), "")
			continue
		}
		lines = append(lines, report.FingerTable(e.Result)...)
		lines = append(lines, "")
		lines = append(lines, report.Totals(e.Result)...)
		if bars {
			lines = append(lines, "")
			lines = append(lines, report.BarLines(e.Result, width, lipgloss.DefaultRenderer())...)
		}
		lines = append(lines, "")
	}
	if comparison := report.ComparisonTable(entries); comparison != nil {
		lines = append(lines, titleStyle.Render("Comparison"))
		lines = append(lines, comparison...)
	}
	return strings.Join(lines, "\n")
}

func buildTable(rep report.Report, width, height int) table.Model {
	columns := []table.Column{
		{Title: "Resource", Width: 24},
		{Title: "Layout", Width: 16},
		{Title: "Total", Width: 12},
		{Title: "Chars", Width: 12},
		{Title: "Per char", Width: 9},
	}
	rows := make([]table.Row, 0, len(rep.Entries))
	for _, resource := range rep.Resources() {
		for _, e := range report.Rank(rep.ForResource(resource)) {
			rows = append(rows, table.Row{
				truncateLine(e.Resource, 24),
				truncateLine(e.Name, 16),
				humanize.Comma(int64(e.Result.Total)),
				humanize.Comma(int64(e.Result.Chars)),
				strconv.FormatFloat(e.Result.PerChar(), 'f', 3, 64),
			})
		}
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(max(1, height-1)),
	)
	t.SetWidth(width)
	t.SetStyles(tableStyles())
	return t
}

func tableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
