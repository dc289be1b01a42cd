// Package model defines shared data structures.
package model

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// AnalyzeConfig defines the settings of an analysis run.
type AnalyzeConfig struct {
	Files      []string
	Manifest   string
	Layouts    []string
	Format     string
	SVGDir     string
	TUI        bool
	ChunkSize  int64
	Threshold  int64
	Encoding   string
	CarryState bool
	Unknown    string
	Bars       bool
	Color      bool
}

// GenConfig defines synthetic text settings.
type GenConfig struct {
	Layout    string
	Size      int64
	Seed      int64
	MinLen    int
	MaxLen    int
	CapsPct   float64
	PunctPct  float64
	PunctSet  string
	LineWords int
	Output    string
}
