package layout

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/keystrain/internal/finger"
)

// Format is a layout file encoding.
type Format string

// Supported layout file formats.
const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// fileTable mirrors the on-disk layout description.
type fileTable struct {
	Name    string            `toml:"name" yaml:"name"`
	Slots   map[string][]int  `toml:"slots" yaml:"slots"`
	Home    map[string][]int  `toml:"home" yaml:"home"`
	Fingers []string          `toml:"fingers" yaml:"fingers"`
	Rows    []fileRow         `toml:"rows" yaml:"rows"`
	Alt     []fileRow         `toml:"alt" yaml:"alt"`
	Assign  map[string]string `toml:"assign" yaml:"assign"`
}

type fileRow struct {
	Row   int    `toml:"row" yaml:"row"`
	Start int    `toml:"start" yaml:"start"`
	Keys  string `toml:"keys" yaml:"keys"`
}

// FormatForPath picks a format from the file extension.
func FormatForPath(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, true
	case ".yaml", ".yml":
		return FormatYAML, true
	default:
		return "", false
	}
}

// LoadFile reads a layout table from a TOML or YAML file. The id is the file
// name without extension.
func LoadFile(path string) (*Table, error) {
	format, ok := FormatForPath(path)
	if !ok {
		return nil, fmt.Errorf("%w: unsupported file extension %q", ErrInvalidTable, filepath.Ext(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout: %w", err)
	}
	id := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Decode(data, format, id)
}

// Decode parses a layout description.
func Decode(data []byte, format Format, id string) (*Table, error) {
	var ft fileTable
	switch format {
	case FormatTOML:
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&ft); err != nil {
			return nil, fmt.Errorf("%w: failed to decode %s: %v", ErrInvalidTable, id, err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &ft); err != nil {
			return nil, fmt.Errorf("%w: failed to decode %s: %v", ErrInvalidTable, id, err)
		}
	default:
		return nil, fmt.Errorf("%w: unknown format %q", ErrInvalidTable, format)
	}
	return ft.build(id)
}

func (ft fileTable) build(id string) (*Table, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: layout id is empty", ErrInvalidTable)
	}
	t := &Table{
		ID:      id,
		Name:    ft.Name,
		Keys:    map[rune]Position{},
		Home:    map[finger.Finger]Position{},
		Fingers: map[rune]finger.Finger{},
		Alt:     map[rune]struct{}{},
	}
	if t.Name == "" {
		t.Name = id
	}

	columns := make([]finger.Finger, len(ft.Fingers))
	for i, code := range ft.Fingers {
		f, err := finger.Parse(code)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: column %d: %v", ErrInvalidTable, id, i, err)
		}
		columns[i] = f
	}

	for name, raw := range ft.Slots {
		pos, err := toPosition(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: slot %q: %v", ErrInvalidTable, id, name, err)
		}
		switch strings.ToLower(name) {
		case "space":
			t.Space = pos.Ptr()
		case "shift":
			t.Shift = pos.Ptr()
		case "enter":
			t.Enter = pos.Ptr()
		default:
			return nil, fmt.Errorf("%w: %s: unknown slot %q", ErrInvalidTable, id, name)
		}
	}

	for code, raw := range ft.Home {
		f, err := finger.Parse(code)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: home: %v", ErrInvalidTable, id, err)
		}
		pos, err := toPosition(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: home %q: %v", ErrInvalidTable, id, code, err)
		}
		t.Home[f] = pos
	}

	for _, row := range ft.Rows {
		if err := t.addRow(row, columns, false); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidTable, id, err)
		}
	}
	for _, row := range ft.Alt {
		if err := t.addRow(row, columns, true); err != nil {
			return nil, fmt.Errorf("%w: %s: alt: %v", ErrInvalidTable, id, err)
		}
	}

	for key, code := range ft.Assign {
		runes := []rune(key)
		if len(runes) != 1 {
			return nil, fmt.Errorf("%w: %s: assign key %q must be one character", ErrInvalidTable, id, key)
		}
		if !t.Has(runes[0]) {
			return nil, fmt.Errorf("%w: %s: assign key %q is not on the layout", ErrInvalidTable, id, key)
		}
		f, err := finger.Parse(code)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: assign %q: %v", ErrInvalidTable, id, key, err)
		}
		t.Fingers[runes[0]] = f
	}

	if len(t.Keys) == 0 {
		return nil, fmt.Errorf("%w: %s: no keys defined", ErrInvalidTable, id)
	}
	return t, nil
}

func (t *Table) addRow(row fileRow, columns []finger.Finger, alt bool) error {
	col := row.Start
	for _, r := range row.Keys {
		if r == ' ' || r == '\n' || r == '\t' {
			return fmt.Errorf("row %d: whitespace is not a key", row.Row)
		}
		if t.Has(r) {
			return fmt.Errorf("row %d: duplicate key %q", row.Row, r)
		}
		t.Keys[r] = Position{Row: row.Row, Col: col}
		if col >= 0 && col < len(columns) {
			t.Fingers[r] = columns[col]
		}
		if alt {
			t.Alt[r] = struct{}{}
		}
		col++
	}
	return nil
}

func toPosition(raw []int) (Position, error) {
	if len(raw) != 2 {
		return Position{}, fmt.Errorf("expected [row, col], got %v", raw)
	}
	return Position{Row: raw[0], Col: raw[1]}, nil
}

func sortRunesByPosition(runes []rune, keys map[rune]Position) {
	sort.Slice(runes, func(i, j int) bool {
		pi, pj := keys[runes[i]], keys[runes[j]]
		if pi.Row != pj.Row {
			return pi.Row < pj.Row
		}
		if pi.Col != pj.Col {
			return pi.Col < pj.Col
		}
		return runes[i] < runes[j]
	})
}
