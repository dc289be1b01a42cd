package layout

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed layouts/*.toml
var builtinFS embed.FS

// DefaultIDs are the layouts analysed when none are requested.
var DefaultIDs = []string{"qwerty", "diktor"}

// Builtin decodes the layouts shipped with the binary, sorted by id.
func Builtin() ([]*Table, error) {
	entries, err := fs.ReadDir(builtinFS, "layouts")
	if err != nil {
		return nil, fmt.Errorf("failed to list builtin layouts: %w", err)
	}
	tables := make([]*Table, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		data, err := builtinFS.ReadFile(path.Join("layouts", name))
		if err != nil {
			return nil, fmt.Errorf("failed to read builtin layout %s: %w", name, err)
		}
		t, err := Decode(data, FormatTOML, strings.TrimSuffix(name, path.Ext(name)))
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	sortTables(tables)
	return tables, nil
}

// LoadDir decodes every TOML/YAML layout in dir. A missing directory yields
// no tables.
func LoadDir(dir string) ([]*Table, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read layout directory: %w", err)
	}
	var tables []*Table
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, ok := FormatForPath(entry.Name()); !ok {
			continue
		}
		t, err := LoadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	sortTables(tables)
	return tables, nil
}

// LoadAll returns the builtin layouts merged with the ones in userDir.
// User layouts replace builtins with the same id.
func LoadAll(userDir string) ([]*Table, error) {
	builtin, err := Builtin()
	if err != nil {
		return nil, err
	}
	user, err := LoadDir(userDir)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*Table, len(builtin)+len(user))
	for _, t := range builtin {
		byID[t.ID] = t
	}
	for _, t := range user {
		byID[t.ID] = t
	}
	out := make([]*Table, 0, len(byID))
	for _, t := range byID {
		out = append(out, t)
	}
	sortTables(out)
	return out, nil
}

// Find returns the table with the given id.
func Find(tables []*Table, id string) (*Table, error) {
	id = strings.TrimSpace(strings.ToLower(id))
	for _, t := range tables {
		if strings.ToLower(t.ID) == id {
			return t, nil
		}
	}
	ids := make([]string, len(tables))
	for i, t := range tables {
		ids[i] = t.ID
	}
	return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownLayout, id, strings.Join(ids, ", "))
}

// Select resolves ids in order. "all" selects every table.
func Select(tables []*Table, ids []string) ([]*Table, error) {
	if len(ids) == 1 && strings.EqualFold(strings.TrimSpace(ids[0]), "all") {
		return append([]*Table(nil), tables...), nil
	}
	out := make([]*Table, 0, len(ids))
	for _, id := range ids {
		if strings.TrimSpace(id) == "" {
			continue
		}
		t, err := Find(tables, id)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no layouts selected")
	}
	return out, nil
}

func sortTables(tables []*Table) {
	sort.Slice(tables, func(i, j int) bool {
		return tables[i].ID < tables[j].ID
	})
}
