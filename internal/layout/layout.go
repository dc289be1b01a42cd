// Package layout describes keyboard layouts: key positions, finger homes and
// finger assignment.
package layout

import (
	"errors"

	"github.com/verte-zerg/keystrain/internal/finger"
)

// Sentinel errors for layout lookup and decoding.
var (
	// ErrUnknownLayout is returned when a layout id is not registered.
	ErrUnknownLayout = errors.New("unknown layout")

	// ErrInvalidTable is returned when a layout file is malformed.
	ErrInvalidTable = errors.New("invalid layout table")
)

// DefaultFinger receives characters absent from the finger assignment.
const DefaultFinger = finger.LeftThumb

// Position is the (row, column) of a physical key.
type Position struct {
	Row int
	Col int
}

// Ptr returns a pointer to a copy of p.
func (p Position) Ptr() *Position {
	return &p
}

// Table is the static description of one keyboard layout.
type Table struct {
	ID      string
	Name    string
	Keys    map[rune]Position
	Home    map[finger.Finger]Position
	Fingers map[rune]finger.Finger
	Alt     map[rune]struct{}

	Space *Position
	Shift *Position
	Enter *Position
}

// LookupOr returns m[key], or fallback when key is absent.
func LookupOr[K comparable, V any](m map[K]V, key K, fallback V) V {
	if v, ok := m[key]; ok {
		return v
	}
	return fallback
}

// Position returns the key position of r.
func (t *Table) Position(r rune) (Position, bool) {
	p, ok := t.Keys[r]
	return p, ok
}

// Has reports whether the table maps r to a key.
func (t *Table) Has(r rune) bool {
	_, ok := t.Keys[r]
	return ok
}

// FingerFor returns the finger assigned to r, defaulting to the left thumb.
func (t *Table) FingerFor(r rune) finger.Finger {
	return LookupOr(t.Fingers, r, DefaultFinger)
}

// IsAlt reports whether r lives on the alt layer.
func (t *Table) IsAlt(r rune) bool {
	_, ok := t.Alt[r]
	return ok
}

// HomeOf returns the home position of f, or nil when the table has none.
func (t *Table) HomeOf(f finger.Finger) *Position {
	p, ok := t.Home[f]
	if !ok {
		return nil
	}
	return p.Ptr()
}

// Alphabet returns the base-layer characters in row-major key order.
func (t *Table) Alphabet() []rune {
	out := make([]rune, 0, len(t.Keys))
	for r := range t.Keys {
		if t.IsAlt(r) {
			continue
		}
		out = append(out, r)
	}
	sortRunesByPosition(out, t.Keys)
	return out
}
