package penalty

import (
	"unicode"

	"github.com/verte-zerg/keystrain/internal/layout"
)

// Class is the kind of keystroke a character requires.
type Class int

// Character classes in dispatch priority order.
const (
	ClassUnknown Class = iota
	ClassSpace
	ClassShift
	ClassAlt
	ClassNewline
	ClassPlain
)

var classNames = [...]string{"unknown", "space", "shift", "alt", "newline", "plain"}

func (c Class) String() string {
	if c < 0 || int(c) >= len(classNames) {
		return "invalid"
	}
	return classNames[c]
}

// shifted maps symbols typed with shift to the key they share.
var shifted = map[rune]rune{
	'!': '1',
	'@': '2',
	'"': '2',
	'№': '3',
	';': '4',
	'%': '5',
	':': '6',
	'?': '7',
	'*': '8',
	'(': '9',
	')': '0',
	'_': '-',
	'+': '=',
}

// Unshift returns the key typed together with shift to produce r, and whether
// r needs shift at all.
func Unshift(r rune) (rune, bool) {
	if base, ok := shifted[r]; ok {
		return base, true
	}
	if unicode.IsUpper(r) {
		return unicode.ToLower(r), true
	}
	return r, false
}

// Classify decides how r is typed on t. The returned rune is the key to look
// up in the table: the unshifted key for ClassShift, r itself otherwise.
// A shifted character whose base key is missing from t is ClassUnknown.
func Classify(r rune, t *layout.Table) (Class, rune) {
	if r == ' ' {
		return ClassSpace, r
	}
	if base, ok := Unshift(r); ok {
		if !t.Has(base) {
			return ClassUnknown, r
		}
		return ClassShift, base
	}
	if t.IsAlt(r) {
		return ClassAlt, r
	}
	if r == '\n' {
		return ClassNewline, r
	}
	if t.Has(r) {
		return ClassPlain, r
	}
	return ClassUnknown, r
}
