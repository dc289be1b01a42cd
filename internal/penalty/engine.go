package penalty

import (
	"fmt"
	"strings"

	"github.com/verte-zerg/keystrain/internal/finger"
	"github.com/verte-zerg/keystrain/internal/layout"
)

// Fixed keystroke costs.
const (
	pressCost       = 1
	enterCost       = 2
	alternationCost = 1
)

// Fixed fingers for special keys.
const (
	spaceFinger = finger.LeftThumb
	enterFinger = finger.RightPinky
	altFinger   = finger.RightThumb
	leftShift   = finger.LeftPinky
	rightShift  = finger.RightPinky
)

// UnknownPolicy selects how characters the layout does not know are handled.
type UnknownPolicy int

const (
	// UnknownSkip ignores unrecognised characters entirely.
	UnknownSkip UnknownPolicy = iota
	// UnknownLegacy routes unrecognised characters through the left thumb
	// with no movement, charging hand alternation and counting them.
	UnknownLegacy
)

// String returns the policy name accepted by ParseUnknownPolicy.
func (p UnknownPolicy) String() string {
	if p == UnknownLegacy {
		return "legacy"
	}
	return "skip"
}

// ParseUnknownPolicy maps "skip" or "legacy" to a policy.
func ParseUnknownPolicy(name string) (UnknownPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "skip":
		return UnknownSkip, nil
	case "legacy":
		return UnknownLegacy, nil
	default:
		return UnknownSkip, fmt.Errorf("unknown policy %q (want skip or legacy)", name)
	}
}

// Option configures an Engine.
type Option func(*Engine)

// WithUnknownPolicy sets the policy for unrecognised characters.
func WithUnknownPolicy(p UnknownPolicy) Option {
	return func(e *Engine) { e.unknown = p }
}

// Engine holds the state of one analysis pass. It is not safe for concurrent
// use; create one per pass.
type Engine struct {
	table   *layout.Table
	unknown UnknownPolicy

	positions [finger.Count]*layout.Position
	prev      finger.Finger
	total     int
	perFinger [finger.Count]int
	chars     int
}

// NewEngine returns an engine with every finger on its home position.
func NewEngine(t *layout.Table, opts ...Option) *Engine {
	e := &Engine{table: t, prev: finger.None}
	for _, f := range finger.All() {
		e.positions[f] = t.HomeOf(f)
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Analyze runs a fresh engine over text.
func Analyze(text string, t *layout.Table, opts ...Option) Result {
	e := NewEngine(t, opts...)
	e.FeedString(text)
	return e.Result()
}

// FeedString processes every character of s.
func (e *Engine) FeedString(s string) {
	for _, r := range s {
		e.Feed(r)
	}
}

// Feed processes one character.
func (e *Engine) Feed(r rune) {
	class, key := Classify(r, e.table)
	switch class {
	case ClassSpace:
		e.space()
	case ClassShift:
		e.shift(key)
	case ClassAlt:
		e.alt(key)
	case ClassNewline:
		e.newline()
	case ClassPlain:
		e.plain(key)
	default:
		e.unrecognized()
	}
}

// Result returns a snapshot of the accumulated penalties.
func (e *Engine) Result() Result {
	res := NewResult()
	res.Total = e.total
	res.Chars = e.chars
	for _, f := range finger.All() {
		res.PerFinger[f] = e.perFinger[f]
	}
	return res
}

// Previous returns the finger that produced the last keystroke.
func (e *Engine) Previous() finger.Finger {
	return e.prev
}

func (e *Engine) charge(f finger.Finger, cost int) {
	if cost == 0 {
		return
	}
	e.perFinger[f] += cost
	e.total += cost
}

func (e *Engine) alternation(prev, next finger.Finger) int {
	if finger.Alternates(prev, next) {
		return alternationCost
	}
	return 0
}

// move charges f for travelling to the key of r and leaves it there.
func (e *Engine) move(f finger.Finger, r rune) {
	target, ok := e.table.Position(r)
	if !ok {
		return
	}
	e.charge(f, Distance(e.positions[f], &target))
	e.positions[f] = target.Ptr()
}

func (e *Engine) space() {
	e.charge(spaceFinger, pressCost+e.alternation(e.prev, spaceFinger))
	if e.table.Space != nil {
		e.positions[spaceFinger] = e.table.Space.Ptr()
	}
	e.prev = spaceFinger
	e.chars++
}

func (e *Engine) shift(base rune) {
	shiftFinger := leftShift
	if e.prev.Hand() == finger.Right {
		shiftFinger = rightShift
	}
	e.charge(shiftFinger, pressCost+e.alternation(e.prev, shiftFinger))

	letter := e.table.FingerFor(base)
	e.charge(letter, e.alternation(shiftFinger, letter))
	e.move(letter, base)

	e.prev = letter
	e.chars += 2
}

func (e *Engine) alt(r rune) {
	cost := pressCost
	if e.prev != finger.None && e.prev.Hand() != finger.Right {
		cost += alternationCost
	}
	e.charge(altFinger, cost)

	letter := e.table.FingerFor(r)
	if letter.Hand() != finger.Right {
		e.charge(letter, alternationCost)
	}
	e.move(letter, r)

	e.prev = letter
	e.chars += 2
}

func (e *Engine) newline() {
	e.charge(enterFinger, enterCost+e.alternation(e.prev, enterFinger))
	e.prev = enterFinger
	e.chars++
}

func (e *Engine) plain(r rune) {
	f := e.table.FingerFor(r)
	e.move(f, r)
	e.charge(f, e.alternation(e.prev, f))
	e.prev = f
	e.chars++
}

func (e *Engine) unrecognized() {
	if e.unknown != UnknownLegacy {
		return
	}
	f := layout.DefaultFinger
	e.charge(f, e.alternation(e.prev, f))
	e.prev = f
	e.chars++
}
