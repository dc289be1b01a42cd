// Package finger defines the ten fingers and their fixed hand partition.
package finger

import (
	"fmt"
	"strings"
)

// Finger identifies one of the ten fingers that receive penalty.
type Finger int

// Fingers ordered from the left pinky to the right pinky.
const (
	LeftPinky Finger = iota
	LeftRing
	LeftMiddle
	LeftIndex
	LeftThumb
	RightThumb
	RightIndex
	RightMiddle
	RightRing
	RightPinky
)

// None marks the absence of a finger, e.g. before the first keystroke.
const None Finger = -1

// Count is the number of fingers.
const Count = 10

// Hand is the hand a finger belongs to.
type Hand int

// Hands.
const (
	NoHand Hand = iota
	Left
	Right
)

var hands = [Count]Hand{
	Left, Left, Left, Left, Left,
	Right, Right, Right, Right, Right,
}

var codes = [Count]string{
	"f5l", "f4l", "f3l", "f2l", "f1l",
	"f1r", "f2r", "f3r", "f4r", "f5r",
}

var names = [Count]string{
	"Left pinky", "Left ring", "Left middle", "Left index", "Left thumb",
	"Right thumb", "Right index", "Right middle", "Right ring", "Right pinky",
}

// All returns every finger, left pinky first.
func All() []Finger {
	out := make([]Finger, Count)
	for i := range out {
		out[i] = Finger(i)
	}
	return out
}

// Valid reports whether f is one of the ten fingers.
func (f Finger) Valid() bool {
	return f >= 0 && f < Count
}

// Hand returns the hand of f, or NoHand for None.
func (f Finger) Hand() Hand {
	if !f.Valid() {
		return NoHand
	}
	return hands[f]
}

// Code returns the short code, e.g. "f5l" for the left pinky.
func (f Finger) Code() string {
	if !f.Valid() {
		return "none"
	}
	return codes[f]
}

// String returns a human readable name.
func (f Finger) String() string {
	if !f.Valid() {
		return "none"
	}
	return names[f]
}

// MarshalText encodes the finger as its code so it can key JSON objects.
func (f Finger) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("invalid finger %d", int(f))
	}
	return []byte(codes[f]), nil
}

// UnmarshalText decodes a finger code.
func (f *Finger) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// Parse resolves a finger code such as "f2r".
func Parse(code string) (Finger, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	for i, c := range codes {
		if c == code {
			return Finger(i), nil
		}
	}
	return None, fmt.Errorf("unknown finger %q", code)
}

// Alternates reports whether moving from prev to next switches hands.
// No switch is possible when either finger is None.
func Alternates(prev, next Finger) bool {
	ph, nh := prev.Hand(), next.Hand()
	if ph == NoHand || nh == NoHand {
		return false
	}
	return ph != nh
}
