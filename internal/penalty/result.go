package penalty

import "github.com/verte-zerg/keystrain/internal/finger"

// Result is the outcome of one analysis pass.
type Result struct {
	Total     int                   `json:"total"`
	PerFinger map[finger.Finger]int `json:"per_finger"`
	Chars     int                   `json:"chars"`
}

// NewResult returns a zero result with every finger present.
func NewResult() Result {
	per := make(map[finger.Finger]int, finger.Count)
	for _, f := range finger.All() {
		per[f] = 0
	}
	return Result{PerFinger: per}
}

// ZeroResult is the result reported for a resource that could not be read:
// no totals and an empty per-finger mapping.
func ZeroResult() Result {
	return Result{PerFinger: map[finger.Finger]int{}}
}

// Merge adds o to r and returns the sum. Neither input is modified.
func (r Result) Merge(o Result) Result {
	per := make(map[finger.Finger]int, finger.Count)
	for f, v := range r.PerFinger {
		per[f] += v
	}
	for f, v := range o.PerFinger {
		per[f] += v
	}
	return Result{
		Total:     r.Total + o.Total,
		PerFinger: per,
		Chars:     r.Chars + o.Chars,
	}
}

// FingerSum returns the sum of the per-finger penalties. It equals Total for
// every result produced by an Engine.
func (r Result) FingerSum() int {
	sum := 0
	for _, v := range r.PerFinger {
		sum += v
	}
	return sum
}

// PerChar returns the average penalty per processed character.
func (r Result) PerChar() float64 {
	if r.Chars == 0 {
		return 0
	}
	return float64(r.Total) / float64(r.Chars)
}

// Empty reports whether nothing was processed.
func (r Result) Empty() bool {
	return r.Chars == 0
}
