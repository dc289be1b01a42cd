// Package penalty computes finger-movement and hand-alternation penalties for
// text typed on a layout.
package penalty

import "github.com/verte-zerg/keystrain/internal/layout"

// Distance returns the Manhattan distance between two key positions.
// It is 0 when either position is absent or both are equal.
func Distance(from, to *layout.Position) int {
	if from == nil || to == nil {
		return 0
	}
	if *from == *to {
		return 0
	}
	return abs(from.Row-to.Row) + abs(from.Col-to.Col)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
