package schedule

import (
	"github.com/carebell/carebell/internal/model"
)

// FindCurrentIndex returns the index of the block containing now. The
// answer is defined even when no block covers the current minute: the
// next upcoming block wins, then the most recent past block, then 0.
// A block whose start lies after its end is treated as wrapping past
// midnight.
func FindCurrentIndex(nowMin int, blocks []model.BuiltBlock) int {
	for i := range blocks {
		if blocks[i].Contains(nowMin) {
			return i
		}
	}

	next := -1
	prev := -1
	for i := range blocks {
		start := blocks[i].StartMin
		if start >= nowMin && (next == -1 || start < blocks[next].StartMin) {
			next = i
		}
		if start <= nowMin && (prev == -1 || start > blocks[prev].StartMin) {
			prev = i
		}
	}

	switch {
	case next != -1:
		return next
	case prev != -1:
		return prev
	default:
		return 0
	}
}
