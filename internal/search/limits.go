package search

import "time"

// TimeControl describes a clock-based time budget, the input to the simple
// schedule a SearchLimits constructor turns into a concrete per-move budget.
type TimeControl struct {
	Remaining time.Duration
	Increment time.Duration
	MoveNumber int // full-move number about to be played
}

// SearchLimits bounds a search. Any field may be left at its zero/sentinel
// "unlimited" value: Depth 0, Nodes 0, Time 0 all mean "no limit on this axis".
type SearchLimits struct {
	Depth int
	Nodes uint64
	Time  time.Duration
}

// NewSearchLimitsFromTimeControl derives a concrete Time budget from a
// TimeControl using the schedule: roughly 1/40th of the remaining clock
// before move 10, roughly 1/20th after, a small boost after move 30, plus
// the increment, clamped to leave at least 35ms on the clock and at least
// 1ms of search time.
func NewSearchLimitsFromTimeControl(tc TimeControl, depth int, nodes uint64) SearchLimits {
	var divisor time.Duration
	switch {
	case tc.MoveNumber < 10:
		divisor = 40
	case tc.MoveNumber <= 30:
		divisor = 20
	default:
		divisor = 20
	}

	budget := tc.Remaining / divisor
	if tc.MoveNumber > 30 {
		budget = budget * 5 / 4 // small boost once the position has opened up
	}
	budget += tc.Increment

	safetyFloor := 35 * time.Millisecond
	if tc.Remaining-budget < safetyFloor {
		budget = tc.Remaining - safetyFloor
	}
	if budget < time.Millisecond {
		budget = time.Millisecond
	}

	return SearchLimits{Depth: depth, Nodes: nodes, Time: budget}
}
