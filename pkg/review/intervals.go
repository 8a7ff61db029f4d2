package review

import "time"

const (
	// MaxStage is the progression ceiling. Correct recalls at MaxStage
	// keep the stage and push the due date by the stage's interval.
	MaxStage = 8
	// FallbackIntervalDays applies to any stage missing from the table.
	// Stage 0 never reaches the lookup (it is always due immediately).
	FallbackIntervalDays = 120
)

// stageIntervals maps a review stage to the number of days until the
// word comes due again, following the Ebbinghaus forgetting curve.
var stageIntervals = map[int]int{
	1: 1,
	2: 2,
	3: 4,
	4: 7,
	5: 15,
	6: 30,
	7: 60,
	8: 120,
}

func IntervalDays(stage int) int {
	if days, ok := stageIntervals[stage]; ok {
		return days
	}
	return FallbackIntervalDays
}

// Advance returns the stage after a correct recall: min(stage+1, MaxStage).
func Advance(stage int) int {
	next := stage + 1
	if next > MaxStage {
		return MaxStage
	}
	return next
}

// Today truncates t to day granularity in UTC. Due dates carry no
// time-of-day component.
func Today(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NextDue derives the next review date for a stage. The interval is
// keyed by the stage the word just moved to, not the one it left.
func NextDue(stage int, now time.Time) time.Time {
	today := Today(now)
	if stage == 0 {
		return today
	}
	return today.AddDate(0, 0, IntervalDays(stage))
}
