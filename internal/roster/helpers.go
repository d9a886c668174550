package roster

import "time"

// runContext bundles the read-only state every pipeline phase and
// strategy needs: the full set of engineers, the month's days/weeks, the
// optional previous-month tail, and the resolved coverage table. Passing
// one struct instead of five parameters matches the teacher's
// `SchedulerConfig`-threaded-through-methods convention.
type runContext struct {
	input *ScheduleInput
	days  []time.Time
	weeks [][]time.Time
	tail  *TailSchedule
}

// PrevShift returns the shift assigned to id on the day immediately
// before days[dayIndex], consulting the previous-month tail when
// dayIndex is 0.
func (rc *runContext) PrevShift(s *Schedule, id EngineerID, dayIndex int) Shift {
	if dayIndex == 0 {
		return rc.tail.LastShift(id)
	}
	return s.Get(id, DateString(rc.days[dayIndex-1]))
}

// weekdayOf reports whether d is a weekday (Monday to Friday).
func weekdayOf(d time.Time) bool {
	return !IsWeekend(d)
}

// coreEngineers returns the engineers with base coverage responsibility.
func coreEngineers(engineers []Engineer) []Engineer {
	var out []Engineer
	for _, e := range engineers {
		if e.IsCore() {
			out = append(out, e)
		}
	}
	return out
}

// floaterEngineers returns up to the declared floaters (§4.6 notes a
// configuration violation, not a hard error, if more than 2 are
// declared).
func floaterEngineers(engineers []Engineer) []Engineer {
	var out []Engineer
	for _, e := range engineers {
		if e.IsFloater {
			out = append(out, e)
		}
	}
	return out
}

// trainingEngineers returns the in-training engineers.
func trainingEngineers(engineers []Engineer) []Engineer {
	var out []Engineer
	for _, e := range engineers {
		if e.InTraining {
			out = append(out, e)
		}
	}
	return out
}
