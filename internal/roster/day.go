package roster

import (
	"fmt"
	"time"
)

// guardStreak is the streak length at or above which placing another work
// shift today would create a 6-in-a-row run (§4.4: "< 5" guard).
const guardStreak = 5

// TargetShiftsPerWeek and MinShiftsPerWeek gate the fill/balance phases
// (§4.7 steps 8-9).
const (
	TargetShiftsPerWeek = 5
	MinShiftsPerWeek    = 4
)

// streakEndingYesterday counts consecutive work days immediately
// preceding days[dayIndex], walking backward across the month boundary
// into the previous-month tail if necessary.
func streakEndingYesterday(rc *runContext, s *Schedule, id EngineerID, dayIndex int) int {
	streak := 0
	for i := dayIndex - 1; i >= 0; i-- {
		if !s.Get(id, DateString(rc.days[i])).IsWork() {
			return streak
		}
		streak++
	}
	// ran off the start of the month; continue into the tail
	if rc.tail != nil {
		for i := len(rc.tail.Days) - 1; i >= 0; i-- {
			ds := DateString(rc.tail.Days[i])
			if !rc.tail.ShiftOn(id, ds).IsWork() {
				break
			}
			streak++
		}
	}
	return streak
}

// canStillGetConsecutiveOff is the "can still get consecutive off" test
// (§4.4): after hypothetically assigning work on day, is there still some
// adjacent pair elsewhere in week that is either already Off or still
// Unassigned (and therefore reservable later)?
func canStillGetConsecutiveOff(s *Schedule, id EngineerID, week []time.Time, day time.Time) bool {
	// A one-day week holds no adjacent pair at all, so there is nothing
	// for this check to protect.
	if len(week) < 2 {
		return true
	}
	for i := 0; i < len(week)-1; i++ {
		d1, d2 := week[i], week[i+1]
		if d1.Equal(day) || d2.Equal(day) {
			continue
		}
		s1 := s.Get(id, DateString(d1))
		s2 := s.Get(id, DateString(d2))
		ok1 := s1 == Off || s1 == Unassigned
		ok2 := s2 == Off || s2 == Unassigned
		if ok1 && ok2 {
			return true
		}
	}
	return false
}

// dayEligible applies every §4.4 eligibility filter.
func dayEligible(rc *runContext, s *Schedule, e Engineer, week []time.Time, day time.Time, dayIndex int, shift Shift) bool {
	ds := DateString(day)
	if s.Get(e.ID, ds) != Unassigned {
		return false
	}
	weekend := IsWeekend(day)
	if !e.Preferences.Allows(shift, weekend) {
		return false
	}
	prev := rc.PrevShift(s, e.ID, dayIndex)
	if _, bad := TransitionViolation(prev, shift); bad {
		return false
	}
	if streakEndingYesterday(rc, s, e.ID, dayIndex) >= guardStreak {
		return false
	}
	if !canStillGetConsecutiveOff(s, e.ID, week, day) {
		return false
	}
	return true
}

// ApplyDayStrategy runs C5 over a single week's days in calendar order,
// using prevWeek (nil for week 0) for the consistency-scoring term.
func ApplyDayStrategy(rc *runContext, s *Schedule, week, prevWeek []time.Time, rng *RNG) []Violation {
	var violations []Violation
	core := coreEngineers(rc.input.Engineers)

	for _, day := range week {
		ds := DateString(day)
		dayIndex := indexOfDay(rc.days, day)
		weekend := IsWeekend(day)
		coverage := CoverageTable(weekend, rc.input.Coverage)

		for _, shift := range DayShiftPriority {
			need := coverage[shift].Minimum
			have := s.CountOnDay(ds, shift, core)

			type scored struct {
				engineer Engineer
				score    float64
			}
			var candidates []scored
			for _, e := range core {
				if !dayEligible(rc, s, e, week, day, dayIndex, shift) {
					continue
				}
				candidates = append(candidates, scored{
					engineer: e,
					score:    dayScore(s, e, week, prevWeek, day, shift, rng),
				})
			}

			for i := 0; i < len(candidates); i++ {
				for j := i + 1; j < len(candidates); j++ {
					if candidates[j].score > candidates[i].score {
						candidates[i], candidates[j] = candidates[j], candidates[i]
					}
				}
			}

			for _, c := range candidates {
				if have >= need {
					break
				}
				s.Set(c.engineer.ID, ds, shift)
				have++
			}

			if have < need {
				violations = append(violations, Violation{
					Kind:    KindCoverageFailure,
					Message: fmt.Sprintf("only %d/%d %s assignments on %s", have, need, shift, ds),
					Date:    ds,
					Shift:   shift,
				})
			}
		}
	}

	return violations
}

// dayScore implements §4.4's scoring formula, resolving the dominant
// -group consistency term against the caller-supplied previous week
// (nil for week 0).
func dayScore(s *Schedule, e Engineer, week, prevWeek []time.Time, day time.Time, shift Shift, rng *RNG) float64 {
	score := 0.0
	if prevWeek != nil {
		if g, ok := s.DominantGroup(e.ID, prevWeek); ok {
			if sg, _ := GroupOf(shift); sg == g {
				score += 30
			}
		}
	}
	if e.Preferences.PrefersExplicitly(shift, IsWeekend(day)) {
		score += 15
	}
	if e.Tier == TierT1 {
		score += 5
	}
	score -= 10 * float64(s.WorkCountInWeek(e.ID, week))
	score += rng.TieBreak()
	return score
}
