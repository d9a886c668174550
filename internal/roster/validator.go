package roster

import (
	"fmt"
	"time"
)

// Validate runs the full check suite (§4.8, §7). When partial is true,
// the two-consecutive-Off-per-week check is skipped. RunPipeline calls
// Validate once, in full mode, after its last phase; no partial
// validation runs between pipeline phases.
func Validate(rc *runContext, s *Schedule, partial bool) []Violation {
	var violations []Violation

	violations = append(violations, validateCoverage(rc, s)...)
	violations = append(violations, validateRest(rc, s)...)
	violations = append(violations, validateConsecutiveDays(rc, s)...)
	violations = append(violations, validateFloaters(rc, s)...)
	if !partial {
		violations = append(violations, validateOffDays(rc, s)...)
	}

	return violations
}

func validateCoverage(rc *runContext, s *Schedule) []Violation {
	var violations []Violation
	core := coreEngineers(rc.input.Engineers)
	floaters := floaterEngineers(rc.input.Engineers)

	for _, d := range rc.days {
		ds := DateString(d)
		coverage := CoverageTable(IsWeekend(d), rc.input.Coverage)
		for _, shift := range WorkShifts {
			req, ok := coverage[shift]
			if !ok {
				continue
			}
			have := s.CountOnDay(ds, shift, core) + s.CountOnDay(ds, shift, floaters)
			if have < req.Minimum {
				violations = append(violations, Violation{
					Kind:    KindCoverageViolation,
					Message: fmt.Sprintf("%s coverage on %s is %d, below minimum %d", shift, ds, have, req.Minimum),
					Date:    ds,
					Shift:   shift,
				})
			}
		}
	}
	return violations
}

func validateRest(rc *runContext, s *Schedule) []Violation {
	var violations []Violation
	for _, e := range rc.input.Engineers {
		for i, d := range rc.days {
			ds := DateString(d)
			next := s.Get(e.ID, ds)
			if !next.IsWork() {
				continue
			}
			prev := rc.PrevShift(s, e.ID, i)

			if reason, bad := TransitionViolation(prev, next); bad {
				kind := KindTransitionViolation
				if i == 0 {
					kind = KindTransitionCrossMonth
				}
				violations = append(violations, Violation{
					Kind:       kind,
					Message:    reason,
					Date:       ds,
					EngineerID: e.ID,
					Shift:      next,
				})
			}

			if prev.IsWork() {
				prevWeekend := IsWeekend(d.AddDate(0, 0, -1))
				if hours, ok := RestHours(prev, prevWeekend, next, IsWeekend(d)); ok && hours < MinRestHours {
					violations = append(violations, Violation{
						Kind:       KindRestPeriod,
						Message:    fmt.Sprintf("only %.1f hours rest before %s on %s", hours, next, ds),
						Date:       ds,
						EngineerID: e.ID,
						Shift:      next,
					})
				}
			}
		}
	}
	return violations
}

func validateConsecutiveDays(rc *runContext, s *Schedule) []Violation {
	var violations []Violation
	for _, e := range rc.input.Engineers {
		streak := 0
		if rc.tail != nil {
			streak = rc.tail.TrailingWorkStreak(e.ID)
		}
		crossedMonth := streak > 0

		for _, d := range rc.days {
			ds := DateString(d)
			if s.Get(e.ID, ds).IsWork() {
				streak++
			} else {
				streak = 0
				crossedMonth = false
				continue
			}
			if streak > MaxConsecutiveWorkDays {
				kind := KindConsecutiveDays
				if crossedMonth {
					kind = KindConsecutiveDaysCrossMonth
				}
				violations = append(violations, Violation{
					Kind:       kind,
					Message:    fmt.Sprintf("%d consecutive work days ending %s", streak, ds),
					Date:       ds,
					EngineerID: e.ID,
				})
			}
		}
	}
	return violations
}

func validateFloaters(rc *runContext, s *Schedule) []Violation {
	var violations []Violation
	floaters := floaterEngineers(rc.input.Engineers)

	for _, week := range rc.weeks {
		for _, f := range floaters {
			if float64(s.WorkCountInWeek(f.ID, week)) > MaxFloaterShiftsPerWeek {
				violations = append(violations, Violation{
					Kind:       KindFloaterOverwork,
					Message:    "floater exceeded 2.5 shifts in a week",
					EngineerID: f.ID,
				})
			}
		}

		for _, d := range week {
			ds := DateString(d)
			for i := 0; i < len(floaters); i++ {
				for j := i + 1; j < len(floaters); j++ {
					si := s.Get(floaters[i].ID, ds)
					sj := s.Get(floaters[j].ID, ds)
					if si.IsWork() && si == sj {
						violations = append(violations, Violation{
							Kind:    KindFloaterCollision,
							Message: fmt.Sprintf("both floaters assigned %s on %s", si, ds),
							Date:    ds,
							Shift:   si,
						})
					}
				}
			}
		}
	}
	return violations
}

func validateOffDays(rc *runContext, s *Schedule) []Violation {
	var violations []Violation
	core := coreEngineers(rc.input.Engineers)

	for _, week := range rc.weeks {
		for _, e := range core {
			if weekHasUnavailable(s, e.ID, week) {
				continue // exempt: not fully available this week (S3)
			}
			offCount := s.CountInWeek(e.ID, week, Off)
			if offCount < 2 {
				violations = append(violations, Violation{
					Kind:       KindOffDayViolation,
					Message:    fmt.Sprintf("only %d Off day(s) this week", offCount),
					EngineerID: e.ID,
				})
				continue
			}
			if !hasConsecutiveOffPair(s, e.ID, week) {
				violations = append(violations, Violation{
					Kind:       KindOffDayViolation,
					Message:    "two Off days this week are not consecutive",
					EngineerID: e.ID,
				})
			}
		}
	}
	return violations
}

func weekHasUnavailable(s *Schedule, id EngineerID, week []time.Time) bool {
	for _, d := range week {
		if s.Get(id, DateString(d)) == Unavailable {
			return true
		}
	}
	return false
}
