package roster

import "time"

// weekOneTemplate copies the dominant-group pattern from prevWeek into
// every still-Unassigned day of week, for each core engineer, subject to
// transition legality; falls back to any transition-compatible shift
// from the same group (§4.7 step 5).
func weekOneTemplate(rc *runContext, s *Schedule, week, prevWeek []time.Time) {
	core := coreEngineers(rc.input.Engineers)
	for _, e := range core {
		group, ok := s.DominantGroup(e.ID, prevWeek)
		if !ok {
			continue
		}
		candidateShift := groupRepresentative(group)

		for _, day := range week {
			ds := DateString(day)
			if s.Get(e.ID, ds) != Unassigned {
				continue
			}
			dayIndex := indexOfDay(rc.days, day)
			prev := rc.PrevShift(s, e.ID, dayIndex)
			weekend := IsWeekend(day)

			if e.Preferences.Allows(candidateShift, weekend) {
				if _, bad := TransitionViolation(prev, candidateShift); !bad {
					s.Set(e.ID, ds, candidateShift)
					continue
				}
			}
			// fall back to any shift in the same group that is both
			// preference-compatible and transition-legal.
			for _, alt := range shiftsInGroup(group) {
				if !e.Preferences.Allows(alt, weekend) {
					continue
				}
				if _, bad := TransitionViolation(prev, alt); bad {
					continue
				}
				s.Set(e.ID, ds, alt)
				break
			}
		}
	}
}

func groupRepresentative(g ShiftGroup) Shift {
	switch g {
	case GroupDayEarly:
		return Early
	case GroupDayLate:
		return Late
	case GroupNight:
		return Night
	}
	return Unassigned
}

func shiftsInGroup(g ShiftGroup) []Shift {
	var out []Shift
	for _, s := range WorkShifts {
		if sg, ok := GroupOf(s); ok && sg == g {
			out = append(out, s)
		}
	}
	return out
}

// initialiseGrid is pipeline phase 1: every slot starts Unassigned; hard
// unavailability becomes Unavailable, except predetermined_off which
// becomes Off; approved time_off requests and fixed-off weekdays are
// merged in at this point too.
func initialiseGrid(rc *runContext, s *Schedule) {
	input := rc.input

	// Approved time_off requests are merged against a local lookup rather
	// than written into the engineer's own UnavailableDays map, which the
	// scheduler must treat as read-only input (§3, §5).
	requestedOff := map[string]map[string]bool{}
	for _, req := range input.ApprovedRequests {
		if req.Type != RequestTimeOff {
			continue
		}
		id := req.EngineerID.String()
		if requestedOff[id] == nil {
			requestedOff[id] = map[string]bool{}
		}
		for _, ds := range req.Dates {
			requestedOff[id][ds] = true
		}
	}

	for _, e := range input.Engineers {
		for _, d := range rc.days {
			ds := DateString(d)

			if e.IsFixedOff(d) {
				s.Set(e.ID, ds, Off)
				continue
			}

			tag, blocked := e.UnavailabilityAt(ds)
			if !blocked && requestedOff[e.ID.String()][ds] {
				tag, blocked = TagUnavailable, true
			}
			if blocked {
				if tag.IsPredeterminedOff() {
					s.Set(e.ID, ds, Off)
				} else {
					s.Set(e.ID, ds, Unavailable)
				}
			}
		}
	}
}

// applyTraining is pipeline phase 3.
func applyTraining(rc *runContext, s *Schedule) {
	for _, e := range trainingEngineers(rc.input.Engineers) {
		for _, d := range rc.days {
			ds := DateString(d)
			if s.Get(e.ID, ds) != Unassigned {
				continue
			}
			if IsWeekend(d) {
				s.Set(e.ID, ds, Off)
			} else {
				s.Set(e.ID, ds, Training)
			}
		}
	}
}

// fillRemaining is pipeline phase 8: underworked engineers (week work
// count < TargetShiftsPerWeek) are offered a still-short shift first;
// any residual Unassigned becomes Off.
func fillRemaining(rc *runContext, s *Schedule) {
	core := coreEngineers(rc.input.Engineers)

	for _, week := range rc.weeks {
		underworked := make([]Engineer, 0, len(core))
		for _, e := range core {
			if s.WorkCountInWeek(e.ID, week) < TargetShiftsPerWeek {
				underworked = append(underworked, e)
			}
		}

		for _, day := range week {
			ds := DateString(day)
			weekend := IsWeekend(day)
			coverage := CoverageTable(weekend, rc.input.Coverage)
			dayIndex := indexOfDay(rc.days, day)

			for _, shift := range DayShiftPriority {
				have := s.CountOnDay(ds, shift, core)
				need := coverage[shift].Minimum
				if have >= need {
					continue
				}
				for _, e := range underworked {
					if s.Get(e.ID, ds) != Unassigned {
						continue
					}
					if !e.Preferences.Allows(shift, weekend) {
						continue
					}
					prev := rc.PrevShift(s, e.ID, dayIndex)
					if _, bad := TransitionViolation(prev, shift); bad {
						continue
					}
					s.Set(e.ID, ds, shift)
					have++
					if have >= need {
						break
					}
				}
			}
		}
	}

	for _, e := range rc.input.Engineers {
		for _, d := range rc.days {
			ds := DateString(d)
			if s.Get(e.ID, ds) == Unassigned {
				s.Set(e.ID, ds, Off)
			}
		}
	}
}

// balanceWorkload is pipeline phase 9: swap shifts from engineers above
// TargetShiftsPerWeek to engineers below MinShiftsPerWeek when transition
// and streak rules permit.
func balanceWorkload(rc *runContext, s *Schedule) {
	core := coreEngineers(rc.input.Engineers)

	for _, week := range rc.weeks {
		for _, day := range week {
			ds := DateString(day)
			dayIndex := indexOfDay(rc.days, day)
			weekend := IsWeekend(day)

			for _, over := range core {
				if s.WorkCountInWeek(over.ID, week) <= TargetShiftsPerWeek {
					continue
				}
				shift := s.Get(over.ID, ds)
				if !shift.IsWork() {
					continue
				}

				for _, under := range core {
					if under.ID.Equals(over.ID) {
						continue
					}
					if s.WorkCountInWeek(under.ID, week) >= MinShiftsPerWeek {
						continue
					}
					if s.Get(under.ID, ds) != Off {
						continue
					}
					if !under.Preferences.Allows(shift, weekend) {
						continue
					}
					prevUnder := rc.PrevShift(s, under.ID, dayIndex)
					if _, bad := TransitionViolation(prevUnder, shift); bad {
						continue
					}
					if dayIndex+1 < len(rc.days) {
						if _, bad := TransitionViolation(shift, s.Get(under.ID, DateString(rc.days[dayIndex+1]))); bad {
							continue
						}
					}
					run := streakEndingYesterday(rc, s, under.ID, dayIndex) + 1
					for j := dayIndex + 1; j < len(rc.days) && s.Get(under.ID, DateString(rc.days[j])).IsWork(); j++ {
						run++
					}
					if run > MaxConsecutiveWorkDays {
						continue
					}

					s.Set(over.ID, ds, Off)
					s.Set(under.ID, ds, shift)
					break
				}
			}
		}
	}
}

// rationalityPass is pipeline phase 10: ensures two-Off weeks are
// consecutive, breaks remaining >6 streaks, and repairs remaining
// transition violations, including across the month boundary via the
// tail.
func rationalityPass(rc *runContext, s *Schedule) {
	core := coreEngineers(rc.input.Engineers)

	for _, e := range core {
		for _, week := range rc.weeks {
			enforceConsecutiveOff(s, e, week)
		}
	}

	for _, e := range core {
		breakLongStreaks(rc, s, e)
	}

	for _, e := range core {
		repairTransitions(rc, s, e)
	}
}

// enforceConsecutiveOff attempts a swap with a work-day neighbour so that
// an engineer's two weekly Off days become consecutive, if they are not
// already.
func enforceConsecutiveOff(s *Schedule, e Engineer, week []time.Time) {
	if s.CountInWeek(e.ID, week, Off) < 2 || hasConsecutiveOffPair(s, e.ID, week) {
		return
	}

	offIdx := -1
	for i, d := range week {
		if s.Get(e.ID, DateString(d)) == Off {
			offIdx = i
			break
		}
	}
	if offIdx < 0 {
		return
	}

	if offIdx+1 < len(week) && s.Get(e.ID, DateString(week[offIdx+1])).IsWork() {
		neighbourDate := DateString(week[offIdx+1])
		neighbourShift := s.Get(e.ID, neighbourDate)
		for i := offIdx + 2; i < len(week); i++ {
			if s.Get(e.ID, DateString(week[i])) == Off {
				s.Set(e.ID, DateString(week[i]), neighbourShift)
				s.Set(e.ID, neighbourDate, Off)
				return
			}
		}
	}
}

// breakLongStreaks converts one day of any remaining >6-consecutive-work
// run to Off.
func breakLongStreaks(rc *runContext, s *Schedule, e Engineer) {
	streak := 0
	for i, d := range rc.days {
		ds := DateString(d)
		if s.Get(e.ID, ds).IsWork() {
			streak++
		} else {
			streak = 0
			continue
		}
		if streak > MaxConsecutiveWorkDays {
			s.Set(e.ID, ds, Off)
			streak = 0
		}
		_ = i
	}
}

// repairTransitions substitutes a transition-compatible shift (or Off)
// for any remaining forbidden (prev, next) adjacent pair, including
// across the month boundary.
func repairTransitions(rc *runContext, s *Schedule, e Engineer) {
	for i, d := range rc.days {
		ds := DateString(d)
		next := s.Get(e.ID, ds)
		if !next.IsWork() {
			continue
		}
		prev := rc.PrevShift(s, e.ID, i)
		if _, bad := TransitionViolation(prev, next); !bad {
			continue
		}

		weekend := IsWeekend(d)
		replaced := false
		for _, alt := range WorkShifts {
			if alt == next {
				continue
			}
			if !e.Preferences.Allows(alt, weekend) {
				continue
			}
			if _, bad := TransitionViolation(prev, alt); bad {
				continue
			}
			s.Set(e.ID, ds, alt)
			replaced = true
			break
		}
		if !replaced {
			s.Set(e.ID, ds, Off)
		}
	}
}

// RunPipeline executes the exact 11-phase sequence of §4.7 once and
// returns the resulting schedule plus any violations accumulated along
// the way. This is the body of a single driver iteration.
func RunPipeline(rc *runContext, rng *RNG) (*Schedule, []Violation) {
	s := NewSchedule(rc.input.Engineers, rc.days)
	var violations []Violation

	// 1. Initialise grid.
	initialiseGrid(rc, s)

	// 2. Reserve Off days (first pass).
	violations = append(violations, reserveOrRepairOffDays(rc, s, false)...)

	// 3. Training shifts.
	applyTraining(rc, s)

	// 4. Night cohorts.
	violations = append(violations, ApplyNightStrategy(rc, s)...)

	// 5. Week-by-week day shifts, with week-1 template copy for week k>0.
	for i, week := range rc.weeks {
		var prevWeek []time.Time
		if i > 0 {
			prevWeek = rc.weeks[i-1]
			weekOneTemplate(rc, s, week, prevWeek)
		}
		violations = append(violations, ApplyDayStrategy(rc, s, week, prevWeek, rng)...)
	}

	// 6. Repair Off days (second pass).
	violations = append(violations, reserveOrRepairOffDays(rc, s, true)...)

	// 7. Floaters.
	violations = append(violations, ApplyFloaterStrategy(rc, s)...)

	// 8. Fill remaining Unassigned.
	fillRemaining(rc, s)

	// 9. Workload balance.
	balanceWorkload(rc, s)

	// 10. Rationality pass.
	rationalityPass(rc, s)

	// 11. Validate.
	validationViolations := Validate(rc, s, false)
	violations = append(violations, validationViolations...)

	return s, violations
}
