package roster

// MaxFloaters is the hard cap on floater headcount the strategy assumes
// (§4.6). A configuration declaring more floaters than this degrades
// rather than failing: ApplyFloaterStrategy uses only the first
// MaxFloaters floaters and records a KindConfiguration violation.
var MaxFloaters = 2

// MaxFloaterShiftsPerWeek is intentionally a float, not an int:
// validateFloaters compares the weekly count with `>`, so whole-number
// counts of 0, 1, 2 are allowed and 3 is a violation (§9 open question).
// ApplyFloaterStrategy skips a floater whose weekly count is already
// `>=` this cap. Keep both literal comparisons exactly as written; do not
// round to an integer cap.
var MaxFloaterShiftsPerWeek = 2.5

// ApplyFloaterStrategy runs C7 over the whole month. Floaters fill gaps
// toward each shift's preferred (not minimum) headcount; any residual
// unassigned floater slot becomes Off.
func ApplyFloaterStrategy(rc *runContext, s *Schedule) []Violation {
	floaters := floaterEngineers(rc.input.Engineers)

	var violations []Violation
	if len(floaters) > MaxFloaters {
		violations = append(violations, Violation{
			Kind:    KindConfiguration,
			Message: "more than 2 floaters declared; only the first 2 are used for supplemental coverage",
		})
		floaters = floaters[:MaxFloaters]
	}

	core := coreEngineers(rc.input.Engineers)

	for _, week := range rc.weeks {
		for _, day := range week {
			ds := DateString(day)
			weekend := IsWeekend(day)
			coverage := CoverageTable(weekend, rc.input.Coverage)
			dayIndex := indexOfDay(rc.days, day)

			for _, shift := range DayShiftPriority {
				have := s.CountOnDay(ds, shift, core) + s.CountOnDay(ds, shift, floaters)
				preferred := coverage[shift].Preferred
				if have >= preferred {
					continue
				}

				for _, f := range floaters {
					if s.Get(f.ID, ds) != Unassigned {
						continue
					}
					if float64(s.WorkCountInWeek(f.ID, week)) >= MaxFloaterShiftsPerWeek {
						continue
					}
					if !f.Preferences.Allows(shift, weekend) {
						continue
					}
					prev := rc.PrevShift(s, f.ID, dayIndex)
					if _, bad := TransitionViolation(prev, shift); bad {
						continue
					}
					if floaterCollision(s, floaters, f, ds, shift) {
						continue
					}

					s.Set(f.ID, ds, shift)
					break
				}
			}
		}
	}

	for _, f := range floaters {
		for _, week := range rc.weeks {
			for _, day := range week {
				ds := DateString(day)
				if s.Get(f.ID, ds) == Unassigned {
					s.Set(f.ID, ds, Off)
				}
			}
		}
	}

	return violations
}

// floaterCollision reports whether a different floater already holds the
// same shift on the same day (§4.6 collision rule).
func floaterCollision(s *Schedule, floaters []Engineer, candidate Engineer, ds string, shift Shift) bool {
	for _, other := range floaters {
		if other.ID.Equals(candidate.ID) {
			continue
		}
		if s.Get(other.ID, ds) == shift {
			return true
		}
	}
	return false
}
