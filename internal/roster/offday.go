package roster

import "time"

// pairCandidate is a scored candidate consecutive-day pair for Off
// reservation (§4.5).
type pairCandidate struct {
	first, second time.Time
	score         float64
}

// scoreOffPair implements §4.5 step 3's scoring rules for one candidate
// pair. protectWeekendCoverage enables the repair-pass-only −100 gate
// (§4.5 last paragraph).
func scoreOffPair(rc *runContext, s *Schedule, e Engineer, week []time.Time, first, second time.Time, protectWeekendCoverage bool) float64 {
	score := 0.0
	for _, d := range []time.Time{first, second} {
		ds := DateString(d)
		if IsWeekend(d) {
			score -= 15
		}
		if dateIsHoliday(rc.input.Holidays, ds, e.State) {
			score += 5
		}
		if wd := d.Weekday(); wd == time.Tuesday || wd == time.Wednesday || wd == time.Thursday {
			score += 3
		}
		if adjacentToOff(s, e.ID, week, d) {
			score += 12
		}
		score -= 3 * float64(s.CountOnDay(ds, Off, coreEngineers(rc.input.Engineers)))

		if protectWeekendCoverage && IsWeekend(d) {
			coverage := CoverageTable(true, rc.input.Coverage)
			if wouldBreachWeekendMinimum(rc, s, ds, coverage) {
				score -= 100
			}
		}
	}
	if isWeekOne(rc, week) && rc.tail.TrailingWorkStreak(e.ID) >= 4 {
		score += 20
	}
	return score
}

func isWeekOne(rc *runContext, week []time.Time) bool {
	return len(rc.weeks) > 0 && len(week) > 0 && week[0].Equal(rc.weeks[0][0])
}

func dateIsHoliday(holidays []HolidayEntry, ds, state string) bool {
	for _, h := range holidays {
		if h.Date == ds && h.AppliesTo(state) {
			return true
		}
	}
	return false
}

func adjacentToOff(s *Schedule, id EngineerID, week []time.Time, d time.Time) bool {
	idx := indexOfDay(week, d)
	if idx < 0 {
		return false
	}
	if idx > 0 && s.Get(id, DateString(week[idx-1])) == Off {
		return true
	}
	if idx < len(week)-1 && s.Get(id, DateString(week[idx+1])) == Off {
		return true
	}
	return false
}

// wouldBreachWeekendMinimum reports whether removing one core engineer's
// work shift on ds (by giving them Off) would drop coverage for their
// currently-assigned shift below the weekend minimum. Since at Off-pair
// scoring time the engineer's shift on ds may still be Unassigned, this
// checks only already-assigned work shifts.
func wouldBreachWeekendMinimum(rc *runContext, s *Schedule, ds string, coverage map[Shift]CoverageRequirement) bool {
	for _, shift := range WorkShifts {
		req, ok := coverage[shift]
		if !ok {
			continue
		}
		have := s.CountOnDay(ds, shift, coreEngineers(rc.input.Engineers))
		if have <= req.Minimum {
			return true
		}
	}
	return false
}

// reserveOrRepairOffDays implements both the first-pass reservation
// (protectWeekendCoverage=false) and the second-pass repair
// (protectWeekendCoverage=true) described in §4.5.
func reserveOrRepairOffDays(rc *runContext, s *Schedule, protectWeekendCoverage bool) []Violation {
	var violations []Violation
	core := coreEngineers(rc.input.Engineers)

	for _, week := range rc.weeks {
		for _, e := range core {
			if len(e.FixedOffDays) > 0 {
				// fixed-off engineers are handled by the pipeline's
				// initialisation phase, not here.
				continue
			}

			existingOff := s.CountInWeek(e.ID, week, Off)
			if existingOff >= 2 && hasConsecutiveOffPair(s, e.ID, week) {
				continue
			}

			best, found := bestConsecutivePair(rc, s, e, week, protectWeekendCoverage)
			if !found {
				if !protectWeekendCoverage {
					violations = append(violations, Violation{
						Kind:       KindOffDayReservationFailed,
						Message:    "no consecutive unassigned pair available to reserve as Off",
						EngineerID: e.ID,
					})
				}
				continue
			}

			if s.Get(e.ID, DateString(best.first)) == Unassigned {
				s.Set(e.ID, DateString(best.first), Off)
			}
			if s.Get(e.ID, DateString(best.second)) == Unassigned {
				s.Set(e.ID, DateString(best.second), Off)
			}
		}
	}

	return violations
}

func hasConsecutiveOffPair(s *Schedule, id EngineerID, week []time.Time) bool {
	for i := 0; i < len(week)-1; i++ {
		if s.Get(id, DateString(week[i])) == Off && s.Get(id, DateString(week[i+1])) == Off {
			return true
		}
	}
	return false
}

// bestConsecutivePair enumerates consecutive pairs of currently
// -unassigned (or already-Off, for the repair pass) day slots in week
// and returns the highest scoring one. Per §4.5 step 4, there is no
// fallback to a non-consecutive split: if no consecutive pair of
// eligible slots exists, the caller reports a violation instead.
func bestConsecutivePair(rc *runContext, s *Schedule, e Engineer, week []time.Time, protectWeekendCoverage bool) (pairCandidate, bool) {
	var best pairCandidate
	found := false

	for i := 0; i < len(week)-1; i++ {
		first, second := week[i], week[i+1]
		s1 := s.Get(e.ID, DateString(first))
		s2 := s.Get(e.ID, DateString(second))
		eligible1 := s1 == Unassigned || s1 == Off
		eligible2 := s2 == Unassigned || s2 == Off
		if !eligible1 || !eligible2 {
			continue
		}

		score := scoreOffPair(rc, s, e, week, first, second, protectWeekendCoverage)
		if !found || score > best.score {
			best = pairCandidate{first: first, second: second, score: score}
			found = true
		}
	}

	if found && protectWeekendCoverage && best.score <= -100 {
		return pairCandidate{}, false
	}

	return best, found
}
