package roster

import (
	"fmt"
	"time"

	"github.com/samber/lo"
)

// PreferredNightCount is the target cohort size and per-day Night
// headcount the strategy aims for (§4.3).
var PreferredNightCount = 3

// nightEligible reports whether an engineer may join a Night cohort:
// preferences include Night or WeekendNight, or preferences are empty.
func nightEligible(e Engineer) bool {
	if len(e.Preferences.Weekday) == 0 && len(e.Preferences.Weekend) == 0 {
		return true
	}
	if e.Preferences.Weekday[Night] {
		return true
	}
	if e.Preferences.Weekend[Night] {
		return true
	}
	return false
}

// blocksOfTwo partitions weeks into consecutive blocks of size 2; the
// final block may be size 1 (§4.3 step 2).
func blocksOfTwo(weeks [][]time.Time) [][][]time.Time {
	var blocks [][][]time.Time
	for i := 0; i < len(weeks); i += 2 {
		end := i + 2
		if end > len(weeks) {
			end = len(weeks)
		}
		blocks = append(blocks, weeks[i:end])
	}
	return blocks
}

// availabilityRatio is the fraction of a block's days on which the
// engineer is not already hard-blocked (Unavailable/fixed-off) and not
// already assigned a non-Night shift.
func availabilityRatio(e Engineer, blockDays []time.Time, s *Schedule) float64 {
	if len(blockDays) == 0 {
		return 0
	}
	available := 0
	for _, d := range blockDays {
		ds := DateString(d)
		if tag, blocked := e.UnavailabilityAt(ds); blocked && !tag.IsPredeterminedOff() {
			continue
		}
		if e.IsFixedOff(d) {
			continue
		}
		switch s.Get(e.ID, ds) {
		case Unassigned, Night:
			available++
		}
	}
	return float64(available) / float64(len(blockDays))
}

// ApplyNightStrategy runs C4 over the whole month, mutating s in place.
// Returns any coverage_failure / insufficient_coverage violations.
func ApplyNightStrategy(rc *runContext, s *Schedule) []Violation {
	core := coreEngineers(rc.input.Engineers)
	eligible := lo.Filter(core, func(e Engineer, _ int) bool { return nightEligible(e) })

	var violations []Violation
	if len(eligible) == 0 {
		violations = append(violations, Violation{
			Kind:    KindInsufficientCoverage,
			Message: "no engineer is eligible for Night shifts",
		})
		return violations
	}

	blocks := blocksOfTwo(rc.weeks)
	priorCohort := map[string]bool{}

	for _, block := range blocks {
		var blockDays []time.Time
		for _, w := range block {
			blockDays = append(blockDays, w...)
		}

		type scored struct {
			engineer Engineer
			score    float64
		}
		candidates := lo.FilterMap(eligible, func(e Engineer, _ int) (scored, bool) {
			ratio := availabilityRatio(e, blockDays, s)
			if ratio < 0.5 {
				return scored{}, false
			}
			score := ratio * 50
			if !priorCohort[e.ID.String()] {
				score += 30
			}
			if e.Preferences.PrefersExplicitly(Night, false) || e.Preferences.PrefersExplicitly(Night, true) {
				score += 20
			}
			return scored{engineer: e, score: score}, true
		})

		cohortSize := PreferredNightCount
		if len(candidates) < cohortSize {
			cohortSize = len(candidates)
		}

		// sort by score descending; the pairwise swaps do not keep the
		// input order of candidates with equal scores
		for i := 0; i < len(candidates); i++ {
			for j := i + 1; j < len(candidates); j++ {
				if candidates[j].score > candidates[i].score {
					candidates[i], candidates[j] = candidates[j], candidates[i]
				}
			}
		}

		cohort := candidates[:cohortSize]
		nextCohort := map[string]bool{}
		for _, c := range cohort {
			nextCohort[c.engineer.ID.String()] = true
		}

		for _, d := range blockDays {
			ds := DateString(d)
			weekend := IsWeekend(d)
			assignedToday := 0
			dayIndex := indexOfDay(rc.days, d)

			for _, c := range cohort {
				if assignedToday >= PreferredNightCount {
					break
				}
				e := c.engineer
				if s.Get(e.ID, ds) != Unassigned {
					continue
				}
				if !e.Preferences.Allows(Night, weekend) {
					continue
				}
				prev := rc.PrevShift(s, e.ID, dayIndex)
				if _, bad := TransitionViolation(prev, Night); bad {
					continue
				}
				s.Set(e.ID, ds, Night)
				assignedToday++
			}

			if assignedToday < 2 {
				violations = append(violations, Violation{
					Kind:    KindCoverageFailure,
					Message: fmt.Sprintf("only %d Night assignments on %s (need >= 2)", assignedToday, ds),
					Date:    ds,
					Shift:   Night,
				})
			}
		}

		priorCohort = nextCohort
	}

	return violations
}

func indexOfDay(days []time.Time, d time.Time) int {
	for i, dd := range days {
		if dd.Equal(d) {
			return i
		}
	}
	return -1
}
