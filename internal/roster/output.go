package roster

import "github.com/google/uuid"

// EngineerStats summarises one engineer's outcome for a run.
type EngineerStats struct {
	TotalShifts      int
	ShiftBreakdown   map[Shift]int
	OffDays          int
	UnavailableDays  int
}

// DayCoverage summarises how many engineers held each shift on one day.
type DayCoverage struct {
	Date   string
	Counts map[Shift]int
}

// Stats bundles the per-engineer and per-day summaries returned
// alongside a schedule (§6).
type Stats struct {
	PerEngineer map[EngineerID]EngineerStats
	PerDay      []DayCoverage
}

// RecoverySeverity ranks how disruptive a recovery option is.
type RecoverySeverity string

const (
	SeverityLow      RecoverySeverity = "low"
	SeverityMedium   RecoverySeverity = "medium"
	SeverityHigh     RecoverySeverity = "high"
)

// RecoveryOption is one suggested way to reshape constraints and retry
// (§4.9).
type RecoveryOption struct {
	ID       string
	Title    string
	Impact   string
	Severity RecoverySeverity
}

// ScheduleOutput is the engine's sole output (§6).
type ScheduleOutput struct {
	Schedule   *Schedule
	Success    bool
	Violations []Violation
	Warnings   []Warning
	Stats      Stats
	Options    []RecoveryOption
	Version    string
}

// newVersion stamps an opaque version string for a run, grounded on the
// teacher's use of google/uuid for opaque identifiers throughout its
// domain layer.
func newVersion() string {
	return uuid.New().String()
}

// recoveryOptionsFor derives the recovery-option list from a violation
// set (§4.9). The list is intentionally small and enumerated, not
// generated per-violation-instance.
func recoveryOptionsFor(violations []Violation) []RecoveryOption {
	kinds := map[ViolationKind]bool{}
	for _, v := range violations {
		kinds[v.Kind] = true
	}
	if len(kinds) == 0 {
		return nil
	}

	var opts []RecoveryOption
	if kinds[KindCoverageFailure] || kinds[KindCoverageViolation] || kinds[KindInsufficientCoverage] {
		opts = append(opts, RecoveryOption{
			ID:       "relax_coverage",
			Title:    "Relax per-shift coverage minima",
			Impact:   "Reduces the minimum headcount required per shift; may leave shifts thinly staffed",
			Severity: SeverityMedium,
		})
		opts = append(opts, RecoveryOption{
			ID:       "increase_floater_hours",
			Title:    "Raise the floater weekly shift cap to 4",
			Impact:   "Lets floaters absorb more coverage gaps at the cost of floater workload",
			Severity: SeverityLow,
		})
	}
	if kinds[KindOffDayReservationFailed] || kinds[KindOffDayViolation] {
		opts = append(opts, RecoveryOption{
			ID:       "reduce_off_days",
			Title:    "Reduce the required consecutive Off days to 1/week",
			Impact:   "Violates the usual two-consecutive-off convention; review against works council agreement",
			Severity: SeverityHigh,
		})
	}
	if kinds[KindRestPeriod] || kinds[KindConsecutiveDays] || kinds[KindConsecutiveDaysCrossMonth] || kinds[KindTransitionViolation] || kinds[KindTransitionCrossMonth] {
		opts = append(opts, RecoveryOption{
			ID:       "labor_law_review",
			Title:    "Escalate for manual ArbZG compliance review",
			Impact:   "Rest-period or consecutive-day limits could not be satisfied automatically",
			Severity: SeverityHigh,
		})
	}
	opts = append(opts, RecoveryOption{
		ID:       "manual_edit",
		Title:    "Hand-edit the remaining violations",
		Impact:   "Always available as a fallback; no automatic risk",
		Severity: SeverityLow,
	})
	return opts
}
