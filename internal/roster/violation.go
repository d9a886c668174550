package roster

// ViolationKind enumerates the typed violation taxonomy of §7. These are
// never raised as exceptions; the core records them and continues so the
// best partial survives.
type ViolationKind string

const (
	KindCoverageFailure           ViolationKind = "coverage_failure"
	KindCoverageViolation         ViolationKind = "coverage_violation"
	KindOffDayReservationFailed   ViolationKind = "off_day_reservation_failed"
	KindOffDayViolation           ViolationKind = "off_day_violation"
	KindRestPeriod                ViolationKind = "ARBZG_REST_PERIOD"
	KindConsecutiveDays           ViolationKind = "ARBZG_CONSECUTIVE_DAYS"
	KindConsecutiveDaysCrossMonth ViolationKind = "ARBZG_CONSECUTIVE_DAYS_CROSS_MONTH"
	KindTransitionViolation       ViolationKind = "transition_violation"
	KindTransitionCrossMonth      ViolationKind = "transition_violation_cross_month"
	KindFloaterOverwork           ViolationKind = "floater_overwork"
	KindFloaterCollision          ViolationKind = "floater_collision"
	KindConfiguration             ViolationKind = "configuration"
	KindInsufficientCoverage      ViolationKind = "insufficient_coverage"
)

// Violation is a single typed finding.
type Violation struct {
	Kind       ViolationKind
	Message    string
	Date       string     // YYYY-MM-DD, empty if not date-scoped
	EngineerID EngineerID // zero value if not engineer-scoped
	Shift      Shift      // zero value if not shift-scoped
	Fatal      bool       // true only for invalid-input-shape errors, surfaced as Go errors instead
}

// Warning is a non-fatal informational note (§6): reduced cohort,
// workload imbalance, configuration detail.
type Warning struct {
	Message string
	Date    string
}
