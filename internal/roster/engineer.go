package roster

import (
	"time"

	"github.com/felixgeelhaar/roster-engine/internal/shared/domain"
)

// EngineerID is the opaque identifier type shared across the engine; it
// is the same value object the rest of the module uses for any
// cross-context identifier.
type EngineerID = domain.UserID

// Tier is an engineer's seniority band.
type Tier string

const (
	TierT1 Tier = "T1"
	TierT2 Tier = "T2"
	TierT3 Tier = "T3"
)

// UnavailabilityTag annotates why a date in Engineer.UnavailableDays is
// blocked. Only TagPredeterminedOff pre-fills the slot as Off instead of
// Unavailable, so it still counts toward the weekly Off requirement (§3);
// TagUnavailable and the untyped case both resolve to Unavailable.
type UnavailabilityTag string

const (
	TagPredeterminedOff UnavailabilityTag = "predetermined_off"
	TagUnavailable      UnavailabilityTag = "unavailable"
)

// IsPredeterminedOff reports whether the tag should pre-fill Off rather
// than Unavailable. TagUnavailable resolves to Unavailable, not Off: S3
// requires vacation-clash days to carry Unavailable and exempt their week
// from the 2-Off requirement, which only holds if this returns false for
// TagUnavailable.
func (t UnavailabilityTag) IsPredeterminedOff() bool {
	return t == TagPredeterminedOff
}

// Preferences is an allow-list over the four work shifts, plus an
// optional weekend-specific override. An empty set means "any shift is
// acceptable"; a non-empty set is an allow-list. If any Weekend* entry is
// present, the weekend list entirely replaces the weekday list on
// weekend days (§3).
type Preferences struct {
	Weekday map[Shift]bool
	Weekend map[Shift]bool
}

// Allows reports whether shift s is acceptable for the engineer on a day
// of the given weekend-ness.
func (p Preferences) Allows(s Shift, weekend bool) bool {
	if weekend && len(p.Weekend) > 0 {
		return p.Weekend[s]
	}
	if len(p.Weekday) == 0 {
		return true
	}
	return p.Weekday[s]
}

// PrefersExplicitly reports whether s is explicitly named in the
// effective preference set for the given day type (used for the +15/+20
// preference-bonus scoring terms, which only apply to an explicit
// preference, not the empty "any" set).
func (p Preferences) PrefersExplicitly(s Shift, weekend bool) bool {
	if weekend && len(p.Weekend) > 0 {
		return p.Weekend[s]
	}
	return len(p.Weekday) > 0 && p.Weekday[s]
}

// Engineer is an input record. The scheduler treats it as immutable;
// engineer records live outside the scheduler (§3).
type Engineer struct {
	ID         EngineerID
	Tier       Tier
	IsFloater  bool
	InTraining bool
	State      string // German state code, drives holiday set; "" = none

	Preferences Preferences

	// UnavailableDays is a hard blackout: absent any tag, the slot becomes
	// Unavailable. A tag present in UnavailableTypes for the same date can
	// redirect it to Off instead (predetermined_off).
	UnavailableDays  map[string]bool // date string -> blocked
	UnavailableTypes map[string]UnavailabilityTag

	// FixedOffDays forces Off on these weekdays regardless of other
	// assignment, e.g. a contractual Friday/Saturday-off arrangement
	// (§9: expressed at the data layer, never by name matching).
	FixedOffDays []time.Weekday
}

// IsCore reports whether e carries base coverage (neither floater nor
// in-training).
func (e Engineer) IsCore() bool {
	return !e.IsFloater && !e.InTraining
}

// IsFixedOff reports whether d is one of e's fixed off-weekdays.
func (e Engineer) IsFixedOff(d time.Time) bool {
	for _, wd := range e.FixedOffDays {
		if wd == d.Weekday() {
			return true
		}
	}
	return false
}

// UnavailabilityAt reports the unavailability state for date string ds,
// if e.UnavailableDays marks it blocked. A blocked date with no entry in
// UnavailableTypes is an untyped hard blackout, not "not blocked" — it is
// reported with a zero-value tag, which IsPredeterminedOff correctly
// treats as Unavailable rather than Off.
func (e Engineer) UnavailabilityAt(ds string) (UnavailabilityTag, bool) {
	if !e.UnavailableDays[ds] {
		return "", false
	}
	return e.UnavailableTypes[ds], true
}
