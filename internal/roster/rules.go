package roster

import "github.com/samber/lo"

// ShiftWindow is a shift's start/end time-of-day, in minutes since
// midnight, used only for rest-hours arithmetic.
type ShiftWindow struct {
	StartMinutes int
	EndMinutes   int // may exceed 1440 for shifts that cross midnight
}

// weekdayShiftTimes and weekendShiftTimes are the fixed time table from
// §4.2. Late ends earlier on weekends; every other shift is constant.
var weekdayShiftTimes = map[Shift]ShiftWindow{
	Early:   {StartMinutes: 7 * 60, EndMinutes: 15*60 + 30},
	Morning: {StartMinutes: 10 * 60, EndMinutes: 18*60 + 30},
	Late:    {StartMinutes: 15 * 60, EndMinutes: 23*60 + 30},
	Night:   {StartMinutes: 23 * 60, EndMinutes: 24*60 + 7*60 + 30},
}

var weekendShiftTimes = map[Shift]ShiftWindow{
	Early:   weekdayShiftTimes[Early],
	Morning: weekdayShiftTimes[Morning],
	Late:    {StartMinutes: 15 * 60, EndMinutes: 22*60 + 30},
	Night:   weekdayShiftTimes[Night],
}

// ShiftTimes returns the time window for a work shift on the given day
// type. Off/Unavailable/Training have no window.
func ShiftTimes(s Shift, weekend bool) (ShiftWindow, bool) {
	table := weekdayShiftTimes
	if weekend {
		table = weekendShiftTimes
	}
	w, ok := table[s]
	return w, ok
}

// MinRestHours is the minimum legal rest between the end of one shift and
// the start of the next (ArbZG).
const MinRestHours = 11

// RestHours computes the rest interval between the end of prevShift
// (worked on a day of type prevWeekend) and the start of nextShift
// (worked on a day of type nextWeekend), assuming consecutive calendar
// days. Returns (_, false) if either side has no time window.
func RestHours(prevShift Shift, prevWeekend bool, nextShift Shift, nextWeekend bool) (float64, bool) {
	prevWin, ok := ShiftTimes(prevShift, prevWeekend)
	if !ok {
		return 0, false
	}
	nextWin, ok := ShiftTimes(nextShift, nextWeekend)
	if !ok {
		return 0, false
	}
	prevEnd := prevWin.EndMinutes
	nextStart := nextWin.StartMinutes + 24*60 // next day, shifted by one day's minutes
	return float64(nextStart-prevEnd) / 60, true
}

// forbiddenTransitions enumerates (prev, next) pairs that always violate
// rest, independent of exact day-type arithmetic (§4.2).
var forbiddenTransitions = map[[2]Shift]string{
	{Night, Early}:   "Night shift must be followed by at least 11 hours rest before an Early shift",
	{Night, Morning}: "Night shift must be followed by at least 11 hours rest before a Morning shift",
	{Late, Early}:    "Late shift must be followed by at least 11 hours rest before an Early shift",
	{Late, Morning}:  "Late shift must be followed by at least 11 hours rest before a Morning shift",
}

// TransitionViolation reports the reason a (prev, next) adjacent pair is
// forbidden, if any. A prev side of Off or Unavailable is always legal.
func TransitionViolation(prev, next Shift) (string, bool) {
	if prev == Off || prev == Unavailable || prev == Unassigned {
		return "", false
	}
	reason, bad := forbiddenTransitions[[2]Shift{prev, next}]
	return reason, bad
}

// MaxConsecutiveWorkDays is the ArbZG cap on consecutive
// non-Off-non-Unavailable days.
const MaxConsecutiveWorkDays = 6

// CoverageRequirement is the minimum (and optionally preferred) headcount
// for one shift on one day.
type CoverageRequirement struct {
	Minimum   int
	Preferred int
}

// DefaultWeekdayCoverage and DefaultWeekendCoverage are the coverage
// minima from §4.2. Callers may override via ScheduleInput.Coverage.
var DefaultWeekdayCoverage = map[Shift]CoverageRequirement{
	Early:   {Minimum: 3, Preferred: 3},
	Morning: {Minimum: 3, Preferred: 3},
	Late:    {Minimum: 3, Preferred: 3},
	Night:   {Minimum: 2, Preferred: 3},
}

var DefaultWeekendCoverage = map[Shift]CoverageRequirement{
	Early:   {Minimum: 2, Preferred: 2},
	Morning: {Minimum: 2, Preferred: 2},
	Late:    {Minimum: 2, Preferred: 2},
	Night:   {Minimum: 2, Preferred: 2},
}

// ShiftGroup is used for week-to-week consistency scoring (§4.4, §4.7).
type ShiftGroup string

const (
	GroupDayEarly ShiftGroup = "day_early"
	GroupDayLate  ShiftGroup = "day_late"
	GroupNight    ShiftGroup = "night"
)

var shiftGroups = map[Shift]ShiftGroup{
	Early:   GroupDayEarly,
	Morning: GroupDayEarly,
	Late:    GroupDayLate,
	Night:   GroupNight,
}

// GroupOf returns the shift group a work shift belongs to.
func GroupOf(s Shift) (ShiftGroup, bool) {
	g, ok := shiftGroups[s]
	return g, ok
}

// DayShiftPriority is the order C5 considers shifts in for each day.
// Morning is deprioritised deliberately (§9 open question): Early and
// Late are the load peaks, so giving them first pick of the eligible
// pool lets Morning's minimum be met by spillover. Kept as a package
// variable, not a literal loop order, so callers can override the
// strategy.
var DayShiftPriority = []Shift{Early, Late, Morning}

// CoverageTable resolves the effective coverage requirements for a day,
// applying ScheduleInput overrides over the §4.2 defaults.
func CoverageTable(weekend bool, overrides map[Shift]CoverageRequirement) map[Shift]CoverageRequirement {
	base := DefaultWeekdayCoverage
	if weekend {
		base = DefaultWeekendCoverage
	}
	table := make(map[Shift]CoverageRequirement, len(base))
	for _, s := range lo.Keys(base) {
		table[s] = base[s]
	}
	for s, req := range overrides {
		table[s] = req
	}
	return table
}
