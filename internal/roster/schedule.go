package roster

import "time"

// Schedule is the dense (engineerId, date) -> Shift grid. It is created
// fresh per pipeline run, mutated only by pipeline phases in their fixed
// sequence, and frozen once returned (§3, §5).
type Schedule struct {
	grid map[string]map[string]Shift // engineer id string -> date string -> shift
}

// NewSchedule allocates a grid pre-filled with Unassigned for every
// (engineer, day) pair.
func NewSchedule(engineers []Engineer, days []time.Time) *Schedule {
	s := &Schedule{grid: make(map[string]map[string]Shift, len(engineers))}
	for _, e := range engineers {
		row := make(map[string]Shift, len(days))
		for _, d := range days {
			row[DateString(d)] = Unassigned
		}
		s.grid[e.ID.String()] = row
	}
	return s
}

// Get returns the shift assigned to id on date ds.
func (s *Schedule) Get(id EngineerID, ds string) Shift {
	row, ok := s.grid[id.String()]
	if !ok {
		return Unassigned
	}
	return row[ds]
}

// Set assigns shift on date ds for id.
func (s *Schedule) Set(id EngineerID, ds string, shift Shift) {
	row, ok := s.grid[id.String()]
	if !ok {
		row = make(map[string]Shift)
		s.grid[id.String()] = row
	}
	row[ds] = shift
}

// CountOnDay counts how many of the given engineers hold shift on date ds.
func (s *Schedule) CountOnDay(ds string, shift Shift, engineers []Engineer) int {
	n := 0
	for _, e := range engineers {
		if s.Get(e.ID, ds) == shift {
			n++
		}
	}
	return n
}

// CountInWeek counts how many days in week the engineer holds shift.
func (s *Schedule) CountInWeek(id EngineerID, week []time.Time, shift Shift) int {
	n := 0
	for _, d := range week {
		if s.Get(id, DateString(d)) == shift {
			n++
		}
	}
	return n
}

// WorkCountInWeek counts how many days in week the engineer holds any
// work shift.
func (s *Schedule) WorkCountInWeek(id EngineerID, week []time.Time) int {
	n := 0
	for _, d := range week {
		if s.Get(id, DateString(d)).IsWork() {
			n++
		}
	}
	return n
}

// DominantGroup returns the shift group the engineer worked most during
// week, used for next-week consistency scoring (§4.4, §4.7 "Dominant
// group"). Returns false if the engineer did no work that week.
func (s *Schedule) DominantGroup(id EngineerID, week []time.Time) (ShiftGroup, bool) {
	counts := map[ShiftGroup]int{}
	for _, d := range week {
		sh := s.Get(id, DateString(d))
		if g, ok := GroupOf(sh); ok {
			counts[g]++
		}
	}
	var best ShiftGroup
	bestCount := 0
	found := false
	for _, g := range []ShiftGroup{GroupDayEarly, GroupDayLate, GroupNight} {
		if counts[g] > bestCount {
			best, bestCount, found = g, counts[g], true
		}
	}
	return best, found
}

// Clone returns a deep copy of the grid: later changes to either
// schedule do not affect the other.
func (s *Schedule) Clone() *Schedule {
	clone := &Schedule{grid: make(map[string]map[string]Shift, len(s.grid))}
	for id, row := range s.grid {
		newRow := make(map[string]Shift, len(row))
		for ds, sh := range row {
			newRow[ds] = sh
		}
		clone.grid[id] = newRow
	}
	return clone
}

// Dense reports whether every engineer has a non-Unassigned shift on
// every day in days (testable property #2).
func (s *Schedule) Dense(engineers []Engineer, days []time.Time) bool {
	for _, e := range engineers {
		for _, d := range days {
			if s.Get(e.ID, DateString(d)) == Unassigned {
				return false
			}
		}
	}
	return true
}
