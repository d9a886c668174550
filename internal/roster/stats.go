package roster

// buildStats computes the per-engineer and per-day summaries returned
// alongside a schedule (§6).
func buildStats(rc *runContext, s *Schedule) Stats {
	perEngineer := make(map[EngineerID]EngineerStats, len(rc.input.Engineers))
	for _, e := range rc.input.Engineers {
		breakdown := map[Shift]int{}
		total, off, unavailable := 0, 0, 0
		for _, d := range rc.days {
			shift := s.Get(e.ID, DateString(d))
			breakdown[shift]++
			switch shift {
			case Off:
				off++
			case Unavailable:
				unavailable++
			default:
				if shift.IsWork() || shift == Training {
					total++
				}
			}
		}
		perEngineer[e.ID] = EngineerStats{
			TotalShifts:     total,
			ShiftBreakdown:  breakdown,
			OffDays:         off,
			UnavailableDays: unavailable,
		}
	}

	perDay := make([]DayCoverage, 0, len(rc.days))
	for _, d := range rc.days {
		ds := DateString(d)
		counts := map[Shift]int{}
		for _, e := range rc.input.Engineers {
			counts[s.Get(e.ID, ds)]++
		}
		perDay = append(perDay, DayCoverage{Date: ds, Counts: counts})
	}

	return Stats{PerEngineer: perEngineer, PerDay: perDay}
}
