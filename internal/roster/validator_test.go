package roster

import (
	"testing"
	"time"

	"github.com/felixgeelhaar/roster-engine/internal/shared/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCoverage_FlagsBelowMinimum(t *testing.T) {
	days := MonthDays(2026, time.March)
	engineers := []Engineer{{ID: domain.NewUserID("e1")}}
	s := NewSchedule(engineers, days)
	s.Set(engineers[0].ID, DateString(days[0]), Early) // only 1, minimum weekday is 3

	rc := &runContext{input: &ScheduleInput{Engineers: engineers}, days: days}
	violations := validateCoverage(rc, s)
	require.NotEmpty(t, violations)
	assert.Equal(t, KindCoverageViolation, violations[0].Kind)
}

func TestValidateRest_FlagsForbiddenTransitionAndShortRest(t *testing.T) {
	days := MonthDays(2026, time.March)
	engineers := []Engineer{{ID: domain.NewUserID("e1")}}
	s := NewSchedule(engineers, days)
	s.Set(engineers[0].ID, DateString(days[0]), Night)
	s.Set(engineers[0].ID, DateString(days[1]), Early)

	rc := &runContext{input: &ScheduleInput{Engineers: engineers}, days: days}
	violations := validateRest(rc, s)

	var kinds []ViolationKind
	for _, v := range violations {
		kinds = append(kinds, v.Kind)
	}
	assert.Contains(t, kinds, KindTransitionViolation)
	assert.Contains(t, kinds, KindRestPeriod)
}

func TestValidateRest_CrossMonthUsesTailAndFlagsCrossMonthKind(t *testing.T) {
	days := MonthDays(2026, time.March)
	engineers := []Engineer{{ID: domain.NewUserID("e1")}}
	s := NewSchedule(engineers, days)
	s.Set(engineers[0].ID, DateString(days[0]), Early)

	tailDay := time.Date(2026, time.February, 28, 0, 0, 0, 0, time.UTC)
	tail := &TailSchedule{
		Days: []time.Time{tailDay},
		Grid: map[EngineerID]map[string]Shift{
			engineers[0].ID: {DateString(tailDay): Night},
		},
	}
	rc := &runContext{input: &ScheduleInput{Engineers: engineers}, days: days, tail: tail}
	violations := validateRest(rc, s)

	require.NotEmpty(t, violations)
	assert.Equal(t, KindTransitionCrossMonth, violations[0].Kind)
}

func TestValidateConsecutiveDays_FlagsOverSixInARow(t *testing.T) {
	days := MonthDays(2026, time.March)
	engineers := []Engineer{{ID: domain.NewUserID("e1")}}
	s := NewSchedule(engineers, days)
	for i := 0; i < 7; i++ {
		s.Set(engineers[0].ID, DateString(days[i]), Early)
	}
	rc := &runContext{input: &ScheduleInput{Engineers: engineers}, days: days}
	violations := validateConsecutiveDays(rc, s)
	require.NotEmpty(t, violations)
	assert.Equal(t, KindConsecutiveDays, violations[0].Kind)
}

func TestValidateFloaters_FlagsOverworkAndCollision(t *testing.T) {
	f1 := Engineer{ID: domain.NewUserID("f1"), IsFloater: true}
	f2 := Engineer{ID: domain.NewUserID("f2"), IsFloater: true}
	days := MonthDays(2026, time.March)
	weeks := WeeksOf(2026, time.March)
	engineers := []Engineer{f1, f2}
	s := NewSchedule(engineers, days)

	week := weeks[1]
	for i := 0; i < 3; i++ {
		s.Set(f1.ID, DateString(week[i]), Early)
	}
	s.Set(f1.ID, DateString(week[4]), Late)
	s.Set(f2.ID, DateString(week[4]), Late)

	rc := &runContext{input: &ScheduleInput{Engineers: engineers}, days: days, weeks: [][]time.Time{week}}
	violations := validateFloaters(rc, s)

	var kinds []ViolationKind
	for _, v := range violations {
		kinds = append(kinds, v.Kind)
	}
	assert.Contains(t, kinds, KindFloaterOverwork)
	assert.Contains(t, kinds, KindFloaterCollision)
}

func TestValidateOffDays_ExemptsWeekWithUnavailability(t *testing.T) {
	days := MonthDays(2026, time.March)
	weeks := WeeksOf(2026, time.March)
	engineers := []Engineer{{ID: domain.NewUserID("e1")}}
	s := NewSchedule(engineers, days)
	week := weeks[1]
	s.Set(engineers[0].ID, DateString(week[0]), Unavailable)
	for i := 1; i < len(week); i++ {
		s.Set(engineers[0].ID, DateString(week[i]), Early)
	}

	rc := &runContext{input: &ScheduleInput{Engineers: engineers}, days: days, weeks: [][]time.Time{week}}
	violations := validateOffDays(rc, s)
	assert.Empty(t, violations, "a week with an Unavailable day is exempt from the two-consecutive-Off rule (S3)")
}

func TestValidateOffDays_FlagsNonConsecutivePair(t *testing.T) {
	days := MonthDays(2026, time.March)
	weeks := WeeksOf(2026, time.March)
	engineers := []Engineer{{ID: domain.NewUserID("e1")}}
	s := NewSchedule(engineers, days)
	week := weeks[1]
	for _, d := range week {
		s.Set(engineers[0].ID, DateString(d), Early)
	}
	s.Set(engineers[0].ID, DateString(week[0]), Off)
	s.Set(engineers[0].ID, DateString(week[3]), Off)

	rc := &runContext{input: &ScheduleInput{Engineers: engineers}, days: days, weeks: [][]time.Time{week}}
	violations := validateOffDays(rc, s)
	require.Len(t, violations, 1)
	assert.Equal(t, KindOffDayViolation, violations[0].Kind)
}

func TestValidate_PartialSkipsOffDayCheck(t *testing.T) {
	days := MonthDays(2026, time.March)
	weeks := WeeksOf(2026, time.March)
	engineers := []Engineer{{ID: domain.NewUserID("e1")}}
	s := NewSchedule(engineers, days)
	week := weeks[1]
	for _, d := range week {
		s.Set(engineers[0].ID, DateString(d), Early)
	}

	rc := &runContext{input: &ScheduleInput{Engineers: engineers}, days: days, weeks: [][]time.Time{week}}
	partial := Validate(rc, s, true)
	full := Validate(rc, s, false)

	assert.Less(t, len(partial), len(full), "partial validation must omit the off_day_violation check")
}
