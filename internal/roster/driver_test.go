package roster_test

import (
	"context"
	"testing"
	"time"

	"github.com/felixgeelhaar/roster-engine/internal/roster"
	"github.com/felixgeelhaar/roster-engine/internal/shared/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func minimalTeam(n int) []roster.Engineer {
	var engineers []roster.Engineer
	for i := 0; i < n; i++ {
		engineers = append(engineers, roster.Engineer{
			ID:   domain.NewUserID("eng-" + string(rune('a'+i))),
			Tier: roster.TierT2,
		})
	}
	return engineers
}

func TestGenerate_RejectsEmptyInput(t *testing.T) {
	out, err := roster.Generate(context.Background(), &roster.ScheduleInput{Year: 2026, Month: time.March}, roster.DriverConfig{}, nil)
	assert.Nil(t, out)
	assert.ErrorIs(t, err, roster.ErrNoEngineers)
}

func TestGenerate_ProducesADenseScheduleForAFeasibleTeam(t *testing.T) {
	input := &roster.ScheduleInput{
		Engineers: minimalTeam(16),
		Year:      2026,
		Month:     time.March,
	}
	out, err := roster.Generate(context.Background(), input, roster.DriverConfig{MaxIterations: 5, Seed: 11}, nil)
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.NotEmpty(t, out.Version)
	assert.True(t, out.Schedule.Dense(input.Engineers, roster.MonthDays(input.Year, input.Month)))
}

func TestGenerate_ReportsRecoveryOptionsWhenNotFullySuccessful(t *testing.T) {
	// A single engineer cannot possibly satisfy 24x7 coverage minima.
	input := &roster.ScheduleInput{
		Engineers: minimalTeam(1),
		Year:      2026,
		Month:     time.March,
	}
	out, err := roster.Generate(context.Background(), input, roster.DriverConfig{MaxIterations: 2, Seed: 5}, nil)
	require.NoError(t, err)
	require.NotNil(t, out)
	if !out.Success {
		assert.NotEmpty(t, out.Options, "a non-successful run must suggest at least one recovery option")
	}
}

func TestGenerate_StopsEarlyWhenCancelled(t *testing.T) {
	input := &roster.ScheduleInput{
		Engineers: minimalTeam(16),
		Year:      2026,
		Month:     time.March,
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, err := roster.Generate(ctx, input, roster.DriverConfig{MaxIterations: 500, Seed: 1}, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotNil(t, out, "a cancelled run still returns the best partial found so far")
}

func TestGenerateRosterHandler_DelegatesToGenerate(t *testing.T) {
	input := &roster.ScheduleInput{
		Engineers: minimalTeam(16),
		Year:      2026,
		Month:     time.March,
	}
	handler := roster.GenerateRosterHandler{}
	out, err := handler.Handle(context.Background(), roster.GenerateRosterQuery{
		Input:  input,
		Config: roster.DriverConfig{MaxIterations: 3, Seed: 2},
	})
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, "GenerateRoster", roster.GenerateRosterQuery{}.QueryName())
}
