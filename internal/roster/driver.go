package roster

import (
	"context"
	"log/slog"

	"github.com/felixgeelhaar/roster-engine/pkg/observability"
)

// DriverConfig tunes the iterative retry driver (§4.9). Zero values fall
// back to the spec's defaults.
type DriverConfig struct {
	MaxIterations int
	Seed          int64
}

func (c DriverConfig) withDefaults() DriverConfig {
	if c.MaxIterations <= 0 {
		c.MaxIterations = 500
	}
	return c
}

// shuffledEngineers returns a copy of original with core engineers
// shuffled among themselves and floaters shuffled among themselves,
// independently, per §4.9. Other engineers (training) keep their
// position; shuffling never changes which slice index holds a core vs.
// floater vs. training engineer, only which specific engineer sits
// there.
func shuffledEngineers(original []Engineer, rng *RNG) []Engineer {
	out := make([]Engineer, len(original))
	copy(out, original)

	var coreIdx, floaterIdx []int
	for i, e := range out {
		switch {
		case e.IsFloater:
			floaterIdx = append(floaterIdx, i)
		case e.IsCore():
			coreIdx = append(coreIdx, i)
		}
	}

	shuffleAtIndices(out, coreIdx, rng)
	shuffleAtIndices(out, floaterIdx, rng)

	return out
}

func shuffleAtIndices(out []Engineer, indices []int, rng *RNG) {
	vals := make([]Engineer, len(indices))
	for i, idx := range indices {
		vals[i] = out[idx]
	}
	rng.ShuffleEngineers(vals)
	for i, idx := range indices {
		out[idx] = vals[i]
	}
}

// Generate runs the driver: up to cfg.MaxIterations pipeline runs,
// reshuffling core engineers and floaters on every iteration after the
// first, tracking the best partial (fewest total violations) and
// stopping early per §4.9's rules. The first iteration always runs; after
// it, Generate aborts at the next iteration boundary if ctx is cancelled,
// returning the best partial found so far.
func Generate(ctx context.Context, input *ScheduleInput, cfg DriverConfig, logger *slog.Logger) (*ScheduleOutput, error) {
	if logger == nil {
		logger = observability.NewLogger(observability.DefaultLogConfig())
	}
	cfg = cfg.withDefaults()

	if err := validateInputShape(input); err != nil {
		return nil, err
	}

	days := MonthDays(input.Year, input.Month)
	weeks := WeeksOf(input.Year, input.Month)
	baseRC := &runContext{input: input, days: days, weeks: weeks, tail: input.PreviousMonthSchedule}

	rng := NewRNG(cfg.Seed)

	var bestSchedule *Schedule
	var bestViolations []Violation
	bestCount := -1

	for iteration := 0; iteration < cfg.MaxIterations; iteration++ {
		if iteration > 0 {
			select {
			case <-ctx.Done():
				return finalize(baseRC, bestSchedule, bestViolations), ctx.Err()
			default:
			}
		}

		engineers := input.Engineers
		if iteration > 0 {
			engineers = shuffledEngineers(input.Engineers, rng)
		}
		iterationInput := *input
		iterationInput.Engineers = engineers
		rc := &runContext{input: &iterationInput, days: days, weeks: weeks, tail: input.PreviousMonthSchedule}

		schedule, violations := RunPipeline(rc, rng)
		count := len(violations)

		logger.Info("driver iteration complete",
			observability.OperationKey, "roster.generate",
			"iteration", iteration,
			"violations", count,
		)

		if bestCount < 0 || count < bestCount {
			bestSchedule = schedule
			bestViolations = violations
			bestCount = count
		}

		if bestCount == 0 {
			break
		}
		if iteration >= 9 && bestCount <= 2 {
			break
		}
		if iteration >= 49 && bestCount <= 5 {
			break
		}
	}

	return finalize(baseRC, bestSchedule, bestViolations), nil
}

func finalize(rc *runContext, schedule *Schedule, violations []Violation) *ScheduleOutput {
	out := &ScheduleOutput{
		Schedule:   schedule,
		Success:    len(violations) == 0,
		Violations: violations,
		Stats:      buildStats(rc, schedule),
		Version:    newVersion(),
	}
	if !out.Success {
		out.Options = recoveryOptionsFor(violations)
	}
	return out
}

func validateInputShape(input *ScheduleInput) error {
	if input == nil || len(input.Engineers) == 0 {
		return ErrNoEngineers
	}
	if input.Month < 1 || input.Month > 12 || input.Year < 1 {
		return ErrInvalidMonth
	}
	seen := map[string]bool{}
	for _, e := range input.Engineers {
		id := e.ID.String()
		if seen[id] {
			return ErrDuplicateEngineer
		}
		seen[id] = true
	}
	if input.PreviousMonthSchedule != nil && len(input.PreviousMonthSchedule.Days) > 6 {
		return ErrInvalidTail
	}
	for shift, req := range input.Coverage {
		if !shift.IsWork() || req.Minimum < 0 || req.Preferred < 0 {
			return ErrInvalidCoverage
		}
	}
	return nil
}
