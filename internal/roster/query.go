package roster

import (
	"context"
	"log/slog"

	"github.com/felixgeelhaar/roster-engine/internal/shared/application"
)

// GenerateRosterQuery is the CQRS-style entrypoint for a single roster
// run. Generating a roster never mutates persisted state (there is
// none, per §5) so it is modelled as a Query, not a Command.
type GenerateRosterQuery struct {
	Input  *ScheduleInput
	Config DriverConfig
}

// QueryName satisfies application.Query.
func (GenerateRosterQuery) QueryName() string { return "GenerateRoster" }

// GenerateRosterHandler adapts Generate to application.QueryHandler.
type GenerateRosterHandler struct {
	Logger *slog.Logger
}

var _ application.QueryHandler[GenerateRosterQuery, *ScheduleOutput] = GenerateRosterHandler{}

// Handle runs the driver for the query's input and configuration.
func (h GenerateRosterHandler) Handle(ctx context.Context, q GenerateRosterQuery) (*ScheduleOutput, error) {
	return Generate(ctx, q.Input, q.Config, h.Logger)
}
