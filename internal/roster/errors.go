package roster

import "errors"

// Fatal input-shape errors. These abort a run before any pipeline phase
// executes; rule failures during a run are never errors, only Violations.
var (
	ErrNoEngineers      = errors.New("roster: no engineers supplied")
	ErrInvalidMonth     = errors.New("roster: invalid year/month")
	ErrDuplicateEngineer = errors.New("roster: duplicate engineer id")
	ErrInvalidCoverage  = errors.New("roster: invalid coverage override")
	ErrInvalidTail      = errors.New("roster: previous-month tail is not restricted to the final six days")
)
