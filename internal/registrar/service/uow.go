package service

import (
	"context"
	"log/slog"
)

// unit is the in-memory journal of compensating actions for one claim or
// release. Each applied step registers its inverse; on failure the journal
// unwinds in reverse order so no partial mutation stays visible.
//
// On the SQL backend the surrounding transaction already discards store
// mutations; running the compensations anyway is harmless because they
// execute inside the same aborted transaction.
type unit struct {
	logger *slog.Logger
	undos  []func(ctx context.Context) error
}

func newUnit(logger *slog.Logger) *unit {
	return &unit{logger: logger}
}

// compensate registers the inverse of a step that just succeeded.
func (u *unit) compensate(undo func(ctx context.Context) error) {
	u.undos = append(u.undos, undo)
}

// unwind rolls back every applied step, newest first, and returns the cause
// unchanged so callers can propagate it. Compensation failures are logged;
// there is nothing further to do with them mid-abort.
func (u *unit) unwind(ctx context.Context, cause error) error {
	for i := len(u.undos) - 1; i >= 0; i-- {
		if err := u.undos[i](ctx); err != nil {
			u.logger.ErrorContext(ctx, "compensation failed during rollback",
				"cause", cause,
				"error", err,
			)
		}
	}
	return cause
}
