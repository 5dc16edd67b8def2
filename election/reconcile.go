// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aptible/supercronic/cronexpr"

	"github.com/danielhkuo/college-vote/models"
)

// Reconcile promotes the stored status of every election whose time-derived
// status has moved past it. It returns the number of elections updated.
func (s *Service) Reconcile(ctx context.Context) (int, error) {
	// Read everything before writing: the SQLite pool has one connection.
	pending, err := s.queryElections(ctx, `
		SELECT `+electionColumns+`
		FROM elections e
		WHERE e.status <> $1
	`, models.StatusCompleted)
	if err != nil {
		return 0, err
	}

	updated := 0
	for i := range pending {
		changed, err := s.reconcileElection(ctx, s.db, &pending[i])
		if err != nil {
			return updated, err
		}
		if changed {
			updated++
		}
	}

	if updated > 0 {
		slog.Info("elections reconciled", "updated", updated)
	}
	return updated, nil
}

// ParseSchedule validates a cron expression for RunReconciler.
func ParseSchedule(schedule string) (*cronexpr.Expression, error) {
	expr, err := cronexpr.Parse(schedule)
	if err != nil {
		return nil, fmt.Errorf("invalid reconcile schedule %q: %w", schedule, err)
	}
	return expr, nil
}

// RunReconciler calls Reconcile on the given cron schedule until ctx is
// cancelled. Failures are logged and the next tick proceeds.
func RunReconciler(ctx context.Context, s *Service, schedule string) error {
	expr, err := ParseSchedule(schedule)
	if err != nil {
		return err
	}

	slog.Info("reconciler started", "schedule", schedule)
	for {
		next := expr.Next(time.Now())
		if next.IsZero() {
			slog.Warn("reconcile schedule has no future runs", "schedule", schedule)
			return nil
		}

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			slog.Info("reconciler stopped")
			return ctx.Err()
		case <-timer.C:
		}

		if _, err := s.Reconcile(ctx); err != nil && ctx.Err() == nil {
			slog.Error("scheduled reconcile failed", "error", err)
		}
	}
}
