// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/danielhkuo/college-vote/models"
)

// Service implements election, candidacy, ballot, results, and account
// operations against a relational store.
type Service struct {
	db  *sql.DB
	now func() time.Time
}

type Option func(*Service)

// WithClock overrides the time source used for status decisions.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(db *sql.DB, opts ...Option) *Service {
	s := &Service{db: db, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now returns the current time of the service clock in UTC.
func (s *Service) Now() time.Time {
	return s.now().UTC()
}

// querier is satisfied by both *sql.DB and *sql.Tx
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type scanner interface {
	Scan(dest ...any) error
}

const electionColumns = `e.id, e.title, e.description, e.start_date, e.end_date,
	e.status, e.status_forced_at, e.created_by, e.created_at`

func scanElection(row scanner, extra ...any) (models.Election, error) {
	var e models.Election
	var forcedAt sql.NullTime
	var createdBy sql.NullInt64

	dest := []any{
		&e.ID, &e.Title, &e.Description, &e.StartDate, &e.EndDate,
		&e.Status, &forcedAt, &createdBy, &e.CreatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return models.Election{}, err
	}

	if forcedAt.Valid {
		t := forcedAt.Time.UTC()
		e.StatusForcedAt = &t
	}
	if createdBy.Valid {
		id := createdBy.Int64
		e.CreatedBy = &id
	}
	e.StartDate = e.StartDate.UTC()
	e.EndDate = e.EndDate.UTC()
	e.CreatedAt = e.CreatedAt.UTC()
	return e, nil
}

// loadElection reads one election and reconciles its stored status.
func (s *Service) loadElection(ctx context.Context, q querier, id int64) (models.Election, error) {
	e, err := scanElection(q.QueryRowContext(ctx, `
		SELECT `+electionColumns+`
		FROM elections e
		WHERE e.id = $1
	`, id))
	if err == sql.ErrNoRows {
		return models.Election{}, ErrElectionNotFound
	}
	if err != nil {
		return models.Election{}, fmt.Errorf("failed to query election: %w", err)
	}

	if _, err := s.reconcileElection(ctx, q, &e); err != nil {
		return models.Election{}, err
	}
	return e, nil
}

// reconcileElection applies the automatic promotion rule to e and persists
// it. The update is conditional on the stored status so a concurrent admin
// override is not overwritten.
func (s *Service) reconcileElection(ctx context.Context, q querier, e *models.Election) (bool, error) {
	target, ok := promotion(*e, s.Now())
	if !ok {
		return false, nil
	}

	res, err := q.ExecContext(ctx, `
		UPDATE elections
		SET status = $1, status_forced_at = NULL
		WHERE id = $2 AND status = $3
	`, target, e.ID, e.Status)
	if err != nil {
		return false, fmt.Errorf("failed to update election status: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return false, nil
	}

	e.Status = target
	e.StatusForcedAt = nil
	return true, nil
}

func (s *Service) electionExists(ctx context.Context, q querier, id int64) error {
	var exists bool
	err := q.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM elections WHERE id = $1)
	`, id).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to query election: %w", err)
	}
	if !exists {
		return ErrElectionNotFound
	}
	return nil
}
