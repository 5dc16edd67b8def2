// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/danielhkuo/college-vote/db"
	"github.com/danielhkuo/college-vote/models"
)

// CreateElection validates and stores a new election with its initial
// status resolved from the current time.
func (s *Service) CreateElection(ctx context.Context, actor models.Actor, in models.NewElection) (int64, error) {
	if !actor.IsAdmin() {
		return 0, ErrForbidden
	}

	var errs []error
	if strings.TrimSpace(in.Title) == "" {
		errs = append(errs, ErrMissingTitle)
	}
	if !in.EndDate.After(in.StartDate) {
		errs = append(errs, ErrInvalidRange)
	}
	if err := errors.Join(errs...); err != nil {
		return 0, err
	}

	now := s.Now()
	start, end := in.StartDate.UTC(), in.EndDate.UTC()
	status := ResolveStatus(start, end, now)

	createdBy := sql.NullInt64{Int64: actor.ID, Valid: actor.ID > 0}

	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO elections (title, description, start_date, end_date, status, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, strings.TrimSpace(in.Title), in.Description, start, end, status, createdBy, now).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert election: %w", err)
	}

	slog.Info("election created", "election_id", id, "status", status, "created_by", actor.ID)
	return id, nil
}

// UpdateStatus is the admin override. It persists unconditionally and
// records when the override happened.
func (s *Service) UpdateStatus(ctx context.Context, actor models.Actor, electionID int64, status string) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}
	if !ValidStatus(status) {
		return ErrInvalidStatus
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE elections
		SET status = $1, status_forced_at = $2
		WHERE id = $3
	`, status, s.Now(), electionID)
	if err != nil {
		return fmt.Errorf("failed to update election status: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return ErrElectionNotFound
	}

	slog.Info("election status forced", "election_id", electionID, "status", status, "admin_id", actor.ID)
	return nil
}

// DeleteElection removes an election with its votes and candidates in one
// transaction.
func (s *Service) DeleteElection(ctx context.Context, actor models.Actor, electionID int64) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}

	var votes, candidates int64
	err := db.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := s.electionExists(ctx, tx, electionID); err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx, `DELETE FROM votes WHERE election_id = $1`, electionID)
		if err != nil {
			return fmt.Errorf("failed to delete votes: %w", err)
		}
		votes, _ = res.RowsAffected()

		res, err = tx.ExecContext(ctx, `DELETE FROM candidates WHERE election_id = $1`, electionID)
		if err != nil {
			return fmt.Errorf("failed to delete candidates: %w", err)
		}
		candidates, _ = res.RowsAffected()

		if _, err := tx.ExecContext(ctx, `DELETE FROM elections WHERE id = $1`, electionID); err != nil {
			return fmt.Errorf("failed to delete election: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("election deleted",
		"election_id", electionID,
		"votes", votes,
		"candidates", candidates,
	)
	return nil
}

// GetElection returns one election with a reconciled status.
func (s *Service) GetElection(ctx context.Context, electionID int64) (models.Election, error) {
	return s.loadElection(ctx, s.db, electionID)
}

// ListElections returns all elections, newest first.
func (s *Service) ListElections(ctx context.Context) ([]models.Election, error) {
	if _, err := s.Reconcile(ctx); err != nil {
		return nil, err
	}
	return s.queryElections(ctx, `
		SELECT `+electionColumns+`
		FROM elections e
		ORDER BY e.created_at DESC, e.id DESC
	`)
}

// Dashboard returns admin counts and the five most recent elections.
func (s *Service) Dashboard(ctx context.Context) (models.DashboardCounts, []models.Election, error) {
	var c models.DashboardCounts
	err := s.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM users WHERE role = $1),
			(SELECT COUNT(*) FROM elections),
			(SELECT COUNT(*) FROM candidates),
			(SELECT COUNT(*) FROM votes)
	`, models.RoleStudent).Scan(&c.StudentCount, &c.ElectionCount, &c.CandidateCount, &c.VoteCount)
	if err != nil {
		return c, nil, fmt.Errorf("failed to count dashboard totals: %w", err)
	}

	if _, err := s.Reconcile(ctx); err != nil {
		return c, nil, err
	}
	recent, err := s.queryElections(ctx, `
		SELECT `+electionColumns+`
		FROM elections e
		ORDER BY e.created_at DESC, e.id DESC
		LIMIT 5
	`)
	if err != nil {
		return c, nil, err
	}
	return c, recent, nil
}

// StudentElections lists elections ongoing first, then upcoming, then
// completed, annotated for the given student.
func (s *Service) StudentElections(ctx context.Context, actor models.Actor) ([]models.StudentElection, error) {
	if !actor.IsStudent() {
		return nil, ErrForbidden
	}
	if _, err := s.Reconcile(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+electionColumns+`,
			(SELECT COUNT(*) FROM candidates c WHERE c.election_id = e.id AND c.user_id = $1),
			(SELECT COUNT(*) FROM votes v WHERE v.election_id = e.id AND v.voter_id = $1),
			(SELECT COUNT(*) FROM candidates c WHERE c.election_id = e.id AND c.status = $2)
		FROM elections e
		ORDER BY
			CASE e.status
				WHEN 'ongoing' THEN 1
				WHEN 'upcoming' THEN 2
				ELSE 3
			END,
			e.start_date DESC,
			e.id DESC
	`, actor.ID, models.CandidateApproved)
	if err != nil {
		return nil, fmt.Errorf("failed to query elections: %w", err)
	}
	defer rows.Close()

	elections := []models.StudentElection{}
	for rows.Next() {
		var se models.StudentElection
		var isCandidate, hasVoted int
		se.Election, err = scanElection(rows, &isCandidate, &hasVoted, &se.CandidateCount)
		if err != nil {
			return nil, fmt.Errorf("failed to scan election: %w", err)
		}
		se.IsCandidate = isCandidate > 0
		se.HasVoted = hasVoted > 0
		elections = append(elections, se)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate elections: %w", err)
	}
	return elections, nil
}

func (s *Service) queryElections(ctx context.Context, query string, args ...any) ([]models.Election, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query elections: %w", err)
	}
	defer rows.Close()

	elections := []models.Election{}
	for rows.Next() {
		e, err := scanElection(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan election: %w", err)
		}
		elections = append(elections, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate elections: %w", err)
	}
	return elections, nil
}
