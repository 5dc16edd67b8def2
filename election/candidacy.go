// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/danielhkuo/college-vote/db"
	"github.com/danielhkuo/college-vote/models"
)

// CandidateFilter narrows ListCandidates. The zero value matches all.
type CandidateFilter struct {
	Status string
}

// RequestCandidacy registers the student as a pending candidate.
func (s *Service) RequestCandidacy(ctx context.Context, actor models.Actor, electionID int64, position, manifesto string) (int64, error) {
	if !actor.IsStudent() {
		return 0, ErrForbidden
	}
	position = strings.TrimSpace(position)
	if position == "" {
		return 0, ErrMissingPosition
	}

	e, err := s.loadElection(ctx, s.db, electionID)
	if err != nil {
		return 0, err
	}
	if e.Status != models.StatusUpcoming && e.Status != models.StatusOngoing {
		return 0, ErrElectionNotOpenForCandidacy
	}

	var exists bool
	err = s.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM candidates
			WHERE election_id = $1 AND user_id = $2
		)
	`, electionID, actor.ID).Scan(&exists)
	if err != nil {
		return 0, fmt.Errorf("failed to check candidacy: %w", err)
	}
	if exists {
		return 0, ErrDuplicateCandidacy
	}

	// UNIQUE (user_id, election_id) catches a concurrent duplicate
	var id int64
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO candidates (user_id, election_id, position, manifesto, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, actor.ID, electionID, position, manifesto, models.CandidatePending, s.Now()).Scan(&id)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return 0, ErrDuplicateCandidacy
		}
		return 0, fmt.Errorf("failed to insert candidate: %w", err)
	}

	slog.Info("candidacy requested", "candidate_id", id, "election_id", electionID, "user_id", actor.ID)
	return id, nil
}

// DecideCandidacy approves or rejects a candidate. Repeating the current
// decision is a no-op. An approved candidate holding votes cannot be
// rejected.
func (s *Service) DecideCandidacy(ctx context.Context, actor models.Actor, candidateID int64, decision string) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}
	if decision != models.CandidateApproved && decision != models.CandidateRejected {
		return ErrInvalidDecision
	}

	return db.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		var current string
		err := tx.QueryRowContext(ctx, `
			SELECT status FROM candidates WHERE id = $1
		`, candidateID).Scan(&current)
		if err == sql.ErrNoRows {
			return ErrCandidateNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to query candidate: %w", err)
		}

		if current == decision {
			return nil
		}

		res, err := tx.ExecContext(ctx, `
			UPDATE candidates
			SET status = $1
			WHERE id = $2
			  AND NOT EXISTS (SELECT 1 FROM votes WHERE candidate_id = $2)
		`, decision, candidateID)
		if err != nil {
			return fmt.Errorf("failed to update candidate: %w", err)
		}
		if n, err := res.RowsAffected(); err != nil {
			return fmt.Errorf("failed to read rows affected: %w", err)
		} else if n == 0 {
			return ErrCandidateHasVotes
		}

		slog.Info("candidacy decided", "candidate_id", candidateID, "status", decision, "admin_id", actor.ID)
		return nil
	})
}

// DeleteCandidate removes a candidate that has received no votes.
func (s *Service) DeleteCandidate(ctx context.Context, actor models.Actor, candidateID int64) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}

	return db.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		var votes int
		err := tx.QueryRowContext(ctx, `
			SELECT (SELECT COUNT(*) FROM votes WHERE candidate_id = $1)
			FROM candidates WHERE id = $1
		`, candidateID).Scan(&votes)
		if err == sql.ErrNoRows {
			return ErrCandidateNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to query candidate: %w", err)
		}
		if votes > 0 {
			return ErrCandidateHasVotes
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM candidates WHERE id = $1`, candidateID); err != nil {
			return fmt.Errorf("failed to delete candidate: %w", err)
		}

		slog.Info("candidate deleted", "candidate_id", candidateID, "admin_id", actor.ID)
		return nil
	})
}

// ListCandidates returns candidates with owner and election details, pending
// first, then approved, then rejected, each group ordered by position.
// An electionID of 0 lists candidates of every election.
func (s *Service) ListCandidates(ctx context.Context, electionID int64, filter CandidateFilter) ([]models.CandidateView, error) {
	var where []string
	var args []any

	if electionID != 0 {
		if err := s.electionExists(ctx, s.db, electionID); err != nil {
			return nil, err
		}
		args = append(args, electionID)
		where = append(where, "c.election_id = $"+strconv.Itoa(len(args)))
	}
	if filter.Status != "" {
		switch filter.Status {
		case models.CandidatePending, models.CandidateApproved, models.CandidateRejected:
		default:
			return nil, ErrInvalidFilter
		}
		args = append(args, filter.Status)
		where = append(where, "c.status = $"+strconv.Itoa(len(args)))
	}

	query := `
		SELECT c.id, c.user_id, c.election_id, c.position, c.manifesto, c.status, c.created_at,
		       u.full_name, u.college_id, e.title
		FROM candidates c
		JOIN users u ON c.user_id = u.id
		JOIN elections e ON c.election_id = e.id`
	if len(where) > 0 {
		query += "\n\t\tWHERE " + strings.Join(where, " AND ")
	}
	query += `
		ORDER BY
			CASE c.status
				WHEN 'pending' THEN 0
				WHEN 'approved' THEN 1
				ELSE 2
			END,
			c.position,
			c.id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}
	defer rows.Close()

	candidates := []models.CandidateView{}
	for rows.Next() {
		var cv models.CandidateView
		if err := rows.Scan(
			&cv.ID, &cv.UserID, &cv.ElectionID, &cv.Position, &cv.Manifesto, &cv.Status, &cv.CreatedAt,
			&cv.FullName, &cv.CollegeID, &cv.ElectionTitle,
		); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		cv.CreatedAt = cv.CreatedAt.UTC()
		candidates = append(candidates, cv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate candidates: %w", err)
	}
	return candidates, nil
}
