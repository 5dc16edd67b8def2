// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/danielhkuo/college-vote/db"
	"github.com/danielhkuo/college-vote/models"
)

// CastVote records the student's single vote in an ongoing election.
//
// The checks and the insert run in one transaction. The UNIQUE
// (election_id, voter_id) constraint is the final arbiter: when two
// attempts race past the existence check, the loser's insert fails and is
// reported as ErrAlreadyVoted.
func (s *Service) CastVote(ctx context.Context, actor models.Actor, electionID, candidateID int64) (int64, error) {
	if !actor.IsStudent() {
		return 0, ErrForbidden
	}

	var voteID int64
	err := db.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		e, err := s.loadElection(ctx, tx, electionID)
		if err != nil {
			return err
		}
		if e.Status != models.StatusOngoing {
			return ErrElectionNotOpen
		}

		var voted bool
		err = tx.QueryRowContext(ctx, `
			SELECT EXISTS(
				SELECT 1 FROM votes
				WHERE election_id = $1 AND voter_id = $2
			)
		`, electionID, actor.ID).Scan(&voted)
		if err != nil {
			return fmt.Errorf("failed to check existing vote: %w", err)
		}
		if voted {
			return ErrAlreadyVoted
		}

		var status string
		err = tx.QueryRowContext(ctx, `
			SELECT status FROM candidates
			WHERE id = $1 AND election_id = $2
		`, candidateID, electionID).Scan(&status)
		if err == sql.ErrNoRows {
			return ErrInvalidCandidate
		}
		if err != nil {
			return fmt.Errorf("failed to query candidate: %w", err)
		}
		if status != models.CandidateApproved {
			return ErrInvalidCandidate
		}

		err = tx.QueryRowContext(ctx, `
			INSERT INTO votes (election_id, voter_id, candidate_id, created_at)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, electionID, actor.ID, candidateID, s.Now()).Scan(&voteID)
		if err != nil {
			if db.IsUniqueViolation(err) {
				return ErrAlreadyVoted
			}
			return fmt.Errorf("failed to insert vote: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	slog.Info("vote cast", "vote_id", voteID, "election_id", electionID)
	return voteID, nil
}

// HasVoted reports whether a committed vote exists for the voter.
func (s *Service) HasVoted(ctx context.Context, voterID, electionID int64) (bool, error) {
	var voted bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM votes
			WHERE election_id = $1 AND voter_id = $2
		)
	`, electionID, voterID).Scan(&voted)
	if err != nil {
		return false, fmt.Errorf("failed to check vote: %w", err)
	}
	return voted, nil
}

// Ballot returns an ongoing election and its approved candidates for a
// student who has not voted yet.
func (s *Service) Ballot(ctx context.Context, actor models.Actor, electionID int64) (models.Election, []models.CandidateView, error) {
	if !actor.IsStudent() {
		return models.Election{}, nil, ErrForbidden
	}

	e, err := s.loadElection(ctx, s.db, electionID)
	if err != nil {
		return models.Election{}, nil, err
	}
	if e.Status != models.StatusOngoing {
		return models.Election{}, nil, ErrElectionNotOpen
	}

	voted, err := s.HasVoted(ctx, actor.ID, electionID)
	if err != nil {
		return models.Election{}, nil, err
	}
	if voted {
		return models.Election{}, nil, ErrAlreadyVoted
	}

	candidates, err := s.ListCandidates(ctx, electionID, CandidateFilter{Status: models.CandidateApproved})
	if err != nil {
		return models.Election{}, nil, err
	}
	if len(candidates) == 0 {
		return models.Election{}, nil, ErrNoApprovedCandidates
	}
	return e, candidates, nil
}
