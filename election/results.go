// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"context"
	"fmt"
	"sort"

	"github.com/danielhkuo/college-vote/models"
)

// ComputeResults tallies votes for every approved candidate, most votes
// first, ties in candidate insertion order. Visibility is the caller's
// concern; see CanViewResults.
func (s *Service) ComputeResults(ctx context.Context, electionID int64) (models.Results, error) {
	if err := s.electionExists(ctx, s.db, electionID); err != nil {
		return models.Results{}, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT c.id, u.full_name, c.position, COUNT(v.id)
		FROM candidates c
		JOIN users u ON c.user_id = u.id
		LEFT JOIN votes v ON v.candidate_id = c.id AND v.election_id = c.election_id
		WHERE c.election_id = $1 AND c.status = $2
		GROUP BY c.id, u.full_name, c.position
		ORDER BY c.id
	`, electionID, models.CandidateApproved)
	if err != nil {
		return models.Results{}, fmt.Errorf("failed to query results: %w", err)
	}
	defer rows.Close()

	tallies := []models.Tally{}
	for rows.Next() {
		var t models.Tally
		if err := rows.Scan(&t.CandidateID, &t.FullName, &t.Position, &t.Votes); err != nil {
			return models.Results{}, fmt.Errorf("failed to scan result: %w", err)
		}
		tallies = append(tallies, t)
	}
	if err := rows.Err(); err != nil {
		return models.Results{}, fmt.Errorf("failed to iterate results: %w", err)
	}

	// Rows arrive in id order, so a stable sort keeps ties in insertion order
	sort.SliceStable(tallies, func(i, j int) bool {
		return tallies[i].Votes > tallies[j].Votes
	})

	total := 0
	for _, t := range tallies {
		total += t.Votes
	}

	return models.Results{
		ElectionID: electionID,
		Tallies:    tallies,
		TotalVotes: total,
	}, nil
}
