// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/danielhkuo/college-vote/models"
	"github.com/danielhkuo/college-vote/testutil"
)

func TestCastVote_Window(t *testing.T) {
	svc, conn, _ := newTestService(t)
	ctx := context.Background()

	runner := testutil.CreateTestUser(t, conn, "S1", "Runner", models.RoleStudent)
	voter := testutil.CreateTestUser(t, conn, "S2", "Voter", models.RoleStudent)

	// Stored statuses are stale on purpose; CastVote reconciles first
	open := testutil.CreateTestElection(t, conn, "Open", models.StatusUpcoming, base.Add(-time.Hour), base.Add(time.Hour))
	future := testutil.CreateTestElection(t, conn, "Future", models.StatusUpcoming, base.Add(time.Hour), base.Add(2*time.Hour))
	past := testutil.CreateTestElection(t, conn, "Past", models.StatusOngoing, base.Add(-2*time.Hour), base.Add(-time.Hour))

	cOpen := testutil.AddTestCandidate(t, conn, runner, open, "President", models.CandidateApproved)
	cFuture := testutil.AddTestCandidate(t, conn, runner, future, "President", models.CandidateApproved)
	cPast := testutil.AddTestCandidate(t, conn, runner, past, "President", models.CandidateApproved)

	if _, err := svc.CastVote(ctx, student(voter), open, cOpen); err != nil {
		t.Errorf("Expected vote inside window to succeed, got %v", err)
	}
	if _, err := svc.CastVote(ctx, student(voter), future, cFuture); !errors.Is(err, ErrElectionNotOpen) {
		t.Errorf("Expected ErrElectionNotOpen before start, got %v", err)
	}
	if _, err := svc.CastVote(ctx, student(voter), past, cPast); !errors.Is(err, ErrElectionNotOpen) {
		t.Errorf("Expected ErrElectionNotOpen after end, got %v", err)
	}

	if got := storedStatus(t, conn, open); got != models.StatusOngoing {
		t.Errorf("Expected open election reconciled to ongoing, got %s", got)
	}
	if n := testutil.CountRows(t, conn, `SELECT COUNT(*) FROM votes`); n != 1 {
		t.Errorf("Expected 1 vote row, got %d", n)
	}
}

func TestCastVote_Errors(t *testing.T) {
	svc, conn, _ := newTestService(t)
	ctx := context.Background()

	runner := testutil.CreateTestUser(t, conn, "S1", "Runner", models.RoleStudent)
	hopeful := testutil.CreateTestUser(t, conn, "S2", "Hopeful", models.RoleStudent)
	voter := testutil.CreateTestUser(t, conn, "S3", "Voter", models.RoleStudent)

	e := testutil.CreateTestElection(t, conn, "Council", models.StatusOngoing, base.Add(-time.Hour), base.Add(time.Hour))
	other := testutil.CreateTestElection(t, conn, "Other", models.StatusOngoing, base.Add(-time.Hour), base.Add(time.Hour))
	approved := testutil.AddTestCandidate(t, conn, runner, e, "President", models.CandidateApproved)
	pending := testutil.AddTestCandidate(t, conn, hopeful, e, "President", models.CandidatePending)
	elsewhere := testutil.AddTestCandidate(t, conn, runner, other, "President", models.CandidateApproved)

	tests := []struct {
		name      string
		actor     models.Actor
		election  int64
		candidate int64
		want      error
	}{
		{"admin", admin, e, approved, ErrForbidden},
		{"missing election", student(voter), other + 100, approved, ErrElectionNotFound},
		{"pending candidate", student(voter), e, pending, ErrInvalidCandidate},
		{"candidate of another election", student(voter), e, elsewhere, ErrInvalidCandidate},
		{"missing candidate", student(voter), e, elsewhere + 100, ErrInvalidCandidate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.CastVote(ctx, tt.actor, tt.election, tt.candidate); !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}

	if _, err := svc.CastVote(ctx, student(voter), e, approved); err != nil {
		t.Fatalf("Expected first vote to succeed, got %v", err)
	}
	_, err := svc.CastVote(ctx, student(voter), e, approved)
	if !errors.Is(err, ErrAlreadyVoted) || KindOf(err) != KindConflict {
		t.Errorf("Expected conflict ErrAlreadyVoted, got %v", err)
	}

	voted, err := svc.HasVoted(ctx, voter, e)
	if err != nil || !voted {
		t.Errorf("Expected HasVoted true, got %v, %v", voted, err)
	}
	voted, err = svc.HasVoted(ctx, voter, other)
	if err != nil || voted {
		t.Errorf("Expected HasVoted false for other election, got %v, %v", voted, err)
	}
}

func TestCastVote_ConcurrentSameVoter(t *testing.T) {
	svc, conn, _ := newTestService(t)
	ctx := context.Background()

	runner := testutil.CreateTestUser(t, conn, "S1", "Runner", models.RoleStudent)
	voter := testutil.CreateTestUser(t, conn, "S2", "Voter", models.RoleStudent)
	e := testutil.CreateTestElection(t, conn, "Race", models.StatusOngoing, base.Add(-time.Hour), base.Add(time.Hour))
	c := testutil.AddTestCandidate(t, conn, runner, e, "President", models.CandidateApproved)

	const attempts = 20
	var successes, alreadyVoted atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.CastVote(ctx, student(voter), e, c)
			switch {
			case err == nil:
				successes.Add(1)
			case errors.Is(err, ErrAlreadyVoted):
				alreadyVoted.Add(1)
			default:
				t.Errorf("Unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if successes.Load() != 1 {
		t.Errorf("Expected 1 success, got %d", successes.Load())
	}
	if alreadyVoted.Load() != attempts-1 {
		t.Errorf("Expected %d AlreadyVoted, got %d", attempts-1, alreadyVoted.Load())
	}
	if n := testutil.CountRows(t, conn, `SELECT COUNT(*) FROM votes WHERE election_id = $1 AND voter_id = $2`, e, voter); n != 1 {
		t.Errorf("Expected 1 vote row, got %d", n)
	}
}

func TestBallot(t *testing.T) {
	svc, conn, _ := newTestService(t)
	ctx := context.Background()

	runner := testutil.CreateTestUser(t, conn, "S1", "Runner", models.RoleStudent)
	hopeful := testutil.CreateTestUser(t, conn, "S2", "Hopeful", models.RoleStudent)
	voter := testutil.CreateTestUser(t, conn, "S3", "Voter", models.RoleStudent)

	e := testutil.CreateTestElection(t, conn, "Council", models.StatusOngoing, base.Add(-time.Hour), base.Add(time.Hour))
	empty := testutil.CreateTestElection(t, conn, "Empty", models.StatusOngoing, base.Add(-time.Hour), base.Add(time.Hour))
	future := testutil.CreateTestElection(t, conn, "Future", models.StatusUpcoming, base.Add(time.Hour), base.Add(2*time.Hour))

	c := testutil.AddTestCandidate(t, conn, runner, e, "President", models.CandidateApproved)
	testutil.AddTestCandidate(t, conn, hopeful, e, "President", models.CandidatePending)

	got, candidates, err := svc.Ballot(ctx, student(voter), e)
	if err != nil {
		t.Fatalf("Ballot failed: %v", err)
	}
	if got.ID != e || len(candidates) != 1 || candidates[0].ID != c || candidates[0].FullName != "Runner" {
		t.Errorf("Unexpected ballot %+v %+v", got, candidates)
	}

	if _, _, err := svc.Ballot(ctx, student(voter), empty); !errors.Is(err, ErrNoApprovedCandidates) {
		t.Errorf("Expected ErrNoApprovedCandidates, got %v", err)
	}
	if _, _, err := svc.Ballot(ctx, student(voter), future); !errors.Is(err, ErrElectionNotOpen) {
		t.Errorf("Expected ErrElectionNotOpen, got %v", err)
	}
	if _, _, err := svc.Ballot(ctx, admin, e); !errors.Is(err, ErrForbidden) {
		t.Errorf("Expected ErrForbidden, got %v", err)
	}

	if _, err := svc.CastVote(ctx, student(voter), e, c); err != nil {
		t.Fatal(err)
	}
	if _, _, err := svc.Ballot(ctx, student(voter), e); !errors.Is(err, ErrAlreadyVoted) {
		t.Errorf("Expected ErrAlreadyVoted after voting, got %v", err)
	}
}
