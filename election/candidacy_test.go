// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/danielhkuo/college-vote/models"
	"github.com/danielhkuo/college-vote/testutil"
)

func TestRequestCandidacy(t *testing.T) {
	svc, conn, clock := newTestService(t)
	ctx := context.Background()

	uid := testutil.CreateTestUser(t, conn, "S1", "Runner", models.RoleStudent)
	// Stored upcoming, window opens in one hour
	e := testutil.CreateTestElection(t, conn, "Council", models.StatusUpcoming, base.Add(time.Hour), base.Add(2*time.Hour))

	id, err := svc.RequestCandidacy(ctx, student(uid), e, " President ", "Free printing")
	if err != nil {
		t.Fatalf("RequestCandidacy failed: %v", err)
	}

	list, err := svc.ListCandidates(ctx, e, CandidateFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].ID != id || list[0].Status != models.CandidatePending || list[0].Position != "President" {
		t.Fatalf("Unexpected candidates %+v", list)
	}

	if _, err := svc.RequestCandidacy(ctx, student(uid), e, "Treasurer", ""); !errors.Is(err, ErrDuplicateCandidacy) {
		t.Errorf("Expected ErrDuplicateCandidacy, got %v", err)
	}

	// Candidacy stays open while the election runs and closes after it ends
	other := testutil.CreateTestUser(t, conn, "S2", "Late", models.RoleStudent)
	clock.Set(base.Add(90 * time.Minute))
	if _, err := svc.RequestCandidacy(ctx, student(other), e, "Secretary", ""); err != nil {
		t.Errorf("Expected candidacy during ongoing election, got %v", err)
	}

	latest := testutil.CreateTestUser(t, conn, "S3", "Too Late", models.RoleStudent)
	clock.Set(base.Add(3 * time.Hour))
	if _, err := svc.RequestCandidacy(ctx, student(latest), e, "Secretary", ""); !errors.Is(err, ErrElectionNotOpenForCandidacy) {
		t.Errorf("Expected ErrElectionNotOpenForCandidacy, got %v", err)
	}
	if got := storedStatus(t, conn, e); got != models.StatusCompleted {
		t.Errorf("Expected candidacy check to reconcile status, got %s", got)
	}
}

func TestRequestCandidacy_Errors(t *testing.T) {
	svc, conn, _ := newTestService(t)
	ctx := context.Background()

	uid := testutil.CreateTestUser(t, conn, "S1", "Runner", models.RoleStudent)
	e := testutil.CreateTestElection(t, conn, "Council", models.StatusUpcoming, base.Add(time.Hour), base.Add(2*time.Hour))

	tests := []struct {
		name     string
		actor    models.Actor
		election int64
		position string
		want     error
	}{
		{"admin", admin, e, "President", ErrForbidden},
		{"blank position", student(uid), e, "   ", ErrMissingPosition},
		{"missing election", student(uid), e + 100, "President", ErrElectionNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.RequestCandidacy(ctx, tt.actor, tt.election, tt.position, ""); !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestRequestCandidacy_Concurrent(t *testing.T) {
	svc, conn, _ := newTestService(t)
	ctx := context.Background()

	uid := testutil.CreateTestUser(t, conn, "S1", "Runner", models.RoleStudent)
	e := testutil.CreateTestElection(t, conn, "Council", models.StatusUpcoming, base.Add(time.Hour), base.Add(2*time.Hour))

	const attempts = 8
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.RequestCandidacy(ctx, student(uid), e, "President", "")
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case !errors.Is(err, ErrDuplicateCandidacy):
			t.Errorf("Unexpected error %v", err)
		}
	}
	if ok != 1 {
		t.Errorf("Expected exactly one successful candidacy, got %d", ok)
	}
	if n := testutil.CountRows(t, conn, `SELECT COUNT(*) FROM candidates`); n != 1 {
		t.Errorf("Expected 1 candidate row, got %d", n)
	}
}

func TestDecideCandidacy(t *testing.T) {
	svc, conn, _ := newTestService(t)
	ctx := context.Background()

	uid := testutil.CreateTestUser(t, conn, "S1", "Runner", models.RoleStudent)
	voter := testutil.CreateTestUser(t, conn, "S2", "Voter", models.RoleStudent)
	e := testutil.CreateTestElection(t, conn, "Council", models.StatusOngoing, base.Add(-time.Hour), base.Add(time.Hour))
	c := testutil.AddTestCandidate(t, conn, uid, e, "President", models.CandidatePending)

	candidateStatus := func() string {
		t.Helper()
		var s string
		if err := conn.QueryRow(`SELECT status FROM candidates WHERE id = $1`, c).Scan(&s); err != nil {
			t.Fatal(err)
		}
		return s
	}

	// Idempotent in both directions
	for i := 0; i < 2; i++ {
		if err := svc.DecideCandidacy(ctx, admin, c, models.CandidateRejected); err != nil {
			t.Fatalf("Reject #%d failed: %v", i+1, err)
		}
		if got := candidateStatus(); got != models.CandidateRejected {
			t.Fatalf("Expected rejected, got %s", got)
		}
	}
	for i := 0; i < 2; i++ {
		if err := svc.DecideCandidacy(ctx, admin, c, models.CandidateApproved); err != nil {
			t.Fatalf("Approve #%d failed: %v", i+1, err)
		}
		if got := candidateStatus(); got != models.CandidateApproved {
			t.Fatalf("Expected approved, got %s", got)
		}
	}

	// Once votes exist the approval is locked
	testutil.CastTestVote(t, conn, e, voter, c)
	if err := svc.DecideCandidacy(ctx, admin, c, models.CandidateRejected); !errors.Is(err, ErrCandidateHasVotes) {
		t.Errorf("Expected ErrCandidateHasVotes, got %v", err)
	}
	if err := svc.DecideCandidacy(ctx, admin, c, models.CandidateApproved); err != nil {
		t.Errorf("Re-approving should stay a no-op, got %v", err)
	}
	if got := candidateStatus(); got != models.CandidateApproved {
		t.Errorf("Expected approved to stick, got %s", got)
	}

	tests := []struct {
		name      string
		actor     models.Actor
		candidate int64
		decision  string
		want      error
	}{
		{"student", student(uid), c, models.CandidateApproved, ErrForbidden},
		{"pending is not a decision", admin, c, models.CandidatePending, ErrInvalidDecision},
		{"unknown decision", admin, c, "maybe", ErrInvalidDecision},
		{"missing candidate", admin, c + 100, models.CandidateApproved, ErrCandidateNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := svc.DecideCandidacy(ctx, tt.actor, tt.candidate, tt.decision); !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestDeleteCandidate(t *testing.T) {
	svc, conn, _ := newTestService(t)
	ctx := context.Background()

	u1 := testutil.CreateTestUser(t, conn, "S1", "One", models.RoleStudent)
	u2 := testutil.CreateTestUser(t, conn, "S2", "Two", models.RoleStudent)
	e := testutil.CreateTestElection(t, conn, "Council", models.StatusOngoing, base.Add(-time.Hour), base.Add(time.Hour))
	withVotes := testutil.AddTestCandidate(t, conn, u1, e, "President", models.CandidateApproved)
	without := testutil.AddTestCandidate(t, conn, u2, e, "President", models.CandidateRejected)
	testutil.CastTestVote(t, conn, e, u2, withVotes)

	if err := svc.DeleteCandidate(ctx, admin, withVotes); !errors.Is(err, ErrCandidateHasVotes) {
		t.Errorf("Expected ErrCandidateHasVotes, got %v", err)
	}
	if err := svc.DeleteCandidate(ctx, admin, without); err != nil {
		t.Errorf("DeleteCandidate failed: %v", err)
	}
	if err := svc.DeleteCandidate(ctx, admin, without); !errors.Is(err, ErrCandidateNotFound) {
		t.Errorf("Expected ErrCandidateNotFound, got %v", err)
	}
	if err := svc.DeleteCandidate(ctx, student(u1), withVotes); !errors.Is(err, ErrForbidden) {
		t.Errorf("Expected ErrForbidden, got %v", err)
	}
}

func TestListCandidates_Order(t *testing.T) {
	svc, conn, _ := newTestService(t)
	ctx := context.Background()

	e := testutil.CreateTestElection(t, conn, "Council", models.StatusUpcoming, base.Add(time.Hour), base.Add(2*time.Hour))
	add := func(cid, position, status string) int64 {
		uid := testutil.CreateTestUser(t, conn, cid, "Student "+cid, models.RoleStudent)
		return testutil.AddTestCandidate(t, conn, uid, e, position, status)
	}

	rejected := add("S1", "President", models.CandidateRejected)
	approvedB := add("S2", "Treasurer", models.CandidateApproved)
	pending := add("S3", "President", models.CandidatePending)
	approvedA := add("S4", "President", models.CandidateApproved)

	list, err := svc.ListCandidates(ctx, e, CandidateFilter{})
	if err != nil {
		t.Fatal(err)
	}

	want := []int64{pending, approvedA, approvedB, rejected}
	if len(list) != len(want) {
		t.Fatalf("Expected %d candidates, got %d", len(want), len(list))
	}
	for i, id := range want {
		if list[i].ID != id {
			t.Errorf("Position %d: expected %d, got %d", i, id, list[i].ID)
		}
	}

	approved, err := svc.ListCandidates(ctx, e, CandidateFilter{Status: models.CandidateApproved})
	if err != nil {
		t.Fatal(err)
	}
	if len(approved) != 2 {
		t.Errorf("Expected 2 approved, got %d", len(approved))
	}

	if _, err := svc.ListCandidates(ctx, e, CandidateFilter{Status: "winner"}); !errors.Is(err, ErrInvalidFilter) {
		t.Errorf("Expected ErrInvalidFilter, got %v", err)
	}
	if _, err := svc.ListCandidates(ctx, e+100, CandidateFilter{}); !errors.Is(err, ErrElectionNotFound) {
		t.Errorf("Expected ErrElectionNotFound, got %v", err)
	}
}
