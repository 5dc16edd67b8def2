// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package election implements the voting rules over the relational store.

	svc := election.NewService(db)
	id, err := svc.CreateElection(ctx, actor, models.NewElection{...})

Every operation takes the caller as a models.Actor and checks its role
itself.

# Status

ResolveStatus derives upcoming, ongoing or completed from the election
window; both bounds count as ongoing. The stored status is a cache that
only moves forward. Reads that depend on it reconcile first, Reconcile
sweeps all elections, and RunReconciler runs the sweep on a cron schedule.

UpdateStatus is the admin override. It is kept until the window crosses a
boundary it had not yet crossed when the override was made; at that point
the automatic pass takes over again.

# Candidacy

Students apply while an election is upcoming or ongoing, once per
election. Admins approve or reject; repeating a decision is a no-op. A
candidate that already holds votes cannot be rejected or deleted, so the
tallies always add up to the stored votes.

# Ballots

CastVote runs its checks and the insert in one transaction. The
UNIQUE (election_id, voter_id) constraint settles races between
concurrent submissions by the same student.

# Results

ComputeResults counts votes per approved candidate, highest first, ties in
candidate creation order. CanViewResults decides whether students may see
them.

# Errors

Domain failures are *Error values with a Kind and a stable Code:

	switch election.KindOf(err) {
	case election.KindNotFound:
	case election.KindConflict:
	}

	if errors.Is(err, election.ErrAlreadyVoted) { ... }

Anything else is a store failure and carries no client-facing detail.
*/
package election
