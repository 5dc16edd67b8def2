// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the college voting API.

# Handler Types

Each handler is a struct holding the election service and config:

  - AuthHandler: registration, login, logout, current session
  - ElectionHandler: admin election lifecycle, dashboard, student roster
  - CandidateHandler: candidacy requests and admin review
  - VotingHandler: student election listing, ballot, vote casting
  - ResultsHandler: admin tallies and sealed student results

Handlers are created via constructor functions:

	svc := election.NewService(db)
	electionHandler := handlers.NewElectionHandler(svc)

# Sessions

Handlers read the caller from the request context. The router wraps every
protected route in middleware.RequireRole, so handlers never parse tokens
themselves. Login returns the token in the body and sets it as the
session cookie.

# Election Lifecycle

	POST   /admin/elections             → CreateElection
	POST   /admin/elections/{id}/status → UpdateStatus (admin override)
	DELETE /admin/elections/{id}        → DeleteElection (votes and candidates too)

Status is derived from the election window and reconciled on every read;
an override holds until the window crosses its next boundary.

# Voting Flow

	POST /student/elections/{id}/candidacy → RequestCandidacy (pending)
	POST /admin/candidates/{id}/approve    → Approve
	GET  /student/elections/{id}/ballot    → Ballot
	POST /student/elections/{id}/votes     → CastVote (one per student)
	GET  /student/elections/{id}/results   → StudentResults

# Errors

Service errors map by kind: not found → 404, conflict → 409, invalid
input → 400, forbidden → 403 (401 for bad credentials). The response
carries the error code, e.g. {"error":"Conflict","code":"already_voted"}.
Anything else is logged and answered with a bare 500.
*/
package handlers
