// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - RegisterRequest: college_id, password, confirm_password, full_name
  - LoginRequest: college_id, password
  - CreateElectionRequest: title, description, start_date, end_date (RFC 3339)
  - UpdateStatusRequest: status
  - CandidacyRequest: position, manifesto
  - CastVoteRequest: candidate_id

# Response Types

  - RegisterResponse: user_id, message
  - LoginResponse: token, user
  - CreatedResponse: id
  - CastVoteResponse: vote_id, message
  - BallotResponse: election, candidates
  - StudentResultsResponse: election, can_view_results, current_time, end_time, results
  - DashboardResponse: counts, elections
  - ErrorResponse: error, message, code

# Domain Types

  - Actor: the authenticated caller, passed explicitly to every service call
  - User: account; the password hash never serializes
  - Election: time window, cached status, override timestamp
  - Candidate, CandidateView: application and its joined owner details
  - Vote: one per (election, voter)
  - StudentElection: election with is_candidate, has_voted, candidate_count
  - Tally, Results: per-candidate counts and the total

# Constants

Roles:

	RoleAdmin   = "admin"
	RoleStudent = "student"

Election status:

	StatusUpcoming  = "upcoming"
	StatusOngoing   = "ongoing"
	StatusCompleted = "completed"

Candidate status:

	CandidatePending  = "pending"
	CandidateApproved = "approved"
	CandidateRejected = "rejected"
*/
package models
