// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the college voting API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

NewRouterWithService does the same around an existing election.Service.

# Endpoints

Health:

	GET /health

Accounts and sessions (public, except /me):

	POST /register - Create a student account
	POST /login    - Issue a session token and cookie
	POST /logout   - Clear the session cookie
	GET  /me       - Current session

Admin (requires an admin session):

	GET    /admin/dashboard                - Counts and recent elections
	GET    /admin/students                 - Student roster
	GET    /admin/elections                - All elections
	POST   /admin/elections                - Create election
	GET    /admin/elections/{id}           - Election details
	POST   /admin/elections/{id}/status    - Override status
	DELETE /admin/elections/{id}           - Delete with votes and candidates
	GET    /admin/elections/{id}/results   - Live tallies
	GET    /admin/candidates               - Review queue (?election_id=&status=)
	POST   /admin/candidates/{id}/approve  - Approve
	POST   /admin/candidates/{id}/reject   - Reject
	DELETE /admin/candidates/{id}          - Remove a candidate without votes

Student (requires a student session):

	GET  /student/elections                - Elections with personal flags
	POST /student/elections/{id}/candidacy - Run for a position
	GET  /student/elections/{id}/ballot    - Approved candidates
	POST /student/elections/{id}/votes     - Cast the single vote
	GET  /student/elections/{id}/results   - Results once the election is over

Every route except /health and / is wrapped in middleware.WithLogging.
*/
package router
