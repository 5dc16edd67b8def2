// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/college-vote/cliparse"
	"github.com/danielhkuo/college-vote/election"
	"github.com/danielhkuo/college-vote/handlers"
	"github.com/danielhkuo/college-vote/middleware"
	"github.com/danielhkuo/college-vote/models"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	return NewRouterWithService(election.NewService(db), cfg)
}

// NewRouterWithService builds the route table around an existing service,
// e.g. one with a fixed clock.
func NewRouterWithService(svc *election.Service, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()
	secret := []byte(cfg.SessionSecret)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(svc, cfg)
	electionHandler := handlers.NewElectionHandler(svc)
	candidateHandler := handlers.NewCandidateHandler(svc)
	votingHandler := handlers.NewVotingHandler(svc)
	resultsHandler := handlers.NewResultsHandler(svc)

	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireRole(secret, models.RoleAdmin, h))
	}
	student := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireRole(secret, models.RoleStudent, h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Accounts and sessions
	mux.HandleFunc("POST /register", middleware.WithLogging(authHandler.Register))
	mux.HandleFunc("POST /login", middleware.WithLogging(authHandler.Login))
	mux.HandleFunc("POST /logout", middleware.WithLogging(authHandler.Logout))
	mux.HandleFunc("GET /me", middleware.WithLogging(middleware.RequireSession(secret, authHandler.Me)))

	// Admin
	mux.HandleFunc("GET /admin/dashboard", admin(electionHandler.Dashboard))
	mux.HandleFunc("GET /admin/students", admin(electionHandler.ListStudents))
	mux.HandleFunc("GET /admin/elections", admin(electionHandler.ListElections))
	mux.HandleFunc("POST /admin/elections", admin(electionHandler.CreateElection))
	mux.HandleFunc("GET /admin/elections/{id}", admin(electionHandler.GetElection))
	mux.HandleFunc("POST /admin/elections/{id}/status", admin(electionHandler.UpdateStatus))
	mux.HandleFunc("DELETE /admin/elections/{id}", admin(electionHandler.DeleteElection))
	mux.HandleFunc("GET /admin/elections/{id}/results", admin(resultsHandler.AdminResults))
	mux.HandleFunc("GET /admin/candidates", admin(candidateHandler.ListCandidates))
	mux.HandleFunc("POST /admin/candidates/{id}/approve", admin(candidateHandler.Approve))
	mux.HandleFunc("POST /admin/candidates/{id}/reject", admin(candidateHandler.Reject))
	mux.HandleFunc("DELETE /admin/candidates/{id}", admin(candidateHandler.DeleteCandidate))

	// Student
	mux.HandleFunc("GET /student/elections", student(votingHandler.Elections))
	mux.HandleFunc("POST /student/elections/{id}/candidacy", student(candidateHandler.RequestCandidacy))
	mux.HandleFunc("GET /student/elections/{id}/ballot", student(votingHandler.Ballot))
	mux.HandleFunc("POST /student/elections/{id}/votes", student(votingHandler.CastVote))
	mux.HandleFunc("GET /student/elections/{id}/results", student(resultsHandler.StudentResults))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("college-vote API v1"))
	})

	return mux
}
