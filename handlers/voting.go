// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/college-vote/election"
	"github.com/danielhkuo/college-vote/middleware"
	"github.com/danielhkuo/college-vote/models"
)

type VotingHandler struct {
	svc *election.Service
}

func NewVotingHandler(svc *election.Service) *VotingHandler {
	return &VotingHandler{svc: svc}
}

// Elections handles GET /student/elections
func (h *VotingHandler) Elections(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}

	elections, err := h.svc.StudentElections(r.Context(), actor)
	if err != nil {
		writeServiceError(w, err, "failed to list student elections", "user_id", actor.ID)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, elections)
}

// Ballot handles GET /student/elections/{id}/ballot
func (h *VotingHandler) Ballot(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}
	electionID, ok := pathID(w, r)
	if !ok {
		return
	}

	e, candidates, err := h.svc.Ballot(r.Context(), actor, electionID)
	if err != nil {
		writeServiceError(w, err, "failed to load ballot", "election_id", electionID)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.BallotResponse{
		Election:   e,
		Candidates: candidates,
	})
}

// CastVote handles POST /student/elections/{id}/votes
func (h *VotingHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}
	electionID, ok := pathID(w, r)
	if !ok {
		return
	}

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.CandidateID <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "candidate_id is required")
		return
	}

	voteID, err := h.svc.CastVote(r.Context(), actor, electionID, req.CandidateID)
	if err != nil {
		writeServiceError(w, err, "failed to cast vote", "election_id", electionID)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.CastVoteResponse{
		VoteID:  voteID,
		Message: "Your vote has been recorded",
	})
}
