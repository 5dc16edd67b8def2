// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"strconv"

	"github.com/danielhkuo/college-vote/election"
	"github.com/danielhkuo/college-vote/middleware"
	"github.com/danielhkuo/college-vote/models"
)

type CandidateHandler struct {
	svc *election.Service
}

func NewCandidateHandler(svc *election.Service) *CandidateHandler {
	return &CandidateHandler{svc: svc}
}

// RequestCandidacy handles POST /student/elections/{id}/candidacy
func (h *CandidateHandler) RequestCandidacy(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}
	electionID, ok := pathID(w, r)
	if !ok {
		return
	}

	var req models.CandidacyRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	id, err := h.svc.RequestCandidacy(r.Context(), actor, electionID, req.Position, req.Manifesto)
	if err != nil {
		writeServiceError(w, err, "failed to request candidacy", "election_id", electionID)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.CreatedResponse{ID: id})
}

// ListCandidates handles GET /admin/candidates?election_id=&status=
func (h *CandidateHandler) ListCandidates(w http.ResponseWriter, r *http.Request) {
	var electionID int64
	if v := r.URL.Query().Get("election_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			middleware.ErrorResponse(w, http.StatusBadRequest, "election_id must be a positive integer")
			return
		}
		electionID = id
	}

	filter := election.CandidateFilter{Status: r.URL.Query().Get("status")}
	candidates, err := h.svc.ListCandidates(r.Context(), electionID, filter)
	if err != nil {
		writeServiceError(w, err, "failed to list candidates", "election_id", electionID)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, candidates)
}

// Approve handles POST /admin/candidates/{id}/approve
func (h *CandidateHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, models.CandidateApproved)
}

// Reject handles POST /admin/candidates/{id}/reject
func (h *CandidateHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, models.CandidateRejected)
}

func (h *CandidateHandler) decide(w http.ResponseWriter, r *http.Request, decision string) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.svc.DecideCandidacy(r.Context(), actor, id, decision); err != nil {
		writeServiceError(w, err, "failed to decide candidacy", "candidate_id", id)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]any{
		"id":     id,
		"status": decision,
	})
}

// DeleteCandidate handles DELETE /admin/candidates/{id}
func (h *CandidateHandler) DeleteCandidate(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.svc.DeleteCandidate(r.Context(), actor, id); err != nil {
		writeServiceError(w, err, "failed to delete candidate", "candidate_id", id)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
