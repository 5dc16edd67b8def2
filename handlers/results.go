// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/college-vote/election"
	"github.com/danielhkuo/college-vote/middleware"
	"github.com/danielhkuo/college-vote/models"
)

type ResultsHandler struct {
	svc *election.Service
}

func NewResultsHandler(svc *election.Service) *ResultsHandler {
	return &ResultsHandler{svc: svc}
}

// AdminResults handles GET /admin/elections/{id}/results
// Admins see live tallies at any status.
func (h *ResultsHandler) AdminResults(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	results, err := h.svc.ComputeResults(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "failed to compute results", "election_id", id)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, results)
}

// StudentResults handles GET /student/elections/{id}/results
// Tallies are sealed until the election has ended or an admin completed it;
// before that the response only carries the timing fields.
func (h *ResultsHandler) StudentResults(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	e, err := h.svc.GetElection(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "failed to get election", "election_id", id)
		return
	}

	now := h.svc.Now()
	resp := models.StudentResultsResponse{
		Election:       e,
		CanViewResults: election.CanViewResults(e, now),
		CurrentTime:    now,
		EndTime:        e.EndDate,
	}

	if resp.CanViewResults {
		results, err := h.svc.ComputeResults(r.Context(), id)
		if err != nil {
			writeServiceError(w, err, "failed to compute results", "election_id", id)
			return
		}
		resp.Results = &results
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}
