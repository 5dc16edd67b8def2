// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/college-vote/election"
	"github.com/danielhkuo/college-vote/middleware"
	"github.com/danielhkuo/college-vote/models"
)

type ElectionHandler struct {
	svc *election.Service
}

func NewElectionHandler(svc *election.Service) *ElectionHandler {
	return &ElectionHandler{svc: svc}
}

// CreateElection handles POST /admin/elections
func (h *ElectionHandler) CreateElection(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}

	var req models.CreateElectionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	id, err := h.svc.CreateElection(r.Context(), actor, models.NewElection{
		Title:       req.Title,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	})
	if err != nil {
		writeServiceError(w, err, "failed to create election")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.CreatedResponse{ID: id})
}

// ListElections handles GET /admin/elections
func (h *ElectionHandler) ListElections(w http.ResponseWriter, r *http.Request) {
	elections, err := h.svc.ListElections(r.Context())
	if err != nil {
		writeServiceError(w, err, "failed to list elections")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, elections)
}

// GetElection handles GET /admin/elections/{id}
func (h *ElectionHandler) GetElection(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	e, err := h.svc.GetElection(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "failed to get election", "election_id", id)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, e)
}

// UpdateStatus handles POST /admin/elections/{id}/status
func (h *ElectionHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req models.UpdateStatusRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := h.svc.UpdateStatus(r.Context(), actor, id, req.Status); err != nil {
		writeServiceError(w, err, "failed to update election status", "election_id", id)
		return
	}

	e, err := h.svc.GetElection(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "failed to get election", "election_id", id)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, e)
}

// DeleteElection handles DELETE /admin/elections/{id}
func (h *ElectionHandler) DeleteElection(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.svc.DeleteElection(r.Context(), actor, id); err != nil {
		writeServiceError(w, err, "failed to delete election", "election_id", id)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Dashboard handles GET /admin/dashboard
func (h *ElectionHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	counts, recent, err := h.svc.Dashboard(r.Context())
	if err != nil {
		writeServiceError(w, err, "failed to load dashboard")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.DashboardResponse{
		Counts:    counts,
		Elections: recent,
	})
}

// ListStudents handles GET /admin/students
func (h *ElectionHandler) ListStudents(w http.ResponseWriter, r *http.Request) {
	students, err := h.svc.ListStudents(r.Context())
	if err != nil {
		writeServiceError(w, err, "failed to list students")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, students)
}
