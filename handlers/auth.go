// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/college-vote/auth"
	"github.com/danielhkuo/college-vote/cliparse"
	"github.com/danielhkuo/college-vote/election"
	"github.com/danielhkuo/college-vote/middleware"
	"github.com/danielhkuo/college-vote/models"
)

type AuthHandler struct {
	svc *election.Service
	cfg cliparse.Config
}

func NewAuthHandler(svc *election.Service, cfg cliparse.Config) *AuthHandler {
	return &AuthHandler{svc: svc, cfg: cfg}
}

// Register handles POST /register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	id, err := h.svc.Register(r.Context(), req)
	if err != nil {
		writeServiceError(w, err, "failed to register student", "college_id", req.CollegeID)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.RegisterResponse{
		UserID:  id,
		Message: "Registration successful. Please log in.",
	})
}

// Login handles POST /login
// The token is returned in the body and also set as the session cookie.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	actor, err := h.svc.Authenticate(r.Context(), req.CollegeID, req.Password)
	if err != nil {
		writeServiceError(w, err, "failed to authenticate", "college_id", req.CollegeID)
		return
	}

	token, err := auth.IssueSessionToken(actor, []byte(h.cfg.SessionSecret), h.cfg.SessionTTL)
	if err != nil {
		slog.Error("failed to issue session token", "error", err, "user_id", actor.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.cfg.SessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	slog.Info("user logged in", "user_id", actor.ID, "role", actor.Role)

	middleware.JSONResponse(w, http.StatusOK, models.LoginResponse{
		Token: token,
		Actor: actor,
	})
}

// Logout handles POST /logout
// Tokens are stateless; logging out clears the cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, actor)
}
