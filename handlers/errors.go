// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/danielhkuo/college-vote/election"
	"github.com/danielhkuo/college-vote/middleware"
	"github.com/danielhkuo/college-vote/models"
)

// writeServiceError renders a service error. Store failures are logged and
// answered without detail.
func writeServiceError(w http.ResponseWriter, err error, logMsg string, attrs ...any) {
	var status int
	switch election.KindOf(err) {
	case election.KindNotFound:
		status = http.StatusNotFound
	case election.KindConflict:
		status = http.StatusConflict
	case election.KindInvalidInput:
		status = http.StatusBadRequest
	case election.KindForbidden:
		status = http.StatusForbidden
		if errors.Is(err, election.ErrInvalidCredentials) {
			status = http.StatusUnauthorized
		}
	default:
		slog.Error(logMsg, append(attrs, "error", err)...)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal error")
		return
	}

	// Joined validation errors are reported on one line
	message := strings.ReplaceAll(err.Error(), "\n", "; ")
	middleware.CodedErrorResponse(w, status, election.CodeOf(err), message)
}

// pathID parses the {id} path value. It writes a 400 and returns false on
// failure.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id must be a positive integer")
		return 0, false
	}
	return id, true
}

// requestActor returns the session actor. Routes are wrapped by
// middleware.RequireSession, so a missing actor is a wiring error.
func requestActor(w http.ResponseWriter, r *http.Request) (models.Actor, bool) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Login required")
		return models.Actor{}, false
	}
	return actor, true
}
