// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Each request gets an X-Request-ID (the client's, or a fresh UUID) that is
echoed in the response, stored in the request context (RequestIDFromContext)
and attached to the completion log line together with the response status.

# Sessions

RequireSession verifies the bearer token or session cookie and stores the
caller in the request context. RequireRole additionally checks the role:

	mux.HandleFunc("GET /admin/dashboard",
		middleware.WithLogging(middleware.RequireRole(secret, models.RoleAdmin, h.Dashboard)))

	actor, _ := middleware.ActorFromContext(r.Context())

A missing or invalid token yields 401; a valid token with the wrong role
yields 403.

# CORS Middleware

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Reflects the request origin, allows GET, POST, DELETE with headers
Content-Type, Authorization, X-Request-ID, and answers preflight with 204.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")
	middleware.CodedErrorResponse(w, http.StatusConflict, "already_voted", "message")

Bodies larger than MaxBodyBytes are rejected with ErrBodyTooLarge.

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
*/
package middleware
