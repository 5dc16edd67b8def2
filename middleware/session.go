// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielhkuo/college-vote/auth"
	"github.com/danielhkuo/college-vote/models"
)

// SessionCookie is the cookie holding the session token
const SessionCookie = "session"

type actorKey struct{}

// WithActor returns a copy of ctx carrying actor
func WithActor(ctx context.Context, actor models.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFromContext returns the actor stored by RequireSession
func ActorFromContext(ctx context.Context) (models.Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(models.Actor)
	return actor, ok
}

// SessionToken extracts the token from the Authorization header or the
// session cookie, in that order
func SessionToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	if c, err := r.Cookie(SessionCookie); err == nil {
		return c.Value
	}
	return ""
}

// RequireSession rejects requests without a valid session token
func RequireSession(secret []byte, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := SessionToken(r)
		if token == "" {
			ErrorResponse(w, http.StatusUnauthorized, "Login required")
			return
		}

		actor, err := auth.ParseSessionToken(token, secret)
		if err != nil {
			ErrorResponse(w, http.StatusUnauthorized, "Invalid or expired session")
			return
		}

		next(w, r.WithContext(WithActor(r.Context(), actor)))
	}
}

// RequireRole is RequireSession plus a role check
func RequireRole(secret []byte, role string, next http.HandlerFunc) http.HandlerFunc {
	return RequireSession(secret, func(w http.ResponseWriter, r *http.Request) {
		actor, _ := ActorFromContext(r.Context())
		if actor.Role != role {
			ErrorResponse(w, http.StatusForbidden, "This area requires the "+role+" role")
			return
		}
		next(w, r)
	})
}
