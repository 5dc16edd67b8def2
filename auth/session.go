// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/danielhkuo/college-vote/models"
)

var ErrInvalidToken = errors.New("invalid session token")

// SessionClaims is the JWT payload of a session token
type SessionClaims struct {
	UserID      int64  `json:"uid"`
	Role        string `json:"role"`
	DisplayName string `json:"name"`
	jwt.RegisteredClaims
}

// IssueSessionToken signs an HS256 token for actor valid for ttl.
func IssueSessionToken(actor models.Actor, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		UserID:      actor.ID,
		Role:        actor.Role,
		DisplayName: actor.DisplayName,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatInt(actor.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// ParseSessionToken validates signature and expiry and returns the actor.
func ParseSessionToken(token string, secret []byte) (models.Actor, error) {
	parsed, err := jwt.ParseWithClaims(token, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !parsed.Valid {
		return models.Actor{}, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*SessionClaims)
	if !ok {
		return models.Actor{}, ErrInvalidToken
	}
	if claims.Role != models.RoleAdmin && claims.Role != models.RoleStudent {
		return models.Actor{}, ErrInvalidToken
	}

	return models.Actor{
		ID:          claims.UserID,
		Role:        claims.Role,
		DisplayName: claims.DisplayName,
	}, nil
}
