// Life OS - Personal Life Operating System
// Copyright 2026 Phenixis
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phenixis/life-os-sub001

package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/Phenixis/life-os-sub001/internal/logging"
)

type contextKey string

// UserIDContextKey holds the verified user id.
const UserIDContextKey contextKey = "user_id"

// UserIDHeader carries the caller identity in "none" mode.
const UserIDHeader = "X-User-ID"

const (
	AuthModeJWT  = "jwt"
	AuthModeNone = "none"
)

// maxUserIDLength bounds identities accepted from headers and tokens.
const maxUserIDLength = 256

// TokenValidator validates a bearer token. *JWTVerifier implements it.
type TokenValidator interface {
	ValidateToken(token string) (*Claims, error)
}

// Middleware resolves the caller identity.
type Middleware struct {
	validator TokenValidator
	authMode  string
}

// NewMiddleware creates the identity middleware. validator may be nil in
// "none" mode.
func NewMiddleware(validator TokenValidator, authMode string) *Middleware {
	if authMode == "" {
		authMode = AuthModeJWT
	}
	return &Middleware{validator: validator, authMode: authMode}
}

// Authenticate rejects requests without a verified identity and stores the
// user id in the request context.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var userID string
		if m.authMode == AuthModeNone {
			userID = strings.TrimSpace(r.Header.Get(UserIDHeader))
			if userID == "" {
				unauthorized(w, "missing "+UserIDHeader+" header")
				return
			}
		} else {
			id, msg := m.verifyBearer(r)
			if id == "" {
				unauthorized(w, msg)
				return
			}
			userID = id
		}

		if len(userID) > maxUserIDLength {
			unauthorized(w, "invalid identity")
			return
		}

		ctx := context.WithValue(r.Context(), UserIDContextKey, userID)
		ctx = logging.ContextWithUserID(ctx, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// verifyBearer returns the user id, or "" and a client-safe message.
func (m *Middleware) verifyBearer(r *http.Request) (userID, message string) {
	if m.validator == nil {
		logging.Error().Msg("JWT auth mode without a token validator")
		return "", "authentication unavailable"
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", "missing token"
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", "invalid authorization header"
	}

	claims, err := m.validator.ValidateToken(strings.TrimSpace(parts[1]))
	if err != nil {
		logging.Ctx(r.Context()).Debug().Err(err).Msg("Token validation failed")
		return "", "invalid token"
	}
	return claims.UserID(), ""
}

// UserIDFromContext returns the verified user id.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(UserIDContextKey).(string)
	return id, ok && id != ""
}

// ContextWithUserID stores a verified user id. Used by tests and internal
// callers that bypass the middleware.
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDContextKey, userID)
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", `Bearer realm="life-os"`)
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "Unauthorized: " + message})
}
