// Life OS - Personal Life Operating System
// Copyright 2026 Phenixis
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phenixis/life-os-sub001

/*
Package auth verifies caller identity for the API.

Identity is issued elsewhere; this service only checks it. Two modes are
supported (configured via AUTH_MODE):

 1. jwt (default): an HS256 Bearer token signed with JWT_SECRET. The "sub"
    claim is the user id. Expired, not-yet-valid or wrongly signed tokens
    are rejected with 401.
 2. none: the user id is taken from the X-User-ID header. Intended for local
    development only; config validation rejects it in production.

Usage:

	verifier, err := auth.NewJWTVerifier(&cfg.Security)
	mw := auth.NewMiddleware(verifier, cfg.Security.AuthMode)
	r.With(mw.Authenticate).Get("/api/v1/recommendations", h.Recommendations)

	userID, ok := auth.UserIDFromContext(r.Context())
*/
package auth
