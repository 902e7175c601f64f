// Life OS - Personal Life Operating System
// Copyright 2026 Phenixis
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phenixis/life-os-sub001

package tmdb

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrMissingAPIKey is returned by NewClient when no credential is configured.
	ErrMissingAPIKey = errors.New("tmdb: api key not configured")

	// ErrNotFound is matched by a StatusError carrying 404.
	ErrNotFound = errors.New("tmdb: resource not found")
)

// StatusError is returned for any non-2xx TMDB response.
type StatusError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("tmdb %s returned status %d: %s", e.Endpoint, e.StatusCode, e.Body)
}

// Unwrap exposes ErrNotFound for 404 responses.
func (e *StatusError) Unwrap() error {
	if e.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	return nil
}

// isClientError reports a 4xx other than 429. These say nothing about the
// health of the upstream and do not count against the circuit breaker.
func isClientError(err error) bool {
	var se *StatusError
	if !errors.As(err, &se) {
		return false
	}
	return se.StatusCode >= 400 && se.StatusCode < 500 && se.StatusCode != http.StatusTooManyRequests
}
