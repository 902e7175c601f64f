// Life OS - Personal Life Operating System
// Copyright 2026 Phenixis
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phenixis/life-os-sub001

package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Phenixis/life-os-sub001/internal/auth"
	"github.com/Phenixis/life-os-sub001/internal/models"
	"github.com/Phenixis/life-os-sub001/internal/recommend"
)

// maxPage is the highest page the metadata provider serves.
const maxPage = 500

// Recommendations handles GET /api/v1/recommendations.
//
// Query parameters:
//   - page: positive integer, default 1
//   - media_type: movie, tv or all, default all
//
// Responds with the recommendation result as-is.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, r, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	page, err := parsePage(r.URL.Query().Get("page"))
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error(), nil)
		return
	}
	filter, err := models.ParseMediaFilter(r.URL.Query().Get("media_type"))
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "media_type must be one of: movie, tv, all", nil)
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	result, err := h.recommender.Recommend(ctx, userID, page, filter)
	if err != nil {
		switch {
		case errors.Is(err, recommend.ErrConfiguration):
			respondError(w, r, http.StatusInternalServerError, "Recommendations are not configured", err)
		case errors.Is(err, recommend.ErrProviderUnavailable):
			respondError(w, r, http.StatusInternalServerError, "Failed to fetch recommendations", err)
		default:
			respondError(w, r, http.StatusInternalServerError, "Internal server error", err)
		}
		return
	}

	respondJSON(w, http.StatusOK, result)
}

var errInvalidPage = errors.New("page must be an integer between 1 and " + strconv.Itoa(maxPage))

func parsePage(raw string) (int, error) {
	if raw == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 || page > maxPage {
		return 0, errInvalidPage
	}
	return page, nil
}
