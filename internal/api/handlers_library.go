// Life OS - Personal Life Operating System
// Copyright 2026 Phenixis
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phenixis/life-os-sub001

package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/Phenixis/life-os-sub001/internal/auth"
	"github.com/Phenixis/life-os-sub001/internal/library"
	"github.com/Phenixis/life-os-sub001/internal/models"
	"github.com/Phenixis/life-os-sub001/internal/validation"
)

// maxBodyBytes caps library request bodies.
const maxBodyBytes = 64 << 10

// libraryItemRequest is the body of PUT /library/{mediaType}/{id}.
type libraryItemRequest struct {
	Status string         `json:"status" validate:"required,oneof=watched watchlist"`
	Rating *float64       `json:"rating" validate:"omitempty,gte=0,lte=5"`
	Genres []models.Genre `json:"genres" validate:"omitempty,max=50"`
}

// itemRef is the {mediaType}/{id} pair from the URL.
type itemRef struct {
	mediaType  models.MediaType
	externalID int
}

// parseItemRef reads and validates the route's media type and id.
func parseItemRef(r *http.Request) (itemRef, error) {
	mt, err := models.ParseMediaType(chi.URLParam(r, "mediaType"))
	if err != nil {
		return itemRef{}, errors.New("media type must be movie or tv")
	}
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id < 1 {
		return itemRef{}, errors.New("id must be a positive integer")
	}
	return itemRef{mediaType: mt, externalID: id}, nil
}

// ListLibrary handles GET /api/v1/library. An optional status query
// parameter restricts the list to watched or watchlist items.
func (h *Handler) ListLibrary(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var status models.LibraryStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		s, err := library.ParseStatus(raw)
		if err != nil {
			respondError(w, r, http.StatusBadRequest, "status must be one of: watched, watchlist", nil)
			return
		}
		status = s
	}

	items, err := h.library.ListItems(r.Context(), userID, status)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "Failed to list library", err)
		return
	}
	respondJSON(w, http.StatusOK, newListResponse(items))
}

// PutLibraryItem handles PUT /api/v1/library/{mediaType}/{id}.
func (h *Handler) PutLibraryItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	ref, err := parseItemRef(r)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error(), nil)
		return
	}

	var req libraryItemRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondError(w, r, http.StatusBadRequest, verr.Error(), nil)
		return
	}

	genres, err := library.EncodeGenres(req.Genres)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "Invalid genres", nil)
		return
	}

	item := &models.LibraryItem{
		ExternalID: ref.externalID,
		MediaType:  ref.mediaType,
		Status:     models.LibraryStatus(req.Status),
		UserRating: req.Rating,
		Genres:     genres,
	}
	if err := h.library.UpsertItem(r.Context(), userID, item); err != nil {
		respondLibraryError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

// DeleteLibraryItem handles DELETE /api/v1/library/{mediaType}/{id}.
func (h *Handler) DeleteLibraryItem(w http.ResponseWriter, r *http.Request) {
	h.mutateItem(w, r, h.library.RemoveItem)
}

// ListNotInterested handles GET /api/v1/not-interested.
func (h *Handler) ListNotInterested(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	items, err := h.library.ListNotInterested(r.Context(), userID)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "Failed to list not-interested items", err)
		return
	}
	respondJSON(w, http.StatusOK, newListResponse(items))
}

// PutNotInterested handles PUT /api/v1/not-interested/{mediaType}/{id}.
func (h *Handler) PutNotInterested(w http.ResponseWriter, r *http.Request) {
	h.mutateItem(w, r, h.library.MarkNotInterested)
}

// DeleteNotInterested handles DELETE /api/v1/not-interested/{mediaType}/{id}.
func (h *Handler) DeleteNotInterested(w http.ResponseWriter, r *http.Request) {
	h.mutateItem(w, r, h.library.ClearNotInterested)
}

type itemMutation func(ctx context.Context, userID string, mediaType models.MediaType, externalID int) error

// mutateItem runs a body-less write on the routed item and answers 204.
func (h *Handler) mutateItem(w http.ResponseWriter, r *http.Request, fn itemMutation) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	ref, err := parseItemRef(r)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error(), nil)
		return
	}
	if err := fn(r.Context(), userID, ref.mediaType, ref.externalID); err != nil {
		respondLibraryError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, r, http.StatusUnauthorized, "Unauthorized", nil)
	}
	return userID, ok
}

func respondLibraryError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, library.ErrNotFound):
		respondError(w, r, http.StatusNotFound, "Item not found", nil)
	case errors.Is(err, library.ErrInvalidMediaType),
		errors.Is(err, library.ErrInvalidStatus),
		errors.Is(err, library.ErrInvalidRating):
		respondError(w, r, http.StatusBadRequest, err.Error(), nil)
	default:
		respondError(w, r, http.StatusInternalServerError, "Failed to update library", err)
	}
}
