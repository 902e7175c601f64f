// Life OS - Personal Life Operating System
// Copyright 2026 Phenixis
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phenixis/life-os-sub001

package library

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/Phenixis/life-os-sub001/internal/metrics"
	"github.com/Phenixis/life-os-sub001/internal/models"
)

// EncodeGenres serializes a genre list in the stored format.
func EncodeGenres(genres []models.Genre) (string, error) {
	if genres == nil {
		genres = []models.Genre{}
	}
	b, err := json.Marshal(genres)
	if err != nil {
		return "", fmt.Errorf("failed to encode genres: %w", err)
	}
	return string(b), nil
}

// ParseStatus validates s as a LibraryStatus.
func ParseStatus(s string) (models.LibraryStatus, error) {
	switch models.LibraryStatus(s) {
	case models.StatusWatched, models.StatusWatchlist:
		return models.LibraryStatus(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
}

func validateItem(item *models.LibraryItem) error {
	if _, err := models.ParseMediaType(string(item.MediaType)); err != nil {
		return err
	}
	if _, err := ParseStatus(string(item.Status)); err != nil {
		return err
	}
	if item.UserRating != nil && (*item.UserRating < 0 || *item.UserRating > 5) {
		return ErrInvalidRating
	}
	if item.Genres == "" {
		item.Genres = "[]"
	}
	return nil
}

// UpsertItem inserts or replaces the user's entry for the item. UpdatedAt is
// set to the current time.
func (s *Store) UpsertItem(ctx context.Context, userID string, item *models.LibraryItem) (err error) {
	if err := validateItem(item); err != nil {
		return err
	}
	item.UpdatedAt = time.Now().UTC()

	start := time.Now()
	defer func() { metrics.RecordDBQuery("upsert_item", time.Since(start), err) }()

	query := `INSERT INTO library_items (user_id, media_type, external_id, status, user_rating, genres, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, media_type, external_id) DO UPDATE SET
			status = EXCLUDED.status,
			user_rating = EXCLUDED.user_rating,
			genres = EXCLUDED.genres,
			updated_at = EXCLUDED.updated_at`

	var rating sql.NullFloat64
	if item.UserRating != nil {
		rating = sql.NullFloat64{Float64: *item.UserRating, Valid: true}
	}

	_, err = s.conn.ExecContext(ctx, query,
		userID, string(item.MediaType), item.ExternalID, string(item.Status), rating, item.Genres, item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert library item: %w", err)
	}
	return nil
}

// RemoveItem deletes the user's entry for the item.
func (s *Store) RemoveItem(ctx context.Context, userID string, mediaType models.MediaType, externalID int) (err error) {
	if _, err := models.ParseMediaType(string(mediaType)); err != nil {
		return err
	}

	start := time.Now()
	defer func() { metrics.RecordDBQuery("remove_item", time.Since(start), err) }()

	result, err := s.conn.ExecContext(ctx,
		`DELETE FROM library_items WHERE user_id = ? AND media_type = ? AND external_id = ?`,
		userID, string(mediaType), externalID)
	if err != nil {
		return fmt.Errorf("failed to delete library item: %w", err)
	}
	return requireAffected(result)
}

// ListItems returns the user's library, most recently updated first. An
// empty status lists every item.
func (s *Store) ListItems(ctx context.Context, userID string, status models.LibraryStatus) (items []models.LibraryItem, err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("list_items", time.Since(start), err) }()

	query := `SELECT external_id, media_type, status, user_rating, genres, updated_at
		FROM library_items WHERE user_id = ?`
	args := []any{userID}
	if status != "" {
		query += ` AND status = ?`
		args = append(args, string(status))
	}
	query += ` ORDER BY updated_at DESC, external_id`

	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query library items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	items = make([]models.LibraryItem, 0)
	for rows.Next() {
		var item models.LibraryItem
		var mediaType, itemStatus string
		var rating sql.NullFloat64
		if err := rows.Scan(&item.ExternalID, &mediaType, &itemStatus, &rating, &item.Genres, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan library item: %w", err)
		}
		item.MediaType = models.MediaType(mediaType)
		item.Status = models.LibraryStatus(itemStatus)
		if rating.Valid {
			r := rating.Float64
			item.UserRating = &r
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating library items: %w", err)
	}
	return items, nil
}

// MarkNotInterested records that the user never wants the item recommended.
// Marking an already marked item is a no-op.
func (s *Store) MarkNotInterested(ctx context.Context, userID string, mediaType models.MediaType, externalID int) (err error) {
	if _, err := models.ParseMediaType(string(mediaType)); err != nil {
		return err
	}

	start := time.Now()
	defer func() { metrics.RecordDBQuery("mark_not_interested", time.Since(start), err) }()

	_, err = s.conn.ExecContext(ctx,
		`INSERT INTO not_interested (user_id, media_type, external_id, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id, media_type, external_id) DO NOTHING`,
		userID, string(mediaType), externalID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to mark not interested: %w", err)
	}
	return nil
}

// ClearNotInterested removes a not-interested mark.
func (s *Store) ClearNotInterested(ctx context.Context, userID string, mediaType models.MediaType, externalID int) (err error) {
	if _, err := models.ParseMediaType(string(mediaType)); err != nil {
		return err
	}

	start := time.Now()
	defer func() { metrics.RecordDBQuery("clear_not_interested", time.Since(start), err) }()

	result, err := s.conn.ExecContext(ctx,
		`DELETE FROM not_interested WHERE user_id = ? AND media_type = ? AND external_id = ?`,
		userID, string(mediaType), externalID)
	if err != nil {
		return fmt.Errorf("failed to clear not interested: %w", err)
	}
	return requireAffected(result)
}

// ListNotInterested returns the user's not-interested items, oldest first.
func (s *Store) ListNotInterested(ctx context.Context, userID string) (items []models.NotInterestedItem, err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("list_not_interested", time.Since(start), err) }()

	rows, err := s.conn.QueryContext(ctx,
		`SELECT external_id, media_type, created_at FROM not_interested
		WHERE user_id = ? ORDER BY created_at, external_id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query not-interested items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	items = make([]models.NotInterestedItem, 0)
	for rows.Next() {
		var item models.NotInterestedItem
		var mediaType string
		if err := rows.Scan(&item.ExternalID, &mediaType, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan not-interested item: %w", err)
		}
		item.MediaType = models.MediaType(mediaType)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating not-interested items: %w", err)
	}
	return items, nil
}

func requireAffected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
