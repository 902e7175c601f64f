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

	"github.com/Phenixis/life-os-sub001/internal/metrics"
	"github.com/Phenixis/life-os-sub001/internal/models"
)

// GetWatchedItems returns the user's watched items, most recently updated
// first. Genres are returned exactly as stored.
func (s *Store) GetWatchedItems(ctx context.Context, userID string) (items []models.WatchedItem, err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("get_watched_items", time.Since(start), err) }()

	query := `SELECT external_id, media_type, user_rating, genres
		FROM library_items
		WHERE user_id = ? AND status = ?
		ORDER BY updated_at DESC, external_id`

	rows, err := s.conn.QueryContext(ctx, query, userID, string(models.StatusWatched))
	if err != nil {
		return nil, fmt.Errorf("failed to query watched items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	items = make([]models.WatchedItem, 0)
	for rows.Next() {
		var item models.WatchedItem
		var mediaType string
		var rating sql.NullFloat64
		if err := rows.Scan(&item.ExternalID, &mediaType, &rating, &item.Genres); err != nil {
			return nil, fmt.Errorf("failed to scan watched item: %w", err)
		}
		item.MediaType = models.MediaType(mediaType)
		if rating.Valid {
			r := rating.Float64
			item.UserRating = &r
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating watched items: %w", err)
	}
	return items, nil
}

// GetAllLibraryItems returns every watched and watchlist item of the user.
func (s *Store) GetAllLibraryItems(ctx context.Context, userID string) ([]models.LibraryItem, error) {
	return s.ListItems(ctx, userID, "")
}

// GetNotInterestedIDs returns the external ids the user marked not interested.
func (s *Store) GetNotInterestedIDs(ctx context.Context, userID string) (ids []int, err error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("get_not_interested_ids", time.Since(start), err) }()

	rows, err := s.conn.QueryContext(ctx,
		`SELECT external_id FROM not_interested WHERE user_id = ? ORDER BY created_at, external_id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query not-interested ids: %w", err)
	}
	defer func() { _ = rows.Close() }()

	ids = make([]int, 0)
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan not-interested id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating not-interested ids: %w", err)
	}
	return ids, nil
}
