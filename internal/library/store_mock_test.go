// Life OS - Personal Life Operating System
// Copyright 2026 Phenixis
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phenixis/life-os-sub001

package library

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/Phenixis/life-os-sub001/internal/models"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return New(db), mock
}

func TestStore_QueryErrorsAreWrapped(t *testing.T) {
	boom := errors.New("connection reset")

	tests := []struct {
		name string
		run  func(s *Store) error
	}{
		{"watched", func(s *Store) error { _, err := s.GetWatchedItems(context.Background(), "u"); return err }},
		{"library", func(s *Store) error { _, err := s.GetAllLibraryItems(context.Background(), "u"); return err }},
		{"not interested", func(s *Store) error { _, err := s.GetNotInterestedIDs(context.Background(), "u"); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, mock := newMockStore(t)
			mock.ExpectQuery("SELECT").WillReturnError(boom)

			err := tt.run(s)
			if !errors.Is(err, boom) {
				t.Errorf("error = %v, want wrapped %v", err, boom)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Errorf("unmet expectations: %v", err)
			}
		})
	}
}

func TestStore_WatchedScan(t *testing.T) {
	s, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{"external_id", "media_type", "user_rating", "genres"}).
		AddRow(11, "movie", 4.0, `[{"id":18,"name":"Drama"}]`).
		AddRow(12, "tv", nil, "not json")
	mock.ExpectQuery("SELECT external_id, media_type, user_rating, genres").
		WithArgs("alice", "watched").
		WillReturnRows(rows)

	items, err := s.GetWatchedItems(context.Background(), "alice")
	if err != nil {
		t.Fatalf("GetWatchedItems: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].UserRating == nil || *items[0].UserRating != 4.0 {
		t.Errorf("rating = %v", items[0].UserRating)
	}
	if items[1].MediaType != models.MediaTypeTV || items[1].UserRating != nil {
		t.Errorf("item = %+v", items[1])
	}
	// Malformed genres are passed through for the caller to handle.
	if items[1].Genres != "not json" {
		t.Errorf("genres = %q", items[1].Genres)
	}
}

func TestStore_ExecErrorIsWrapped(t *testing.T) {
	s, mock := newMockStore(t)
	boom := errors.New("disk full")
	mock.ExpectExec("INSERT INTO not_interested").WillReturnError(boom)

	err := s.MarkNotInterested(context.Background(), "alice", models.MediaTypeMovie, 1)
	if !errors.Is(err, boom) {
		t.Errorf("error = %v, want wrapped %v", err, boom)
	}
}

func TestStore_RemoveNoRows(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectExec("DELETE FROM library_items").
		WithArgs("alice", "movie", 9).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := s.RemoveItem(context.Background(), "alice", models.MediaTypeMovie, 9); !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}
