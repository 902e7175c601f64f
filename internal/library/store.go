// Life OS - Personal Life Operating System
// Copyright 2026 Phenixis
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phenixis/life-os-sub001

/*
Package library is the DuckDB-backed store of each user's watched items,
watchlist and not-interested marks. It is the history provider read by the
recommendation aggregator and the backing store of the library endpoints.

Tables:
  - library_items: one row per (user, media type, external id) with status,
    optional rating and the serialized genre list
  - not_interested: titles the user never wants recommended
*/
package library

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/Phenixis/life-os-sub001/internal/config"
	"github.com/Phenixis/life-os-sub001/internal/logging"
	"github.com/Phenixis/life-os-sub001/internal/models"
)

var (
	// ErrInvalidMediaType is returned for a media type other than movie or tv.
	ErrInvalidMediaType = models.ErrInvalidMediaType

	// ErrInvalidStatus is returned for a status other than watched or watchlist.
	ErrInvalidStatus = errors.New("invalid library status")

	// ErrInvalidRating is returned for a rating outside 0 to 5.
	ErrInvalidRating = errors.New("rating must be between 0 and 5")

	// ErrNotFound is returned when a delete matches no row.
	ErrNotFound = errors.New("library item not found")
)

// Store wraps the DuckDB connection.
type Store struct {
	conn *sql.DB
}

// Open opens (or creates) the DuckDB file named by cfg and ensures the schema.
// A path of ":memory:" gives a private in-memory database.
func Open(cfg *config.DatabaseConfig) (*Store, error) {
	dbDir := filepath.Dir(cfg.Path)
	if dbDir != "" && dbDir != "." {
		if err := os.MkdirAll(dbDir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create database directory %s: %w", dbDir, err)
		}
	}

	connStr := cfg.Path + "?access_mode=read_write&autoinstall_known_extensions=false&autoload_known_extensions=false"
	if cfg.Threads > 0 {
		connStr += fmt.Sprintf("&threads=%d", cfg.Threads)
	}
	if cfg.MaxMemory != "" {
		connStr += "&max_memory=" + cfg.MaxMemory
	}

	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := New(conn)
	if err := s.createTables(); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	logging.Info().Str("path", cfg.Path).Msg("Library store ready")
	return s, nil
}

// New wraps an already open connection without touching the schema.
func New(conn *sql.DB) *Store {
	return &Store{conn: conn}
}

// Ping verifies the connection is alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.conn.PingContext(ctx)
}

// Close closes the underlying connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

func closeQuietly(conn *sql.DB) {
	if err := conn.Close(); err != nil {
		logging.Warn().Err(err).Msg("Failed to close database connection")
	}
}

func (s *Store) createTables() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	queries := []string{
		`CREATE TABLE IF NOT EXISTS library_items (
			user_id TEXT NOT NULL,
			media_type TEXT NOT NULL,
			external_id INTEGER NOT NULL,
			status TEXT NOT NULL,
			user_rating DOUBLE,
			genres TEXT NOT NULL DEFAULT '[]',
			updated_at TIMESTAMP NOT NULL,
			PRIMARY KEY (user_id, media_type, external_id)
		)`,
		`CREATE TABLE IF NOT EXISTS not_interested (
			user_id TEXT NOT NULL,
			media_type TEXT NOT NULL,
			external_id INTEGER NOT NULL,
			created_at TIMESTAMP NOT NULL,
			PRIMARY KEY (user_id, media_type, external_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_library_items_user_status ON library_items(user_id, status)`,
	}

	for _, query := range queries {
		if _, err := s.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", query, err)
		}
	}
	return nil
}
