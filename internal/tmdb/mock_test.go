// Life OS - Personal Life Operating System
// Copyright 2026 Phenixis
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phenixis/life-os-sub001

package tmdb

import (
	"context"
	"sync"

	"github.com/Phenixis/life-os-sub001/internal/models"
)

// mockProvider counts calls per method and returns a canned page or error.
type mockProvider struct {
	mu    sync.Mutex
	calls map[string]int
	page  *models.MediaPage
	err   error
}

func newMockProvider(page *models.MediaPage, err error) *mockProvider {
	return &mockProvider{calls: make(map[string]int), page: page, err: err}
}

func (m *mockProvider) record(method string) (*models.MediaPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[method]++
	if m.err != nil {
		return nil, m.err
	}
	return clonePage(m.page), nil
}

func (m *mockProvider) count(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[method]
}

func (m *mockProvider) setErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *mockProvider) PopularMovies(_ context.Context, _ int) (*models.MediaPage, error) {
	return m.record("PopularMovies")
}

func (m *mockProvider) PopularTV(_ context.Context, _ int) (*models.MediaPage, error) {
	return m.record("PopularTV")
}

func (m *mockProvider) Trending(_ context.Context, _ models.MediaFilter, _ models.TimeWindow) (*models.MediaPage, error) {
	return m.record("Trending")
}

func (m *mockProvider) MovieRecommendations(_ context.Context, _, _ int) (*models.MediaPage, error) {
	return m.record("MovieRecommendations")
}

func (m *mockProvider) TVRecommendations(_ context.Context, _, _ int) (*models.MediaPage, error) {
	return m.record("TVRecommendations")
}

func (m *mockProvider) DiscoverMovies(_ context.Context, _ models.DiscoverFilters) (*models.MediaPage, error) {
	return m.record("DiscoverMovies")
}

func (m *mockProvider) DiscoverTV(_ context.Context, _ models.DiscoverFilters) (*models.MediaPage, error) {
	return m.record("DiscoverTV")
}

func samplePage() *models.MediaPage {
	return &models.MediaPage{
		Page:         1,
		TotalPages:   3,
		TotalResults: 60,
		Results: []models.MediaItem{
			{ID: 1, MediaType: models.MediaTypeMovie, Title: "One"},
			{ID: 2, MediaType: models.MediaTypeMovie, Title: "Two"},
		},
	}
}
