// Life OS - Personal Life Operating System
// Copyright 2026 Phenixis
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phenixis/life-os-sub001

package recommend

import (
	"context"
	"sync"

	"github.com/Phenixis/life-os-sub001/internal/models"
)

// mockHistory is a fixed HistoryProvider.
type mockHistory struct {
	watched       []models.WatchedItem
	library       []models.LibraryItem
	notInterested []int
	err           error
}

func (m *mockHistory) GetWatchedItems(_ context.Context, _ string) ([]models.WatchedItem, error) {
	return m.watched, m.err
}

func (m *mockHistory) GetAllLibraryItems(_ context.Context, _ string) ([]models.LibraryItem, error) {
	return m.library, m.err
}

func (m *mockHistory) GetNotInterestedIDs(_ context.Context, _ string) ([]int, error) {
	return m.notInterested, m.err
}

// mockMetadata serves canned pages per method and records calls.
type mockMetadata struct {
	mu sync.Mutex

	calls map[string]int

	popularMovies *models.MediaPage
	popularTV     *models.MediaPage
	trending      *models.MediaPage
	movieRecs     map[int]*models.MediaPage
	tvRecs        map[int]*models.MediaPage
	discoverMovie *models.MediaPage
	discoverTV    *models.MediaPage

	errs map[string]error

	recIDs          []int
	discoverFilters []models.DiscoverFilters
	trendingArgs    []models.MediaFilter
}

func newMockMetadata() *mockMetadata {
	return &mockMetadata{
		calls:     make(map[string]int),
		movieRecs: make(map[int]*models.MediaPage),
		tvRecs:    make(map[int]*models.MediaPage),
		errs:      make(map[string]error),
	}
}

func (m *mockMetadata) serve(method string, page *models.MediaPage) (*models.MediaPage, error) {
	m.calls[method]++
	if err := m.errs[method]; err != nil {
		return nil, err
	}
	if page == nil {
		return &models.MediaPage{Page: 1, Results: []models.MediaItem{}}, nil
	}
	out := *page
	out.Results = append([]models.MediaItem(nil), page.Results...)
	return &out, nil
}

func (m *mockMetadata) count(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[method]
}

func (m *mockMetadata) totalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		n += c
	}
	return n
}

func (m *mockMetadata) PopularMovies(_ context.Context, _ int) (*models.MediaPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.serve("PopularMovies", m.popularMovies)
}

func (m *mockMetadata) PopularTV(_ context.Context, _ int) (*models.MediaPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.serve("PopularTV", m.popularTV)
}

func (m *mockMetadata) Trending(_ context.Context, filter models.MediaFilter, _ models.TimeWindow) (*models.MediaPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trendingArgs = append(m.trendingArgs, filter)
	return m.serve("Trending", m.trending)
}

func (m *mockMetadata) MovieRecommendations(_ context.Context, id, _ int) (*models.MediaPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recIDs = append(m.recIDs, id)
	return m.serve("MovieRecommendations", m.movieRecs[id])
}

func (m *mockMetadata) TVRecommendations(_ context.Context, id, _ int) (*models.MediaPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recIDs = append(m.recIDs, id)
	return m.serve("TVRecommendations", m.tvRecs[id])
}

func (m *mockMetadata) DiscoverMovies(_ context.Context, f models.DiscoverFilters) (*models.MediaPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.discoverFilters = append(m.discoverFilters, f)
	return m.serve("DiscoverMovies", m.discoverMovie)
}

func (m *mockMetadata) DiscoverTV(_ context.Context, f models.DiscoverFilters) (*models.MediaPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.discoverFilters = append(m.discoverFilters, f)
	return m.serve("DiscoverTV", m.discoverTV)
}

// makePage builds a page of titles with the given ids. mediaType is set on
// every result when non-empty.
func makePage(mediaType models.MediaType, ids ...int) *models.MediaPage {
	results := make([]models.MediaItem, 0, len(ids))
	for _, id := range ids {
		results = append(results, models.MediaItem{ID: id, MediaType: mediaType, Title: "t"})
	}
	return &models.MediaPage{Page: 1, Results: results, TotalPages: 5, TotalResults: 100}
}

// idRange returns [from, to].
func idRange(from, to int) []int {
	ids := make([]int, 0, to-from+1)
	for i := from; i <= to; i++ {
		ids = append(ids, i)
	}
	return ids
}

func rating(r float64) *float64 { return &r }

func watched(id int, mt models.MediaType, r float64, genres string) models.WatchedItem {
	return models.WatchedItem{ExternalID: id, MediaType: mt, UserRating: rating(r), Genres: genres}
}

// libraryOf returns library entries for every watched item.
func libraryOf(items []models.WatchedItem) []models.LibraryItem {
	out := make([]models.LibraryItem, 0, len(items))
	for _, w := range items {
		out = append(out, models.LibraryItem{ExternalID: w.ExternalID, MediaType: w.MediaType, Status: models.StatusWatched})
	}
	return out
}

// firstN always picks the next element in order, making sampling deterministic.
func firstN(int) int { return 0 }
