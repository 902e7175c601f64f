// Life OS - Personal Life Operating System
// Copyright 2026 Phenixis
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phenixis/life-os-sub001

package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/Phenixis/life-os-sub001/internal/auth"
	"github.com/Phenixis/life-os-sub001/internal/library"
	"github.com/Phenixis/life-os-sub001/internal/models"
	"github.com/Phenixis/life-os-sub001/internal/recommend"
	"github.com/Phenixis/life-os-sub001/internal/tmdb"
)

type recommendCall struct {
	userID string
	page   int
	filter models.MediaFilter
}

type mockRecommender struct {
	mu     sync.Mutex
	result *recommend.Result
	err    error
	calls  []recommendCall
}

func (m *mockRecommender) Recommend(_ context.Context, userID string, page int, filter models.MediaFilter) (*recommend.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, recommendCall{userID: userID, page: page, filter: filter})
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

type itemKey struct {
	userID    string
	mediaType models.MediaType
	id        int
}

// mockLibrary is an in-memory LibraryStore.
type mockLibrary struct {
	mu            sync.Mutex
	pingErr       error
	err           error
	items         map[itemKey]models.LibraryItem
	notInterested map[itemKey]bool
}

func newMockLibrary() *mockLibrary {
	return &mockLibrary{
		items:         make(map[itemKey]models.LibraryItem),
		notInterested: make(map[itemKey]bool),
	}
}

func (m *mockLibrary) Ping(context.Context) error { return m.pingErr }

func (m *mockLibrary) ListItems(_ context.Context, userID string, status models.LibraryStatus) ([]models.LibraryItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var out []models.LibraryItem
	for k, item := range m.items {
		if k.userID == userID && (status == "" || item.Status == status) {
			out = append(out, item)
		}
	}
	return out, nil
}

func (m *mockLibrary) UpsertItem(_ context.Context, userID string, item *models.LibraryItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.items[itemKey{userID, item.MediaType, item.ExternalID}] = *item
	return nil
}

func (m *mockLibrary) RemoveItem(_ context.Context, userID string, mt models.MediaType, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	k := itemKey{userID, mt, id}
	if _, ok := m.items[k]; !ok {
		return library.ErrNotFound
	}
	delete(m.items, k)
	return nil
}

func (m *mockLibrary) ListNotInterested(_ context.Context, userID string) ([]models.NotInterestedItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var out []models.NotInterestedItem
	for k := range m.notInterested {
		if k.userID == userID {
			out = append(out, models.NotInterestedItem{ExternalID: k.id, MediaType: k.mediaType})
		}
	}
	return out, nil
}

func (m *mockLibrary) MarkNotInterested(_ context.Context, userID string, mt models.MediaType, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.notInterested[itemKey{userID, mt, id}] = true
	return nil
}

func (m *mockLibrary) ClearNotInterested(_ context.Context, userID string, mt models.MediaType, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	k := itemKey{userID, mt, id}
	if !m.notInterested[k] {
		return library.ErrNotFound
	}
	delete(m.notInterested, k)
	return nil
}

type fixedBreaker string

func (b fixedBreaker) State() string { return string(b) }

type fixedCache tmdb.CacheStats

func (c fixedCache) Stats() tmdb.CacheStats { return tmdb.CacheStats(c) }

type testServer struct {
	handler     http.Handler
	recommender *mockRecommender
	library     *mockLibrary
}

// newTestServer builds the full router in "none" auth mode with rate
// limiting disabled.
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	rec := &mockRecommender{result: &recommend.Result{
		Recommendations: []recommend.Item{},
		Buffer:          []recommend.Item{},
		Page:            1,
		Method:          recommend.MethodPopularFallback,
	}}
	lib := newMockLibrary()

	h := NewHandler(HandlerDeps{
		Recommender:    rec,
		Library:        lib,
		Breaker:        fixedBreaker("closed"),
		TMDBConfigured: true,
	})
	mwCfg := DefaultChiMiddlewareConfig()
	mwCfg.RateLimitDisabled = true
	router := NewRouter(h, NewChiMiddleware(mwCfg), noneAuth())

	return &testServer{handler: router.Setup(), recommender: rec, library: lib}
}

// do sends a request as user "u1" unless userID is empty.
func (s *testServer) do(t *testing.T, method, target, userID, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader = http.NoBody
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if userID != "" {
		req.Header.Set(auth.UserIDHeader, userID)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func noneAuth() *auth.Middleware {
	return auth.NewMiddleware(nil, auth.AuthModeNone)
}
