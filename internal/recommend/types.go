// Life OS - Personal Life Operating System
// Copyright 2026 Phenixis
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phenixis/life-os-sub001

package recommend

import (
	"context"

	"github.com/Phenixis/life-os-sub001/internal/models"
)

const (
	// DisplayedCount is the number of items returned as recommendations.
	DisplayedCount = 24

	// FetchedCount caps recommendations plus buffer.
	FetchedCount = 30

	// HighRatingThreshold is the minimum rating (0-5 scale) of a high-rated item.
	HighRatingThreshold = 4.0

	// TopGenreCount is how many genres feed genre discovery.
	TopGenreCount = 3

	// SampleSize is the maximum number of high-rated titles sampled.
	SampleSize = 3

	// PerSampleCap limits items taken from one sampled title.
	PerSampleCap = 8

	// PerCallCap limits items taken from one discovery, trending or popular call.
	PerCallCap = 15
)

// Discovery thresholds.
const (
	discoverMinVoteAverage = 7.0
	discoverMovieMinVotes  = 100
	discoverTVMinVotes     = 50
	discoverSortBy         = "popularity.desc"
)

// Source names the strategy that produced an item.
type Source string

const (
	SourceSimilarToRated  Source = "similar_to_rated"
	SourceGenreDiscovery  Source = "genre_discovery"
	SourceTrending        Source = "trending"
	SourcePopularFillup   Source = "popular_fillup"
	SourcePopularFallback Source = "popular_fallback"
)

// Method tells whether the result was personalized.
type Method string

const (
	MethodPersonalized    Method = "personalized"
	MethodPopularFallback Method = "popular_fallback"
)

// HistoryProvider supplies the user's library. It is implemented by
// library.Store.
type HistoryProvider interface {
	GetWatchedItems(ctx context.Context, userID string) ([]models.WatchedItem, error)
	GetAllLibraryItems(ctx context.Context, userID string) ([]models.LibraryItem, error)
	GetNotInterestedIDs(ctx context.Context, userID string) ([]int, error)
}

// MetadataProvider supplies titles from the metadata service. It is
// implemented by the tmdb clients.
type MetadataProvider interface {
	PopularMovies(ctx context.Context, page int) (*models.MediaPage, error)
	PopularTV(ctx context.Context, page int) (*models.MediaPage, error)
	Trending(ctx context.Context, filter models.MediaFilter, window models.TimeWindow) (*models.MediaPage, error)
	MovieRecommendations(ctx context.Context, movieID, page int) (*models.MediaPage, error)
	TVRecommendations(ctx context.Context, tvID, page int) (*models.MediaPage, error)
	DiscoverMovies(ctx context.Context, filters models.DiscoverFilters) (*models.MediaPage, error)
	DiscoverTV(ctx context.Context, filters models.DiscoverFilters) (*models.MediaPage, error)
}

// Item is one recommended title.
type Item struct {
	ExternalID       int              `json:"external_id"`
	MediaType        models.MediaType `json:"media_type"`
	Title            string           `json:"title,omitempty"`
	OriginalTitle    string           `json:"original_title,omitempty"`
	Name             string           `json:"name,omitempty"`
	OriginalName     string           `json:"original_name,omitempty"`
	Overview         string           `json:"overview"`
	PosterPath       *string          `json:"poster_path"`
	BackdropPath     *string          `json:"backdrop_path"`
	ReleaseDate      string           `json:"release_date,omitempty"`
	FirstAirDate     string           `json:"first_air_date,omitempty"`
	VoteAverage      float64          `json:"vote_average"`
	VoteCount        int              `json:"vote_count"`
	Popularity       float64          `json:"popularity"`
	GenreIDs         []int            `json:"genre_ids"`
	OriginalLanguage string           `json:"original_language"`
	Source           Source           `json:"recommendation_source"`
}

// newItem converts a provider title. mediaType overrides the title's own
// media type when set.
func newItem(m *models.MediaItem, mediaType models.MediaType, source Source) Item {
	if mediaType == "" {
		mediaType = m.MediaType
	}
	return Item{
		ExternalID:       m.ID,
		MediaType:        mediaType,
		Title:            m.Title,
		OriginalTitle:    m.OriginalTitle,
		Name:             m.Name,
		OriginalName:     m.OriginalName,
		Overview:         m.Overview,
		PosterPath:       m.PosterPath,
		BackdropPath:     m.BackdropPath,
		ReleaseDate:      m.ReleaseDate,
		FirstAirDate:     m.FirstAirDate,
		VoteAverage:      m.VoteAverage,
		VoteCount:        m.VoteCount,
		Popularity:       m.Popularity,
		GenreIDs:         m.GenreIDs,
		OriginalLanguage: m.OriginalLanguage,
		Source:           source,
	}
}

// BasedOn explains what a result was derived from.
type BasedOn struct {
	HighRatedCount int      `json:"high_rated_count"`
	TopGenres      []int    `json:"top_genres"`
	StrategiesUsed []Source `json:"strategies_used"`
}

// Result is the response of Recommend.
type Result struct {
	Recommendations []Item  `json:"recommendations"`
	Buffer          []Item  `json:"buffer"`
	Page            int     `json:"page"`
	TotalPages      int     `json:"total_pages"`
	TotalResults    int     `json:"total_results"`
	Method          Method  `json:"method"`
	BasedOn         BasedOn `json:"based_on"`
}
