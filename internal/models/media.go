// Life OS - Personal Life Operating System
// Copyright 2026 Phenixis
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phenixis/life-os-sub001

package models

import (
	"errors"
	"fmt"
)

// ErrInvalidMediaType is returned when a media type string is not recognised.
var ErrInvalidMediaType = errors.New("invalid media type")

// MediaType is the kind of a single title.
type MediaType string

const (
	MediaTypeMovie MediaType = "movie"
	MediaTypeTV    MediaType = "tv"
)

// ParseMediaType validates s as a MediaType.
func ParseMediaType(s string) (MediaType, error) {
	switch MediaType(s) {
	case MediaTypeMovie, MediaTypeTV:
		return MediaType(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMediaType, s)
	}
}

// MediaFilter restricts a request to movies, TV or both.
type MediaFilter string

const (
	MediaFilterMovie MediaFilter = "movie"
	MediaFilterTV    MediaFilter = "tv"
	MediaFilterAll   MediaFilter = "all"
)

// ParseMediaFilter validates s as a MediaFilter. The empty string means all.
func ParseMediaFilter(s string) (MediaFilter, error) {
	switch MediaFilter(s) {
	case "":
		return MediaFilterAll, nil
	case MediaFilterMovie, MediaFilterTV, MediaFilterAll:
		return MediaFilter(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMediaType, s)
	}
}

// Matches reports whether an item of type mt passes the filter.
func (f MediaFilter) Matches(mt MediaType) bool {
	return f == MediaFilterAll || string(f) == string(mt)
}

// IncludesMovies reports whether the filter admits movies.
func (f MediaFilter) IncludesMovies() bool { return f != MediaFilterTV }

// IncludesTV reports whether the filter admits TV shows.
func (f MediaFilter) IncludesTV() bool { return f != MediaFilterMovie }

// TimeWindow is the trending aggregation window.
type TimeWindow string

const (
	TimeWindowDay  TimeWindow = "day"
	TimeWindowWeek TimeWindow = "week"
)

// MediaItem is a movie or TV show as returned by the metadata provider.
// Movies populate Title/OriginalTitle/ReleaseDate and shows populate
// Name/OriginalName/FirstAirDate.
type MediaItem struct {
	ID               int       `json:"id"`
	MediaType        MediaType `json:"media_type,omitempty"`
	Title            string    `json:"title,omitempty"`
	OriginalTitle    string    `json:"original_title,omitempty"`
	Name             string    `json:"name,omitempty"`
	OriginalName     string    `json:"original_name,omitempty"`
	Overview         string    `json:"overview"`
	PosterPath       *string   `json:"poster_path"`
	BackdropPath     *string   `json:"backdrop_path"`
	ReleaseDate      string    `json:"release_date,omitempty"`
	FirstAirDate     string    `json:"first_air_date,omitempty"`
	VoteAverage      float64   `json:"vote_average"`
	VoteCount        int       `json:"vote_count"`
	Popularity       float64   `json:"popularity"`
	GenreIDs         []int     `json:"genre_ids"`
	OriginalLanguage string    `json:"original_language"`
	Adult            bool      `json:"adult"`
}

// MediaPage is one page of provider results.
type MediaPage struct {
	Page         int         `json:"page"`
	Results      []MediaItem `json:"results"`
	TotalPages   int         `json:"total_pages"`
	TotalResults int         `json:"total_results"`
}

// DiscoverFilters are the discover endpoint parameters this service uses.
type DiscoverFilters struct {
	WithGenres     string  `json:"with_genres,omitempty"`
	VoteAverageGTE float64 `json:"vote_average_gte,omitempty"`
	VoteCountGTE   int     `json:"vote_count_gte,omitempty"`
	SortBy         string  `json:"sort_by,omitempty"`
	Page           int     `json:"page,omitempty"`
}
