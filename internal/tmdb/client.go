// Life OS - Personal Life Operating System
// Copyright 2026 Phenixis
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phenixis/life-os-sub001

package tmdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/Phenixis/life-os-sub001/internal/config"
	"github.com/Phenixis/life-os-sub001/internal/logging"
	"github.com/Phenixis/life-os-sub001/internal/metrics"
	"github.com/Phenixis/life-os-sub001/internal/models"
)

// maxErrorBody caps how much of an error response is kept in StatusError.
const maxErrorBody = 512

// Client calls the TMDB REST API.
type Client struct {
	baseURL    string
	apiKey     string
	bearer     bool
	language   string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     zerolog.Logger
}

// NewClient creates a TMDB client from configuration. It returns
// ErrMissingAPIKey when no credential is set.
//
// A v4 read access token (a JWT) is sent as a Bearer header; a v3 API key is
// sent as the api_key query parameter.
func NewClient(cfg *config.TMDBConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	rps := rate.Limit(cfg.RequestsPerSecond)
	if cfg.RequestsPerSecond <= 0 {
		rps = rate.Inf
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}

	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		bearer:     isReadAccessToken(cfg.APIKey),
		language:   cfg.Language,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rps, burst),
		logger:     logging.WithComponent("tmdb"),
	}, nil
}

// isReadAccessToken reports whether key looks like a v4 token (a JWT with
// three dot-separated segments) rather than a 32 character v3 key.
func isReadAccessToken(key string) bool {
	return strings.Count(key, ".") == 2
}

// PopularMovies returns one page of /movie/popular.
func (c *Client) PopularMovies(ctx context.Context, page int) (*models.MediaPage, error) {
	return c.getPage(ctx, "popular_movie", "/movie/popular", pageQuery(page), models.MediaTypeMovie)
}

// PopularTV returns one page of /tv/popular.
func (c *Client) PopularTV(ctx context.Context, page int) (*models.MediaPage, error) {
	return c.getPage(ctx, "popular_tv", "/tv/popular", pageQuery(page), models.MediaTypeTV)
}

// Trending returns /trending/{movie|tv|all}/{day|week}. Results from the
// combined list that are neither movies nor shows (people) are dropped.
func (c *Client) Trending(ctx context.Context, filter models.MediaFilter, window models.TimeWindow) (*models.MediaPage, error) {
	if window != models.TimeWindowDay && window != models.TimeWindowWeek {
		return nil, fmt.Errorf("tmdb: invalid trending window %q", window)
	}

	path := fmt.Sprintf("/trending/%s/%s", filter, window)
	switch filter {
	case models.MediaFilterMovie:
		return c.getPage(ctx, "trending", path, nil, models.MediaTypeMovie)
	case models.MediaFilterTV:
		return c.getPage(ctx, "trending", path, nil, models.MediaTypeTV)
	case models.MediaFilterAll:
		page, err := c.getPage(ctx, "trending", path, nil, "")
		if err != nil {
			return nil, err
		}
		kept := page.Results[:0]
		for _, item := range page.Results {
			if item.MediaType == models.MediaTypeMovie || item.MediaType == models.MediaTypeTV {
				kept = append(kept, item)
			}
		}
		page.Results = kept
		return page, nil
	default:
		return nil, fmt.Errorf("tmdb: %w: %q", models.ErrInvalidMediaType, filter)
	}
}

// MovieRecommendations returns /movie/{id}/recommendations.
func (c *Client) MovieRecommendations(ctx context.Context, movieID, page int) (*models.MediaPage, error) {
	path := "/movie/" + strconv.Itoa(movieID) + "/recommendations"
	return c.getPage(ctx, "movie_recommendations", path, pageQuery(page), models.MediaTypeMovie)
}

// TVRecommendations returns /tv/{id}/recommendations.
func (c *Client) TVRecommendations(ctx context.Context, tvID, page int) (*models.MediaPage, error) {
	path := "/tv/" + strconv.Itoa(tvID) + "/recommendations"
	return c.getPage(ctx, "tv_recommendations", path, pageQuery(page), models.MediaTypeTV)
}

// DiscoverMovies returns /discover/movie for the given filters.
func (c *Client) DiscoverMovies(ctx context.Context, filters models.DiscoverFilters) (*models.MediaPage, error) {
	return c.getPage(ctx, "discover_movie", "/discover/movie", discoverQuery(filters), models.MediaTypeMovie)
}

// DiscoverTV returns /discover/tv for the given filters.
func (c *Client) DiscoverTV(ctx context.Context, filters models.DiscoverFilters) (*models.MediaPage, error) {
	return c.getPage(ctx, "discover_tv", "/discover/tv", discoverQuery(filters), models.MediaTypeTV)
}

func pageQuery(page int) url.Values {
	if page < 1 {
		page = 1
	}
	return url.Values{"page": {strconv.Itoa(page)}}
}

func discoverQuery(f models.DiscoverFilters) url.Values {
	q := pageQuery(f.Page)
	if f.WithGenres != "" {
		q.Set("with_genres", f.WithGenres)
	}
	if f.VoteAverageGTE > 0 {
		q.Set("vote_average.gte", strconv.FormatFloat(f.VoteAverageGTE, 'f', -1, 64))
	}
	if f.VoteCountGTE > 0 {
		q.Set("vote_count.gte", strconv.Itoa(f.VoteCountGTE))
	}
	if f.SortBy != "" {
		q.Set("sort_by", f.SortBy)
	}
	return q
}

// getPage fetches a paged endpoint and stamps mediaType on every result
// that does not carry one.
func (c *Client) getPage(ctx context.Context, endpoint, path string, query url.Values, mediaType models.MediaType) (*models.MediaPage, error) {
	start := time.Now()
	page, err := c.fetchPage(ctx, endpoint, path, query)
	metrics.RecordProviderRequest(endpoint, time.Since(start), err)
	if err != nil {
		c.logger.Debug().Err(err).Str("endpoint", endpoint).Msg("TMDB request failed")
		return nil, err
	}

	if mediaType != "" {
		for i := range page.Results {
			if page.Results[i].MediaType == "" {
				page.Results[i].MediaType = mediaType
			}
		}
	}
	return page, nil
}

func (c *Client) fetchPage(ctx context.Context, endpoint, path string, query url.Values) (*models.MediaPage, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("tmdb %s: rate limiter: %w", endpoint, err)
	}

	resp, err := c.doRequest(ctx, path, query)
	if err != nil {
		// url.Error embeds the full URL, which may carry the api_key.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return nil, fmt.Errorf("tmdb %s request failed: %w", endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{Endpoint: endpoint, StatusCode: resp.StatusCode, Body: string(body)}
	}

	var page models.MediaPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("failed to decode tmdb %s: %w", endpoint, err)
	}
	return &page, nil
}

func (c *Client) doRequest(ctx context.Context, path string, query url.Values) (*http.Response, error) {
	if query == nil {
		query = url.Values{}
	}
	if c.language != "" {
		query.Set("language", c.language)
	}
	if !c.bearer {
		query.Set("api_key", c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.bearer {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	return c.httpClient.Do(req)
}
