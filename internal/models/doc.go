// Life OS - Personal Life Operating System
// Copyright 2026 Phenixis
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phenixis/life-os-sub001

/*
Package models defines the data structures shared by the library store, the
TMDB client and the recommendation aggregator.

Model Categories:

 1. Library models (stored in DuckDB):
    - WatchedItem: a rated or unrated item the user has watched
    - LibraryItem: any watched or watchlist entry
    - NotInterestedItem: an item the user dismissed

 2. Metadata models (returned by TMDB):
    - MediaItem: one movie or TV show with display metadata
    - MediaPage: one page of results with paging totals
    - DiscoverFilters: query parameters for the discover endpoints

 3. Enumerations:
    - MediaType: "movie" or "tv"
    - MediaFilter: "movie", "tv" or "all"
    - TimeWindow: "day" or "week"
*/
package models
