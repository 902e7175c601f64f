// Life OS - Personal Life Operating System
// Copyright 2026 Phenixis
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phenixis/life-os-sub001

// Package recommend builds movie and TV recommendations from a user's
// viewing history.
//
// # Pipeline
//
// A request loads the user's watched items, library and not-interested marks,
// then takes one of two paths:
//
//   - Cold start: the user has no item rated 4.0 or higher. One page of
//     popular content is returned (movies and TV interleaved for "all").
//   - Personalized: four strategies run in priority order until 30 items
//     are collected.
//
// The personalized strategies are:
//
//  1. similar_to_rated: provider recommendations for up to 3 random
//     high-rated titles, at most 8 per title
//  2. genre_discovery: well-rated titles in the user's top 3 genres
//  3. trending: the weekly trending list
//  4. popular_fillup: popular content
//
// The first 24 items are returned as recommendations and the rest as a
// buffer the client can show without another round trip.
//
// # Guarantees
//
// A single collector spans every strategy, so an external id is never
// returned twice and nothing in the user's library or not-interested set is
// ever returned. Items keep the order their strategy produced them.
//
// A failing strategy is logged, counted in
// recommendation_strategy_degradations_total and contributes nothing; later
// strategies compensate. Only a failure to load history (or the cold-start
// popular fetch) fails the request.
//
// # Usage
//
//	agg := recommend.NewAggregator(store, provider)
//	res, err := agg.Recommend(ctx, userID, 1, models.MediaFilterAll)
package recommend
