// Life OS - Personal Life Operating System
// Copyright 2026 Phenixis
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phenixis/life-os-sub001

package models

import "time"

// LibraryStatus is the state of an item in the user's library.
type LibraryStatus string

const (
	StatusWatched   LibraryStatus = "watched"
	StatusWatchlist LibraryStatus = "watchlist"
)

// Genre is one entry of a stored genre list.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// WatchedItem is a watched library entry as read by the aggregator.
// Genres holds the serialized JSON list exactly as stored.
type WatchedItem struct {
	ExternalID int       `json:"external_id"`
	MediaType  MediaType `json:"media_type"`
	UserRating *float64  `json:"user_rating"`
	Genres     string    `json:"genres"`
}

// LibraryItem is any watched or watchlist entry.
type LibraryItem struct {
	ExternalID int           `json:"external_id"`
	MediaType  MediaType     `json:"media_type"`
	Status     LibraryStatus `json:"status"`
	UserRating *float64      `json:"user_rating"`
	Genres     string        `json:"genres"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// NotInterestedItem is an item the user asked never to be recommended.
type NotInterestedItem struct {
	ExternalID int       `json:"external_id"`
	MediaType  MediaType `json:"media_type"`
	CreatedAt  time.Time `json:"created_at"`
}
