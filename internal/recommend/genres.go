// Life OS - Personal Life Operating System
// Copyright 2026 Phenixis
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phenixis/life-os-sub001

package recommend

import (
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/Phenixis/life-os-sub001/internal/metrics"
	"github.com/Phenixis/life-os-sub001/internal/models"
)

// rankGenres counts genre ids across items and returns the top n by
// frequency. Equal counts keep first-encounter order. Items whose stored
// genres cannot be parsed are logged and skipped.
func rankGenres(items []models.WatchedItem, n int, logger *zerolog.Logger) []int {
	counts := make(map[int]int)
	order := make([]int, 0)

	for i := range items {
		raw := strings.TrimSpace(items[i].Genres)
		if raw == "" {
			continue
		}

		var genres []models.Genre
		if err := json.Unmarshal([]byte(raw), &genres); err != nil {
			metrics.RecordGenreParseFailure()
			logger.Warn().
				Err(err).
				Int("external_id", items[i].ExternalID).
				Str("media_type", string(items[i].MediaType)).
				Msg("Skipping unparseable genres")
			continue
		}

		for _, g := range genres {
			if _, ok := counts[g.ID]; !ok {
				order = append(order, g.ID)
			}
			counts[g.ID]++
		}
	}

	sort.SliceStable(order, func(a, b int) bool {
		return counts[order[a]] > counts[order[b]]
	})

	if len(order) > n {
		order = order[:n]
	}
	return order
}

// joinGenres formats genre ids for the discover with_genres parameter.
// A comma means every genre must match.
func joinGenres(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}
