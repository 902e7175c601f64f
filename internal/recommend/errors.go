// Life OS - Personal Life Operating System
// Copyright 2026 Phenixis
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phenixis/life-os-sub001

package recommend

import "errors"

var (
	// ErrConfiguration means no metadata provider is configured (missing API key).
	ErrConfiguration = errors.New("recommendation provider not configured")

	// ErrProviderUnavailable means the history lookups or the cold-start
	// popular fetch failed.
	ErrProviderUnavailable = errors.New("recommendation provider unavailable")
)
