// Life OS - Personal Life Operating System
// Copyright 2026 Phenixis
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phenixis/life-os-sub001

// Command server runs the Life OS recommendation API.
//
// # Startup
//
//  1. Configuration: defaults, then config.yaml, then environment (koanf v2)
//  2. Logging: zerolog, configured from LOG_LEVEL, LOG_FORMAT and LOG_CALLER
//  3. Library store: DuckDB at DATABASE_PATH
//  4. Metadata provider: TMDB client, circuit breaker, two-tier cache
//     (memory LRU over badger)
//  5. Aggregator, identity middleware and Chi router
//  6. Supervisor tree: cache maintenance (data layer), HTTP server (API layer)
//
// A missing TMDB_API_KEY is not fatal: the server starts, readiness reports
// not_ready and recommendation requests answer 500 until a key is set.
//
// # Signals
//
// SIGINT and SIGTERM cancel the supervisor tree. The HTTP server stops
// accepting connections and drains in-flight requests for up to
// SERVER_SHUTDOWN_TIMEOUT, then the cache and database are closed.
//
// # Example
//
//	export TMDB_API_KEY=...
//	export JWT_SECRET=$(openssl rand -base64 48)
//	./server
//
// Local development without tokens:
//
//	export AUTH_MODE=none
//	curl -H 'X-User-ID: me' 'localhost:8080/api/v1/recommendations?media_type=movie'
package main
