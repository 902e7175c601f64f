// Life OS - Personal Life Operating System
// Copyright 2026 Phenixis
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phenixis/life-os-sub001

/*
Package api exposes the recommendation service over HTTP using the Chi router.

Routes:

	GET    /api/v1/recommendations?page=&media_type=   recommendations for the caller
	GET    /api/v1/library?status=                     caller's library
	PUT    /api/v1/library/{mediaType}/{id}            add or update a library item
	DELETE /api/v1/library/{mediaType}/{id}            remove a library item
	GET    /api/v1/not-interested                      caller's not-interested list
	PUT    /api/v1/not-interested/{mediaType}/{id}     mark an item not interested
	DELETE /api/v1/not-interested/{mediaType}/{id}     clear the mark
	GET    /api/v1/health/live                         liveness probe
	GET    /api/v1/health/ready                        readiness probe
	GET    /metrics                                    Prometheus exposition

Every /api/v1 route except health requires a verified identity (see package
auth). Errors are written as {"error": "..."}; internal failures never carry
the underlying error text.

Middleware order (global): request ID, real IP, panic recovery, CORS, HTTP
metrics, access log. Data routes add rate limiting and authentication.
*/
package api
