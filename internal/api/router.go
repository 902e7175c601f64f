// Life OS - Personal Life Operating System
// Copyright 2026 Phenixis
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phenixis/life-os-sub001

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Phenixis/life-os-sub001/internal/middleware"
)

// Authenticator resolves the caller identity. *auth.Middleware implements it.
type Authenticator interface {
	Authenticate(next http.Handler) http.Handler
}

// Router wires handlers and middleware into a Chi mux.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
	auth          Authenticator
}

// NewRouter creates a router. A nil chiMiddleware uses the defaults.
func NewRouter(handler *Handler, chiMw *ChiMiddleware, authenticator Authenticator) *Router {
	if chiMw == nil {
		chiMw = NewChiMiddleware(nil)
	}
	return &Router{handler: handler, chiMiddleware: chiMw, auth: authenticator}
}

// Setup builds the HTTP handler with every route.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS())
	r.Use(middleware.PrometheusMetrics)
	r.Use(middleware.AccessLog)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusNotFound, "Not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusMethodNotAllowed, "Method not allowed", nil)
	})

	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	r.Group(func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(router.auth.Authenticate)

		r.Get("/api/v1/recommendations", router.handler.Recommendations)

		r.Route("/api/v1/library", func(r chi.Router) {
			r.Get("/", router.handler.ListLibrary)
			r.Put("/{mediaType}/{id}", router.handler.PutLibraryItem)
			r.Delete("/{mediaType}/{id}", router.handler.DeleteLibraryItem)
		})

		r.Route("/api/v1/not-interested", func(r chi.Router) {
			r.Get("/", router.handler.ListNotInterested)
			r.Put("/{mediaType}/{id}", router.handler.PutNotInterested)
			r.Delete("/{mediaType}/{id}", router.handler.DeleteNotInterested)
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
