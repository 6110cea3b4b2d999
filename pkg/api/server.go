// Package api serves a decoded textdb database over HTTP. The service is
// read only: the database is loaded once and treated as immutable, matching
// the format's decode-whole-file lifecycle.
package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter builds the chi router for a server. Split from StartServer so
// tests can drive the full middleware stack through httptest.
func NewRouter(server *Server, reg *prometheus.Registry) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(requestIDMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Prometheus endpoint stays unprotected for scraping.
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	m := server.metrics
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(apiKeyMiddleware(server.config.APIKey))

		r.Get("/health", m.InstrumentHandler("GET", "/api/v1/health", server.handleHealth))
		r.Get("/entries", m.InstrumentHandler("GET", "/api/v1/entries", server.handleListEntries))
		r.Get("/entries/{key}", m.InstrumentHandler("GET", "/api/v1/entries/{key}", server.handleGetKey))
		r.Get("/keys", m.InstrumentHandler("GET", "/api/v1/keys", server.handleListKeys))
	})

	return r
}

// StartServer starts the HTTP server with all routes configured. It blocks
// until the listener fails.
func StartServer(dict Dictionary, config ServerConfig) error {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)

	server := NewServer(dict, config, metrics)
	router := NewRouter(server, reg)

	addr := fmt.Sprintf("%s:%d", config.Bind, config.Port)
	fmt.Printf("Starting textdb dictionary service on %s\n", addr)
	fmt.Printf("Metrics available at: http://%s/metrics\n", addr)

	return http.ListenAndServe(addr, router)
}
