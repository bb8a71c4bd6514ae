// cmd/server/server.go
package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rs/cors"

	"github.com/terrario-app/terrario/internal/api"
	"github.com/terrario-app/terrario/internal/api/businesses"
	"github.com/terrario-app/terrario/internal/api/zones"
	"github.com/terrario-app/terrario/internal/config"
	"github.com/terrario-app/terrario/internal/media"
)

func newServer(cfg *config.Config, uploads *media.Store) *http.Server {
	router := http.NewServeMux()

	// Setup middleware chain
	handler := api.ChainMiddleware(
		router,
		api.WithLogging,
		api.WithRecovery,
		api.WithRequestID,
	)

	registerRoutes(router, uploads)

	// The admin UI is a browser app served from a different origin.
	c := cors.New(cors.Options{
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "Content-Length", "Accept-Encoding", "X-Request-ID"},
	})

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      c.Handler(handler),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func registerRoutes(mux *http.ServeMux, uploads *media.Store) {
	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Business routes
	mux.HandleFunc("GET /api/businesses", businesses.HandleList)
	mux.HandleFunc("GET /api/businesses/{id}", businesses.HandleGet)
	mux.HandleFunc("POST /api/businesses", businesses.HandleCreate)
	mux.HandleFunc("PUT /api/businesses/{id}", businesses.HandleUpdate)
	mux.HandleFunc("DELETE /api/businesses/{id}", businesses.HandleDelete)

	// Zone routes
	mux.HandleFunc("GET /api/zones", zones.HandleList)

	// Uploaded images
	fs := http.FileServer(http.Dir(uploads.Dir()))
	mux.Handle("GET "+media.URLPrefix, http.StripPrefix(media.URLPrefix, fs))
}
