package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/phrazzld/commander-api/internal/api"
	apiMiddleware "github.com/phrazzld/commander-api/internal/api/middleware"
)

// setupRouter creates the application router with its middleware and routes.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))

	if origins := app.config.Server.CORSAllowedOrigins; len(origins) > 0 {
		r.Use(cors.New(cors.Options{
			AllowedOrigins: origins,
			AllowedMethods: []string{
				http.MethodGet, http.MethodPost, http.MethodPut,
				http.MethodPatch, http.MethodDelete, http.MethodOptions,
			},
			AllowedHeaders: []string{"Content-Type"},
			ExposedHeaders: []string{"Location", apiMiddleware.TraceIDHeader},
		}).Handler)
	}

	commandHandler := api.NewCommandHandler(app.commandStore, app.logger)
	r.Route(api.CommandsPath, commandHandler.Routes)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
