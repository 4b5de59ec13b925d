package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/craigmharris/TKDojang-sub007/internal/api"
	apiMiddleware "github.com/craigmharris/TKDojang-sub007/internal/api/middleware"
	"github.com/craigmharris/TKDojang-sub007/internal/api/shared"
)

// setupRouter creates and configures the application router with all
// routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	sessionHandler := api.NewSessionHandler(app.engineService, app.logger)

	r.Route("/api", func(r chi.Router) {
		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", sessionHandler.StartSession)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", sessionHandler.GetSession)
				r.Get("/challenges/current", sessionHandler.GetCurrentChallenge)
				r.Post("/answers", sessionHandler.CheckAnswer)
				r.Post("/attempts", sessionHandler.RecordAttempt)
				r.Post("/finalize", sessionHandler.FinalizeSession)
			})
		})

		// Result history is only served when a progress store is wired.
		if app.progressStore != nil {
			resultsHandler := api.NewResultsHandler(app.progressStore, app.logger)
			r.Get("/results", resultsHandler.ListRecentResults)
			r.Get("/results/{sessionID}", resultsHandler.GetResult)
		}
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})

	return r
}
