package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	httpSwagger "github.com/swaggo/http-swagger"
)

// routes wires middlewares and endpoints. Adjust CORS for your frontend hosts.
func (a *App) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/api/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
		w.Header().Set("Cache-Control", "public, max-age=60")
		w.Write(openapiYAML)
	})

	r.Mount("/swagger", httpSwagger.Handler(
		httpSwagger.URL("/api/openapi.yaml"),
	))

	r.Route("/api", func(api chi.Router) {
		api.Post("/unlock", a.handleUnlock)

		api.Group(func(pr chi.Router) {
			pr.Use(a.gateMiddleware)

			pr.Route("/readings", func(rr chi.Router) {
				rr.Post("/", a.handleIngestReadings)
				rr.Get("/", a.handleGetSeries)
			})

			pr.Route("/analytics", func(ar chi.Router) {
				ar.Get("/trend", a.handleTrend)
				ar.Get("/anomalies", a.handleAnomalies)
				ar.Get("/correlation", a.handleCorrelation)
				ar.Get("/rate", a.handleRate)
				ar.Get("/projection", a.handleProjection)
				ar.Get("/harvest", a.handleHarvest)
				ar.Get("/stability", a.handleStability)
			})

			pr.Route("/settings", func(sr chi.Router) {
				sr.Get("/trend", a.handleGetTrendSettings)
				sr.Put("/trend", a.handlePutTrendSettings)
			})

			pr.Get("/reports/latest", a.handleLatestReport)
		})
	})

	return r
}
