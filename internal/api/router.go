package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/ecavus/stayhub-backend/internal/api/handlers"
	"github.com/ecavus/stayhub-backend/internal/audit"
	"github.com/ecavus/stayhub-backend/internal/auth"
	"github.com/ecavus/stayhub-backend/internal/config"
	"github.com/ecavus/stayhub-backend/internal/facade"
	"github.com/ecavus/stayhub-backend/internal/metrics"
	"github.com/ecavus/stayhub-backend/internal/middleware"
)

// NewRouter wires the REST surface. Reads are public; every mutation goes
// through the bearer-token middleware first.
func NewRouter(cfg config.Config, f *facade.Facade, tm *auth.TokenManager, rec *audit.Recorder) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.RateLimit(cfg.RateRPS), middleware.HTTPMetrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	// health & metrics
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	authMW := middleware.NewAuthMiddleware(tm, f)
	authH := handlers.NewAuthHandler(f, tm)
	userH := handlers.NewUserHandler(f, rec)
	amenityH := handlers.NewAmenityHandler(f, rec)
	placeH := handlers.NewPlaceHandler(f, rec)
	reviewH := handlers.NewReviewHandler(f, rec)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/login", authH.Login)
		r.With(authMW.Require).Get("/protected", authH.Protected)

		r.Route("/users", func(r chi.Router) {
			r.Get("/", userH.List)
			r.Get("/{id}", userH.Get)
			r.With(authMW.Require).Post("/", userH.Create)
			r.With(authMW.Require).Put("/{id}", userH.Update)
		})

		r.Route("/amenities", func(r chi.Router) {
			r.Get("/", amenityH.List)
			r.Get("/{id}", amenityH.Get)
			r.With(authMW.Require).Post("/", amenityH.Create)
			r.With(authMW.Require).Put("/{id}", amenityH.Update)
		})

		r.Route("/places", func(r chi.Router) {
			r.Get("/", placeH.List)
			r.Get("/{id}", placeH.Get)
			r.Get("/{id}/reviews", reviewH.ListByPlace)
			r.With(authMW.Require).Post("/", placeH.Create)
			r.With(authMW.Require).Put("/{id}", placeH.Update)
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Get("/", reviewH.List)
			r.Get("/{id}", reviewH.Get)
			r.With(authMW.Require).Post("/", reviewH.Create)
			r.With(authMW.Require).Put("/{id}", reviewH.Update)
			r.With(authMW.Require).Delete("/{id}", reviewH.Delete)
		})
	})

	return r
}
