// Package router sets up all HTTP routes and middleware chains for the
// LocalSpot API. It organizes routes into public and authenticated groups
// with appropriate middleware stacks.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"localspot/internal/handlers"
	"localspot/internal/middleware"
	"localspot/internal/session"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up. The rate limiter guards credential endpoints
// against brute-force attempts.
func New(sessionStore *session.Store, limiter *middleware.RateLimiter, auth *handlers.Auth, categories *handlers.Categories, businesses *handlers.Businesses, reviews *handlers.Reviews, clientConfig *handlers.ClientConfig) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadSession(sessionStore))

	// Health check — no auth.
	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		// Public client configuration (map embed key).
		r.Get("/config", clientConfig.Get)

		// Auth surface.
		r.Route("/auth", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(limiter.Middleware)
				r.Post("/register", auth.Register)
				r.Post("/login", auth.Login)
			})
			r.Post("/logout", auth.Logout)

			// 2FA verify needs a session but not a completed TOTP step.
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				r.Post("/2fa/verify", auth.TwoFAVerify)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				r.Use(middleware.Require2FA)
				r.Get("/user", auth.Me)
				r.Post("/2fa/setup", auth.TwoFASetup)
			})
		})

		// Categories.
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", categories.List)
			r.Get("/{slug}", categories.GetBySlug)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				r.Use(middleware.Require2FA)
				r.Post("/", categories.Create)
			})
		})

		// Businesses.
		r.Route("/businesses", func(r chi.Router) {
			r.Get("/", businesses.List)
			r.Get("/{id}", businesses.Get)
			r.Get("/{businessId}/reviews", reviews.ListByBusiness)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				r.Use(middleware.Require2FA)
				r.Post("/", businesses.Create)
				r.Put("/{id}", businesses.Update)
				r.Delete("/{id}", businesses.Delete)
				r.Post("/{id}/image", businesses.UploadImage)
				r.Get("/user/{userId}", businesses.ListByUser)
				r.Post("/{businessId}/reviews", reviews.Create)
			})
		})

		// Reviews.
		r.Route("/reviews", func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Use(middleware.Require2FA)
			r.Put("/{reviewId}", reviews.Update)
			r.Delete("/{reviewId}", reviews.Delete)
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
