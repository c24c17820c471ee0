// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up the HTTP routes and middleware chains for the
// bibtree server. The JSON API lives under /api; authentication is
// optional and only enforced when an admin password is configured.
package router

import (
	"time"

	"github.com/go-chi/chi/v5"

	"bibtree/internal/handlers"
	"bibtree/internal/middleware"
	"bibtree/internal/session"
)

// loginRateLimit bounds password guesses per client IP.
const (
	loginRateLimit  = 10
	loginRateWindow = time.Minute
)

// New creates the configured chi router. sessionStore may be nil when
// authentication is disabled; in that case the login routes are not
// registered and the API is open.
func New(api *handlers.API, sessionStore *session.Store) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	authEnabled := sessionStore != nil
	if authEnabled {
		// Middleware must be registered before any route.
		r.Use(middleware.LoadSession(sessionStore))
	}

	r.Get("/health", api.Health)

	if authEnabled {
		loginLimiter := middleware.NewRateLimiter(loginRateLimit, loginRateWindow)
		r.Group(func(r chi.Router) {
			r.Use(loginLimiter.Middleware)
			r.Post("/api/login", api.Login)
		})
		r.Post("/api/logout", api.Logout)
	}

	r.Route("/api", func(r chi.Router) {
		if authEnabled {
			r.Use(middleware.RequireAuth)
		}

		r.Get("/tree", api.Tree)

		r.Route("/categories", func(r chi.Router) {
			r.Post("/", api.CategoryCreate)
			r.Put("/{id}", api.CategoryUpdate)
			r.Put("/{id}/color", api.CategoryColor)
			r.Delete("/{id}", api.CategoryDelete)
			r.Post("/{id}/literature", api.LiteratureAttach)
			r.Delete("/{id}/literature/{litID}", api.LiteratureDetach)
		})

		r.Route("/literature", func(r chi.Router) {
			r.Get("/", api.LiteratureList)
			r.Post("/", api.LiteratureAdd)
			r.Delete("/{id}", api.LiteratureDelete)
		})

		r.Get("/export", api.Export)
	})

	return r
}
