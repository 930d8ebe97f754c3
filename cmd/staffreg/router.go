// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/olegiv/staffreg/internal/config"
	"github.com/olegiv/staffreg/internal/handler"
	"github.com/olegiv/staffreg/internal/middleware"
	"github.com/olegiv/staffreg/web"
)

// requestTimeout bounds the time a single request may take.
const requestTimeout = 30 * time.Second

// routerDeps are the components the router dispatches to.
type routerDeps struct {
	sessions     *scs.SessionManager
	registration *handler.RegistrationHandler
	health       *handler.HealthHandler
}

// newRouter assembles the middleware chain and the routes.
//
// Session-scoped routes run behind NoStore, LoadAndSave, CSRF, the rate
// limiter and language detection, in that order. Health probes and static
// files skip all of them.
func newRouter(cfg *config.Config, deps routerDeps) (http.Handler, error) {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(chimw.RedirectSlashes)

	securityConfig := middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())
	securityConfig.ExcludePaths = []string{handler.RouteHealth}
	r.Use(middleware.SecurityHeaders(securityConfig))

	// Health probes need neither sessions nor CSRF
	r.Get(handler.RouteHealth, deps.health.Health)
	r.Get(handler.RouteHealthLive, deps.health.Liveness)
	r.Get(handler.RouteHealthReady, deps.health.Readiness)

	staticFS, err := fs.Sub(web.Static, "static/dist")
	if err != nil {
		return nil, fmt.Errorf("getting static fs: %w", err)
	}
	// Static assets: cache for 1 day, the file names are not fingerprinted
	staticHandler := middleware.StaticCache(86400)(http.StripPrefix("/static/dist/", http.FileServer(http.FS(staticFS))))
	r.Handle("/static/dist/*", staticHandler)

	csrfConfig := middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.IsDevelopment(), cfg.ServerAddr())
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateBurst)
	slog.Info("rate limiter initialized", "rps", cfg.RateLimit, "burst", cfg.RateBurst)

	r.Group(func(r chi.Router) {
		r.Use(middleware.NoStore)
		r.Use(deps.sessions.LoadAndSave)
		r.Use(middleware.CSRF(csrfConfig))
		r.Use(rateLimiter.HTMLMiddleware())
		r.Use(middleware.Language)

		deps.registration.RegisterRoutes(r)
	})

	return r, nil
}
