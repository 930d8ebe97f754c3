// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides the HTTP middleware of the registration server.
package middleware

import (
	"log/slog"
	"net"
	"net/http"

	"filippo.io/csrf/gorilla"
)

// CSRFConfig holds configuration for CSRF protection.
// filippo.io/csrf/gorilla checks Fetch metadata headers, so no token
// has to be rendered into the forms.
type CSRFConfig struct {
	// AuthKey keeps the gorilla/csrf signature; the session secret is used.
	AuthKey []byte

	// ErrorHandler is called when CSRF validation fails.
	ErrorHandler http.Handler

	// TrustedOrigins are host:port values allowed to post cross-origin.
	TrustedOrigins []string
}

// DefaultCSRFConfig returns a CSRFConfig for the server listening on addr.
// In development the loopback aliases of addr are trusted as well.
func DefaultCSRFConfig(authKey []byte, isDev bool, addr string) CSRFConfig {
	cfg := CSRFConfig{
		AuthKey: authKey,
	}

	if !isDev {
		return cfg
	}

	// csrf expects host-only values, not full URLs
	_, port, err := net.SplitHostPort(addr)
	if err != nil || port == "" {
		port = "8080"
	}
	cfg.TrustedOrigins = []string{
		net.JoinHostPort("localhost", port),
		net.JoinHostPort("127.0.0.1", port),
	}

	return cfg
}

// CSRF returns a middleware that rejects cross-site state-changing requests.
func CSRF(cfg CSRFConfig) func(http.Handler) http.Handler {
	var opts []csrf.Option

	if cfg.ErrorHandler != nil {
		opts = append(opts, csrf.ErrorHandler(cfg.ErrorHandler))
	} else {
		opts = append(opts, csrf.ErrorHandler(http.HandlerFunc(csrfErrorHandler)))
	}

	if len(cfg.TrustedOrigins) > 0 {
		opts = append(opts, csrf.TrustedOrigins(cfg.TrustedOrigins))
	}

	return csrf.Protect(cfg.AuthKey, opts...)
}

// csrfErrorHandler handles CSRF validation failures.
func csrfErrorHandler(w http.ResponseWriter, r *http.Request) {
	reasonStr := "unknown"
	if reason := csrf.FailureReason(r); reason != nil {
		reasonStr = reason.Error()
	}
	slog.Warn("CSRF validation failed",
		"reason", reasonStr,
		"method", r.Method,
		"path", r.URL.Path,
		"origin", r.Header.Get("Origin"),
		"sec_fetch_site", r.Header.Get("Sec-Fetch-Site"),
	)
	http.Error(w, "Forbidden - CSRF validation failed", http.StatusForbidden)
}
