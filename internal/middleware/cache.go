// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"strconv"
)

// StaticCache adds Cache-Control headers for static files.
func StaticCache(maxAge int) func(http.Handler) http.Handler {
	value := "public, max-age=" + strconv.Itoa(maxAge)
	if maxAge <= 0 {
		value = "no-cache"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", value)
			next.ServeHTTP(w, r)
		})
	}
}

// NoStore marks responses as private to the visitor. Session-scoped
// pages must never be served from a shared cache.
func NoStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		w.Header().Add("Vary", "Cookie")
		next.ServeHTTP(w, r)
	})
}
