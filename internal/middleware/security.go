// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
)

// SecurityHeadersConfig holds configuration for security headers.
type SecurityHeadersConfig struct {
	// IsDevelopment disables HSTS.
	IsDevelopment bool

	// ContentSecurityPolicy is the CSP header value.
	ContentSecurityPolicy string

	// HSTSMaxAge is the Strict-Transport-Security max-age in seconds; 0 disables it.
	HSTSMaxAge int

	HSTSIncludeSubDomains bool

	// FrameOptions controls the X-Frame-Options header ("DENY", "SAMEORIGIN" or empty).
	FrameOptions string

	ReferrerPolicy string

	PermissionsPolicy string

	// ExcludePaths are path prefixes that skip security headers.
	ExcludePaths []string
}

// DefaultSecurityHeadersConfig returns the header set for the registration page.
// The page ships no scripts and loads nothing from other origins.
func DefaultSecurityHeadersConfig(isDev bool) SecurityHeadersConfig {
	cfg := SecurityHeadersConfig{
		IsDevelopment:  isDev,
		HSTSMaxAge:     31536000, // 1 year
		FrameOptions:   "DENY",
		ReferrerPolicy: "strict-origin-when-cross-origin",
		ContentSecurityPolicy: buildCSP(map[string]string{
			"default-src":     "'self'",
			"script-src":      "'none'",
			"style-src":       "'self'",
			"img-src":         "'self' data:",
			"font-src":        "'self'",
			"connect-src":     "'self'",
			"object-src":      "'none'",
			"base-uri":        "'self'",
			"form-action":     "'self'",
			"frame-ancestors": "'none'",
		}),
	}

	if !isDev {
		cfg.HSTSIncludeSubDomains = true
	}

	cfg.PermissionsPolicy = buildPermissionsPolicy(map[string]string{
		"camera":          "()",
		"geolocation":     "()",
		"microphone":      "()",
		"payment":         "()",
		"usb":             "()",
		"browsing-topics": "()",
	})

	return cfg
}

// cspOrder fixes the directive order of the generated policy.
var cspOrder = []string{
	"default-src", "script-src", "style-src", "img-src", "font-src",
	"connect-src", "frame-src", "object-src", "base-uri", "form-action",
	"frame-ancestors",
}

// buildCSP builds a Content-Security-Policy string from a map of directives.
func buildCSP(directives map[string]string) string {
	parts := make([]string, 0, len(directives))
	for _, key := range cspOrder {
		if value, ok := directives[key]; ok {
			parts = append(parts, key+" "+value)
		}
	}

	var extra []string
	for key, value := range directives {
		if !slices.Contains(cspOrder, key) {
			extra = append(extra, key+" "+value)
		}
	}
	slices.Sort(extra)

	return strings.Join(append(parts, extra...), "; ")
}

// buildPermissionsPolicy builds a Permissions-Policy string from a map.
func buildPermissionsPolicy(policies map[string]string) string {
	parts := make([]string, 0, len(policies))
	for key, value := range policies {
		parts = append(parts, key+"="+value)
	}
	slices.Sort(parts)
	return strings.Join(parts, ", ")
}

// SecurityHeaders returns a middleware that adds security headers to responses.
func SecurityHeaders(cfg SecurityHeadersConfig) func(http.Handler) http.Handler {
	hsts := ""
	if !cfg.IsDevelopment && cfg.HSTSMaxAge > 0 {
		hsts = "max-age=" + strconv.Itoa(cfg.HSTSMaxAge)
		if cfg.HSTSIncludeSubDomains {
			hsts += "; includeSubDomains"
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, prefix := range cfg.ExcludePaths {
				if strings.HasPrefix(r.URL.Path, prefix) {
					next.ServeHTTP(w, r)
					return
				}
			}

			h := w.Header()
			if cfg.ContentSecurityPolicy != "" {
				h.Set("Content-Security-Policy", cfg.ContentSecurityPolicy)
			}
			if hsts != "" {
				h.Set("Strict-Transport-Security", hsts)
			}
			if cfg.FrameOptions != "" {
				h.Set("X-Frame-Options", cfg.FrameOptions)
			}
			h.Set("X-Content-Type-Options", "nosniff")
			if cfg.ReferrerPolicy != "" {
				h.Set("Referrer-Policy", cfg.ReferrerPolicy)
			}
			if cfg.PermissionsPolicy != "" {
				h.Set("Permissions-Policy", cfg.PermissionsPolicy)
			}

			next.ServeHTTP(w, r)
		})
	}
}
