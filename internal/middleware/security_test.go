// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func serveWithHeaders(cfg SecurityHeadersConfig, path string) *httptest.ResponseRecorder {
	handler := SecurityHeaders(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestSecurityHeaders(t *testing.T) {
	tests := []struct {
		name     string
		isDev    bool
		wantHSTS string
	}{
		{"production enables HSTS", false, "max-age=31536000; includeSubDomains"},
		{"development disables HSTS", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serveWithHeaders(DefaultSecurityHeadersConfig(tt.isDev), "/")

			if got := rec.Header().Get("Strict-Transport-Security"); got != tt.wantHSTS {
				t.Errorf("HSTS = %q, want %q", got, tt.wantHSTS)
			}
			if rec.Header().Get("Content-Security-Policy") == "" {
				t.Error("expected CSP header")
			}
			if got := rec.Header().Get("X-Frame-Options"); got != "DENY" {
				t.Errorf("X-Frame-Options = %q", got)
			}
			if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
				t.Errorf("X-Content-Type-Options = %q", got)
			}
			if got := rec.Header().Get("Referrer-Policy"); got != "strict-origin-when-cross-origin" {
				t.Errorf("Referrer-Policy = %q", got)
			}
			if !strings.Contains(rec.Header().Get("Permissions-Policy"), "camera=()") {
				t.Errorf("Permissions-Policy = %q", rec.Header().Get("Permissions-Policy"))
			}
		})
	}
}

func TestDefaultCSP_SelfOnly(t *testing.T) {
	csp := DefaultSecurityHeadersConfig(false).ContentSecurityPolicy

	if !strings.HasPrefix(csp, "default-src 'self'; script-src 'none'") {
		t.Errorf("unexpected CSP order: %s", csp)
	}
	if strings.Contains(csp, "https:") || strings.Contains(csp, "unsafe-inline") {
		t.Errorf("CSP should not allow third-party or inline sources: %s", csp)
	}
	if !strings.Contains(csp, "form-action 'self'") {
		t.Errorf("CSP should restrict form targets: %s", csp)
	}
}

func TestSecurityHeaders_ExcludePaths(t *testing.T) {
	cfg := DefaultSecurityHeadersConfig(false)
	cfg.ExcludePaths = []string{"/health"}

	rec := serveWithHeaders(cfg, "/health/live")
	if rec.Header().Get("Content-Security-Policy") != "" {
		t.Error("excluded path should not get security headers")
	}

	rec = serveWithHeaders(cfg, "/")
	if rec.Header().Get("Content-Security-Policy") == "" {
		t.Error("non-excluded path should get security headers")
	}
}

func TestBuildCSP(t *testing.T) {
	got := buildCSP(map[string]string{
		"zeta-src":    "'none'",
		"style-src":   "'self'",
		"default-src": "'self'",
		"alpha-src":   "'self'",
	})
	want := "default-src 'self'; style-src 'self'; alpha-src 'self'; zeta-src 'none'"
	if got != want {
		t.Errorf("buildCSP = %q, want %q", got, want)
	}
}

func TestBuildPermissionsPolicy(t *testing.T) {
	got := buildPermissionsPolicy(map[string]string{"usb": "()", "camera": "()"})
	if got != "camera=(), usb=()" {
		t.Errorf("buildPermissionsPolicy = %q", got)
	}
}
