// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/olegiv/staffreg/internal/version"
)

// Pinger is implemented by session stores that depend on an external service.
type Pinger interface {
	Ping(ctx context.Context) error
}

// healthCheckTimeout bounds a single dependency check.
const healthCheckTimeout = 2 * time.Second

// HealthHandler handles health check requests.
type HealthHandler struct {
	store     Pinger
	version   version.Info
	startTime time.Time
}

// NewHealthHandler creates a new health handler. store may be nil when
// sessions are kept in memory.
func NewHealthHandler(store Pinger, info version.Info) *HealthHandler {
	return &HealthHandler{
		store:     store,
		version:   info,
		startTime: time.Now(),
	}
}

// HealthStatus represents the overall health status.
type HealthStatus struct {
	Status    string           `json:"status"`
	Timestamp time.Time        `json:"timestamp"`
	Uptime    string           `json:"uptime"`
	Version   string           `json:"version"`
	Checks    map[string]Check `json:"checks"`
}

// Check represents a single health check result.
type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// Health handles GET /health.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	storeCheck := h.checkSessionStore(r.Context())

	status := HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Version:   h.version.String(),
		Checks: map[string]Check{
			"session_store": storeCheck,
		},
	}

	code := http.StatusOK
	if storeCheck.Status != "healthy" {
		status.Status = "degraded"
		code = http.StatusServiceUnavailable
	}

	writeJSON(w, code, status)
}

// Liveness handles GET /health/live - simple liveness check.
func (h *HealthHandler) Liveness(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

// Readiness handles GET /health/ready - reports whether sessions can be served.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	if check := h.checkSessionStore(r.Context()); check.Status != "healthy" {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not_ready"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// checkSessionStore pings the session store if it has a backend.
func (h *HealthHandler) checkSessionStore(ctx context.Context) Check {
	if h.store == nil {
		return Check{Status: "healthy", Message: "in-memory"}
	}

	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	start := time.Now()
	err := h.store.Ping(ctx)
	latency := time.Since(start)

	if err != nil {
		return Check{
			Status:  "unhealthy",
			Message: "session store unreachable",
			Latency: latency.String(),
		}
	}
	return Check{Status: "healthy", Latency: latency.String()}
}
