// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/staffreg/internal/version"
)

type stubPinger struct {
	err error
}

func (p stubPinger) Ping(context.Context) error { return p.err }

func TestHealth_InMemoryStore(t *testing.T) {
	h := NewHealthHandler(nil, version.Info{Version: "v1.0.0"})

	rr := httptest.NewRecorder()
	h.Health(rr, httptest.NewRequest(http.MethodGet, RouteHealth, nil))

	assertStatus(t, rr.Code, http.StatusOK)

	var status HealthStatus
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &status))
	assert.Equal(t, "healthy", status.Status)
	assert.Equal(t, "v1.0.0", status.Version)
	assert.Equal(t, "in-memory", status.Checks["session_store"].Message)
}

func TestHealth_StoreDown(t *testing.T) {
	h := NewHealthHandler(stubPinger{err: errors.New("connection refused")}, version.Info{})

	rr := httptest.NewRecorder()
	h.Health(rr, httptest.NewRequest(http.MethodGet, RouteHealth, nil))

	assertStatus(t, rr.Code, http.StatusServiceUnavailable)

	var status HealthStatus
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &status))
	assert.Equal(t, "degraded", status.Status)
	assert.Equal(t, "dev", status.Version)
	assert.Equal(t, "unhealthy", status.Checks["session_store"].Status)
	assert.NotContains(t, rr.Body.String(), "connection refused")
}

func TestLiveness(t *testing.T) {
	h := NewHealthHandler(stubPinger{err: errors.New("down")}, version.Info{})

	rr := httptest.NewRecorder()
	h.Liveness(rr, httptest.NewRequest(http.MethodGet, RouteHealthLive, nil))

	assertStatus(t, rr.Code, http.StatusOK)
	assert.JSONEq(t, `{"status":"alive"}`, rr.Body.String())
}

func TestReadiness(t *testing.T) {
	tests := []struct {
		name   string
		store  Pinger
		status int
		body   string
	}{
		{"in-memory", nil, http.StatusOK, `{"status":"ready"}`},
		{"redis up", stubPinger{}, http.StatusOK, `{"status":"ready"}`},
		{"redis down", stubPinger{err: errors.New("down")}, http.StatusServiceUnavailable, `{"status":"not_ready"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(tt.store, version.Info{})

			rr := httptest.NewRecorder()
			h.Readiness(rr, httptest.NewRequest(http.MethodGet, RouteHealthReady, nil))

			assertStatus(t, rr.Code, tt.status)
			assert.JSONEq(t, tt.body, rr.Body.String())
		})
	}
}
