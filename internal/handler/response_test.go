// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogAndInternalError(t *testing.T) {
	rr := httptest.NewRecorder()
	logAndInternalError(rr, "test error", "error", "boom")

	assertStatus(t, rr.Code, http.StatusInternalServerError)
	assert.Contains(t, rr.Body.String(), "Internal Server Error")
	assert.NotContains(t, rr.Body.String(), "boom")
}

func TestRedirectHome(t *testing.T) {
	rr := httptest.NewRecorder()
	redirectHome(rr, httptest.NewRequest(http.MethodPost, RouteStaffCancel, nil))

	assertStatus(t, rr.Code, http.StatusSeeOther)
	assert.Equal(t, RouteRoot, rr.Header().Get("Location"))
}

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	writeJSON(rr, http.StatusCreated, map[string]int{"count": 2})

	assertStatus(t, rr.Code, http.StatusCreated)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"count":2}`, rr.Body.String())
}
