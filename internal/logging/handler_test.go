// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"
)

func newTestLogger(buf *bytes.Buffer, level slog.Level) *slog.Logger {
	return slog.New(NewRequestHandler(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: level})))
}

func TestRequestHandler_AddsRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, slog.LevelInfo)

	ctx := context.WithValue(context.Background(), chimw.RequestIDKey, "host/abc-000001")
	logger.InfoContext(ctx, "person registered", "person_id", "p-1")

	out := buf.String()
	if !strings.Contains(out, "request_id=host/abc-000001") {
		t.Errorf("expected request id in output, got: %s", out)
	}
	if !strings.Contains(out, "person_id=p-1") {
		t.Errorf("expected record attrs to be kept, got: %s", out)
	}
}

func TestRequestHandler_NoRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, slog.LevelInfo)

	logger.Info("starting server")

	if strings.Contains(buf.String(), RequestIDKey) {
		t.Errorf("unexpected request id: %s", buf.String())
	}
}

func TestRequestHandler_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, slog.LevelWarn)

	logger.Info("dropped")
	logger.Warn("kept")

	if strings.Contains(buf.String(), "dropped") {
		t.Error("info record should be filtered at warn level")
	}
	if !strings.Contains(buf.String(), "kept") {
		t.Error("warn record should be written")
	}
}

func TestRequestHandler_WithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, slog.LevelInfo).With("component", "session").WithGroup("redis")

	ctx := context.WithValue(context.Background(), chimw.RequestIDKey, "rid-1")
	logger.InfoContext(ctx, "ping", "ok", true)

	out := buf.String()
	if !strings.Contains(out, "component=session") {
		t.Errorf("missing WithAttrs attribute: %s", out)
	}
	if !strings.Contains(out, "redis.ok=true") {
		t.Errorf("missing grouped attribute: %s", out)
	}
	if !strings.Contains(out, "rid-1") {
		t.Errorf("missing request id: %s", out)
	}
}
