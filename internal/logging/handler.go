// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package logging provides a slog handler that tags records with the
// request they were logged for.
package logging

import (
	"context"
	"log/slog"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// RequestIDKey is the attribute key carrying the chi request ID.
const RequestIDKey = "request_id"

// RequestHandler is a slog.Handler that wraps another handler and adds the
// request ID found in the record's context.
type RequestHandler struct {
	inner slog.Handler
}

// NewRequestHandler wraps inner.
func NewRequestHandler(inner slog.Handler) *RequestHandler {
	return &RequestHandler{inner: inner}
}

// Enabled implements slog.Handler.
func (h *RequestHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *RequestHandler) Handle(ctx context.Context, r slog.Record) error {
	if ctx != nil {
		if id := chimw.GetReqID(ctx); id != "" {
			r = r.Clone()
			r.AddAttrs(slog.String(RequestIDKey, id))
		}
	}
	return h.inner.Handle(ctx, r)
}

// WithAttrs implements slog.Handler.
func (h *RequestHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &RequestHandler{inner: h.inner.WithAttrs(attrs)}
}

// WithGroup implements slog.Handler.
func (h *RequestHandler) WithGroup(name string) slog.Handler {
	return &RequestHandler{inner: h.inner.WithGroup(name)}
}
