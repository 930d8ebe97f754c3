// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"runtime/debug"
	"sync"
	"time"
)

// Timeout wraps an http.Handler and applies a request timeout.
// If the handler has not started writing when the deadline passes,
// a 503 Service Unavailable response is sent and later writes are dropped.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			done := make(chan struct{})
			panicked := make(chan any, 1)
			tw := &timeoutWriter{w: w, h: w.Header().Clone()}

			go func() {
				defer func() {
					if p := recover(); p != nil {
						tw.mu.Lock()
						defer tw.mu.Unlock()
						if tw.timedOut {
							logLatePanic(ctx, r, p)
							return
						}
						panicked <- p
					}
				}()
				next.ServeHTTP(tw, r.WithContext(ctx))
				close(done)
			}()

			select {
			case p := <-panicked:
				// re-raise on the serving goroutine so Recoverer sees it
				panic(p)
			case <-done:
				tw.mu.Lock()
				defer tw.mu.Unlock()
				if !tw.wroteHeader {
					// nothing was written; the server sends an implicit 200
					tw.copyHeaders()
				}
			case <-ctx.Done():
				tw.mu.Lock()
				defer tw.mu.Unlock()
				if !tw.wroteHeader {
					w.Header().Set("Content-Type", "text/plain; charset=utf-8")
					w.WriteHeader(http.StatusServiceUnavailable)
					_, _ = w.Write([]byte("Request timeout"))
				}
				tw.timedOut = true
				// a panic queued before timedOut was set has no reader left
				select {
				case p := <-panicked:
					logLatePanic(ctx, r, p)
				default:
				}
			}
		})
	}
}

// logLatePanic reports a handler panic that happened after the timeout
// response was sent.
func logLatePanic(ctx context.Context, r *http.Request, p any) {
	slog.ErrorContext(ctx, "handler panicked after request timeout",
		"panic", p,
		"method", r.Method,
		"path", r.URL.Path,
		"stack", string(debug.Stack()),
	)
}

// timeoutWriter gives the handler its own copy of the response headers
// and copies them back on the first write. Once the request timed out,
// nothing reaches the real writer any more.
type timeoutWriter struct {
	w           http.ResponseWriter
	h           http.Header
	mu          sync.Mutex
	wroteHeader bool
	timedOut    bool
}

// Header returns the handler-owned header map. The serving goroutine
// never touches it, so a handler still running after the deadline
// can modify it safely.
func (tw *timeoutWriter) Header() http.Header {
	return tw.h
}

func (tw *timeoutWriter) WriteHeader(code int) {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if tw.timedOut || tw.wroteHeader {
		return
	}
	tw.writeHeaderLocked(code)
}

func (tw *timeoutWriter) Write(b []byte) (int, error) {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if tw.timedOut {
		return 0, http.ErrHandlerTimeout
	}
	if !tw.wroteHeader {
		tw.writeHeaderLocked(http.StatusOK)
	}
	return tw.w.Write(b)
}

// writeHeaderLocked copies the buffered headers and sends the status.
// tw.mu must be held.
func (tw *timeoutWriter) writeHeaderLocked(code int) {
	tw.wroteHeader = true
	tw.copyHeaders()
	tw.w.WriteHeader(code)
}

// copyHeaders copies the buffered headers to the real writer.
func (tw *timeoutWriter) copyHeaders() {
	dst := tw.w.Header()
	for k, vv := range tw.h {
		dst[k] = append([]string(nil), vv...)
	}
}

// Flush forwards to the real writer once the response has started.
func (tw *timeoutWriter) Flush() {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if tw.timedOut || !tw.wroteHeader {
		return
	}
	if f, ok := tw.w.(http.Flusher); ok {
		f.Flush()
	}
}
