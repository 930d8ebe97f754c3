// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"

	"golang.org/x/time/rate"
)

// maxLimiterEntries bounds the per-IP limiter map.
const maxLimiterEntries = 10000

// limiterCache is a generic rate limiter cache with double-check locking.
type limiterCache[K comparable] struct {
	limiters map[K]*rate.Limiter
	mu       sync.RWMutex
	rate     rate.Limit
	burst    int
}

// newLimiterCache creates a new limiter cache.
func newLimiterCache[K comparable](rps float64, burst int) *limiterCache[K] {
	return &limiterCache[K]{
		limiters: make(map[K]*rate.Limiter),
		rate:     rate.Limit(rps),
		burst:    burst,
	}
}

// get returns the rate limiter for a specific key, creating one if needed.
func (lc *limiterCache[K]) get(key K) *rate.Limiter {
	lc.mu.RLock()
	limiter, exists := lc.limiters[key]
	lc.mu.RUnlock()

	if exists {
		return limiter
	}

	lc.mu.Lock()
	defer lc.mu.Unlock()

	// Double-check after acquiring write lock
	if limiter, exists = lc.limiters[key]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(lc.rate, lc.burst)
	lc.limiters[key] = limiter
	return limiter
}

// clearIfExceeds clears all entries if the cache exceeds maxSize.
// Returns true if the cache was cleared.
func (lc *limiterCache[K]) clearIfExceeds(maxSize int) bool {
	lc.mu.Lock()
	defer lc.mu.Unlock()

	if len(lc.limiters) > maxSize {
		lc.limiters = make(map[K]*rate.Limiter)
		return true
	}
	return false
}

// size returns the number of tracked keys.
func (lc *limiterCache[K]) size() int {
	lc.mu.RLock()
	defer lc.mu.RUnlock()
	return len(lc.limiters)
}

// RateLimiter limits requests per client IP.
type RateLimiter struct {
	cache      *limiterCache[string]
	maxEntries int
}

// NewRateLimiter creates a per-IP rate limiter allowing rps requests per
// second with the given burst.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return &RateLimiter{
		cache:      newLimiterCache[string](rps, burst),
		maxEntries: maxLimiterEntries,
	}
}

// Allow reports whether a request from ip may proceed now.
func (rl *RateLimiter) Allow(ip string) bool {
	if rl.cache.clearIfExceeds(rl.maxEntries) {
		slog.Debug("rate limiter cache cleared", "max_entries", rl.maxEntries)
	}
	return rl.cache.get(ip).Allow()
}

// HTMLMiddleware returns the rate limiting middleware for form endpoints
// (plain text errors). Only state-changing methods are counted.
func (rl *RateLimiter) HTMLMiddleware() func(http.Handler) http.Handler {
	retryAfter := "1"
	if r := float64(rl.cache.rate); r > 0 && r < 1 {
		retryAfter = strconv.Itoa(int(math.Ceil(1 / r)))
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isSafeMethod(r.Method) {
				next.ServeHTTP(w, r)
				return
			}

			ip := getClientIP(r)
			if !rl.Allow(ip) {
				slog.Warn("rate limit exceeded", "ip", ip, "path", r.URL.Path)
				w.Header().Set("Retry-After", retryAfter)
				http.Error(w, "Too many requests. Please wait a moment and try again.", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// getClientIP returns the client address without the port.
// chi's RealIP middleware has already applied X-Real-IP / X-Forwarded-For.
func getClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
