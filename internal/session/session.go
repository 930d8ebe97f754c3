// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package session configures the HTTP session manager and keeps the
// registration state of each visitor inside their session.
package session

import (
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"
)

// Cookie names.
const (
	CookieNameDev  = "staffreg_session"
	CookieNameProd = "__Host-staffreg_session" // requires Secure and Path=/
)

// Options configures the session manager.
type Options struct {
	// Store holds session data. Nil selects an in-memory store.
	Store       scs.Store
	Lifetime    time.Duration
	IdleTimeout time.Duration
	IsDev       bool
}

// New creates a new session manager.
func New(opts Options) *scs.SessionManager {
	sm := scs.New()

	if opts.Store != nil {
		sm.Store = opts.Store
	} else {
		sm.Store = memstore.NewWithCleanupInterval(time.Minute)
	}

	sm.Lifetime = 12 * time.Hour
	if opts.Lifetime > 0 {
		sm.Lifetime = opts.Lifetime
	}
	if opts.IdleTimeout > 0 {
		sm.IdleTimeout = opts.IdleTimeout
	}

	sm.Cookie.Name = CookieNameDev
	sm.Cookie.HttpOnly = true
	sm.Cookie.Path = "/"
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = !opts.IsDev // Secure cookies in production only
	if !opts.IsDev {
		sm.Cookie.Name = CookieNameProd
	}

	return sm
}
