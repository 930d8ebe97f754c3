// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"github.com/olegiv/staffreg/internal/content"
	"github.com/olegiv/staffreg/internal/i18n"
	"github.com/olegiv/staffreg/internal/middleware"
	"github.com/olegiv/staffreg/internal/render"
	"github.com/olegiv/staffreg/internal/session"
	"github.com/olegiv/staffreg/web"
)

// testNow is the fixed clock of the handler tests.
var testNow = time.Date(2026, time.October, 19, 10, 0, 0, 0, time.UTC)

func TestMain(m *testing.M) {
	if err := i18n.Init(nil); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// testSessionManager creates a session manager for testing.
func testSessionManager(t *testing.T) *scs.SessionManager {
	t.Helper()
	return session.New(session.Options{IsDev: true})
}

// requestWithURLParams adds chi URL parameters to a request.
func requestWithURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// requestWithSession wraps a request with session context.
func requestWithSession(sm *scs.SessionManager, r *http.Request) *http.Request {
	ctx, err := sm.Load(r.Context(), "")
	if err != nil {
		return r
	}
	return r.WithContext(ctx)
}

// assertStatus checks if the response status code matches the expected value.
func assertStatus(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("status = %d; want %d", got, want)
	}
}

// testApp is a registration handler mounted behind the session and
// language middleware. It replays the session cookie like a browser.
type testApp struct {
	t       *testing.T
	sm      *scs.SessionManager
	handler *RegistrationHandler
	router  http.Handler
	cookies []*http.Cookie
	ids     []string
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	sm := testSessionManager(t)
	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		t.Fatalf("getting templates fs: %v", err)
	}
	renderer, err := render.New(render.Config{TemplatesFS: templatesFS, SessionManager: sm, IsDev: true})
	if err != nil {
		t.Fatalf("creating renderer: %v", err)
	}
	lib, err := content.Load(web.Content, "content", "es")
	if err != nil {
		t.Fatalf("loading content: %v", err)
	}

	app := &testApp{t: t, sm: sm}
	h := NewRegistrationHandler(session.NewStateStore(sm, nil), renderer, lib, time.UTC)
	h.now = func() time.Time { return testNow }
	h.newID = func() string {
		id := "id-" + string(rune('a'+len(app.ids)))
		app.ids = append(app.ids, id)
		return id
	}
	app.handler = h

	r := chi.NewRouter()
	r.Use(sm.LoadAndSave)
	r.Use(middleware.Language)
	h.RegisterRoutes(r)
	app.router = r

	return app
}

// do sends a request carrying the session cookie and keeps any new one.
func (a *testApp) do(method, target string, form url.Values) *httptest.ResponseRecorder {
	a.t.Helper()

	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for _, c := range a.cookies {
		req.AddCookie(c)
	}

	rr := httptest.NewRecorder()
	a.router.ServeHTTP(rr, req)

	for _, c := range rr.Result().Cookies() {
		if c.Name == a.sm.Cookie.Name {
			a.cookies = []*http.Cookie{c}
		}
	}
	return rr
}

// page fetches the registration page body.
func (a *testApp) page() string {
	a.t.Helper()
	rr := a.do(http.MethodGet, RouteRoot+"?lang=en", nil)
	assertStatus(a.t, rr.Code, http.StatusOK)
	return rr.Body.String()
}

// anaForm is the form of the reference registration.
func anaForm() url.Values {
	return url.Values{
		"first_name": {"Ana"},
		"last_name":  {"Diaz"},
		"birth_date": {"2000-01-01"},
		"email":      {"ana@x.com"},
		"role":       {"developer"},
		"hire_date":  {"2020-01-01"},
	}
}
