// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler provides the HTTP handlers of the registration server.
package handler

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/staffreg/internal/content"
	"github.com/olegiv/staffreg/internal/i18n"
	"github.com/olegiv/staffreg/internal/middleware"
	"github.com/olegiv/staffreg/internal/model"
	"github.com/olegiv/staffreg/internal/registration"
	"github.com/olegiv/staffreg/internal/render"
	"github.com/olegiv/staffreg/internal/session"
)

// welcomeDoc is the content document shown above the form.
const welcomeDoc = "welcome"

// RegistrationHandler serves the staff registration page and its actions.
type RegistrationHandler struct {
	store    *session.StateStore
	renderer *render.Renderer
	content  *content.Library
	location *time.Location
	now      func() time.Time
	newID    registration.IDFunc
}

// NewRegistrationHandler creates a new RegistrationHandler.
// Dates are evaluated in loc; a nil loc means time.Local.
func NewRegistrationHandler(store *session.StateStore, renderer *render.Renderer, lib *content.Library, loc *time.Location) *RegistrationHandler {
	if loc == nil {
		loc = time.Local
	}
	return &RegistrationHandler{
		store:    store,
		renderer: renderer,
		content:  lib,
		location: loc,
		now:      time.Now,
		newID:    registration.NewID,
	}
}

// RegisterRoutes mounts the registration routes on r.
func (h *RegistrationHandler) RegisterRoutes(r chi.Router) {
	r.Get(RouteRoot, h.Index)
	r.Get(RouteStaffJSON, h.RosterJSON)
	r.Post(RouteStaff, h.Submit)
	r.Post(RouteStaffConfirm, h.Confirm)
	r.Post(RouteStaffCancel, h.Cancel)
	r.Post(RouteStaffIDDelete, h.Delete)
	r.Delete(RouteStaffID, h.DeleteAPI)
	r.Post(RouteSessionReset, h.Reset)
}

// IndexData holds data for the registration page template.
type IndexData struct {
	Welcome template.HTML
	Form    registration.Form
	Errors  registration.FieldErrors
	Draft   *model.Person
	Roster  registration.Roster
}

// today returns the current calendar date in the configured location.
func (h *RegistrationHandler) today() model.Date {
	return model.DateOf(h.now().In(h.location))
}

// Index handles GET / - renders the form, the pending preview and the roster.
func (h *RegistrationHandler) Index(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, http.StatusOK, h.store.Load(r.Context()))
}

// Submit handles POST /staff - validates the form and opens the preview.
func (h *RegistrationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLanguage(r)

	if err := r.ParseForm(); err != nil {
		flashError(w, r, h.renderer, RouteRoot, i18n.T(lang, "flash.invalid_form"))
		return
	}

	st, err := registration.Submit(h.store.Load(r.Context()), registration.FormFromValues(r.PostForm), h.today())
	if !h.save(w, r, st) {
		return
	}

	if verr, ok := registration.AsValidationError(err); ok {
		slog.DebugContext(r.Context(), "registration form rejected", "fields", len(verr.Fields))
		h.renderPage(w, r, http.StatusUnprocessableEntity, st)
		return
	}

	redirectHome(w, r)
}

// Confirm handles POST /staff/confirm - commits the pending draft.
func (h *RegistrationHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLanguage(r)

	st, person, err := registration.Confirm(h.store.Load(r.Context()), h.today(), h.newID)
	switch {
	case errors.Is(err, registration.ErrNoPendingDraft):
		flashAndRedirect(w, r, h.renderer, RouteRoot, i18n.T(lang, "flash.no_pending"), FlashInfo)
		return
	case err != nil:
		if _, ok := registration.AsValidationError(err); ok {
			// The roster or the date changed since the preview was opened.
			if h.save(w, r, st) {
				h.renderPage(w, r, http.StatusUnprocessableEntity, st)
			}
			return
		}
		logAndInternalError(w, "failed to confirm registration", "error", err)
		return
	}

	if !h.save(w, r, st) {
		return
	}

	slog.InfoContext(r.Context(), "person registered", "person_id", person.ID, "role", person.Role, "roster_size", len(st.Roster))
	flashSuccess(w, r, h.renderer, RouteRoot, i18n.T(lang, "flash.registered", person.FullName()))
}

// Cancel handles POST /staff/cancel - closes the preview, keeping the values.
func (h *RegistrationHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	if !h.save(w, r, registration.Cancel(h.store.Load(r.Context()))) {
		return
	}
	redirectHome(w, r)
}

// Delete handles POST /staff/{id}/delete.
func (h *RegistrationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	removed, ok := h.deleteByID(w, r)
	if !ok {
		return
	}
	if removed {
		flashSuccess(w, r, h.renderer, RouteRoot, i18n.T(middleware.GetLanguage(r), "flash.deleted"))
		return
	}
	redirectHome(w, r)
}

// DeleteAPI handles DELETE /staff/{id}. Deleting an unknown id succeeds too.
func (h *RegistrationHandler) DeleteAPI(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.deleteByID(w, r); !ok {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// deleteByID removes the roster entry named by the {id} route parameter.
// It reports whether an entry was removed and whether the state was saved.
func (h *RegistrationHandler) deleteByID(w http.ResponseWriter, r *http.Request) (removed, ok bool) {
	id := chi.URLParam(r, "id")
	st := h.store.Load(r.Context())
	removed = st.Roster.Contains(id)

	if !h.save(w, r, registration.Delete(st, id)) {
		return false, false
	}
	if removed {
		slog.InfoContext(r.Context(), "person deleted", "person_id", id)
	}
	return removed, true
}

// Reset handles POST /session/reset - drops the roster and the form.
func (h *RegistrationHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Reset(r.Context()); err != nil {
		logAndInternalError(w, "failed to reset session", "error", err)
		return
	}
	flashAndRedirect(w, r, h.renderer, RouteRoot, i18n.T(middleware.GetLanguage(r), "flash.session_reset"), FlashInfo)
}

// RosterResponse is the JSON view of the session roster.
type RosterResponse struct {
	Count int            `json:"count"`
	Staff []model.Person `json:"staff"`
}

// RosterJSON handles GET /staff.json.
func (h *RegistrationHandler) RosterJSON(w http.ResponseWriter, r *http.Request) {
	roster := h.store.Load(r.Context()).Roster
	staff := make([]model.Person, len(roster))
	copy(staff, roster)

	writeJSON(w, http.StatusOK, RosterResponse{Count: len(staff), Staff: staff})
}

// save stores st in the session, answering 500 on failure.
func (h *RegistrationHandler) save(w http.ResponseWriter, r *http.Request, st registration.State) bool {
	if err := h.store.Save(r.Context(), st); err != nil {
		logAndInternalError(w, "failed to save registration state", "error", err)
		return false
	}
	return true
}

// renderPage renders the registration page for st.
func (h *RegistrationHandler) renderPage(w http.ResponseWriter, r *http.Request, status int, st registration.State) {
	lang := middleware.GetLanguage(r)

	data := IndexData{
		Welcome: h.content.Get(welcomeDoc, lang),
		Form:    st.Current().Values(),
		Errors:  st.Errors(),
		Roster:  st.Roster,
	}
	if pending, ok := st.Pending(); ok {
		draft := pending.Draft
		data.Draft = &draft
	}

	if err := h.renderer.RenderStatus(w, r, status, pageIndex, render.TemplateData{
		Title: i18n.T(lang, "page.title"),
		Lang:  lang,
		Data:  data,
	}); err != nil {
		logAndInternalError(w, "failed to render registration page", "error", err)
	}
}
