// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package render parses the embedded HTML templates and renders pages.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/staffreg/internal/i18n"
	"github.com/olegiv/staffreg/internal/model"
	"github.com/olegiv/staffreg/internal/registration"
)

// Session keys used for flash messages.
const (
	flashKey     = "flash"
	flashTypeKey = "flash_type"
)

// Renderer handles template rendering with caching.
type Renderer struct {
	templates      map[string]*template.Template
	sessionManager *scs.SessionManager
	isDev          bool
}

// Config holds renderer configuration.
type Config struct {
	TemplatesFS    fs.FS
	SessionManager *scs.SessionManager
	IsDev          bool
}

// New creates a new Renderer with parsed templates.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		templates:      make(map[string]*template.Template),
		sessionManager: cfg.SessionManager,
		isDev:          cfg.IsDev,
	}

	if err := r.parseTemplates(cfg.TemplatesFS); err != nil {
		return nil, err
	}

	return r, nil
}

// parseTemplates parses every page with the base layout and all partials.
func (r *Renderer) parseTemplates(templatesFS fs.FS) error {
	partials, err := r.getTemplateFiles(templatesFS, "partials")
	if err != nil {
		return fmt.Errorf("getting partials: %w", err)
	}

	pages, err := r.getTemplateFiles(templatesFS, "pages")
	if err != nil {
		return fmt.Errorf("getting pages: %w", err)
	}
	if len(pages) == 0 {
		return fmt.Errorf("no page templates found")
	}

	baseLayout := "layouts/base.html"

	for _, tmplPath := range pages {
		name := strings.TrimSuffix(path.Base(tmplPath), ".html")

		// Parse in order: base layout, partials, page template
		files := []string{baseLayout}
		files = append(files, partials...)
		files = append(files, tmplPath)

		tmpl, err := template.New("").Funcs(r.templateFuncs()).ParseFS(templatesFS, files...)
		if err != nil {
			return fmt.Errorf("parsing template %s: %w", name, err)
		}

		r.templates[name] = tmpl
	}

	return nil
}

// getTemplateFiles returns all .html files in a directory.
func (r *Renderer) getTemplateFiles(templatesFS fs.FS, dir string) ([]string, error) {
	var files []string

	entries, err := fs.ReadDir(templatesFS, dir)
	if err != nil {
		// Directory might not exist, that's ok
		return files, nil
	}

	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".html") {
			files = append(files, path.Join(dir, entry.Name()))
		}
	}

	return files, nil
}

// templateFuncs returns custom template functions.
func (r *Renderer) templateFuncs() template.FuncMap {
	return template.FuncMap{
		"T": i18n.T,
		"formatDate": func(d model.Date) string {
			return d.Display()
		},
		"roleLabel": roleLabel,
		"roles": func() []model.Role {
			return model.ValidRoles
		},
		"isRole": func(s string) bool {
			return model.Role(s).IsValid()
		},
		"fieldError": fieldError,
		"fieldArgs": func(lang string, errs registration.FieldErrors, field string) FieldArgs {
			return FieldArgs{Lang: lang, Errors: errs, Field: field}
		},
		"languages": func() []string {
			return i18n.SupportedLanguages
		},
	}
}

// roleLabel returns the translated name of a role, falling back to the
// placeholder label for anything that is not a valid role.
func roleLabel(lang string, role model.Role) string {
	if !role.IsValid() {
		return i18n.T(lang, "role."+string(model.RoleUnselected))
	}
	return i18n.T(lang, "role."+string(role))
}

// fieldError returns the translated validation message for field, if any.
func fieldError(lang string, errs registration.FieldErrors, field string) string {
	key, ok := errs[field]
	if !ok {
		return ""
	}
	return i18n.T(lang, key)
}

// FieldArgs is passed to the field-error partial.
type FieldArgs struct {
	Lang   string
	Errors registration.FieldErrors
	Field  string
}

// TemplateData holds data passed to templates.
type TemplateData struct {
	Title       string
	Lang        string
	Data        any
	Flash       string
	FlashType   string
	CurrentYear int
	IsDev       bool
}

// RenderStatus renders a template with the given status code.
func (r *Renderer) RenderStatus(w http.ResponseWriter, req *http.Request, status int, name string, data TemplateData) error {
	tmpl, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("template %s not found", name)
	}

	data.CurrentYear = time.Now().Year()
	data.IsDev = r.isDev
	if data.Lang == "" {
		data.Lang = i18n.DefaultLanguage()
	}

	// Get flash message from session
	if r.sessionManager != nil {
		if flash := r.sessionManager.PopString(req.Context(), flashKey); flash != "" {
			data.Flash = flash
			data.FlashType = r.sessionManager.PopString(req.Context(), flashTypeKey)
			if data.FlashType == "" {
				data.FlashType = "info"
			}
		}
	}

	// Render to buffer first to catch errors
	buf := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(buf, "base", data); err != nil {
		return fmt.Errorf("executing template %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
	return nil
}

// SetFlash sets a flash message in the session.
func (r *Renderer) SetFlash(req *http.Request, message, flashType string) {
	if r.sessionManager != nil {
		r.sessionManager.Put(req.Context(), flashKey, message)
		r.sessionManager.Put(req.Context(), flashTypeKey, flashType)
	}
}
