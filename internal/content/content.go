// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package content renders the markdown blocks shown on the registration page.
package content

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

// htmlSanitizer strips anything the markdown renderer should never produce.
var htmlSanitizer = bluemonday.UGCPolicy()

// Library holds pre-rendered markdown documents keyed by name and language.
type Library struct {
	mu          sync.RWMutex
	docs        map[string]template.HTML
	defaultLang string
}

// Load renders every "<name>.<lang>.md" file in dir.
func Load(fsys fs.FS, dir, defaultLang string) (*Library, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("reading content dir %s: %w", dir, err)
	}

	lib := &Library{
		docs:        make(map[string]template.HTML),
		defaultLang: defaultLang,
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}

		base := strings.TrimSuffix(entry.Name(), ".md")
		name, lang, ok := strings.Cut(base, ".")
		if !ok || name == "" || lang == "" {
			continue
		}

		src, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", entry.Name(), err)
		}

		html, err := Render(src)
		if err != nil {
			return nil, fmt.Errorf("rendering %s: %w", entry.Name(), err)
		}
		lib.docs[key(name, lang)] = html
	}

	return lib, nil
}

// Render converts markdown to sanitized HTML.
func Render(src []byte) (template.HTML, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert(src, &buf); err != nil {
		return "", err
	}
	// #nosec G203 -- output passed through bluemonday UGC policy
	return template.HTML(htmlSanitizer.SanitizeBytes(buf.Bytes())), nil
}

// Get returns the document for lang, falling back to the default language.
func (l *Library) Get(name, lang string) template.HTML {
	if l == nil {
		return ""
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	if doc, ok := l.docs[key(name, lang)]; ok {
		return doc
	}
	return l.docs[key(name, l.defaultLang)]
}

// Len returns the number of loaded documents.
func (l *Library) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.docs)
}

func key(name, lang string) string {
	return name + "." + lang
}
