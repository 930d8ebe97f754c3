// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	html, err := Render([]byte("# Welcome\n\nBuild **together**."))
	require.NoError(t, err)

	assert.Contains(t, string(html), "<h1>Welcome</h1>")
	assert.Contains(t, string(html), "<strong>together</strong>")
}

func TestRender_StripsScripts(t *testing.T) {
	html, err := Render([]byte("hello <script>alert(1)</script> [x](javascript:alert(1))"))
	require.NoError(t, err)

	assert.NotContains(t, string(html), "<script>")
	assert.NotContains(t, string(html), "javascript:")
}

func TestLoad(t *testing.T) {
	fsys := fstest.MapFS{
		"content/welcome.es.md": {Data: []byte("# Bienvenido")},
		"content/welcome.en.md": {Data: []byte("# Welcome")},
		"content/README":        {Data: []byte("ignored")},
		"content/broken.md":     {Data: []byte("no language")},
	}

	lib, err := Load(fsys, "content", "es")
	require.NoError(t, err)

	assert.Equal(t, 2, lib.Len())
	assert.True(t, strings.Contains(string(lib.Get("welcome", "en")), "Welcome"))
	assert.True(t, strings.Contains(string(lib.Get("welcome", "es")), "Bienvenido"))
}

func TestGet_FallsBackToDefaultLanguage(t *testing.T) {
	fsys := fstest.MapFS{
		"content/welcome.es.md": {Data: []byte("# Bienvenido")},
	}

	lib, err := Load(fsys, "content", "es")
	require.NoError(t, err)

	assert.Contains(t, string(lib.Get("welcome", "fr")), "Bienvenido")
	assert.Empty(t, lib.Get("missing", "es"))
}

func TestLoad_MissingDir(t *testing.T) {
	_, err := Load(fstest.MapFS{}, "content", "es")
	assert.Error(t, err)
}

func TestGet_NilLibrary(t *testing.T) {
	var lib *Library
	assert.Empty(t, lib.Get("welcome", "es"))
}
