// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package i18n

import (
	"encoding/json"
	"testing"
)

func TestInit(t *testing.T) {
	if err := Init(nil); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	if TranslationCount("es") == 0 {
		t.Error("Expected Spanish translations to be loaded")
	}
	if TranslationCount("en") == 0 {
		t.Error("Expected English translations to be loaded")
	}
	if TranslationCount("ru") != 0 {
		t.Error("Expected no Russian translations")
	}
}

func TestT(t *testing.T) {
	if err := Init(nil); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	tests := []struct {
		lang     string
		key      string
		args     []any
		expected string
	}{
		{"en", "btn.confirm", nil, "Confirm"},
		{"es", "btn.confirm", nil, "Confirmar"},
		{"en", "validation.required", nil, "required field"},
		{"es", "validation.required", nil, "Este campo es requerido"},
		{"en", "validation.email_taken", nil, "this email is already registered"},
		{"en", "validation.hire_date_too_early", nil, "entry date must be at least 18 years after birth date"},
		{"es", "flash.registered", []any{"Ana Diaz"}, "Ana Diaz ha sido registrado"},
		{"en", "roster.count", []any{2}, "2 registered"},
		// Fallback to the default language for unknown languages
		{"de", "btn.cancel", nil, "Cancelar"},
		// Return key if not found
		{"en", "nonexistent.key", nil, "nonexistent.key"},
	}

	for _, tt := range tests {
		t.Run(tt.lang+"_"+tt.key, func(t *testing.T) {
			result := T(tt.lang, tt.key, tt.args...)
			if result != tt.expected {
				t.Errorf("T(%q, %q, %v) = %q, want %q", tt.lang, tt.key, tt.args, result, tt.expected)
			}
		})
	}
}

func TestMatchLanguage(t *testing.T) {
	if err := Init(nil); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	tests := []struct {
		input    string
		expected string
	}{
		{"en", "en"},
		{"en-US", "en"},
		{"es", "es"},
		{"es-MX,es;q=0.9", "es"},
		{"fr-CA,fr;q=0.9,en;q=0.8", "en"},
		{"de", "es"},
		{"", "es"},
		{"!!!", "es"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := MatchLanguage(tt.input); got != tt.expected {
				t.Errorf("MatchLanguage(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSetDefaultLanguage(t *testing.T) {
	if err := Init(nil); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { SetDefaultLanguage("es") })

	SetDefaultLanguage("xx")
	if got := DefaultLanguage(); got != "es" {
		t.Errorf("DefaultLanguage() = %q after unsupported code, want es", got)
	}

	SetDefaultLanguage("EN")
	if got := DefaultLanguage(); got != "en" {
		t.Errorf("DefaultLanguage() = %q, want en", got)
	}
	if got := T("de", "btn.cancel"); got != "Cancel" {
		t.Errorf("T(de) = %q, want English fallback", got)
	}
}

func TestIsSupported(t *testing.T) {
	for _, lang := range []string{"es", "en", "ES"} {
		if !IsSupported(lang) {
			t.Errorf("IsSupported(%q) = false", lang)
		}
	}
	if IsSupported("ru") {
		t.Error("IsSupported(ru) = true")
	}
}

// TestLocalesHaveSameKeys ensures every key exists in every language.
func TestLocalesHaveSameKeys(t *testing.T) {
	keys := make(map[string]map[string]bool)
	for _, lang := range SupportedLanguages {
		data, err := localesFS.ReadFile("locales/" + lang + "/messages.json")
		if err != nil {
			t.Fatalf("reading %s: %v", lang, err)
		}
		var mf MessageFile
		if err := json.Unmarshal(data, &mf); err != nil {
			t.Fatalf("parsing %s: %v", lang, err)
		}
		keys[lang] = make(map[string]bool)
		for _, m := range mf.Messages {
			if m.Translation == "" {
				t.Errorf("%s: empty translation for %s", lang, m.ID)
			}
			keys[lang][m.ID] = true
		}
	}

	for _, lang := range SupportedLanguages {
		for key := range keys[SupportedLanguages[0]] {
			if !keys[lang][key] {
				t.Errorf("%s: missing key %s", lang, key)
			}
		}
		if len(keys[lang]) != len(keys[SupportedLanguages[0]]) {
			t.Errorf("%s: %d keys, want %d", lang, len(keys[lang]), len(keys[SupportedLanguages[0]]))
		}
	}
}
