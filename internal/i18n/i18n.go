// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package i18n provides internationalization support for the registration page.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/text/language"
)

//go:embed locales
var localesFS embed.FS

// Message represents a single translatable message.
type Message struct {
	ID          string `json:"id"`
	Message     string `json:"message"`
	Translation string `json:"translation"`
}

// MessageFile represents the structure of a messages JSON file.
type MessageFile struct {
	Language string    `json:"language"`
	Messages []Message `json:"messages"`
}

// Catalog holds all translations for all supported languages.
type Catalog struct {
	mu           sync.RWMutex
	translations map[string]map[string]string // lang -> key -> translation
	matcher      language.Matcher
	supported    []language.Tag
	defaultLang  string
	logger       *slog.Logger
}

// catalog is the global catalog instance.
var catalog *Catalog

// SupportedLanguages lists the UI languages. The first one is the default.
var SupportedLanguages = []string{"es", "en"}

// Init initializes the i18n system with the given logger.
func Init(logger *slog.Logger) error {
	c := &Catalog{
		translations: make(map[string]map[string]string),
		defaultLang:  SupportedLanguages[0],
		logger:       logger,
	}

	// The matcher prefers earlier tags on ties, so the default goes first.
	tags := make([]language.Tag, 0, len(SupportedLanguages))
	for _, lang := range SupportedLanguages {
		tags = append(tags, language.MustParse(lang))
	}
	c.supported = tags
	c.matcher = language.NewMatcher(tags)

	for _, lang := range SupportedLanguages {
		if err := c.loadLanguage(lang); err != nil {
			return fmt.Errorf("failed to load language %s: %w", lang, err)
		}
	}

	catalog = c

	if logger != nil {
		logger.Info("i18n initialized", "languages", SupportedLanguages)
	}

	return nil
}

// loadLanguage loads translations for a specific language.
func (c *Catalog) loadLanguage(lang string) error {
	path := fmt.Sprintf("locales/%s/messages.json", lang)
	data, err := localesFS.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	var msgFile MessageFile
	if err := json.Unmarshal(data, &msgFile); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.translations[lang] = make(map[string]string, len(msgFile.Messages))
	for _, msg := range msgFile.Messages {
		c.translations[lang][msg.ID] = msg.Translation
	}

	if c.logger != nil {
		c.logger.Debug("loaded translations", "language", lang, "count", len(msgFile.Messages))
	}

	return nil
}

// SetDefaultLanguage changes the fallback language. Unsupported codes are ignored.
func SetDefaultLanguage(lang string) {
	if catalog == nil || !IsSupported(lang) {
		return
	}
	catalog.mu.Lock()
	catalog.defaultLang = strings.ToLower(lang)
	catalog.mu.Unlock()
}

// DefaultLanguage returns the fallback language code.
func DefaultLanguage() string {
	if catalog == nil {
		return SupportedLanguages[0]
	}
	catalog.mu.RLock()
	defer catalog.mu.RUnlock()
	return catalog.defaultLang
}

// T translates a message key to the specified language.
// If the key is not found, it returns the key itself.
// Supports optional arguments for string formatting.
func T(lang, key string, args ...any) string {
	if catalog == nil {
		return key
	}

	catalog.mu.RLock()
	defer catalog.mu.RUnlock()

	translation, ok := catalog.translations[lang][key]
	if !ok {
		translation, ok = catalog.translations[catalog.defaultLang][key]
		if !ok {
			return key
		}
		if catalog.logger != nil && lang != catalog.defaultLang {
			catalog.logger.Debug("missing translation, using default", "key", key, "lang", lang)
		}
	}

	if len(args) > 0 {
		return fmt.Sprintf(translation, args...)
	}
	return translation
}

// MatchLanguage finds the best matching supported language for the given
// Accept-Language header or language code.
func MatchLanguage(acceptLang string) string {
	if catalog == nil {
		return SupportedLanguages[0]
	}

	tags, _, err := language.ParseAcceptLanguage(acceptLang)
	if err != nil || len(tags) == 0 {
		tag, err := language.Parse(acceptLang)
		if err != nil {
			return DefaultLanguage()
		}
		tags = []language.Tag{tag}
	}

	_, idx, confidence := catalog.matcher.Match(tags...)
	if confidence == language.No {
		return DefaultLanguage()
	}
	if idx >= 0 && idx < len(catalog.supported) {
		base, _ := catalog.supported[idx].Base()
		return base.String()
	}

	return DefaultLanguage()
}

// IsSupported checks if a language code is supported.
func IsSupported(lang string) bool {
	lang = strings.ToLower(lang)
	for _, supported := range SupportedLanguages {
		if supported == lang {
			return true
		}
	}
	return false
}

// TranslationCount returns the number of translations loaded for a language.
func TranslationCount(lang string) int {
	if catalog == nil {
		return 0
	}

	catalog.mu.RLock()
	defer catalog.mu.RUnlock()

	return len(catalog.translations[lang])
}
