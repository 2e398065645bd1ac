// Package i18n provides localized message lookup for console responses and
// page-type labels.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/text/language"
)

//go:embed locales
var localesFS embed.FS

// Message represents a single translatable message.
type Message struct {
	ID          string `json:"id"`
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
	defaultLang  string
}

// catalog is the global catalog instance.
var catalog *Catalog

// SupportedLanguages lists the languages we ship locale files for.
var SupportedLanguages = []string{"en", "zh"}

// Init initializes the i18n system from the embedded locale files.
func Init(logger *slog.Logger) error {
	c := &Catalog{
		translations: make(map[string]map[string]string),
		defaultLang:  "en",
	}

	tags := make([]language.Tag, 0, len(SupportedLanguages))
	for _, lang := range SupportedLanguages {
		tags = append(tags, language.MustParse(lang))
	}
	c.matcher = language.NewMatcher(tags)

	for _, lang := range SupportedLanguages {
		if err := c.loadLanguage(lang); err != nil {
			return fmt.Errorf("loading language %s: %w", lang, err)
		}
	}

	catalog = c

	if logger != nil {
		logger.Info("i18n initialized", "languages", SupportedLanguages)
	}
	return nil
}

func (c *Catalog) loadLanguage(lang string) error {
	data, err := localesFS.ReadFile(fmt.Sprintf("locales/%s/messages.json", lang))
	if err != nil {
		return err
	}

	var file MessageFile
	if err := json.Unmarshal(data, &file); err != nil {
		return err
	}

	msgs := make(map[string]string, len(file.Messages))
	for _, m := range file.Messages {
		msgs[m.ID] = m.Translation
	}

	c.mu.Lock()
	c.translations[lang] = msgs
	c.mu.Unlock()
	return nil
}

// T returns the translation for key in the given language, falling back to
// the default language and finally to the key itself.
func T(lang, key string) string {
	if catalog == nil {
		return key
	}

	catalog.mu.RLock()
	defer catalog.mu.RUnlock()

	if msgs, ok := catalog.translations[lang]; ok {
		if s, ok := msgs[key]; ok {
			return s
		}
	}
	if msgs, ok := catalog.translations[catalog.defaultLang]; ok {
		if s, ok := msgs[key]; ok {
			return s
		}
	}
	return key
}

// Match resolves an Accept-Language header or bare language code to a
// supported language code.
func Match(preferred string) string {
	if catalog == nil || preferred == "" {
		return "en"
	}

	// Try as a full Accept-Language header first
	tags, _, err := language.ParseAcceptLanguage(preferred)
	if err != nil || len(tags) == 0 {
		// Try as a single language code
		tag, err := language.Parse(preferred)
		if err != nil {
			return catalog.defaultLang
		}
		tags = []language.Tag{tag}
	}

	_, idx, conf := catalog.matcher.Match(tags...)
	if conf == language.No {
		return catalog.defaultLang
	}
	return SupportedLanguages[idx]
}
