package i18n

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-wikitext/pkg/interfaces"
)

// ErrMissingTranslation is returned when no candidate locale defines a key.
var ErrMissingTranslation = errors.New("i18n: missing translation")

// ErrDefaultLocaleRequired is returned by NewCatalog for a blank default locale.
var ErrDefaultLocaleRequired = errors.New("i18n: default locale is required")

// Catalog is an in-memory message table keyed by locale then message key.
// Messages are fmt format strings.
type Catalog struct {
	defaultLocale string
	messages      map[string]map[string]string
}

var _ interfaces.Translator = (*Catalog)(nil)

// NewCatalog indexes translations case-insensitively by locale.
func NewCatalog(cfg Config, translations map[string]map[string]string) (*Catalog, error) {
	defaultLocale := normalizeLocale(cfg.DefaultLocale)
	if defaultLocale == "" {
		return nil, ErrDefaultLocaleRequired
	}
	c := &Catalog{
		defaultLocale: defaultLocale,
		messages:      make(map[string]map[string]string, len(translations)),
	}
	for locale, entries := range translations {
		key := normalizeLocale(locale)
		if key == "" {
			continue
		}
		bucket, ok := c.messages[key]
		if !ok {
			bucket = make(map[string]string, len(entries))
			c.messages[key] = bucket
		}
		for id, msg := range entries {
			bucket[id] = msg
		}
	}
	return c, nil
}

// DefaultLocale reports the normalised fallback locale.
func (c *Catalog) DefaultLocale() string { return c.defaultLocale }

// Translate looks key up in locale, its regional parent ("es" for "es-MX")
// and then the default locale.
func (c *Catalog) Translate(locale, key string, args ...any) (string, error) {
	for _, candidate := range c.candidates(locale) {
		if msg, ok := c.messages[candidate][key]; ok {
			if len(args) == 0 {
				return msg, nil
			}
			return fmt.Sprintf(msg, args...), nil
		}
	}
	return "", fmt.Errorf("%w: %s (%s)", ErrMissingTranslation, key, locale)
}

func (c *Catalog) candidates(locale string) []string {
	out := make([]string, 0, 3)
	add := func(value string) {
		if value == "" {
			return
		}
		for _, existing := range out {
			if existing == value {
				return
			}
		}
		out = append(out, value)
	}
	normalized := normalizeLocale(locale)
	add(normalized)
	if idx := strings.IndexByte(normalized, '-'); idx > 0 {
		add(normalized[:idx])
	}
	add(c.defaultLocale)
	return out
}

func normalizeLocale(locale string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(locale), "_", "-"))
}
