package documents

import (
	"strings"

	"github.com/goliatone/go-slug"
)

// Slugify derives the URL slug for a document title.
func Slugify(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return ""
	}
	normalized, err := slug.Normalize(title)
	if err != nil || normalized == "" {
		return strings.ToLower(strings.Join(strings.Fields(title), "-"))
	}
	return strings.ToLower(normalized)
}

// IsValidSlug reports whether value already satisfies the slug rules.
func IsValidSlug(value string) bool {
	return slug.IsValid(value)
}
