package wikitext

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-wikitext/pkg/interfaces"
)

// MessageImageMissing is the translation key for the missing-image placeholder.
// The translator receives the image title as its only argument.
const MessageImageMissing = "wikitext.image.missing"

const defaultImageMissing = `The image "%s" does not exist.`

// Messages renders the user-facing strings the renderer emits.
type Messages struct {
	translator interfaces.Translator
}

// NewMessages uses translator when set and the English defaults otherwise.
func NewMessages(translator interfaces.Translator) Messages {
	return Messages{translator: translator}
}

// ImageMissing returns the unescaped placeholder shown instead of an image.
func (m Messages) ImageMissing(locale, title string) string {
	if m.translator != nil {
		if msg, err := m.translator.Translate(locale, MessageImageMissing, title); err == nil && strings.TrimSpace(msg) != "" {
			return msg
		}
	}
	return fmt.Sprintf(defaultImageMissing, title)
}
