package wikitext

import "strings"

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
)

// EscapeText escapes author text placed between tags. Quotes are left alone.
func EscapeText(s string) string {
	return textEscaper.Replace(s)
}

// EscapeAttr escapes a value placed inside a double-quoted attribute. Single
// quotes are left alone because every attribute is emitted with double quotes.
func EscapeAttr(s string) string {
	return attrEscaper.Replace(s)
}

// escapeLegacyAlt reproduces the historical alt output, where the value was
// text-escaped before being attribute-escaped again. `<` ends up as `&amp;lt;`.
func escapeLegacyAlt(s string) string {
	return EscapeAttr(EscapeText(s))
}
