package interfaces

// Translator renders localized user-facing strings.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}
