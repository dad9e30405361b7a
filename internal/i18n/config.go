package i18n

// Config lists the locales a catalog serves. DefaultLocale is the last
// resort when neither the requested locale nor its parent has a message.
type Config struct {
	DefaultLocale string   `json:"default_locale" yaml:"default_locale"`
	Locales       []string `json:"locales,omitempty" yaml:"locales,omitempty"`
}
