package commands

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	loadCorpusMessageType     = "wikitext.corpus.load"
	renderDocumentMessageType = "wikitext.documents.render"
	exportCorpusMessageType   = "wikitext.corpus.export"
)

// LoadCorpusCommand imports a locale-partitioned content directory.
type LoadCorpusCommand struct {
	// Directory is the corpus root holding one sub directory per locale.
	Directory string `json:"directory"`
	// Locales restricts the import. Empty loads every locale directory.
	Locales []string `json:"locales,omitempty"`
}

// Type implements command.Message.
func (LoadCorpusCommand) Type() string { return loadCorpusMessageType }

// Validate ensures a directory was supplied.
func (cmd LoadCorpusCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(notBlank("wikitext.corpus.load.directory_required", "directory is required"))),
		validation.Field(&cmd.Locales, validation.Each(validation.Required)),
	)
}

// RenderDocumentCommand renders one stored document for Locale and writes the
// result to the handler's sink. The document falls back to the default
// locale when Locale has no copy.
type RenderDocumentCommand struct {
	Title  string `json:"title"`
	Locale string `json:"locale"`
}

// Type implements command.Message.
func (RenderDocumentCommand) Type() string { return renderDocumentMessageType }

// Validate ensures the document is addressed.
func (cmd RenderDocumentCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Title, validation.Required, validation.By(notBlank("wikitext.documents.render.title_required", "title is required"))),
		validation.Field(&cmd.Locale, validation.Required, validation.Length(2, 35)),
	)
}

// ExportCorpusCommand renders every stored document, optionally limited to a
// single locale.
type ExportCorpusCommand struct {
	Locale string `json:"locale,omitempty"`
}

// Type implements command.Message.
func (ExportCorpusCommand) Type() string { return exportCorpusMessageType }

// Validate checks the optional locale filter.
func (cmd ExportCorpusCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Locale, validation.Length(2, 35)),
	)
}

func notBlank(code, message string) validation.RuleFunc {
	return func(value any) error {
		if s, _ := value.(string); strings.TrimSpace(s) == "" {
			return validation.NewError(code, message)
		}
		return nil
	}
}
