package documents

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-wikitext/pkg/interfaces"
)

// Document is a knowledge-base article stored under one locale. The pair
// (Title, Locale) is unique and determines ID.
type Document struct {
	bun.BaseModel `bun:"table:wiki_documents,alias:wd"`

	ID        uuid.UUID `bun:",pk,type:uuid" json:"id"`
	Title     string    `bun:"title,notnull" json:"title"`
	Locale    string    `bun:"locale,notnull" json:"locale"`
	Slug      string    `bun:"slug,notnull" json:"slug"`
	Syntax    string    `bun:"syntax" json:"syntax,omitempty"`
	Body      string    `bun:"body" json:"body"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// Handle projects the fields link rendering needs.
func (d *Document) Handle() interfaces.DocumentHandle {
	if d == nil {
		return interfaces.DocumentHandle{}
	}
	return interfaces.DocumentHandle{Title: d.Title, Slug: d.Slug, Locale: d.Locale}
}

func cloneDocument(doc *Document) *Document {
	if doc == nil {
		return nil
	}
	cloned := *doc
	return &cloned
}
