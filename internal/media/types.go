package media

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-wikitext/pkg/interfaces"
)

// Asset is an image registered under one locale. The pair (Title, Locale) is
// unique and determines ID; the locale is the storage key, nothing else.
type Asset struct {
	bun.BaseModel `bun:"table:wiki_media,alias:wm"`

	ID        uuid.UUID `bun:",pk,type:uuid" json:"id"`
	Title     string    `bun:"title,notnull" json:"title"`
	Locale    string    `bun:"locale,notnull" json:"locale"`
	URL       string    `bun:"url,notnull" json:"url"`
	MimeType  string    `bun:"mime_type" json:"mime_type,omitempty"`
	Width     int       `bun:"width" json:"width,omitempty"`
	Height    int       `bun:"height" json:"height,omitempty"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// Handle projects the fields image rendering needs.
func (a *Asset) Handle() interfaces.AssetHandle {
	if a == nil {
		return interfaces.AssetHandle{}
	}
	return interfaces.AssetHandle{Title: a.Title, URL: a.URL, Locale: a.Locale}
}

func cloneAsset(asset *Asset) *Asset {
	if asset == nil {
		return nil
	}
	cloned := *asset
	return &cloned
}
