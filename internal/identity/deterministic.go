package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must prefix keys by entity kind so documents and assets never collide.
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// DocumentUUID identifies a document by its (title, locale) key.
func DocumentUUID(title, locale string) uuid.UUID {
	return UUID("go-wikitext:document:" + strings.ToLower(strings.TrimSpace(locale)) + ":" + strings.TrimSpace(title))
}

// AssetUUID identifies a media asset by its (title, locale) key.
func AssetUUID(title, locale string) uuid.UUID {
	return UUID("go-wikitext:asset:" + strings.ToLower(strings.TrimSpace(locale)) + ":" + strings.TrimSpace(title))
}
