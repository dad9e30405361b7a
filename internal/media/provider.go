package media

import (
	"context"
	"errors"
	"strings"

	"github.com/goliatone/go-wikitext/pkg/interfaces"
)

// ErrProviderUnavailable reports that no upstream media provider has been configured.
var ErrProviderUnavailable = errors.New("media: provider unavailable")

// ProviderFinder resolves image titles against an external MediaProvider.
// The provider is asked for (title, locale) exactly; a nil asset or an asset
// without a source URL is a miss.
type ProviderFinder struct {
	provider   interfaces.MediaProvider
	collection string
}

var _ interfaces.AssetFinder = (*ProviderFinder)(nil)

// NewProviderFinder adapts provider. Collection scopes references when the
// provider hosts more than the knowledge-base images.
func NewProviderFinder(provider interfaces.MediaProvider, collection string) *ProviderFinder {
	return &ProviderFinder{provider: provider, collection: strings.TrimSpace(collection)}
}

func (p *ProviderFinder) Find(ctx context.Context, title, locale string) (interfaces.AssetHandle, bool, error) {
	if p == nil || p.provider == nil {
		return interfaces.AssetHandle{}, false, ErrProviderUnavailable
	}
	asset, err := p.provider.Resolve(ctx, interfaces.MediaResolveRequest{
		Reference: interfaces.MediaReference{
			Path:       title,
			Collection: p.collection,
			Locale:     locale,
		},
		IncludeSource: true,
		Purpose:       "wikitext.image",
	})
	if err != nil {
		return interfaces.AssetHandle{}, false, err
	}
	if asset == nil || asset.Source == nil || strings.TrimSpace(asset.Source.URL) == "" {
		return interfaces.AssetHandle{}, false, nil
	}
	return interfaces.AssetHandle{
		Title:  title,
		URL:    asset.Source.URL,
		Locale: locale,
	}, true, nil
}
