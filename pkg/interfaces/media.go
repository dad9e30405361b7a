package interfaces

import "context"

// MediaProvider is an external asset service the renderer can resolve image
// titles against instead of the bundled media repository.
type MediaProvider interface {
	Resolve(ctx context.Context, req MediaResolveRequest) (*MediaAsset, error)
}

// MediaReference identifies an asset within the provider. Path carries the
// image title as authored in markup.
type MediaReference struct {
	ID         string
	Path       string
	Collection string
	Locale     string
}

// MediaResolveRequest controls which parts of an asset should be resolved.
type MediaResolveRequest struct {
	Reference     MediaReference
	IncludeSource bool
	Purpose       string
}

// MediaAsset is the provider's answer. A nil asset with a nil error means the
// reference does not exist.
type MediaAsset struct {
	Reference MediaReference
	Source    *MediaResource
	Metadata  MediaMetadata
}

// MediaResource describes a concrete file representation.
type MediaResource struct {
	URL      string
	MimeType string
	Width    int
	Height   int
}

// MediaMetadata captures descriptive properties of the asset.
type MediaMetadata struct {
	Name     string
	MimeType string
	AltText  string
	Caption  string
}
