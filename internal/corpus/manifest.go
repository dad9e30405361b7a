package corpus

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-wikitext/internal/validation"
)

// ManifestName is the per-locale media manifest file.
const ManifestName = "media.yaml"

// Manifest lists the media assets registered for one locale.
type Manifest struct {
	Assets []ManifestAsset `yaml:"assets"`
}

// ManifestAsset is one entry of a media manifest.
type ManifestAsset struct {
	Title    string `yaml:"title"`
	URL      string `yaml:"url"`
	MimeType string `yaml:"mime_type"`
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
}

//go:embed manifest.schema.json
var manifestSchemaDocument []byte

var manifestSchema = validation.MustCompile("manifest.schema.json", manifestSchemaDocument)

// ParseManifest decodes a media manifest. The document is checked against
// the manifest schema first, so unknown keys and entries without a title or
// url are rejected with their location.
func ParseManifest(data []byte) (Manifest, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Manifest{}, fmt.Errorf("parse media manifest: %w", err)
	}
	if raw == nil {
		return Manifest{}, nil
	}
	if err := manifestSchema.Validate(raw); err != nil {
		return Manifest{}, fmt.Errorf("invalid media manifest: %w", err)
	}

	var manifest Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return Manifest{}, fmt.Errorf("parse media manifest: %w", err)
	}
	return manifest, nil
}
