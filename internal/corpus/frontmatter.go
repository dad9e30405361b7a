package corpus

import (
	"bytes"
	"fmt"

	"github.com/adrg/frontmatter"
)

// FrontMatter is the metadata block a corpus document may start with.
type FrontMatter struct {
	Title  string         `yaml:"title"`
	Slug   string         `yaml:"slug"`
	Syntax string         `yaml:"syntax"`
	Custom map[string]any `yaml:",inline"`
}

// ParseFrontMatter splits source into its metadata and body. Sources without
// a metadata block return the whole input as body.
func ParseFrontMatter(source []byte) (FrontMatter, []byte, error) {
	var meta FrontMatter
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	return meta, body, nil
}
