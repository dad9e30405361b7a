package wikitext

import (
	"context"
	"slices"
	"strings"
)

var (
	alignValues  = []string{"none", "left", "center", "right"}
	valignValues = []string{"baseline", "sub", "super", "top", "text-top", "middle", "bottom", "text-bottom"}
)

// ImageParams holds the recognised image parameters. A nil field means the key
// was absent or its value failed validation.
type ImageParams struct {
	// Page is the authored page title; Link already holds its resolved URL.
	Page      *string
	Link      *string
	Align     *string
	VAlign    *string
	Alt       *string
	Width     *string
	Height    *string
	Frameless bool
}

// ParamParser turns raw image parameters into ImageParams and a caption.
type ParamParser struct {
	links *LinkResolver
}

// NewParamParser resolves page= values through links.
func NewParamParser(links *LinkResolver) *ParamParser {
	return &ParamParser{links: links}
}

// Parse never rejects input: unknown tokens become caption text and invalid
// values are dropped. The only error is a failed page= lookup.
func (p *ParamParser) Parse(ctx context.Context, raw []string, locale string) (ImageParams, string, error) {
	var params ImageParams
	var caption []string

	for _, item := range raw {
		if strings.TrimSpace(item) == "frameless" {
			params.Frameless = true
			continue
		}
		key, value, ok := strings.Cut(item, "=")
		if ok && params.set(strings.TrimSpace(key), value) {
			continue
		}
		if strings.TrimSpace(item) != "" {
			caption = append(caption, item)
		}
	}

	if params.Page != nil {
		title, hash, _ := strings.Cut(*params.Page, "#")
		url, err := p.links.Build(ctx, title, hash, locale)
		if err != nil {
			return params, strings.TrimSpace(strings.Join(caption, "|")), err
		}
		params.Link = &url
	}

	return params, strings.TrimSpace(strings.Join(caption, "|")), nil
}

// set stores a recognised key and reports whether key was recognised at all.
// A recognised key with an invalid value is consumed but not stored.
func (p *ImageParams) set(key, value string) bool {
	trimmed := strings.TrimSpace(value)
	switch key {
	case "page":
		if trimmed != "" {
			p.Page = &trimmed
		}
	case "link":
		if trimmed != "" {
			p.Link = &trimmed
		}
	case "align":
		if slices.Contains(alignValues, trimmed) {
			p.Align = &trimmed
		}
	case "valign":
		if slices.Contains(valignValues, trimmed) {
			p.VAlign = &trimmed
		}
	case "alt":
		p.Alt = &value
	case "width":
		if isDigits(trimmed) {
			p.Width = &trimmed
		}
	case "height":
		if isDigits(trimmed) {
			p.Height = &trimmed
		}
	default:
		return false
	}
	return true
}

func isDigits(value string) bool {
	if value == "" {
		return false
	}
	for i := 0; i < len(value); i++ {
		if value[i] < '0' || value[i] > '9' {
			return false
		}
	}
	return true
}
