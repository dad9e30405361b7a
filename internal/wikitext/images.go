package wikitext

import (
	"context"
	"strings"

	"github.com/goliatone/go-wikitext/internal/fallback"
	"github.com/goliatone/go-wikitext/internal/logging"
	"github.com/goliatone/go-wikitext/pkg/interfaces"
)

// AssetResolver resolves image titles with locale fallback.
type AssetResolver = fallback.Resolver[interfaces.AssetHandle]

// NewAssetResolver wraps finder in the fallback algorithm. The finder must
// search by the requested locale only so a deleted default-locale asset is
// never resurrected from another locale's record.
func NewAssetResolver(finder interfaces.AssetFinder, defaultLocale string, logger interfaces.Logger) *AssetResolver {
	return fallback.New(finder, defaultLocale,
		fallback.WithKind[interfaces.AssetHandle]("asset", "ASSET_LOOKUP_FAILED"),
		fallback.WithLogger[interfaces.AssetHandle](logger),
	)
}

// Fragment is rendered output. Block fragments must not sit inside a paragraph.
type Fragment struct {
	HTML  string
	Block bool
}

// ImageExpander turns image directives into figure markup.
type ImageExpander struct {
	assets    *AssetResolver
	params    *ParamParser
	messages  Messages
	legacyAlt bool
	logger    interfaces.Logger
	onMissing func(kind string)
}

// ImageOption customises an ImageExpander.
type ImageOption func(*ImageExpander)

// WithMessages overrides the placeholder strings.
func WithMessages(messages Messages) ImageOption {
	return func(e *ImageExpander) {
		e.messages = messages
	}
}

// WithLegacyAltEscaping double-escapes explicit alt= values the way older
// renders did, so `<` is emitted as `&amp;lt;`.
func WithLegacyAltEscaping(enabled bool) ImageOption {
	return func(e *ImageExpander) {
		e.legacyAlt = enabled
	}
}

// WithImageLogger sets the expander logger.
func WithImageLogger(logger interfaces.Logger) ImageOption {
	return func(e *ImageExpander) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewImageExpander builds an expander over assets, resolving page= through params.
func NewImageExpander(assets *AssetResolver, params *ParamParser, opts ...ImageOption) *ImageExpander {
	e := &ImageExpander{
		assets:    assets,
		params:    params,
		messages:  NewMessages(nil),
		legacyAlt: true,
		logger:    logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// Expand renders one image directive. A title that resolves nowhere yields
// the escaped placeholder text and no image element.
func (e *ImageExpander) Expand(ctx context.Context, title string, raw []string, locale string) (Fragment, error) {
	title = strings.TrimSpace(title)

	ref, err := e.assets.Lookup(ctx, title, locale)
	if err != nil {
		return Fragment{}, err
	}
	if !ref.Found {
		logging.WithLookupContext(e.logger, "image", title, locale).Debug("wikitext.images.missing")
		if e.onMissing != nil {
			e.onMissing("image")
		}
		return Fragment{HTML: EscapeText(e.messages.ImageMissing(locale, title))}, nil
	}

	params, caption, err := e.params.Parse(ctx, raw, locale)
	if err != nil {
		return Fragment{}, err
	}

	return Fragment{HTML: e.render(ref.Handle, title, params, caption), Block: true}, nil
}

func (e *ImageExpander) render(asset interfaces.AssetHandle, title string, params ImageParams, caption string) string {
	var alt string
	switch {
	case params.Alt != nil && e.legacyAlt:
		alt = escapeLegacyAlt(*params.Alt)
	case params.Alt != nil:
		alt = EscapeAttr(*params.Alt)
	case caption != "":
		alt = EscapeAttr(caption)
	default:
		alt = EscapeAttr(title)
	}

	shown := caption
	if shown == "" && params.Alt != nil {
		shown = *params.Alt
	}
	if shown == "" {
		shown = title
	}

	classes := []string{"img"}
	if params.Frameless {
		classes = append(classes, "frameless")
	}
	if params.Align != nil {
		classes = append(classes, "align-"+*params.Align)
	}

	var b strings.Builder
	b.WriteString(`<div class="`)
	b.WriteString(strings.Join(classes, " "))
	b.WriteString(`">`)

	if params.Link != nil {
		b.WriteString(`<a href="`)
		b.WriteString(EscapeAttr(*params.Link))
		b.WriteString(`">`)
	}

	b.WriteString(`<img alt="`)
	b.WriteString(alt)
	b.WriteString(`" src="`)
	b.WriteString(EscapeAttr(asset.URL))
	b.WriteByte('"')
	if params.Frameless {
		b.WriteString(` class="frameless"`)
	}
	if params.VAlign != nil {
		b.WriteString(` style="vertical-align: `)
		b.WriteString(*params.VAlign)
		b.WriteString(`;"`)
	}
	if params.Width != nil {
		b.WriteString(` width="`)
		b.WriteString(*params.Width)
		b.WriteByte('"')
	}
	if params.Height != nil {
		b.WriteString(` height="`)
		b.WriteString(*params.Height)
		b.WriteByte('"')
	}
	b.WriteString(">")

	if params.Link != nil {
		b.WriteString("</a>")
	}

	b.WriteString(`<div class="caption">`)
	b.WriteString(EscapeText(shown))
	b.WriteString("</div></div>")
	return b.String()
}
