package routes

import (
	"fmt"
	"strings"

	urlkit "github.com/goliatone/go-urlkit"
)

// URLKitOptions configures the go-urlkit backed builder.
type URLKitOptions struct {
	Manager       *urlkit.RouteManager
	Group         string
	DocumentRoute string
	NewRoute      string
	LocaleParam   string
	SlugParam     string
	TitleQuery    string
}

// URLKitRoutes resolves document URLs through a host-owned route table.
type URLKitRoutes struct {
	manager       *urlkit.RouteManager
	group         string
	documentRoute string
	newRoute      string
	localeParam   string
	slugParam     string
	titleQuery    string
}

var _ Builder = (*URLKitRoutes)(nil)

// NewURLKitRoutes applies defaults: routes "document" and "new", params
// "locale" and "slug", query "title".
func NewURLKitRoutes(opts URLKitOptions) *URLKitRoutes {
	return &URLKitRoutes{
		manager:       opts.Manager,
		group:         strings.TrimSpace(opts.Group),
		documentRoute: orDefault(opts.DocumentRoute, "document"),
		newRoute:      orDefault(opts.NewRoute, "new"),
		localeParam:   orDefault(opts.LocaleParam, "locale"),
		slugParam:     orDefault(opts.SlugParam, "slug"),
		titleQuery:    orDefault(opts.TitleQuery, "title"),
	}
}

func (r *URLKitRoutes) DocumentURL(locale, slug string) (string, error) {
	if strings.TrimSpace(slug) == "" {
		return "", ErrSlugRequired
	}
	builder, err := r.builder(r.documentRoute)
	if err != nil {
		return "", err
	}
	builder.WithParam(r.localeParam, locale)
	builder.WithParam(r.slugParam, slug)
	return builder.Build()
}

func (r *URLKitRoutes) NewDocumentURL(title string) (string, error) {
	builder, err := r.builder(r.newRoute)
	if err != nil {
		return "", err
	}
	builder.WithQuery(r.titleQuery, title)
	return builder.Build()
}

// builder guards against go-urlkit panicking on unknown groups or routes.
func (r *URLKitRoutes) builder(route string) (builder *urlkit.Builder, err error) {
	if r == nil || r.manager == nil {
		return nil, fmt.Errorf("routes: route manager not configured")
	}
	defer func() {
		if rec := recover(); rec != nil {
			builder = nil
			err = fmt.Errorf("routes: urlkit route %q in group %q: %v", route, r.group, rec)
		}
	}()
	group := r.manager.Group(r.group)
	if group == nil {
		return nil, fmt.Errorf("routes: route group %q not found", r.group)
	}
	return group.Builder(route), nil
}

func orDefault(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}
