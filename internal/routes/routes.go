// Package routes builds the URLs that rendered links point at.
package routes

import (
	"errors"
	"net/url"
	"strings"
)

// ErrSlugRequired is returned when a document URL is requested without a slug.
var ErrSlugRequired = errors.New("routes: document slug is required")

// Builder produces URLs for existing and missing documents.
type Builder interface {
	// DocumentURL addresses a stored document in the locale it was found in.
	DocumentURL(locale, slug string) (string, error)
	// NewDocumentURL addresses the page-creation flow for an unknown title.
	NewDocumentURL(title string) (string, error)
}

const (
	DefaultPrefix  = "kb"
	DefaultNewPath = "new"
)

// PathRoutes is the built-in layout: /<locale>/<prefix>/<slug> and
// /<prefix>/<new>?title=<title>.
type PathRoutes struct {
	Prefix  string
	NewPath string
}

var _ Builder = PathRoutes{}

// NewPathRoutes returns PathRoutes with blank segments defaulted.
func NewPathRoutes(prefix, newPath string) PathRoutes {
	prefix = strings.Trim(strings.TrimSpace(prefix), "/")
	if prefix == "" {
		prefix = DefaultPrefix
	}
	newPath = strings.Trim(strings.TrimSpace(newPath), "/")
	if newPath == "" {
		newPath = DefaultNewPath
	}
	return PathRoutes{Prefix: prefix, NewPath: newPath}
}

func (r PathRoutes) DocumentURL(locale, slug string) (string, error) {
	if strings.TrimSpace(slug) == "" {
		return "", ErrSlugRequired
	}
	var b strings.Builder
	if locale != "" {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(locale))
	}
	b.WriteByte('/')
	b.WriteString(r.prefix())
	b.WriteByte('/')
	b.WriteString(url.PathEscape(slug))
	return b.String(), nil
}

func (r PathRoutes) NewDocumentURL(title string) (string, error) {
	newPath := r.NewPath
	if newPath == "" {
		newPath = DefaultNewPath
	}
	return "/" + r.prefix() + "/" + newPath + "?title=" + url.QueryEscape(title), nil
}

func (r PathRoutes) prefix() string {
	if r.Prefix == "" {
		return DefaultPrefix
	}
	return r.Prefix
}
