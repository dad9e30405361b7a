package wikitext

import (
	"context"
	"errors"
	"time"

	"github.com/goliatone/go-wikitext/pkg/interfaces"
)

const testDefaultLocale = "en-US"

type fixture struct {
	docs   map[string]interfaces.DocumentHandle
	assets map[string]interfaces.AssetHandle
	fail   error
}

func newFixture() *fixture {
	f := &fixture{
		docs:   map[string]interfaces.DocumentHandle{},
		assets: map[string]interfaces.AssetHandle{},
	}
	f.addDoc("Installing Firefox", "en-US", "installing-firefox")
	f.addAsset("test.jpg", "en-US", "/media/uploads/test.jpg")
	return f
}

func (f *fixture) addDoc(title, locale, slug string) {
	f.docs[locale+"|"+title] = interfaces.DocumentHandle{Title: title, Slug: slug, Locale: locale}
}

func (f *fixture) addAsset(title, locale, url string) {
	f.assets[locale+"|"+title] = interfaces.AssetHandle{Title: title, URL: url, Locale: locale}
}

func (f *fixture) documentFinder() interfaces.DocumentFinder {
	return interfaces.FinderFunc[interfaces.DocumentHandle](func(_ context.Context, title, locale string) (interfaces.DocumentHandle, bool, error) {
		if f.fail != nil {
			return interfaces.DocumentHandle{}, false, f.fail
		}
		handle, ok := f.docs[locale+"|"+title]
		return handle, ok, nil
	})
}

func (f *fixture) assetFinder() interfaces.AssetFinder {
	return interfaces.FinderFunc[interfaces.AssetHandle](func(_ context.Context, title, locale string) (interfaces.AssetHandle, bool, error) {
		if f.fail != nil {
			return interfaces.AssetHandle{}, false, f.fail
		}
		handle, ok := f.assets[locale+"|"+title]
		return handle, ok, nil
	})
}

func (f *fixture) engine(opts ...Option) *Engine {
	return NewEngine(testDefaultLocale, f.documentFinder(), f.assetFinder(), opts...)
}

var errStorageDown = errors.New("storage down")

type recordingMetrics struct {
	renders    int
	locales    []string
	directives map[string]int
	missing    map[string]int
	errors     map[string]int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{
		directives: map[string]int{},
		missing:    map[string]int{},
		errors:     map[string]int{},
	}
}

func (m *recordingMetrics) ObserveRender(_ time.Duration, locale string) {
	m.renders++
	m.locales = append(m.locales, locale)
}
func (m *recordingMetrics) IncrementDirective(kind string) { m.directives[kind]++ }
func (m *recordingMetrics) IncrementMissing(kind string)   { m.missing[kind]++ }
func (m *recordingMetrics) IncrementError(kind string)     { m.errors[kind]++ }

type mapTranslator map[string]string

func (t mapTranslator) Translate(locale, key string, args ...any) (string, error) {
	format, ok := t[locale+"|"+key]
	if !ok {
		return "", errors.New("missing translation")
	}
	if len(args) > 0 {
		return format + " " + args[0].(string), nil
	}
	return format, nil
}
