package i18n

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Fixture is a serialised catalog: its config plus locale -> key -> message.
type Fixture struct {
	Config       Config                       `yaml:"config"`
	Translations map[string]map[string]string `yaml:"translations"`
}

//go:embed defaults/messages.yaml
var defaultMessages embed.FS

// DefaultFixture returns the built-in renderer messages.
func DefaultFixture() (*Fixture, error) {
	data, err := defaultMessages.ReadFile("defaults/messages.yaml")
	if err != nil {
		return nil, fmt.Errorf("i18n: read embedded messages: %w", err)
	}
	return decodeFixture(strings.NewReader(string(data)))
}

// DefaultCatalog builds a catalog from DefaultFixture.
func DefaultCatalog() (*Catalog, error) {
	fx, err := DefaultFixture()
	if err != nil {
		return nil, err
	}
	return NewCatalog(fx.Config, fx.Translations)
}

// Loader reads translation fixtures from disk. JSON is a YAML subset, so
// both .json and .yaml files decode.
type Loader struct {
	path string
}

// NewLoader constructs a loader that reads the provided file path.
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load parses the configured fixture file.
func (l *Loader) Load(ctx context.Context) (*Fixture, error) {
	if l == nil || l.path == "" {
		return nil, errors.New("i18n: loader path cannot be empty")
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	file, err := os.Open(filepath.Clean(l.path))
	if err != nil {
		return nil, fmt.Errorf("i18n: open fixture %q: %w", l.path, err)
	}
	defer file.Close()

	return decodeFixture(file)
}

// LoadCatalog loads the fixture and indexes it.
func (l *Loader) LoadCatalog(ctx context.Context) (*Catalog, error) {
	fx, err := l.Load(ctx)
	if err != nil {
		return nil, err
	}
	return NewCatalog(fx.Config, fx.Translations)
}

func decodeFixture(r io.Reader) (*Fixture, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var fx Fixture
	if err := decoder.Decode(&fx); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("i18n: decode fixture: %w", err)
	}

	if fx.Translations == nil {
		fx.Translations = map[string]map[string]string{}
	}

	return &fx, nil
}
