package macro

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/xiv-cac/cac/internal/registry"
)

const (
	DefaultTransition = "/e Macro #{index} ends! <se.2>"
	DefaultEnding     = "/e Craft Done! <se.1>"
)

// Settings controls how Build renders macros.
type Settings struct {
	Language   registry.Language
	Macrolock  bool
	Transition string
	Ending     string
}

// settingsFile is the YAML form of Settings. Language accepts any tag
// registry.ParseLanguage understands.
type settingsFile struct {
	Language   string `yaml:"language"`
	Macrolock  bool   `yaml:"macrolock"`
	Transition string `yaml:"transition"`
	Ending     string `yaml:"ending"`
}

// DefaultSettings returns English macros without /macrolock and the stock
// echo lines.
func DefaultSettings() Settings {
	return Settings{
		Language:   registry.English,
		Transition: DefaultTransition,
		Ending:     DefaultEnding,
	}
}

// LoadSettings reads a YAML settings file. Fields left out keep their
// defaults.
func LoadSettings(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to read macro settings: %w", err)
	}
	return ParseSettings(data)
}

// ParseSettings decodes YAML settings, rejecting unknown fields.
func ParseSettings(data []byte) (Settings, error) {
	def := DefaultSettings()
	doc := settingsFile{
		Language:   string(def.Language),
		Transition: def.Transition,
		Ending:     def.Ending,
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return Settings{}, fmt.Errorf("failed to parse YAML: %w", err)
	}

	lang, err := registry.ParseLanguage(doc.Language)
	if err != nil {
		return Settings{}, fmt.Errorf("invalid macro settings: %w", err)
	}
	if doc.Ending == "" {
		return Settings{}, fmt.Errorf("invalid macro settings: ending is required")
	}

	return Settings{
		Language:   lang,
		Macrolock:  doc.Macrolock,
		Transition: doc.Transition,
		Ending:     doc.Ending,
	}, nil
}
