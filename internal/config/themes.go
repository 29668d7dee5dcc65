package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mcoot/vocabgrid/internal/model"
)

type themeFile struct {
	Themes []themeEntry `yaml:"themes" validate:"dive"`
}

type themeEntry struct {
	ID    string   `yaml:"id" validate:"required"`
	Name  string   `yaml:"name"`
	Words []string `yaml:"words" validate:"required,min=1,dive,required"`
}

// ParseThemes decodes a YAML theme list. Theme words are vocabulary ids.
func ParseThemes(data []byte) ([]model.Theme, error) {
	var file themeFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: themes: %w", model.ErrInvalidConfig, err)
	}
	if err := validate.Struct(file); err != nil {
		return nil, fmt.Errorf("%w: themes: %w", model.ErrInvalidConfig, err)
	}

	seen := make(map[string]struct{}, len(file.Themes))
	themes := make([]model.Theme, 0, len(file.Themes))
	for _, entry := range file.Themes {
		if _, ok := seen[entry.ID]; ok {
			return nil, fmt.Errorf("%w: duplicate theme id %q", model.ErrInvalidConfig, entry.ID)
		}
		seen[entry.ID] = struct{}{}

		name := entry.Name
		if name == "" {
			name = entry.ID
		}
		ids := make([]model.VocabID, len(entry.Words))
		for i, w := range entry.Words {
			ids[i] = model.VocabID(w)
		}
		themes = append(themes, model.Theme{ID: entry.ID, Name: name, MemberIDs: ids})
	}
	return themes, nil
}

// LoadThemes reads a theme file. An empty path means no themes.
func LoadThemes(path string) ([]model.Theme, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseThemes(data)
}

// FindTheme returns the theme with the given id
func FindTheme(themes []model.Theme, id string) (*model.Theme, error) {
	for i := range themes {
		if themes[i].ID == id {
			return &themes[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", model.ErrThemeNotFound, id)
}
