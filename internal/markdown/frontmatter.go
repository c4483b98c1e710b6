package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"
)

// FrontMatter is the metadata block of a fixture document.
type FrontMatter struct {
	Variant string `yaml:"variant"`
	Locale  string `yaml:"locale"`
	// Author names the imported translations.
	Author string `yaml:"author"`
	// Translations maps a locale to one text per segment ordinal. Empty
	// strings leave the segment untranslated.
	Translations map[string][]string `yaml:"translations"`
	// Points maps a locale to the vote count of each translation.
	Points map[string][]int `yaml:"points"`
}

// ParseFrontMatter splits source into metadata and the markdown body.
func ParseFrontMatter(source []byte) (FrontMatter, []byte, error) {
	var meta FrontMatter
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	meta.Variant = strings.TrimSpace(meta.Variant)
	meta.Locale = strings.TrimSpace(meta.Locale)
	meta.Author = strings.TrimSpace(meta.Author)
	return meta, body, nil
}
