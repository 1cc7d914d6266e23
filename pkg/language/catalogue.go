package language

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed data/languages.yml
var catalogueFS embed.FS

// catalogueEntry is the on-disk YAML shape of a single language record. It
// is translated into a Language after loading so the rest of the package
// never depends on the YAML field names.
type catalogueEntry struct {
	Type         string   `yaml:"type"`
	Aliases      []string `yaml:"aliases"`
	Extensions   []string `yaml:"extensions"`
	Filenames    []string `yaml:"filenames"`
	Interpreters []string `yaml:"interpreters"`
	ID           int      `yaml:"language_id"`
	Group        string   `yaml:"group"`
	Popular      bool     `yaml:"popular"`
	Color        string   `yaml:"color"`
	TMScope      string   `yaml:"tm_scope"`
	Wrap         bool     `yaml:"wrap"`
}

// LoadCatalogue parses raw language catalogue YAML (a mapping of language
// name to catalogueEntry, the format used by the embedded data file) into a
// slice of Language records in file order.
func LoadCatalogue(data []byte) ([]*Language, error) {
	var raw yaml.Node
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("language: parse catalogue: %w", err)
	}

	if len(raw.Content) == 0 {
		return nil, nil
	}

	root := raw.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("language: catalogue root must be a mapping")
	}

	out := make([]*Language, 0, len(root.Content)/2)

	for i := 0; i+1 < len(root.Content); i += 2 {
		name := root.Content[i].Value

		var entry catalogueEntry
		if err := root.Content[i+1].Decode(&entry); err != nil {
			return nil, fmt.Errorf("language: decode %q: %w", name, err)
		}

		out = append(out, &Language{
			Name:         name,
			Type:         ParseType(entry.Type),
			Aliases:      entry.Aliases,
			Extensions:   entry.Extensions,
			Filenames:    entry.Filenames,
			Interpreters: entry.Interpreters,
			ID:           entry.ID,
			GroupName:    entry.Group,
			Popular:      entry.Popular,
			Color:        entry.Color,
			TMScope:      entry.TMScope,
			Wrap:         entry.Wrap,
		})
	}

	return out, nil
}

func loadEmbedded() (*Registry, error) {
	data, err := catalogueFS.ReadFile("data/languages.yml")
	if err != nil {
		return nil, fmt.Errorf("language: read embedded catalogue: %w", err)
	}

	entries, err := LoadCatalogue(data)
	if err != nil {
		return nil, err
	}

	return NewRegistry(entries)
}
