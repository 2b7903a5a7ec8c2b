package brands

import (
	"os"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/shelfsync/pkg/errors"
)

// Rule maps a set of keywords to one canonical brand.
type Rule struct {
	Brand    string   `json:"brand" yaml:"brand"`
	Keywords []string `json:"keywords" yaml:"keywords"`
}

// Config is the serializable form of a brand taxonomy.
//
// Special rules are matched against product titles and win over aliases.
// Aliases are matched against the raw brand reported by the source.
// Exclusions list, per parent brand, the sub-brand keywords whose products
// must not be attributed to that parent.
type Config struct {
	Special    []Rule              `json:"special,omitempty" yaml:"special,omitempty"`
	Aliases    []Rule              `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	Exclusions map[string][]string `json:"exclusions,omitempty" yaml:"exclusions,omitempty"`
}

// DefaultConfig returns the built-in sneaker taxonomy.
func DefaultConfig() Config {
	return Config{
		Special: []Rule{
			{Brand: "YEEZY", Keywords: []string{"yeezy"}},
		},
		Aliases: []Rule{
			{Brand: "adidas", Keywords: []string{"adidas terrex", "adidas", "adidas neo", "adidas originals", "adidas yeezy"}},
			{Brand: "new balance", Keywords: []string{"nb", "new balance"}},
		},
		Exclusions: map[string][]string{
			"adidas":           {"yeezy"},
			"adidas originals": {"yeezy"},
			"adidas terrex":    {"yeezy"},
			"adidas neo":       {"yeezy"},
		},
	}
}

// LoadFile reads a brand taxonomy from a YAML file.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.WrapIO("read", path, err)
	}
	return Parse(data, path)
}

// Parse decodes a YAML brand taxonomy. The source name is used in errors only.
func Parse(data []byte, source string) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.WrapParse("yaml", source, err)
	}
	for i, r := range cfg.Special {
		if r.Brand == "" {
			return Config{}, &errors.ValidationError{
				Field:   "special",
				Value:   i,
				Message: "rule has no brand",
			}
		}
	}
	for i, r := range cfg.Aliases {
		if r.Brand == "" {
			return Config{}, &errors.ValidationError{
				Field:   "aliases",
				Value:   i,
				Message: "rule has no brand",
			}
		}
	}
	return cfg, nil
}
