package taxonomy

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Topic is one category in the fixed exam-subject taxonomy.
type Topic string

// Entry pairs a topic with its keyword patterns. Keywords are lowercase words
// or short phrases, matched whole-word against article text. They are used
// verbatim as word-bounded patterns; taxonomy authors are responsible for
// escaping regex metacharacters.
type Entry struct {
	Name     Topic    `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// Taxonomy is the ordered, read-only topic table. Declaration order matters:
// the classifier reports topics in this order.
type Taxonomy struct {
	Topics []Entry `yaml:"topics"`
}

// Load reads a taxonomy from a YAML file. If the file does not exist the
// embedded fallback is used instead.
func Load(path string, fallback []byte) (*Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Parse(fallback)
		}
		return nil, fmt.Errorf("read taxonomy file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates taxonomy YAML.
func Parse(data []byte) (*Taxonomy, error) {
	var t Taxonomy
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse taxonomy: %w", err)
	}

	if len(t.Topics) == 0 {
		return nil, fmt.Errorf("taxonomy has no topics")
	}

	seen := make(map[Topic]bool, len(t.Topics))
	for _, e := range t.Topics {
		if e.Name == "" {
			return nil, fmt.Errorf("taxonomy topic with empty name")
		}
		if seen[e.Name] {
			return nil, fmt.Errorf("duplicate taxonomy topic %q", e.Name)
		}
		seen[e.Name] = true
		if len(e.Keywords) == 0 {
			return nil, fmt.Errorf("taxonomy topic %q has no keywords", e.Name)
		}
	}

	return &t, nil
}

// Names returns all topic names in declaration order.
func (t *Taxonomy) Names() []Topic {
	names := make([]Topic, len(t.Topics))
	for i, e := range t.Topics {
		names[i] = e.Name
	}
	return names
}

// Contains reports whether name is a topic in this taxonomy.
func (t *Taxonomy) Contains(name Topic) bool {
	for _, e := range t.Topics {
		if e.Name == name {
			return true
		}
	}
	return false
}
