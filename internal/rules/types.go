package rules

import (
	"encoding/json"
	"fmt"

	"go.yaml.in/yaml/v3"
)

// Kind is the kind of filesystem entry a rule links.
type Kind string

const (
	KindFile      Kind = "file"
	KindDirectory Kind = "directory"
)

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	return k == KindFile || k == KindDirectory
}

// Config is the validated contents of an agent-sync configuration file.
type Config struct {
	Rules []Rule `json:"rules" yaml:"rules"`

	// Requires is an optional semver constraint on the agent-sync version.
	Requires string `json:"requires,omitempty" yaml:"requires,omitempty"`
}

// Rule maps a source path to one or more target paths. All paths are
// relative to a base directory chosen at sync time.
type Rule struct {
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Source      string  `json:"source" yaml:"source"`
	Target      Targets `json:"target" yaml:"target"`
	Recursive   bool    `json:"recursive" yaml:"recursive"`
	Type        Kind    `json:"type" yaml:"type"`
	Enabled     bool    `json:"enabled" yaml:"enabled"`
}

// IsRecursiveFile reports whether the rule is applied in every directory
// containing its source file. Recursion is ignored for directory rules.
func (r Rule) IsRecursiveFile() bool {
	return r.Recursive && r.Type == KindFile
}

// Targets holds one or more target paths. In config files it may be written
// as a single string or as a list of strings.
type Targets []string

// UnmarshalJSON accepts either a string or an array of strings.
func (t *Targets) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*t = Targets{single}
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("target must be a string or a list of strings: %w", err)
	}
	*t = Targets(many)
	return nil
}

// UnmarshalYAML accepts either a scalar or a sequence of scalars.
func (t *Targets) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*t = Targets{node.Value}
		return nil
	case yaml.SequenceNode:
		var many []string
		if err := node.Decode(&many); err != nil {
			return fmt.Errorf("decoding target list: %w", err)
		}
		*t = Targets(many)
		return nil
	default:
		return fmt.Errorf("line %d: target must be a string or a list of strings", node.Line)
	}
}

// MarshalYAML writes a single target as a plain scalar.
func (t Targets) MarshalYAML() (interface{}, error) {
	if len(t) == 1 {
		return t[0], nil
	}
	return []string(t), nil
}
