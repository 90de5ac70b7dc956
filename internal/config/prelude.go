package config

import (
	_ "embed"

	"gopkg.in/yaml.v3"
)

//go:embed prelude.yaml
var preludeYAML []byte

// OperatorSpec is one built-in operator's name and surface type,
// written in a small "A -> B -> C" grammar the elaborator parses
// directly (internal/elaborate/builtins.go).
type OperatorSpec struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// ConstructorSpec is one built-in nullary data constructor.
type ConstructorSpec struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// Prelude is the parsed built-in manifest.
type Prelude struct {
	Operators           []OperatorSpec    `yaml:"operators"`
	NullaryConstructors []ConstructorSpec `yaml:"nullaryConstructors"`
}

// LoadPrelude parses the embedded built-in manifest. It panics on
// failure since a malformed prelude.yaml is a build-time defect, never
// a runtime condition.
func LoadPrelude() Prelude {
	var p Prelude
	if err := yaml.Unmarshal(preludeYAML, &p); err != nil {
		panic("config: malformed prelude.yaml: " + err.Error())
	}
	return p
}
