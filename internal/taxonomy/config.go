package taxonomy

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// RequiredElement names one tagged element a filing must carry, paired with
// the human description used in diagnostics.
type RequiredElement struct {
	Name        string `yaml:"name" validate:"required"`
	Description string `yaml:"description" validate:"required"`
}

// Invariants lists the tag names satisfying the regulatory checks that hold
// independently of the generic required-element tables. Each check passes if
// any one of its candidate tag names is present.
type Invariants struct {
	Turnover            []string `yaml:"turnover" validate:"min=1"`
	PrincipalActivities []string `yaml:"principalActivities" validate:"min=1"`
	DirectorName        []string `yaml:"directorName" validate:"min=1"`
	AverageEmployees    []string `yaml:"averageEmployees" validate:"min=1"`
}

// Config is the data-driven rule configuration for a validation run:
// required namespaces, the schema-reference host allowlist, and the
// completeness tables keyed by entity size.
type Config struct {
	// TaxonomyPrefix identifies the taxonomy publisher; tagged-element
	// statistics count names that begin with it.
	TaxonomyPrefix string `yaml:"taxonomyPrefix" validate:"required"`

	// Namespaces maps each required prefix to the exact URI the document
	// root must declare for it.
	Namespaces map[string]string `yaml:"namespaces" validate:"required,min=1,dive,required"`

	// SchemaHosts lists host substrings; the schema reference target must
	// contain at least one of them.
	SchemaHosts []string `yaml:"schemaHosts" validate:"required,min=1,dive,required"`

	// Required maps "all" plus each entity size to its required elements.
	Required map[string][]RequiredElement `yaml:"required" validate:"required"`

	Invariants Invariants `yaml:"invariants"`

	// MajorAccounts lists taxonomy-name substrings whose facts warrant a
	// suspicious-zero warning when their value normalizes to exactly zero.
	MajorAccounts []string `yaml:"majorAccounts" validate:"min=1,dive,required"`
}

var check = validator.New()

// Default returns the embedded rule tables, which reproduce the reference
// filing-authority behavior.
func Default() *Config {
	cfg, err := parse(defaultsYAML)
	if err != nil {
		// The embedded defaults are part of the build; failing to parse
		// them is a programming error, not a runtime condition.
		panic(fmt.Sprintf("taxonomy: embedded defaults invalid: %v", err))
	}
	return cfg
}

// Load reads an external rule file and overlays it on the defaults, so a
// config file only needs to state the tables it changes.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rule config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse rule config %s: %w", path, err)
	}
	if err := check.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid rule config %s: %w", path, err)
	}
	return cfg, nil
}

func parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if err := check.Struct(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// RequiredFor returns the effective required-element set for one run: the
// "all" baseline unioned with the size-specific table, de-duplicated by name
// with first occurrence winning.
func (c *Config) RequiredFor(size EntitySize) []RequiredElement {
	seen := map[string]struct{}{}
	var out []RequiredElement
	for _, list := range [][]RequiredElement{c.Required["all"], c.Required[string(size)]} {
		for _, el := range list {
			if _, ok := seen[el.Name]; ok {
				continue
			}
			seen[el.Name] = struct{}{}
			out = append(out, el)
		}
	}
	return out
}
