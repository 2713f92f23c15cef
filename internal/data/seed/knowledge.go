// Package seed loads the bundled knowledge base into an empty database.
package seed

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed knowledge.yaml
var knowledgeYAML []byte

type Knowledge struct {
	Motorcycles []MotorcycleSpec `yaml:"motorcycles"`
	Symptoms    []EntrySpec      `yaml:"symptoms"`
	Damages     []DamageSpec     `yaml:"damages"`
	Rules       []RuleSpec       `yaml:"rules"`
	Users       []UserSpec       `yaml:"users"`
}

type MotorcycleSpec struct {
	Brand string `yaml:"brand"`
	Model string `yaml:"model"`
}

type EntrySpec struct {
	Code        string `yaml:"code"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

type DamageSpec struct {
	EntrySpec `yaml:",inline"`
	Causes    []string `yaml:"causes"`
	Solutions []string `yaml:"solutions"`
}

// RuleSpec refers to damages and symptoms by code.
type RuleSpec struct {
	Damage   string   `yaml:"damage"`
	Symptoms []string `yaml:"symptoms"`
}

type UserSpec struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Role     string `yaml:"role"`
}

// Bundled returns the embedded knowledge base.
func Bundled() (*Knowledge, error) {
	return Parse(knowledgeYAML)
}

// Parse decodes and validates a knowledge base document.
func Parse(raw []byte) (*Knowledge, error) {
	var k Knowledge
	if err := yaml.Unmarshal(raw, &k); err != nil {
		return nil, fmt.Errorf("decode knowledge base: %w", err)
	}
	if err := k.Validate(); err != nil {
		return nil, err
	}
	return &k, nil
}

// Validate checks that codes are unique and every rule refers to known,
// non-empty entries.
func (k *Knowledge) Validate() error {
	symptoms := map[string]bool{}
	for _, s := range k.Symptoms {
		code := strings.TrimSpace(s.Code)
		if code == "" || strings.TrimSpace(s.Name) == "" {
			return fmt.Errorf("symptom %q: code and name are required", s.Code)
		}
		if symptoms[code] {
			return fmt.Errorf("duplicate symptom code %q", code)
		}
		symptoms[code] = true
	}
	damages := map[string]bool{}
	for _, d := range k.Damages {
		code := strings.TrimSpace(d.Code)
		if code == "" || strings.TrimSpace(d.Name) == "" {
			return fmt.Errorf("damage %q: code and name are required", d.Code)
		}
		if damages[code] {
			return fmt.Errorf("duplicate damage code %q", code)
		}
		damages[code] = true
	}
	for i, r := range k.Rules {
		if !damages[r.Damage] {
			return fmt.Errorf("rule %d: unknown damage %q", i+1, r.Damage)
		}
		if len(r.Symptoms) == 0 {
			return fmt.Errorf("rule %d: at least one symptom is required", i+1)
		}
		for _, s := range r.Symptoms {
			if !symptoms[s] {
				return fmt.Errorf("rule %d: unknown symptom %q", i+1, s)
			}
		}
	}
	return nil
}
