// Package engineconfig loads the engine specification document: which
// variables the agent controls, how outcomes are scored, and an optional
// constraint over candidate assignments.
package engineconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Spec struct {
	DecisionVariables []string `yaml:"decision_variables"`
	Utility           Utility  `yaml:"utility"`
	Constraint        string   `yaml:"constraint"`
}

type Utility struct {
	Variable string          `yaml:"variable"`
	Scores   map[int]float64 `yaml:"scores"`
}

func Load(path string) (*Spec, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read engine spec: %w", err)
	}
	return Parse(raw)
}

func Parse(raw []byte) (*Spec, error) {
	var s Spec
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("parse engine spec: %w", err)
	}
	if len(s.DecisionVariables) == 0 {
		return nil, fmt.Errorf("engine spec: decision_variables is required")
	}
	if s.Utility.Variable == "" {
		return nil, fmt.Errorf("engine spec: utility.variable is required")
	}
	if len(s.Utility.Scores) == 0 {
		return nil, fmt.Errorf("engine spec: utility.scores is required")
	}
	return &s, nil
}
