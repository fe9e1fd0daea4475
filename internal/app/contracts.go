package app

import "decisionnet/internal/decision"

type DecideService interface {
	DecideWithOptions(structureDOT string, evidence map[string]int, opts DecideOptions) (map[string]int, *ModelInfo, error)
	DecideWithTraceAndOptions(structureDOT string, evidence map[string]int, opts DecideOptions) (map[string]int, *decision.Trace, *ModelInfo, error)
}

// DecisionSpec configures one engine: decision variables, utility scores for
// a single utility parent, optional candidate constraint.
type DecisionSpec struct {
	DecisionVariables []string
	UtilityVariable   string
	UtilityScores     map[int]float64
	Constraint        string
}

// DecideOptions carries caller metadata and an optional per-request decision
// spec overriding the service default.
type DecideOptions struct {
	ModelID      string
	ModelVersion string
	Spec         *DecisionSpec
}

// ModelInfo describes the learned model a decision was computed against.
type ModelInfo struct {
	ID        string `json:"id,omitempty"`
	Version   string `json:"version,omitempty"`
	Hash      string `json:"hash"`
	Variables int    `json:"variables"`
	Records   int    `json:"records"`
}
