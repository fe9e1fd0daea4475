package decidedto

import (
	"decisionnet/internal/app"
	"decisionnet/internal/decision"
)

type DecideRequest struct {
	StructureDOT      string          `json:"structure_dot"`
	Evidence          map[string]int  `json:"evidence"`
	DecisionVariables []string        `json:"decision_variables,omitempty"`
	UtilityVariable   string          `json:"utility_variable,omitempty"`
	UtilityScores     map[int]float64 `json:"utility_scores,omitempty"`
	Constraint        string          `json:"constraint,omitempty"`
	ModelID           string          `json:"model_id,omitempty"`
	ModelVersion      string          `json:"model_version,omitempty"`
	Debug             bool            `json:"debug,omitempty"`
}

// Options builds the service options. A request carrying its own decision
// variables or utility overrides the service default spec.
func (r DecideRequest) Options() app.DecideOptions {
	opts := app.DecideOptions{ModelID: r.ModelID, ModelVersion: r.ModelVersion}
	if len(r.DecisionVariables) > 0 || r.UtilityVariable != "" {
		opts.Spec = &app.DecisionSpec{
			DecisionVariables: r.DecisionVariables,
			UtilityVariable:   r.UtilityVariable,
			UtilityScores:     r.UtilityScores,
			Constraint:        r.Constraint,
		}
	}
	return opts
}

type DecideResponse struct {
	Decision map[string]int  `json:"decision"`
	Trace    *decision.Trace `json:"trace,omitempty"`
	Model    *app.ModelInfo  `json:"model,omitempty"`
}
