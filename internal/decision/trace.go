package decision

import "github.com/google/uuid"

// Trace records every candidate evaluated during one Decide call, in
// enumeration order.
type Trace struct {
	ID              string           `json:"id"`
	Evidence        map[string]int   `json:"evidence"`
	Candidates      []CandidateTrace `json:"candidates"`
	Chosen          map[string]int   `json:"chosen,omitempty"`
	ExpectedUtility float64          `json:"expected_utility"`
}

type CandidateTrace struct {
	Assignment      map[string]int `json:"assignment"`
	ExpectedUtility float64        `json:"expected_utility"`
	Skipped         bool           `json:"skipped,omitempty"`
	Error           string         `json:"error,omitempty"`
}

func newTrace(evidence map[string]int) *Trace {
	return &Trace{ID: uuid.NewString(), Evidence: evidence}
}
