package bayes

import (
	"fmt"
	"sort"
	"strings"
)

// StructureError reports a malformed or cyclic structure specification.
type StructureError struct {
	Reason string
}

func (e *StructureError) Error() string { return "invalid structure: " + e.Reason }

// InsufficientDataError reports a conditional probability entry with no
// supporting observations: the named variable was never seen together with the
// given joint parent assignment.
type InsufficientDataError struct {
	Variable string
	Parents  []string
	Values   []int
}

func (e *InsufficientDataError) Error() string {
	if len(e.Parents) == 0 {
		return fmt.Sprintf("no observations for %s", e.Variable)
	}
	parts := make([]string, len(e.Parents))
	for i, p := range e.Parents {
		parts[i] = fmt.Sprintf("%s=%d", p, e.Values[i])
	}
	return fmt.Sprintf("no observations for %s given %s", e.Variable, strings.Join(parts, ", "))
}

// ZeroProbabilityEvidenceError reports an evidence assignment with zero prior
// probability under the learned model; the posterior is undefined.
type ZeroProbabilityEvidenceError struct {
	Evidence map[string]int
}

func (e *ZeroProbabilityEvidenceError) Error() string {
	keys := make([]string, 0, len(e.Evidence))
	for k := range e.Evidence {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%d", k, e.Evidence[k])
	}
	return fmt.Sprintf("evidence {%s} has zero probability under the model", strings.Join(parts, ", "))
}

// DomainMismatchError reports a reference to an unknown variable or to a value
// outside a variable's learned domain.
type DomainMismatchError struct {
	Variable string
	Value    int
	Reason   string
}

func (e *DomainMismatchError) Error() string {
	return fmt.Sprintf("%s: %s", e.Variable, e.Reason)
}
