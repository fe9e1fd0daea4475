package decision

// NoDecisionVariablesError reports an engine configured with no decision
// variables: there is nothing to choose between.
type NoDecisionVariablesError struct{}

func (e *NoDecisionVariablesError) Error() string {
	return "no decision variables configured"
}
