package decision

import (
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"decisionnet/internal/bayes"
	"decisionnet/internal/decision/eval"
)

// Engine picks the decision assignment with maximal expected utility. The
// configuration (network, decision variables, utility map) is immutable after
// construction; Decide is a pure function of it and the evidence, so repeated
// calls with the same evidence return the same assignment.
type Engine struct {
	net         *bayes.Network
	vars        []string
	domains     [][]int
	util        UtilityMap
	constraint  *eval.Compiled
	parallelism int
	observer    QueryLatencyObserver
}

type options struct {
	constraint  string
	parallelism int
	observer    QueryLatencyObserver
}

type Option func(*options)

// WithConstraint restricts the candidate space to assignments satisfying a
// boolean expression over the decision variables, e.g. "Ad1 != Ad2".
func WithConstraint(cond string) Option {
	return func(o *options) { o.constraint = cond }
}

// WithParallelism evaluates candidates on n goroutines. The result is
// reduced left to right in enumeration order, so the first-seen-wins
// tie-break is unaffected.
func WithParallelism(n int) Option {
	return func(o *options) {
		if n > 1 {
			o.parallelism = n
		}
	}
}

func WithQueryLatencyObserver(observer QueryLatencyObserver) Option {
	return func(o *options) { o.observer = observer }
}

// New validates the configuration and builds an engine. Candidate domains are
// the decision variables' learned domains, in first-observed order.
func New(net *bayes.Network, decisionVars []string, util UtilityMap, opts ...Option) (*Engine, error) {
	if net == nil {
		return nil, fmt.Errorf("network is nil")
	}
	if len(decisionVars) == 0 {
		return nil, &NoDecisionVariablesError{}
	}

	domains := make([][]int, len(decisionVars))
	seen := make(map[string]bool, len(decisionVars))
	for i, name := range decisionVars {
		if seen[name] {
			return nil, fmt.Errorf("duplicate decision variable %q", name)
		}
		seen[name] = true
		dom, ok := net.Domain(name)
		if !ok {
			return nil, &bayes.DomainMismatchError{Variable: name, Reason: "unknown decision variable"}
		}
		domains[i] = dom
	}

	utilDom, ok := net.Domain(util.Variable)
	if !ok {
		return nil, &bayes.DomainMismatchError{Variable: util.Variable, Reason: "unknown utility variable"}
	}
	for v := range util.Scores {
		if !containsValue(utilDom, v) {
			return nil, &bayes.DomainMismatchError{
				Variable: util.Variable,
				Value:    v,
				Reason:   fmt.Sprintf("utility score for value %d outside learned domain", v),
			}
		}
	}

	o := options{parallelism: 1}
	for _, opt := range opts {
		opt(&o)
	}

	e := &Engine{
		net:         net,
		vars:        decisionVars,
		domains:     domains,
		util:        util,
		parallelism: o.parallelism,
		observer:    o.observer,
	}

	if o.constraint != "" {
		compiled, err := eval.Compile(o.constraint)
		if err != nil {
			return nil, fmt.Errorf("invalid constraint: %w", err)
		}
		// Dry-run against the first candidate so a broken constraint fails
		// here rather than inside every Decide call.
		if _, err := compiled.Eval(e.candidateVars(e.candidate(0))); err != nil {
			return nil, fmt.Errorf("invalid constraint: %w", err)
		}
		e.constraint = compiled
	}

	return e, nil
}

// Decide enumerates the Cartesian product of the decision domains and returns
// the assignment with the greatest expected utility of the utility variable,
// conditioned on the merged evidence. Candidate values override colliding
// evidence keys. Ties keep the first candidate in enumeration order.
func (e *Engine) Decide(evidence map[string]int) (map[string]int, error) {
	best, _, err := e.run(evidence, nil)
	return best, err
}

// DecideWithTrace is Decide plus a per-candidate trace. On error the trace
// holds the candidates evaluated so far.
func (e *Engine) DecideWithTrace(evidence map[string]int) (map[string]int, *Trace, error) {
	trace := newTrace(cloneAssignment(evidence))
	best, eu, err := e.run(evidence, trace)
	trace.Chosen = best
	trace.ExpectedUtility = eu
	return best, trace, err
}

type candidateResult struct {
	eu      float64
	skipped bool
	err     error
}

func (e *Engine) run(evidence map[string]int, trace *Trace) (map[string]int, float64, error) {
	total := e.numCandidates()
	results := make([]candidateResult, total)

	if e.parallelism > 1 {
		jobs := make(chan int)
		var wg sync.WaitGroup
		for w := 0; w < e.parallelism; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range jobs {
					results[i] = e.evaluate(i, evidence)
				}
			}()
		}
		for i := 0; i < total; i++ {
			jobs <- i
		}
		close(jobs)
		wg.Wait()
	} else {
		for i := 0; i < total; i++ {
			results[i] = e.evaluate(i, evidence)
		}
	}

	// Stable left-to-right reduction: strict > keeps the first maximum, and
	// errors surface in enumeration order regardless of completion order.
	bestIdx := -1
	bestEU := math.Inf(-1)
	for i := 0; i < total; i++ {
		r := results[i]
		if trace != nil {
			ct := CandidateTrace{
				Assignment:      e.assignment(e.candidate(i)),
				ExpectedUtility: r.eu,
				Skipped:         r.skipped,
			}
			if r.err != nil {
				ct.Error = r.err.Error()
			}
			trace.Candidates = append(trace.Candidates, ct)
		}
		if r.err != nil {
			return nil, 0, r.err
		}
		if r.skipped {
			continue
		}
		if r.eu > bestEU {
			bestEU = r.eu
			bestIdx = i
		}
	}

	if bestIdx < 0 {
		return nil, 0, fmt.Errorf("no candidate satisfies constraint %q", e.constraint.Cond())
	}
	return e.assignment(e.candidate(bestIdx)), bestEU, nil
}

func (e *Engine) evaluate(idx int, evidence map[string]int) candidateResult {
	vals := e.candidate(idx)

	if e.constraint != nil {
		ok, err := e.constraint.Eval(e.candidateVars(vals))
		if err != nil {
			return candidateResult{err: fmt.Errorf("constraint: %w", err)}
		}
		if !ok {
			return candidateResult{skipped: true}
		}
	}

	merged := make(map[string]int, len(evidence)+len(vals))
	for k, v := range evidence {
		merged[k] = v
	}
	// The hypothesized decision is pinned as evidence and overrides any
	// colliding observed value.
	for i, name := range e.vars {
		merged[name] = vals[i]
	}

	start := time.Now()
	dist, err := e.net.PosteriorOf(e.util.Variable, merged)
	if e.observer != nil {
		e.observer.ObserveQueryLatency(e.label(vals), time.Since(start))
	}
	if err != nil {
		return candidateResult{err: err}
	}

	eu := 0.0
	for i, v := range dist.Values {
		if score, ok := e.util.Scores[v]; ok {
			eu += dist.Probs[i] * score
		}
	}
	return candidateResult{eu: eu}
}

func (e *Engine) numCandidates() int {
	total := 1
	for _, dom := range e.domains {
		total *= len(dom)
	}
	return total
}

// candidate decodes an enumeration index into decision values, last declared
// variable varying fastest.
func (e *Engine) candidate(idx int) []int {
	vals := make([]int, len(e.domains))
	for i := len(e.domains) - 1; i >= 0; i-- {
		size := len(e.domains[i])
		vals[i] = e.domains[i][idx%size]
		idx /= size
	}
	return vals
}

func (e *Engine) assignment(vals []int) map[string]int {
	out := make(map[string]int, len(e.vars))
	for i, name := range e.vars {
		out[name] = vals[i]
	}
	return out
}

func (e *Engine) candidateVars(vals []int) map[string]any {
	out := make(map[string]any, len(e.vars))
	for i, name := range e.vars {
		out[name] = vals[i]
	}
	return out
}

func (e *Engine) label(vals []int) string {
	var b strings.Builder
	for i, name := range e.vars {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%s=%d", name, vals[i])
	}
	return b.String()
}

func containsValue(domain []int, v int) bool {
	for _, d := range domain {
		if d == v {
			return true
		}
	}
	return false
}

func cloneAssignment(m map[string]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
