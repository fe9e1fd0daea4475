package bayes

import "fmt"

// Distribution is a discrete probability distribution over a variable's
// domain. Values follows the domain's first-observed order and Probs is
// aligned with it.
type Distribution struct {
	Values []int
	Probs  []float64
}

// Prob returns the probability of a value, 0 if outside the domain.
func (d Distribution) Prob(v int) float64 {
	for i, val := range d.Values {
		if val == v {
			return d.Probs[i]
		}
	}
	return 0
}

// Posterior runs exact inference and returns the marginal posterior of every
// network variable given the evidence. Evidence may cover any subset of
// variables, including none.
func (n *Network) Posterior(evidence map[string]int) (map[string]Distribution, error) {
	ev, err := n.resolveEvidence(evidence)
	if err != nil {
		return nil, err
	}

	out := make(map[string]Distribution, n.ds.NumVariables())
	for col := 0; col < n.ds.NumVariables(); col++ {
		d, err := n.marginal(col, ev, evidence)
		if err != nil {
			return nil, err
		}
		out[n.ds.Name(col)] = d
	}
	return out, nil
}

// PosteriorOf returns the marginal posterior of a single variable given the
// evidence.
func (n *Network) PosteriorOf(name string, evidence map[string]int) (Distribution, error) {
	col, ok := n.ds.Column(name)
	if !ok {
		return Distribution{}, &DomainMismatchError{Variable: name, Reason: "unknown variable"}
	}
	ev, err := n.resolveEvidence(evidence)
	if err != nil {
		return Distribution{}, err
	}
	return n.marginal(col, ev, evidence)
}

// resolveEvidence maps evidence names and values to column indices and domain
// positions.
func (n *Network) resolveEvidence(evidence map[string]int) (map[int]int, error) {
	ev := make(map[int]int, len(evidence))
	for name, v := range evidence {
		col, ok := n.ds.Column(name)
		if !ok {
			return nil, &DomainMismatchError{Variable: name, Value: v, Reason: "unknown variable"}
		}
		pos, ok := n.ds.DomainPos(col, v)
		if !ok {
			return nil, &DomainMismatchError{Variable: name, Value: v, Reason: fmt.Sprintf("value %d outside learned domain", v)}
		}
		ev[col] = pos
	}
	return ev, nil
}

// marginal computes the posterior of one variable by sum-product variable
// elimination: CPT factors are restricted by the evidence, then every hidden
// variable except the query is eliminated in schema order.
func (n *Network) marginal(query int, ev map[int]int, evidence map[string]int) (Distribution, error) {
	factors := make([]factor, 0, len(n.cpts))
	for col := range n.cpts {
		factors = append(factors, n.factorFor(col).restrict(ev))
	}

	for col := 0; col < n.ds.NumVariables(); col++ {
		if col == query {
			continue
		}
		if _, observed := ev[col]; observed {
			continue
		}
		factors = eliminate(factors, col)
	}

	result := scalarFactor(1)
	for _, f := range factors {
		result = multiply(result, f)
	}

	total := 0.0
	for _, v := range result.vals {
		total += v
	}
	if total == 0 {
		return Distribution{}, &ZeroProbabilityEvidenceError{Evidence: cloneEvidence(evidence)}
	}

	domain := n.ds.Domain(query)
	probs := make([]float64, len(domain))
	if pos, observed := ev[query]; observed {
		// The query variable is fixed by the evidence: point mass.
		probs[pos] = 1
	} else {
		// result is a factor over exactly the query variable.
		for i, v := range result.vals {
			probs[i] = v / total
		}
	}

	values := make([]int, len(domain))
	copy(values, domain)
	return Distribution{Values: values, Probs: probs}, nil
}

// factorFor builds the factor P(col | parents) over (parents..., col), laid
// out with the last variable varying fastest. This matches the CPT row layout,
// so the table can be copied row by row.
func (n *Network) factorFor(col int) factor {
	c := &n.cpts[col]
	vars := make([]int, 0, len(c.parents)+1)
	card := make([]int, 0, len(c.parents)+1)
	for _, p := range c.parents {
		vars = append(vars, p)
		card = append(card, n.ds.DomainSize(p))
	}
	vars = append(vars, col)
	card = append(card, n.ds.DomainSize(col))

	childCard := n.ds.DomainSize(col)
	vals := make([]float64, len(c.rows)*childCard)
	for row, dist := range c.rows {
		copy(vals[row*childCard:], dist)
	}
	return factor{vars: vars, card: card, vals: vals}
}

func cloneEvidence(evidence map[string]int) map[string]int {
	out := make(map[string]int, len(evidence))
	for k, v := range evidence {
		out[k] = v
	}
	return out
}
