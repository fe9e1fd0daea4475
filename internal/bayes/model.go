package bayes

import (
	"fmt"

	"decisionnet/internal/dataset"
)

// Network is a discrete Bayesian network over a fixed DAG structure, with
// conditional probability tables learned from data by maximum-likelihood
// counting. No smoothing: a variable's domain is exactly the set of values
// observed for it, and every joint parent assignment must have at least one
// supporting record.
//
// A Network is immutable after construction and safe for concurrent queries.
type Network struct {
	ds        *dataset.Dataset
	structure Structure
	cpts      []cpt
}

// cpt stores P(variable | parents) as one distribution row per joint parent
// assignment. The row index is the mixed-radix encoding of the parents'
// domain positions, last declared parent varying fastest.
type cpt struct {
	parents []int
	strides []int
	rows    [][]float64
}

// New learns a Network from the dataset under the given structure.
func New(ds *dataset.Dataset, s Structure) (*Network, error) {
	if ds == nil {
		return nil, fmt.Errorf("dataset is nil")
	}
	if err := s.validate(ds.NumVariables()); err != nil {
		return nil, err
	}

	numVars := ds.NumVariables()
	cpts := make([]cpt, numVars)
	for i := 0; i < numVars; i++ {
		parents := s[i]
		strides := make([]int, len(parents))
		numRows := 1
		for j := len(parents) - 1; j >= 0; j-- {
			strides[j] = numRows
			numRows *= ds.DomainSize(parents[j])
		}
		rows := make([][]float64, numRows)
		for r := range rows {
			rows[r] = make([]float64, ds.DomainSize(i))
		}
		cpts[i] = cpt{parents: parents, strides: strides, rows: rows}
	}

	for r := 0; r < ds.NumRecords(); r++ {
		for i := 0; i < numVars; i++ {
			c := &cpts[i]
			row := 0
			for j, p := range c.parents {
				pos, _ := ds.DomainPos(p, ds.Value(r, p))
				row += pos * c.strides[j]
			}
			pos, _ := ds.DomainPos(i, ds.Value(r, i))
			c.rows[row][pos]++
		}
	}

	for i := range cpts {
		c := &cpts[i]
		for row, counts := range c.rows {
			total := 0.0
			for _, n := range counts {
				total += n
			}
			if total == 0 {
				names, values := decodeParentAssignment(ds, c, row)
				return nil, &InsufficientDataError{Variable: ds.Name(i), Parents: names, Values: values}
			}
			for k := range counts {
				counts[k] /= total
			}
		}
	}

	return &Network{ds: ds, structure: s, cpts: cpts}, nil
}

func decodeParentAssignment(ds *dataset.Dataset, c *cpt, row int) ([]string, []int) {
	names := make([]string, len(c.parents))
	values := make([]int, len(c.parents))
	for j, p := range c.parents {
		pos := row / c.strides[j]
		row %= c.strides[j]
		names[j] = ds.Name(p)
		values[j] = ds.Domain(p)[pos]
	}
	return names, values
}

// Dataset returns the dataset the network was learned from.
func (n *Network) Dataset() *dataset.Dataset { return n.ds }

// Variables returns the schema in column order.
func (n *Network) Variables() []string { return n.ds.Names() }

// Domain returns a variable's learned domain in first-observed order.
func (n *Network) Domain(name string) ([]int, bool) {
	col, ok := n.ds.Column(name)
	if !ok {
		return nil, false
	}
	return n.ds.Domain(col), true
}

// HasVariable reports whether the network knows the named variable.
func (n *Network) HasVariable(name string) bool {
	_, ok := n.ds.Column(name)
	return ok
}
