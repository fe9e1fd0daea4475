package bayes

import "fmt"

// Structure lists, for each variable in dataset column order, the column
// indices of its parents. Parent order is significant: it fixes the layout of
// the learned conditional probability tables.
type Structure [][]int

func (s Structure) validate(numVars int) error {
	if len(s) != numVars {
		return &StructureError{Reason: fmt.Sprintf("structure has %d entries, dataset has %d variables", len(s), numVars)}
	}

	for child, parents := range s {
		seen := make(map[int]bool, len(parents))
		for _, p := range parents {
			if p < 0 || p >= numVars {
				return &StructureError{Reason: fmt.Sprintf("parent index %d of variable %d out of range", p, child)}
			}
			if p == child {
				return &StructureError{Reason: fmt.Sprintf("variable %d is its own parent", child)}
			}
			if seen[p] {
				return &StructureError{Reason: fmt.Sprintf("duplicate parent %d of variable %d", p, child)}
			}
			seen[p] = true
		}
	}

	// Kahn's algorithm over parent -> child edges.
	indeg := make([]int, numVars)
	children := make([][]int, numVars)
	for child, parents := range s {
		indeg[child] = len(parents)
		for _, p := range parents {
			children[p] = append(children[p], child)
		}
	}
	queue := make([]int, 0, numVars)
	for v, d := range indeg {
		if d == 0 {
			queue = append(queue, v)
		}
	}
	visited := 0
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		visited++
		for _, c := range children[v] {
			indeg[c]--
			if indeg[c] == 0 {
				queue = append(queue, c)
			}
		}
	}
	if visited != numVars {
		return &StructureError{Reason: "graph contains a cycle"}
	}
	return nil
}
