package bayes

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/awalterschulze/gographviz"

	"decisionnet/internal/dataset"
)

// ParseDOT compiles a Graphviz digraph (the format causal-discovery tools
// emit) into a Structure over the dataset's schema. Every node must name a
// dataset variable; an edge X -> Y makes X a parent of Y. Variables absent
// from the DOT source have no parents.
//
// Parents keep the textual order of the edge statements, so the same DOT
// source always produces the same CPT layout.
func ParseDOT(dot string, ds *dataset.Dataset) (Structure, error) {
	ast, err := gographviz.ParseString(dot)
	if err != nil {
		return nil, &StructureError{Reason: fmt.Sprintf("parse DOT: %v", err)}
	}

	g := gographviz.NewGraph()
	if err := gographviz.Analyse(ast, g); err != nil {
		return nil, &StructureError{Reason: fmt.Sprintf("analyze DOT: %v", err)}
	}

	for _, n := range g.Nodes.Nodes {
		if _, ok := ds.Column(n.Name); !ok {
			return nil, &StructureError{Reason: fmt.Sprintf("node %q is not a dataset variable", n.Name)}
		}
	}

	edges, err := extractEdgesInTextOrder(dot)
	if err != nil {
		return nil, err
	}

	s := make(Structure, ds.NumVariables())
	for _, e := range edges {
		from, ok := ds.Column(e.From)
		if !ok {
			return nil, &StructureError{Reason: fmt.Sprintf("edge references unknown variable %q", e.From)}
		}
		to, ok := ds.Column(e.To)
		if !ok {
			return nil, &StructureError{Reason: fmt.Sprintf("edge references unknown variable %q", e.To)}
		}
		s[to] = append(s[to], from)
	}

	if err := s.validate(ds.NumVariables()); err != nil {
		return nil, err
	}
	return s, nil
}

type edgeSpec struct {
	From string
	To   string
}

var edgeStmtRe = regexp.MustCompile(`^\s*([A-Za-z_][A-Za-z0-9_]*)\s*->\s*([A-Za-z_][A-Za-z0-9_]*)\s*(\[.*\])?\s*$`)

// extractEdgesInTextOrder re-scans the DOT source because gographviz does not
// preserve the order edges appear in; parent order must follow the text.
func extractEdgesInTextOrder(dot string) ([]edgeSpec, error) {
	stmts := splitStatements(dot)
	out := make([]edgeSpec, 0)

	for _, s := range stmts {
		if !strings.Contains(s, "->") {
			continue
		}
		m := edgeStmtRe.FindStringSubmatch(s)
		if m == nil {
			return nil, &StructureError{Reason: fmt.Sprintf("unsupported edge statement: %q", s)}
		}
		out = append(out, edgeSpec{From: m[1], To: m[2]})
	}

	return out, nil
}

func splitStatements(dot string) []string {
	var out []string
	var b strings.Builder
	inQuotes := false
	escape := false

	flush := func() {
		s := strings.TrimSpace(b.String())
		if s != "" {
			out = append(out, s)
		}
		b.Reset()
	}

	for _, r := range dot {
		if escape {
			b.WriteRune(r)
			escape = false
			continue
		}
		if r == '\\' && inQuotes {
			b.WriteRune(r)
			escape = true
			continue
		}
		if r == '"' {
			inQuotes = !inQuotes
			b.WriteRune(r)
			continue
		}
		if (r == ';' || r == '\n' || r == '{' || r == '}') && !inQuotes {
			flush()
			continue
		}
		b.WriteRune(r)
	}
	flush()
	return out
}
