package engineconfig

import (
	"os"
	"path/filepath"
	"testing"
)

const validSpec = `
decision_variables:
  - Ad1
  - Ad2
utility:
  variable: S
  scores:
    0: 0
    1: 5000
    2: 17760
constraint: "Ad1 != Ad2"
`

func TestParse(t *testing.T) {
	s, err := Parse([]byte(validSpec))
	if err != nil {
		t.Fatal(err)
	}

	if len(s.DecisionVariables) != 2 || s.DecisionVariables[0] != "Ad1" || s.DecisionVariables[1] != "Ad2" {
		t.Fatalf("unexpected decision variables %v", s.DecisionVariables)
	}
	if s.Utility.Variable != "S" {
		t.Fatalf("unexpected utility variable %q", s.Utility.Variable)
	}
	if got := s.Utility.Scores[2]; got != 17760 {
		t.Fatalf("unexpected score for tier 2: %v", got)
	}
	if s.Constraint != "Ad1 != Ad2" {
		t.Fatalf("unexpected constraint %q", s.Constraint)
	}
}

func TestParse_RequiredFields(t *testing.T) {
	cases := []string{
		``,
		`decision_variables: [Ad1]`,
		`
decision_variables: [Ad1]
utility:
  variable: S
`,
		`
utility:
  variable: S
  scores: {0: 1}
`,
		`not yaml: [`,
	}

	for _, raw := range cases {
		if _, err := Parse([]byte(raw)); err == nil {
			t.Fatalf("expected %q to be rejected", raw)
		}
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.yaml")
	if err := os.WriteFile(path, []byte(validSpec), 0o600); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if s.Utility.Variable != "S" {
		t.Fatalf("unexpected utility variable %q", s.Utility.Variable)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected missing file to error")
	}
}
