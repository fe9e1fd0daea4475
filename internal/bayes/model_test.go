package bayes

import (
	"errors"
	"math"
	"testing"

	"decisionnet/internal/dataset"
)

func TestNew_LearnsCPTsByCounting(t *testing.T) {
	// R -> W, with P(W=1|R=0)=1/4 and P(W=1|R=1)=3/4.
	ds, err := dataset.New([]string{"R", "W"}, [][]int{
		{0, 0}, {0, 0}, {0, 0}, {0, 1},
		{1, 0}, {1, 1}, {1, 1}, {1, 1},
	})
	if err != nil {
		t.Fatal(err)
	}

	net, err := New(ds, Structure{{}, {0}})
	if err != nil {
		t.Fatal(err)
	}

	d, err := net.PosteriorOf("W", map[string]int{"R": 1})
	if err != nil {
		t.Fatal(err)
	}
	if got := d.Prob(1); math.Abs(got-0.75) > 1e-12 {
		t.Fatalf("expected P(W=1|R=1)=0.75, got %v", got)
	}

	// Bayes inversion: P(R=1|W=1) = 0.75*0.5 / 0.5 = 0.75.
	d, err = net.PosteriorOf("R", map[string]int{"W": 1})
	if err != nil {
		t.Fatal(err)
	}
	if got := d.Prob(1); math.Abs(got-0.75) > 1e-12 {
		t.Fatalf("expected P(R=1|W=1)=0.75, got %v", got)
	}
}

func TestNew_RejectsUnsupportedParentAssignment(t *testing.T) {
	// C depends on both A and B, but the combos (0,1) and (1,0) never occur.
	ds, err := dataset.New([]string{"A", "B", "C"}, [][]int{
		{0, 0, 0},
		{1, 1, 0},
	})
	if err != nil {
		t.Fatal(err)
	}

	_, err = New(ds, Structure{{}, {}, {0, 1}})

	var ierr *InsufficientDataError
	if !errors.As(err, &ierr) {
		t.Fatalf("expected InsufficientDataError, got %v", err)
	}
	if ierr.Variable != "C" {
		t.Fatalf("expected error to name C, got %q", ierr.Variable)
	}
}

func TestNew_RejectsNilDataset(t *testing.T) {
	if _, err := New(nil, Structure{}); err == nil {
		t.Fatalf("expected error")
	}
}
