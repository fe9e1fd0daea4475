package app

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"decisionnet/internal/bayes"
	"decisionnet/internal/fixture"
)

// fakeCache passes every call through and counts them.
type fakeCache struct {
	calls int
}

func (f *fakeCache) GetOrCompute(dot string, fn func() (*bayes.Network, error)) (*bayes.Network, error) {
	f.calls++
	return fn()
}

func defaultSpec() *DecisionSpec {
	return &DecisionSpec{
		DecisionVariables: fixture.DecisionVariables(),
		UtilityVariable:   fixture.UtilityVariable,
		UtilityScores:     fixture.UtilityScores(),
	}
}

func TestServiceDecide(t *testing.T) {
	cache := &fakeCache{}
	svc := NewService(fixture.Dataset(), cache, defaultSpec())

	got, err := svc.Decide(fixture.StructureDOT, map[string]int{"T": 1})
	if err != nil {
		t.Fatal(err)
	}
	if want := map[string]int{"Ad1": 0, "Ad2": 1}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if cache.calls != 1 {
		t.Fatalf("expected 1 cache lookup, got %d", cache.calls)
	}
}

func TestServiceDecide_RequiresStructure(t *testing.T) {
	svc := NewService(fixture.Dataset(), &fakeCache{}, defaultSpec())

	_, err := svc.Decide("", nil)
	if err == nil || !strings.Contains(err.Error(), "structure_dot is required") {
		t.Fatalf("expected missing-structure error, got %v", err)
	}
}

func TestServiceDecide_RequiresSomeSpec(t *testing.T) {
	svc := NewService(fixture.Dataset(), &fakeCache{}, nil)

	_, _, err := svc.DecideWithOptions(fixture.StructureDOT, nil, DecideOptions{})
	if err == nil || !strings.Contains(err.Error(), "no default decision spec") {
		t.Fatalf("expected missing-spec error, got %v", err)
	}
}

func TestServiceDecide_RequestSpecOverridesDefault(t *testing.T) {
	svc := NewService(fixture.Dataset(), &fakeCache{}, defaultSpec())

	spec := &DecisionSpec{
		DecisionVariables: []string{"Ad1"},
		UtilityVariable:   fixture.UtilityVariable,
		UtilityScores:     fixture.UtilityScores(),
	}
	got, info, err := svc.DecideWithOptions(fixture.StructureDOT, map[string]int{"A": 1}, DecideOptions{
		ModelID:      "campaign-7",
		ModelVersion: "v3",
		Spec:         spec,
	})
	if err != nil {
		t.Fatal(err)
	}
	if want := map[string]int{"Ad1": 0}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}

	if info.ID != "campaign-7" || info.Version != "v3" {
		t.Fatalf("unexpected model info %+v", info)
	}
	if info.Hash == "" || len(info.Hash) != 16 {
		t.Fatalf("unexpected structure hash %q", info.Hash)
	}
	if info.Variables != 10 || info.Records != 128 {
		t.Fatalf("unexpected model shape %+v", info)
	}
}

func TestServiceDecide_ConstraintFromSpec(t *testing.T) {
	spec := defaultSpec()
	spec.Constraint = "Ad1 != Ad2"
	svc := NewService(fixture.Dataset(), &fakeCache{}, spec)

	got, err := svc.Decide(fixture.StructureDOT, map[string]int{"G": 1, "T": 0})
	if err != nil {
		t.Fatal(err)
	}
	if want := map[string]int{"Ad1": 0, "Ad2": 1}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestServiceDecide_BubblesStructureErrors(t *testing.T) {
	svc := NewService(fixture.Dataset(), &fakeCache{}, defaultSpec())

	_, err := svc.Decide(`digraph { Z -> S; }`, nil)

	var serr *bayes.StructureError
	if !errors.As(err, &serr) {
		t.Fatalf("expected StructureError, got %v", err)
	}
}

func TestServiceDecideWithTrace(t *testing.T) {
	svc := NewService(fixture.Dataset(), &fakeCache{}, defaultSpec())

	got, trace, info, err := svc.DecideWithTraceAndOptions(fixture.StructureDOT, map[string]int{"T": 1}, DecideOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if trace == nil || len(trace.Candidates) != 4 {
		t.Fatalf("unexpected trace %+v", trace)
	}
	if !reflect.DeepEqual(trace.Chosen, got) {
		t.Fatalf("trace chosen %v, decision %v", trace.Chosen, got)
	}
	if info == nil || info.Records != 128 {
		t.Fatalf("unexpected model info %+v", info)
	}
}
