package app

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"decisionnet/internal/bayes"
	"decisionnet/internal/dataset"
	"decisionnet/internal/decision"
)

type Cache interface {
	GetOrCompute(dot string, fn func() (*bayes.Network, error)) (*bayes.Network, error)
}

// Service wires the dataset, structure compilation and decision optimization.
// The dataset is fixed for the service lifetime; learned networks are cached
// per structure document so repeated structures skip CPT relearning.
type Service struct {
	ds         *dataset.Dataset
	cache      Cache
	defaults   *DecisionSpec
	engineOpts []decision.Option
}

// NewService builds a service over a loaded dataset. defaults may be nil, in
// which case every request must carry its own decision spec. engineOpts are
// applied to every engine the service builds.
func NewService(ds *dataset.Dataset, cache Cache, defaults *DecisionSpec, engineOpts ...decision.Option) *Service {
	return &Service{ds: ds, cache: cache, defaults: defaults, engineOpts: engineOpts}
}

// Decide runs the default decision spec against the given structure and
// evidence. Does not mutate the evidence.
func (s *Service) Decide(structureDOT string, evidence map[string]int) (map[string]int, error) {
	out, _, err := s.DecideWithOptions(structureDOT, evidence, DecideOptions{})
	return out, err
}

func (s *Service) DecideWithOptions(structureDOT string, evidence map[string]int, opts DecideOptions) (map[string]int, *ModelInfo, error) {
	eng, info, err := s.engineFor(structureDOT, opts)
	if err != nil {
		return nil, info, err
	}
	out, err := eng.Decide(evidence)
	if err != nil {
		return nil, info, err
	}
	return out, info, nil
}

func (s *Service) DecideWithTraceAndOptions(structureDOT string, evidence map[string]int, opts DecideOptions) (map[string]int, *decision.Trace, *ModelInfo, error) {
	eng, info, err := s.engineFor(structureDOT, opts)
	if err != nil {
		return nil, nil, info, err
	}
	out, trace, err := eng.DecideWithTrace(evidence)
	return out, trace, info, err
}

func (s *Service) engineFor(structureDOT string, opts DecideOptions) (*decision.Engine, *ModelInfo, error) {
	if structureDOT == "" {
		return nil, nil, fmt.Errorf("structure_dot is required")
	}

	spec := s.defaults
	if opts.Spec != nil {
		spec = opts.Spec
	}
	if spec == nil {
		return nil, nil, fmt.Errorf("no default decision spec configured and none supplied")
	}

	net, err := s.cache.GetOrCompute(structureDOT, func() (*bayes.Network, error) {
		structure, err := bayes.ParseDOT(structureDOT, s.ds)
		if err != nil {
			return nil, err
		}
		return bayes.New(s.ds, structure)
	})
	if err != nil {
		return nil, nil, err
	}

	info := &ModelInfo{
		ID:        opts.ModelID,
		Version:   opts.ModelVersion,
		Hash:      hashStructure(structureDOT),
		Variables: s.ds.NumVariables(),
		Records:   s.ds.NumRecords(),
	}

	engineOpts := append([]decision.Option{}, s.engineOpts...)
	if spec.Constraint != "" {
		engineOpts = append(engineOpts, decision.WithConstraint(spec.Constraint))
	}

	eng, err := decision.New(net, spec.DecisionVariables, decision.NewUtilityMap(spec.UtilityVariable, spec.UtilityScores), engineOpts...)
	if err != nil {
		return nil, info, err
	}
	return eng, info, nil
}

func hashStructure(dot string) string {
	sum := sha256.Sum256([]byte(dot))
	return hex.EncodeToString(sum[:])[:16]
}
