package app

import (
	"testing"

	"decisionnet/internal/bayes/cache"
	"decisionnet/internal/fixture"
)

func benchService(b *testing.B) *Service {
	b.Helper()
	return NewService(fixture.Dataset(), cache.NewInMemory(8), &DecisionSpec{
		DecisionVariables: fixture.DecisionVariables(),
		UtilityVariable:   fixture.UtilityVariable,
		UtilityScores:     fixture.UtilityScores(),
	})
}

func BenchmarkServiceDecideCached(b *testing.B) {
	svc := benchService(b)
	evidence := map[string]int{"T": 1}

	// Warm the model cache so the loop measures inference, not learning.
	if _, err := svc.Decide(fixture.StructureDOT, evidence); err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := svc.Decide(fixture.StructureDOT, evidence); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkServiceDecideCachedParallel(b *testing.B) {
	svc := benchService(b)
	evidence := map[string]int{"T": 1}

	if _, err := svc.Decide(fixture.StructureDOT, evidence); err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if _, err := svc.Decide(fixture.StructureDOT, evidence); err != nil {
				b.Fatal(err)
			}
		}
	})
}
