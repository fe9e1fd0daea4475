// Package fixture provides a deterministic synthetic ad-campaign dataset:
// seven independent binary root variables (audience signals and the two ad
// slots), two derived signals and a three-tier sale outcome. Used by tests
// and by the load generator, so decisions computed from it are reproducible
// everywhere.
package fixture

import "decisionnet/internal/dataset"

// Variable roles: A age bracket, G gaming interest, T tech interest, P prior
// purchase, F follower of the brand (mirrors T), M mailing-list member
// (mirrors A), E email opt-in, S sale tier, Ad1 ad video, Ad2 ad banner.
func Names() []string {
	return []string{"A", "G", "T", "P", "F", "M", "E", "S", "Ad1", "Ad2"}
}

// Dataset enumerates every combination of the seven root variables once.
// F copies T, M copies A, and the sale tier S counts how many of the two ad
// slots match the audience: slot 1 lands when Ad1 equals x, slot 2 when Ad2
// equals y, with
//
//	x = (A==0 && (G==1 || P==1)) || (G==1 && T==0)
//	y = T==1 || G==1
func Dataset() *dataset.Dataset {
	var records [][]int
	for a := 0; a < 2; a++ {
		for g := 0; g < 2; g++ {
			for t := 0; t < 2; t++ {
				for p := 0; p < 2; p++ {
					for e := 0; e < 2; e++ {
						for ad1 := 0; ad1 < 2; ad1++ {
							for ad2 := 0; ad2 < 2; ad2++ {
								x := 0
								if (a == 0 && (g == 1 || p == 1)) || (g == 1 && t == 0) {
									x = 1
								}
								y := 0
								if t == 1 || g == 1 {
									y = 1
								}
								s := 0
								if ad1 == x {
									s++
								}
								if ad2 == y {
									s++
								}
								records = append(records, []int{a, g, t, p, t, a, e, s, ad1, ad2})
							}
						}
					}
				}
			}
		}
	}

	ds, err := dataset.New(Names(), records)
	if err != nil {
		panic(err) // static fixture, cannot fail
	}
	return ds
}

// StructureDOT is the fixed DAG for the fixture, in the digraph format a
// causal-discovery tool exports.
const StructureDOT = `digraph Structure {
  T -> F;
  A -> M;
  Ad1 -> S;
  Ad2 -> S;
  A -> S;
  G -> S;
  T -> S;
  P -> S;
}`

// DecisionVariables names the controllable ad slots, in declaration order.
func DecisionVariables() []string { return []string{"Ad1", "Ad2"} }

// UtilityScores maps sale tiers to revenue.
func UtilityScores() map[int]float64 {
	return map[int]float64{0: 0, 1: 5000, 2: 17760}
}

// UtilityVariable is the single utility parent.
const UtilityVariable = "S"
