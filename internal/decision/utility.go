package decision

// UtilityMap scores the values of a single utility-parent variable. The
// variable is named explicitly rather than inferred from map ordering. A
// domain value with no score contributes zero utility.
type UtilityMap struct {
	Variable string
	Scores   map[int]float64
}

func NewUtilityMap(variable string, scores map[int]float64) UtilityMap {
	return UtilityMap{Variable: variable, Scores: scores}
}
