package bayes

// factor is a non-negative function over a set of variables, stored row-major
// with the last variable in vars varying fastest. vars holds dataset column
// indices; values are addressed by domain position, not domain value.
type factor struct {
	vars []int
	card []int
	vals []float64
}

func scalarFactor(v float64) factor {
	return factor{vals: []float64{v}}
}

// next advances a mixed-radix counter, last digit fastest. Returns false after
// the last assignment.
func next(assign, card []int) bool {
	for i := len(assign) - 1; i >= 0; i-- {
		assign[i]++
		if assign[i] < card[i] {
			return true
		}
		assign[i] = 0
	}
	return false
}

func indexOf(vars []int, v int) int {
	for i, x := range vars {
		if x == v {
			return i
		}
	}
	return -1
}

// restrict fixes observed variables to their evidence positions and drops them
// from the factor's scope. Factors with no observed variables are returned
// unchanged.
func (f factor) restrict(ev map[int]int) factor {
	observed := false
	for _, v := range f.vars {
		if _, ok := ev[v]; ok {
			observed = true
			break
		}
	}
	if !observed {
		return f
	}

	var vars, card []int
	size := 1
	for i, v := range f.vars {
		if _, ok := ev[v]; ok {
			continue
		}
		vars = append(vars, v)
		card = append(card, f.card[i])
		size *= f.card[i]
	}
	vals := make([]float64, size)

	assign := make([]int, len(f.vars))
	i := 0
	for {
		match := true
		out := 0
		for j, v := range f.vars {
			if pos, ok := ev[v]; ok {
				if assign[j] != pos {
					match = false
					break
				}
				continue
			}
			out = out*f.card[j] + assign[j]
		}
		if match {
			vals[out] = f.vals[i]
		}
		i++
		if !next(assign, f.card) {
			break
		}
	}

	return factor{vars: vars, card: card, vals: vals}
}

// multiply returns the pointwise product of two factors over the union of
// their scopes.
func multiply(a, b factor) factor {
	vars := append([]int{}, a.vars...)
	card := append([]int{}, a.card...)
	for i, v := range b.vars {
		if indexOf(vars, v) < 0 {
			vars = append(vars, v)
			card = append(card, b.card[i])
		}
	}

	size := 1
	for _, c := range card {
		size *= c
	}
	vals := make([]float64, size)

	aMap := make([]int, len(a.vars))
	for j, v := range a.vars {
		aMap[j] = indexOf(vars, v)
	}
	bMap := make([]int, len(b.vars))
	for j, v := range b.vars {
		bMap[j] = indexOf(vars, v)
	}

	assign := make([]int, len(vars))
	i := 0
	for {
		ai := 0
		for j := range a.vars {
			ai = ai*a.card[j] + assign[aMap[j]]
		}
		bi := 0
		for j := range b.vars {
			bi = bi*b.card[j] + assign[bMap[j]]
		}
		vals[i] = a.vals[ai] * b.vals[bi]
		i++
		if !next(assign, card) {
			break
		}
	}

	return factor{vars: vars, card: card, vals: vals}
}

// sumOut marginalizes a variable out of the factor.
func (f factor) sumOut(v int) factor {
	pos := indexOf(f.vars, v)
	if pos < 0 {
		return f
	}

	var vars, card []int
	size := 1
	for i, x := range f.vars {
		if i == pos {
			continue
		}
		vars = append(vars, x)
		card = append(card, f.card[i])
		size *= f.card[i]
	}
	vals := make([]float64, size)

	assign := make([]int, len(f.vars))
	i := 0
	for {
		out := 0
		for j := range f.vars {
			if j == pos {
				continue
			}
			out = out*f.card[j] + assign[j]
		}
		vals[out] += f.vals[i]
		i++
		if !next(assign, f.card) {
			break
		}
	}

	return factor{vars: vars, card: card, vals: vals}
}

// eliminate multiplies every factor mentioning v and sums v out of the
// product.
func eliminate(factors []factor, v int) []factor {
	var related, rest []factor
	for _, f := range factors {
		if indexOf(f.vars, v) >= 0 {
			related = append(related, f)
		} else {
			rest = append(rest, f)
		}
	}
	if len(related) == 0 {
		return factors
	}

	prod := related[0]
	for _, f := range related[1:] {
		prod = multiply(prod, f)
	}
	return append(rest, prod.sumOut(v))
}
