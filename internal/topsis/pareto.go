package topsis

// ParetoFront returns the indices, in row order, of alternatives that no
// other alternative dominates on the raw criteria values. a dominates b when
// a is at least as good on every criterion (>= for Beneficial, <= for Cost)
// and strictly better on at least one. Identical rows do not dominate each
// other.
//
// O(n^2·m); fine for uploaded tables.
func ParetoFront(p *Problem) []int {
	n := p.Values.Rows()
	front := make([]int, 0, n)
	for i := 0; i < n; i++ {
		dominated := false
		for j := 0; j < n; j++ {
			if i != j && dominates(p, j, i) {
				dominated = true
				break
			}
		}
		if !dominated {
			front = append(front, i)
		}
	}
	return front
}

func dominates(p *Problem, a, b int) bool {
	strict := false
	for j, impact := range p.Impacts {
		va, vb := p.Values.At(a, j), p.Values.At(b, j)
		if impact == Cost {
			va, vb = -va, -vb
		}
		if va < vb {
			return false
		}
		if va > vb {
			strict = true
		}
	}
	return strict
}
