package topsis

import (
	"fmt"
	"math"
)

// Evaluation holds every stage of one TOPSIS run. Slices indexed by
// criterion have length Cols; slices indexed by alternative have length Rows.
type Evaluation struct {
	Norms      []float64 `json:"norms"`
	Normalized *Matrix   `json:"-"`
	Weighted   *Matrix   `json:"-"`
	IdealBest  []float64 `json:"ideal_best"`
	IdealWorst []float64 `json:"ideal_worst"`
	DistBest   []float64 `json:"dist_best"`
	DistWorst  []float64 `json:"dist_worst"`
	Scores     []float64 `json:"scores"`
	Ranks      []int     `json:"ranks"`
}

// Evaluate runs the pipeline on a validated problem:
//
//	N[i][j] = x[i][j] / ‖x[:,j]‖
//	V[i][j] = N[i][j] * w[j]
//	A+ / A- = per-column max/min of V (swapped for cost criteria)
//	S+[i] = ‖V[i] - A+‖, S-[i] = ‖V[i] - A-‖
//	C[i]  = S-[i] / (S+[i] + S-[i])
//
// and dense-ranks C descending. Evaluate does not modify p.
func Evaluate(p *Problem) (*Evaluation, error) {
	n, m := p.Values.Rows(), p.Values.Cols()
	ev := &Evaluation{Norms: make([]float64, m)}

	ev.Normalized = NewMatrix(n, m)
	for j := 0; j < m; j++ {
		norm := p.Values.ColumnNorm(j)
		if norm == 0 {
			return nil, fmt.Errorf("%w: %q", ErrDegenerateColumn, p.Criteria[j])
		}
		if math.IsInf(norm, 0) {
			return nil, fmt.Errorf("%w: %q norm overflows", ErrDegenerateColumn, p.Criteria[j])
		}
		ev.Norms[j] = norm
		for i := 0; i < n; i++ {
			ev.Normalized.Set(i, j, p.Values.At(i, j)/norm)
		}
	}

	ev.Weighted = NewMatrix(n, m)
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			ev.Weighted.Set(i, j, ev.Normalized.At(i, j)*p.Weights[j])
		}
	}

	ev.IdealBest, ev.IdealWorst = idealSolutions(ev.Weighted, p.Impacts)

	ev.DistBest = make([]float64, n)
	ev.DistWorst = make([]float64, n)
	ev.Scores = make([]float64, n)
	for i := 0; i < n; i++ {
		var best, worst float64
		for j := 0; j < m; j++ {
			v := ev.Weighted.At(i, j)
			best = math.Hypot(best, v-ev.IdealBest[j])
			worst = math.Hypot(worst, v-ev.IdealWorst[j])
		}
		ev.DistBest[i] = best
		ev.DistWorst[i] = worst

		total := best + worst
		if total == 0 || math.IsInf(total, 0) {
			return nil, fmt.Errorf("%w: %q", ErrUndefinedScore, p.Labels[i])
		}
		ev.Scores[i] = ev.DistWorst[i] / total
	}

	ev.Ranks = DenseRank(ev.Scores)
	return ev, nil
}

func idealSolutions(v *Matrix, impacts []Impact) (best, worst []float64) {
	best = make([]float64, v.Cols())
	worst = make([]float64, v.Cols())
	for j := range best {
		min, max := v.ColumnMinMax(j)
		if impacts[j] == Cost {
			best[j], worst[j] = min, max
		} else {
			best[j], worst[j] = max, min
		}
	}
	return best, worst
}
