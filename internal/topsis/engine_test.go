package topsis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func phoneTable() *Table {
	return &Table{
		Header: []string{"Model", "Price", "Storage", "Camera", "Looks"},
		Rows: [][]string{
			{"A1", "250", "16", "12", "5"},
			{"A2", "200", "16", "8", "3"},
			{"A3", "300", "32", "16", "4"},
			{"A4", "275", "32", "8", "4"},
			{"A5", "225", "16", "16", "2"},
		},
	}
}

func simpleTable() *Table {
	return &Table{
		Header: []string{"Name", "C1", "C2"},
		Rows: [][]string{
			{"A", "3", "0"},
			{"B", "4", "3"},
			{"C", "0", "4"},
		},
	}
}

func mustProblem(t *testing.T, tbl *Table, w, d string) *Problem {
	t.Helper()
	p, err := NewProblem(tbl, w, d)
	require.NoError(t, err)
	return p
}

func TestEvaluateSimpleBeneficial(t *testing.T) {
	ev, err := Evaluate(mustProblem(t, simpleTable(), "1,1", "+,+"))
	require.NoError(t, err)

	assert.InDeltaSlice(t, []float64{5, 5}, ev.Norms, 1e-12)
	assert.InDeltaSlice(t, []float64{0.6, 0.8, 0}, []float64{ev.Normalized.At(0, 0), ev.Normalized.At(1, 0), ev.Normalized.At(2, 0)}, 1e-12)
	assert.InDeltaSlice(t, []float64{0.8, 0.8}, ev.IdealBest, 1e-12)
	assert.InDeltaSlice(t, []float64{0, 0}, ev.IdealWorst, 1e-12)
	assert.InDeltaSlice(t, []float64{0.8246211251235323, 0.2, 0.8}, ev.DistBest, 1e-12)
	assert.InDeltaSlice(t, []float64{0.6, 1.0, 0.8}, ev.DistWorst, 1e-12)
	assert.InDeltaSlice(t, []float64{0.42116460960662266, 0.8333333333333333, 0.5}, ev.Scores, 1e-12)
	assert.Equal(t, []int{3, 1, 2}, ev.Ranks)
}

func TestEvaluateCostCriterion(t *testing.T) {
	ev, err := Evaluate(mustProblem(t, simpleTable(), "1,1", "-,+"))
	require.NoError(t, err)

	assert.InDeltaSlice(t, []float64{0, 0.8}, ev.IdealBest, 1e-12)
	assert.InDeltaSlice(t, []float64{0.8, 0}, ev.IdealWorst, 1e-12)
	assert.InDeltaSlice(t, []float64{0.16666666666666669, 0.42116460960662266, 1.0}, ev.Scores, 1e-12)
	assert.Equal(t, []int{3, 2, 1}, ev.Ranks)
}

func TestEvaluatePhoneExample(t *testing.T) {
	p := mustProblem(t, phoneTable(), "1,1,1,2", "-,+,+,+")
	ev, err := Evaluate(p)
	require.NoError(t, err)

	assert.InDeltaSlice(t, []float64{564.5794895318107, 53.0659966456864, 28.0, 8.366600265340756}, ev.Norms, 1e-9)

	for j := 0; j < ev.Normalized.Cols(); j++ {
		assert.InDelta(t, 1.0, ev.Normalized.ColumnNorm(j), 1e-12, "normalized column %d", j)
		assert.InDelta(t, p.Weights[j], ev.Weighted.ColumnNorm(j), 1e-12, "weighted column %d", j)
	}
	assert.InDeltaSlice(t, []float64{0.44280744277004763, 0.30151134457776363, 0.42857142857142855, 1.1952286093343936}, ev.Weighted.Row(0), 1e-12)

	assert.InDeltaSlice(t, []float64{0.3542459542160381, 0.6030226891555273, 0.5714285714285714, 1.1952286093343936}, ev.IdealBest, 1e-12)
	assert.InDeltaSlice(t, []float64{0.5313689313240572, 0.30151134457776363, 0.2857142857142857, 0.47809144373375745}, ev.IdealWorst, 1e-12)

	assert.InDeltaSlice(t, []float64{0.34519616369435363, 0.6333349607764788, 0.2975153881103714, 0.3955029317560251, 0.7792018926494793}, ev.DistBest, 1e-12)
	assert.InDeltaSlice(t, []float64{0.7365711199917645, 0.2975153881103714, 0.6333349607764788, 0.5669579382937018, 0.3150868322935027}, ev.DistWorst, 1e-12)

	assert.InDeltaSlice(t, []float64{0.6808960957683071, 0.31961677670976085, 0.680383223290239, 0.5890711570065276, 0.28793756630355516}, ev.Scores, 1e-12)
	assert.Equal(t, []int{1, 4, 2, 3, 5}, ev.Ranks)
}

func TestEvaluateDoesNotMutateProblem(t *testing.T) {
	p := mustProblem(t, simpleTable(), "1,1", "+,+")
	before := p.Values.Clone()
	_, err := Evaluate(p)
	require.NoError(t, err)
	assert.Equal(t, before.RowsCopy(), p.Values.RowsCopy())
}

func TestEvaluateDegenerateColumn(t *testing.T) {
	tbl := &Table{
		Header: []string{"Name", "C1", "C2"},
		Rows:   [][]string{{"A", "1", "0"}, {"B", "2", "0"}},
	}
	_, err := Evaluate(mustProblem(t, tbl, "1,1", "+,+"))
	require.ErrorIs(t, err, ErrDegenerateColumn)
	assert.Contains(t, err.Error(), `"C2"`)
}

func TestEvaluateNoRows(t *testing.T) {
	tbl := &Table{Header: []string{"Name", "C1", "C2"}}
	_, err := Evaluate(mustProblem(t, tbl, "1,1", "+,+"))
	require.ErrorIs(t, err, ErrDegenerateColumn)
}

func TestEvaluateUndefinedScore(t *testing.T) {
	t.Run("single alternative", func(t *testing.T) {
		tbl := &Table{Header: []string{"Name", "C1", "C2"}, Rows: [][]string{{"A", "1", "2"}}}
		_, err := Evaluate(mustProblem(t, tbl, "1,1", "+,-"))
		require.ErrorIs(t, err, ErrUndefinedScore)
	})

	t.Run("identical alternatives", func(t *testing.T) {
		tbl := &Table{Header: []string{"Name", "C1", "C2"}, Rows: [][]string{{"A", "1", "2"}, {"B", "1", "2"}}}
		_, err := Evaluate(mustProblem(t, tbl, "1,1", "+,+"))
		require.ErrorIs(t, err, ErrUndefinedScore)
	})

	t.Run("all weights zero", func(t *testing.T) {
		_, err := Evaluate(mustProblem(t, simpleTable(), "0,0", "+,+"))
		require.ErrorIs(t, err, ErrUndefinedScore)
	})
}

func TestEvaluateScoresInUnitInterval(t *testing.T) {
	for _, impacts := range []string{"+,+,+,+", "-,-,-,-", "-,+,+,+", "+,-,+,-"} {
		ev, err := Evaluate(mustProblem(t, phoneTable(), "1,2,3,4", impacts))
		require.NoError(t, err)
		for i, s := range ev.Scores {
			assert.False(t, math.IsNaN(s))
			assert.GreaterOrEqual(t, s, 0.0, "impacts %s row %d", impacts, i)
			assert.LessOrEqual(t, s, 1.0, "impacts %s row %d", impacts, i)
		}
	}
}

func TestEvaluateWeightScalingKeepsRanks(t *testing.T) {
	base, err := Evaluate(mustProblem(t, phoneTable(), "1,1,1,2", "-,+,+,+"))
	require.NoError(t, err)

	for _, w := range []string{"2,2,2,4", "0.5,0.5,0.5,1", "10,10,10,20"} {
		scaled, err := Evaluate(mustProblem(t, phoneTable(), w, "-,+,+,+"))
		require.NoError(t, err)
		assert.Equal(t, base.Ranks, scaled.Ranks, "weights %s", w)
		assert.InDeltaSlice(t, base.Scores, scaled.Scores, 1e-12, "weights %s", w)
	}
}

func TestColumnNormLargeValues(t *testing.T) {
	m := NewMatrix(3, 2)
	for i, v := range []float64{1e200, 2e200, 3e200} {
		m.Set(i, 0, v)
		m.Set(i, 1, float64(i+1))
	}
	assert.InEpsilon(t, math.Sqrt(14)*1e200, m.ColumnNorm(0), 1e-12)
	assert.InEpsilon(t, math.Sqrt(14), m.ColumnNorm(1), 1e-12)
	assert.Zero(t, NewMatrix(2, 1).ColumnNorm(0))
}

func TestEvaluateLargeValuesKeepColumn(t *testing.T) {
	tbl := &Table{
		Header: []string{"Name", "C1", "C2"},
		Rows: [][]string{
			{"A", "1e200", "1e200"},
			{"B", "2e200", "2e200"},
			{"C", "3e200", "3e200"},
		},
	}
	ev, err := Evaluate(mustProblem(t, tbl, "1,1", "+,-"))
	require.NoError(t, err)

	for _, n := range ev.Norms {
		assert.False(t, math.IsInf(n, 0))
	}
	assert.InDeltaSlice(t, []float64{1 / math.Sqrt(14), 2 / math.Sqrt(14), 3 / math.Sqrt(14)},
		[]float64{ev.Normalized.At(0, 0), ev.Normalized.At(1, 0), ev.Normalized.At(2, 0)}, 1e-12)
	// Equal benefit and cost columns cancel out.
	assert.Equal(t, []float64{0.5, 0.5, 0.5}, ev.Scores)
	assert.Equal(t, []int{1, 1, 1}, ev.Ranks)
}

func TestEvaluateNormOverflow(t *testing.T) {
	tbl := &Table{
		Header: []string{"Name", "C1", "C2"},
		Rows: [][]string{
			{"A", "1.7e308", "1"},
			{"B", "1.7e308", "2"},
		},
	}
	_, err := Evaluate(mustProblem(t, tbl, "1,1", "+,+"))
	require.ErrorIs(t, err, ErrDegenerateColumn)
	assert.Contains(t, err.Error(), `"C1"`)
}
