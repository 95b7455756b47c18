package topsis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParetoFront(t *testing.T) {
	tests := []struct {
		name    string
		table   *Table
		weights string
		impacts string
		want    []int
	}{
		{"beneficial drops dominated row", simpleTable(), "1,1", "+,+", []int{1, 2}},
		{"cost criterion flips dominance", simpleTable(), "1,1", "-,+", []int{2}},
		{"trade-offs keep every phone", phoneTable(), "1,1,1,2", "-,+,+,+", []int{0, 1, 2, 3, 4}},
		{"identical rows do not dominate", &Table{
			Header: []string{"Name", "C1", "C2"},
			Rows:   [][]string{{"A", "1", "2"}, {"B", "1", "2"}, {"C", "2", "1"}},
		}, "1,1", "+,+", []int{0, 1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := mustProblem(t, tt.table, tt.weights, tt.impacts)
			assert.Equal(t, tt.want, ParetoFront(p))
		})
	}
}

func TestParetoFrontIgnoresWeights(t *testing.T) {
	a := ParetoFront(mustProblem(t, simpleTable(), "1,1", "+,+"))
	b := ParetoFront(mustProblem(t, simpleTable(), "0,5", "+,+"))
	assert.Equal(t, a, b)
}
