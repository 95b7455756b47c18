package topsis

import (
	"strconv"
	"strings"
)

// Column names appended to the result table.
const (
	ScoreColumn = "Topsis Score"
	RankColumn  = "Rank"
)

// Result is the input table with two trailing columns, Topsis Score and
// Rank. Row order matches the input. Scores are rounded; Ranks were derived
// from the unrounded scores.
type Result struct {
	Header []string
	Rows   [][]string
	Scores []float64
	Ranks  []int
}

// Best returns the row index of the first alternative ranked 1, or -1 for
// an empty result.
func (r *Result) Best() int {
	for i, rank := range r.Ranks {
		if rank == 1 {
			return i
		}
	}
	return -1
}

// Compute validates the table and parameters, runs Evaluate and assembles
// the result table. It is a pure function of its inputs: t is not
// modified and nothing is retained between calls.
func Compute(t *Table, weights, impacts string) (*Result, error) {
	p, err := NewProblem(t, weights, impacts)
	if err != nil {
		return nil, err
	}
	ev, err := Evaluate(p)
	if err != nil {
		return nil, err
	}
	return NewResult(t, ev), nil
}

// NewResult appends the rounded scores and ranks of ev to a copy of t.
func NewResult(t *Table, ev *Evaluation) *Result {
	header := make([]string, 0, len(t.Header)+2)
	header = append(header, t.Header...)
	header = append(header, ScoreColumn, RankColumn)

	res := &Result{
		Header: header,
		Rows:   make([][]string, len(t.Rows)),
		Scores: make([]float64, len(ev.Scores)),
		Ranks:  append([]int(nil), ev.Ranks...),
	}
	for i, row := range t.Rows {
		res.Scores[i] = RoundScore(ev.Scores[i])
		out := make([]string, len(t.Header), len(t.Header)+2)
		copy(out, row)
		out = append(out, FormatScore(res.Scores[i]), strconv.Itoa(res.Ranks[i]))
		res.Rows[i] = out
	}
	return res
}

// FormatScore renders a rounded score with the fewest digits that
// round-trip while keeping a decimal point: 0.5, 1.0, 0.4212.
func FormatScore(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
