package topsis

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Table is a raw tabular dataset as read from a file: a header row and
// data rows of cell text. The first column identifies the alternative.
type Table struct {
	Header []string
	Rows   [][]string
}

// Impact is the preference direction of a criterion.
type Impact int

const (
	// Beneficial criteria prefer higher values.
	Beneficial Impact = iota
	// Cost criteria prefer lower values.
	Cost
)

func (d Impact) String() string {
	if d == Cost {
		return "-"
	}
	return "+"
}

func (d Impact) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// Problem is a validated decision matrix ready for Evaluate.
type Problem struct {
	Labels   []string
	Criteria []string
	Values   *Matrix
	Weights  []float64
	Impacts  []Impact
}

// NewProblem validates the table and the weights/impacts strings and
// builds the numeric matrix. Checks run in a fixed order and the first
// failure is returned.
func NewProblem(t *Table, weights, impacts string) (*Problem, error) {
	if len(t.Header) < 3 {
		return nil, fmt.Errorf("%w: got %d", ErrInsufficientColumns, len(t.Header))
	}
	m := len(t.Header) - 1
	values := NewMatrix(len(t.Rows), m)
	labels := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		if len(row) > 0 {
			labels[i] = row[0]
		}
		for j := 0; j < m; j++ {
			cell := ""
			if j+1 < len(row) {
				cell = row[j+1]
			}
			v, err := parseReal(cell)
			if err != nil {
				return nil, fmt.Errorf("%w: row %d column %q has %q", ErrNonNumericCriteria, i+1, t.Header[j+1], cell)
			}
			values.Set(i, j, v)
		}
	}

	w, err := ParseWeights(weights)
	if err != nil {
		return nil, err
	}
	d, err := ParseImpacts(impacts)
	if err != nil {
		return nil, err
	}
	if len(w) != m || len(d) != m {
		return nil, fmt.Errorf("%w: %d weights, %d impacts, %d criteria", ErrCountMismatch, len(w), len(d), m)
	}

	return &Problem{
		Labels:   labels,
		Criteria: append([]string(nil), t.Header[1:]...),
		Values:   values,
		Weights:  w,
		Impacts:  d,
	}, nil
}

// ParseWeights parses a comma-separated list of at least two non-negative
// finite reals, e.g. "1,1,1,2".
func ParseWeights(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) < 2 {
		return nil, fmt.Errorf("%w: need at least 2, got %q", ErrInvalidWeights, s)
	}
	out := make([]float64, len(parts))
	for i, p := range parts {
		v, err := parseReal(p)
		if err != nil || v < 0 {
			return nil, fmt.Errorf("%w: bad weight %q", ErrInvalidWeights, strings.TrimSpace(p))
		}
		out[i] = v
	}
	return out, nil
}

// ParseImpacts parses a comma-separated list of at least two "+" or "-"
// tokens, e.g. "+,+,-,+".
func ParseImpacts(s string) ([]Impact, error) {
	parts := strings.Split(s, ",")
	if len(parts) < 2 {
		return nil, fmt.Errorf("%w: need at least 2, got %q", ErrInvalidImpacts, s)
	}
	out := make([]Impact, len(parts))
	for i, p := range parts {
		switch strings.TrimSpace(p) {
		case "+":
			out[i] = Beneficial
		case "-":
			out[i] = Cost
		default:
			return nil, fmt.Errorf("%w: bad impact %q", ErrInvalidImpacts, strings.TrimSpace(p))
		}
	}
	return out, nil
}

// parseReal accepts finite decimal or scientific notation, ignoring
// surrounding whitespace. NaN and infinities are rejected.
func parseReal(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, strconv.ErrSyntax
	}
	return v, nil
}
