package topsis

import "math"

// Matrix is a fixed-shape, row-major matrix of float64. Rows are
// alternatives and columns are criteria. The shape is set at construction
// and never changes.
type Matrix struct {
	rows, cols int
	data       []float64
}

// NewMatrix allocates a zeroed rows×cols matrix.
func NewMatrix(rows, cols int) *Matrix {
	return &Matrix{rows: rows, cols: cols, data: make([]float64, rows*cols)}
}

func (m *Matrix) Rows() int { return m.rows }
func (m *Matrix) Cols() int { return m.cols }

// At returns the value at (i, j). Indices are not bounds-checked beyond
// what the runtime does for the backing slice.
func (m *Matrix) At(i, j int) float64 { return m.data[i*m.cols+j] }

func (m *Matrix) Set(i, j int, v float64) { m.data[i*m.cols+j] = v }

// Row returns a copy of row i.
func (m *Matrix) Row(i int) []float64 {
	out := make([]float64, m.cols)
	copy(out, m.data[i*m.cols:(i+1)*m.cols])
	return out
}

// RowsCopy materialises the matrix as [][]float64, e.g. for JSON output.
func (m *Matrix) RowsCopy() [][]float64 {
	out := make([][]float64, m.rows)
	for i := range out {
		out[i] = m.Row(i)
	}
	return out
}

// ColumnNorm returns the Euclidean norm of column j. Values are scaled by
// the column's largest magnitude first, so squares of large finite values
// do not overflow. The result is +Inf only if the norm itself exceeds
// math.MaxFloat64.
func (m *Matrix) ColumnNorm(j int) float64 {
	var scale float64
	for i := 0; i < m.rows; i++ {
		scale = math.Max(scale, math.Abs(m.At(i, j)))
	}
	if scale == 0 {
		return 0
	}
	var sum float64
	for i := 0; i < m.rows; i++ {
		v := m.At(i, j) / scale
		sum += v * v
	}
	return scale * math.Sqrt(sum)
}

// ColumnMinMax returns the smallest and largest value of column j.
// The matrix must have at least one row.
func (m *Matrix) ColumnMinMax(j int) (min, max float64) {
	min, max = m.At(0, j), m.At(0, j)
	for i := 1; i < m.rows; i++ {
		v := m.At(i, j)
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

// Clone returns an independent copy.
func (m *Matrix) Clone() *Matrix {
	c := &Matrix{rows: m.rows, cols: m.cols, data: make([]float64, len(m.data))}
	copy(c.data, m.data)
	return c
}
