package topsis

import "errors"

// Every failure returned by this package, or by loaders feeding it, wraps
// exactly one of these sentinels. Match with errors.Is; use KindOf for a
// stable label.
var (
	ErrMissingInput        = errors.New("topsis: input file not found")
	ErrUnsupportedFormat   = errors.New("topsis: input file must be a .csv or .xlsx file")
	ErrInsufficientColumns = errors.New("topsis: input file must contain at least three columns")
	ErrNonNumericCriteria  = errors.New("topsis: from 2nd to last columns must contain numeric values only")
	ErrInvalidWeights      = errors.New("topsis: weights must be numeric and separated by commas")
	ErrInvalidImpacts      = errors.New("topsis: impacts must be either '+' or '-' and separated by commas")
	ErrCountMismatch       = errors.New("topsis: number of weights, impacts, and criteria columns must be the same")
	ErrDegenerateColumn    = errors.New("topsis: criterion column has zero or non-finite norm")
	ErrUndefinedScore      = errors.New("topsis: alternative is equidistant from both ideal solutions")
)

var kinds = []struct {
	err  error
	name string
}{
	{ErrMissingInput, "missing_input"},
	{ErrUnsupportedFormat, "unsupported_format"},
	{ErrInsufficientColumns, "insufficient_columns"},
	{ErrNonNumericCriteria, "non_numeric_criteria"},
	{ErrInvalidWeights, "invalid_weights"},
	{ErrInvalidImpacts, "invalid_impacts"},
	{ErrCountMismatch, "count_mismatch"},
	{ErrDegenerateColumn, "degenerate_column"},
	{ErrUndefinedScore, "undefined_score"},
}

// KindOf returns the snake_case kind of a topsis error, or "" when err does
// not wrap one of the package sentinels.
func KindOf(err error) string {
	if err == nil {
		return ""
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.name
		}
	}
	return ""
}
