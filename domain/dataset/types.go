package dataset

import (
	"math"

	"goglm/domain/core"
)

// ColumnKind distinguishes numeric from categorical columns
type ColumnKind string

const (
	KindNumeric     ColumnKind = "numeric"
	KindCategorical ColumnKind = "categorical"
)

// Table is an in-memory column-major dataset. Numeric columns use NaN for
// missing cells; categorical columns use the empty string. All columns have
// the same length.
type Table struct {
	Columns     []string `json:"columns"` // column order as read
	Numeric     map[string][]float64
	Categorical map[string][]string
	RowCount    int `json:"row_count"`
}

// NewTable creates an empty table
func NewTable() *Table {
	return &Table{
		Numeric:     make(map[string][]float64),
		Categorical: make(map[string][]string),
	}
}

// Kind returns the column kind, or an error if the column does not exist.
func (t *Table) Kind(name string) (ColumnKind, error) {
	if _, ok := t.Numeric[name]; ok {
		return KindNumeric, nil
	}
	if _, ok := t.Categorical[name]; ok {
		return KindCategorical, nil
	}
	return "", core.NewNotFoundError("column", name)
}

// Has reports whether the table contains the named column.
func (t *Table) Has(name string) bool {
	_, err := t.Kind(name)
	return err == nil
}

// HasAll returns the first missing name from vars, if any.
func (t *Table) HasAll(vars []string) (string, bool) {
	for _, v := range vars {
		if !t.Has(v) {
			return v, false
		}
	}
	return "", true
}

// NumericColumn returns the values of a numeric column.
func (t *Table) NumericColumn(name string) ([]float64, error) {
	values, ok := t.Numeric[name]
	if !ok {
		return nil, core.NewNotFoundError("numeric column", name)
	}
	return values, nil
}

// CategoricalColumn returns the values of a categorical column.
func (t *Table) CategoricalColumn(name string) ([]string, error) {
	values, ok := t.Categorical[name]
	if !ok {
		return nil, core.NewNotFoundError("categorical column", name)
	}
	return values, nil
}

// Variable returns the column as a VariableKey-safe name plus its kind.
func (t *Table) Variable(key core.VariableKey) (ColumnKind, error) {
	return t.Kind(key.String())
}

// MissingCount counts NaN cells in a numeric column.
func MissingCount(values []float64) int {
	n := 0
	for _, v := range values {
		if math.IsNaN(v) {
			n++
		}
	}
	return n
}

// DropMissing returns the non-NaN values of a numeric column.
func DropMissing(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// PairwiseComplete returns the rows where both columns are observed.
func PairwiseComplete(x, y []float64) ([]float64, []float64) {
	n := len(x)
	if len(y) < n {
		n = len(y)
	}
	xs := make([]float64, 0, n)
	ys := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		xs = append(xs, x[i])
		ys = append(ys, y[i])
	}
	return xs, ys
}
