package descriptives

import (
	"fmt"
	"math"

	"goglm/domain/core"
	"goglm/domain/dataset"

	"gonum.org/v1/gonum/stat"
)

// Matrix is a symmetric Pearson correlation matrix over named variables.
// Cells with fewer than two pairwise-complete observations are NaN.
type Matrix struct {
	Variables []string    `json:"variables"`
	R         [][]float64 `json:"r"`
}

// At returns the correlation between two named variables.
func (m *Matrix) At(a, b string) (float64, error) {
	i, j := -1, -1
	for k, v := range m.Variables {
		if v == a {
			i = k
		}
		if v == b {
			j = k
		}
	}
	if i < 0 || j < 0 {
		return 0, core.NewNotFoundError("variable", a+"/"+b)
	}
	return m.R[i][j], nil
}

// CorrelationMatrix computes pairwise Pearson correlations among numeric
// variables, dropping missing cells pairwise.
func CorrelationMatrix(t *dataset.Table, vars []string) (*Matrix, error) {
	columns := make([][]float64, len(vars))
	for i, v := range vars {
		values, err := t.NumericColumn(v)
		if err != nil {
			return nil, fmt.Errorf("correlation requires numeric columns: %w", err)
		}
		columns[i] = values
	}

	m := &Matrix{
		Variables: append([]string(nil), vars...),
		R:         make([][]float64, len(vars)),
	}
	for i := range vars {
		m.R[i] = make([]float64, len(vars))
		m.R[i][i] = 1
	}
	for i := 0; i < len(vars); i++ {
		for j := i + 1; j < len(vars); j++ {
			r := pearson(columns[i], columns[j])
			m.R[i][j] = r
			m.R[j][i] = r
		}
	}
	return m, nil
}

func pearson(x, y []float64) float64 {
	xs, ys := dataset.PairwiseComplete(x, y)
	if len(xs) < 2 {
		return math.NaN()
	}
	return stat.Correlation(xs, ys, nil)
}
