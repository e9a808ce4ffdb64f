package simulation

import (
	"fmt"
	"math/rand/v2"

	"goglm/domain/core"
	"goglm/domain/dataset"

	"gonum.org/v1/gonum/stat/distuv"
)

// Distribution names accepted by GenerateTable.
const (
	DistNormal      = "normal"
	DistPoisson     = "poisson"
	DistBernoulli   = "bernoulli"
	DistCategorical = "categorical"
)

// ColumnSpec describes one simulated column.
type ColumnSpec struct {
	Name string `json:"name"`
	Dist string `json:"dist"`

	// Normal
	Mu    float64 `json:"mu,omitempty"`
	Sigma float64 `json:"sigma,omitempty"`

	// Poisson
	Lambda float64 `json:"lambda,omitempty"`

	// Bernoulli
	P float64 `json:"p,omitempty"`

	// Categorical: uniform draw over Levels
	Levels []string `json:"levels,omitempty"`
}

// GenerateTable simulates a dataset with the given columns and row count.
// The same seed always produces the same table.
func GenerateTable(columns []ColumnSpec, rows int, seed uint64) (*dataset.Table, error) {
	if rows <= 0 {
		return nil, fmt.Errorf("%w: row count must be positive", core.ErrInsufficientData)
	}

	src := rand.NewPCG(seed, seed+1)
	t := dataset.NewTable()
	t.RowCount = rows
	for _, col := range columns {
		t.Columns = append(t.Columns, col.Name)
		switch col.Dist {
		case DistNormal:
			sigma := col.Sigma
			if sigma == 0 {
				sigma = 1
			}
			dist := distuv.Normal{Mu: col.Mu, Sigma: sigma, Src: src}
			t.Numeric[col.Name] = draw(dist.Rand, rows)
		case DistPoisson:
			dist := distuv.Poisson{Lambda: col.Lambda, Src: src}
			t.Numeric[col.Name] = draw(dist.Rand, rows)
		case DistBernoulli:
			dist := distuv.Bernoulli{P: col.P, Src: src}
			t.Numeric[col.Name] = draw(dist.Rand, rows)
		case DistCategorical:
			if len(col.Levels) == 0 {
				return nil, core.NewTypeError("`levels`", "must name at least one level")
			}
			r := rand.New(src)
			values := make([]string, rows)
			for i := range values {
				values[i] = col.Levels[r.IntN(len(col.Levels))]
			}
			t.Categorical[col.Name] = values
		default:
			return nil, core.NewTypeError("`dist`",
				fmt.Sprintf("must be one of normal, poisson, bernoulli, categorical; got %q", col.Dist))
		}
	}
	return t, nil
}

func draw(sample func() float64, n int) []float64 {
	values := make([]float64, n)
	for i := range values {
		values[i] = sample()
	}
	return values
}
