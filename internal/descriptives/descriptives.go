package descriptives

import (
	"fmt"
	"sort"

	"goglm/domain/core"
	"goglm/domain/dataset"

	"github.com/montanaflynn/stats"
)

// Summary holds the standard numeric descriptives for one variable.
type Summary struct {
	N       int     `json:"n"`       // observed (non-missing) values
	Missing int     `json:"missing"` // missing cells
	Mean    float64 `json:"mean"`
	StdDev  float64 `json:"std_dev"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Median  float64 `json:"median"`
	Q25     float64 `json:"q25"`
	Q75     float64 `json:"q75"`
}

// Report tabulates descriptives for a set of variables: summaries for
// numeric columns, value counts for categorical ones.
type Report struct {
	Numeric     map[string]Summary        `json:"numeric,omitempty"`
	Categorical map[string]map[string]int `json:"categorical,omitempty"`
}

// Summarize computes summary statistics over a numeric column, ignoring
// missing cells.
func Summarize(values []float64) (Summary, error) {
	observed := dataset.DropMissing(values)
	if len(observed) == 0 {
		return Summary{}, fmt.Errorf("%w: no observed values", core.ErrInsufficientData)
	}

	mean, _ := stats.Mean(observed)
	stdDev, _ := stats.StandardDeviation(observed)
	min, _ := stats.Min(observed)
	max, _ := stats.Max(observed)
	median, _ := stats.Median(observed)
	q25, _ := stats.Percentile(observed, 25)
	q75, _ := stats.Percentile(observed, 75)

	return Summary{
		N:       len(observed),
		Missing: dataset.MissingCount(values),
		Mean:    mean,
		StdDev:  stdDev,
		Min:     min,
		Max:     max,
		Median:  median,
		Q25:     q25,
		Q75:     q75,
	}, nil
}

// Describe tabulates descriptives for the given variables. Numeric columns
// get summary statistics, categorical columns get value counts.
func Describe(t *dataset.Table, vars []string) (*Report, error) {
	if missing, ok := t.HasAll(vars); !ok {
		return nil, core.NewNotFoundError("column", missing)
	}

	report := &Report{}
	for _, v := range vars {
		kind, err := t.Kind(v)
		if err != nil {
			return nil, err
		}
		switch kind {
		case dataset.KindNumeric:
			values, _ := t.NumericColumn(v)
			summary, err := Summarize(values)
			if err != nil {
				return nil, fmt.Errorf("describe %s: %w", v, err)
			}
			if report.Numeric == nil {
				report.Numeric = make(map[string]Summary)
			}
			report.Numeric[v] = summary
		case dataset.KindCategorical:
			values, _ := t.CategoricalColumn(v)
			if report.Categorical == nil {
				report.Categorical = make(map[string]map[string]int)
			}
			report.Categorical[v] = ValueCounts(values)
		}
	}
	return report, nil
}

// DescribeBy tabulates descriptives for the given variables within each
// level of a categorical grouping column, keyed by level.
func DescribeBy(t *dataset.Table, vars []string, group string) (map[string]*Report, error) {
	levels, err := t.CategoricalColumn(group)
	if err != nil {
		return nil, err
	}

	out := make(map[string]*Report)
	for _, level := range orderedLevels(levels) {
		sub, err := subsetByLevel(t, vars, levels, level)
		if err != nil {
			return nil, err
		}
		report, err := Describe(sub, vars)
		if err != nil {
			return nil, fmt.Errorf("group %s=%s: %w", group, level, err)
		}
		out[level] = report
	}
	return out, nil
}

// ValueCounts counts occurrences of each level, skipping missing cells.
func ValueCounts(values []string) map[string]int {
	counts := make(map[string]int)
	for _, v := range values {
		if v == "" {
			continue
		}
		counts[v]++
	}
	return counts
}

func orderedLevels(values []string) []string {
	seen := make(map[string]bool)
	var levels []string
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		levels = append(levels, v)
	}
	sort.Strings(levels)
	return levels
}

// subsetByLevel builds a reduced table containing only the rows where the
// grouping column equals level.
func subsetByLevel(t *dataset.Table, vars []string, levels []string, level string) (*dataset.Table, error) {
	sub := dataset.NewTable()
	sub.Columns = append([]string(nil), vars...)
	for _, v := range vars {
		kind, err := t.Kind(v)
		if err != nil {
			return nil, err
		}
		switch kind {
		case dataset.KindNumeric:
			values, _ := t.NumericColumn(v)
			var kept []float64
			for i, cell := range values {
				if i < len(levels) && levels[i] == level {
					kept = append(kept, cell)
				}
			}
			sub.Numeric[v] = kept
			sub.RowCount = len(kept)
		case dataset.KindCategorical:
			values, _ := t.CategoricalColumn(v)
			var kept []string
			for i, cell := range values {
				if i < len(levels) && levels[i] == level {
					kept = append(kept, cell)
				}
			}
			sub.Categorical[v] = kept
			sub.RowCount = len(kept)
		}
	}
	return sub, nil
}
