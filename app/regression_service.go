package app

import (
	"errors"
	"fmt"

	"goglm/domain/core"
	"goglm/domain/dataset"
	"goglm/domain/formula"
	"goglm/internal"
	"goglm/internal/descriptives"
	"goglm/internal/report"
	"goglm/ports"
)

// ModelRequest is the structured way to configure a model: variable roles
// rather than a formula string. Interaction terms use raw formula notation
// ("x1:x2" or "x1*x2*x3").
type ModelRequest struct {
	Outcome      string   `json:"outcome"`
	Predictors   []string `json:"predictors"`
	Interactions []string `json:"interactions,omitempty"`
}

// ConfiguredModel is a validated model: the spec, the formula it came from
// (or was composed into), and any parse warnings.
type ConfiguredModel struct {
	Spec     formula.ModelSpec `json:"spec"`
	Formula  string            `json:"formula"`
	Warnings []formula.Warning `json:"warnings,omitempty"`
}

// RegressionService is the model-configuration layer: it holds a dataset and
// a configured model and routes descriptives, correlation, and report
// requests for them. Model fitting itself is delegated to external tooling
// and is not performed here.
type RegressionService struct {
	log   *internal.Logger
	table *dataset.Table
	model *ConfiguredModel
}

// NewRegressionService creates a service without data or model; both are set
// later.
func NewRegressionService(log *internal.Logger) *RegressionService {
	if log == nil {
		log = internal.DefaultLogger
	}
	return &RegressionService{log: log}
}

// LoadDataset reads the dataset through the given reader.
func (s *RegressionService) LoadDataset(reader ports.DatasetReader) error {
	table, err := reader.Read()
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}
	s.table = table
	s.log.Info("loaded dataset: %d rows, %d columns", table.RowCount, len(table.Columns))
	return nil
}

// SetTable installs an already-built table (e.g. a simulated one).
func (s *RegressionService) SetTable(table *dataset.Table) {
	s.table = table
}

// Table returns the loaded dataset.
func (s *RegressionService) Table() (*dataset.Table, error) {
	if s.table == nil {
		return nil, core.ErrNoDataset
	}
	return s.table, nil
}

// SetModel configures the model from either a formula string or a
// structured request; anything else is an ErrType failure. Structured input
// is composed into formula notation and re-parsed, so both entry paths
// converge on the same validated spec.
func (s *RegressionService) SetModel(model any) (*ConfiguredModel, error) {
	var (
		form string
		err  error
	)
	switch m := model.(type) {
	case string:
		form = m
	case ModelRequest:
		form, err = composeRequest(m)
	case *ModelRequest:
		form, err = composeRequest(*m)
	case formula.ModelSpec:
		form, err = formula.ComposeSpec(m)
	case *formula.ModelSpec:
		form, err = formula.ComposeSpec(*m)
	default:
		return nil, core.NewTypeError("`model`",
			"must be a formula string, ModelRequest, or ModelSpec")
	}
	if err != nil {
		return nil, err
	}

	spec, warnings, err := formula.Parse(form)
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		s.log.Warn("%s", w.Message)
	}

	s.model = &ConfiguredModel{Spec: spec, Formula: form, Warnings: warnings}
	return s.model, nil
}

// Model returns the configured model.
func (s *RegressionService) Model() (*ConfiguredModel, error) {
	if s.model == nil {
		return nil, core.ErrNoModel
	}
	return s.model, nil
}

// Describe tabulates descriptives for the model's variables, optionally
// within each level of a grouping column.
func (s *RegressionService) Describe(group string) (*descriptives.Report, map[string]*descriptives.Report, error) {
	table, model, err := s.requireData()
	if err != nil {
		return nil, nil, err
	}

	vars := model.Spec.Variables()
	overall, err := descriptives.Describe(table, vars)
	if err != nil {
		return nil, nil, err
	}
	if group == "" {
		return overall, nil, nil
	}

	grouped, err := descriptives.DescribeBy(table, vars, group)
	if err != nil {
		return nil, nil, err
	}
	return overall, grouped, nil
}

// Correlate computes the Pearson correlation matrix over the model's
// numeric variables, outcome first.
func (s *RegressionService) Correlate() (*descriptives.Matrix, error) {
	table, model, err := s.requireData()
	if err != nil {
		return nil, err
	}

	var numeric []string
	for _, v := range model.Spec.Variables() {
		if _, ok := table.Numeric[v]; ok {
			numeric = append(numeric, v)
		}
	}
	if len(numeric) < 2 {
		return nil, fmt.Errorf("%w: correlation needs at least two numeric model variables",
			core.ErrInsufficientData)
	}
	return descriptives.CorrelationMatrix(table, numeric)
}

// Report builds the full model report (roles, descriptives, correlations).
func (s *RegressionService) Report(name string) (*report.ModelReport, error) {
	_, model, err := s.requireData()
	if err != nil {
		return nil, err
	}

	desc, _, err := s.Describe("")
	if err != nil {
		return nil, err
	}
	corr, err := s.Correlate()
	if err != nil {
		// A model whose variables are mostly categorical has no correlation
		// table; the report is still valid without one.
		if !errors.Is(err, core.ErrInsufficientData) {
			return nil, err
		}
		corr = nil
	}

	return &report.ModelReport{
		Name:         name,
		Formula:      model.Formula,
		Spec:         model.Spec,
		Descriptives: desc,
		Correlations: corr,
	}, nil
}

func (s *RegressionService) requireData() (*dataset.Table, *ConfiguredModel, error) {
	table, err := s.Table()
	if err != nil {
		return nil, nil, err
	}
	model, err := s.Model()
	if err != nil {
		return nil, nil, err
	}
	if missing, ok := table.HasAll(model.Spec.Variables()); !ok {
		return nil, nil, core.NewNotFoundError("model variable", missing)
	}
	return table, model, nil
}

func composeRequest(req ModelRequest) (string, error) {
	var ixs any
	if len(req.Interactions) > 0 {
		ixs = req.Interactions
	}
	return formula.Compose(req.Outcome, req.Predictors, ixs)
}
