package formula

// Separator tokens of the formula notation.
const (
	outcomeSep   = "~"
	termSep      = "+"
	pairwiseSep  = ":"
	shorthandSep = "*"
)

// ModelSpec is the structured form of a regression formula: a single outcome
// variable, an ordered list of unique predictors, and optional interaction
// terms. Each interaction term is an unordered set of variable names, held in
// canonical (sorted) order so structural equality matches set equality.
// Interactions is nil when the formula has no interaction terms.
type ModelSpec struct {
	Outcome      string     `json:"outcome"`
	Predictors   []string   `json:"predictors"`
	Interactions [][]string `json:"interactions,omitempty"`
}

// HasInteractions reports whether the model includes any interaction terms.
func (s ModelSpec) HasInteractions() bool {
	return len(s.Interactions) > 0
}

// Variables returns the outcome followed by all predictors.
func (s ModelSpec) Variables() []string {
	vars := make([]string, 0, len(s.Predictors)+1)
	vars = append(vars, s.Outcome)
	vars = append(vars, s.Predictors...)
	return vars
}

// Warning codes emitted by Parse.
const (
	WarnImpliedPredictors = "implied_predictors"
)

// Warning is a non-fatal parse diagnostic. Warnings never abort a parse;
// callers decide whether and how to surface them.
type Warning struct {
	Code      string   `json:"code"`
	Message   string   `json:"message"`
	Variables []string `json:"variables,omitempty"`
}
