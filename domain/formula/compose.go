package formula

import (
	"strings"

	"goglm/domain/core"
)

// Compose builds a formula string from variable roles.
//
// predictors accepts a single variable name or an ordered []string (an empty
// slice yields an outcome-only formula). interactions may be nil, a single
// raw interaction-term string ("x1:x2" or "x1*x2*x3"), or a []string of such
// terms; elements are inserted verbatim and are not re-validated here. Any
// other shape for either argument is an ErrType failure.
func Compose(outcome string, predictors any, interactions any) (string, error) {
	if strings.TrimSpace(outcome) == "" {
		return "", core.NewTypeError("`outcome`", "must be a non-empty string")
	}
	preds, err := normalizeArg("`predictors`", predictors)
	if err != nil {
		return "", err
	}
	ixs, err := normalizeArg("`interactions`", interactions)
	if err != nil {
		return "", err
	}

	terms := make([]string, 0, len(preds)+len(ixs))
	terms = append(terms, preds...)
	terms = append(terms, ixs...)
	return outcome + " " + outcomeSep + " " + strings.Join(terms, " "+termSep+" "), nil
}

// ComposeSpec renders a ModelSpec back into formula notation. Interaction
// terms are written with the explicit pairwise delimiter.
func ComposeSpec(spec ModelSpec) (string, error) {
	var ixs any
	if spec.HasInteractions() {
		terms := make([]string, len(spec.Interactions))
		for i, term := range spec.Interactions {
			terms[i] = strings.Join(term, pairwiseSep)
		}
		ixs = terms
	}
	return Compose(spec.Outcome, spec.Predictors, ixs)
}

// normalizeArg folds the loosely-typed string-or-slice arguments into a
// slice at the boundary. A nil argument folds to an empty slice.
func normalizeArg(field string, v any) ([]string, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case string:
		return []string{t}, nil
	case []string:
		return t, nil
	default:
		return nil, core.NewTypeError(field, "must be a string or []string")
	}
}
