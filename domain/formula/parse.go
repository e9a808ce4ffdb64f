package formula

import (
	"fmt"
	"sort"
	"strings"

	"goglm/domain/core"
)

// Parse parses a formula string ("y ~ x1 + x2 + x1:x2") into a ModelSpec.
//
// Plain terms become predictors in order of first appearance. Terms
// containing ':' are explicit pairwise interactions; terms containing '*'
// are shorthand multi-way groups and expand to every pairwise combination of
// their variables (a*b*c becomes a:b, a:c, b:c - never a three-way term).
// A term mixing both delimiters aborts the parse. Interaction terms are
// deduplicated by variable-set identity, and variables that appear only
// inside interaction terms are appended to the predictor list with a
// non-fatal Warning.
//
// Completeness of lower-order interactions (e.g. requiring a:b when a
// three-way group names a, b, and c) is not checked.
func Parse(formula string) (ModelSpec, []Warning, error) {
	parts := strings.Split(formula, outcomeSep)
	if len(parts) != 2 {
		return ModelSpec{}, nil, core.NewFormatError(
			"formula must be of the form 'outcome ~ term + term + ...'")
	}

	outcome := strings.TrimSpace(parts[0])
	rawTerms := strings.Split(parts[1], termSep)

	var (
		predictors []string
		candidates []string
	)
	seen := make(map[string]bool)
	for _, raw := range rawTerms {
		term := strings.TrimSpace(raw)
		if strings.Contains(term, pairwiseSep) || strings.Contains(term, shorthandSep) {
			candidates = append(candidates, term)
			continue
		}
		if term == "" || seen[term] {
			continue
		}
		seen[term] = true
		predictors = append(predictors, term)
	}

	spec := ModelSpec{Outcome: outcome, Predictors: predictors}
	if len(candidates) == 0 {
		return spec, nil, nil
	}

	terms, err := normalizeInteractions(candidates)
	if err != nil {
		return ModelSpec{}, nil, err
	}
	spec.Interactions = terms

	var warnings []Warning
	resolved, added := resolveImpliedPredictors(spec.Predictors, terms)
	spec.Predictors = resolved
	if len(added) > 0 {
		warnings = append(warnings, Warning{
			Code: WarnImpliedPredictors,
			Message: fmt.Sprintf("interaction variables %s added explicitly as predictors",
				strings.Join(added, ", ")),
			Variables: added,
		})
	}
	return spec, warnings, nil
}

// normalizeInteractions splits each candidate on its delimiter, expands
// shorthand groups to pairwise terms, and deduplicates by variable-set
// identity. Explicit pairwise terms are collected ahead of shorthand
// expansions, in order of appearance.
func normalizeInteractions(candidates []string) ([][]string, error) {
	var colonTerms, starGroups [][]string
	for _, c := range candidates {
		hasPair := strings.Contains(c, pairwiseSep)
		hasStar := strings.Contains(c, shorthandSep)
		if hasPair && hasStar {
			return nil, core.NewFormatError(fmt.Sprintf(
				"cannot include both '%s' and '%s' in the same interaction term: %q",
				pairwiseSep, shorthandSep, c))
		}
		if hasStar {
			starGroups = append(starGroups, splitTrim(c, shorthandSep))
		} else {
			colonTerms = append(colonTerms, splitTrim(c, pairwiseSep))
		}
	}

	terms := colonTerms
	for _, group := range starGroups {
		terms = append(terms, expandPairs(group)...)
	}
	return dedupTerms(terms), nil
}

// expandPairs returns all k-choose-2 unordered pairs of a shorthand group.
// Expansion deliberately stops at pairwise terms; callers needing genuine
// higher-order interactions must write them with the ':' delimiter.
func expandPairs(group []string) [][]string {
	var pairs [][]string
	for i := 0; i < len(group); i++ {
		for j := i + 1; j < len(group); j++ {
			pairs = append(pairs, []string{group[i], group[j]})
		}
	}
	return pairs
}

// dedupTerms canonicalizes each term to sorted order and keeps the first
// occurrence of each distinct variable set.
func dedupTerms(terms [][]string) [][]string {
	var out [][]string
	seen := make(map[string]bool)
	for _, term := range terms {
		canon := append([]string(nil), term...)
		sort.Strings(canon)
		key := strings.Join(canon, "\x1f")
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, canon)
	}
	return out
}

// resolveImpliedPredictors appends any variable referenced by an interaction
// term but missing from predictors, preserving the order in which missing
// variables are first encountered. The appended names are returned for the
// caller's warning.
func resolveImpliedPredictors(predictors []string, terms [][]string) ([]string, []string) {
	present := make(map[string]bool, len(predictors))
	for _, p := range predictors {
		present[p] = true
	}

	resolved := append([]string(nil), predictors...)
	var added []string
	for _, term := range terms {
		for _, v := range term {
			if present[v] {
				continue
			}
			present[v] = true
			resolved = append(resolved, v)
			added = append(added, v)
		}
	}
	return resolved, added
}

func splitTrim(s, sep string) []string {
	parts := strings.Split(s, sep)
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = strings.TrimSpace(p)
	}
	return out
}
