package formula

import (
	"reflect"
	"testing"

	"goglm/domain/core"
)

func TestParse_BasicFormula(t *testing.T) {
	spec, warnings, err := Parse("y ~ a + b")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if spec.Outcome != "y" {
		t.Errorf("Expected outcome 'y', got %q", spec.Outcome)
	}
	if !reflect.DeepEqual(spec.Predictors, []string{"a", "b"}) {
		t.Errorf("Expected predictors [a b], got %v", spec.Predictors)
	}
	if spec.Interactions != nil {
		t.Errorf("Expected nil interactions, got %v", spec.Interactions)
	}
	if len(warnings) != 0 {
		t.Errorf("Expected no warnings, got %v", warnings)
	}
}

func TestParse_WhitespaceInsignificant(t *testing.T) {
	spec, _, err := Parse("  y~ a +b  +  a : b ")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if spec.Outcome != "y" {
		t.Errorf("Expected outcome 'y', got %q", spec.Outcome)
	}
	if !reflect.DeepEqual(spec.Predictors, []string{"a", "b"}) {
		t.Errorf("Expected predictors [a b], got %v", spec.Predictors)
	}
	if !reflect.DeepEqual(spec.Interactions, [][]string{{"a", "b"}}) {
		t.Errorf("Expected interactions [[a b]], got %v", spec.Interactions)
	}
}

func TestParse_DuplicatePredictorsCollapse(t *testing.T) {
	spec, _, err := Parse("y ~ a + b + a + a")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !reflect.DeepEqual(spec.Predictors, []string{"a", "b"}) {
		t.Errorf("Expected predictors [a b], got %v", spec.Predictors)
	}
}

func TestParse_MissingSeparator(t *testing.T) {
	_, _, err := Parse("y + a")
	if err == nil {
		t.Fatal("Expected error for formula without '~'")
	}
	if !core.IsFormatError(err) {
		t.Errorf("Expected format error, got %v", err)
	}
}

func TestParse_RepeatedSeparator(t *testing.T) {
	_, _, err := Parse("y ~ a ~ b")
	if err == nil {
		t.Fatal("Expected error for formula with two '~'")
	}
	if !core.IsFormatError(err) {
		t.Errorf("Expected format error, got %v", err)
	}
}

func TestParse_InteractionTermIdentityIgnoresOrder(t *testing.T) {
	left, _, err := Parse("y ~ a + b + a:b")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	right, _, err := Parse("y ~ a + b + b:a")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !reflect.DeepEqual(left.Interactions, right.Interactions) {
		t.Errorf("a:b and b:a should normalize identically, got %v vs %v",
			left.Interactions, right.Interactions)
	}
}

func TestParse_DuplicateInteractionTermsCollapse(t *testing.T) {
	spec, _, err := Parse("y ~ a + b + a:b + b:a + a*b")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(spec.Interactions) != 1 {
		t.Fatalf("Expected 1 interaction term after dedup, got %d: %v",
			len(spec.Interactions), spec.Interactions)
	}
	if !reflect.DeepEqual(spec.Interactions[0], []string{"a", "b"}) {
		t.Errorf("Expected term [a b], got %v", spec.Interactions[0])
	}
}

func TestParse_ShorthandExpandsToPairsOnly(t *testing.T) {
	spec, warnings, err := Parse("y ~ a + b + c + a*b*c")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	expected := [][]string{{"a", "b"}, {"a", "c"}, {"b", "c"}}
	if len(spec.Interactions) != 3 {
		t.Fatalf("Expected exactly 3 pairwise terms (no 3-way term), got %d: %v",
			len(spec.Interactions), spec.Interactions)
	}
	for _, want := range expected {
		if !containsTerm(spec.Interactions, want) {
			t.Errorf("Expected term %v in %v", want, spec.Interactions)
		}
	}
	if !reflect.DeepEqual(spec.Predictors, []string{"a", "b", "c"}) {
		t.Errorf("Expected predictors [a b c], got %v", spec.Predictors)
	}
	if len(warnings) != 0 {
		t.Errorf("All variables already predictors, expected no warnings, got %v", warnings)
	}
}

func TestParse_ImpliedPredictorAddedWithWarning(t *testing.T) {
	spec, warnings, err := Parse("y ~ a + a:d")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !reflect.DeepEqual(spec.Predictors, []string{"a", "d"}) {
		t.Errorf("Expected predictors [a d], got %v", spec.Predictors)
	}
	if len(warnings) != 1 {
		t.Fatalf("Expected 1 warning, got %d", len(warnings))
	}
	w := warnings[0]
	if w.Code != WarnImpliedPredictors {
		t.Errorf("Expected warning code %q, got %q", WarnImpliedPredictors, w.Code)
	}
	if !reflect.DeepEqual(w.Variables, []string{"d"}) {
		t.Errorf("Expected warning to name [d], got %v", w.Variables)
	}
}

func TestParse_ImpliedPredictorsFollowScanOrder(t *testing.T) {
	spec, warnings, err := Parse("y ~ a + a:f + a:d")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !reflect.DeepEqual(spec.Predictors, []string{"a", "f", "d"}) {
		t.Errorf("Expected predictors [a f d], got %v", spec.Predictors)
	}
	if len(warnings) != 1 || !reflect.DeepEqual(warnings[0].Variables, []string{"f", "d"}) {
		t.Errorf("Expected one warning naming [f d], got %v", warnings)
	}
}

func TestParse_MixedDelimitersRejected(t *testing.T) {
	_, _, err := Parse("y ~ a + b + a:b*c")
	if err == nil {
		t.Fatal("Expected error for term mixing ':' and '*'")
	}
	if !core.IsFormatError(err) {
		t.Errorf("Expected format error, got %v", err)
	}
}

func TestParse_MixedDelimiterTermAbortsWholeParse(t *testing.T) {
	// The other terms are well-formed but no partial spec may be returned.
	spec, warnings, err := Parse("y ~ a + b + a:b + b:c*a")
	if err == nil {
		t.Fatal("Expected error for malformed term in otherwise valid formula")
	}
	if spec.Outcome != "" || spec.Predictors != nil || spec.Interactions != nil {
		t.Errorf("Expected zero-value spec on failure, got %+v", spec)
	}
	if warnings != nil {
		t.Errorf("Expected no warnings on failure, got %v", warnings)
	}
}

func TestParse_RoundTripWithoutInteractions(t *testing.T) {
	specs := []ModelSpec{
		{Outcome: "y", Predictors: []string{"a"}},
		{Outcome: "score", Predictors: []string{"age", "dose", "group"}},
	}
	for _, original := range specs {
		form, err := ComposeSpec(original)
		if err != nil {
			t.Fatalf("ComposeSpec(%+v) failed: %v", original, err)
		}
		parsed, _, err := Parse(form)
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", form, err)
		}
		if !reflect.DeepEqual(parsed, original) {
			t.Errorf("Round trip of %+v via %q yielded %+v", original, form, parsed)
		}
	}
}

func containsTerm(terms [][]string, want []string) bool {
	for _, term := range terms {
		if reflect.DeepEqual(term, want) {
			return true
		}
	}
	return false
}
