package report

import (
	"strings"
	"testing"

	"goglm/domain/formula"
	"goglm/internal/descriptives"
)

func TestMarkdown_ContainsSections(t *testing.T) {
	r := &ModelReport{
		Name:    "dose response",
		Formula: "score ~ dose + group + dose:group",
		Spec: formula.ModelSpec{
			Outcome:      "score",
			Predictors:   []string{"dose", "group"},
			Interactions: [][]string{{"dose", "group"}},
		},
		Descriptives: &descriptives.Report{
			Numeric: map[string]descriptives.Summary{
				"score": {N: 10, Mean: 3.5, StdDev: 1.2, Min: 1, Median: 3.4, Max: 6},
			},
			Categorical: map[string]map[string]int{
				"group": {"control": 5, "treat": 5},
			},
		},
	}

	md := r.Markdown()
	for _, want := range []string{
		"# dose response",
		"`score ~ dose + group + dose:group`",
		"- Outcome: `score`",
		"`dose:group`",
		"| score | 10 |",
		"- control: 5",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("Markdown missing %q:\n%s", want, md)
		}
	}
}

func TestHTML_RendersTables(t *testing.T) {
	r := &ModelReport{
		Formula: "y ~ a",
		Spec:    formula.ModelSpec{Outcome: "y", Predictors: []string{"a"}},
		Descriptives: &descriptives.Report{
			Numeric: map[string]descriptives.Summary{"a": {N: 3, Mean: 1}},
		},
	}
	out := string(r.HTML())
	if !strings.Contains(out, "<table>") {
		t.Errorf("Expected an HTML table, got:\n%s", out)
	}
	if !strings.Contains(out, "<h1") {
		t.Errorf("Expected a heading, got:\n%s", out)
	}
}
