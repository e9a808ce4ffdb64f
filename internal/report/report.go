package report

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"goglm/domain/formula"
	"goglm/internal/descriptives"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// ModelReport gathers everything the report renders for one configured
// model: the formula, variable roles, descriptives, and correlations.
type ModelReport struct {
	Name         string
	Formula      string
	Spec         formula.ModelSpec
	Descriptives *descriptives.Report
	Correlations *descriptives.Matrix
}

// Markdown renders the report as a markdown document.
func (r *ModelReport) Markdown() string {
	var b strings.Builder

	title := r.Name
	if title == "" {
		title = "Model report"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "Formula: `%s`\n\n", r.Formula)

	fmt.Fprintf(&b, "## Variable roles\n\n")
	fmt.Fprintf(&b, "- Outcome: `%s`\n", r.Spec.Outcome)
	fmt.Fprintf(&b, "- Predictors: %s\n", backtickList(r.Spec.Predictors))
	if r.Spec.HasInteractions() {
		terms := make([]string, len(r.Spec.Interactions))
		for i, term := range r.Spec.Interactions {
			terms[i] = strings.Join(term, ":")
		}
		fmt.Fprintf(&b, "- Interactions: %s\n", backtickList(terms))
	}
	b.WriteString("\n")

	if r.Descriptives != nil && len(r.Descriptives.Numeric) > 0 {
		b.WriteString("## Descriptives\n\n")
		b.WriteString("| Variable | N | Missing | Mean | SD | Min | Median | Max |\n")
		b.WriteString("|---|---|---|---|---|---|---|---|\n")
		for _, v := range sortedKeys(r.Descriptives.Numeric) {
			s := r.Descriptives.Numeric[v]
			fmt.Fprintf(&b, "| %s | %d | %d | %.3f | %.3f | %.3f | %.3f | %.3f |\n",
				v, s.N, s.Missing, s.Mean, s.StdDev, s.Min, s.Median, s.Max)
		}
		b.WriteString("\n")
	}

	if r.Descriptives != nil && len(r.Descriptives.Categorical) > 0 {
		b.WriteString("## Value counts\n\n")
		for _, v := range sortedKeys(r.Descriptives.Categorical) {
			fmt.Fprintf(&b, "**%s**\n\n", v)
			counts := r.Descriptives.Categorical[v]
			for _, level := range sortedKeys(counts) {
				fmt.Fprintf(&b, "- %s: %d\n", level, counts[level])
			}
			b.WriteString("\n")
		}
	}

	if r.Correlations != nil {
		b.WriteString("## Correlations (Pearson r)\n\n")
		b.WriteString("| |" + strings.Join(r.Correlations.Variables, " | ") + " |\n")
		b.WriteString("|---" + strings.Repeat("|---", len(r.Correlations.Variables)) + "|\n")
		for i, v := range r.Correlations.Variables {
			cells := make([]string, len(r.Correlations.Variables))
			for j := range r.Correlations.Variables {
				cells[j] = formatR(r.Correlations.R[i][j])
			}
			fmt.Fprintf(&b, "| %s | %s |\n", v, strings.Join(cells, " | "))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// HTML renders the report's markdown to an HTML fragment.
func (r *ModelReport) HTML() []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.ToHTML([]byte(r.Markdown()), p, renderer)
}

func backtickList(items []string) string {
	if len(items) == 0 {
		return "(none)"
	}
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = "`" + item + "`"
	}
	return strings.Join(quoted, ", ")
}

func formatR(r float64) string {
	if math.IsNaN(r) {
		return "-"
	}
	return fmt.Sprintf("%.2f", r)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
