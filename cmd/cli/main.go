package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"goglm/adapters/excel"
	"goglm/app"
	"goglm/domain/formula"
	"goglm/internal"
	"goglm/internal/simulation"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "goglm",
		Short: "goglm CLI for formula parsing, composition, and descriptives",
	}

	rootCmd.AddCommand(
		newParseCmd(),
		newComposeCmd(),
		newDescribeCmd(),
		newPowerCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse [formula]",
		Short: "Parse a formula into its structured specification",
		Long: `Parse a formula string into outcome, predictors, and interactions.

Example: goglm parse "score ~ dose + group + dose:group"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, warnings, err := formula.Parse(args[0])
			if err != nil {
				return err
			}
			for _, w := range warnings {
				fmt.Fprintf(os.Stderr, "warning: %s\n", w.Message)
			}
			return printJSON(spec)
		},
	}
}

func newComposeCmd() *cobra.Command {
	var interactions []string

	cmd := &cobra.Command{
		Use:   "compose [outcome] [predictors...]",
		Short: "Compose a formula from variable roles",
		Long: `Compose a formula string from an outcome and predictors.

Example: goglm compose score dose group --interaction dose:group`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var ixs any
			if len(interactions) > 0 {
				ixs = interactions
			}
			form, err := formula.Compose(args[0], args[1:], ixs)
			if err != nil {
				return err
			}
			fmt.Println(form)
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&interactions, "interaction", nil,
		"interaction term, e.g. x1:x2 or x1*x2*x3 (repeatable)")
	return cmd
}

func newDescribeCmd() *cobra.Command {
	var group string

	cmd := &cobra.Command{
		Use:   "describe [data-file] [formula]",
		Short: "Tabulate descriptives for a model over an xlsx/csv dataset",
		Long: `Load a dataset and print descriptives for the model's variables.

Example: goglm describe trial.csv "score ~ dose + group" --group group`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			service := app.NewRegressionService(internal.DefaultLogger)
			if err := service.LoadDataset(excel.NewDataReader(args[0])); err != nil {
				return err
			}
			if _, err := service.SetModel(args[1]); err != nil {
				return err
			}
			overall, grouped, err := service.Describe(group)
			if err != nil {
				return err
			}
			out := map[string]any{"overall": overall}
			if grouped != nil {
				out["groups"] = grouped
			}
			return printJSON(out)
		},
	}
	cmd.Flags().StringVar(&group, "group", "", "categorical column to group by")
	return cmd
}

func newPowerCmd() *cobra.Command {
	var (
		sizes      []int
		rate       float64
		threshold  float64
		alt        string
		pThreshold float64
		sims       int
		seed       uint64
	)

	cmd := &cobra.Command{
		Use:   "power",
		Short: "Monte Carlo power analysis for a binomial failure-rate design",
		Long: `Estimate power to detect a failure rate below a threshold.

Example: goglm power --n 50 --n 100 --rate 0.02 --threshold 0.1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			points, err := simulation.PowerBinomial(context.Background(), simulation.PowerConfig{
				SampleSizes:      sizes,
				FailureRate:      rate,
				FailureThreshold: threshold,
				Alternative:      alt,
				PThreshold:       pThreshold,
				Sims:             sims,
				Seed:             seed,
			})
			if err != nil {
				return err
			}
			var b strings.Builder
			fmt.Fprintf(&b, "%8s %10s\n", "N", "Power")
			for _, p := range points {
				fmt.Fprintf(&b, "%8d %10.3f\n", p.N, p.Power)
			}
			fmt.Print(b.String())
			return nil
		},
	}
	cmd.Flags().IntSliceVar(&sizes, "n", []int{50, 100, 200}, "sample sizes (repeatable)")
	cmd.Flags().Float64Var(&rate, "rate", 0.05, "true failure rate to simulate under")
	cmd.Flags().Float64Var(&threshold, "threshold", 0.10, "failure-rate threshold tested against")
	cmd.Flags().StringVar(&alt, "alternative", "less", "less, greater, or two-sided")
	cmd.Flags().Float64Var(&pThreshold, "p", 0.05, "significance level")
	cmd.Flags().IntVar(&sims, "sims", 10000, "simulations per sample size")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed")
	return cmd
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
