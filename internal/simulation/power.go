package simulation

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"sort"

	"goglm/domain/core"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat/distuv"
)

// Alternative hypotheses for the binomial test.
const (
	AlternativeLess     = "less"
	AlternativeGreater  = "greater"
	AlternativeTwoSided = "two-sided"
)

// PowerConfig parameterizes a Monte Carlo power analysis for whether an
// observed failure rate is significantly below (or above) a threshold.
type PowerConfig struct {
	SampleSizes      []int   `json:"sample_sizes"`
	FailureRate      float64 `json:"failure_rate"`      // true rate to simulate under
	FailureThreshold float64 `json:"failure_threshold"` // rate tested against
	Alternative      string  `json:"alternative"`       // less, greater, two-sided
	PThreshold       float64 `json:"p_threshold"`       // significance level for the exact test
	UseCounts        bool    `json:"use_counts"`        // significance = observed failures below threshold*n
	Dropout          float64 `json:"dropout"`           // expected attrition fraction in [0,1)
	Sims             int     `json:"sims"`
	Seed             uint64  `json:"seed"`
}

// PowerPoint is the estimated power at one sample size.
type PowerPoint struct {
	N            int     `json:"n"`
	NPostDropout float64 `json:"n_post_dropout"`
	Power        float64 `json:"power"`
}

// PowerBinomial estimates power at each sample size by simulating failure
// counts from Binomial(n, FailureRate) and testing them against
// FailureThreshold. Sample sizes run concurrently; results come back sorted
// by N.
func PowerBinomial(ctx context.Context, cfg PowerConfig) ([]PowerPoint, error) {
	if err := validatePowerConfig(&cfg); err != nil {
		return nil, err
	}

	points := make([]PowerPoint, len(cfg.SampleSizes))
	g, ctx := errgroup.WithContext(ctx)
	for i, n := range cfg.SampleSizes {
		g.Go(func() error {
			point, err := simulateSampleSize(ctx, cfg, n, cfg.Seed+uint64(i))
			if err != nil {
				return err
			}
			points[i] = point
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(points, func(i, j int) bool { return points[i].N < points[j].N })
	return points, nil
}

// SensitivityCell is the power curve for one (rate, threshold) combination.
type SensitivityCell struct {
	FailureRate      float64      `json:"failure_rate"`
	FailureThreshold float64      `json:"failure_threshold"`
	Points           []PowerPoint `json:"points"`
}

// PowerSensitivity runs the power analysis for every combination of the
// given failure rates and thresholds.
func PowerSensitivity(ctx context.Context, cfg PowerConfig, rates, thresholds []float64) ([]SensitivityCell, error) {
	var cells []SensitivityCell
	for _, rate := range rates {
		for _, threshold := range thresholds {
			c := cfg
			c.FailureRate = rate
			c.FailureThreshold = threshold
			points, err := PowerBinomial(ctx, c)
			if err != nil {
				return nil, err
			}
			cells = append(cells, SensitivityCell{
				FailureRate:      rate,
				FailureThreshold: threshold,
				Points:           points,
			})
		}
	}
	return cells, nil
}

func simulateSampleSize(ctx context.Context, cfg PowerConfig, n int, seed uint64) (PowerPoint, error) {
	src := rand.NewPCG(seed, seed+1)
	dist := distuv.Binomial{N: float64(n), P: cfg.FailureRate, Src: src}

	significant := 0
	for i := 0; i < cfg.Sims; i++ {
		if i%1024 == 0 {
			select {
			case <-ctx.Done():
				return PowerPoint{}, ctx.Err()
			default:
			}
		}
		fails := dist.Rand()
		if cfg.UseCounts {
			if fails < cfg.FailureThreshold*float64(n) {
				significant++
			}
			continue
		}
		p := binomialTestP(fails, n, cfg.FailureThreshold, cfg.Alternative)
		if p < cfg.PThreshold {
			significant++
		}
	}

	return PowerPoint{
		N:            n,
		NPostDropout: float64(n) * (1 - cfg.Dropout),
		Power:        float64(significant) / float64(cfg.Sims),
	}, nil
}

// binomialTestP is the exact binomial tail probability of observing `fails`
// failures in n trials under the threshold rate.
func binomialTestP(fails float64, n int, threshold float64, alternative string) float64 {
	null := distuv.Binomial{N: float64(n), P: threshold}
	lower := null.CDF(fails)
	upper := 1 - null.CDF(fails-1)
	switch alternative {
	case AlternativeGreater:
		return upper
	case AlternativeTwoSided:
		return math.Min(1, 2*math.Min(lower, upper))
	default:
		return lower
	}
}

func validatePowerConfig(cfg *PowerConfig) error {
	if len(cfg.SampleSizes) == 0 {
		return core.NewTypeError("`sample_sizes`", "must name at least one sample size")
	}
	for _, n := range cfg.SampleSizes {
		if n <= 0 {
			return core.NewTypeError("`sample_sizes`", "must be positive")
		}
	}
	if cfg.FailureRate < 0 || cfg.FailureRate > 1 {
		return core.NewTypeError("`failure_rate`", "must be in [0, 1]")
	}
	if cfg.FailureThreshold < 0 || cfg.FailureThreshold > 1 {
		return core.NewTypeError("`failure_threshold`", "must be in [0, 1]")
	}
	if cfg.Dropout < 0 || cfg.Dropout >= 1 {
		return core.NewTypeError("`dropout`", "must be in [0, 1)")
	}
	if cfg.Sims <= 0 {
		cfg.Sims = 10000
	}
	if cfg.PThreshold <= 0 {
		cfg.PThreshold = 0.05
	}
	switch cfg.Alternative {
	case "":
		cfg.Alternative = AlternativeLess
	case AlternativeLess, AlternativeGreater, AlternativeTwoSided:
	default:
		return core.NewTypeError("`alternative`",
			fmt.Sprintf("must be less, greater, or two-sided; got %q", cfg.Alternative))
	}
	return nil
}
