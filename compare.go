package harakat

import (
	"context"
	"fmt"
	"sort"
)

// Candidate is a named engine taking part in a comparison.
type Candidate struct {
	Name   string
	Engine Diacritizer
}

// CompareResult holds the report for one candidate.
type CompareResult struct {
	Name   string
	Report *Report
}

// Compare evaluates every candidate on the same lines and returns the results
// sorted by DER with case endings, best first. When a sample size is set the
// sample is drawn once and shared by all candidates.
func Compare(ctx context.Context, lines []string, candidates []Candidate, opts ...Option) ([]CompareResult, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.sampleSize < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSampleSize, cfg.sampleSize)
	}

	sampleSize := cfg.effectiveSampleSize(len(lines))
	shared := cfg.sample(lines)
	runOpts := append(append([]Option(nil), opts...), WithSampleSize(0))

	results := make([]CompareResult, 0, len(candidates))
	for _, c := range candidates {
		e, err := New(c.Engine, runOpts...)
		if err != nil {
			return nil, fmt.Errorf("candidate %s: %w", c.Name, err)
		}

		cfg.logger.Info("evaluating candidate", "name", c.Name, "lines", len(shared))
		report, err := e.Evaluate(ctx, shared)
		if err != nil {
			return nil, fmt.Errorf("candidate %s: %w", c.Name, err)
		}
		report.SampleSize = sampleSize

		results = append(results, CompareResult{Name: c.Name, Report: report})
	}

	sort.Slice(results, func(i, j int) bool {
		a, b := results[i].Report.DERWithCase.Value, results[j].Report.DERWithCase.Value
		if a != b {
			return a < b
		}
		return results[i].Name < results[j].Name
	})

	return results, nil
}
