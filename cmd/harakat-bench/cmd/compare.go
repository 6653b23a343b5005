package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	harakat "github.com/jamesainslie/go-harakat"
	"github.com/jamesainslie/go-harakat/internal/config"
	"github.com/jamesainslie/go-harakat/internal/engine"
	"github.com/jamesainslie/go-harakat/internal/report"
)

var compareModels []string

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare several ONNX models on the same lines",
	Long: `Compare several ONNX models on the same lines, best DER first.
All models share the vocabulary given by --vocab. With --sample the sample is
drawn once and used for every model.

Example:
  harakat-bench compare --models small.onnx,base.onnx --sample 2000`,
	Args: cobra.NoArgs,
	RunE: runCompare,
}

func init() {
	compareCmd.Flags().StringSliceVar(&compareModels, "models", nil, "comma-separated ONNX model paths")
	_ = compareCmd.MarkFlagRequired("models")
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, _ []string) error {
	if cfg.Engine != config.EngineONNX {
		return fmt.Errorf("compare requires --engine %s", config.EngineONNX)
	}

	lines, err := loadCorpus()
	if err != nil {
		return err
	}
	header(headerWriter(cmd), len(lines))

	candidates := make([]harakat.Candidate, 0, len(compareModels))
	for _, model := range compareModels {
		eng, closer, err := engine.Open(cfg, model)
		if err != nil {
			return err
		}
		defer func() { _ = closer.Close() }()

		candidates = append(candidates, harakat.Candidate{Name: filepath.Base(model), Engine: eng})
	}

	results, err := harakat.Compare(cmd.Context(), lines, candidates, evaluatorOptions()...)
	if err != nil {
		return err
	}

	if cfg.JSON() {
		return report.ComparisonJSON(cmd.OutOrStdout(), results)
	}
	return report.Comparison(cmd.OutOrStdout(), results)
}
