package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	harakat "github.com/jamesainslie/go-harakat"
	"github.com/jamesainslie/go-harakat/internal/bench"
	"github.com/jamesainslie/go-harakat/internal/engine"
	"github.com/jamesainslie/go-harakat/internal/report"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Evaluate one engine against the gold corpus",
	Long: `Evaluate one engine against the gold corpus.

Example:
  harakat-bench run --file tashkeela_test.txt --sample 1000 --verbose
  harakat-bench run --engine command --command "python3 diacritize.py"`,
	Args: cobra.NoArgs,
	RunE: runEvaluate,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runEvaluate(cmd *cobra.Command, _ []string) error {
	lines, err := loadCorpus()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	header(headerWriter(cmd), len(lines))

	eng, closer, err := engine.Open(cfg, "")
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	rep, err := harakat.Evaluate(cmd.Context(), lines, eng, evaluatorOptions()...)
	if rep != nil {
		if rerr := render(out, rep); rerr != nil {
			return rerr
		}
	}
	return err
}

// loadCorpus reads the gold file, failing before any engine is built.
func loadCorpus() ([]string, error) {
	lines, err := bench.LoadCorpus(cfg.File)
	if errors.Is(err, bench.ErrCorpusNotFound) {
		return nil, fmt.Errorf("file not found: %s", cfg.File)
	}
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded corpus", "file", cfg.File, "lines", len(lines))
	return lines, nil
}

func evaluatorOptions() []harakat.Option {
	return []harakat.Option{
		harakat.WithSampleSize(cfg.Sample),
		harakat.WithLogger(logger),
		harakat.WithProgress(cfg.Verbose),
		harakat.WithCallTimeout(cfg.Timeout),
	}
}

// headerWriter keeps stdout clean for JSON output.
func headerWriter(cmd *cobra.Command) io.Writer {
	if cfg.JSON() {
		return cmd.ErrOrStderr()
	}
	return cmd.OutOrStdout()
}

func header(w io.Writer, lines int) {
	fmt.Fprintf(w, "Evaluating Harakat on: %s\n", cfg.File)
	if cfg.Sample > 0 && cfg.Sample < lines {
		fmt.Fprintf(w, "Using random sample of %d lines\n", cfg.Sample)
	}
	fmt.Fprintln(w)
}

func render(w io.Writer, rep *harakat.Report) error {
	if cfg.JSON() {
		return report.JSON(w, rep)
	}
	return report.Text(w, rep)
}
