// Command harakat-cli diacritizes Arabic text with the configured engine.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jamesainslie/go-harakat/internal/bench"
	"github.com/jamesainslie/go-harakat/internal/config"
	"github.com/jamesainslie/go-harakat/internal/engine"
	"github.com/jamesainslie/go-harakat/internal/report"
	"github.com/jamesainslie/go-harakat/tokenizer"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		cfgFile string
		gold    string
	)

	cmd := &cobra.Command{
		Use:   "harakat-cli [TEXT...]",
		Short: "Restore diacritics in Arabic text",
		Long: `harakat-cli restores diacritics in the text given as arguments, or in each
line of stdin when no arguments are given.

With --gold the diacritics are first removed from the gold line, the result is
diacritized and scored against the gold line.

Example:
  harakat-cli "ذهب الولد الى المدرسة"
  harakat-cli --gold "ذَهَبَ الوَلَدُ"
  harakat-cli --engine command --command "python3 diacritize.py" < input.txt`,
		Version:      fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := config.New(cfgFile)
			if err != nil {
				return err
			}
			for name, key := range map[string]string{
				"engine": "engine", "model": "model", "vocab": "vocab", "ort-lib": "ort_lib",
				"command": "command", "command-env": "command_env", "log-level": "log.level",
			} {
				if err := v.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
					return err
				}
			}
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			config.NewLogger(cfg.Log, cmd.ErrOrStderr())

			eng, closer, err := engine.Open(cfg, "")
			if err != nil {
				return err
			}
			defer func() { _ = closer.Close() }()

			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if gold != "" {
				predicted, err := eng.Diacritize(ctx, tokenizer.Strip(gold))
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Gold:      %s\nPredicted: %s\n\n", gold, predicted)
				return report.Line(out, bench.AlignAndScore(predicted, gold))
			}

			if len(args) > 0 {
				result, err := eng.Diacritize(ctx, strings.Join(args, " "))
				if err != nil {
					return err
				}
				fmt.Fprintln(out, result)
				return nil
			}

			return diacritizeLines(ctx, cmd.InOrStdin(), out, eng.Diacritize)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfgFile, "config", "", "YAML config file")
	flags.StringVar(&gold, "gold", "", "score the output against this diacritized line")
	flags.String("engine", config.EngineONNX, "engine: onnx or command")
	flags.String("model", "model.onnx", "ONNX model path")
	flags.String("vocab", "vocab.yaml", "vocabulary file for the ONNX model")
	flags.String("ort-lib", "", "onnxruntime shared library path")
	flags.String("command", "", "external diacritizer command line (engine=command)")
	flags.StringSlice("command-env", nil, "extra KEY=VALUE environment for the command engine")
	flags.String("log-level", "info", "log level: debug, info, warn, error")

	return cmd
}

func diacritizeLines(ctx context.Context, in io.Reader, out io.Writer, diacritize func(context.Context, string) (string, error)) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 16<<20)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			fmt.Fprintln(out)
			continue
		}
		result, err := diacritize(ctx, line)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, result)
	}
	return scanner.Err()
}
