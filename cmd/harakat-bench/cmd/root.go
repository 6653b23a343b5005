// Package cmd contains the harakat-bench commands.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jamesainslie/go-harakat/internal/config"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  *slog.Logger
)

// flagKeys maps command-line flags to configuration keys.
var flagKeys = map[string]string{
	"file":        "file",
	"sample":      "sample",
	"verbose":     "verbose",
	"format":      "format",
	"engine":      "engine",
	"model":       "model",
	"vocab":       "vocab",
	"ort-lib":     "ort_lib",
	"pool-size":   "pool_size",
	"command":     "command",
	"command-env": "command_env",
	"timeout":     "timeout",
	"log-level":   "log.level",
	"log-format":  "log.format",
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "harakat-bench",
	Short: "Measure Arabic diacritization accuracy",
	Long: `harakat-bench strips the diacritics from every line of a gold corpus, asks a
diacritization engine to restore them and reports the diacritic error rate
(DER) and word error rate (WER), each with and without case endings.

Running 'harakat-bench' without a subcommand is the same as 'harakat-bench run'.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	RunE:              runEvaluate,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

// SetVersion records build information shown by --version.
func SetVersion(version, commit, date string) {
	rootCmd.Version = fmt.Sprintf("%s (commit %s, built %s)", version, commit, date)
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "YAML config file")
	flags.StringP("file", "f", "tashkeela_test.txt", "path to gold-standard test file")
	flags.IntP("sample", "s", 0, "evaluate on a random sample of N lines (0 = all)")
	flags.BoolP("verbose", "v", false, "log progress")
	flags.String("format", "text", "output format: text or json")
	flags.String("engine", config.EngineONNX, "engine: onnx or command")
	flags.String("model", "model.onnx", "ONNX model path")
	flags.String("vocab", "vocab.yaml", "vocabulary file for the ONNX model")
	flags.String("ort-lib", "", "onnxruntime shared library path")
	flags.Int("pool-size", 1, "number of ONNX sessions")
	flags.String("command", "", "external diacritizer command line (engine=command)")
	flags.StringSlice("command-env", nil, "extra KEY=VALUE environment for the command engine")
	flags.Duration("timeout", 0, "per-line engine deadline (0 = none)")
	flags.String("log-level", "info", "log level: debug, info, warn, error")
	flags.String("log-format", "text", "log format: text or json")
}

// loadConfig merges defaults, config file, HARAKAT_* env and flags.
func loadConfig(cmd *cobra.Command, _ []string) error {
	v, err := config.New(cfgFile)
	if err != nil {
		return err
	}
	if err := bindFlags(v, cmd.Flags()); err != nil {
		return err
	}

	cfg, err = config.Load(v)
	if err != nil {
		return err
	}
	logger = config.NewLogger(cfg.Log, os.Stderr)
	return nil
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding --%s: %w", name, err)
		}
	}
	return nil
}
