// Package config loads harakat-bench and harakat-cli settings from flags,
// HARAKAT_* environment variables and an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. HARAKAT_FILE.
const EnvPrefix = "HARAKAT"

// Engine kinds.
const (
	EngineONNX    = "onnx"
	EngineCommand = "command"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config holds the settings shared by the command-line tools.
type Config struct {
	File    string `mapstructure:"file"`
	Sample  int    `mapstructure:"sample"`
	Verbose bool   `mapstructure:"verbose"`
	Format  string `mapstructure:"format"`

	Engine   string        `mapstructure:"engine"`
	Model    string        `mapstructure:"model"`
	Vocab    string        `mapstructure:"vocab"`
	ORTLib   string        `mapstructure:"ort_lib"`
	PoolSize int           `mapstructure:"pool_size"`
	Command  string        `mapstructure:"command"`
	CmdEnv   []string      `mapstructure:"command_env"`
	Timeout  time.Duration `mapstructure:"timeout"`

	Log LogConfig `mapstructure:"log"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("file", "tashkeela_test.txt")
	v.SetDefault("sample", 0)
	v.SetDefault("verbose", false)
	v.SetDefault("format", "text")
	v.SetDefault("engine", EngineONNX)
	v.SetDefault("model", "model.onnx")
	v.SetDefault("vocab", "vocab.yaml")
	v.SetDefault("ort_lib", "")
	v.SetDefault("pool_size", 1)
	v.SetDefault("command", "")
	v.SetDefault("command_env", []string{})
	v.SetDefault("timeout", time.Duration(0))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// New returns a viper instance with defaults and environment binding.
// When path is non-empty the YAML file is read as well.
func New(path string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	return v, nil
}

// Load decodes and validates the settings held by v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges and the settings the selected engine needs.
func (c *Config) Validate() error {
	if c.Sample < 0 {
		return fmt.Errorf("%w: sample must be >= 0 (got %d)", ErrInvalid, c.Sample)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("%w: timeout must be >= 0 (got %s)", ErrInvalid, c.Timeout)
	}

	switch strings.ToLower(c.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: format must be text or json (got %q)", ErrInvalid, c.Format)
	}

	switch c.Engine {
	case EngineONNX:
		if c.Model == "" || c.Vocab == "" {
			return fmt.Errorf("%w: onnx engine needs model and vocab", ErrInvalid)
		}
		if c.PoolSize < 1 {
			return fmt.Errorf("%w: pool_size must be >= 1 (got %d)", ErrInvalid, c.PoolSize)
		}
	case EngineCommand:
		if strings.TrimSpace(c.Command) == "" {
			return fmt.Errorf("%w: command engine needs command", ErrInvalid)
		}
		for _, kv := range c.CmdEnv {
			if !strings.Contains(kv, "=") {
				return fmt.Errorf("%w: command_env entry %q is not KEY=VALUE", ErrInvalid, kv)
			}
		}
	default:
		return fmt.Errorf("%w: unknown engine %q", ErrInvalid, c.Engine)
	}

	return nil
}

// JSON reports whether machine-readable output was requested.
func (c *Config) JSON() bool {
	return strings.EqualFold(c.Format, "json")
}
