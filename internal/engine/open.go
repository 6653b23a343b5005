package engine

import (
	"fmt"
	"io"

	harakat "github.com/jamesainslie/go-harakat"
	"github.com/jamesainslie/go-harakat/inference"
	"github.com/jamesainslie/go-harakat/internal/config"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open builds the engine selected by cfg. For the onnx engine model overrides
// cfg.Model when non-empty. The returned Closer releases engine resources.
func Open(cfg *config.Config, model string) (harakat.Diacritizer, io.Closer, error) {
	switch cfg.Engine {
	case config.EngineONNX:
		if model == "" {
			model = cfg.Model
		}
		d, err := inference.NewDiacritizer(model, cfg.Vocab,
			inference.WithPoolSize(cfg.PoolSize),
			inference.WithLibraryPath(cfg.ORTLib),
		)
		if err != nil {
			return nil, nil, fmt.Errorf("loading model %s: %w", model, err)
		}
		return d, d, nil

	case config.EngineCommand:
		c, err := ParseCommand(cfg.Command)
		if err != nil {
			return nil, nil, err
		}
		c.Env = cfg.CmdEnv
		return c, nopCloser{}, nil

	default:
		return nil, nil, fmt.Errorf("%w: unknown engine %q", config.ErrInvalid, cfg.Engine)
	}
}
