// Package inference runs character-level diacritization models with ONNX
// Runtime.
package inference

import (
	"context"
	"fmt"
	"os"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

var (
	ortEnvOnce sync.Once
	ortEnvErr  error
)

// initORT initializes the ONNX Runtime environment once per process. The
// shared library path only takes effect on the first call.
func initORT(libraryPath string) error {
	ortEnvOnce.Do(func() {
		if libraryPath != "" {
			ort.SetSharedLibraryPath(libraryPath)
		}
		ortEnvErr = ort.InitializeEnvironment()
	})
	return ortEnvErr
}

// SessionConfig describes how to open a model.
type SessionConfig struct {
	InputName   string // int64 [1, seq] character ids
	OutputName  string // float32 [1, seq, classes] label logits
	LibraryPath string // onnxruntime shared library; empty uses the default lookup
	Threads     int    // intra-op threads; 0 lets ONNX Runtime decide
}

func (c SessionConfig) withDefaults() SessionConfig {
	if c.InputName == "" {
		c.InputName = "input_ids"
	}
	if c.OutputName == "" {
		c.OutputName = "logits"
	}
	return c
}

// Logits holds per-position label scores, row-major.
type Logits struct {
	Data    []float32
	SeqLen  int
	Classes int
}

// Row returns the scores of position i.
func (l Logits) Row(i int) []float32 {
	return l.Data[i*l.Classes : (i+1)*l.Classes]
}

// Session wraps an ONNX Runtime session for a diacritization model.
type Session struct {
	session *ort.DynamicAdvancedSession
	mu      sync.Mutex
	closed  bool
}

// NewSession creates a new ONNX session from a model file.
func NewSession(modelPath string, cfg SessionConfig) (*Session, error) {
	if _, err := os.Stat(modelPath); err != nil {
		return nil, fmt.Errorf("model file: %w", err)
	}

	cfg = cfg.withDefaults()

	if err := initORT(cfg.LibraryPath); err != nil {
		return nil, fmt.Errorf("initializing ONNX runtime: %w", err)
	}

	options, err := ort.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("creating session options: %w", err)
	}
	defer func() { _ = options.Destroy() }()

	if cfg.Threads > 0 {
		if err := options.SetIntraOpNumThreads(cfg.Threads); err != nil {
			return nil, fmt.Errorf("setting intra-op threads: %w", err)
		}
	}

	session, err := ort.NewDynamicAdvancedSession(
		modelPath,
		[]string{cfg.InputName},
		[]string{cfg.OutputName},
		options,
	)
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}

	return &Session{session: session}, nil
}

// Infer runs the model on one sequence of character ids.
func (s *Session) Infer(ctx context.Context, ids []int64) (Logits, error) {
	select {
	case <-ctx.Done():
		return Logits{}, ctx.Err()
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return Logits{}, ErrSessionClosed
	}

	seqLen := int64(len(ids))
	input, err := ort.NewTensor(ort.NewShape(1, seqLen), ids)
	if err != nil {
		return Logits{}, fmt.Errorf("creating input tensor: %w", err)
	}
	defer func() { _ = input.Destroy() }()

	outputs := []ort.Value{nil}
	if err := s.session.Run([]ort.Value{input}, outputs); err != nil {
		return Logits{}, fmt.Errorf("running inference: %w", err)
	}
	if outputs[0] == nil {
		return Logits{}, fmt.Errorf("%w: no output produced", ErrUnexpectedOutput)
	}
	defer func() { _ = outputs[0].Destroy() }()

	tensor, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return Logits{}, fmt.Errorf("%w: output is not float32", ErrUnexpectedOutput)
	}

	shape := tensor.GetShape()
	if len(shape) != 3 || shape[0] != 1 || shape[1] != seqLen || shape[2] <= 0 {
		return Logits{}, fmt.Errorf("%w: shape %v for %d inputs", ErrUnexpectedOutput, shape, seqLen)
	}

	classes := int(shape[2])
	data := make([]float32, int(seqLen)*classes)
	copy(data, tensor.GetData())

	return Logits{Data: data, SeqLen: int(seqLen), Classes: classes}, nil
}

// Close releases ONNX resources.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	if s.session != nil {
		return s.session.Destroy()
	}
	return nil
}
