package harakat

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Diacritizer adds diacritic marks to Arabic text. Implementations receive
// text with no marks and return the same base characters with marks inserted.
type Diacritizer interface {
	Diacritize(ctx context.Context, text string) (string, error)
}

// DiacritizerFunc adapts a function to the Diacritizer interface.
type DiacritizerFunc func(ctx context.Context, text string) (string, error)

// Diacritize calls f.
func (f DiacritizerFunc) Diacritize(ctx context.Context, text string) (string, error) {
	return f(ctx, text)
}

// FailureKind classifies engine failures in the report.
type FailureKind string

const (
	FailureInput    FailureKind = "input"
	FailureTimeout  FailureKind = "timeout"
	FailurePanic    FailureKind = "panic"
	FailureInternal FailureKind = "internal"
)

// EngineFailure describes one failed engine call.
type EngineFailure struct {
	Kind FailureKind
	Err  error
}

func (f *EngineFailure) Error() string {
	return fmt.Sprintf("%s failure: %v", f.Kind, f.Err)
}

func (f *EngineFailure) Unwrap() error {
	return f.Err
}

// EngineResult is the outcome of one engine call: either Output or Failure.
type EngineResult struct {
	Output  string
	Failure *EngineFailure
}

// OK reports whether the call succeeded.
func (r EngineResult) OK() bool {
	return r.Failure == nil
}

// callEngine invokes the engine once, turning errors and panics into a
// classified failure.
func callEngine(ctx context.Context, engine Diacritizer, input string, timeout time.Duration) (res EngineResult) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	defer func() {
		if r := recover(); r != nil {
			res = EngineResult{Failure: &EngineFailure{
				Kind: FailurePanic,
				Err:  fmt.Errorf("%w: %v", ErrEnginePanic, r),
			}}
		}
	}()

	out, err := engine.Diacritize(ctx, input)
	if err != nil {
		return EngineResult{Failure: &EngineFailure{
			Kind: classify(err),
			Err:  fmt.Errorf("%w: %w", ErrEngineFailed, err),
		}}
	}
	return EngineResult{Output: out}
}

func classify(err error) FailureKind {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return FailureInput
	case errors.Is(err, context.DeadlineExceeded):
		return FailureTimeout
	default:
		return FailureInternal
	}
}
