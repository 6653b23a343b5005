package harakat

import "errors"

// Sentinel errors for conditions callers may need to handle differently.
var (
	// ErrNilEngine indicates an Evaluator was created without an engine.
	ErrNilEngine = errors.New("harakat: nil diacritization engine")

	// ErrInvalidSampleSize indicates a negative sample size.
	ErrInvalidSampleSize = errors.New("harakat: invalid sample size")

	// ErrEngineFailed wraps every error returned by a diacritization engine.
	ErrEngineFailed = errors.New("harakat: engine call failed")

	// ErrEnginePanic indicates the engine panicked during a call.
	ErrEnginePanic = errors.New("harakat: engine panicked")

	// ErrInvalidInput may be returned (wrapped) by engines that reject their
	// input. Such failures are reported under FailureInput.
	ErrInvalidInput = errors.New("harakat: invalid engine input")
)
