package inference

import "errors"

var (
	// ErrPoolClosed is returned by Acquire after Close.
	ErrPoolClosed = errors.New("inference: session pool closed")

	// ErrSessionClosed is returned by Infer after Close.
	ErrSessionClosed = errors.New("inference: session closed")

	// ErrVocabInvalid indicates a malformed vocabulary file.
	ErrVocabInvalid = errors.New("inference: invalid vocabulary")

	// ErrUnexpectedOutput indicates the model produced an output of the wrong
	// type or shape.
	ErrUnexpectedOutput = errors.New("inference: unexpected model output")
)
