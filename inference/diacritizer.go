package inference

import (
	"context"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	harakat "github.com/jamesainslie/go-harakat"
	"github.com/jamesainslie/go-harakat/tokenizer"
)

const (
	defaultMaxSeqLen = 512
	chunkOverlap     = 64
	defaultMaxInput  = 1 << 16
)

// inferer runs the model on a single chunk of ids.
type inferer interface {
	Infer(ctx context.Context, ids []int64) (Logits, error)
}

// Option configures a Diacritizer.
type Option func(*options)

type options struct {
	poolSize    int
	libraryPath string
	threads     int
	maxSeqLen   int
	maxInput    int
}

func defaultOptions() options {
	return options{
		poolSize:  1,
		maxSeqLen: defaultMaxSeqLen,
		maxInput:  defaultMaxInput,
	}
}

// WithPoolSize sets the number of ONNX sessions available to concurrent
// callers. Default: 1.
func WithPoolSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.poolSize = n
		}
	}
}

// WithLibraryPath sets the onnxruntime shared library to load.
func WithLibraryPath(path string) Option {
	return func(o *options) {
		o.libraryPath = path
	}
}

// WithThreads sets the intra-op thread count of each session.
func WithThreads(n int) Option {
	return func(o *options) {
		o.threads = n
	}
}

// WithMaxSeqLen sets the longest sequence fed to the model in one call.
// Longer inputs are processed in overlapping chunks. Default: 512.
func WithMaxSeqLen(n int) Option {
	return func(o *options) {
		if n > chunkOverlap {
			o.maxSeqLen = n
		}
	}
}

// WithMaxInputLength rejects inputs longer than n characters with
// harakat.ErrInvalidInput. Default: 65536.
func WithMaxInputLength(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxInput = n
		}
	}
}

// Diacritizer restores Arabic diacritics with a character-level ONNX
// classifier. It implements harakat.Diacritizer and is safe for concurrent
// use.
type Diacritizer struct {
	vocab   *Vocab
	pool    *Pool
	acquire func(ctx context.Context) (inferer, func(), error)
	opts    options
}

var _ harakat.Diacritizer = (*Diacritizer)(nil)

// NewDiacritizer loads a model and its vocabulary.
func NewDiacritizer(modelPath, vocabPath string, opts ...Option) (*Diacritizer, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	vocab, err := LoadVocab(vocabPath)
	if err != nil {
		return nil, err
	}

	pool, err := NewPool(modelPath, o.poolSize, SessionConfig{
		InputName:   vocab.InputName,
		OutputName:  vocab.OutputName,
		LibraryPath: o.libraryPath,
		Threads:     o.threads,
	})
	if err != nil {
		return nil, fmt.Errorf("creating session pool: %w", err)
	}

	d := newDiacritizer(vocab, o, func(ctx context.Context) (inferer, func(), error) {
		s, err := pool.Acquire(ctx)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { pool.Release(s) }, nil
	})
	d.pool = pool
	return d, nil
}

func newDiacritizer(vocab *Vocab, o options, acquire func(ctx context.Context) (inferer, func(), error)) *Diacritizer {
	return &Diacritizer{vocab: vocab, acquire: acquire, opts: o}
}

// Diacritize strips text of any existing marks and returns it with the
// predicted marks inserted after each character.
func (d *Diacritizer) Diacritize(ctx context.Context, text string) (string, error) {
	if !utf8.ValidString(text) {
		return "", fmt.Errorf("%w: invalid UTF-8", harakat.ErrInvalidInput)
	}

	runes := []rune(tokenizer.Strip(text))
	if len(runes) == 0 {
		return "", nil
	}
	if len(runes) > d.opts.maxInput {
		return "", fmt.Errorf("%w: %d characters exceeds limit of %d", harakat.ErrInvalidInput, len(runes), d.opts.maxInput)
	}

	logits, err := d.getLogits(ctx, d.vocab.Encode(runes))
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.Grow(len(runes) * 4)
	for i, r := range runes {
		b.WriteRune(r)
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteString(d.vocab.Label(argmax(logits.Row(i))))
	}
	return b.String(), nil
}

// getLogits runs the model over ids, splitting sequences longer than
// maxSeqLen into overlapping chunks and averaging the overlap.
func (d *Diacritizer) getLogits(ctx context.Context, ids []int64) (Logits, error) {
	session, release, err := d.acquire(ctx)
	if err != nil {
		return Logits{}, err
	}
	defer release()

	classes := d.vocab.NumLabels()
	maxSeqLen := d.opts.maxSeqLen

	if len(ids) <= maxSeqLen {
		return d.inferChunk(ctx, session, ids, classes)
	}

	sum := make([]float32, len(ids)*classes)
	counts := make([]int, len(ids))

	stride := maxSeqLen - chunkOverlap
	for start := 0; start < len(ids); start += stride {
		end := min(start+maxSeqLen, len(ids))

		chunk, err := d.inferChunk(ctx, session, ids[start:end], classes)
		if err != nil {
			return Logits{}, err
		}

		for i, v := range chunk.Data {
			sum[start*classes+i] += v
		}
		for i := start; i < end; i++ {
			counts[i]++
		}

		if end >= len(ids) {
			break
		}
	}

	for i, n := range counts {
		if n > 1 {
			row := sum[i*classes : (i+1)*classes]
			for j := range row {
				row[j] /= float32(n)
			}
		}
	}

	return Logits{Data: sum, SeqLen: len(ids), Classes: classes}, nil
}

func (d *Diacritizer) inferChunk(ctx context.Context, session inferer, ids []int64, classes int) (Logits, error) {
	logits, err := session.Infer(ctx, ids)
	if err != nil {
		return Logits{}, err
	}
	if logits.SeqLen != len(ids) || logits.Classes != classes || len(logits.Data) != len(ids)*classes {
		return Logits{}, fmt.Errorf("%w: got %dx%d, want %dx%d",
			ErrUnexpectedOutput, logits.SeqLen, logits.Classes, len(ids), classes)
	}
	return logits, nil
}

// Close releases all sessions.
func (d *Diacritizer) Close() error {
	if d.pool == nil {
		return nil
	}
	if err := d.pool.Close(); err != nil {
		return fmt.Errorf("closing session pool: %w", err)
	}
	return nil
}

func argmax(row []float32) int {
	best := 0
	for i := 1; i < len(row); i++ {
		if row[i] > row[best] {
			best = i
		}
	}
	return best
}
