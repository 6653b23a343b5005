package harakat

import (
	"log/slog"
	"time"

	"github.com/samber/lo"
)

// Option configures an Evaluator.
type Option func(*config)

// Sampler draws n lines uniformly at random, without replacement.
type Sampler func(lines []string, n int) []string

// Progress is an intermediate snapshot of a running evaluation.
type Progress struct {
	Line           int // lines processed so far
	Total          int
	DERWithCase    float64
	Elapsed        time.Duration
	LinesPerSecond float64
}

// ProgressFunc receives progress snapshots.
type ProgressFunc func(Progress)

type config struct {
	sampleSize    int
	sampler       Sampler
	logger        *slog.Logger
	progress      bool
	progressEvery int
	progressFn    ProgressFunc
	callTimeout   time.Duration
	now           func() time.Time
}

func defaultConfig() config {
	return config{
		sampler:       defaultSampler,
		logger:        slog.Default(),
		progressEvery: 100,
		now:           time.Now,
	}
}

// sample applies the sample size to lines.
func (c config) sample(lines []string) []string {
	if c.effectiveSampleSize(len(lines)) == 0 {
		return lines
	}
	return c.sampler(lines, c.sampleSize)
}

// effectiveSampleSize returns the number of lines sample draws from a corpus
// of n lines, or 0 when the whole corpus is used.
func (c config) effectiveSampleSize(n int) int {
	if c.sampleSize <= 0 || c.sampleSize >= n {
		return 0
	}
	return c.sampleSize
}

func defaultSampler(lines []string, n int) []string {
	return lo.Samples(lines, n)
}

// WithSampleSize evaluates a random sample of n lines instead of the whole
// corpus. Zero (the default) or n >= len(lines) uses every line in order.
func WithSampleSize(n int) Option {
	return func(c *config) {
		c.sampleSize = n
	}
}

// WithSampler replaces the default uniform sampler.
func WithSampler(s Sampler) Option {
	return func(c *config) {
		if s != nil {
			c.sampler = s
		}
	}
}

// WithLogger sets the logger (default: slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithProgress enables progress snapshots, logged at info level.
func WithProgress(enabled bool) Option {
	return func(c *config) {
		c.progress = enabled
	}
}

// WithProgressEvery sets the snapshot cadence in lines (default: 100).
func WithProgressEvery(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.progressEvery = n
		}
	}
}

// WithProgressFunc delivers every snapshot to fn. It implies WithProgress(true).
func WithProgressFunc(fn ProgressFunc) Option {
	return func(c *config) {
		if fn != nil {
			c.progressFn = fn
			c.progress = true
		}
	}
}

// WithCallTimeout bounds each engine call. Zero disables the deadline.
func WithCallTimeout(d time.Duration) Option {
	return func(c *config) {
		if d >= 0 {
			c.callTimeout = d
		}
	}
}

// WithClock overrides the wall clock used for timing.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		if now != nil {
			c.now = now
		}
	}
}
