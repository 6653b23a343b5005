package harakat

import (
	"context"
	"fmt"
	"time"

	"github.com/texttheater/golang-levenshtein/levenshtein"

	"github.com/jamesainslie/go-harakat/internal/bench"
	"github.com/jamesainslie/go-harakat/tokenizer"
)

// maxDriftRunes bounds the line length for which the base-text edit distance
// is computed; the distance matrix is quadratic in line length.
const maxDriftRunes = 1024

// Evaluator scores a diacritization engine against gold-standard lines.
// An Evaluator holds no per-run state and may be reused; each Evaluate call
// starts from zero.
type Evaluator struct {
	engine Diacritizer
	cfg    config
}

// New creates an Evaluator for engine.
func New(engine Diacritizer, opts ...Option) (*Evaluator, error) {
	if engine == nil {
		return nil, ErrNilEngine
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.sampleSize < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSampleSize, cfg.sampleSize)
	}

	return &Evaluator{engine: engine, cfg: cfg}, nil
}

// Evaluate is shorthand for New followed by Evaluator.Evaluate.
func Evaluate(ctx context.Context, lines []string, engine Diacritizer, opts ...Option) (*Report, error) {
	e, err := New(engine, opts...)
	if err != nil {
		return nil, err
	}
	return e.Evaluate(ctx, lines)
}

// run is the mutable state of one evaluation.
type run struct {
	counters         bench.Counters
	processingErrors int
	failures         map[FailureKind]int
	baseEditDistance int
	linesBaseAltered int
	sampleSize       int
}

// Evaluate strips every gold line, diacritizes it with the engine and scores
// the result against the gold line.
//
// A failed engine call excludes its line from scoring and is counted in
// Report.ProcessingErrors; it never ends the run. If ctx is canceled the run
// stops between lines and the partial report is returned with ctx.Err().
func (e *Evaluator) Evaluate(ctx context.Context, lines []string) (*Report, error) {
	r := &run{
		failures:   make(map[FailureKind]int),
		sampleSize: e.cfg.effectiveSampleSize(len(lines)),
	}
	lines = e.cfg.sample(lines)

	start := e.cfg.now()

	for i, gold := range lines {
		if err := ctx.Err(); err != nil {
			return e.report(r, i, start), err
		}

		input := tokenizer.Strip(gold)
		res := callEngine(ctx, e.engine, input, e.cfg.callTimeout)
		if !res.OK() {
			if err := ctx.Err(); err != nil {
				return e.report(r, i+1, start), err
			}
			r.processingErrors++
			r.failures[res.Failure.Kind]++
			e.cfg.logger.Debug("engine call failed",
				"line", i+1,
				"kind", string(res.Failure.Kind),
				"error", res.Failure.Err,
			)
		} else {
			r.observeDrift(input, res.Output)
			r.counters = r.counters.Add(bench.AlignAndScore(res.Output, gold))
		}

		if e.cfg.progress && (i+1)%e.cfg.progressEvery == 0 {
			e.emitProgress(r, i+1, len(lines), start)
		}
	}

	return e.report(r, len(lines), start), nil
}

func (e *Evaluator) emitProgress(r *run, done, total int, start time.Time) {
	elapsed := e.cfg.now().Sub(start)
	p := Progress{
		Line:           done,
		Total:          total,
		DERWithCase:    r.counters.DERWithCase(),
		Elapsed:        elapsed,
		LinesPerSecond: throughput(done, elapsed),
	}

	attrs := []any{"line", done, "total", total}
	if r.counters.CharTotalWithCase > 0 {
		attrs = append(attrs, "der", fmt.Sprintf("%.2f%%", 100*p.DERWithCase))
	}
	e.cfg.logger.Info("evaluating", attrs...)

	if e.cfg.progressFn != nil {
		e.cfg.progressFn(p)
	}
}

// report builds the report of a run that attempted the given number of lines.
func (e *Evaluator) report(r *run, lines int, start time.Time) *Report {
	elapsed := e.cfg.now().Sub(start)
	c := r.counters

	failures := make(map[FailureKind]int, len(r.failures))
	for k, v := range r.failures {
		failures[k] = v
	}

	return &Report{
		LinesProcessed:   lines,
		LinesSkipped:     c.Skipped,
		ProcessingErrors: r.processingErrors,
		FailuresByKind:   failures,
		DERWithCase:      newRate(c.CharErrorsWithCase, c.CharTotalWithCase),
		DERNoCase:        newRate(c.CharErrorsNoCase, c.CharTotalNoCase),
		WERWithCase:      newRate(c.WordErrorsWithCase, c.WordTotal),
		WERNoCase:        newRate(c.WordErrorsNoCase, c.WordTotal),
		WordTotal:        c.WordTotal,
		SampleSize:       r.sampleSize,
		BaseEditDistance: r.baseEditDistance,
		LinesBaseAltered: r.linesBaseAltered,
		Elapsed:          elapsed,
		LinesPerSecond:   throughput(lines, elapsed),
	}
}

// observeDrift records how far the engine moved away from the base text it
// was given. It does not influence scoring.
func (r *run) observeDrift(input, output string) {
	want := tokenizer.Undiacritize(input)
	got := tokenizer.Undiacritize(output)
	if want == got {
		return
	}

	r.linesBaseAltered++

	a, b := []rune(want), []rune(got)
	if len(a) > maxDriftRunes || len(b) > maxDriftRunes {
		return
	}
	r.baseEditDistance += levenshtein.DistanceForStrings(a, b, levenshtein.DefaultOptionsWithSub)
}

func throughput(lines int, elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}
	return float64(lines) / elapsed.Seconds()
}

