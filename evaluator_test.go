package harakat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamesainslie/go-harakat/tokenizer"
)

var goldCorpus = []string{
	"الكِتابُ كَبيرٌ",
	"كَتَبَ الوَلَدُ الدَّرْسَ",
	"ذَهَبَ الطّالِبُ إِلى المَدْرَسَةِ",
	"قَرَأْتُ الجَريدَةَ صَباحًا",
	"الطَّقْسُ جَميلٌ اليَوْمَ",
}

// oracle returns the gold line for every stripped input it knows.
func oracle(lines []string) DiacritizerFunc {
	gold := make(map[string]string, len(lines))
	for _, l := range lines {
		gold[tokenizer.Strip(l)] = l
	}
	return func(_ context.Context, text string) (string, error) {
		if g, ok := gold[text]; ok {
			return g, nil
		}
		return text, nil
	}
}

// identity returns its input unchanged, i.e. predicts no marks at all.
var identity = DiacritizerFunc(func(_ context.Context, text string) (string, error) {
	return text, nil
})

type stepClock struct {
	t    time.Time
	step time.Duration
}

func (c *stepClock) now() time.Time {
	c.t = c.t.Add(c.step)
	return c.t
}

func fixedClock() func() time.Time {
	t := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time { return t }
}

func TestNew(t *testing.T) {
	e, err := New(identity)
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.Equal(t, 100, e.cfg.progressEvery)
	assert.Zero(t, e.cfg.sampleSize)
}

func TestNew_NilEngine(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrNilEngine)
}

func TestNew_NegativeSampleSize(t *testing.T) {
	_, err := New(identity, WithSampleSize(-1))
	assert.ErrorIs(t, err, ErrInvalidSampleSize)
}

func TestEvaluate_PerfectEngine(t *testing.T) {
	report, err := Evaluate(context.Background(), goldCorpus, oracle(goldCorpus), WithClock(fixedClock()))
	require.NoError(t, err)

	assert.Equal(t, len(goldCorpus), report.LinesProcessed)
	assert.Zero(t, report.ProcessingErrors)
	assert.Zero(t, report.LinesSkipped)
	assert.Equal(t, 15, report.WordTotal)
	assert.Zero(t, report.DERWithCase.Errors)
	assert.Positive(t, report.DERWithCase.Total)
	assert.Zero(t, report.DERWithCase.Value)
	assert.Zero(t, report.WERNoCase.Value)
	assert.Less(t, report.DERNoCase.Total, report.DERWithCase.Total)
}

func TestEvaluate_UndiacritizedEngine(t *testing.T) {
	report, err := Evaluate(context.Background(), goldCorpus[:1], identity)
	require.NoError(t, err)

	assert.Equal(t, Rate{Errors: 4, Total: 10, Value: 0.4}, report.DERWithCase)
	assert.Equal(t, Rate{Errors: 2, Total: 8, Value: 0.25}, report.DERNoCase)
	assert.Equal(t, Rate{Errors: 2, Total: 2, Value: 1}, report.WERWithCase)
	assert.Equal(t, Rate{Errors: 2, Total: 2, Value: 1}, report.WERNoCase)
	assert.Equal(t, 2, report.WordTotal)
}

func TestEvaluate_EngineFailures(t *testing.T) {
	perfect := oracle(goldCorpus)
	failing := tokenizer.Strip(goldCorpus[1])
	rejected := tokenizer.Strip(goldCorpus[2])
	panicking := tokenizer.Strip(goldCorpus[3])

	engine := DiacritizerFunc(func(ctx context.Context, text string) (string, error) {
		switch text {
		case failing:
			return "", errors.New("model exploded")
		case rejected:
			return "", fmt.Errorf("too long: %w", ErrInvalidInput)
		case panicking:
			panic("index out of range")
		}
		return perfect(ctx, text)
	})

	report, err := Evaluate(context.Background(), goldCorpus, engine)
	require.NoError(t, err)

	assert.Equal(t, len(goldCorpus), report.LinesProcessed)
	assert.Equal(t, 3, report.ProcessingErrors)
	assert.Equal(t, map[FailureKind]int{
		FailureInternal: 1,
		FailureInput:    1,
		FailurePanic:    1,
	}, report.FailuresByKind)
	assert.Equal(t, 5, report.WordTotal) // lines 0 and 4 only
	assert.Zero(t, report.DERWithCase.Errors)
}

func TestEvaluate_AllLinesFail(t *testing.T) {
	engine := DiacritizerFunc(func(context.Context, string) (string, error) {
		return "", errors.New("unavailable")
	})

	report, err := Evaluate(context.Background(), goldCorpus, engine)
	require.NoError(t, err)

	assert.Equal(t, len(goldCorpus), report.ProcessingErrors)
	assert.Equal(t, Rate{}, report.DERWithCase)
	assert.Equal(t, Rate{}, report.DERNoCase)
	assert.Equal(t, Rate{}, report.WERWithCase)
	assert.Equal(t, Rate{}, report.WERNoCase)
}

func TestEvaluate_EmptyCorpus(t *testing.T) {
	report, err := Evaluate(context.Background(), nil, identity, WithClock(fixedClock()))
	require.NoError(t, err)

	assert.Zero(t, report.LinesProcessed)
	assert.Zero(t, report.DERWithCase.Value)
	assert.Zero(t, report.WERWithCase.Value)
	assert.Zero(t, report.LinesPerSecond)
	assert.Zero(t, report.Elapsed)
}

func TestEvaluate_CallTimeout(t *testing.T) {
	slow := tokenizer.Strip(goldCorpus[0])
	perfect := oracle(goldCorpus)
	engine := DiacritizerFunc(func(ctx context.Context, text string) (string, error) {
		if text == slow {
			<-ctx.Done()
			return "", ctx.Err()
		}
		return perfect(ctx, text)
	})

	report, err := Evaluate(context.Background(), goldCorpus, engine, WithCallTimeout(10*time.Millisecond))
	require.NoError(t, err)

	assert.Equal(t, 1, report.ProcessingErrors)
	assert.Equal(t, 1, report.FailuresByKind[FailureTimeout])
	assert.Equal(t, 13, report.WordTotal)
}

func TestEvaluate_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	calls := 0
	engine := DiacritizerFunc(func(_ context.Context, text string) (string, error) {
		calls++
		if calls == 2 {
			cancel()
		}
		return text, nil
	})

	report, err := Evaluate(ctx, goldCorpus, engine)
	require.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, report)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 2, report.LinesProcessed)
	assert.Zero(t, report.ProcessingErrors)
}

func TestEvaluate_ContextCanceledDuringCall(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	calls := 0
	engine := DiacritizerFunc(func(ctx context.Context, text string) (string, error) {
		calls++
		if calls == 3 {
			cancel()
			return "", ctx.Err()
		}
		return text, nil
	})

	report, err := Evaluate(ctx, goldCorpus, engine, WithClock(fixedClock()))
	require.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, report)
	assert.Equal(t, 3, report.LinesProcessed)
	assert.Zero(t, report.ProcessingErrors)
	assert.Equal(t, 5, report.WordTotal)
}

func TestEvaluate_Sampling(t *testing.T) {
	report, err := Evaluate(context.Background(), goldCorpus, identity, WithSampleSize(2))
	require.NoError(t, err)
	assert.Equal(t, 2, report.LinesProcessed)
	assert.Equal(t, 2, report.SampleSize)

	var sampledFrom []string
	sampler := func(lines []string, n int) []string {
		sampledFrom = lines
		return lines[len(lines)-n:]
	}
	seen := make(map[string]bool)
	engine := DiacritizerFunc(func(_ context.Context, text string) (string, error) {
		seen[text] = true
		return text, nil
	})

	_, err = Evaluate(context.Background(), goldCorpus, engine, WithSampleSize(2), WithSampler(sampler))
	require.NoError(t, err)
	assert.Equal(t, goldCorpus, sampledFrom)
	assert.Len(t, seen, 2)
	assert.True(t, seen[tokenizer.Strip(goldCorpus[4])])
}

func TestEvaluate_SampleLargerThanCorpusIsDeterministic(t *testing.T) {
	sampler := func([]string, int) []string {
		t.Fatal("sampler must not run when the corpus fits the sample")
		return nil
	}
	opts := []Option{WithSampleSize(len(goldCorpus)), WithSampler(sampler), WithClock(fixedClock())}

	first, err := Evaluate(context.Background(), goldCorpus, identity, opts...)
	require.NoError(t, err)
	second, err := Evaluate(context.Background(), goldCorpus, identity, opts...)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, len(goldCorpus), first.LinesProcessed)
	assert.Zero(t, first.SampleSize)
}

func TestEvaluate_FreshStatePerRun(t *testing.T) {
	e, err := New(identity, WithClock(fixedClock()))
	require.NoError(t, err)

	first, err := e.Evaluate(context.Background(), goldCorpus)
	require.NoError(t, err)
	second, err := e.Evaluate(context.Background(), goldCorpus)
	require.NoError(t, err)

	assert.Equal(t, first.DERWithCase, second.DERWithCase)
	assert.Equal(t, first.WordTotal, second.WordTotal)
}

func TestEvaluate_Progress(t *testing.T) {
	var snapshots []Progress
	report, err := Evaluate(context.Background(), goldCorpus, identity,
		WithProgressEvery(2),
		WithProgressFunc(func(p Progress) { snapshots = append(snapshots, p) }),
	)
	require.NoError(t, err)

	require.Len(t, snapshots, 2)
	assert.Equal(t, 2, snapshots[0].Line)
	assert.Equal(t, 4, snapshots[1].Line)
	assert.Equal(t, len(goldCorpus), snapshots[0].Total)
	assert.Positive(t, snapshots[0].DERWithCase)

	quiet, err := Evaluate(context.Background(), goldCorpus, identity)
	require.NoError(t, err)
	assert.Equal(t, quiet.DERWithCase, report.DERWithCase)
	assert.Equal(t, quiet.WERNoCase, report.WERNoCase)
}

func TestEvaluate_Throughput(t *testing.T) {
	clock := &stepClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), step: 2 * time.Second}

	report, err := Evaluate(context.Background(), goldCorpus[:4], identity, WithClock(clock.now))
	require.NoError(t, err)

	assert.Equal(t, 2*time.Second, report.Elapsed)
	assert.InDelta(t, 2.0, report.LinesPerSecond, 1e-9)
}

func TestEvaluate_BaseDrift(t *testing.T) {
	engine := DiacritizerFunc(func(_ context.Context, text string) (string, error) {
		// drop the definite article from the first word
		return strings.TrimPrefix(text, "ال"), nil
	})

	report, err := Evaluate(context.Background(), goldCorpus[:2], engine)
	require.NoError(t, err)

	assert.Equal(t, 1, report.LinesBaseAltered)
	assert.Equal(t, 2, report.BaseEditDistance)
	// "كتاب" no longer aligns with "الكتاب" but "كبير" still does
	assert.Equal(t, 4, report.WordTotal)
}
