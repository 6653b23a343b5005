package harakat

import (
	"fmt"
	"sort"
	"time"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/jamesainslie/go-harakat/internal/bench"
)

// Rate is an error rate together with its numerator and denominator.
// Value is a fraction in [0, 1] and is 0 whenever Total is 0.
type Rate struct {
	Errors int
	Total  int
	Value  float64
}

func newRate(errors, total int) Rate {
	return Rate{Errors: errors, Total: total, Value: bench.Ratio(errors, total)}
}

// Percent returns Value scaled to 0-100.
func (r Rate) Percent() float64 {
	return 100 * r.Value
}

// Report is the result of one evaluation run.
type Report struct {
	LinesProcessed   int // lines attempted, after sampling
	LinesSkipped     int // word pairs the aligner could not reconcile
	ProcessingErrors int // lines whose engine call failed
	FailuresByKind   map[FailureKind]int

	DERWithCase Rate
	DERNoCase   Rate
	WERWithCase Rate
	WERNoCase   Rate
	WordTotal   int

	SampleSize       int // lines drawn at random; 0 when every line was used
	BaseEditDistance int
	LinesBaseAltered int

	Elapsed        time.Duration
	LinesPerSecond float64
}

// Map returns the report as a flat mapping. Rates are expressed in percent.
func (r *Report) Map() map[string]any {
	m := map[string]any{
		"lines_processed":   r.LinesProcessed,
		"lines_skipped":     r.LinesSkipped,
		"processing_errors": r.ProcessingErrors,

		"der_with_case":        r.DERWithCase.Percent(),
		"der_with_case_errors": r.DERWithCase.Errors,
		"der_with_case_total":  r.DERWithCase.Total,

		"der_no_case":        r.DERNoCase.Percent(),
		"der_no_case_errors": r.DERNoCase.Errors,
		"der_no_case_total":  r.DERNoCase.Total,

		"wer_with_case":        r.WERWithCase.Percent(),
		"wer_with_case_errors": r.WERWithCase.Errors,

		"wer_no_case":        r.WERNoCase.Percent(),
		"wer_no_case_errors": r.WERNoCase.Errors,

		"word_total":         r.WordTotal,
		"sample_size":        r.SampleSize,
		"base_edit_distance": r.BaseEditDistance,
		"lines_base_altered": r.LinesBaseAltered,
		"time_seconds":       r.Elapsed.Seconds(),
		"lines_per_second":   r.LinesPerSecond,
	}

	failures := make(map[string]any, len(r.FailuresByKind))
	for _, k := range r.FailureKinds() {
		failures[string(k)] = r.FailuresByKind[k]
	}
	m["failures_by_kind"] = failures

	return m
}

// AsStruct returns Map as a protobuf Struct.
func (r *Report) AsStruct() (*structpb.Struct, error) {
	s, err := structpb.NewStruct(r.Map())
	if err != nil {
		return nil, fmt.Errorf("report to struct: %w", err)
	}
	return s, nil
}

// MarshalJSON encodes the report mapping.
func (r *Report) MarshalJSON() ([]byte, error) {
	s, err := r.AsStruct()
	if err != nil {
		return nil, err
	}
	return protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(s)
}

// FailureKinds returns the kinds present in FailuresByKind in sorted order.
func (r *Report) FailureKinds() []FailureKind {
	kinds := make([]FailureKind, 0, len(r.FailuresByKind))
	for k := range r.FailuresByKind {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}
