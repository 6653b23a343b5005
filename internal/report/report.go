// Package report renders evaluation results for the terminal and as JSON.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	harakat "github.com/jamesainslie/go-harakat"
	"github.com/jamesainslie/go-harakat/internal/bench"
)

const ruleWidth = 60

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	sectionStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	ruleStyle    = lipgloss.NewStyle().Faint(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// printer accumulates the first write error so render functions can stay
// linear.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) rule() {
	p.printf("%s\n", ruleStyle.Render(strings.Repeat("=", ruleWidth)))
}

func comma(n int) string {
	return humanize.Comma(int64(n))
}

// Text writes the human-readable summary of r.
func Text(w io.Writer, r *harakat.Report) error {
	p := &printer{w: w}

	p.rule()
	p.printf("%s\n", titleStyle.Render("EVALUATION RESULTS"))
	p.rule()
	p.printf("Lines processed: %s\n", comma(r.LinesProcessed))
	p.printf("Words evaluated: %s\n", comma(r.WordTotal))
	if r.LinesSkipped > 0 {
		p.printf("Word pairs skipped: %s\n", comma(r.LinesSkipped))
	}
	if r.ProcessingErrors > 0 {
		p.printf("%s\n", warnStyle.Render(fmt.Sprintf("Processing errors: %s (%s)", comma(r.ProcessingErrors), failureSummary(r))))
	}
	p.printf("\n")

	p.printf("%s\n", sectionStyle.Render("DER (Diacritic Error Rate):"))
	rate(p, "With case endings:   ", r.DERWithCase, "positions")
	rate(p, "Without case endings:", r.DERNoCase, "positions")
	p.printf("\n")

	p.printf("%s\n", sectionStyle.Render("WER (Word Error Rate):"))
	rate(p, "With case endings:   ", r.WERWithCase, "words")
	rate(p, "Without case endings:", r.WERNoCase, "words")
	p.printf("\n")

	if r.LinesBaseAltered > 0 {
		p.printf("%s\n", warnStyle.Render(fmt.Sprintf("Base text altered on %s lines (edit distance %s)",
			comma(r.LinesBaseAltered), comma(r.BaseEditDistance))))
	}
	p.printf("Processing time: %.1f seconds\n", r.Elapsed.Seconds())
	p.printf("Speed: %s lines/second\n", humanize.CommafWithDigits(r.LinesPerSecond, 1))
	p.rule()

	return p.err
}

func rate(p *printer, label string, r harakat.Rate, unit string) {
	p.printf("  %s %.2f%%\n", label, r.Percent())
	p.printf("    Errors: %s / %s %s\n", comma(r.Errors), comma(r.Total), unit)
}

func failureSummary(r *harakat.Report) string {
	parts := make([]string, 0, len(r.FailuresByKind))
	for _, k := range r.FailureKinds() {
		parts = append(parts, fmt.Sprintf("%s %s", k, comma(r.FailuresByKind[k])))
	}
	return strings.Join(parts, ", ")
}

// JSON writes r as a JSON object using the flat report keys.
func JSON(w io.Writer, r *harakat.Report) error {
	data, err := r.MarshalJSON()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}

// Comparison writes a table of compare results, best first.
func Comparison(w io.Writer, results []harakat.CompareResult) error {
	p := &printer{w: w}

	nameWidth := len("Model")
	for _, res := range results {
		nameWidth = max(nameWidth, lipgloss.Width(res.Name))
	}

	p.printf("%s\n", titleStyle.Render("MODEL COMPARISON"))
	p.printf("%s  %9s  %9s  %9s  %9s  %7s\n", pad("Model", nameWidth), "DER", "DER-nc", "WER", "WER-nc", "Errors")
	p.printf("%s\n", ruleStyle.Render(strings.Repeat("-", nameWidth+2+4*11+7)))
	for _, res := range results {
		r := res.Report
		p.printf("%s  %8.2f%%  %8.2f%%  %8.2f%%  %8.2f%%  %7s\n",
			pad(res.Name, nameWidth),
			r.DERWithCase.Percent(), r.DERNoCase.Percent(),
			r.WERWithCase.Percent(), r.WERNoCase.Percent(),
			comma(r.ProcessingErrors))
	}

	return p.err
}

func pad(s string, width int) string {
	if n := width - lipgloss.Width(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

// ComparisonJSON writes compare results as a JSON array of
// {"name": ..., "report": {...}} objects.
func ComparisonJSON(w io.Writer, results []harakat.CompareResult) error {
	items := make([]any, len(results))
	for i, res := range results {
		items[i] = map[string]any{"name": res.Name, "report": res.Report.Map()}
	}

	list, err := structpb.NewList(items)
	if err != nil {
		return fmt.Errorf("comparison to list: %w", err)
	}
	data, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(list)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}

// Line writes the counters of a single aligned line.
func Line(w io.Writer, c bench.Counters) error {
	p := &printer{w: w}

	p.printf("Words: %s (skipped %s)\n", comma(c.WordTotal), comma(c.Skipped))
	p.printf("DER with case:    %.2f%% (%s / %s)\n", 100*c.DERWithCase(), comma(c.CharErrorsWithCase), comma(c.CharTotalWithCase))
	p.printf("DER without case: %.2f%% (%s / %s)\n", 100*c.DERNoCase(), comma(c.CharErrorsNoCase), comma(c.CharTotalNoCase))
	p.printf("WER with case:    %.2f%% (%s / %s)\n", 100*c.WERWithCase(), comma(c.WordErrorsWithCase), comma(c.WordTotal))
	p.printf("WER without case: %.2f%% (%s / %s)\n", 100*c.WERNoCase(), comma(c.WordErrorsNoCase), comma(c.WordTotal))

	return p.err
}
