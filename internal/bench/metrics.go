package bench

import "github.com/jamesainslie/go-harakat/tokenizer"

// Outcome is the result of scoring one predicted/gold word pair.
// A skipped outcome carries no counts and must not touch any total.
type Outcome struct {
	Skipped   bool
	Errors    int // positions whose clusters differ
	Total     int // positions compared
	WordError bool
}

var skipped = Outcome{Skipped: true}

// ScoreWord compares the diacritic clusters of a predicted word against its
// gold counterpart, position by position.
//
// The pair is skipped when the base forms differ, when the decompositions have
// different lengths, or when the word has no diacritizable position. With
// excludeFinal set the last position (the case ending) is left out; a
// one-position word then scores with Total == 0 rather than being skipped.
func ScoreWord(predicted, gold string, excludeFinal bool) Outcome {
	if tokenizer.Strip(predicted) != tokenizer.Strip(gold) {
		return skipped
	}

	pred := tokenizer.Decompose(predicted)
	ref := tokenizer.Decompose(gold)
	if pred.Len() != ref.Len() {
		return skipped
	}

	positions := ref.Len()
	if positions == 0 {
		return skipped
	}

	end := positions
	if excludeFinal {
		end = positions - 1
	}

	var o Outcome
	for i := 0; i < end; i++ {
		o.Total++
		if pred.Clusters[i] != ref.Clusters[i] {
			o.Errors++
		}
	}
	o.WordError = o.Errors > 0

	return o
}

// Counters accumulates position and word counts for both scoring modes.
// WithCase counts every position; NoCase leaves out each word's final one.
type Counters struct {
	CharErrorsWithCase int
	CharTotalWithCase  int
	CharErrorsNoCase   int
	CharTotalNoCase    int
	WordErrorsWithCase int
	WordErrorsNoCase   int
	WordTotal          int
	Skipped            int // token pairs the aligner could not reconcile
}

// Add returns the field-wise sum of c and other.
func (c Counters) Add(other Counters) Counters {
	return Counters{
		CharErrorsWithCase: c.CharErrorsWithCase + other.CharErrorsWithCase,
		CharTotalWithCase:  c.CharTotalWithCase + other.CharTotalWithCase,
		CharErrorsNoCase:   c.CharErrorsNoCase + other.CharErrorsNoCase,
		CharTotalNoCase:    c.CharTotalNoCase + other.CharTotalNoCase,
		WordErrorsWithCase: c.WordErrorsWithCase + other.WordErrorsWithCase,
		WordErrorsNoCase:   c.WordErrorsNoCase + other.WordErrorsNoCase,
		WordTotal:          c.WordTotal + other.WordTotal,
		Skipped:            c.Skipped + other.Skipped,
	}
}

// DERWithCase returns the diacritic error rate over all positions.
func (c Counters) DERWithCase() float64 {
	return Ratio(c.CharErrorsWithCase, c.CharTotalWithCase)
}

// DERNoCase returns the diacritic error rate excluding word-final positions.
func (c Counters) DERNoCase() float64 {
	return Ratio(c.CharErrorsNoCase, c.CharTotalNoCase)
}

// WERWithCase returns the fraction of scored words with any error.
func (c Counters) WERWithCase() float64 {
	return Ratio(c.WordErrorsWithCase, c.WordTotal)
}

// WERNoCase returns the fraction of scored words with an error outside the
// final position.
func (c Counters) WERNoCase() float64 {
	return Ratio(c.WordErrorsNoCase, c.WordTotal)
}

// Ratio returns errors/total, or 0 when total is 0.
func Ratio(errors, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(errors) / float64(total)
}

func (c *Counters) addWithCase(o Outcome) {
	if o.Skipped {
		return
	}
	c.CharErrorsWithCase += o.Errors
	c.CharTotalWithCase += o.Total
	if o.WordError {
		c.WordErrorsWithCase++
	}
	c.WordTotal++
}

func (c *Counters) addNoCase(o Outcome) {
	if o.Skipped {
		return
	}
	c.CharErrorsNoCase += o.Errors
	c.CharTotalNoCase += o.Total
	if o.WordError {
		c.WordErrorsNoCase++
	}
}
