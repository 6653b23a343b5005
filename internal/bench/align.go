package bench

import "github.com/jamesainslie/go-harakat/tokenizer"

// AlignAndScore aligns the words of a predicted line against the words of its
// gold line and scores every aligned pair in both modes.
//
// Alignment walks both word sequences with one cursor each. At every step, in
// order:
//  1. equal base forms: score the pair, advance both;
//  2. the next predicted word matches the current gold word: the current
//     predicted word is an insertion, advance the predicted cursor;
//  3. the current predicted word matches the next gold word: the current gold
//     word was dropped, advance the gold cursor;
//  4. otherwise give up on both words, count a skip, advance both.
//
// Words left over on either side once one sequence runs out are ignored.
// Runs of two or more consecutive insertions or deletions are not recovered.
func AlignAndScore(predicted, gold string) Counters {
	pred := tokenizer.Fields(predicted)
	ref := tokenizer.Fields(gold)

	predBase := bases(pred)
	refBase := bases(ref)

	var c Counters
	pi, gi := 0, 0
	for pi < len(pred) && gi < len(ref) {
		switch {
		case predBase[pi] == refBase[gi]:
			c.addWithCase(ScoreWord(pred[pi], ref[gi], false))
			c.addNoCase(ScoreWord(pred[pi], ref[gi], true))
			pi++
			gi++
		case pi+1 < len(pred) && predBase[pi+1] == refBase[gi]:
			pi++
		case gi+1 < len(ref) && predBase[pi] == refBase[gi+1]:
			gi++
		default:
			c.Skipped++
			pi++
			gi++
		}
	}

	return c
}

func bases(words []string) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = tokenizer.Strip(w)
	}
	return out
}
