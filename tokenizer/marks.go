// Package tokenizer splits Arabic text into the units that diacritic scoring
// works on: base characters, the diacritic clusters attached to them, and
// whitespace-delimited words.
package tokenizer

import "strings"

// The nine marks that make up the diacritic set.
const (
	Fathatan   = '\u064B'
	Dammatan   = '\u064C'
	Kasratan   = '\u064D'
	Fatha      = '\u064E'
	Damma      = '\u064F'
	Kasra      = '\u0650'
	Shadda     = '\u0651'
	Sukun      = '\u0652'
	DaggerAlif = '\u0670'
)

// IsDiacritic reports whether r is one of the nine diacritic marks.
func IsDiacritic(r rune) bool {
	switch r {
	case Fathatan, Dammatan, Kasratan, Fatha, Damma, Kasra, Shadda, Sukun, DaggerAlif:
		return true
	}
	return false
}

// Strip removes every diacritic mark from text. All other characters,
// whitespace included, are kept in order.
func Strip(text string) string {
	if strings.IndexFunc(text, IsDiacritic) < 0 {
		return text
	}
	return strings.Map(func(r rune) rune {
		if IsDiacritic(r) {
			return -1
		}
		return r
	}, text)
}

// CountMarks returns the number of diacritic marks and base characters in
// text, ignoring whitespace.
func CountMarks(text string) (marks, bases int) {
	for _, r := range text {
		switch {
		case IsDiacritic(r):
			marks++
		case isSpace(r):
		default:
			bases++
		}
	}
	return marks, bases
}
