package tokenizer

import (
	"slices"
	"strings"
)

// Word is a word split into base characters and the diacritic cluster that
// follows each of them. Bases and Clusters always have the same length.
type Word struct {
	Bases    []rune
	Clusters []string
}

// Len returns the number of diacritizable positions.
func (w Word) Len() int {
	return len(w.Bases)
}

// Base returns the base characters joined back into a string.
func (w Word) Base() string {
	return string(w.Bases)
}

// Decompose splits word into (base character, cluster) pairs.
//
// The cluster of a base character is every mark between it and the next base
// character, sorted so that written order does not matter (shadda+fatha and
// fatha+shadda compare equal). Marks that appear before the first base
// character have nothing to attach to and are dropped.
func Decompose(word string) Word {
	var w Word
	var pending []rune

	for _, r := range word {
		if IsDiacritic(r) {
			pending = append(pending, r)
			continue
		}
		if len(w.Bases) > 0 {
			w.Clusters = append(w.Clusters, canonical(pending))
		}
		w.Bases = append(w.Bases, r)
		pending = pending[:0]
	}

	if len(w.Bases) > 0 {
		w.Clusters = append(w.Clusters, canonical(pending))
	}

	return w
}

// Canonical returns cluster with its marks in canonical (sorted) order.
func Canonical(cluster string) string {
	return canonical([]rune(cluster))
}

func canonical(marks []rune) string {
	if len(marks) == 0 {
		return ""
	}
	sorted := slices.Clone(marks)
	slices.Sort(sorted)

	var b strings.Builder
	for _, r := range sorted {
		b.WriteRune(r)
	}
	return b.String()
}
