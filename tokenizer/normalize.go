package tokenizer

import (
	"strings"
	"unicode"
)

// Fields splits a line into whitespace-delimited words. Runs of whitespace
// collapse and leading/trailing whitespace is ignored.
func Fields(line string) []string {
	return strings.FieldsFunc(line, isSpace)
}

// normalize collapses whitespace runs into single spaces and trims both ends,
// so that engine input is one clean line.
func normalize(text string) string {
	if text == "" {
		return ""
	}

	var builder strings.Builder
	needSpace := false

	for _, r := range text {
		if isSpace(r) {
			if builder.Len() > 0 {
				needSpace = true
			}
			continue
		}
		if needSpace {
			builder.WriteByte(' ')
			needSpace = false
		}
		builder.WriteRune(r)
	}

	return builder.String()
}

// Undiacritize returns the engine input for a gold line: the line with every
// mark removed and whitespace normalized.
func Undiacritize(line string) string {
	return normalize(Strip(line))
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r)
}
