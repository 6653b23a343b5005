// Package bench scores diacritized text against gold-standard text: word
// scoring, line alignment, count accumulation and corpus loading.
package bench

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrCorpusNotFound indicates the gold corpus file does not exist.
var ErrCorpusNotFound = errors.New("bench: corpus file not found")

// maxLineSize bounds a single corpus line. Tashkeela lines can run to several
// hundred kilobytes of classical prose.
const maxLineSize = 16 << 20

// ParseCorpus reads one gold sentence per line. Lines are trimmed and blank
// lines are dropped.
func ParseCorpus(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var lines []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan corpus: %w", err)
	}

	return lines, nil
}

// LoadCorpus loads a UTF-8 gold corpus file.
func LoadCorpus(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrCorpusNotFound, path)
		}
		return nil, fmt.Errorf("open corpus: %w", err)
	}
	defer func() { _ = f.Close() }()

	lines, err := ParseCorpus(f)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return lines, nil
}
