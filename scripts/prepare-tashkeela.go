//go:build ignore

// Prepare a diacritization test split from raw Tashkeela text files.
// Keeps lines whose diacritic density (marks per base letter) is at least
// -min-density, removes duplicates, shuffles and writes -test lines to -out.
// The remaining lines go to -train-out when it is set.
// Usage: go run ./scripts/prepare-tashkeela.go -in raw/ -out tashkeela_test.txt
package main

import (
	"bufio"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"

	"github.com/jamesainslie/go-harakat/tokenizer"
)

func main() {
	var (
		in         = flag.String("in", "", "raw corpus file or directory of .txt files (required)")
		out        = flag.String("out", "tashkeela_test.txt", "test split output")
		trainOut   = flag.String("train-out", "", "optional output for the remaining lines")
		minDensity = flag.Float64("min-density", 0.5, "minimum marks per base letter")
		minWords   = flag.Int("min-words", 3, "minimum words per line")
		maxWords   = flag.Int("max-words", 200, "maximum words per line (0 = no limit)")
		testLines  = flag.Int("test", 10000, "number of lines in the test split")
		seed       = flag.Uint64("seed", 42, "shuffle seed")
	)
	flag.Parse()

	if *in == "" {
		fmt.Fprintln(os.Stderr, "error: -in required")
		flag.Usage()
		os.Exit(1)
	}

	files, err := inputFiles(*in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing %s: %v\n", *in, err)
		os.Exit(1)
	}

	var lines []string
	var total int
	for _, f := range files {
		kept, seen, err := filterFile(f, *minDensity, *minWords, *maxWords)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", f, err)
			continue
		}
		total += seen
		lines = append(lines, kept...)
	}

	lines = lo.Uniq(lines)
	fmt.Printf("Kept %d unique lines of %d from %d files\n", len(lines), total, len(files))

	rng := rand.New(rand.NewPCG(*seed, *seed))
	rng.Shuffle(len(lines), func(i, j int) { lines[i], lines[j] = lines[j], lines[i] })

	n := min(*testLines, len(lines))
	if err := writeLines(*out, lines[:n]); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", *out, err)
		os.Exit(1)
	}
	fmt.Printf("  -> %s (%d lines)\n", *out, n)

	if *trainOut != "" {
		if err := writeLines(*trainOut, lines[n:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", *trainOut, err)
			os.Exit(1)
		}
		fmt.Printf("  -> %s (%d lines)\n", *trainOut, len(lines)-n)
	}
}

func inputFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	var files []string
	err = filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(p), ".txt") {
			files = append(files, p)
		}
		return nil
	})
	return files, err
}

func filterFile(path string, minDensity float64, minWords, maxWords int) ([]string, int, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	var kept []string
	var seen int

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 16<<20)
	for scanner.Scan() {
		line := strings.Join(tokenizer.Fields(scanner.Text()), " ")
		if line == "" {
			continue
		}
		seen++

		words := len(tokenizer.Fields(line))
		if words < minWords || (maxWords > 0 && words > maxWords) {
			continue
		}

		marks, bases := tokenizer.CountMarks(line)
		if bases == 0 || float64(marks)/float64(bases) < minDensity {
			continue
		}
		kept = append(kept, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, 0, fmt.Errorf("scanning file: %w", err)
	}
	return kept, seen, nil
}

func writeLines(path string, lines []string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(file)
	for _, l := range lines {
		if _, err := w.WriteString(l + "\n"); err != nil {
			_ = file.Close()
			return err
		}
	}
	if err := w.Flush(); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}
