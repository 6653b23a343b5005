package inference

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/jamesainslie/go-harakat/tokenizer"
)

// Reserved character entries.
const (
	PadToken = "<pad>"
	UnkToken = "<unk>"
)

// Vocab maps characters to model input ids and model classes to diacritic
// clusters.
type Vocab struct {
	InputName  string
	OutputName string

	ids    map[rune]int64
	unk    int64
	labels []string
}

type vocabFile struct {
	Input  string   `yaml:"input"`
	Output string   `yaml:"output"`
	Chars  []string `yaml:"chars"`
	Labels []string `yaml:"labels"`
}

// LoadVocab reads a YAML vocabulary file.
//
// The file lists chars (the id of a character is its index) and labels
// (class i of the model output means labels[i] follows the character).
// Example:
//
//	input: input_ids
//	output: logits
//	chars: ["<pad>", "<unk>", " ", "ا", "ب"]
//	labels: ["", "َ", "ُ", "ِ", "ّْ"]
func LoadVocab(path string) (*Vocab, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading vocab: %w", err)
	}
	return ParseVocab(bytes.NewReader(data))
}

// ParseVocab decodes and validates a vocabulary.
func ParseVocab(r io.Reader) (*Vocab, error) {
	var f vocabFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrVocabInvalid, err)
	}

	v := &Vocab{
		InputName:  f.Input,
		OutputName: f.Output,
		ids:        make(map[rune]int64, len(f.Chars)),
		unk:        -1,
	}

	for i, c := range f.Chars {
		switch c {
		case PadToken:
			continue
		case UnkToken:
			v.unk = int64(i)
			continue
		}
		if utf8.RuneCountInString(c) != 1 {
			return nil, fmt.Errorf("%w: char %d (%q) is not a single character", ErrVocabInvalid, i, c)
		}
		r, _ := utf8.DecodeRuneInString(c)
		if _, dup := v.ids[r]; dup {
			return nil, fmt.Errorf("%w: duplicate char %q", ErrVocabInvalid, c)
		}
		v.ids[r] = int64(i)
	}
	if v.unk < 0 {
		return nil, fmt.Errorf("%w: missing %s entry", ErrVocabInvalid, UnkToken)
	}

	if len(f.Labels) == 0 {
		return nil, fmt.Errorf("%w: no labels", ErrVocabInvalid)
	}
	v.labels = make([]string, len(f.Labels))
	for i, l := range f.Labels {
		for _, r := range l {
			if !tokenizer.IsDiacritic(r) {
				return nil, fmt.Errorf("%w: label %d contains non-diacritic %q", ErrVocabInvalid, i, r)
			}
		}
		v.labels[i] = tokenizer.Canonical(l)
	}

	return v, nil
}

// Encode maps each rune to its id. Unknown runes get the <unk> id.
func (v *Vocab) Encode(runes []rune) []int64 {
	ids := make([]int64, len(runes))
	for i, r := range runes {
		id, ok := v.ids[r]
		if !ok {
			id = v.unk
		}
		ids[i] = id
	}
	return ids
}

// Label returns the diacritic cluster of class i.
func (v *Vocab) Label(i int) string {
	return v.labels[i]
}

// NumLabels returns the number of output classes.
func (v *Vocab) NumLabels() int {
	return len(v.labels)
}
