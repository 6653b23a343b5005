package tokenizer

import (
	"slices"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple word", "كتب", "كتب"},
		{"two words", "كتب الولد", "كتب الولد"},
		{"extra spaces", "  كتب \t الولد  ", "كتب الولد"},
		{"empty string", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := normalize(tc.input)
			if got != tc.expected {
				t.Errorf("normalize(%q) = %q, want %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestFields(t *testing.T) {
	got := Fields("  الكِتابُ\tكَبيرٌ  ")
	want := []string{"الكِتابُ", "كَبيرٌ"}
	if !slices.Equal(got, want) {
		t.Errorf("Fields() = %q, want %q", got, want)
	}
	if got := Fields("   "); len(got) != 0 {
		t.Errorf("Fields(blank) = %q, want empty", got)
	}
}

func TestUndiacritize(t *testing.T) {
	if got, want := Undiacritize(" الكِتابُ   كَبيرٌ "), "الكتاب كبير"; got != want {
		t.Errorf("Undiacritize() = %q, want %q", got, want)
	}
}
