package bench

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCorpus(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "one sentence per line",
			input: "كَتَبَ الوَلَدُ\nالكِتابُ كَبيرٌ\n",
			want:  []string{"كَتَبَ الوَلَدُ", "الكِتابُ كَبيرٌ"},
		},
		{
			name:  "blank lines ignored",
			input: "\n  \nكَتَبَ\n\n\t\nقَرَأَ",
			want:  []string{"كَتَبَ", "قَرَأَ"},
		},
		{
			name:  "lines trimmed",
			input: "  كَتَبَ  \r\n",
			want:  []string{"كَتَبَ"},
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCorpus(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadCorpus(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.txt")
	require.NoError(t, os.WriteFile(path, []byte("كَتَبَ\n\nقَرَأَ\n"), 0o644))

	lines, err := LoadCorpus(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"كَتَبَ", "قَرَأَ"}, lines)
}

func TestLoadCorpus_NotFound(t *testing.T) {
	_, err := LoadCorpus(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCorpusNotFound)
}
