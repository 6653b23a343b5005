package engine

import (
	"context"
	"errors"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireTool(t *testing.T, name string) {
	t.Helper()
	if _, err := exec.LookPath(name); err != nil {
		t.Skipf("Skipping: %s not available", name)
	}
}

func TestParseCommand(t *testing.T) {
	c, err := ParseCommand("  python3 diacritize.py --model m.bin ")
	require.NoError(t, err)
	assert.Equal(t, "python3", c.Path)
	assert.Equal(t, []string{"diacritize.py", "--model", "m.bin"}, c.Args)
	assert.Equal(t, "python3 diacritize.py --model m.bin", c.String())

	_, err = ParseCommand("   ")
	assert.ErrorIs(t, err, ErrEmptyCommand)
}

func TestCommand_Echo(t *testing.T) {
	requireTool(t, "cat")

	c := &Command{Path: "cat"}
	got, err := c.Diacritize(context.Background(), "كَتَبَ الوَلَدُ")
	require.NoError(t, err)
	assert.Equal(t, "كَتَبَ الوَلَدُ", got)
}

func TestCommand_Env(t *testing.T) {
	requireTool(t, "sh")

	c := &Command{Path: "sh", Args: []string{"-c", `read line; printf '%s-%s\n' "$line" "$SUFFIX"`}, Env: []string{"SUFFIX=x"}}
	got, err := c.Diacritize(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, "abc-x", got)
}

func TestCommand_NonZeroExit(t *testing.T) {
	requireTool(t, "sh")

	c := &Command{Path: "sh", Args: []string{"-c", "echo broken >&2; exit 3"}}
	_, err := c.Diacritize(context.Background(), "abc")
	require.Error(t, err)

	var exitErr *exec.ExitError
	assert.True(t, errors.As(err, &exitErr))
	assert.Contains(t, err.Error(), "broken")
}

func TestCommand_NotFound(t *testing.T) {
	c := &Command{Path: "definitely-not-a-real-diacritizer"}
	_, err := c.Diacritize(context.Background(), "abc")
	assert.ErrorIs(t, err, exec.ErrNotFound)
}

func TestCommand_Deadline(t *testing.T) {
	requireTool(t, "sleep")

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	c := &Command{Path: "sleep", Args: []string{"5"}}
	_, err := c.Diacritize(ctx, "abc")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
