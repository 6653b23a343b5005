package main

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func requireCat(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("cat"); err != nil {
		t.Skip("Skipping: cat not available")
	}
}

func TestCLI_Args(t *testing.T) {
	requireCat(t)

	out, err := run(t, "", "--engine", "command", "--command", "cat", "ذهب", "الولد")
	require.NoError(t, err)
	assert.Equal(t, "ذهب الولد\n", out)
}

func TestCLI_Stdin(t *testing.T) {
	requireCat(t)

	out, err := run(t, "ذهب\n\nالولد\n", "--engine", "command", "--command", "cat")
	require.NoError(t, err)
	assert.Equal(t, "ذهب\n\nالولد\n", out)
}

func TestCLI_Gold(t *testing.T) {
	requireCat(t)

	out, err := run(t, "", "--engine", "command", "--command", "cat", "--gold", "ذَهَبَ")
	require.NoError(t, err)
	assert.Contains(t, out, "Predicted: ذهب")
	assert.Contains(t, out, "Words: 1 (skipped 0)")
	assert.Contains(t, out, "WER with case:    100.00% (1 / 1)")
}

func TestCLI_BadEngine(t *testing.T) {
	_, err := run(t, "", "--engine", "magic")
	require.Error(t, err)
}

func TestDiacritizeLines_Error(t *testing.T) {
	boom := errors.New("boom")
	err := diacritizeLines(context.Background(), strings.NewReader("a\n"), &bytes.Buffer{},
		func(context.Context, string) (string, error) { return "", boom })
	assert.ErrorIs(t, err, boom)
}
