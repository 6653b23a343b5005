package engine

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamesainslie/go-harakat/internal/config"
)

func TestOpen_Command(t *testing.T) {
	eng, closer, err := Open(&config.Config{
		Engine:  config.EngineCommand,
		Command: "cat -u",
		CmdEnv:  []string{"LC_ALL=C.UTF-8"},
	}, "")
	require.NoError(t, err)
	defer func() { _ = closer.Close() }()

	c, ok := eng.(*Command)
	require.True(t, ok)
	assert.Equal(t, "cat", c.Path)
	assert.Equal(t, []string{"-u"}, c.Args)
	assert.Equal(t, []string{"LC_ALL=C.UTF-8"}, c.Env)
}

func TestOpen_EmptyCommand(t *testing.T) {
	_, _, err := Open(&config.Config{Engine: config.EngineCommand}, "")
	assert.ErrorIs(t, err, ErrEmptyCommand)
}

func TestOpen_UnknownEngine(t *testing.T) {
	_, _, err := Open(&config.Config{Engine: "magic"}, "")
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestOpen_ONNXMissingModel(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{
		Engine:   config.EngineONNX,
		Model:    filepath.Join(dir, "model.onnx"),
		Vocab:    filepath.Join(dir, "vocab.yaml"),
		PoolSize: 1,
	}
	_, _, err := Open(cfg, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model.onnx")
}
