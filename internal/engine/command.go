// Package engine provides diacritization engines that run outside the
// process.
package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	harakat "github.com/jamesainslie/go-harakat"
)

// ErrEmptyCommand is returned by ParseCommand for a blank command line.
var ErrEmptyCommand = errors.New("engine: empty command")

// Command runs an external program once per line. The undiacritized text is
// written to its stdin followed by a newline; the diacritized text is read
// from stdout with trailing newlines removed. A non-zero exit status is a
// failure.
type Command struct {
	Path string
	Args []string
	Env  []string // appended to the parent environment
}

var _ harakat.Diacritizer = (*Command)(nil)

// ParseCommand splits a command line on whitespace. Quoting is not
// supported.
func ParseCommand(line string) (*Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, ErrEmptyCommand
	}
	return &Command{Path: fields[0], Args: fields[1:]}, nil
}

// Diacritize implements harakat.Diacritizer.
func (c *Command) Diacritize(ctx context.Context, text string) (string, error) {
	cmd := exec.CommandContext(ctx, c.Path, c.Args...)
	if len(c.Env) > 0 {
		cmd.Env = append(cmd.Environ(), c.Env...)
	}
	cmd.Stdin = strings.NewReader(text + "\n")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("running %s: %w: %s", c.Path, err, msg)
		}
		return "", fmt.Errorf("running %s: %w", c.Path, err)
	}

	return strings.TrimRight(stdout.String(), "\r\n"), nil
}

// String returns the command line.
func (c *Command) String() string {
	return strings.Join(append([]string{c.Path}, c.Args...), " ")
}
