package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"
)

type execer interface {
	Run(*exec.Cmd) error
	Output(*exec.Cmd) ([]byte, error)
}

type realExecer struct{}

func (realExecer) Run(cmd *exec.Cmd) error              { return cmd.Run() }
func (realExecer) Output(cmd *exec.Cmd) ([]byte, error) { return cmd.Output() }

var _realExec execer = realExecer{}

// gitCmd provides a fluent API around exec.Cmd, unconditionally
// capturing stderr so it can be folded into a returned error.
type gitCmd struct {
	cmd  *exec.Cmd
	wrap func(error) error
}

func newGitCmd(ctx context.Context, logger *log.Logger, dir string, args ...string) *gitCmd {
	name := "git"
	if len(args) > 0 {
		name += " " + args[0]
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	cmd.Stderr = &stderr

	return &gitCmd{
		cmd: cmd,
		wrap: func(err error) error {
			if err == nil {
				return nil
			}
			logger.Debug(name, "err", err)
			if out := bytes.TrimSpace(stderr.Bytes()); len(out) > 0 {
				return errors.Join(err, fmt.Errorf("stderr:\n%s", out))
			}
			return err
		},
	}
}

// Stdin supplies the command's stdin from the given string.
func (c *gitCmd) Stdin(s string) *gitCmd {
	c.cmd.Stdin = strings.NewReader(s)
	return c
}

// Run runs the command, returning an error if it exits non-zero.
func (c *gitCmd) Run(exec execer) error {
	return c.wrap(exec.Run(c.cmd))
}

// Output runs the command and returns its stdout.
func (c *gitCmd) Output(exec execer) ([]byte, error) {
	out, err := exec.Output(c.cmd)
	return out, c.wrap(err)
}

// OutputString runs the command and returns its stdout as a string,
// with the trailing newline removed.
func (c *gitCmd) OutputString(exec execer) (string, error) {
	out, err := c.Output(exec)
	out, _ = bytes.CutSuffix(out, []byte{'\n'})
	return string(out), err
}
