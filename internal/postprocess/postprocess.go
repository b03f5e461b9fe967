package postprocess

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// ExecutablePlaceholder is replaced by the staged executable path in Args.
const ExecutablePlaceholder = "{exe}"

// DefaultTimeout bounds a single post-processing run.
const DefaultTimeout = 2 * time.Minute

// Step is applied to the staged player executable after it is placed.
type Step interface {
	Apply(ctx context.Context, executable string) error
}

// Command runs an external tool against the staged executable.
type Command struct {
	Path    string
	Args    []string
	Timeout time.Duration

	// Stdout and Stderr can be set for testing; defaults to os.Stdout/os.Stderr.
	Stdout io.Writer
	Stderr io.Writer
}

// New returns a Command step for path, or nil when path is empty.
func New(path string, args []string) Step {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	return &Command{Path: path, Args: args}
}

// Apply runs the tool from the executable's directory. Args containing
// {exe} receive the absolute executable path; if none does, the path is
// appended.
func (c *Command) Apply(ctx context.Context, executable string) error {
	abs, err := filepath.Abs(executable)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", executable, err)
	}
	executable = abs

	bin, err := exec.LookPath(c.Path)
	if err != nil {
		return fmt.Errorf("post-process tool %q not found: %w", c.Path, err)
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, bin, expandArgs(c.Args, executable)...)
	cmd.Dir = filepath.Dir(executable)

	stdout := c.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := c.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	var stderrBuf bytes.Buffer
	cmd.Stdout = stdout
	cmd.Stderr = io.MultiWriter(stderr, &stderrBuf)

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			msg := strings.TrimSpace(stderrBuf.String())
			if msg == "" {
				return fmt.Errorf("%s exited with code %d", filepath.Base(bin), exitErr.ExitCode())
			}
			return fmt.Errorf("%s exited with code %d: %s", filepath.Base(bin), exitErr.ExitCode(), msg)
		}
		return fmt.Errorf("running %s: %w", filepath.Base(bin), err)
	}
	return nil
}

func expandArgs(args []string, executable string) []string {
	out := make([]string, 0, len(args)+1)
	substituted := false
	for _, a := range args {
		if strings.Contains(a, ExecutablePlaceholder) {
			a = strings.ReplaceAll(a, ExecutablePlaceholder, executable)
			substituted = true
		}
		out = append(out, a)
	}
	if !substituted {
		out = append(out, executable)
	}
	return out
}
