package launcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/lucass-carneiro/surge-stage/internal/branding"
	"github.com/lucass-carneiro/surge-stage/internal/locator"
	"github.com/lucass-carneiro/surge-stage/internal/logfields"
	"github.com/lucass-carneiro/surge-stage/internal/platform"
	"github.com/lucass-carneiro/surge-stage/internal/stageerr"
)

// ExitError reports a player that ran and exited with a non-zero status.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with code %d", branding.PlayerName(), e.Code)
}

// Launcher starts the staged player executable.
type Launcher struct {
	profile platform.Profile
	logger  *slog.Logger

	// Stdin, Stdout and Stderr can be set for testing; defaults to the
	// process's own streams.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// New returns a Launcher for profile.
func New(profile platform.Profile) *Launcher {
	return &Launcher{profile: profile, logger: slog.Default()}
}

// WithLogger sets a custom logger.
func (l *Launcher) WithLogger(logger *slog.Logger) *Launcher {
	l.logger = logger
	return l
}

// Command returns the relative path the player is started with, e.g. "./surge".
func (l *Launcher) Command() string {
	return "." + string(filepath.Separator) + l.profile.Executable(branding.PlayerName())
}

// Run changes into req.OutputDirectory, runs the player with req.Args and
// changes back. A non-zero exit is returned as *ExitError.
func (l *Launcher) Run(ctx context.Context, req locator.Request) (err error) {
	const op = "run"
	out := req.OutputDirectory

	info, statErr := os.Stat(out)
	if statErr != nil || !info.IsDir() {
		return stageerr.New(op, stageerr.ErrStagingNotInitialized, out)
	}
	exe := filepath.Join(out, l.profile.Executable(branding.PlayerName()))
	if _, statErr := os.Stat(exe); statErr != nil {
		return stageerr.Wrap(op, stageerr.ErrArtifactNotFound, exe, statErr)
	}

	prev, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("reading working directory: %w", err)
	}
	if err := os.Chdir(out); err != nil {
		return fmt.Errorf("entering %s: %w", out, err)
	}
	defer func() {
		if cdErr := os.Chdir(prev); cdErr != nil && err == nil {
			err = fmt.Errorf("restoring working directory %s: %w", prev, cdErr)
		}
	}()

	cmd := exec.CommandContext(ctx, l.Command(), req.Args...)
	cmd.Stdin = l.Stdin
	if cmd.Stdin == nil {
		cmd.Stdin = os.Stdin
	}
	cmd.Stdout = l.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = l.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	l.logger.Debug("Launching player", logfields.Path(exe), slog.Any("args", req.Args))
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			l.logger.Debug("Player exited", logfields.ExitCode(exitErr.ExitCode()))
			return &ExitError{Code: exitErr.ExitCode()}
		}
		return fmt.Errorf("launching %s: %w", exe, err)
	}
	return nil
}
