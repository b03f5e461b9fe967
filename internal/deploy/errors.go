package deploy

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lucass-carneiro/surge-stage/internal/branding"
	"github.com/lucass-carneiro/surge-stage/internal/launcher"
	"github.com/lucass-carneiro/surge-stage/internal/platform"
	"github.com/lucass-carneiro/surge-stage/internal/stageerr"
)

// Exit statuses of the tool.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// UsageError marks an error caused by how the tool was invoked.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }

func (e *UsageError) Unwrap() error { return e.Err }

// Usage wraps err as a usage error. A nil err stays nil.
func Usage(err error) error {
	if err == nil {
		return nil
	}
	return &UsageError{Err: err}
}

func unknownOperation(op Operation) error {
	return fmt.Errorf("unknown operation %s", op)
}

// ExitStatus maps err to the process exit status. A player that exited
// non-zero passes its own status through.
func ExitStatus(err error) int {
	if err == nil {
		return ExitOK
	}
	var usage *UsageError
	if errors.As(err, &usage) {
		return ExitUsage
	}
	var exit *launcher.ExitError
	if errors.As(err, &exit) && exit.Code > 0 {
		return exit.Code
	}
	return ExitFailure
}

// hints suggest the next command for each failure kind.
var hints = []struct {
	kind error
	hint string
}{
	{stageerr.ErrAlreadyExists, "run '{cli} delete' first or pick another --output"},
	{stageerr.ErrConfigurationNotFound, "build that configuration first or check --prefix"},
	{stageerr.ErrArtifactNotFound, "check that the build finished and that --prefix points at the build tree"},
	{stageerr.ErrStagingNotInitialized, "run '{cli} new <configuration>' first"},
	{stageerr.ErrNotPopulated, "run '{cli} populate <configuration> <module>' first"},
	{stageerr.ErrNotFound, "nothing to delete"},
	{platform.ErrUnsupportedPlatform, "supported hosts are windows, linux, darwin and the BSDs"},
}

// ErrorAdapter formats errors for the terminal and logs them.
type ErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
}

// NewErrorAdapter creates an ErrorAdapter. A nil logger uses slog.Default.
func NewErrorAdapter(verbose bool, logger *slog.Logger) *ErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ErrorAdapter{verbose: verbose, logger: logger}
}

// ExitCodeFor returns ExitStatus(err).
func (a *ErrorAdapter) ExitCodeFor(err error) int {
	return ExitStatus(err)
}

// FormatError renders err for display, with a hint for known failure kinds.
func (a *ErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}

	var usage *UsageError
	if errors.As(err, &usage) {
		return fmt.Sprintf("Error: %v\nRun '%s --help' for usage.", err, branding.CLIName())
	}
	var exit *launcher.ExitError
	if errors.As(err, &exit) {
		return fmt.Sprintf("Error: %v", err)
	}

	msg := fmt.Sprintf("Error: %v", err)
	for _, h := range hints {
		if errors.Is(err, h.kind) {
			return msg + "\nHint: " + strings.ReplaceAll(h.hint, "{cli}", branding.CLIName())
		}
	}
	return msg
}

// Log records err at error level, with the failure kind when it has one.
func (a *ErrorAdapter) Log(err error) {
	if err == nil {
		return
	}
	attrs := []any{slog.String("error", err.Error())}
	if kind := stageerr.KindOf(err); kind != nil {
		attrs = append(attrs, slog.String("kind", kind.Error()))
	}
	if a.verbose {
		a.logger.Error("Operation failed", attrs...)
		return
	}
	a.logger.Debug("Operation failed", attrs...)
}
