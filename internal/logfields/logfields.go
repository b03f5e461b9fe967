// Package logfields holds the canonical slog attribute names used across the
// stage packages.
package logfields

import "log/slog"

const (
	KeyOp            = "op"
	KeyPath          = "path"
	KeySource        = "source"
	KeyDestination   = "destination"
	KeyArtifact      = "artifact"
	KeyModule        = "module"
	KeyConfiguration = "configuration"
	KeyStrategy      = "strategy"
	KeyExitCode      = "exit_code"
	KeyError         = "error"
)

func Op(name string) slog.Attr { return slog.String(KeyOp, name) }
func Path(p string) slog.Attr { return slog.String(KeyPath, p) }
func Source(p string) slog.Attr { return slog.String(KeySource, p) }
func Destination(p string) slog.Attr { return slog.String(KeyDestination, p) }
func Artifact(kind string) slog.Attr { return slog.String(KeyArtifact, kind) }
func Module(name string) slog.Attr { return slog.String(KeyModule, name) }
func Configuration(c string) slog.Attr { return slog.String(KeyConfiguration, c) }
func Strategy(s string) slog.Attr { return slog.String(KeyStrategy, s) }
func ExitCode(code int) slog.Attr { return slog.Int(KeyExitCode, code) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
