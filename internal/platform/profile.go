package platform

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// ErrUnsupportedPlatform is returned when the host OS has no known suffix mapping.
var ErrUnsupportedPlatform = errors.New("unsupported platform")

// LinkStrategy is how build artifacts are placed into a staging directory.
type LinkStrategy int

const (
	// Copy places a byte copy of each artifact, preserving its modification time.
	Copy LinkStrategy = iota
	// Symlink places a symbolic link pointing back at the build artifact.
	Symlink
)

// String returns the configuration spelling of the strategy.
func (s LinkStrategy) String() string {
	switch s {
	case Copy:
		return "copy"
	case Symlink:
		return "symlink"
	default:
		return "unknown"
	}
}

// ParseLinkStrategy parses "copy" or "symlink" (case-insensitive).
func ParseLinkStrategy(s string) (LinkStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "copy":
		return Copy, nil
	case "symlink", "link":
		return Symlink, nil
	default:
		return Copy, fmt.Errorf("unknown link strategy %q: expected copy or symlink", s)
	}
}

// Profile describes the file naming and linking conventions of a host.
type Profile struct {
	OS               string
	ExecutableSuffix string
	LibrarySuffix    string
	LinkStrategy     LinkStrategy
}

// posixFamily lists the GOOS values that use the ELF/Mach-O conventions of the
// engine build (no executable suffix, .so modules).
var posixFamily = map[string]bool{
	"linux":     true,
	"darwin":    true,
	"freebsd":   true,
	"netbsd":    true,
	"openbsd":   true,
	"dragonfly": true,
	"solaris":   true,
	"illumos":   true,
	"aix":       true,
}

// Resolve returns the profile for the given GOOS value. Unknown systems fail
// with ErrUnsupportedPlatform instead of defaulting to POSIX names.
func Resolve(goos string) (Profile, error) {
	if goos == "windows" {
		return Profile{
			OS:               goos,
			ExecutableSuffix: ".exe",
			LibrarySuffix:    ".dll",
			LinkStrategy:     Symlink,
		}, nil
	}
	if posixFamily[goos] {
		return Profile{
			OS:               goos,
			ExecutableSuffix: "",
			LibrarySuffix:    ".so",
			LinkStrategy:     Copy,
		}, nil
	}
	return Profile{}, fmt.Errorf("%w: %q", ErrUnsupportedPlatform, goos)
}

// Current resolves the profile of the running host.
func Current() (Profile, error) {
	return Resolve(runtime.GOOS)
}

// WithStrategy returns a copy of p using strategy s.
func (p Profile) WithStrategy(s LinkStrategy) Profile {
	p.LinkStrategy = s
	return p
}

// Executable returns the file name of an executable with the given base name.
func (p Profile) Executable(base string) string {
	return base + p.ExecutableSuffix
}

// Library returns the file name of a shared library with the given base name.
func (p Profile) Library(base string) string {
	return base + p.LibrarySuffix
}
