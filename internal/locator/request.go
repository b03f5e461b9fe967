package locator

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Configuration is an engine build configuration.
type Configuration int

const (
	Debug Configuration = iota
	Release
	Profile
)

// String returns the directory name the build driver uses for c.
func (c Configuration) String() string {
	switch c {
	case Debug:
		return "Debug"
	case Release:
		return "Release"
	case Profile:
		return "Profile"
	default:
		return "Unknown"
	}
}

// ParseConfiguration parses a configuration name case-insensitively.
func ParseConfiguration(name string) (Configuration, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return Debug, nil
	case "release":
		return Release, nil
	case "profile":
		return Profile, nil
	default:
		return Debug, fmt.Errorf("unknown configuration %q: expected Debug, Release or Profile", name)
	}
}

// Request is the resolved input of a single staging invocation.
type Request struct {
	RootPrefix      string
	Configuration   Configuration
	Module          string // empty for operations that do not target a module
	OutputDirectory string
	Args            []string // forwarded to the player by run
}

// Validate checks that the request names usable paths.
func (r Request) Validate() error {
	if r.RootPrefix == "" {
		return fmt.Errorf("root prefix is empty")
	}
	if r.OutputDirectory == "" {
		return fmt.Errorf("output directory is empty")
	}
	if r.Module != "" {
		if r.Module != filepath.Base(r.Module) || r.Module == "." || r.Module == ".." {
			return fmt.Errorf("invalid module name %q: must be a plain directory name", r.Module)
		}
	}
	return nil
}

// RequireModule returns an error when the request does not name a module.
func (r Request) RequireModule() error {
	if r.Module == "" {
		return fmt.Errorf("a module name is required")
	}
	return nil
}
