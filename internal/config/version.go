package config

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// DevVersion is the version of binaries built without release ldflags.
const DevVersion = "dev"

// CheckVersion fails when version does not satisfy the min_version
// constraint, which is either a semver range or a bare lower bound.
// Development builds and an empty constraint always pass.
func CheckVersion(constraint, version string) error {
	if strings.TrimSpace(constraint) == "" || version == "" || version == DevVersion {
		return nil
	}

	// A bare version is a lower bound.
	if _, err := parseSemver(constraint); err == nil {
		constraint = ">= " + strings.TrimPrefix(strings.TrimSpace(constraint), "v")
	}

	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("parsing min_version %q: %w", constraint, err)
	}
	v, err := parseSemver(version)
	if err != nil {
		return fmt.Errorf("parsing version %q: %w", version, err)
	}
	if !c.Check(v) {
		return fmt.Errorf("version %s does not satisfy min_version %q", v, constraint)
	}
	return nil
}

// parseSemver strips a leading "v" and parses the version string.
func parseSemver(version string) (*semver.Version, error) {
	return semver.NewVersion(strings.TrimPrefix(version, "v"))
}
