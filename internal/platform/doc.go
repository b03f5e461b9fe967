// Package platform resolves the host profile used for staging (executable and
// library suffixes plus the artifact linking strategy) and provides the
// cross-platform filesystem primitives behind it. On Unix systems artifacts are
// copied and symlinks are native. On Windows artifacts are linked, falling back
// to a copy with a .target sidecar when the host cannot create symlinks.
package platform
