package platform

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// sidecarSuffix names the file that records the target of a copy fallback.
const sidecarSuffix = ".target"

// CreateSymlink creates a symbolic link at link pointing to target.
// On Unix systems, this uses os.Symlink directly.
// On Windows, it attempts os.Symlink first (requires developer mode or admin
// rights), then falls back to copying the file and writing a .target sidecar.
// Directory targets have no fallback; the caller decides how to stage them.
func CreateSymlink(target, link string) error {
	if runtime.GOOS != "windows" {
		return os.Symlink(target, link)
	}

	if err := os.Symlink(target, link); err == nil {
		return nil
	}

	info, err := os.Stat(resolveTarget(target, link))
	if err != nil {
		return fmt.Errorf("symlink fallback: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("symlink to directory %s is not permitted on this host", target)
	}

	if err := copyFileForSymlink(target, link); err != nil {
		return fmt.Errorf("symlink fallback (copy) failed: %w", err)
	}

	// The copy is usable without the sidecar; only ReadSymlinkTarget needs it.
	_ = os.WriteFile(link+sidecarSuffix, []byte(target), 0o644)
	return nil
}

// RemoveSymlink removes a symlink (or its fallback copy and sidecar).
func RemoveSymlink(path string) error {
	err := os.Remove(path)
	os.Remove(path + sidecarSuffix) // best-effort
	return err
}

// ReadSymlinkTarget returns the target of a symlink.
// On Windows, if os.Readlink fails (because a copy fallback was used),
// it reads from the .target sidecar file.
func ReadSymlinkTarget(path string) (string, error) {
	target, err := os.Readlink(path)
	if err == nil {
		return target, nil
	}

	if runtime.GOOS != "windows" {
		return "", err
	}

	data, readErr := os.ReadFile(path + sidecarSuffix)
	if readErr != nil {
		return "", fmt.Errorf("readlink failed and no .target sidecar found: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// IsSymlinkSupported reports whether symlinks can be created inside dir.
// On Unix this is always true; on Windows a probe link is created and removed.
func IsSymlinkSupported(dir string) bool {
	if runtime.GOOS != "windows" {
		return true
	}

	link := filepath.Join(dir, ".stage-symlink-test")
	defer os.Remove(link)

	return os.Symlink(dir, link) == nil
}

// copyFileForSymlink copies target to link and stamps the copy with the
// target's modification time so staleness checks keep working.
func copyFileForSymlink(target, link string) error {
	src := resolveTarget(target, link)

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(link, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Chtimes(link, info.ModTime(), info.ModTime())
}

// resolveTarget resolves a relative link target against the link's directory.
func resolveTarget(target, link string) string {
	if filepath.IsAbs(target) {
		return target
	}
	return filepath.Join(filepath.Dir(link), target)
}
