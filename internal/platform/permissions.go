package platform

import (
	"os"
	"runtime"
)

// Chmod sets file permissions. On Windows this is a no-op because Windows
// does not support Unix-style permission bits.
func Chmod(path string, mode os.FileMode) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	return os.Chmod(path, mode)
}

// MarkExecutable adds the execute bits to a staged executable, keeping its
// other permission bits.
func MarkExecutable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	return Chmod(path, info.Mode().Perm()|0o111)
}
