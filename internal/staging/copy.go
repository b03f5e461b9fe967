package staging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/otiai10/copy"

	"github.com/lucass-carneiro/surge-stage/internal/platform"
)

// excludedNames are build-system files never copied into a staging tree.
var excludedNames = map[string]bool{
	".git":      true,
	".DS_Store": true,
	"Thumbs.db": true,
}

// copyFile copies src to dst, preserving permissions and modification time.
// An existing dst is removed first so a previously staged symlink is replaced
// rather than written through to the build output.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	if err := removeExisting(dst); err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
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
	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}

// copyTree copies the directory src into dst, merging with anything already
// there. With onlyChanged set, files whose staged copy carries the same
// modification time are skipped. It returns the number of files written.
func copyTree(src, dst string, onlyChanged bool) (int, error) {
	written := 0
	opts := copy.Options{
		PreserveTimes: true,
		OnSymlink: func(string) copy.SymlinkAction {
			return copy.Deep
		},
		OnDirExists: func(string, string) copy.DirExistsAction {
			return copy.Merge
		},
		Skip: func(info os.FileInfo, src, dest string) (bool, error) {
			if excludedNames[info.Name()] {
				return true, nil
			}
			if info.IsDir() {
				return false, nil
			}
			if onlyChanged {
				if stale, err := IsStale(src, dest); err == nil && !stale {
					return true, nil
				}
			}
			written++
			return false, nil
		},
	}

	if err := copy.Copy(src, dst, opts); err != nil {
		return written, fmt.Errorf("copying %s to %s: %w", src, dst, err)
	}
	return written, nil
}

// removeExisting removes path if it exists, whatever it is.
func removeExisting(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if info.IsDir() {
		return os.RemoveAll(path)
	}
	// Also drops the sidecar a copy-fallback link leaves behind.
	return platform.RemoveSymlink(path)
}

// exists reports whether path exists without following a final symlink.
func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
