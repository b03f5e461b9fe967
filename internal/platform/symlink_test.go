package platform

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"
)

func TestCreateSymlink(t *testing.T) {
	tmp := t.TempDir()

	targetPath := filepath.Join(tmp, "physics.so")
	if err := os.WriteFile(targetPath, []byte("elf"), 0644); err != nil {
		t.Fatal(err)
	}

	linkPath := filepath.Join(tmp, "staged.so")
	if err := CreateSymlink(targetPath, linkPath); err != nil {
		t.Fatalf("CreateSymlink failed: %v", err)
	}

	data, err := os.ReadFile(linkPath)
	if err != nil {
		t.Fatalf("reading link: %v", err)
	}
	if string(data) != "elf" {
		t.Errorf("link content = %q, want %q", string(data), "elf")
	}
}

func TestCreateSymlinkRelative(t *testing.T) {
	tmp := t.TempDir()

	if err := os.WriteFile(filepath.Join(tmp, "surge"), []byte("player"), 0755); err != nil {
		t.Fatal(err)
	}

	linkPath := filepath.Join(tmp, "surge-link")
	if err := CreateSymlink("surge", linkPath); err != nil {
		t.Fatalf("CreateSymlink (relative) failed: %v", err)
	}

	if runtime.GOOS != "windows" {
		target, err := os.Readlink(linkPath)
		if err != nil {
			t.Fatalf("Readlink failed: %v", err)
		}
		if target != "surge" {
			t.Errorf("symlink target = %q, want %q", target, "surge")
		}
	}
}

func TestSymlinkKeepsSourceModTime(t *testing.T) {
	tmp := t.TempDir()

	targetPath := filepath.Join(tmp, "physics.so")
	if err := os.WriteFile(targetPath, []byte("elf"), 0644); err != nil {
		t.Fatal(err)
	}
	stamp := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	if err := os.Chtimes(targetPath, stamp, stamp); err != nil {
		t.Fatal(err)
	}

	linkPath := filepath.Join(tmp, "staged.so")
	if err := CreateSymlink(targetPath, linkPath); err != nil {
		t.Fatal(err)
	}

	info, err := os.Stat(linkPath)
	if err != nil {
		t.Fatal(err)
	}
	if !info.ModTime().Equal(stamp) {
		t.Errorf("linked mtime = %v, want %v", info.ModTime(), stamp)
	}
}

func TestRemoveSymlink(t *testing.T) {
	tmp := t.TempDir()

	targetPath := filepath.Join(tmp, "physics.so")
	if err := os.WriteFile(targetPath, []byte("elf"), 0644); err != nil {
		t.Fatal(err)
	}

	linkPath := filepath.Join(tmp, "staged.so")
	if err := CreateSymlink(targetPath, linkPath); err != nil {
		t.Fatal(err)
	}

	if err := RemoveSymlink(linkPath); err != nil {
		t.Fatalf("RemoveSymlink failed: %v", err)
	}

	if _, err := os.Lstat(linkPath); !os.IsNotExist(err) {
		t.Error("link still exists after RemoveSymlink")
	}
	if _, err := os.Stat(targetPath); err != nil {
		t.Errorf("target removed along with link: %v", err)
	}
}

func TestReadSymlinkTarget(t *testing.T) {
	tmp := t.TempDir()

	targetPath := filepath.Join(tmp, "physics.so")
	if err := os.WriteFile(targetPath, []byte("elf"), 0644); err != nil {
		t.Fatal(err)
	}

	linkPath := filepath.Join(tmp, "staged.so")
	if err := CreateSymlink(targetPath, linkPath); err != nil {
		t.Fatal(err)
	}

	got, err := ReadSymlinkTarget(linkPath)
	if err != nil {
		t.Fatalf("ReadSymlinkTarget failed: %v", err)
	}
	if got != targetPath {
		t.Errorf("ReadSymlinkTarget = %q, want %q", got, targetPath)
	}
}

func TestIsSymlinkSupported(t *testing.T) {
	result := IsSymlinkSupported(t.TempDir())
	if runtime.GOOS != "windows" && !result {
		t.Error("IsSymlinkSupported returned false on Unix")
	}
}
