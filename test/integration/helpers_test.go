//go:build integration

package integration_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lucass-carneiro/surge-stage/internal/cli"
	"github.com/lucass-carneiro/surge-stage/internal/deploy"
	"github.com/lucass-carneiro/surge-stage/internal/platform"
)

// buildTime is the modification time of every file in the fake build tree.
var buildTime = time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)

// testEnv holds paths to an isolated build tree and staging directory.
type testEnv struct {
	Prefix  string // build tree root
	Output  string // staging directory (not created)
	WorkDir string // working directory of the invocation
	Profile platform.Profile
}

// setupTestEnv writes a Release build with a player, two shaders and the
// "physics" module, and moves into an empty working directory.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	profile, err := platform.Current()
	if err != nil {
		t.Skipf("unsupported host: %v", err)
	}

	root := t.TempDir()
	env := &testEnv{
		Prefix:  filepath.Join(root, "build"),
		Output:  filepath.Join(root, "staging"),
		WorkDir: t.TempDir(),
		Profile: profile,
	}
	{
		prev, err := os.Getwd()
		if err != nil {
			t.Fatal(err)
		}
		if err := os.Chdir(env.WorkDir); err != nil {
			t.Fatal(err)
		}
		t.Cleanup(func() { _ = os.Chdir(prev) })
	}

	writeFile(t, filepath.Join(env.Prefix, "Release", "player", profile.Executable("surge")), "#!/bin/sh\necho \"surge running in $(pwd)\"\n")
	writeFile(t, filepath.Join(env.Prefix, "Release", "player", "CMakeCache.txt"), "# noise")
	writeFile(t, filepath.Join(env.Prefix, "shaders", "sprite.vert.spv"), "vert")
	writeFile(t, filepath.Join(env.Prefix, "shaders", "post", "bloom.frag.spv"), "frag")
	writeFile(t, filepath.Join(env.Prefix, "Release", "modules", "physics", profile.Library("physics")), "physics v1")
	writeFile(t, filepath.Join(env.Prefix, "modules", "physics", "config.ini"), "[physics]\ngravity = 9.81\n")

	return env
}

// flags returns the location flags every staging command takes.
func (e *testEnv) flags() []string {
	return []string{"--no-color", "--prefix", e.Prefix, "--output", e.Output}
}

// staged returns a path inside the staging directory.
func (e *testEnv) staged(parts ...string) string {
	return filepath.Join(append([]string{e.Output}, parts...)...)
}

// library returns the build path of the physics module library.
func (e *testEnv) library() string {
	return filepath.Join(e.Prefix, "Release", "modules", "physics", e.Profile.Library("physics"))
}

// stage runs one CLI invocation and returns its exit status and output.
func stage(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := cli.Run(context.Background(), cli.BuildInfo{Version: "0.9.0", Commit: "test", Date: "today"}, args, &stdout, &stderr)
	return deploy.ExitStatus(err), stdout.String(), stderr.String()
}

// mustStage runs an invocation that must succeed.
func mustStage(t *testing.T, args ...string) string {
	t.Helper()
	code, stdout, stderr := stage(t, args...)
	if code != 0 {
		t.Fatalf("stage %v exited %d:\n%s", args, code, stderr)
	}
	return stdout
}

// writeFile creates a file with parent directories and stamps it with buildTime.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating dir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	touch(t, path, buildTime)
}

func touch(t *testing.T, path string, at time.Time) {
	t.Helper()
	if err := os.Chtimes(path, at, at); err != nil {
		t.Fatalf("touching %s: %v", path, err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s", path)
	}
}

func assertNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Lstat(path); err == nil {
		t.Errorf("expected path to not exist: %s", path)
	}
}
