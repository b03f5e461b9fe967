//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestRunFromStagingDirectory(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("player stand-in is a shell script")
	}
	env := setupTestEnv(t)
	mustStage(t, append([]string{"new", "Release"}, env.flags()...)...)

	out := mustStage(t, append([]string{"run"}, env.flags()...)...)

	want, err := filepath.EvalSymlinks(env.Output)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "surge running in "+want) && !strings.Contains(out, "surge running in "+env.Output) {
		t.Errorf("player did not run from the staging directory:\n%s", out)
	}

	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if cwd != env.WorkDir {
		t.Errorf("working directory = %s, want %s", cwd, env.WorkDir)
	}
}

func TestRunPassesThroughExitStatus(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("player stand-in is a shell script")
	}
	env := setupTestEnv(t)
	writeFile(t, filepath.Join(env.Prefix, "Release", "player", "surge"), "#!/bin/sh\nexit 7\n")
	mustStage(t, append([]string{"new", "Release"}, env.flags()...)...)

	code, _, _ := stage(t, append([]string{"run"}, env.flags()...)...)
	if code != 7 {
		t.Errorf("exit status = %d, want 7", code)
	}

	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if cwd != env.WorkDir {
		t.Errorf("working directory not restored: %s", cwd)
	}
}
