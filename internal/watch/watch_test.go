package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucass-carneiro/surge-stage/internal/locator"
	"github.com/lucass-carneiro/surge-stage/internal/platform"
	"github.com/lucass-carneiro/surge-stage/internal/testutil/buildtree"
)

func TestDirs(t *testing.T) {
	profile, err := platform.Resolve("linux")
	require.NoError(t, err)
	tree := buildtree.New(t, profile).
		Player(locator.Debug).
		Shaders("a.spv").
		Module(locator.Debug, "physics", buildtree.ModuleOptions{})

	dirs := Dirs(locator.New(profile), tree.Request(locator.Debug, "physics"))

	assert.Equal(t, []string{
		filepath.Join(tree.Root, "Debug", "modules", "physics"),
		filepath.Join(tree.Root, "modules", "physics"),
		filepath.Join(tree.Root, "Debug", "player"),
		filepath.Join(tree.Root, "shaders"),
	}, dirs)
}

func TestRunNothingToWatch(t *testing.T) {
	err := New(nil, func(context.Context) error { return nil }).Run(context.Background())
	assert.Error(t, err)
}

func TestRunDebouncesUpdates(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))

	calls := make(chan struct{}, 16)
	w := New([]string{dir}, func(context.Context) error {
		calls <- struct{}{}
		return errors.New("update failures do not stop the watcher")
	}).WithDebounce(100 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Give the watcher time to register its directories.
	time.Sleep(200 * time.Millisecond)
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "nested", "physics.so"), []byte{byte(i)}, 0o644))
	}

	select {
	case <-calls:
	case <-time.After(5 * time.Second):
		t.Fatal("update was not triggered")
	}

	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.ini"), []byte("x"), 0o644))
	select {
	case <-calls:
	case <-time.After(5 * time.Second):
		t.Fatal("watcher stopped after a failed update")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}
