package staging

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucass-carneiro/surge-stage/internal/stageerr"
)

func writeAt(t *testing.T, path, content string, at time.Time) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	require.NoError(t, os.Chtimes(path, at, at))
}

func TestIsStale(t *testing.T) {
	base := time.Date(2024, time.March, 3, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		srcAt time.Time
		dstAt time.Time
		stale bool
	}{
		{name: "same mtime", srcAt: base, dstAt: base, stale: false},
		{name: "source newer", srcAt: base.Add(time.Second), dstAt: base, stale: true},
		{name: "source older", srcAt: base.Add(-time.Hour), dstAt: base, stale: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			src := filepath.Join(dir, "src.so")
			dst := filepath.Join(dir, "dst.so")
			writeAt(t, src, "a", tt.srcAt)
			writeAt(t, dst, "a", tt.dstAt)

			got, err := IsStale(src, dst)
			require.NoError(t, err)
			assert.Equal(t, tt.stale, got)
		})
	}
}

func TestIsStaleIgnoresContent(t *testing.T) {
	dir := t.TempDir()
	at := time.Date(2024, time.March, 3, 9, 30, 0, 0, time.UTC)
	writeAt(t, filepath.Join(dir, "a"), "one", at)
	writeAt(t, filepath.Join(dir, "b"), "two", at)

	stale, err := IsStale(filepath.Join(dir, "a"), filepath.Join(dir, "b"))
	require.NoError(t, err)
	assert.False(t, stale)
}

func TestIsStaleMissingDestination(t *testing.T) {
	dir := t.TempDir()
	writeAt(t, filepath.Join(dir, "src"), "a", time.Now())

	_, err := IsStale(filepath.Join(dir, "src"), filepath.Join(dir, "nope"))
	assert.ErrorIs(t, err, stageerr.ErrDestinationMissing)
}

func TestIsStaleMissingSource(t *testing.T) {
	dir := t.TempDir()
	writeAt(t, filepath.Join(dir, "dst"), "a", time.Now())

	_, err := IsStale(filepath.Join(dir, "nope"), filepath.Join(dir, "dst"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, stageerr.ErrDestinationMissing)
}
