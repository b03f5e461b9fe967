package locator_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucass-carneiro/surge-stage/internal/locator"
	"github.com/lucass-carneiro/surge-stage/internal/platform"
	"github.com/lucass-carneiro/surge-stage/internal/stageerr"
	"github.com/lucass-carneiro/surge-stage/internal/testutil/buildtree"
)

func linuxProfile(t *testing.T) platform.Profile {
	t.Helper()
	p, err := platform.Resolve("linux")
	require.NoError(t, err)
	return p
}

func windowsProfile(t *testing.T) platform.Profile {
	t.Helper()
	p, err := platform.Resolve("windows")
	require.NoError(t, err)
	return p
}

func destinations(artifacts []locator.Artifact) []string {
	var names []string
	for _, a := range artifacts {
		names = append(names, filepath.Base(a.Destination))
	}
	return names
}

func TestPlayerSingleBinary(t *testing.T) {
	tree := buildtree.New(t, linuxProfile(t)).Player(locator.Release)
	loc := locator.New(tree.Profile)
	req := tree.Request(locator.Release, "")

	player, err := loc.Player(req)
	require.NoError(t, err)
	require.Len(t, player, 1)

	assert.Equal(t, tree.PlayerExecutable(locator.Release), player[0].Source)
	assert.Equal(t, filepath.Join(req.OutputDirectory, "surge"), player[0].Destination)
	assert.Equal(t, loc.Executable(req), player[0].Destination)
}

func TestPlayerEnumeratesRuntimeLibraries(t *testing.T) {
	tree := buildtree.New(t, linuxProfile(t)).Player(locator.Debug, "libsurge_core", "libmimalloc")
	loc := locator.New(tree.Profile)

	player, err := loc.Player(tree.Request(locator.Debug, ""))
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"surge", "libsurge_core.so", "libmimalloc.so"}, destinations(player))
}

func TestPlayerWindowsMultiConfigLayout(t *testing.T) {
	tree := buildtree.New(t, windowsProfile(t))
	dir := filepath.Join(tree.Root, "Release", locator.PlayerDir, "Release")
	tree.Write(filepath.Join(dir, "surge.exe"), "pe")
	tree.Write(filepath.Join(dir, "mimalloc-redirect.dll"), "dll")
	tree.Write(filepath.Join(dir, "surge.pdb"), "symbols")

	loc := locator.New(tree.Profile)
	player, err := loc.Player(tree.Request(locator.Release, ""))
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"surge.exe", "mimalloc-redirect.dll"}, destinations(player))
	for _, a := range player {
		assert.Equal(t, dir, filepath.Dir(a.Source))
	}
}

func TestPlayerMissing(t *testing.T) {
	tree := buildtree.New(t, linuxProfile(t)).Configuration(locator.Release)
	loc := locator.New(tree.Profile)

	_, err := loc.Player(tree.Request(locator.Release, ""))
	assert.ErrorIs(t, err, stageerr.ErrArtifactNotFound)
}

func TestShaders(t *testing.T) {
	tree := buildtree.New(t, linuxProfile(t)).Shaders("sprite.vert.bin")
	loc := locator.New(tree.Profile)
	req := tree.Request(locator.Release, "")

	shaders, err := loc.Shaders(req)
	require.NoError(t, err)
	assert.True(t, shaders.Dir)
	assert.Equal(t, filepath.Join(tree.Root, "shaders"), shaders.Source)
	assert.Equal(t, filepath.Join(req.OutputDirectory, "shaders"), shaders.Destination)

	empty := buildtree.New(t, linuxProfile(t))
	_, err = locator.New(empty.Profile).Shaders(empty.Request(locator.Release, ""))
	assert.ErrorIs(t, err, stageerr.ErrArtifactNotFound)
}

func TestModuleLibraries(t *testing.T) {
	tree := buildtree.New(t, linuxProfile(t)).Module(locator.Release, "physics", buildtree.ModuleOptions{
		AuxLibraries: []string{"libbullet"},
	})
	loc := locator.New(tree.Profile)
	req := tree.Request(locator.Release, "physics")

	libs, err := loc.ModuleLibraries(req)
	require.NoError(t, err)
	require.Len(t, libs, 2)

	assert.Equal(t, tree.ModuleLibrary(locator.Release, "physics"), libs[0].Source, "primary library comes first")
	assert.Equal(t, filepath.Join(req.OutputDirectory, "physics.so"), libs[0].Destination)
	assert.Equal(t, "libbullet.so", filepath.Base(libs[1].Destination))
	assert.Equal(t, loc.PrimaryLibrary(req), libs[0])
}

func TestModuleLibrariesMissing(t *testing.T) {
	tree := buildtree.New(t, linuxProfile(t)).Configuration(locator.Release)
	loc := locator.New(tree.Profile)

	_, err := loc.ModuleLibraries(tree.Request(locator.Release, "physics"))
	assert.ErrorIs(t, err, stageerr.ErrArtifactNotFound)

	_, err = loc.ModuleLibraries(tree.Request(locator.Release, ""))
	assert.Error(t, err)
}

func TestModuleConfigAndResources(t *testing.T) {
	tree := buildtree.New(t, linuxProfile(t)).
		Module(locator.Release, "physics", buildtree.ModuleOptions{Resources: true}).
		Module(locator.Release, "audio", buildtree.ModuleOptions{})
	loc := locator.New(tree.Profile)

	req := tree.Request(locator.Release, "physics")
	cfg, err := loc.ModuleConfig(req)
	require.NoError(t, err)
	assert.Equal(t, tree.ModuleConfig("physics"), cfg.Source)
	assert.Equal(t, filepath.Join(req.OutputDirectory, "config.ini"), cfg.Destination)

	res, ok := loc.Resources(req)
	require.True(t, ok)
	assert.True(t, res.Optional)
	assert.Equal(t, filepath.Join(req.OutputDirectory, "resources"), res.Destination)

	_, ok = loc.Resources(tree.Request(locator.Release, "audio"))
	assert.False(t, ok, "audio has no resources directory")
}

func TestModuleConfigMissing(t *testing.T) {
	tree := buildtree.New(t, linuxProfile(t)).Module(locator.Release, "physics", buildtree.ModuleOptions{})
	require.NoError(t, os.Remove(tree.ModuleConfig("physics")))

	_, err := locator.New(tree.Profile).ModuleConfig(tree.Request(locator.Release, "physics"))
	assert.ErrorIs(t, err, stageerr.ErrArtifactNotFound)
}

func TestLocate(t *testing.T) {
	tree := buildtree.New(t, linuxProfile(t)).
		Player(locator.Release).
		Shaders("a.frag.bin").
		Module(locator.Release, "physics", buildtree.ModuleOptions{Resources: true})
	loc := locator.New(tree.Profile)

	engineOnly, err := loc.Locate(tree.Request(locator.Release, ""))
	require.NoError(t, err)
	assert.Len(t, engineOnly.All(), 2)

	full, err := loc.Locate(tree.Request(locator.Release, "physics"))
	require.NoError(t, err)

	var kinds []locator.Kind
	for _, a := range full.All() {
		kinds = append(kinds, a.Kind)
	}
	assert.Equal(t, []locator.Kind{
		locator.KindPlayer, locator.KindShaders, locator.KindModule, locator.KindConfig, locator.KindResources,
	}, kinds)
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind locator.Kind
		want string
	}{
		{locator.KindPlayer, "player"},
		{locator.KindShaders, "shaders"},
		{locator.KindConfig, "config"},
		{locator.KindModule, "module"},
		{locator.KindResources, "resources"},
		{locator.KindStagingDir, "staging directory"},
		{locator.Kind(99), "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.kind.String())
	}
}
