// Package buildtree writes fake engine build trees for tests: a player output
// directory, module libraries, shaders, config.ini and resources laid out the
// way the build driver produces them. Every file gets a fixed modification
// time so tests can move a single timestamp deterministically.
//
// It is test support only and must not be imported by production code.
package buildtree

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lucass-carneiro/surge-stage/internal/branding"
	"github.com/lucass-carneiro/surge-stage/internal/locator"
	"github.com/lucass-carneiro/surge-stage/internal/platform"
)

// BaseTime is the modification time of every file written by a Tree.
var BaseTime = time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)

// Tree is a fake build prefix rooted in a test temp directory.
type Tree struct {
	t       testing.TB
	Root    string
	Profile platform.Profile
}

// ModuleOptions controls what Module writes besides the primary library.
type ModuleOptions struct {
	Resources    bool
	AuxLibraries []string // base names, the library suffix is appended
}

// New returns an empty tree under t.TempDir().
func New(t testing.TB, profile platform.Profile) *Tree {
	t.Helper()
	root := filepath.Join(t.TempDir(), "build")
	if err := os.MkdirAll(root, 0o755); err != nil {
		t.Fatalf("creating build root: %v", err)
	}
	return &Tree{t: t, Root: root, Profile: profile}
}

// Player writes {cfg}/player/surge{exe} plus optional runtime libraries.
func (b *Tree) Player(cfg locator.Configuration, libs ...string) *Tree {
	b.t.Helper()
	dir := filepath.Join(b.Root, cfg.String(), locator.PlayerDir)
	b.Write(filepath.Join(dir, b.Profile.Executable(branding.PlayerName())), "player-binary")
	for _, lib := range libs {
		b.Write(filepath.Join(dir, b.Profile.Library(lib)), "player-lib "+lib)
	}
	// Build system noise that must never be staged.
	b.Write(filepath.Join(dir, "cmake_install.cmake"), "# generated")
	return b
}

// Shaders writes shaders/<name> for every name (names may contain subdirectories).
func (b *Tree) Shaders(names ...string) *Tree {
	b.t.Helper()
	for _, name := range names {
		b.Write(filepath.Join(b.Root, locator.ShadersDir, name), "spirv "+name)
	}
	return b
}

// Module writes the build output and source-side files of a module.
func (b *Tree) Module(cfg locator.Configuration, name string, opts ModuleOptions) *Tree {
	b.t.Helper()
	buildDir := filepath.Join(b.Root, cfg.String(), locator.ModulesDir, name)
	b.Write(filepath.Join(buildDir, b.Profile.Library(name)), "module "+name)
	for _, aux := range opts.AuxLibraries {
		b.Write(filepath.Join(buildDir, b.Profile.Library(aux)), "aux "+aux)
	}

	srcDir := filepath.Join(b.Root, locator.ModulesDir, name)
	b.Write(filepath.Join(srcDir, locator.ConfigFile), "[module]\nname = "+name+"\n")
	if opts.Resources {
		b.Write(filepath.Join(srcDir, locator.ResourcesDir, "textures", "atlas.png"), "png")
		b.Write(filepath.Join(srcDir, locator.ResourcesDir, "fonts", "mono.ttf"), "ttf")
	}
	return b
}

// Configuration creates an empty {cfg} directory.
func (b *Tree) Configuration(cfg locator.Configuration) *Tree {
	b.t.Helper()
	if err := os.MkdirAll(filepath.Join(b.Root, cfg.String()), 0o755); err != nil {
		b.t.Fatalf("creating configuration dir: %v", err)
	}
	return b
}

// ModuleLibrary returns the build path of a module's primary library.
func (b *Tree) ModuleLibrary(cfg locator.Configuration, name string) string {
	return filepath.Join(b.Root, cfg.String(), locator.ModulesDir, name, b.Profile.Library(name))
}

// PlayerExecutable returns the build path of the player executable.
func (b *Tree) PlayerExecutable(cfg locator.Configuration) string {
	return filepath.Join(b.Root, cfg.String(), locator.PlayerDir, b.Profile.Executable(branding.PlayerName()))
}

// ModuleConfig returns the source path of a module's config.ini.
func (b *Tree) ModuleConfig(name string) string {
	return filepath.Join(b.Root, locator.ModulesDir, name, locator.ConfigFile)
}

// Request returns a request staging into a fresh output directory next to the tree.
func (b *Tree) Request(cfg locator.Configuration, module string) locator.Request {
	return locator.Request{
		RootPrefix:      b.Root,
		Configuration:   cfg,
		Module:          module,
		OutputDirectory: filepath.Join(filepath.Dir(b.Root), "staging"),
	}
}

// Write creates path with content and stamps it with BaseTime.
func (b *Tree) Write(path, content string) {
	b.t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		b.t.Fatalf("creating %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		b.t.Fatalf("writing %s: %v", path, err)
	}
	b.Touch(path, BaseTime)
}

// Touch sets the modification time of path.
func (b *Tree) Touch(path string, at time.Time) {
	b.t.Helper()
	if err := os.Chtimes(path, at, at); err != nil {
		b.t.Fatalf("touching %s: %v", path, err)
	}
}
