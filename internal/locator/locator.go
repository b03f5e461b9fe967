package locator

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/lucass-carneiro/surge-stage/internal/branding"
	"github.com/lucass-carneiro/surge-stage/internal/platform"
	"github.com/lucass-carneiro/surge-stage/internal/stageerr"
)

// Directory and file names of the build tree layout.
const (
	PlayerDir    = "player"
	ModulesDir   = "modules"
	ShadersDir   = "shaders"
	ConfigFile   = "config.ini"
	ResourcesDir = "resources"
)

// Kind identifies what an artifact is.
type Kind int

const (
	KindPlayer Kind = iota
	KindShaders
	KindConfig
	KindModule
	KindResources
	// KindStagingDir is the staging directory itself. It is never part of a Set.
	KindStagingDir
)

// kindOrder is the order in which a Set is walked.
var kindOrder = []Kind{KindPlayer, KindShaders, KindModule, KindConfig, KindResources}

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindShaders:
		return "shaders"
	case KindConfig:
		return "config"
	case KindModule:
		return "module"
	case KindResources:
		return "resources"
	case KindStagingDir:
		return "staging directory"
	default:
		return "unknown"
	}
}

// Artifact is one file or directory tree to place in the staging directory.
type Artifact struct {
	Kind        Kind
	Source      string
	Destination string
	Dir         bool
	Optional    bool
}

// Set maps each artifact kind to the artifacts of that kind.
type Set map[Kind][]Artifact

// All returns every artifact in a stable order.
func (s Set) All() []Artifact {
	var all []Artifact
	for _, k := range kindOrder {
		all = append(all, s[k]...)
	}
	return all
}

// Locator computes artifact paths for one platform profile.
type Locator struct {
	profile platform.Profile
}

// New returns a Locator for profile.
func New(profile platform.Profile) *Locator {
	return &Locator{profile: profile}
}

// Profile returns the profile the locator was built with.
func (l *Locator) Profile() platform.Profile {
	return l.profile
}

// ConfigurationDir returns {prefix}/{configuration}.
func (l *Locator) ConfigurationDir(req Request) string {
	return filepath.Join(req.RootPrefix, req.Configuration.String())
}

// Executable returns the staged player executable path.
func (l *Locator) Executable(req Request) string {
	return filepath.Join(req.OutputDirectory, l.profile.Executable(branding.PlayerName()))
}

// Player enumerates the player executable and every runtime library beside it.
func (l *Locator) Player(req Request) ([]Artifact, error) {
	dir := l.multiConfigDir(filepath.Join(l.ConfigurationDir(req), PlayerDir), req)

	exeName := l.profile.Executable(branding.PlayerName())
	if !isFile(filepath.Join(dir, exeName)) {
		return nil, stageerr.New("locate", stageerr.ErrArtifactNotFound, filepath.Join(dir, exeName))
	}

	names, err := l.matchingFiles(dir, func(name string) bool {
		if name == exeName || strings.HasSuffix(name, l.profile.LibrarySuffix) {
			return true
		}
		return l.profile.ExecutableSuffix != "" && strings.HasSuffix(name, l.profile.ExecutableSuffix)
	})
	if err != nil {
		return nil, err
	}

	artifacts := make([]Artifact, 0, len(names))
	for _, name := range names {
		artifacts = append(artifacts, Artifact{
			Kind:        KindPlayer,
			Source:      filepath.Join(dir, name),
			Destination: filepath.Join(req.OutputDirectory, name),
		})
	}
	return artifacts, nil
}

// Shaders returns the shader tree artifact.
func (l *Locator) Shaders(req Request) (Artifact, error) {
	src := filepath.Join(req.RootPrefix, ShadersDir)
	if !isDir(src) {
		return Artifact{}, stageerr.New("locate", stageerr.ErrArtifactNotFound, src)
	}
	return Artifact{
		Kind:        KindShaders,
		Source:      src,
		Destination: filepath.Join(req.OutputDirectory, ShadersDir),
		Dir:         true,
	}, nil
}

// PrimaryLibrary returns the artifact of {module}{lib} without checking that
// the build produced it. Its Destination is the file whose presence marks the
// module as populated.
func (l *Locator) PrimaryLibrary(req Request) Artifact {
	name := l.profile.Library(req.Module)
	return Artifact{
		Kind:        KindModule,
		Source:      filepath.Join(l.moduleBuildDir(req), name),
		Destination: filepath.Join(req.OutputDirectory, name),
	}
}

// ModuleLibraries enumerates the module's primary library followed by every
// auxiliary library in its build output directory.
func (l *Locator) ModuleLibraries(req Request) ([]Artifact, error) {
	if err := req.RequireModule(); err != nil {
		return nil, err
	}

	primary := l.PrimaryLibrary(req)
	if !isFile(primary.Source) {
		return nil, stageerr.New("locate", stageerr.ErrArtifactNotFound, primary.Source)
	}

	primaryName := filepath.Base(primary.Source)
	names, err := l.matchingFiles(filepath.Dir(primary.Source), func(name string) bool {
		return name != primaryName && strings.HasSuffix(name, l.profile.LibrarySuffix)
	})
	if err != nil {
		return nil, err
	}

	artifacts := []Artifact{primary}
	for _, name := range names {
		artifacts = append(artifacts, Artifact{
			Kind:        KindModule,
			Source:      filepath.Join(filepath.Dir(primary.Source), name),
			Destination: filepath.Join(req.OutputDirectory, name),
		})
	}
	return artifacts, nil
}

// ModuleConfig returns the module's config.ini artifact.
func (l *Locator) ModuleConfig(req Request) (Artifact, error) {
	if err := req.RequireModule(); err != nil {
		return Artifact{}, err
	}
	src := filepath.Join(l.moduleSourceDir(req), ConfigFile)
	if !isFile(src) {
		return Artifact{}, stageerr.New("locate", stageerr.ErrArtifactNotFound, src)
	}
	return Artifact{
		Kind:        KindConfig,
		Source:      src,
		Destination: filepath.Join(req.OutputDirectory, ConfigFile),
	}, nil
}

// Resources returns the module's resource tree. ok is false when the module
// has no resources directory.
func (l *Locator) Resources(req Request) (a Artifact, ok bool) {
	src := filepath.Join(l.moduleSourceDir(req), ResourcesDir)
	if req.Module == "" || !isDir(src) {
		return Artifact{}, false
	}
	return Artifact{
		Kind:        KindResources,
		Source:      src,
		Destination: filepath.Join(req.OutputDirectory, ResourcesDir),
		Dir:         true,
		Optional:    true,
	}, true
}

// Locate computes the full artifact set of req. Module artifacts are only
// included when the request names a module.
func (l *Locator) Locate(req Request) (Set, error) {
	set := make(Set)

	player, err := l.Player(req)
	if err != nil {
		return nil, err
	}
	set[KindPlayer] = player

	shaders, err := l.Shaders(req)
	if err != nil {
		return nil, err
	}
	set[KindShaders] = []Artifact{shaders}

	if req.Module == "" {
		return set, nil
	}

	libs, err := l.ModuleLibraries(req)
	if err != nil {
		return nil, err
	}
	set[KindModule] = libs

	cfg, err := l.ModuleConfig(req)
	if err != nil {
		return nil, err
	}
	set[KindConfig] = []Artifact{cfg}

	if res, ok := l.Resources(req); ok {
		set[KindResources] = []Artifact{res}
	}
	return set, nil
}

// moduleBuildDir returns {prefix}/{configuration}/modules/{module}, or its
// per-configuration subdirectory when a multi-config generator produced one.
func (l *Locator) moduleBuildDir(req Request) string {
	return l.multiConfigDir(filepath.Join(l.ConfigurationDir(req), ModulesDir, req.Module), req)
}

// moduleSourceDir returns {prefix}/modules/{module}.
func (l *Locator) moduleSourceDir(req Request) string {
	return filepath.Join(req.RootPrefix, ModulesDir, req.Module)
}

// multiConfigDir returns dir/{configuration} when that directory exists.
// Visual Studio style generators nest outputs one level deeper.
func (l *Locator) multiConfigDir(dir string, req Request) string {
	nested := filepath.Join(dir, req.Configuration.String())
	if isDir(nested) {
		return nested
	}
	return dir
}

// matchingFiles lists the non-directory entries of dir accepted by keep.
func (l *Locator) matchingFiles(dir string, keep func(name string) bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, stageerr.New("locate", stageerr.ErrArtifactNotFound, dir)
		}
		return nil, stageerr.Wrap("locate", stageerr.ErrArtifactNotFound, dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !keep(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
