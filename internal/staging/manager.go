package staging

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/lucass-carneiro/surge-stage/internal/locator"
	"github.com/lucass-carneiro/surge-stage/internal/logfields"
	"github.com/lucass-carneiro/surge-stage/internal/platform"
	"github.com/lucass-carneiro/surge-stage/internal/postprocess"
	"github.com/lucass-carneiro/surge-stage/internal/stageerr"
)

// NewSuffix is appended to a module library staged beside its live copy.
const NewSuffix = ".new"

// symlinkSupported is replaced in tests.
var symlinkSupported = platform.IsSymlinkSupported

// Manager performs staging operations for one platform profile. It assumes
// exclusive access to the staging directory for the duration of a call.
type Manager struct {
	locator *locator.Locator
	post    postprocess.Step
	logger  *slog.Logger
}

// NewManager returns a Manager that resolves paths with loc.
func NewManager(loc *locator.Locator) *Manager {
	return &Manager{
		locator: loc,
		logger:  slog.Default(),
	}
}

// WithLogger sets a custom logger.
func (m *Manager) WithLogger(logger *slog.Logger) *Manager {
	m.logger = logger
	return m
}

// WithPostProcess sets the step applied to the staged executable by New.
func (m *Manager) WithPostProcess(step postprocess.Step) *Manager {
	m.post = step
	return m
}

// Locator returns the locator the manager resolves paths with.
func (m *Manager) Locator() *locator.Locator {
	return m.locator
}

// New creates the staging directory and places the shaders and the player in it.
func (m *Manager) New(ctx context.Context, req locator.Request) (*Report, error) {
	const op = "new"
	out := req.OutputDirectory

	if exists(out) {
		return nil, stageerr.New(op, stageerr.ErrAlreadyExists, out)
	}
	if cfgDir := m.locator.ConfigurationDir(req); !isDir(cfgDir) {
		return nil, stageerr.New(op, stageerr.ErrConfigurationNotFound, cfgDir)
	}

	shaders, err := m.locator.Shaders(req)
	if err != nil {
		return nil, err
	}
	player, err := m.locator.Player(req)
	if err != nil {
		return nil, err
	}

	report := newReport(op, out)
	m.logger.Info("Creating staging directory", logfields.Path(out), logfields.Configuration(req.Configuration.String()))
	if err := os.Mkdir(out, 0o755); err != nil {
		return nil, fmt.Errorf("creating staging directory %s: %w", out, err)
	}
	report.add(ActionCreated, locator.KindStagingDir, out)

	if _, err := copyTree(shaders.Source, shaders.Destination, false); err != nil {
		return report, err
	}
	report.add(ActionCopied, locator.KindShaders, shaders.Destination)

	strategy := m.linkStrategy(out)
	for _, a := range player {
		action, err := m.place(a, strategy)
		if err != nil {
			return report, err
		}
		report.add(action, a.Kind, a.Destination)
	}

	exe := m.locator.Executable(req)
	if err := m.prepareExecutable(exe); err != nil {
		return report, err
	}

	if m.post != nil {
		// The tool runs from the staging directory, so a relative path would
		// resolve against the wrong place.
		if err := m.post.Apply(ctx, absPath(exe)); err != nil {
			perr := stageerr.Wrap(op, stageerr.ErrPostProcess, exe, err)
			m.logger.Warn("Post-processing failed, staged executable left as is", logfields.Path(exe), logfields.Error(err))
			report.Warnings = append(report.Warnings, perr)
		} else {
			report.add(ActionPostProcessed, locator.KindPlayer, exe)
		}
	}

	return report, nil
}

// Populate stages a module's libraries, its config.ini and its resources.
// Existing staged files are overwritten unconditionally.
func (m *Manager) Populate(req locator.Request) (*Report, error) {
	const op = "populate"
	if err := req.RequireModule(); err != nil {
		return nil, err
	}
	out := req.OutputDirectory

	if !isDir(out) {
		return nil, stageerr.New(op, stageerr.ErrStagingNotInitialized, out)
	}

	libs, err := m.locator.ModuleLibraries(req)
	if err != nil {
		return nil, err
	}
	cfg, err := m.locator.ModuleConfig(req)
	if err != nil {
		return nil, err
	}

	report := newReport(op, out)
	m.logger.Info("Populating module", logfields.Module(req.Module), logfields.Path(out))

	strategy := m.linkStrategy(out)
	for _, a := range libs {
		action, err := m.place(a, strategy)
		if err != nil {
			return report, err
		}
		report.add(action, a.Kind, a.Destination)
	}

	if err := copyFile(cfg.Source, cfg.Destination); err != nil {
		return report, fmt.Errorf("copying %s: %w", cfg.Source, err)
	}
	report.add(ActionCopied, cfg.Kind, cfg.Destination)

	if res, ok := m.locator.Resources(req); ok {
		action, err := m.place(res, strategy)
		if err != nil {
			return report, err
		}
		report.add(action, res.Kind, res.Destination)
	} else {
		m.logger.Debug("Module has no resources", logfields.Module(req.Module))
	}

	return report, nil
}

// Update brings a populated module up to date. Stale module libraries are
// side-staged as <lib>.new, leaving the live file untouched. The config file,
// the player files and the shader tree are refreshed in place when stale.
func (m *Manager) Update(req locator.Request) (*Report, error) {
	const op = "update"
	if err := req.RequireModule(); err != nil {
		return nil, err
	}
	out := req.OutputDirectory

	if !isDir(out) {
		return nil, stageerr.New(op, stageerr.ErrStagingNotInitialized, out)
	}
	primary := m.locator.PrimaryLibrary(req)
	if !exists(primary.Destination) {
		return nil, stageerr.New(op, stageerr.ErrNotPopulated, primary.Destination)
	}

	libs, err := m.locator.ModuleLibraries(req)
	if err != nil {
		return nil, err
	}

	report := newReport(op, out)
	strategy := m.linkStrategy(out)

	for _, a := range libs {
		if !exists(a.Destination) {
			// A library the module did not ship when it was populated.
			action, err := m.place(a, strategy)
			if err != nil {
				return report, err
			}
			report.add(action, a.Kind, a.Destination)
			continue
		}

		stale, err := IsStale(a.Source, a.Destination)
		if err != nil {
			return report, err
		}
		if !stale {
			continue
		}

		pending := a.Destination + NewSuffix
		m.logger.Info("Side-staging updated module library", logfields.Source(a.Source), logfields.Destination(pending))
		if err := copyFile(a.Source, pending); err != nil {
			return report, fmt.Errorf("side-staging %s: %w", a.Source, err)
		}
		report.add(ActionSideStaged, a.Kind, pending)
	}

	cfg, err := m.locator.ModuleConfig(req)
	if err != nil {
		return report, err
	}
	if err := m.refresh(report, cfg); err != nil {
		return report, err
	}

	player, err := m.locator.Player(req)
	if err != nil {
		return report, err
	}
	exe := m.locator.Executable(req)
	for _, a := range player {
		if err := m.refresh(report, a); err != nil {
			return report, err
		}
	}
	if err := m.prepareExecutable(exe); err != nil {
		return report, err
	}

	shaders, err := m.locator.Shaders(req)
	if err != nil {
		return report, err
	}
	written, err := copyTree(shaders.Source, shaders.Destination, true)
	if err != nil {
		return report, err
	}
	if written > 0 {
		report.add(ActionRefreshed, shaders.Kind, shaders.Destination)
	}

	if !report.Changed() {
		m.logger.Info("Staging directory is up to date", logfields.Module(req.Module))
	}
	return report, nil
}

// Delete removes the staging directory and everything under it.
func (m *Manager) Delete(req locator.Request) (*Report, error) {
	const op = "delete"
	out := req.OutputDirectory

	if !exists(out) {
		return nil, stageerr.New(op, stageerr.ErrNotFound, out)
	}

	m.logger.Info("Deleting staging directory", logfields.Path(out))
	if err := os.RemoveAll(out); err != nil {
		return nil, fmt.Errorf("removing %s: %w", out, err)
	}

	report := newReport(op, out)
	report.add(ActionRemoved, locator.KindStagingDir, out)
	return report, nil
}

// Activate renames every side-staged <lib>.new of the module over its live
// library. Libraries without a pending .new are left alone.
func (m *Manager) Activate(req locator.Request) (*Report, error) {
	const op = "activate"
	if err := req.RequireModule(); err != nil {
		return nil, err
	}
	out := req.OutputDirectory

	if !isDir(out) {
		return nil, stageerr.New(op, stageerr.ErrStagingNotInitialized, out)
	}
	primary := m.locator.PrimaryLibrary(req)
	if !exists(primary.Destination) {
		return nil, stageerr.New(op, stageerr.ErrNotPopulated, primary.Destination)
	}

	libs, err := m.locator.ModuleLibraries(req)
	if errors.Is(err, stageerr.ErrArtifactNotFound) {
		// The build output may be gone; the primary library is still known.
		libs = []locator.Artifact{primary}
	} else if err != nil {
		return nil, err
	}

	report := newReport(op, out)
	for _, a := range libs {
		pending := a.Destination + NewSuffix
		if !exists(pending) {
			continue
		}
		if err := m.swapIn(pending, a.Destination); err != nil {
			return report, fmt.Errorf("activating %s: %w", pending, err)
		}
		m.logger.Info("Activated module library", logfields.Path(a.Destination))
		report.add(ActionActivated, a.Kind, a.Destination)
	}
	return report, nil
}

// linkStrategy returns the profile's strategy, downgraded to Copy when links
// cannot be created inside the staging directory.
func (m *Manager) linkStrategy(out string) platform.LinkStrategy {
	strategy := m.locator.Profile().LinkStrategy
	if strategy == platform.Symlink && !symlinkSupported(out) {
		m.logger.Warn("Symbolic links are not available, copying instead", logfields.Path(out))
		return platform.Copy
	}
	return strategy
}

// place stages a single artifact with the given strategy. Shaders are always
// copied.
func (m *Manager) place(a locator.Artifact, strategy platform.LinkStrategy) (ActionKind, error) {
	if a.Kind == locator.KindShaders {
		strategy = platform.Copy
	}

	if err := removeExisting(a.Destination); err != nil {
		return "", fmt.Errorf("clearing %s: %w", a.Destination, err)
	}

	if strategy == platform.Symlink {
		err := platform.CreateSymlink(absPath(a.Source), a.Destination)
		if err == nil {
			m.logger.Debug("Linked artifact", logfields.Artifact(a.Kind.String()), logfields.Source(a.Source), logfields.Destination(a.Destination))
			return ActionLinked, nil
		}
		if !a.Dir {
			return "", fmt.Errorf("linking %s: %w", a.Source, err)
		}
		m.logger.Warn("Cannot link directory, copying instead", logfields.Source(a.Source), logfields.Error(err))
	}

	if a.Dir {
		if _, err := copyTree(a.Source, a.Destination, false); err != nil {
			return "", err
		}
	} else if err := copyFile(a.Source, a.Destination); err != nil {
		return "", fmt.Errorf("copying %s: %w", a.Source, err)
	}
	m.logger.Debug("Copied artifact", logfields.Artifact(a.Kind.String()), logfields.Source(a.Source), logfields.Destination(a.Destination))
	return ActionCopied, nil
}

// refresh copies a single file artifact in place when it is missing or stale.
func (m *Manager) refresh(report *Report, a locator.Artifact) error {
	if exists(a.Destination) {
		stale, err := IsStale(a.Source, a.Destination)
		if err != nil {
			return err
		}
		if !stale {
			return nil
		}
	}

	m.logger.Info("Refreshing staged file", logfields.Artifact(a.Kind.String()), logfields.Path(a.Destination))
	if err := copyFile(a.Source, a.Destination); err != nil {
		return fmt.Errorf("refreshing %s: %w", a.Destination, err)
	}
	report.add(ActionRefreshed, a.Kind, a.Destination)
	return nil
}

// prepareExecutable makes a copied player executable runnable. Linked
// executables keep the permissions of their build output.
func (m *Manager) prepareExecutable(exe string) error {
	info, err := os.Lstat(exe)
	if err != nil {
		return stageerr.Wrap("stage", stageerr.ErrArtifactNotFound, exe, err)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return nil
	}
	if err := platform.MarkExecutable(exe); err != nil {
		return fmt.Errorf("marking %s executable: %w", exe, err)
	}
	return nil
}
