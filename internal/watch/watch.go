// Package watch re-runs an update whenever the build output of a module
// changes on disk.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/lucass-carneiro/surge-stage/internal/locator"
	"github.com/lucass-carneiro/surge-stage/internal/logfields"
)

// DefaultDebounce is how long the watcher waits for a burst of events to settle.
const DefaultDebounce = 500 * time.Millisecond

// UpdateFunc is called after every settled burst of changes.
type UpdateFunc func(ctx context.Context) error

// Watcher runs UpdateFunc sequentially on the goroutine that calls Run.
type Watcher struct {
	dirs     []string
	update   UpdateFunc
	debounce time.Duration
	logger   *slog.Logger
}

// New returns a Watcher over dirs. Subdirectories are watched too.
func New(dirs []string, update UpdateFunc) *Watcher {
	return &Watcher{
		dirs:     dirs,
		update:   update,
		debounce: DefaultDebounce,
		logger:   slog.Default(),
	}
}

// WithDebounce sets the settle interval. Non-positive values keep the default.
func (w *Watcher) WithDebounce(d time.Duration) *Watcher {
	if d > 0 {
		w.debounce = d
	}
	return w
}

// WithLogger sets a custom logger.
func (w *Watcher) WithLogger(logger *slog.Logger) *Watcher {
	w.logger = logger
	return w
}

// Dirs returns the directories whose changes affect req: the module build
// output, the module source directory, the player output and the shaders.
// Directories that do not exist are left out.
func Dirs(loc *locator.Locator, req locator.Request) []string {
	candidates := []string{
		filepath.Dir(loc.PrimaryLibrary(req).Source),
		filepath.Join(req.RootPrefix, locator.ModulesDir, req.Module),
		filepath.Join(loc.ConfigurationDir(req), locator.PlayerDir),
		filepath.Join(req.RootPrefix, locator.ShadersDir),
	}

	seen := make(map[string]bool)
	var dirs []string
	for _, dir := range candidates {
		if seen[dir] {
			continue
		}
		seen[dir] = true
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

// Run watches until ctx is done. Update failures are logged and watching
// continues; only a failure to set up the watch is returned.
func (w *Watcher) Run(ctx context.Context) error {
	if len(w.dirs) == 0 {
		return fmt.Errorf("nothing to watch")
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fsw.Close()

	for _, dir := range w.dirs {
		if err := addTree(fsw, dir); err != nil {
			return err
		}
		w.logger.Info("Watching for changes", logfields.Path(dir))
	}

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
				continue
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := addTree(fsw, event.Name); err != nil {
						w.logger.Warn("Cannot watch new directory", logfields.Path(event.Name), logfields.Error(err))
					}
				}
			}
			w.logger.Debug("Change detected", logfields.Path(event.Name), slog.String("event", event.Op.String()))

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("File watcher error", logfields.Error(err))

		case <-fire:
			fire = nil
			if err := w.update(ctx); err != nil {
				w.logger.Error("Update failed", logfields.Error(err))
			}
		}
	}
}

// addTree watches dir and every directory below it.
func addTree(fsw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := fsw.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}
