package staging

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/lucass-carneiro/surge-stage/internal/locator"
	"github.com/lucass-carneiro/surge-stage/internal/platform"
	"github.com/lucass-carneiro/surge-stage/internal/stageerr"
)

// State describes a staged artifact relative to its build output.
type State string

const (
	StateMissing           State = "missing"
	StateUpToDate          State = "up-to-date"
	StateStale             State = "stale"
	StatePendingActivation State = "pending-activation"
)

// Entry is the status of one artifact.
type Entry struct {
	Artifact string `yaml:"artifact" json:"artifact"`
	Path     string `yaml:"path" json:"path"`
	State    State  `yaml:"state" json:"state"`
	Target   string `yaml:"target,omitempty" json:"target,omitempty"`
}

// Status reports the state of every artifact of req without touching the
// staging directory.
func (m *Manager) Status(req locator.Request) ([]Entry, error) {
	out := req.OutputDirectory
	if !isDir(out) {
		return nil, stageerr.New("status", stageerr.ErrStagingNotInitialized, out)
	}

	set, err := m.locator.Locate(req)
	if err != nil {
		return nil, err
	}

	var entries []Entry
	for _, a := range set.All() {
		state, err := artifactState(a)
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{
			Artifact: a.Kind.String(),
			Path:     a.Destination,
			State:    state,
			Target:   linkTarget(a.Destination),
		})
	}
	return entries, nil
}

func artifactState(a locator.Artifact) (State, error) {
	if !exists(a.Destination) {
		return StateMissing, nil
	}
	if a.Kind == locator.KindModule && exists(a.Destination+NewSuffix) {
		return StatePendingActivation, nil
	}
	if a.Dir {
		return treeState(a.Source, a.Destination)
	}

	stale, err := IsStale(a.Source, a.Destination)
	if err != nil {
		return "", err
	}
	if stale {
		return StateStale, nil
	}
	return StateUpToDate, nil
}

// treeState reports StateStale when any file under src is missing or stale
// under dst.
func treeState(src, dst string) (State, error) {
	state := StateUpToDate
	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if excludedNames[d.Name()] {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if !exists(target) {
			state = StateStale
			return filepath.SkipAll
		}
		stale, err := IsStale(path, target)
		if err != nil {
			return err
		}
		if stale {
			state = StateStale
			return filepath.SkipAll
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return state, nil
}

// linkTarget returns what a linked destination points at, or "" for copies.
func linkTarget(path string) string {
	info, err := os.Lstat(path)
	if err != nil || info.Mode()&os.ModeSymlink == 0 {
		return ""
	}
	target, err := platform.ReadSymlinkTarget(path)
	if err != nil {
		return ""
	}
	return target
}
