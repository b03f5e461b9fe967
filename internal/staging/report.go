package staging

import "github.com/lucass-carneiro/surge-stage/internal/locator"

// ActionKind names what happened to one staged path.
type ActionKind string

const (
	ActionCreated       ActionKind = "created"
	ActionCopied        ActionKind = "copied"
	ActionLinked        ActionKind = "linked"
	ActionSideStaged    ActionKind = "side-staged"
	ActionRefreshed     ActionKind = "refreshed"
	ActionActivated     ActionKind = "activated"
	ActionRemoved       ActionKind = "removed"
	ActionPostProcessed ActionKind = "post-processed"
)

// Action is one filesystem change made by an operation.
type Action struct {
	Kind     ActionKind
	Artifact locator.Kind
	Path     string
}

// Report lists what an operation changed. Warnings hold non-fatal failures
// such as a post-processing error.
type Report struct {
	Op       string
	Output   string
	Actions  []Action
	Warnings []error
}

func newReport(op, output string) *Report {
	return &Report{Op: op, Output: output}
}

func (r *Report) add(kind ActionKind, artifact locator.Kind, path string) {
	r.Actions = append(r.Actions, Action{Kind: kind, Artifact: artifact, Path: path})
}

// Count returns the number of actions of the given kind.
func (r *Report) Count(kind ActionKind) int {
	n := 0
	for _, a := range r.Actions {
		if a.Kind == kind {
			n++
		}
	}
	return n
}

// Changed reports whether the operation touched the filesystem.
func (r *Report) Changed() bool {
	return len(r.Actions) > 0
}
