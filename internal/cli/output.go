package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"text/tabwriter"

	"github.com/gookit/color"

	"github.com/lucass-carneiro/surge-stage/internal/staging"
)

// printReport writes one line per action followed by any warnings.
func printReport(w io.Writer, r *staging.Report) {
	for _, a := range r.Actions {
		fmt.Fprintf(w, "  %s %-14s %s\n", color.Success.Sprint("✓"), a.Kind, displayPath(r.Output, a.Path))
	}
	for _, warning := range r.Warnings {
		fmt.Fprintf(w, "  %s %v\n", color.Warn.Sprint("!"), warning)
	}

	switch {
	case len(r.Warnings) > 0:
		fmt.Fprintln(w, color.Warn.Sprintf("%s finished with %d warning(s).", r.Op, len(r.Warnings)))
	case !r.Changed():
		fmt.Fprintln(w, "Nothing to do, staging directory is up to date.")
	default:
		fmt.Fprintln(w, color.Success.Sprintf("%s completed: %d change(s) in %s", r.Op, len(r.Actions), r.Output))
	}
}

// printStatus writes the status entries as an aligned table.
func printStatus(w io.Writer, output string, entries []staging.Entry) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ARTIFACT\tPATH\tSTATE")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Artifact, displayPath(output, e.Path), stateLabel(e.State))
	}
	return tw.Flush()
}

func stateLabel(s staging.State) string {
	switch s {
	case staging.StateUpToDate:
		return color.Success.Sprint(s)
	case staging.StateStale, staging.StatePendingActivation:
		return color.Warn.Sprint(s)
	case staging.StateMissing:
		return color.Danger.Sprint(s)
	default:
		return string(s)
	}
}

// displayPath shortens path relative to the staging directory.
func displayPath(output, path string) string {
	if rel, err := filepath.Rel(output, path); err == nil && rel != "." {
		return rel
	}
	return path
}
