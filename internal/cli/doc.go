// Package cli defines the Cobra command tree for the stage CLI. Each file in
// this package registers one top-level command (new, populate, run, etc.)
// with the root command. Commands build a locator.Request from flags, the
// settings file and positional arguments, then hand it to the deploy
// orchestrator; they only handle argument parsing and output formatting.
package cli
