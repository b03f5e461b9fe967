// Package config manages project-level settings stored in stage.yaml in the
// working directory. Every key can be overridden by a STAGE_ environment
// variable, and command-line flags override both. The file is validated
// against an embedded JSON schema before it is used.
package config
