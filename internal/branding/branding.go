// Package branding provides compile-time identity values for the stage CLI.
//
// The values live in branding.yaml next to this file and are baked into the
// binary with //go:embed. Hard defaults are used when the file is empty.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName       string `yaml:"cli_name"`
	DisplayName   string `yaml:"display_name"`
	Description   string `yaml:"description"`
	EnvPrefix     string `yaml:"env_prefix"`
	ConfigFile    string `yaml:"config_file"`
	PlayerName    string `yaml:"player_name"`
	DefaultOutput string `yaml:"default_output"`
}

func load() {
	once.Do(func() {
		defaults = brand{
			CLIName:       "stage",
			DisplayName:   "SURGE Stage",
			Description:   "Assemble and incrementally update SURGE staging directories",
			EnvPrefix:     "STAGE",
			ConfigFile:    "stage.yaml",
			PlayerName:    "surge",
			DefaultOutput: "staging",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "stage").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// EnvPrefix returns the environment variable prefix (e.g., "STAGE").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// ConfigFile returns the project-level settings file name (e.g., "stage.yaml").
func ConfigFile() string { load(); return defaults.ConfigFile }

// PlayerName returns the base name of the player executable, without suffix.
func PlayerName() string { load(); return defaults.PlayerName }

// DefaultOutput returns the default staging directory name.
func DefaultOutput() string { load(); return defaults.DefaultOutput }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("output") → "STAGE_OUTPUT".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
