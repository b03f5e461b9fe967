package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/lucass-carneiro/surge-stage/internal/branding"
)

const fileType = "yaml"

// Setting keys.
const (
	KeyPrefix             = "prefix"
	KeyOutput             = "output"
	KeyLink               = "link"
	KeyPostProcessCommand = "postprocess.command"
	KeyPostProcessArgs    = "postprocess.args"
	KeyMinVersion         = "min_version"
)

// Keys lists every recognised setting.
var Keys = []string{KeyPrefix, KeyOutput, KeyLink, KeyPostProcessCommand, KeyPostProcessArgs, KeyMinVersion}

// Settings is the decoded configuration.
type Settings struct {
	Prefix      string      `mapstructure:"prefix"`
	Output      string      `mapstructure:"output"`
	Link        string      `mapstructure:"link"`
	PostProcess PostProcess `mapstructure:"postprocess"`
	MinVersion  string      `mapstructure:"min_version"`
}

// PostProcess configures the step run on the staged executable by new.
type PostProcess struct {
	Command string   `mapstructure:"command"`
	Args    []string `mapstructure:"args"`
}

// Config is a loaded settings file layered with environment variables.
type Config struct {
	v    *viper.Viper
	path string
}

// FilePath returns the settings file path inside dir.
func FilePath(dir string) string {
	return filepath.Join(dir, branding.ConfigFile())
}

// Load reads the settings file at path. An empty path means stage.yaml in
// the working directory, which may be absent. An explicit path must exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = FilePath(".")
	}

	v := newViper()
	v.SetConfigFile(path)

	if _, err := os.Stat(path); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		return &Config{v: v, path: path}, nil
	}

	result, err := ValidateFile(path)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		return nil, &InvalidError{Path: path, Issues: result.Issues}
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return &Config{v: v, path: path}, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType(fileType)
	v.SetEnvPrefix(branding.EnvPrefix())
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults register every key so env-only values reach Unmarshal.
	v.SetDefault(KeyPrefix, ".")
	v.SetDefault(KeyOutput, "."+string(filepath.Separator)+branding.DefaultOutput())
	v.SetDefault(KeyLink, "")
	v.SetDefault(KeyPostProcessCommand, "")
	v.SetDefault(KeyPostProcessArgs, []string{})
	v.SetDefault(KeyMinVersion, "")
	return v
}

// Path returns the settings file path, whether or not it exists.
func (c *Config) Path() string {
	return c.path
}

// Settings decodes the layered configuration.
func (c *Config) Settings() (Settings, error) {
	var s Settings
	if err := c.v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("decoding settings: %w", err)
	}
	return s, nil
}

// Get returns a config value by key. Returns empty string if not set.
func (c *Config) Get(key string) string {
	if key == KeyPostProcessArgs {
		return strings.Join(c.v.GetStringSlice(key), ",")
	}
	return c.v.GetString(key)
}

// Set writes a key to the settings file, creating it when needed. Only the
// file's own values are written back; defaults and environment overrides
// are not. Comma-separated values are stored as a list for postprocess.args.
func (c *Config) Set(key, value string) error {
	if !IsKey(key) {
		return fmt.Errorf("unknown config key %q: expected one of %s", key, strings.Join(Keys, ", "))
	}

	file := viper.New()
	file.SetConfigFile(c.path)
	file.SetConfigType(fileType)
	if _, err := os.Stat(c.path); err == nil {
		if err := file.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %s: %w", c.path, err)
		}
	}

	if key == KeyPostProcessArgs {
		file.Set(key, splitList(value))
	} else {
		file.Set(key, value)
	}

	data, err := yaml.Marshal(file.AllSettings())
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	result, err := Validate(data)
	if err != nil {
		return err
	}
	if !result.Valid {
		return &InvalidError{Path: c.path, Issues: result.Issues}
	}

	if err := file.WriteConfigAs(c.path); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	c.v.Set(key, file.Get(key))
	return nil
}

// IsKey reports whether key is a recognised setting.
func IsKey(key string) bool {
	for _, k := range Keys {
		if k == key {
			return true
		}
	}
	return false
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
