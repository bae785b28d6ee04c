package config

import (
	"EnvSet/internal/console"
	"EnvSet/internal/constants"
	"EnvSet/internal/logger"
	"EnvSet/internal/paths"
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// DefaultLockTimeout bounds how long a write waits for the file lock.
const DefaultLockTimeout = 10 * time.Second

// AppConfig holds the application configuration settings.
type AppConfig struct {
	Env EnvConfig `toml:"env"`
	Log LogConfig `toml:"log"`
	UI  UIConfig  `toml:"ui"`

	// These are helper fields for runtime use, not saved to TOML
	BackupDir   string        `toml:"-"`
	LockTimeout time.Duration `toml:"-"`
}

// EnvConfig holds settings for editing environment files.
type EnvConfig struct {
	File        string `toml:"file"`         // default file when none is given
	History     bool   `toml:"history"`      // keep a comment with the previous line
	Backup      bool   `toml:"backup"`       // copy the file aside before writing
	BackupDir   string `toml:"backup_dir"`   // empty uses the state dir; supports ${XDG_STATE_HOME}, ${HOME}
	LockTimeout string `toml:"lock_timeout"` // Go duration, e.g. "10s"
}

// LogConfig holds logging settings.
type LogConfig struct {
	File string `toml:"file"` // empty disables the log file
}

// UIConfig holds console output settings.
type UIConfig struct {
	LineCharacters bool `toml:"line_characters"`
}

// Default returns the built-in configuration.
func Default() AppConfig {
	conf := AppConfig{
		Env: EnvConfig{
			File:        constants.EnvFileName,
			History:     false,
			Backup:      false,
			LockTimeout: DefaultLockTimeout.String(),
		},
		UI: UIConfig{
			LineCharacters: true,
		},
	}
	conf.resolve()
	return conf
}

// resolve fills the runtime-only fields.
func (c *AppConfig) resolve() {
	c.BackupDir = paths.GetBackupsDir()
	if dir := strings.TrimSpace(c.Env.BackupDir); dir != "" {
		c.BackupDir = filepath.Clean(paths.ExpandVariables(dir))
	}
	c.LockTimeout = DefaultLockTimeout
	if d, err := time.ParseDuration(strings.TrimSpace(c.Env.LockTimeout)); err == nil && d > 0 {
		c.LockTimeout = d
	}
	if c.Env.File == "" {
		c.Env.File = constants.EnvFileName
	}
}

// ApplyEnv applies environment toggles on top of the file settings.
// ENVSET_HISTORY enables or disables the history comment.
func (c *AppConfig) ApplyEnv(getenv func(string) string) {
	if v := getenv(constants.HistoryEnvVar); v != "" {
		c.Env.History = IsTrue(v)
	}
}

// IsTrue interprets common truthy strings.
func IsTrue(v string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	return v == "1" || v == "true" || v == "yes" || v == "on"
}

// LoadAppConfig reads the configuration file and returns the configuration.
// A missing file yields the defaults, which are then saved. An unreadable or
// invalid file yields the defaults with a warning and is left untouched.
func LoadAppConfig(ctx context.Context) AppConfig {
	conf := Default()

	path := paths.GetConfigFilePath()
	data, err := os.ReadFile(path)
	if err == nil {
		perr := toml.Unmarshal(data, &conf)
		if perr == nil {
			conf.resolve()
			conf.ApplyEnv(os.Getenv)
			return conf
		}
		// Keep the user's file as is
		logger.Warn(ctx, "Invalid config file '{{_File_}}%s{{|-|}}', using defaults: %s", console.Escape(path), console.Escape(perr.Error()))
		conf = Default()
		conf.ApplyEnv(os.Getenv)
		return conf
	}

	// If it doesn't exist, save defaults to TOML
	if os.IsNotExist(err) {
		if err := SaveAppConfig(conf); err != nil {
			logger.Debug(ctx, "Failed to save default config '{{_File_}}%s{{|-|}}': %s", console.Escape(path), console.Escape(err.Error()))
		}
	} else {
		logger.Warn(ctx, "Failed to read config file '{{_File_}}%s{{|-|}}', using defaults: %s", console.Escape(path), console.Escape(err.Error()))
	}
	conf.ApplyEnv(os.Getenv)
	return conf
}

// SaveAppConfig writes the configuration to envset.toml.
func SaveAppConfig(conf AppConfig) error {
	path := paths.GetConfigFilePath()

	// Create directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(conf)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
