package paths

import (
	"EnvSet/internal/constants"
	"EnvSet/internal/version"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

var (
	// ConfigHomeOverride allows overriding the config home for tests.
	ConfigHomeOverride string
	// StateHomeOverride allows overriding the state home for tests.
	StateHomeOverride string
)

func appDirName() string {
	return strings.ToLower(version.ApplicationName)
}

// GetConfigDir returns the absolute path to the envset configuration directory
// (e.g., ~/.config/envset).
func GetConfigDir() string {
	if ConfigHomeOverride != "" {
		return filepath.Join(ConfigHomeOverride, appDirName())
	}
	return filepath.Join(xdg.ConfigHome, appDirName())
}

// GetConfigFilePath returns the absolute path to the envset.toml file.
func GetConfigFilePath() string {
	return filepath.Join(GetConfigDir(), constants.AppConfigFileName)
}

// GetStateDir returns the absolute path to the envset state directory.
func GetStateDir() string {
	if StateHomeOverride != "" {
		return filepath.Join(StateHomeOverride, appDirName())
	}
	return filepath.Join(xdg.StateHome, appDirName())
}

// GetBackupsDir returns the default directory for .env backups.
func GetBackupsDir() string {
	return filepath.Join(GetStateDir(), constants.BackupsDirName)
}

// ExpandVariables expands ${VAR} references in configured paths.
// It supports:
// - ${XDG_CONFIG_HOME} -> xdg.ConfigHome
// - ${XDG_STATE_HOME}  -> xdg.StateHome (or the test override)
// - ${HOME}            -> os.UserHomeDir()
// Anything else is looked up in the process environment.
func ExpandVariables(val string) string {
	mapper := func(varName string) string {
		switch varName {
		case "XDG_CONFIG_HOME":
			if ConfigHomeOverride != "" {
				return ConfigHomeOverride
			}
			return xdg.ConfigHome
		case "XDG_STATE_HOME":
			if StateHomeOverride != "" {
				return StateHomeOverride
			}
			return xdg.StateHome
		case "HOME":
			home, err := os.UserHomeDir()
			if err != nil {
				return ""
			}
			return home
		}
		return os.Getenv(varName)
	}
	return os.Expand(val, mapper)
}
