package version

import (
	"os"
	"path/filepath"
	"strings"
)

// ApplicationName is the human-readable name of the application.
var ApplicationName = "EnvSet"

// CommandName is the name of the executable command (e.g., "envset").
// It is initialized dynamically from the executable filename.
var CommandName = "envset"

// Version is the current version of the application.
// This is intended to be overwritten at build time using:
// -ldflags "-X EnvSet/internal/version.Version=v1.2.3"
var Version = "v0.0.0-dev"

// Commit is the git commit hash of the build.
var Commit = "none"

// BuildDate is the date the binary was built.
var BuildDate = "unknown"

func init() {
	// Dynamically determine the command name from the executable
	baseName := filepath.Base(os.Args[0])
	// Strip extension (e.g., .exe on Windows)
	CommandName = strings.TrimSuffix(baseName, filepath.Ext(baseName))

	// Fallback when running from "go run" or a test binary
	if strings.EqualFold(CommandName, ApplicationName) || strings.EqualFold(CommandName, "main") || strings.HasSuffix(baseName, ".test") {
		CommandName = "envset"
	}
}
