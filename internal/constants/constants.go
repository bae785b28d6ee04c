package constants

// File Names
const (
	EnvFileName       = ".env"
	AppConfigFileName = "envset.toml"
	LockFileSuffix    = ".lock"
	BackupFileSuffix  = ".bak"
	BackupTimeFormat  = "20060102.15.04.05"
)

// Folder Names
const (
	BackupsDirName = "backups"
)

// Environment toggles
const (
	HistoryEnvVar = "ENVSET_HISTORY"
)
