package cmd

import (
	"EnvSet/internal/version"
	"io"

	"github.com/spf13/pflag"
)

// Options holds the parsed command line flags.
type Options struct {
	// Modifiers
	History   bool
	NoHistory bool
	DryRun    bool
	Backup    bool
	NoBackup  bool
	Verbose   bool
	Debug     bool

	// Commands
	Get     string
	GetLine string
	List    bool
	Batch   string
	Help    bool
	Version bool
}

// NewFlagSet defines the flags bound to opts.
func NewFlagSet(opts *Options) *pflag.FlagSet {
	fs := pflag.NewFlagSet(version.CommandName, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SortFlags = false

	// Modifiers
	fs.BoolVarP(&opts.History, "history", "H", false, "Keep the previous line as a comment")
	fs.BoolVar(&opts.NoHistory, "no-history", false, "Do not keep the previous line")
	fs.BoolVarP(&opts.DryRun, "dry-run", "n", false, "Show the changes without writing them")
	fs.BoolVarP(&opts.Backup, "backup", "b", false, "Back up the file before writing")
	fs.BoolVar(&opts.NoBackup, "no-backup", false, "Do not back up the file")
	fs.BoolVarP(&opts.Verbose, "verbose", "v", false, "Verbose output")
	fs.BoolVarP(&opts.Debug, "debug", "x", false, "Debug output")

	// Commands
	fs.StringVar(&opts.Get, "get", "", "Get variable value")
	fs.StringVar(&opts.GetLine, "get-line", "", "Get variable line")
	fs.BoolVarP(&opts.List, "list", "l", false, "List all variables")
	fs.StringVar(&opts.Batch, "batch", "", "Set variables from a YAML file")
	fs.BoolVarP(&opts.Help, "help", "h", false, "Show help")
	fs.BoolVarP(&opts.Version, "version", "V", false, "Show version")
	return fs
}

// commandFlags are the flags that select what to run. At most one may be
// given.
var commandFlags = map[string]Mode{
	"get":      ModeGet,
	"get-line": ModeGetLine,
	"list":     ModeList,
	"batch":    ModeBatch,
	"help":     ModeHelp,
	"version":  ModeVersion,
}
