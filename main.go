package main

import (
	"EnvSet/cmd"
	"EnvSet/internal/config"
	"EnvSet/internal/console"
	"EnvSet/internal/logger"
	"EnvSet/internal/paths"
	"EnvSet/internal/version"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
)

func main() {
	os.Exit(run())
}

func run() (exitCode int) {
	slog.SetDefault(logger.NewDefaultLogger())
	ctx := context.Background()

	var cleanups []func()
	// Defer cleanup to ensure it runs even if we return early or panic
	defer func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}()

	defer func() {
		if exitCode == 1 {
			fmt.Fprintln(os.Stderr, console.Parse(fmt.Sprintf("{{_ApplicationName_}}%s{{|-|}} did not finish running successfully.", version.ApplicationName)))
		}
	}()

	inv, err := cmd.Parse(os.Args[1:])
	if err != nil {
		var perr *cmd.ParseError
		if errors.As(err, &perr) {
			fmt.Fprint(os.Stderr, console.Parse(perr.Error()))
			return 2
		}
		logger.Error(ctx, "%s", console.Escape(err.Error()))
		return 2
	}

	conf := config.LoadAppConfig(ctx)
	logger.Debug(ctx, "Using config '{{_File_}}%s{{|-|}}'.", console.Escape(paths.GetConfigFilePath()))

	if conf.Log.File != "" {
		path := paths.ExpandVariables(conf.Log.File)
		f, err := logger.OpenLogFile(path)
		if err != nil {
			logger.Warn(ctx, "Failed to open log file '{{_File_}}%s{{|-|}}': %s", console.Escape(path), console.Escape(err.Error()))
		} else {
			slog.SetDefault(logger.NewLogger(logger.Options{
				Console: os.Stderr,
				Color:   console.IsTerminal(os.Stderr) && console.ColorsEnabled(),
				File:    f,
			}))
			cleanups = append(cleanups, func() { _ = f.Close() })
		}
	}

	return cmd.Execute(ctx, conf, inv, os.Stdout)
}
