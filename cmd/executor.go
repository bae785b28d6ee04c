package cmd

import (
	"EnvSet/internal/batch"
	"EnvSet/internal/config"
	"EnvSet/internal/console"
	"EnvSet/internal/envfile"
	"EnvSet/internal/inspect"
	"EnvSet/internal/logger"
	"EnvSet/internal/preview"
	"EnvSet/internal/store"
	"EnvSet/internal/version"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// previewContext is the number of unchanged lines shown around a change.
const previewContext = 2

// CmdState holds the settings resolved from the config, the environment and
// the flags.
type CmdState struct {
	Path    string
	History bool
	Backup  bool
	DryRun  bool
}

// resolveState applies the flags on top of the configuration.
func resolveState(conf config.AppConfig, inv *Invocation) CmdState {
	state := CmdState{
		Path:    inv.File(),
		History: conf.Env.History,
		Backup:  conf.Env.Backup,
		DryRun:  inv.DryRun,
	}
	if state.Path == "" {
		state.Path = conf.Env.File
	}
	switch {
	case inv.History:
		state.History = true
	case inv.NoHistory:
		state.History = false
	}
	switch {
	case inv.Backup:
		state.Backup = true
	case inv.NoBackup:
		state.Backup = false
	}
	return state
}

// Execute runs a parsed command line and returns the exit code.
// Values and tables go to stdout; messages go through the logger.
func Execute(ctx context.Context, conf config.AppConfig, inv *Invocation, stdout io.Writer) int {
	switch {
	case inv.Debug:
		logger.SetLevel(logger.LevelDebug)
	case inv.Verbose:
		logger.SetLevel(logger.LevelInfo)
	}

	state := resolveState(conf, inv)
	logger.Debug(ctx, "Execution Args -> State: %s, Mode: %d, Args: %s", console.Escape(fmt.Sprintf("%+v", state)), inv.Mode, console.Escape(fmt.Sprint(inv.Args)))

	var err error
	switch inv.Mode {
	case ModeHelp:
		handleHelp(stdout, inv)
	case ModeVersion:
		handleVersion(stdout)
	case ModeGet:
		err = handleGet(ctx, stdout, state, inv.Get, false)
	case ModeGetLine:
		err = handleGet(ctx, stdout, state, inv.GetLine, true)
	case ModeList:
		err = handleList(ctx, stdout, conf, state)
	case ModeBatch:
		err = handleBatch(ctx, stdout, conf, state, inv.Batch)
	default:
		err = handleSet(ctx, stdout, conf, state, inv)
	}

	if err != nil {
		logger.Error(ctx, "%s", console.Escape(err.Error()))
		return 1
	}
	return 0
}

func handleHelp(w io.Writer, inv *Invocation) {
	target := ""
	if len(inv.Args) > 0 {
		target = inv.Args[0]
		// Accept "get" for "--get" and "l" for "-l"
		if !strings.HasPrefix(target, "-") {
			if len(target) == 1 {
				target = "-" + target
			} else {
				target = "--" + target
			}
		}
	}
	PrintHelp(w, target)
}

func handleVersion(w io.Writer) {
	fmt.Fprintln(w, console.Sprintf("{{_ApplicationName_}}%s{{|-|}} [{{_Version_}}%s{{|-|}}]", version.ApplicationName, version.Version))
	fmt.Fprintf(w, "Commit: %s\nBuilt: %s\n", version.Commit, version.BuildDate)
}

func updateOptions(conf config.AppConfig, state CmdState) store.UpdateOptions {
	opts := store.UpdateOptions{
		LockTimeout: conf.LockTimeout,
		DryRun:      state.DryRun,
	}
	if state.Backup {
		opts.BackupDir = conf.BackupDir
	}
	return opts
}

func handleSet(ctx context.Context, w io.Writer, conf config.AppConfig, state CmdState, inv *Invocation) error {
	keyArg, valueArg, _ := inv.SetArgs()

	// Validate before touching the file so a bad key never writes
	rawKey, value := envfile.Split(keyArg, valueArg)
	key, err := envfile.ValidateKey(rawKey)
	if err != nil {
		return err
	}

	logger.Notice(ctx, "The following environment file is used: '{{_File_}}%s{{|-|}}'", console.Escape(state.Path))

	r := envfile.Rewriter{History: state.History}
	var res envfile.Result
	before, after, err := store.Update(ctx, state.Path, updateOptions(conf, state), func(content string) (string, error) {
		res = r.Rewrite(content, key, value)
		return res.Content, nil
	})
	if err != nil {
		return err
	}

	reportResult(ctx, key, envfile.Quote(value), res)
	if state.DryRun {
		showPreview(ctx, w, state.Path, before, after)
	}
	return nil
}

func handleBatch(ctx context.Context, w io.Writer, conf config.AppConfig, state CmdState, file string) error {
	entries, err := batch.Load(file)
	if err != nil {
		return fmt.Errorf("failed to load batch file: %w", err)
	}
	entries, err = batch.Validate(entries)
	if err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}
	if len(entries) == 0 {
		logger.Warn(ctx, "No variables found in '{{_File_}}%s{{|-|}}'.", console.Escape(file))
		return nil
	}

	logger.Notice(ctx, "The following environment file is used: '{{_File_}}%s{{|-|}}'", console.Escape(state.Path))

	r := envfile.Rewriter{History: state.History}
	var results []envfile.Result
	before, after, err := store.Update(ctx, state.Path, updateOptions(conf, state), func(content string) (string, error) {
		var newContent string
		newContent, results = batch.Apply(r, content, entries)
		return newContent, nil
	})
	if err != nil {
		return err
	}

	for i, res := range results {
		reportResult(ctx, entries[i].Key, envfile.Quote(entries[i].Value), res)
	}
	if state.DryRun {
		showPreview(ctx, w, state.Path, before, after)
	}
	return nil
}

func reportResult(ctx context.Context, key, value string, res envfile.Result) {
	if res.Created {
		logger.Notice(ctx, "A new environment variable with key '{{_Var_}}%s{{|-|}}' has been set to '{{_Value_}}%s{{|-|}}'", console.Escape(key), console.Escape(value))
		return
	}
	logger.Notice(ctx, "Environment variable with key '{{_Var_}}%s{{|-|}}' has been changed from '{{_OldValue_}}%s{{|-|}}' to '{{_Value_}}%s{{|-|}}'", console.Escape(key), console.Escape(res.OldValue()), console.Escape(value))
}

func showPreview(ctx context.Context, w io.Writer, path, before, after string) {
	changes := preview.Lines(before, after)
	if !preview.Changed(changes) {
		logger.Info(ctx, "No changes to '{{_File_}}%s{{|-|}}'.", console.Escape(path))
		return
	}
	fmt.Fprint(w, console.Parse(preview.Render(path, changes, previewContext)))
	logger.Notice(ctx, "Dry run, '{{_File_}}%s{{|-|}}' was not written.", console.Escape(path))
}

// readExisting reads a file for the read-only commands, which never create
// it.
func readExisting(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("environment file '%s' does not exist", path)
		}
		return "", err
	}
	return string(data), nil
}

func handleGet(ctx context.Context, w io.Writer, state CmdState, keyArg string, line bool) error {
	key, err := envfile.ValidateKey(keyArg)
	if err != nil {
		return err
	}
	content, err := readExisting(state.Path)
	if err != nil {
		return err
	}

	var out string
	var ok bool
	if line {
		out, ok = inspect.Line(content, key)
	} else {
		out, ok = inspect.Value(content, key)
	}
	if !ok {
		logger.Debug(ctx, "Variable '{{_Var_}}%s{{|-|}}' not found in '{{_File_}}%s{{|-|}}'.", console.Escape(key), console.Escape(state.Path))
		return nil
	}
	fmt.Fprintln(w, out)
	return nil
}

func handleList(ctx context.Context, w io.Writer, conf config.AppConfig, state CmdState) error {
	content, err := readExisting(state.Path)
	if err != nil {
		return err
	}

	pairs := inspect.List(content)
	if len(pairs) == 0 {
		logger.Notice(ctx, "No variables found in '{{_File_}}%s{{|-|}}'.", console.Escape(filepath.Clean(state.Path)))
		return nil
	}

	rows := make([][]string, 0, len(pairs))
	for _, p := range pairs {
		rows = append(rows, []string{p.Key, p.Value})
	}
	console.PrintTable(w, []string{"Variable", "Value"}, rows, conf.UI.LineCharacters)
	return nil
}
