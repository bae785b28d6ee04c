package cmd

import (
	"EnvSet/internal/console"
	"EnvSet/internal/constants"
	"EnvSet/internal/version"
	"fmt"
	"io"
	"strings"
)

// PrintHelp prints usage information to w.
// If target is empty, prints global usage.
// If target is specified, prints usage for that specific flag/command.
func PrintHelp(w io.Writer, target string) {
	fmt.Fprintln(w, console.Parse(GetUsage(target)))
}

// GetUsage returns usage information as a string.
func GetUsage(target string) string {
	var sb strings.Builder
	printStr := func(s string) {
		sb.WriteString(s + "\n")
	}

	appName := version.ApplicationName
	appCmd := version.CommandName

	if target == "" {
		printStr(fmt.Sprintf("Usage: {{_UsageCommand_}}%s{{|-|}} [{{_UsageCommand_}}<Flags>{{|-|}}] {{_UsageVar_}}<KEY>{{|-|}} [{{_UsageOption_}}<VALUE>{{|-|}}] [{{_UsageFile_}}<FILE>{{|-|}}]", appCmd))
		printStr(fmt.Sprintf("       {{_UsageCommand_}}%s{{|-|}} [{{_UsageCommand_}}<Flags>{{|-|}}] {{_UsageVar_}}<KEY>{{|-|}}={{_UsageOption_}}<VALUE>{{|-|}} [{{_UsageFile_}}<FILE>{{|-|}}]", appCmd))
		printStr(fmt.Sprintf("       {{_UsageCommand_}}%s{{|-|}} [{{_UsageCommand_}}<Flags>{{|-|}}] {{_UsageCommand_}}<Command>{{|-|}} [{{_UsageFile_}}<FILE>{{|-|}}]", appCmd))
		printStr("")
		printStr(fmt.Sprintf("{{_ApplicationName_}}%s{{|-|}} [{{_Version_}}%s{{|-|}}]", appName, version.Version))
		printStr("Set and save an environment variable in a .env file.")
		printStr("")
		printStr("The key may only contain letters and underscores and is written in upper case.")
		printStr("Values containing whitespace or '=' are wrapped in double quotes. An existing")
		printStr("assignment is replaced in place, otherwise the variable is appended to the file.")
		printStr(fmt.Sprintf("When no file is given, '{{_UsageFile_}}%s{{|-|}}' in the current directory is used.", constants.EnvFileName))
		printStr("Use '{{_UsageCommand_}}--{{|-|}}' before a value that starts with '-'.")
		printStr(fmt.Sprintf("Writes are serialized with a '{{_UsageFile_}}<FILE>%s{{|-|}}' lock file, which is left next to the", constants.LockFileSuffix))
		printStr("file. A symlinked file is updated through the link.")
		printStr("")
		printStr("Flags:")
		printStr("")
	}

	showAll := target == ""

	match := func(opts ...string) bool {
		if showAll {
			return true
		}
		for _, o := range opts {
			if o == target {
				return true
			}
		}
		return false
	}

	// Flags
	if match("-H", "--history", "--no-history") {
		printStr("{{_UsageCommand_}}-H --history{{|-|}}")
		printStr("	Keep the replaced line as a comment above the new one")
		printStr("{{_UsageCommand_}}--no-history{{|-|}}")
		printStr(fmt.Sprintf("	Do not keep the replaced line, even if enabled in the config or by {{_UsageVar_}}%s{{|-|}}", constants.HistoryEnvVar))
	}
	if match("-n", "--dry-run") {
		printStr("{{_UsageCommand_}}-n --dry-run{{|-|}}")
		printStr("	Show the changes that would be made without writing them")
	}
	if match("-b", "--backup", "--no-backup") {
		printStr("{{_UsageCommand_}}-b --backup{{|-|}}")
		printStr("	Copy the file to the backup folder before writing it")
		printStr("{{_UsageCommand_}}--no-backup{{|-|}}")
		printStr("	Do not back up the file, even if enabled in the config")
	}
	if match("-v", "--verbose") {
		printStr("{{_UsageCommand_}}-v --verbose{{|-|}}")
		printStr("	Verbose")
	}
	if match("-x", "--debug") {
		printStr("{{_UsageCommand_}}-x --debug{{|-|}}")
		printStr("	Debug")
	}

	if showAll {
		printStr("")
		printStr("Commands:")
		printStr("")
	}

	if match("--get") {
		printStr("{{_UsageCommand_}}--get{{|-|}} {{_UsageVar_}}<KEY>{{|-|}} [{{_UsageFile_}}<FILE>{{|-|}}]")
		printStr("	Print the value of the variable, without quotes")
	}
	if match("--get-line") {
		printStr("{{_UsageCommand_}}--get-line{{|-|}} {{_UsageVar_}}<KEY>{{|-|}} [{{_UsageFile_}}<FILE>{{|-|}}]")
		printStr("	Print the line that assigns the variable")
	}
	if match("-l", "--list") {
		printStr("{{_UsageCommand_}}-l --list{{|-|}} [{{_UsageFile_}}<FILE>{{|-|}}]")
		printStr("	List all variables in the file")
	}
	if match("--batch") {
		printStr("{{_UsageCommand_}}--batch{{|-|}} {{_UsageFile_}}<CHANGES.yml>{{|-|}} [{{_UsageFile_}}<FILE>{{|-|}}]")
		printStr("	Set every '{{_UsageVar_}}KEY{{|-|}}: {{_UsageOption_}}value{{|-|}}' pair of a YAML file in one go")
	}
	if match("-h", "--help") {
		printStr("{{_UsageCommand_}}-h --help{{|-|}}")
		printStr("	Show this usage information")
		printStr("{{_UsageCommand_}}-h --help{{|-|}} {{_UsageOption_}}<option>{{|-|}}")
		printStr("	Show the usage of the specified option")
	}
	if match("-V", "--version") {
		printStr("{{_UsageCommand_}}-V --version{{|-|}}")
		printStr("	Display version information")
	}

	return strings.TrimRight(sb.String(), "\n")
}
