package cmd

import (
	"EnvSet/internal/console"
	"EnvSet/internal/version"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// ParseError describes a command line mistake, pointing a caret at the
// failing argument.
type ParseError struct {
	Args           []string // The full argument list passed to Parse
	Index          int      // The index where the error occurred
	Message        string   // The specific error message
	FailingCommand string   // The command being processed (e.g. "--get")
}

func (e *ParseError) Error() string {
	indent := "   "

	cmdLineParts := []string{fmt.Sprintf("{{_UserCommand_}}%s{{|-|}}", version.CommandName)}
	for i := 0; i <= e.Index && i < len(e.Args); i++ {
		str := console.Escape(e.Args[i])
		if i == e.Index {
			str = fmt.Sprintf("{{_UserCommandError_}}%s{{|-|}}", str)
		} else {
			str = fmt.Sprintf("{{_UserCommand_}}%s{{|-|}}", str)
		}
		cmdLineParts = append(cmdLineParts, str)
	}
	cmdLineStr := "'" + strings.Join(cmdLineParts, " ") + "'"

	// "   " + "'" + "envset" + " "
	caretOffset := len(indent) + 1 + len(version.CommandName) + 1
	for i := 0; i < e.Index && i < len(e.Args); i++ {
		caretOffset += len(e.Args[i]) + 1
	}
	pointerLine := strings.Repeat(" ", caretOffset) + "{{_UserCommandErrorMarker_}}^{{|-|}}"

	// %c is the command, %o the failing option
	failingOpt := ""
	if e.Index < len(e.Args) {
		failingOpt = console.Escape(e.Args[e.Index])
	}
	replacer := strings.NewReplacer(
		"%c", fmt.Sprintf("'{{_UserCommand_}}%s{{|-|}}'", console.Escape(e.FailingCommand)),
		"%o", fmt.Sprintf("'{{_UserCommand_}}%s{{|-|}}'", failingOpt),
	)
	formattedMsg := replacer.Replace(e.Message)

	out := fmt.Sprintf("Error in command line:\n\n%s%s\n%s\n\n%s%s\n", indent, cmdLineStr, pointerLine, indent, formattedMsg)

	if e.FailingCommand != "" {
		out += fmt.Sprintf("\n%sUsage is:\n", indent)
		for _, line := range strings.Split(GetUsage(e.FailingCommand), "\n") {
			out += fmt.Sprintf("%s%s\n", indent, line)
		}
	} else {
		out += fmt.Sprintf("\n%sRun '{{_UserCommand_}}%s --help{{|-|}}' for usage.\n", indent, version.CommandName)
	}
	return out
}

// Mode is the operation selected on the command line.
type Mode int

const (
	ModeSet Mode = iota
	ModeGet
	ModeGetLine
	ModeList
	ModeBatch
	ModeHelp
	ModeVersion
)

// Invocation is a parsed command line.
type Invocation struct {
	Options
	Mode Mode
	// Command is the flag that selected Mode as typed, empty for ModeSet.
	Command string
	// Args are the positional arguments.
	Args []string
}

// conflicts pairs flags that cancel each other out.
var conflicts = map[string]string{
	"history":    "no-history",
	"no-history": "history",
	"backup":     "no-backup",
	"no-backup":  "backup",
}

// Parse parses the raw command line arguments.
func Parse(args []string) (*Invocation, error) {
	inv := &Invocation{}
	fs := NewFlagSet(&inv.Options)

	var positional []int
	seen := map[string]string{}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			for j := i + 1; j < len(args); j++ {
				positional = append(positional, j)
			}
			break
		}
		if len(arg) < 2 || arg[0] != '-' {
			positional = append(positional, i)
			continue
		}

		var found []*pflag.Flag
		var typed []string
		if strings.HasPrefix(arg, "--") {
			name, _, hasValue := strings.Cut(arg[2:], "=")
			flag := fs.Lookup(name)
			if flag == nil {
				return nil, &ParseError{Args: args, Index: i, Message: "Invalid option %o"}
			}
			if flag.Value.Type() != "bool" && !hasValue {
				if i+1 >= len(args) {
					return nil, &ParseError{Args: args, Index: i, FailingCommand: "--" + name, Message: "Option %o requires an argument."}
				}
				i++
			}
			found = append(found, flag)
			typed = append(typed, "--"+name)
		} else {
			// Shorthands are all boolean, so "-Hn" is "-H -n"
			for _, c := range arg[1:] {
				flag := fs.ShorthandLookup(string(c))
				if flag == nil {
					return nil, &ParseError{Args: args, Index: i, Message: "Invalid option %o"}
				}
				found = append(found, flag)
				typed = append(typed, "-"+string(c))
			}
		}

		for n, flag := range found {
			if other, ok := conflicts[flag.Name]; ok {
				if prev, ok := seen[other]; ok {
					return nil, &ParseError{Args: args, Index: i, FailingCommand: prev, Message: "Option %o cannot be combined with %c."}
				}
			}
			seen[flag.Name] = typed[n]

			mode, ok := commandFlags[flag.Name]
			if !ok {
				continue
			}
			if inv.Command != "" && inv.Mode != mode {
				return nil, &ParseError{Args: args, Index: i, FailingCommand: inv.Command, Message: "Option %o cannot be combined with %c."}
			}
			inv.Mode = mode
			inv.Command = typed[n]
		}
	}

	if err := fs.Parse(args); err != nil {
		return nil, &ParseError{Args: args, Index: len(args) - 1, Message: err.Error()}
	}
	inv.Args = fs.Args()

	maxArgs := 1
	switch inv.Mode {
	case ModeSet:
		if len(inv.Args) == 0 {
			return nil, &ParseError{Args: args, Index: len(args), Message: "A key is required."}
		}
		// KEY=VALUE [FILE] or KEY [VALUE] [FILE]
		maxArgs = 3
		if strings.Contains(inv.Args[0], "=") {
			maxArgs = 2
		}
	case ModeVersion:
		maxArgs = 0
	}
	if len(inv.Args) > maxArgs {
		return nil, &ParseError{Args: args, Index: positional[maxArgs], FailingCommand: inv.Command, Message: "Unexpected argument %o."}
	}

	return inv, nil
}

// SetArgs splits the positional arguments of a set command into the key
// argument, the optional value and the optional file.
func (inv *Invocation) SetArgs() (keyArg string, valueArg *string, file string) {
	keyArg = inv.Args[0]
	rest := inv.Args[1:]
	if !strings.Contains(keyArg, "=") && len(rest) > 0 {
		v := rest[0]
		valueArg = &v
		rest = rest[1:]
	}
	if len(rest) > 0 {
		file = rest[0]
	}
	return keyArg, valueArg, file
}

// File returns the optional file argument of a get, list or batch command.
func (inv *Invocation) File() string {
	if inv.Mode == ModeSet {
		_, _, file := inv.SetArgs()
		return file
	}
	if inv.Mode == ModeHelp || len(inv.Args) == 0 {
		return ""
	}
	return inv.Args[0]
}
