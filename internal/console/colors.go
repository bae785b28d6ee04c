package console

// Raw ANSI Color Codes
const (
	// Reset
	CodeReset = "\033[0m"

	// Modifiers
	CodeBold      = "\033[1m"
	CodeDim       = "\033[2m"
	CodeUnderline = "\033[4m"

	// Foreground
	CodeBlack   = "\033[30m"
	CodeRed     = "\033[31m"
	CodeGreen   = "\033[32m"
	CodeYellow  = "\033[33m"
	CodeBlue    = "\033[34m"
	CodeMagenta = "\033[35m"
	CodeCyan    = "\033[36m"
	CodeWhite   = "\033[37m"

	// Background
	CodeRedBg = "\033[41m"
)

// ansiMap maps direct tag names ({{|name|}}) to ANSI codes.
var ansiMap = map[string]string{
	"-":         CodeReset,
	"reset":     CodeReset,
	"bold":      CodeBold,
	"dim":       CodeDim,
	"underline": CodeUnderline,
	"black":     CodeBlack,
	"red":       CodeRed,
	"green":     CodeGreen,
	"yellow":    CodeYellow,
	"blue":      CodeBlue,
	"magenta":   CodeMagenta,
	"cyan":      CodeCyan,
	"white":     CodeWhite,
	"redbg":     CodeRedBg,
}

// semanticMap maps semantic tag names ({{_Name_}}) to ANSI codes.
// Keys are lowercase.
var semanticMap = map[string]string{
	"applicationname":        CodeCyan + CodeBold,
	"file":                   CodeCyan + CodeBold,
	"folder":                 CodeCyan + CodeBold,
	"var":                    CodeMagenta,
	"value":                  CodeGreen,
	"oldvalue":               CodeYellow,
	"usercommand":            CodeYellow,
	"usercommanderror":       CodeRed,
	"usercommanderrormarker": CodeRed,
	"usagecommand":           CodeYellow + CodeBold,
	"usageoption":            CodeYellow,
	"usagefile":              CodeCyan,
	"usagevar":               CodeMagenta,
	"diffadd":                CodeGreen,
	"diffremove":             CodeRed,
	"diffheader":             CodeCyan,
	"version":                CodeCyan,
	"fatalfooter":            CodeReset,
}

// RegisterSemanticTag adds or replaces a semantic tag.
func RegisterSemanticTag(name, ansi string) {
	semanticMap[lower(name)] = ansi
}
