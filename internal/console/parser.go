package console

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/muesli/termenv"
)

var (
	// tagRegex matches {{_Semantic_}} tags (group 1) and {{|code|}} tags (group 2)
	tagRegex = regexp.MustCompile(`\{\{(?:_([A-Za-z0-9_]+)_|\|([A-Za-z0-9_\-]+)\|)\}\}`)

	isTTYGlobal bool

	// preferredProfile stores the detected or forced color profile
	preferredProfile termenv.Profile
)

func init() {
	isTTYGlobal = IsTerminal(os.Stdout)
	preferredProfile = detectProfile()
}

// GetPreferredProfile returns the detected or forced color profile
func GetPreferredProfile() termenv.Profile {
	return preferredProfile
}

// SetPreferredProfile explicitly sets the color profile (useful for testing)
func SetPreferredProfile(p termenv.Profile) {
	preferredProfile = p
}

// SetTTY allows forcing the TTY status (useful for testing ANSI output in non-interactive tests).
// Returns the previous value so it can be restored.
func SetTTY(isTTY bool) bool {
	old := isTTYGlobal
	isTTYGlobal = isTTY
	return old
}

// detectProfile determines the color profile from the environment.
// Priority: NO_COLOR > COLORTERM > TERM > automatic detection
func detectProfile() termenv.Profile {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return termenv.Ascii
	}

	colorTerm := strings.ToLower(os.Getenv("COLORTERM"))
	switch colorTerm {
	case "truecolor", "24bit":
		return termenv.TrueColor
	case "8bit", "256color":
		return termenv.ANSI256
	case "4bit", "16color", "8color", "3bit":
		return termenv.ANSI
	case "1bit", "2color", "mono", "false", "0":
		return termenv.Ascii
	}

	term := strings.ToLower(os.Getenv("TERM"))
	if strings.Contains(term, "direct") {
		return termenv.TrueColor
	}
	if strings.Contains(term, "256color") {
		return termenv.ANSI256
	}
	if term == "dumb" {
		return termenv.Ascii
	}

	return termenv.ColorProfile()
}

// ColorsEnabled reports whether tags are rendered as ANSI codes.
func ColorsEnabled() bool {
	return isTTYGlobal && preferredProfile != termenv.Ascii
}

// literalBrace is the direct tag Escape writes for each '{'.
const literalBrace = "lbrace"

// ToANSI converts semantic and direct tags to ANSI escape sequences
// - {{_Tag_}} : Semantic lookup -> ANSI
// - {{|code|}} : Direct color name -> ANSI
// Unknown tags are dropped. Without color support all tags are stripped.
func ToANSI(text string) string {
	return render(text, ColorsEnabled())
}

// Strip removes all semantic and direct tags from text, leaving plain text
func Strip(text string) string {
	return render(text, false)
}

// render replaces every tag in a single pass, so text produced by a tag is
// never read as another tag.
func render(text string, color bool) string {
	return tagRegex.ReplaceAllStringFunc(text, func(match string) string {
		sub := tagRegex.FindStringSubmatch(match)
		if sub[2] != "" && lower(sub[2]) == literalBrace {
			return "{"
		}
		if !color {
			return ""
		}
		if sub[1] != "" {
			return semanticMap[lower(sub[1])]
		}
		return ansiMap[lower(sub[2])]
	})
}

// Escape protects user text from tag rendering. Parse and Strip turn the
// result back into the original text.
func Escape(text string) string {
	return strings.ReplaceAll(text, "{", "{{|"+literalBrace+"|}}")
}

// Parse is the standard entry point for rendering tagged text.
func Parse(text string) string {
	return ToANSI(text)
}

// Sprintf formats and then parses tags.
func Sprintf(format string, a ...any) string {
	return Parse(fmt.Sprintf(format, a...))
}

// Println parses tags in each argument and prints them to stdout.
func Println(a ...any) {
	for i, v := range a {
		if s, ok := v.(string); ok {
			a[i] = Parse(s)
		}
	}
	fmt.Println(a...)
}

func lower(s string) string {
	return strings.ToLower(s)
}
