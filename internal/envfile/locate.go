package envfile

import (
	"regexp"
	"strings"
)

// linePattern matches the assignment line for key. The match starts at the
// beginning of the physical line and stops before '\r' or '\n'. Letters
// match in either ASCII case only, so "K" never matches the Kelvin sign.
func linePattern(key string) *regexp.Regexp {
	var b strings.Builder
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			b.WriteString("[" + strings.ToUpper(string(r)) + strings.ToLower(string(r)) + "]")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	return regexp.MustCompile(`(?m)^[ \t]*` + b.String() + `[ \t]*=[^\r\n]*`)
}

// LocateIndex returns the byte span [start, end) of the first assignment
// line for key, or nil when there is none.
func LocateIndex(content, key string) []int {
	if key == "" {
		return nil
	}
	return linePattern(key).FindStringIndex(content)
}

// Locate returns the first assignment line for key exactly as it appears in
// content, without its line terminator.
func Locate(content, key string) (string, bool) {
	loc := LocateIndex(content, key)
	if loc == nil {
		return "", false
	}
	return content[loc[0]:loc[1]], true
}
