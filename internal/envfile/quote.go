package envfile

import (
	"strings"
	"unicode"
)

// IsQuoted reports whether value starts and ends with the same quote
// character (' or ").
func IsQuoted(value string) bool {
	if len(value) < 2 {
		return false
	}
	q := value[0]
	return (q == '"' || q == '\'') && value[len(value)-1] == q
}

// Quote wraps value in double quotes when it contains whitespace or '=' and
// is not already quoted.
func Quote(value string) string {
	if IsQuoted(value) {
		return value
	}
	if strings.ContainsFunc(value, unicode.IsSpace) || strings.Contains(value, "=") {
		return `"` + value + `"`
	}
	return value
}

// quoteSpaces is the argument-level rule: only whitespace forces quoting.
func quoteSpaces(value string) string {
	if IsQuoted(value) || !strings.ContainsFunc(value, unicode.IsSpace) {
		return value
	}
	return `"` + value + `"`
}
