// Package inspect answers read-only questions about environment file
// content: the raw line for a key, its value and the list of assignments.
package inspect

import (
	"EnvSet/internal/envfile"
	"regexp"
	"strings"

	"github.com/joho/godotenv"
)

// Pair is one assignment found in a file.
type Pair struct {
	Key   string
	Value string
	Line  string
}

// assignmentRegex matches assignment lines the same way the locator does,
// capturing the key.
var assignmentRegex = regexp.MustCompile(`(?m)^[ \t]*([A-Za-z_]+)[ \t]*=[^\r\n]*`)

// Line returns the raw assignment line for key.
func Line(content, key string) (string, bool) {
	return envfile.Locate(content, key)
}

// Literal returns the text after '=' on the assignment line for key, with
// surrounding blanks removed.
func Literal(content, key string) (string, bool) {
	line, ok := envfile.Locate(content, key)
	if !ok {
		return "", false
	}
	_, v, _ := strings.Cut(line, "=")
	return strings.Trim(v, " \t"), true
}

// Value returns the value of key as a dotenv parser reads it: quotes are
// removed and escapes resolved. When the parser rejects the line the
// trimmed literal is returned with matching outer quotes removed.
func Value(content, key string) (string, bool) {
	literal, ok := Literal(content, key)
	if !ok {
		return "", false
	}

	parsed, err := godotenv.Unmarshal("VALUE=" + literal)
	if err == nil {
		if v, found := parsed["VALUE"]; found {
			return v, true
		}
	}
	if envfile.IsQuoted(literal) {
		return literal[1 : len(literal)-1], true
	}
	return literal, true
}

// List returns every assignment in file order. Keys are reported in
// uppercase and only the first line of a repeated key is kept, matching
// which line a set operation would change.
func List(content string) []Pair {
	var pairs []Pair
	seen := make(map[string]bool)

	for _, m := range assignmentRegex.FindAllStringSubmatch(content, -1) {
		key := strings.ToUpper(m[1])
		if seen[key] {
			continue
		}
		seen[key] = true

		value, _ := Value(content, key)
		pairs = append(pairs, Pair{Key: key, Value: value, Line: m[0]})
	}
	return pairs
}
