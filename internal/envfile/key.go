package envfile

import (
	"regexp"
	"strings"
)

var keyRegex = regexp.MustCompile(`^[A-Za-z_]+$`)

// ValidateKey checks that raw is usable as an environment key and returns it
// in uppercase.
//
// Only letters and underscores are accepted. A key containing '=' gets its
// own reason because it usually means a KEY=VALUE argument was not split.
func ValidateKey(raw string) (string, error) {
	if strings.Contains(raw, "=") {
		return "", &InvalidArgumentError{Arg: raw, Reason: ReasonContainsEquals}
	}
	if !keyRegex.MatchString(raw) {
		return "", &InvalidArgumentError{Arg: raw, Reason: ReasonInvalidChars}
	}
	return strings.ToUpper(raw), nil
}
