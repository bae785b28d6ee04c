package envfile

import "strings"

// Split derives the key and value from command arguments.
//
// When valueArg is nil the key argument is split on its first '='; a key
// argument without '=' yields an empty value. When valueArg is given the key
// argument is returned untouched, so ValidateKey will reject a stray '='.
//
// The value is wrapped in double quotes if it contains whitespace and is not
// already quoted. The key is not validated here.
func Split(keyArg string, valueArg *string) (key, value string) {
	if valueArg != nil {
		key, value = keyArg, *valueArg
	} else {
		key, value, _ = strings.Cut(keyArg, "=")
	}
	return key, quoteSpaces(value)
}
