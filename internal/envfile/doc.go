// Package envfile edits assignment lines inside .env file content.
//
// Everything here operates on strings. Callers read the file, hand its full
// content to the package and persist whatever comes back.
//
// Key operations:
//
//   - ValidateKey: reject malformed keys and normalize them to uppercase
//   - Split: turn "KEY=VALUE" / "KEY" "VALUE" arguments into a key and value
//   - Locate: find the assignment line for a key
//   - Rewrite: replace that line or append a new one
//   - HistoryComment: build the optional audit comment for a replaced line
//
// Matching rules:
//
//   - The key is anchored at the start of the line (after optional blanks)
//     and must be followed by optional blanks and '='
//   - The key is compared case-insensitively
//   - The first matching line wins; duplicates are left alone
package envfile
