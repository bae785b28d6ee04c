package envfile

import (
	"strings"
	"time"
)

// Result is the outcome of a rewrite.
type Result struct {
	// Content is the new file content.
	Content string
	// Created is true when the key was appended rather than replaced.
	Created bool
	// OldLine is the replaced assignment line, empty when Created.
	OldLine string
}

// OldValue returns the text after the first '=' of the replaced line.
func (r Result) OldValue() string {
	_, v, _ := strings.Cut(r.OldLine, "=")
	return v
}

// Rewriter replaces or appends assignment lines.
// The zero value writes no history.
type Rewriter struct {
	// History inserts a comment with the previous line before an update.
	History bool
	// Now is used for history timestamps. Defaults to time.Now.
	Now func() time.Time
}

func (r Rewriter) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// Rewrite sets key to value in content. The value is quoted with Quote. The
// key is written as given.
func (r Rewriter) Rewrite(content, key, value string) Result {
	pair := key + "=" + Quote(value)

	loc := LocateIndex(content, key)
	if loc == nil {
		return Result{Content: content + "\n" + pair + "\n", Created: true}
	}

	old := content[loc[0]:loc[1]]
	var b strings.Builder
	b.Grow(len(content) + len(pair))
	b.WriteString(content[:loc[0]])
	b.WriteString(HistoryComment(old, r.History, r.now()))
	b.WriteString(pair)
	b.WriteString(content[loc[1]:])
	return Result{Content: b.String(), OldLine: old}
}

// Rewrite sets key to value in content without history and reports whether
// a new line was created.
func Rewrite(content, key, value string) (string, bool) {
	res := Rewriter{}.Rewrite(content, key, value)
	return res.Content, res.Created
}

// Set runs the whole pipeline for raw command arguments: split, validate and
// rewrite. Nothing is rewritten when the key is invalid.
func (r Rewriter) Set(content, keyArg string, valueArg *string) (Result, error) {
	rawKey, value := Split(keyArg, valueArg)
	key, err := ValidateKey(rawKey)
	if err != nil {
		return Result{Content: content}, err
	}
	return r.Rewrite(content, key, value), nil
}
