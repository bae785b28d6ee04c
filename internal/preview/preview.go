// Package preview shows what a rewrite would change, line by line.
package preview

import (
	"EnvSet/internal/console"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Op is the kind of a line change.
type Op int

const (
	Equal Op = iota
	Insert
	Delete
)

// Change is one line of a diff, without its terminator.
type Change struct {
	Op   Op
	Line string
}

// Lines diffs before and after by whole lines.
func Lines(before, after string) []Change {
	dmp := diffmatchpatch.New()
	a, b, lineArray := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lineArray)

	var changes []Change
	for _, d := range diffs {
		op := Equal
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			op = Insert
		case diffmatchpatch.DiffDelete:
			op = Delete
		}
		for _, line := range splitLines(d.Text) {
			changes = append(changes, Change{Op: op, Line: line})
		}
	}
	return changes
}

// splitLines splits text into lines, dropping the empty piece after a
// final newline.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// Changed reports whether any line was inserted or deleted.
func Changed(changes []Change) bool {
	for _, c := range changes {
		if c.Op != Equal {
			return true
		}
	}
	return false
}

// Render formats changes as a -/+ listing with console color tags. File
// text is escaped, so it is printed as is.
// Unchanged lines are shown only within context lines of a change; a
// negative context shows everything.
func Render(path string, changes []Change, context int) string {
	var b strings.Builder
	path = console.Escape(path)
	b.WriteString("{{_DiffHeader_}}--- " + path + "{{|-|}}\n")
	b.WriteString("{{_DiffHeader_}}+++ " + path + " (new){{|-|}}\n")

	show := make([]bool, len(changes))
	for i, c := range changes {
		if c.Op == Equal && context >= 0 {
			continue
		}
		lo, hi := i-context, i+context
		if context < 0 {
			lo, hi = i, i
		}
		for j := max(lo, 0); j <= hi && j < len(changes); j++ {
			show[j] = true
		}
	}

	skipped := false
	for i, c := range changes {
		if !show[i] {
			skipped = true
			continue
		}
		if skipped {
			b.WriteString("{{_DiffHeader_}}...{{|-|}}\n")
			skipped = false
		}
		line := console.Escape(strings.TrimSuffix(c.Line, "\r"))
		switch c.Op {
		case Insert:
			b.WriteString("{{_DiffAdd_}}+" + line + "{{|-|}}\n")
		case Delete:
			b.WriteString("{{_DiffRemove_}}-" + line + "{{|-|}}\n")
		default:
			b.WriteString(" " + line + "\n")
		}
	}
	return b.String()
}
