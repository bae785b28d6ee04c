// Package batch loads several key/value assignments from a YAML file.
//
// The file is a single mapping:
//
//	APP_NAME: envset
//	APP_DEBUG: true
//	GREETING: hello world
//
// Entries keep the order of the document.
package batch

import (
	"EnvSet/internal/envfile"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Entry is one key/value pair from a batch file.
type Entry struct {
	Key   string
	Value string
	Line  int
}

// Load reads entries from the YAML file at path.
func Load(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	entries, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}

// Parse decodes a YAML mapping into entries. Scalar values are taken as
// written; null becomes the empty string. Nested values are rejected.
func Parse(data []byte) ([]Entry, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: expected a mapping of KEY: value", root.Line)
	}

	entries := make([]Entry, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		k, v := root.Content[i], root.Content[i+1]
		if k.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: key must be a scalar", k.Line)
		}

		var value string
		switch {
		case v.Kind == yaml.ScalarNode && v.Tag == "!!null":
			value = ""
		case v.Kind == yaml.ScalarNode:
			value = v.Value
		default:
			return nil, fmt.Errorf("line %d: value for '%s' must be a scalar", v.Line, k.Value)
		}
		entries = append(entries, Entry{Key: k.Value, Value: value, Line: k.Line})
	}
	return entries, nil
}

// Validate checks every key and returns them normalized, so that a batch
// with one bad key is rejected before anything is written.
func Validate(entries []Entry) ([]Entry, error) {
	out := make([]Entry, len(entries))
	for i, e := range entries {
		key, err := envfile.ValidateKey(e.Key)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", e.Line, err)
		}
		out[i] = Entry{Key: key, Value: e.Value, Line: e.Line}
	}
	return out, nil
}

// Apply rewrites content with every entry in order.
func Apply(r envfile.Rewriter, content string, entries []Entry) (string, []envfile.Result) {
	results := make([]envfile.Result, 0, len(entries))
	for _, e := range entries {
		res := r.Rewrite(content, e.Key, e.Value)
		content = res.Content
		results = append(results, res)
	}
	return content, results
}
