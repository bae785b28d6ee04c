package console

import (
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func TestStrip(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"plain", "plain"},
		{"{{_File_}}.env{{|-|}}", ".env"},
		{"'{{_Var_}}KEY{{|-|}}' = {{|green|}}x{{|-|}}", "'KEY' = x"},
		{"{{_Unknown_}}kept text", "kept text"},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, Strip(test.input), "Strip(%q)", test.input)
	}
}

func TestToANSI(t *testing.T) {
	oldTTY := SetTTY(true)
	oldProfile := GetPreferredProfile()
	SetPreferredProfile(termenv.ANSI)
	defer func() {
		SetTTY(oldTTY)
		SetPreferredProfile(oldProfile)
	}()

	got := ToANSI("{{_Var_}}KEY{{|-|}}")
	assert.Equal(t, CodeMagenta+"KEY"+CodeReset, got)

	got = ToANSI("{{_NoSuchTag_}}x{{|nosuchcolor|}}")
	assert.Equal(t, "x", got)

	SetPreferredProfile(termenv.Ascii)
	assert.Equal(t, "KEY", ToANSI("{{_Var_}}KEY{{|-|}}"))
}

func TestToANSINoTTY(t *testing.T) {
	old := SetTTY(false)
	defer SetTTY(old)

	assert.Equal(t, "KEY", Parse("{{_Var_}}KEY{{|-|}}"))
}

func TestRenderTable(t *testing.T) {
	old := SetTTY(false)
	defer SetTTY(old)

	out := RenderTable([]string{"Key", "Value"}, [][]string{{"APP_KEY", "secret"}, {"DEBUG", "true"}}, false)
	for _, want := range []string{"Key", "Value", "APP_KEY", "secret", "DEBUG", "true"} {
		assert.Contains(t, out, want)
	}
	assert.True(t, strings.HasPrefix(out, "+"))
}

func TestEscape(t *testing.T) {
	tests := []string{
		"plain",
		"x{{|-|}}y",
		"{{_Var_}}",
		"{{{|red|}}",
		"{ } {{ }}",
	}

	oldTTY := SetTTY(true)
	oldProfile := GetPreferredProfile()
	SetPreferredProfile(termenv.ANSI)
	defer func() {
		SetTTY(oldTTY)
		SetPreferredProfile(oldProfile)
	}()

	for _, text := range tests {
		assert.Equal(t, text, Strip(Escape(text)), "Strip(Escape(%q))", text)
		assert.Equal(t, text, ToANSI(Escape(text)), "ToANSI(Escape(%q))", text)
	}

	got := ToANSI("{{_Var_}}" + Escape("{{|-|}}") + "{{|-|}}")
	assert.Equal(t, CodeMagenta+"{{|-|}}"+CodeReset, got)
}
