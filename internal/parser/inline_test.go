package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gubarz/tutormd/internal/document"
)

type (
	text   = document.Text
	bold   = document.Bold
	italic = document.Italic
	code   = document.Code
	link   = document.Link
)

func TestFormatInline(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []document.Inline
	}{
		{
			name:     "empty string",
			input:    "",
			expected: []document.Inline{},
		},
		{
			name:     "plain text",
			input:    "just words",
			expected: []document.Inline{text{Value: "just words"}},
		},
		{
			name:     "bold at end",
			input:    "Hello **world**",
			expected: []document.Inline{text{Value: "Hello "}, bold{Value: "world"}},
		},
		{
			name:     "italic in the middle",
			input:    "an *important* note",
			expected: []document.Inline{text{Value: "an "}, italic{Value: "important"}, text{Value: " note"}},
		},
		{
			name:     "inline code",
			input:    "run `go test` now",
			expected: []document.Inline{text{Value: "run "}, code{Value: "go test"}, text{Value: " now"}},
		},
		{
			name:     "link",
			input:    "see [docs](https://go.dev/doc)",
			expected: []document.Inline{text{Value: "see "}, link{Label: "docs", URL: "https://go.dev/doc"}},
		},
		{
			name:     "adjacent markers leave no empty text",
			input:    "**a***b*",
			expected: []document.Inline{bold{Value: "a"}, italic{Value: "b"}},
		},
		{
			name:     "bold wins over earlier code",
			input:    "`code` and **bold**",
			expected: []document.Inline{text{Value: "`code` and "}, bold{Value: "bold"}},
		},
		{
			name:     "italic wins over earlier link",
			input:    "[x](y) then *z*",
			expected: []document.Inline{text{Value: "[x](y) then "}, italic{Value: "z"}},
		},
		{
			name:  "lower priority markers after the match are still found",
			input: "**b** then `c` and [l](u)",
			expected: []document.Inline{
				bold{Value: "b"}, text{Value: " then "}, code{Value: "c"}, text{Value: " and "}, link{Label: "l", URL: "u"},
			},
		},
		{
			name:     "unterminated bold is literal",
			input:    "a ** b",
			expected: []document.Inline{text{Value: "a ** b"}},
		},
		{
			name:     "unterminated backtick is literal",
			input:    "a `b",
			expected: []document.Inline{text{Value: "a `b"}},
		},
		{
			name:     "bold content is opaque",
			input:    "**has `tick`**",
			expected: []document.Inline{bold{Value: "has `tick`"}},
		},
		{
			name:     "code content is opaque",
			input:    "`a*b`",
			expected: []document.Inline{code{Value: "a*b"}},
		},
		{
			name:     "bold inside backticks still wins",
			input:    "`**not code**`",
			expected: []document.Inline{text{Value: "`"}, bold{Value: "not code"}, text{Value: "`"}},
		},
		{
			name:     "star touching another star is not italic",
			input:    "*a**",
			expected: []document.Inline{text{Value: "*a**"}},
		},
		{
			name:     "empty italic body",
			input:    "** alone",
			expected: []document.Inline{text{Value: "** alone"}},
		},
		{
			name:     "multiple bold spans",
			input:    "**a** and **b**",
			expected: []document.Inline{bold{Value: "a"}, text{Value: " and "}, bold{Value: "b"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatInline(tt.input))
		})
	}
}

func TestFormatInlineKeepsCharacters(t *testing.T) {
	inputs := []string{
		"Hello **world**, this is *fine* and `ok` with [a](b).",
		"no markers at all",
		"**x** `y` *z* [l](u) tail",
	}
	markerLen := map[document.InlineKind]int{
		document.KindText:   0,
		document.KindBold:   4,
		document.KindItalic: 2,
		document.KindCode:   2,
	}

	for _, in := range inputs {
		total := 0
		for _, node := range FormatInline(in) {
			if l, ok := node.(document.Link); ok {
				total += len(l.Label) + len(l.URL) + 4
				continue
			}
			total += len(document.PlainText([]document.Inline{node})) + markerLen[node.Kind()]
		}
		assert.Equal(t, len(in), total, "input %q", in)
	}
}
