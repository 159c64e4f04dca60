package parser

import (
	"regexp"
	"strings"

	"github.com/gubarz/tutormd/internal/document"
)

var (
	boldRe       = regexp.MustCompile(`\*\*([^*]+?)\*\*`)
	inlineCodeRe = regexp.MustCompile("`([^`]+?)`")
	linkRe       = regexp.MustCompile(`\[([^\]]+?)\]\(([^)]+?)\)`)
)

// inlineRule finds the leftmost match of one marker kind in s.
// It returns the [start, end) of the whole match and the node to emit.
type inlineRule func(s string) (start, end int, node document.Inline, ok bool)

// Checked in priority order. The first rule with any match wins,
// even if a lower-priority rule matches further left.
var inlineRules = []inlineRule{
	matchBold,
	matchItalic,
	matchInlineCode,
	matchLink,
}

// FormatInline converts span text into inline nodes.
// The empty string yields an empty (non-nil) slice.
func FormatInline(text string) []document.Inline {
	out := make([]document.Inline, 0, 1)
	remaining := text

	for remaining != "" {
		start, end, node, ok := firstRuleMatch(remaining)
		if !ok {
			out = append(out, document.Text{Value: remaining})
			break
		}
		if start > 0 {
			out = append(out, document.Text{Value: remaining[:start]})
		}
		out = append(out, node)
		remaining = remaining[end:]
	}

	return out
}

func firstRuleMatch(s string) (int, int, document.Inline, bool) {
	for _, rule := range inlineRules {
		if start, end, node, ok := rule(s); ok {
			return start, end, node, true
		}
	}
	return 0, 0, nil, false
}

func matchBold(s string) (int, int, document.Inline, bool) {
	m := boldRe.FindStringSubmatchIndex(s)
	if m == nil {
		return 0, 0, nil, false
	}
	return m[0], m[1], document.Bold{Value: s[m[2]:m[3]]}, true
}

// matchItalic finds *x* where neither star touches another star.
// RE2 has no look-around, so this scans by hand.
func matchItalic(s string) (int, int, document.Inline, bool) {
	for p := 0; p < len(s); p++ {
		if s[p] != '*' || (p > 0 && s[p-1] == '*') {
			continue
		}
		q := strings.IndexByte(s[p+1:], '*')
		if q <= 0 {
			// no closing star, or an empty body
			continue
		}
		closing := p + 1 + q
		if closing+1 < len(s) && s[closing+1] == '*' {
			continue
		}
		return p, closing + 1, document.Italic{Value: s[p+1 : closing]}, true
	}
	return 0, 0, nil, false
}

func matchInlineCode(s string) (int, int, document.Inline, bool) {
	m := inlineCodeRe.FindStringSubmatchIndex(s)
	if m == nil {
		return 0, 0, nil, false
	}
	return m[0], m[1], document.Code{Value: s[m[2]:m[3]]}, true
}

func matchLink(s string) (int, int, document.Inline, bool) {
	m := linkRe.FindStringSubmatchIndex(s)
	if m == nil {
		return 0, 0, nil, false
	}
	return m[0], m[1], document.Link{Label: s[m[2]:m[3]], URL: s[m[4]:m[5]]}, true
}
