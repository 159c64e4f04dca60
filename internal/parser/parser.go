package parser

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/gubarz/tutormd/internal/document"
)

// wsClass matches the characters trim strips, including Unicode space
// separators and the byte order mark. charClass matches anything but a
// line terminator.
const (
	wsClass   = `[\t\n\v\f\r\p{Zs}\x{2028}\x{2029}\x{FEFF}]`
	charClass = `[^\n\r\x{2028}\x{2029}]`
)

var (
	headingRe      = regexp.MustCompile(`^(#{1,6})` + wsClass + `+(` + charClass + `+?)(?:` + wsClass + `*#+)?$`)
	ruleRe         = regexp.MustCompile(`^(?:-{3,}|\*{3,}|_{3,})$`)
	orderedItemRe  = regexp.MustCompile(`^\d+\.` + wsClass + `+`)
	unorderedRe    = regexp.MustCompile(`^[-*+]` + wsClass + `+`)
	mathBlockRe    = regexp.MustCompile(`^(?:\\\[` + charClass + `*?\\\]|\$\$` + charClass + `*?\$\$)$`)
	codeLineRe     = regexp.MustCompile("^`([^`]+)`$")
	codeFenceToken = "```"
)

// isSpace reports whether r is trimmed from the ends of a line
func isSpace(r rune) bool {
	return r == '\uFEFF' || (unicode.IsSpace(r) && r != '\u0085')
}

func trim(s string) string {
	return strings.TrimFunc(s, isSpace)
}

// Segment splits a message body into blocks.
// It never fails: unrecognised lines become paragraphs.
func Segment(text string) document.Document {
	if text == "" {
		return document.Document{
			document.Paragraph{Inline: []document.Inline{document.Text{Value: ""}}},
		}
	}
	s := newSegmenter()
	s.run(strings.Split(text, "\n"))
	return s.out
}

// listBuffer accumulates consecutive items of one list kind
type listBuffer struct {
	ordered bool
	items   [][]document.Inline
}

// fenceBuffer accumulates raw lines inside a ``` fence
type fenceBuffer struct {
	open     bool
	language string
	lines    []string
}

type segmenter struct {
	out   document.Document
	list  *listBuffer
	fence fenceBuffer
}

func newSegmenter() *segmenter {
	return &segmenter{out: make(document.Document, 0, 8)}
}

func (s *segmenter) run(lines []string) {
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		trimmed := trim(line)

		// Fence toggle
		if strings.HasPrefix(trimmed, codeFenceToken) {
			if s.fence.open {
				s.flushCode()
			} else {
				s.flushList()
				s.fence = fenceBuffer{
					open:     true,
					language: trim(trimmed[len(codeFenceToken):]),
				}
			}
			continue
		}

		// Inside a fence every line is kept verbatim
		if s.fence.open {
			s.fence.lines = append(s.fence.lines, line)
			continue
		}

		if m := headingRe.FindStringSubmatch(trimmed); m != nil {
			s.flushList()
			s.emit(document.Heading{Level: len(m[1]), Inline: FormatInline(m[2])})
			continue
		}

		if ruleRe.MatchString(trimmed) {
			s.flushList()
			s.emit(document.HorizontalRule{})
			continue
		}

		if strings.HasPrefix(trimmed, ">") {
			s.flushList()
			quote := strings.TrimPrefix(trimmed[1:], " ")
			s.emit(document.Blockquote{Inline: FormatInline(quote)})
			continue
		}

		if next, ok := s.table(lines, i); ok {
			i = next - 1
			continue
		}

		if loc := orderedItemRe.FindStringIndex(trimmed); loc != nil {
			s.addItem(true, trimmed[loc[1]:])
			continue
		}

		if loc := unorderedRe.FindStringIndex(trimmed); loc != nil {
			s.addItem(false, trimmed[loc[1]:])
			continue
		}

		if mathBlockRe.MatchString(trimmed) {
			s.flushList()
			s.emit(document.MathBlock{Expression: trimmed[2 : len(trimmed)-2]})
			continue
		}

		if m := codeLineRe.FindStringSubmatch(trimmed); m != nil {
			s.flushList()
			s.emit(document.CodeLine{Code: m[1]})
			continue
		}

		if trimmed == "" {
			s.flushList()
			if n := len(s.out); n > 0 && s.out[n-1].Kind() != document.KindSpacer {
				s.emit(document.Spacer{})
			}
			continue
		}

		s.flushList()
		s.emit(document.Paragraph{Inline: FormatInline(trimmed)})
	}

	s.flushList()
	if s.fence.open {
		s.flushCode()
	}
}

// table consumes a run of pipe lines starting at i.
// It returns the index just past the run, or false if no table starts here.
func (s *segmenter) table(lines []string, i int) (int, bool) {
	if !strings.Contains(lines[i], "|") || i+1 >= len(lines) || !strings.Contains(lines[i+1], "|") {
		return 0, false
	}

	end := i
	for end < len(lines) && strings.Contains(trim(lines[end]), "|") {
		end++
	}
	if end-i < 2 {
		return 0, false
	}

	s.flushList()
	t := document.Table{HeaderCells: splitCells(lines[i])}
	for _, row := range lines[i+2 : end] {
		t.Rows = append(t.Rows, splitCells(row))
	}
	s.emit(t)
	return end, true
}

// splitCells splits a table row on pipes, dropping cells that are empty
// once trimmed. This also removes the outer cells of "| a | b |".
func splitCells(line string) []string {
	parts := strings.Split(line, "|")
	cells := make([]string, 0, len(parts))
	for _, p := range parts {
		if c := trim(p); c != "" {
			cells = append(cells, c)
		}
	}
	return cells
}

func (s *segmenter) addItem(ordered bool, text string) {
	if s.list != nil && s.list.ordered != ordered {
		s.flushList()
	}
	if s.list == nil {
		s.list = &listBuffer{ordered: ordered}
	}
	s.list.items = append(s.list.items, FormatInline(text))
}

func (s *segmenter) flushList() {
	if s.list == nil || len(s.list.items) == 0 {
		s.list = nil
		return
	}
	s.emit(document.List{Ordered: s.list.ordered, Items: s.list.items})
	s.list = nil
}

func (s *segmenter) flushCode() {
	s.emit(document.CodeBlock{Language: s.fence.language, Lines: s.fence.lines})
	s.fence = fenceBuffer{}
}

func (s *segmenter) emit(b document.Block) {
	s.out = append(s.out, b)
}
