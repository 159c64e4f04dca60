package render

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/ansi"

	"github.com/gubarz/tutormd/internal/citation"
	"github.com/gubarz/tutormd/internal/document"
	"github.com/gubarz/tutormd/internal/parser"
)

// The pager re-renders on every chunk, so builders are pooled.
var builderPool = sync.Pool{
	New: func() interface{} {
		return &strings.Builder{}
	},
}

func getBuilder() *strings.Builder {
	b := builderPool.Get().(*strings.Builder)
	b.Reset()
	return b
}

func putBuilder(b *strings.Builder) {
	if b.Cap() < 64*1024 { // Don't pool huge builders
		builderPool.Put(b)
	}
}

// Terminal renders a message for a terminal of the given width
func Terminal(msg citation.Message, styles *StyleManager, width int) string {
	t := termRenderer{styles: styles, width: width}

	b := getBuilder()
	defer putBuilder(b)

	for i, block := range msg.Body {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(t.block(block))
	}

	if len(msg.Resources) > 0 {
		if len(msg.Body) > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(t.resources(msg.Resources))
	}

	b.WriteString("\n")
	return b.String()
}

type termRenderer struct {
	styles *StyleManager
	width  int
}

func (t termRenderer) block(block document.Block) string {
	s := t.styles
	switch v := block.(type) {
	case document.Heading:
		style := s.Heading
		if v.Level <= 2 {
			style = s.Title
		}
		return t.wrap(style.Render(document.PlainText(v.Inline)), t.width)

	case document.Paragraph:
		return t.wrap(t.inline(v.Inline), t.width)

	case document.List:
		lines := make([]string, 0, len(v.Items))
		for i, item := range v.Items {
			marker := "• "
			if v.Ordered {
				marker = strconv.Itoa(i+1) + ". "
			}
			lines = append(lines, t.hang("  "+s.Bullet.Render(marker), lipgloss.Width(marker)+2, t.inline(item)))
		}
		return strings.Join(lines, "\n")

	case document.CodeBlock:
		var lines []string
		if v.Language != "" {
			lines = append(lines, s.CodeLang.Render(v.Language))
		}
		for _, l := range v.Lines {
			lines = append(lines, s.QuoteBar.Render("│ ")+s.CodeBlock.Render(l))
		}
		if len(v.Lines) == 0 {
			lines = append(lines, s.QuoteBar.Render("│"))
		}
		return strings.Join(lines, "\n")

	case document.CodeLine:
		return "  " + s.Code.Render(v.Code)

	case document.Blockquote:
		return t.hang(s.QuoteBar.Render("│ "), 2, s.Quote.Render(t.inline(v.Inline)))

	case document.HorizontalRule:
		return s.Rule.Render(strings.Repeat("─", t.width))

	case document.Table:
		return t.table(v)

	case document.MathBlock:
		return "    " + s.Math.Render(v.Expression)

	case document.Spacer:
		return ""
	}
	return ""
}

// inline renders inline nodes. Node values are styled, never re-parsed.
func (t termRenderer) inline(nodes []document.Inline) string {
	s := t.styles
	b := getBuilder()
	defer putBuilder(b)

	for _, n := range nodes {
		switch v := n.(type) {
		case document.Text:
			b.WriteString(v.Value)
		case document.Bold:
			b.WriteString(s.Bold.Render(v.Value))
		case document.Italic:
			b.WriteString(s.Italic.Render(v.Value))
		case document.Code:
			b.WriteString(s.Code.Render(v.Value))
		case document.Link:
			b.WriteString(s.Link.Render(v.Label))
			b.WriteString(" ")
			b.WriteString(s.URL.Render("(" + v.URL + ")"))
		}
	}
	return b.String()
}

// table formats cell text at render time
func (t termRenderer) table(v document.Table) string {
	s := t.styles
	cols := len(v.HeaderCells)
	for _, row := range v.Rows {
		cols = max(cols, len(row))
	}

	header := make([]string, cols)
	for i, c := range v.HeaderCells {
		header[i] = t.inline(parser.FormatInline(c))
	}
	rows := make([][]string, 0, len(v.Rows))
	for _, row := range v.Rows {
		cells := make([]string, cols)
		for i, c := range row {
			cells[i] = t.inline(parser.FormatInline(c))
		}
		rows = append(rows, cells)
	}

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(s.TableBorder).
		Headers(header...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.TableHeader.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	return tbl.Render()
}

func (t termRenderer) resources(resources []citation.Resource) string {
	s := t.styles
	lines := []string{
		s.Rule.Render(strings.Repeat("─", t.width)),
		s.Heading.Render("Resources"),
	}
	for i, r := range resources {
		entry := r.Title
		if r.Type != "" {
			entry += " " + s.Dim.Render("["+r.Type+"]")
		}
		if r.HasLink() {
			entry += " " + s.URL.Render(r.URL)
		}
		lines = append(lines, t.hang(fmt.Sprintf("  %d. ", i+1), len(strconv.Itoa(i+1))+4, entry))
	}
	return strings.Join(lines, "\n")
}

// wrap word-wraps styled text without breaking escape sequences
func (t termRenderer) wrap(s string, width int) string {
	if width <= 0 {
		return s
	}
	return ansi.Wordwrap(s, width, "")
}

// hang wraps body to the remaining width and indents continuation lines
// under the first character after the prefix.
func (t termRenderer) hang(prefix string, prefixWidth int, body string) string {
	wrapped := t.wrap(body, t.width-prefixWidth)
	indent := strings.Repeat(" ", prefixWidth)
	return prefix + strings.ReplaceAll(wrapped, "\n", "\n"+indent)
}
