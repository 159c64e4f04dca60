package render

import (
	"strconv"
	"strings"

	"github.com/gubarz/tutormd/internal/citation"
	"github.com/gubarz/tutormd/internal/document"
)

// Markdown writes the document back out in the dialect the parser reads.
// Blocks are one per line and each Spacer becomes one blank line, so
// segmenting the output yields the same document whenever it has at least
// one block. An empty message writes nothing; the parser reads that back
// as a single empty paragraph, so empty documents do not round-trip.
func Markdown(msg citation.Message) string {
	return markdown(msg, "\n")
}

// markdown joins blocks with sep. Glamour needs "\n\n" so that lines
// stay separate paragraphs under CommonMark rules.
func markdown(msg citation.Message, sep string) string {
	b := getBuilder()
	defer putBuilder(b)

	first := true
	for _, block := range msg.Body {
		if sep != "\n" && block.Kind() == document.KindSpacer {
			continue
		}
		if !first {
			b.WriteString(sep)
		}
		first = false
		writeBlock(b, block)
	}

	if len(msg.Resources) > 0 {
		if !first {
			b.WriteString("\n\n")
		}
		writeResources(b, msg.Resources)
	}

	if first && len(msg.Resources) == 0 {
		return ""
	}
	b.WriteString("\n")
	return b.String()
}

func writeBlock(b *strings.Builder, block document.Block) {
	switch v := block.(type) {
	case document.Heading:
		b.WriteString(strings.Repeat("#", v.Level))
		b.WriteString(" ")
		writeInline(b, v.Inline)

	case document.Paragraph:
		writeInline(b, v.Inline)

	case document.List:
		for i, item := range v.Items {
			if i > 0 {
				b.WriteString("\n")
			}
			if v.Ordered {
				b.WriteString(strconv.Itoa(i + 1))
				b.WriteString(". ")
			} else {
				b.WriteString("- ")
			}
			writeInline(b, item)
		}

	case document.CodeBlock:
		b.WriteString("```")
		b.WriteString(v.Language)
		for _, l := range v.Lines {
			b.WriteString("\n")
			b.WriteString(l)
		}
		b.WriteString("\n```")

	case document.CodeLine:
		b.WriteString("`" + v.Code + "`")

	case document.Blockquote:
		b.WriteString("> ")
		writeInline(b, v.Inline)

	case document.HorizontalRule:
		b.WriteString("---")

	case document.Table:
		writeRow(b, v.HeaderCells)
		b.WriteString("\n|")
		for range max(len(v.HeaderCells), 1) {
			b.WriteString("---|")
		}
		for _, row := range v.Rows {
			b.WriteString("\n")
			writeRow(b, row)
		}

	case document.MathBlock:
		b.WriteString("$$" + v.Expression + "$$")

	case document.Spacer:
		// an empty line
	}
}

func writeRow(b *strings.Builder, cells []string) {
	b.WriteString("|")
	for _, c := range cells {
		b.WriteString(" " + c + " |")
	}
}

func writeInline(b *strings.Builder, nodes []document.Inline) {
	for _, n := range nodes {
		switch v := n.(type) {
		case document.Text:
			b.WriteString(v.Value)
		case document.Bold:
			b.WriteString("**" + v.Value + "**")
		case document.Italic:
			b.WriteString("*" + v.Value + "*")
		case document.Code:
			b.WriteString("`" + v.Value + "`")
		case document.Link:
			b.WriteString("[" + v.Label + "](" + v.URL + ")")
		}
	}
}

// Resource fields are written verbatim; they are not markup.
func writeResources(b *strings.Builder, resources []citation.Resource) {
	b.WriteString("---\n\n### Resources\n")
	for i, r := range resources {
		b.WriteString("\n")
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteString(". ")
		b.WriteString(r.Title)
		if r.Type != "" {
			b.WriteString(" (" + r.Type + ")")
		}
		if r.HasLink() {
			b.WriteString(" <" + r.URL + ">")
		}
	}
}
