package document

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrInvalidDocument is returned by Validate
var ErrInvalidDocument = errors.New("invalid document")

// Document is the ordered sequence of blocks parsed from one message.
// Block order follows source line order.
type Document []Block

// BlockKind identifies the variant of a Block
type BlockKind int

const (
	KindHeading BlockKind = iota
	KindParagraph
	KindList
	KindCodeBlock
	KindCodeLine
	KindBlockquote
	KindHorizontalRule
	KindTable
	KindMathBlock
	KindSpacer
)

var blockKindNames = [...]string{
	KindHeading:        "heading",
	KindParagraph:      "paragraph",
	KindList:           "list",
	KindCodeBlock:      "code_block",
	KindCodeLine:       "code_line",
	KindBlockquote:     "blockquote",
	KindHorizontalRule: "horizontal_rule",
	KindTable:          "table",
	KindMathBlock:      "math_block",
	KindSpacer:         "spacer",
}

func (k BlockKind) String() string {
	if k < 0 || int(k) >= len(blockKindNames) {
		return fmt.Sprintf("BlockKind(%d)", int(k))
	}
	return blockKindNames[k]
}

// Block is a top-level structural unit of a Document.
// The set of implementations is closed: only this package can add one.
type Block interface {
	Kind() BlockKind
	block()
}

// Heading is an ATX heading, Level 1..6
type Heading struct {
	Level  int
	Inline []Inline
}

// Paragraph holds one inline-formatted source line
type Paragraph struct {
	Inline []Inline
}

// List is a run of consecutive items of the same kind.
// Each entry of Items is the inline content of one item.
type List struct {
	Ordered bool
	Items   [][]Inline
}

// CodeBlock is a fenced code block. Lines are raw and never formatted.
type CodeBlock struct {
	Language string
	Lines    []string
}

// CodeLine is a line consisting only of one backticked span.
type CodeLine struct {
	Code string
}

// Blockquote is a single quoted line with its marker removed
type Blockquote struct {
	Inline []Inline
}

// HorizontalRule is a thematic break
type HorizontalRule struct{}

// Table keeps its cells as raw text; renderers format them.
type Table struct {
	HeaderCells []string
	Rows        [][]string
}

// MathBlock is a single-line display math expression, delimiters stripped
type MathBlock struct {
	Expression string
}

// Spacer marks a preserved vertical gap
type Spacer struct{}

func (Heading) Kind() BlockKind        { return KindHeading }
func (Paragraph) Kind() BlockKind      { return KindParagraph }
func (List) Kind() BlockKind           { return KindList }
func (CodeBlock) Kind() BlockKind      { return KindCodeBlock }
func (CodeLine) Kind() BlockKind       { return KindCodeLine }
func (Blockquote) Kind() BlockKind     { return KindBlockquote }
func (HorizontalRule) Kind() BlockKind { return KindHorizontalRule }
func (Table) Kind() BlockKind          { return KindTable }
func (MathBlock) Kind() BlockKind      { return KindMathBlock }
func (Spacer) Kind() BlockKind         { return KindSpacer }

func (Heading) block()        {}
func (Paragraph) block()      {}
func (List) block()           {}
func (CodeBlock) block()      {}
func (CodeLine) block()       {}
func (Blockquote) block()     {}
func (HorizontalRule) block() {}
func (Table) block()          {}
func (MathBlock) block()      {}
func (Spacer) block()         {}

// InlineKind identifies the variant of an Inline
type InlineKind int

const (
	KindText InlineKind = iota
	KindBold
	KindItalic
	KindCode
	KindLink
)

var inlineKindNames = [...]string{
	KindText:   "text",
	KindBold:   "bold",
	KindItalic: "italic",
	KindCode:   "code",
	KindLink:   "link",
}

func (k InlineKind) String() string {
	if k < 0 || int(k) >= len(inlineKindNames) {
		return fmt.Sprintf("InlineKind(%d)", int(k))
	}
	return inlineKindNames[k]
}

// Inline is a span of text inside a block.
// Bold, Italic and Code values are opaque: they are never re-scanned for markup.
type Inline interface {
	Kind() InlineKind
	inline()
}

type Text struct{ Value string }
type Bold struct{ Value string }
type Italic struct{ Value string }
type Code struct{ Value string }

// Link carries the bracketed label and the parenthesised URL
type Link struct {
	Label string
	URL   string
}

func (Text) Kind() InlineKind   { return KindText }
func (Bold) Kind() InlineKind   { return KindBold }
func (Italic) Kind() InlineKind { return KindItalic }
func (Code) Kind() InlineKind   { return KindCode }
func (Link) Kind() InlineKind   { return KindLink }

func (Text) inline()   {}
func (Bold) inline()   {}
func (Italic) inline() {}
func (Code) inline()   {}
func (Link) inline()   {}

// PlainText concatenates the visible text of the given inlines.
// Links contribute their label.
func PlainText(inlines []Inline) string {
	var n int
	for _, in := range inlines {
		n += len(visible(in))
	}
	buf := make([]byte, 0, n)
	for _, in := range inlines {
		buf = append(buf, visible(in)...)
	}
	return string(buf)
}

func visible(in Inline) string {
	switch v := in.(type) {
	case Text:
		return v.Value
	case Bold:
		return v.Value
	case Italic:
		return v.Value
	case Code:
		return v.Value
	case Link:
		return v.Label
	}
	return ""
}

// Equal reports whether two documents are structurally identical
func Equal(a, b Document) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !reflect.DeepEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

// Validate checks the spacer invariants: no Spacer first, no two adjacent.
func (d Document) Validate() error {
	for i, b := range d {
		if b.Kind() != KindSpacer {
			continue
		}
		if i == 0 {
			return fmt.Errorf("%w: spacer at position 0", ErrInvalidDocument)
		}
		if d[i-1].Kind() == KindSpacer {
			return fmt.Errorf("%w: adjacent spacers at %d and %d", ErrInvalidDocument, i-1, i)
		}
	}
	return nil
}

// Count returns how many blocks of kind k the document holds
func (d Document) Count(k BlockKind) int {
	n := 0
	for _, b := range d {
		if b.Kind() == k {
			n++
		}
	}
	return n
}
