package render

import (
	"errors"
	"fmt"
	"io"

	"github.com/gubarz/tutormd/internal/citation"
)

// Format names an output surface
type Format string

const (
	FormatTerm     Format = "term"
	FormatPlain    Format = "plain"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatGlamour  Format = "glamour"
)

// Formats lists the supported formats
var Formats = []Format{FormatTerm, FormatPlain, FormatJSON, FormatMarkdown, FormatGlamour}

// ErrUnknownFormat is returned by Render for an unsupported format
var ErrUnknownFormat = errors.New("unknown output format")

// Options controls rendering
type Options struct {
	Format       Format
	Width        int
	GlamourStyle string
	JSONIndent   bool
	Styles       *StyleManager // nil uses DefaultStyles
}

// Render writes msg to w in the requested format
func Render(w io.Writer, msg citation.Message, opts Options) error {
	switch opts.Format {
	case FormatTerm, "":
		styles := opts.Styles
		if styles == nil {
			styles = DefaultStyles()
		}
		_, err := io.WriteString(w, Terminal(msg, styles, opts.Width))
		return err
	case FormatPlain:
		_, err := io.WriteString(w, Terminal(msg, PlainStyles(), opts.Width))
		return err
	case FormatJSON:
		return WriteJSON(w, msg, opts.JSONIndent)
	case FormatMarkdown:
		_, err := io.WriteString(w, Markdown(msg))
		return err
	case FormatGlamour:
		out, err := Glamour(msg, opts.GlamourStyle, opts.Width)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, out)
		return err
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, opts.Format)
	}
}
