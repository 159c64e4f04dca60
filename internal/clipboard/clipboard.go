package clipboard

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/gubarz/tutormd/internal/document"
)

// ErrNoClipboard is returned when no clipboard tool exists and there is
// no fallback writer
var ErrNoClipboard = errors.New("no clipboard tool found")

// Clipboard defines the interface for clipboard operations
type Clipboard interface {
	Copy(text string) error
}

// System implements Clipboard using whatever clipboard tool is installed.
// With none available the text is written to Fallback, if set.
type System struct {
	Fallback io.Writer
}

// NewSystem returns a system clipboard that falls back to stdout
func NewSystem() *System {
	return &System{Fallback: os.Stdout}
}

// Copy copies text to the system clipboard
func (c *System) Copy(text string) error {
	cmd := findClipboardCommand()
	if cmd == nil {
		if c.Fallback == nil {
			return ErrNoClipboard
		}
		_, err := fmt.Fprintln(c.Fallback, text)
		return err
	}
	cmd.Stdin = strings.NewReader(text)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("clipboard %s: %w", cmd.Path, err)
	}
	return nil
}

// findClipboardCommand returns the appropriate clipboard command for the system
func findClipboardCommand() *exec.Cmd {
	switch {
	case commandExists("wl-copy"):
		return exec.Command("wl-copy")
	case commandExists("xclip"):
		return exec.Command("xclip", "-selection", "clipboard")
	case commandExists("xsel"):
		return exec.Command("xsel", "--clipboard", "--input")
	case commandExists("pbcopy"):
		return exec.Command("pbcopy")
	default:
		return nil
	}
}

// commandExists checks if a command is available in PATH
func commandExists(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// Snippets returns the copyable code of a document in order:
// fenced blocks joined by newlines, and standalone code lines.
func Snippets(doc document.Document) []string {
	var out []string
	for _, b := range doc {
		switch v := b.(type) {
		case document.CodeBlock:
			out = append(out, strings.Join(v.Lines, "\n"))
		case document.CodeLine:
			out = append(out, v.Code)
		}
	}
	return out
}
