package ui

import (
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/npillmayer/schuko/tracing"

	"github.com/gubarz/tutormd/internal/citation"
	"github.com/gubarz/tutormd/internal/clipboard"
	"github.com/gubarz/tutormd/internal/logging"
)

// tracer traces with key 'tutormd.ui'.
func tracer() tracing.Trace {
	return tracing.Select(logging.UI)
}

// isTerminal reports whether f is a character device. A closed or
// otherwise unusable file is not.
func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// getTTY returns file handles for TUI input/output
// Uses /dev/tty so the pager still works when the message is piped in
func getTTY() (in *os.File, out *os.File, cleanup func()) {
	var closers []func()

	in, out = os.Stdin, os.Stdout

	// stdin carries the message when piped, so keys must come from the tty
	if !isTerminal(os.Stdin) {
		if tty, err := os.OpenFile("/dev/tty", os.O_RDONLY, 0); err == nil {
			in = tty
			closers = append(closers, func() { tty.Close() })
		}
	}

	// stdout is NOT a terminal - we're being captured
	if !isTerminal(os.Stdout) {
		if tty, err := os.OpenFile("/dev/tty", os.O_WRONLY, 0); err == nil {
			out = tty
			closers = append(closers, func() { tty.Close() })
		} else {
			out = os.Stderr // Last resort fallback
		}
		// Tell lipgloss to use the TTY for color detection
		lipgloss.SetDefaultRenderer(lipgloss.NewRenderer(out))
	}

	return in, out, func() {
		for _, c := range closers {
			c()
		}
	}
}

// Run opens the pager on text. When stream is non-nil its content is
// appended chunk by chunk and the whole message is re-rendered each time.
func Run(text string, resources []citation.Resource, stream io.Reader) error {
	ttyIn, ttyOut, cleanup := getTTY()
	defer cleanup()

	m := newPagerModel(text, resources, stream, &clipboard.System{})
	m.styles.LoadFromConfig() // after getTTY sets up the renderer

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithOutput(ttyOut), tea.WithInput(ttyIn))
	_, err := p.Run()
	return err
}
