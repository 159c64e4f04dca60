package ui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gubarz/tutormd/internal/citation"
	"github.com/gubarz/tutormd/internal/clipboard"
	"github.com/gubarz/tutormd/internal/config"
	"github.com/gubarz/tutormd/internal/document"
	"github.com/gubarz/tutormd/internal/parser"
	"github.com/gubarz/tutormd/internal/render"
)

const chunkSize = 512

type keyMap struct {
	Quit   key.Binding
	Yank   key.Binding
	Top    key.Binding
	Bottom key.Binding
}

var keys = keyMap{
	Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	Yank:   key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy next code block")),
	Top:    key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
	Bottom: key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
}

// chunkMsg carries the next piece of a streamed message
type chunkMsg struct {
	data []byte
	err  error
}

// yankedMsg reports the result of a clipboard copy
type yankedMsg struct {
	index int
	total int
	err   error
}

// pagerModel shows a rendered message and re-parses it as chunks arrive
type pagerModel struct {
	viewport viewport.Model
	ready    bool
	width    int
	height   int

	text      string
	resources []citation.Resource
	doc       document.Document
	snippets  []string
	yank      int

	stream    io.Reader
	streaming bool

	styles    *render.StyleManager
	statusSty lipgloss.Style
	status    string
	clipboard clipboard.Clipboard
}

// newPagerModel creates a pager over text. A non-nil stream is read in
// chunks and appended to text.
func newPagerModel(text string, resources []citation.Resource, stream io.Reader, cb clipboard.Clipboard) pagerModel {
	m := pagerModel{
		text:      text,
		resources: resources,
		stream:    stream,
		streaming: stream != nil,
		styles:    render.DefaultStyles(),
		statusSty: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		clipboard: cb,
		width:     config.GetWidth(),
	}
	m.reparse()
	return m
}

// Init implements tea.Model
func (m pagerModel) Init() tea.Cmd {
	if m.streaming {
		return readChunk(m.stream)
	}
	return nil
}

func readChunk(r io.Reader) tea.Cmd {
	return func() tea.Msg {
		buf := make([]byte, chunkSize)
		n, err := r.Read(buf)
		return chunkMsg{data: buf[:n], err: err}
	}
}

// Update implements tea.Model
func (m pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		bodyHeight := max(msg.Height-1, 1)
		if !m.ready {
			m.viewport = viewport.New(msg.Width, bodyHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = bodyHeight
		}
		m.refresh(false)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Yank):
			return m, m.yankNext()
		case key.Matches(msg, keys.Top):
			m.viewport.GotoTop()
			return m, nil
		case key.Matches(msg, keys.Bottom):
			m.viewport.GotoBottom()
			return m, nil
		}

	case chunkMsg:
		if len(msg.data) > 0 {
			m.text += string(msg.data)
			m.reparse()
			m.refresh(m.viewport.AtBottom())
		}
		switch {
		case msg.err == nil:
			cmds = append(cmds, readChunk(m.stream))
		case errors.Is(msg.err, io.EOF):
			m.streaming = false
		default:
			m.streaming = false
			m.status = "read error: " + msg.err.Error()
		}

	case yankedMsg:
		m.yank = msg.index + 1
		if msg.err != nil {
			m.status = "copy failed: " + msg.err.Error()
		} else {
			m.status = fmt.Sprintf("copied code block %d/%d", msg.index+1, msg.total)
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// reparse segments the whole buffer again. The parser keeps no state
// between calls, so there is nothing incremental to update.
func (m *pagerModel) reparse() {
	m.doc = parser.Segment(m.text)
	m.snippets = clipboard.Snippets(m.doc)
	tracer().Debugf("pager: %d bytes -> %d blocks, %d code", len(m.text), len(m.doc),
		m.doc.Count(document.KindCodeBlock)+m.doc.Count(document.KindCodeLine))
}

func (m *pagerModel) refresh(follow bool) {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.rendered())
	if follow {
		m.viewport.GotoBottom()
	}
}

func (m pagerModel) rendered() string {
	return render.Terminal(citation.Append(m.doc, m.resources), m.styles, m.width)
}

func (m pagerModel) yankNext() tea.Cmd {
	total := len(m.snippets)
	if total == 0 {
		return func() tea.Msg { return yankedMsg{err: errors.New("no code blocks")} }
	}
	idx := m.yank % total
	text := m.snippets[idx]
	cb := m.clipboard
	return func() tea.Msg {
		return yankedMsg{index: idx, total: total, err: cb.Copy(text)}
	}
}

// View implements tea.Model
func (m pagerModel) View() string {
	if !m.ready {
		return "loading..."
	}
	return m.viewport.View() + "\n" + m.statusLine()
}

func (m pagerModel) statusLine() string {
	parts := []string{fmt.Sprintf("%3.f%%", m.viewport.ScrollPercent()*100)}
	if m.streaming {
		parts = append(parts, "streaming")
	}
	parts = append(parts, fmt.Sprintf("%d blocks", len(m.doc)))
	if m.status != "" {
		parts = append(parts, m.status)
	}
	parts = append(parts, keys.Yank.Help().Key+" "+keys.Yank.Help().Desc, keys.Quit.Help().Key+" "+keys.Quit.Help().Desc)
	return m.statusSty.Render(strings.Join(parts, " · "))
}
