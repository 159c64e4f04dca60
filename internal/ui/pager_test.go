package ui

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gubarz/tutormd/internal/document"
)

type fakeClipboard struct {
	copied []string
	err    error
}

func (f *fakeClipboard) Copy(text string) error {
	f.copied = append(f.copied, text)
	return f.err
}

func update(t *testing.T, m pagerModel, msg tea.Msg) (pagerModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	pm, ok := next.(pagerModel)
	require.True(t, ok)
	return pm, cmd
}

func TestPagerStreamsAndReparses(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tutormd.ui")
	defer teardown()
	//
	stream := strings.NewReader("ignored, chunks are fed by hand")
	m := newPagerModel("", nil, stream, &fakeClipboard{})
	require.True(t, m.streaming)
	require.NotNil(t, m.Init())

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 60, Height: 20})
	require.True(t, m.ready)

	m, cmd := update(t, m, chunkMsg{data: []byte("# Ti")})
	assert.NotNil(t, cmd, "expects another read")
	assert.Equal(t, document.Document{
		document.Heading{Level: 1, Inline: []document.Inline{document.Text{Value: "Ti"}}},
	}, m.doc)

	m, _ = update(t, m, chunkMsg{data: []byte("tle\n\n- a\n- b")})
	assert.Equal(t, "# Title\n\n- a\n- b", m.text)
	assert.Equal(t, 1, m.doc.Count(document.KindList))
	assert.Contains(t, m.View(), "Title")

	m, _ = update(t, m, chunkMsg{err: io.EOF})
	assert.False(t, m.streaming)
	assert.NotContains(t, m.statusLine(), "streaming")
}

func TestPagerReadError(t *testing.T) {
	m := newPagerModel("", nil, strings.NewReader(""), &fakeClipboard{})
	m, _ = update(t, m, chunkMsg{err: errors.New("boom")})
	assert.False(t, m.streaming)
	assert.Contains(t, m.status, "boom")
}

func TestPagerYankCycles(t *testing.T) {
	cb := &fakeClipboard{}
	m := newPagerModel("```\none\n```\n`two`", nil, nil, cb)
	require.Len(t, m.snippets, 2)

	for i := 0; i < 3; i++ {
		var cmd tea.Cmd
		m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
		require.NotNil(t, cmd)
		m, _ = update(t, m, cmd())
	}

	assert.Equal(t, []string{"one", "two", "one"}, cb.copied)
	assert.Equal(t, "copied code block 1/2", m.status)
}

func TestPagerYankWithoutCode(t *testing.T) {
	m := newPagerModel("plain text", nil, nil, &fakeClipboard{})
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	m, _ = update(t, m, cmd())
	assert.Contains(t, m.status, "no code blocks")
}

func TestPagerQuit(t *testing.T) {
	m := newPagerModel("x", nil, nil, &fakeClipboard{})
	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestPagerViewBeforeSize(t *testing.T) {
	m := newPagerModel("x", nil, nil, &fakeClipboard{})
	assert.Equal(t, "loading...", m.View())
}

func TestIsTerminal(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "msg"))
	require.NoError(t, err)
	assert.False(t, isTerminal(f), "regular file")

	require.NoError(t, f.Close())
	assert.NotPanics(t, func() {
		assert.False(t, isTerminal(f), "closed file")
	})

	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()
	assert.False(t, isTerminal(r), "pipe")
}
