package citation

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gubarz/tutormd/internal/document"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestAppend(t *testing.T) {
	body := document.Document{document.Paragraph{Inline: []document.Inline{document.Text{Value: "hi"}}}}
	resources := []Resource{
		{Title: "Go Tour", URL: "https://go.dev/tour", Type: "tutorial"},
		{Title: "**not parsed**"},
	}

	msg := Append(body, resources)
	assert.Equal(t, body, msg.Body)
	assert.Equal(t, resources, msg.Resources)

	resources[0].Title = "changed"
	assert.Equal(t, "Go Tour", msg.Resources[0].Title, "append must copy the records")

	assert.Nil(t, Append(body, nil).Resources)
}

func TestLoad(t *testing.T) {
	t.Run("yaml", func(t *testing.T) {
		path := writeFile(t, "res.yaml", `resources:
  - title: Khan Academy
    url: https://khanacademy.org
    type: video
  - title: Textbook chapter 3
`)
		got, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, []Resource{
			{Title: "Khan Academy", URL: "https://khanacademy.org", Type: "video"},
			{Title: "Textbook chapter 3"},
		}, got)
		assert.True(t, got[0].HasLink())
		assert.False(t, got[1].HasLink())
	})

	t.Run("json", func(t *testing.T) {
		path := writeFile(t, "res.json", `{"resources":[{"title":"Paper","url":"https://arxiv.org/abs/1"}]}`)
		got, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, []Resource{{Title: "Paper", URL: "https://arxiv.org/abs/1"}}, got)
	})

	t.Run("missing title", func(t *testing.T) {
		path := writeFile(t, "res.yaml", "resources:\n  - url: https://x.org\n")
		_, err := Load(path)
		assert.True(t, errors.Is(err, ErrNoTitle), "got %v", err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}
