package document

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		doc     Document
		wantErr bool
	}{
		{name: "empty", doc: Document{}},
		{name: "spacer between blocks", doc: Document{Paragraph{}, Spacer{}, Paragraph{}}},
		{name: "trailing spacer", doc: Document{HorizontalRule{}, Spacer{}}},
		{name: "leading spacer", doc: Document{Spacer{}, Paragraph{}}, wantErr: true},
		{name: "double spacer", doc: Document{Paragraph{}, Spacer{}, Spacer{}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.doc.Validate()
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidDocument), "got %v", err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestPlainText(t *testing.T) {
	in := []Inline{
		Text{Value: "see "},
		Bold{Value: "this"},
		Text{Value: ", "},
		Link{Label: "docs", URL: "https://example.com"},
		Code{Value: "x"},
		Italic{Value: "!"},
	}
	assert.Equal(t, "see this, docsx!", PlainText(in))
	assert.Equal(t, "", PlainText(nil))
}

func TestKindStrings(t *testing.T) {
	assert.Equal(t, "code_line", KindCodeLine.String())
	assert.Equal(t, "link", KindLink.String())
	assert.Equal(t, "BlockKind(99)", BlockKind(99).String())
}

func TestDocumentJSON(t *testing.T) {
	doc := Document{
		Heading{Level: 2, Inline: []Inline{Text{Value: "Hi"}}},
		Spacer{},
		List{Ordered: true, Items: [][]Inline{{Bold{Value: "a"}}, nil}},
		Table{HeaderCells: []string{"A"}},
		CodeBlock{Language: "go"},
		Paragraph{Inline: []Inline{Link{Label: "l", URL: "u"}}},
	}

	raw, err := json.Marshal(doc)
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	require.Len(t, got, len(doc))

	assert.Equal(t, "heading", got[0]["type"])
	assert.EqualValues(t, 2, got[0]["level"])
	assert.Equal(t, "spacer", got[1]["type"])
	assert.Equal(t, []any{
		[]any{map[string]any{"type": "bold", "value": "a"}},
		[]any{},
	}, got[2]["items"])
	assert.Equal(t, []any{}, got[3]["rows"])
	assert.Equal(t, []any{}, got[4]["lines"])
	assert.Equal(t, []any{map[string]any{"type": "link", "label": "l", "url": "u"}}, got[5]["inline"])
}

func TestCount(t *testing.T) {
	doc := Document{Paragraph{}, Spacer{}, Paragraph{}, HorizontalRule{}}
	assert.Equal(t, 2, doc.Count(KindParagraph))
	assert.Equal(t, 0, doc.Count(KindTable))
}
