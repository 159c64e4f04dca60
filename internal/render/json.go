package render

import (
	"encoding/json"
	"io"

	"github.com/gubarz/tutormd/internal/citation"
	"github.com/gubarz/tutormd/internal/document"
)

// WriteJSON encodes the message as tagged JSON nodes
func WriteJSON(w io.Writer, msg citation.Message, indent bool) error {
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	if msg.Body == nil {
		msg.Body = document.Document{}
	}
	return enc.Encode(msg)
}
