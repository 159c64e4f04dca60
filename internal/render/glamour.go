package render

import (
	"fmt"

	"github.com/charmbracelet/glamour"

	"github.com/gubarz/tutormd/internal/citation"
)

// Glamour renders the message through glamour using a standard style
func Glamour(msg citation.Message, style string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create renderer: %w", err)
	}

	out, err := r.Render(markdown(msg, "\n\n"))
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}
