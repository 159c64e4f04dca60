package render

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/gubarz/tutormd/internal/config"
)

// StyleManager holds the lipgloss styles used by the terminal renderer
type StyleManager struct {
	// Block styles
	Heading   lipgloss.Style
	Title     lipgloss.Style // level 1 and 2 headings
	Quote     lipgloss.Style
	QuoteBar  lipgloss.Style
	CodeBlock lipgloss.Style
	CodeLang  lipgloss.Style
	Math      lipgloss.Style
	Rule      lipgloss.Style
	Bullet    lipgloss.Style

	// Inline styles
	Bold   lipgloss.Style
	Italic lipgloss.Style
	Code   lipgloss.Style
	Link   lipgloss.Style
	URL    lipgloss.Style

	// Table and resources
	TableBorder lipgloss.Style
	TableHeader lipgloss.Style
	Dim         lipgloss.Style
}

// DefaultStyles returns a StyleManager with default styles
func DefaultStyles() *StyleManager {
	return &StyleManager{
		Heading:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
		Title:       lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("6")),
		Quote:       lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("8")),
		QuoteBar:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		CodeBlock:   lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		CodeLang:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Math:        lipgloss.NewStyle().Italic(true),
		Rule:        lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Bullet:      lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		Bold:        lipgloss.NewStyle().Bold(true),
		Italic:      lipgloss.NewStyle().Italic(true),
		Code:        lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		Link:        lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("4")),
		URL:         lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		TableBorder: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		TableHeader: lipgloss.NewStyle().Bold(true),
		Dim:         lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// PlainStyles returns styles that add no escape sequences
func PlainStyles() *StyleManager {
	plain := lipgloss.NewStyle()
	return &StyleManager{
		Heading: plain, Title: plain, Quote: plain, QuoteBar: plain,
		CodeBlock: plain, CodeLang: plain, Math: plain, Rule: plain, Bullet: plain,
		Bold: plain, Italic: plain, Code: plain, Link: plain, URL: plain,
		TableBorder: plain, TableHeader: plain, Dim: plain,
	}
}

// LoadFromConfig updates styles based on configuration
func (s *StyleManager) LoadFromConfig() {
	headingColor := parseANSIColor(config.GetColorHeading())
	codeColor := parseANSIColor(config.GetColorCode())
	quoteColor := parseANSIColor(config.GetColorQuote())
	linkColor := parseANSIColor(config.GetColorLink())
	ruleColor := lipgloss.Color(config.GetColorRule())
	dimColor := lipgloss.Color(config.GetColorDim())

	s.Heading = lipgloss.NewStyle().Bold(true).Foreground(headingColor)
	s.Title = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(headingColor)
	s.Bullet = lipgloss.NewStyle().Foreground(headingColor)

	s.Quote = lipgloss.NewStyle().Italic(true).Foreground(quoteColor)
	s.QuoteBar = lipgloss.NewStyle().Foreground(quoteColor)

	s.CodeBlock = lipgloss.NewStyle().Foreground(codeColor)
	s.Code = lipgloss.NewStyle().Foreground(codeColor)
	s.Link = lipgloss.NewStyle().Underline(true).Foreground(linkColor)

	s.Rule = lipgloss.NewStyle().Foreground(ruleColor)
	s.TableBorder = lipgloss.NewStyle().Foreground(ruleColor)
	s.CodeLang = lipgloss.NewStyle().Foreground(dimColor)
	s.URL = lipgloss.NewStyle().Foreground(dimColor)
	s.Dim = lipgloss.NewStyle().Foreground(dimColor)
}

// parseANSIColor converts ANSI color codes to lipgloss colors
func parseANSIColor(code string) lipgloss.Color {
	ansiToLipgloss := map[string]string{
		"30": "0", "31": "1", "32": "2", "33": "3",
		"34": "4", "35": "5", "36": "6", "37": "7",
		"90": "8", "91": "9", "92": "10", "93": "11",
		"94": "12", "95": "13", "96": "14", "97": "15",
	}
	if mapped, ok := ansiToLipgloss[code]; ok {
		return lipgloss.Color(mapped)
	}
	return lipgloss.Color(code)
}
