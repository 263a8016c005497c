package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title       lipgloss.Style
	Label       lipgloss.Style
	LabelFocus  lipgloss.Style
	Dim         lipgloss.Style
	Display     lipgloss.Style
	DisplayOpen lipgloss.Style
	Placeholder lipgloss.Style
	Arrow       lipgloss.Style
	Tag         lipgloss.Style
	TagFocus    lipgloss.Style
	Search      lipgloss.Style
	Header      lipgloss.Style
	Option      lipgloss.Style
	Hover       lipgloss.Style
	Selected    lipgloss.Style
	Disabled    lipgloss.Style
	Description lipgloss.Style
	Message     lipgloss.Style
	Scroll      lipgloss.Style
	Status      lipgloss.Style
	StatusError lipgloss.Style
	Help        lipgloss.Style
	HelpBox     lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
		Label:       lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		LabelFocus:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Dim:         lipgloss.NewStyle().Faint(true),
		Display:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		DisplayOpen: lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Arrow:       lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		Tag:         lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("61")),
		TagFocus:    lipgloss.NewStyle().Foreground(lipgloss.Color("16")).Background(lipgloss.Color("226")),
		Search:      lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Header:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
		Option:      lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Hover:       lipgloss.NewStyle().Background(lipgloss.Color("238")),
		Selected:    lipgloss.NewStyle().Foreground(lipgloss.Color("78")).Bold(true), // green
		Disabled:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Strikethrough(true),
		Description: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Message:     lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Italic(true),
		Scroll:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Status:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		StatusError: lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		Help:        lipgloss.NewStyle().Faint(true),
		HelpBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(1).
			BorderForeground(lipgloss.Color("241")),
	}
}
