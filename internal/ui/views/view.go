package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

// Main container padding
const (
	padTop  = 1
	padLeft = 2
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width         int
	Height        int
	Title         string
	Fields        []FieldView
	Focused       int
	StatusMessage string
	StatusError   bool
	InputMode     string
	HelpModel     help.Model
	HelpKeys      help.KeyMap
	ShowFullHelp  bool
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	fieldRender *FieldRenderer
	popupRender *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:      styles,
		fieldRender: NewFieldRenderer(styles),
		popupRender: NewPopupRenderer(styles),
	}
}

// Render produces the complete view and the screen layout of the fields
func (r *Renderer) Render(state ViewState) (string, Layout) {
	termWidth := state.Width
	if termWidth <= 0 {
		termWidth = 80 // Default terminal width
	}
	width := termWidth - 2*padLeft

	var lines []string
	var layout Layout

	lines = append(lines, r.titleLine(state, width), "")

	if len(state.Fields) == 0 {
		lines = append(lines, r.styles.Dim.Render("No fields configured."))
	}
	for i, f := range state.Fields {
		if i > 0 {
			lines = append(lines, "")
		}
		block, fieldLayout := r.fieldRender.Render(i, f, width)
		layout.merge(fieldLayout, padTop+len(lines))
		lines = append(lines, block...)
	}

	if state.StatusMessage != "" {
		style := r.styles.Status
		if state.StatusError {
			style = r.styles.StatusError
		}
		lines = append(lines, "", style.Render(state.StatusMessage))
	}

	helpText := ""
	if state.HelpKeys != nil {
		helpText = state.HelpModel.ShortHelpView(state.HelpKeys.ShortHelp())
	}
	if helpText == "" {
		helpText = "Press ? for help"
	}

	// Push the help bar to the bottom
	availableLines := state.Height - 2*padTop
	if availableLines <= 0 {
		availableLines = 22 // Default terminal height minus padding
	}
	for pad := availableLines - len(lines) - 1; pad > 0; pad-- {
		lines = append(lines, "")
	}
	lines = append(lines, r.styles.Help.Render(helpText))

	var content strings.Builder
	content.WriteString(strings.Repeat("\n", padTop))
	for i, l := range lines {
		if i > 0 {
			content.WriteString("\n")
		}
		content.WriteString(strings.Repeat(" ", padLeft))
		content.WriteString(l)
	}

	for i := range layout.zones {
		layout.zones[i].Left += padLeft
		layout.zones[i].Right += padLeft
	}

	out := content.String()
	if state.ShowFullHelp && state.HelpKeys != nil {
		full := state.HelpModel.FullHelpView(state.HelpKeys.FullHelp())
		out = r.popupRender.RenderPopupOverlay(out, full, max(state.Height, availableLines), termWidth, r.styles.HelpBox)
	}
	return out, layout
}

func (r *Renderer) titleLine(state ViewState, width int) string {
	title := state.Title
	if title == "" {
		title = "pickgrip"
	}
	logo := r.styles.Title.Render(title)

	var right []string
	if n := len(state.Fields); n > 0 {
		right = append(right, fmt.Sprintf("field %d/%d", state.Focused+1, n))
	}
	if state.InputMode != "" && state.InputMode != "normal" {
		right = append(right, fmt.Sprintf("[%s]", state.InputMode))
	}
	if len(right) == 0 {
		return logo
	}

	rightContent := r.styles.Dim.Render(strings.Join(right, "  "))
	padding := width - lipgloss.Width(logo) - lipgloss.Width(rightContent)
	if padding < 2 {
		padding = 2
	}
	return logo + strings.Repeat(" ", padding) + rightContent
}
