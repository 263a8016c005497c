package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"pickgrip/internal/ui/input/modes"
	"pickgrip/internal/ui/input/types"
)

// Handler turns key messages into actions. The mode follows the focused
// field: while its search input has focus every printable key is typed.
type Handler struct {
	currentMode types.Mode
	modes       map[types.Mode]types.ModeHandler
	textInput   *textinput.Model // renders the focused search query
}

func New() *Handler {
	ti := textinput.New()
	ti.Prompt = ""

	h := &Handler{
		currentMode: types.ModeNormal,
		textInput:   &ti,
		modes:       make(map[types.Mode]types.ModeHandler),
	}

	h.modes[types.ModeNormal] = modes.NewNormalMode()
	h.modes[types.ModeSearch] = modes.NewSearchMode()

	return h
}

func (h *Handler) HandleKey(msg tea.KeyMsg, ctx types.Context) []types.Action {
	actions := h.Sync(ctx)

	handler := h.modes[h.currentMode]
	if handler == nil {
		return actions
	}
	keyActions, consumed := handler.HandleKey(msg, ctx)
	if !consumed {
		return actions
	}
	return append(actions, keyActions...)
}

// Sync switches mode when the focused field started or stopped typing
func (h *Handler) Sync(ctx types.Context) []types.Action {
	mode := types.ModeNormal
	if ctx.Typing() {
		mode = types.ModeSearch
	}
	if mode == h.currentMode {
		return nil
	}

	var actions []types.Action
	if old := h.modes[h.currentMode]; old != nil {
		actions = append(actions, old.Exit(ctx)...)
	}
	h.currentMode = mode
	if next := h.modes[mode]; next != nil {
		actions = append(actions, next.Enter(ctx)...)
	}

	if mode == types.ModeSearch {
		h.textInput.Focus()
	} else {
		h.textInput.Blur()
	}
	return actions
}

// SetQuery shows query in the search input with the cursor at its end
func (h *Handler) SetQuery(query string) {
	if h.textInput.Value() != query {
		h.textInput.SetValue(query)
	}
	h.textInput.CursorEnd()
}

func (h *Handler) CurrentMode() types.Mode {
	return h.currentMode
}

// ModeName returns the display name of the current mode
func (h *Handler) ModeName() string {
	if m := h.modes[h.currentMode]; m != nil {
		return m.Name()
	}
	return ""
}

func (h *Handler) TextInput() *textinput.Model {
	return h.textInput
}

// Update handles non-keyboard messages for the text input, such as the
// cursor blink
func (h *Handler) Update(msg tea.Msg) tea.Cmd {
	if h.currentMode != types.ModeSearch {
		return nil
	}
	if _, ok := msg.(tea.KeyMsg); ok {
		return nil
	}
	var cmd tea.Cmd
	*h.textInput, cmd = h.textInput.Update(msg)
	return cmd
}

// Init returns the initial command for the handler
func (h *Handler) Init() tea.Cmd {
	return textinput.Blink
}
