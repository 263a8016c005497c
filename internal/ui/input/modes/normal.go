package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"pickgrip/internal/ui/input/types"
)

// NormalMode handles keys while no search input has focus
type NormalMode struct{}

func NewNormalMode() *NormalMode {
	return &NormalMode{}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	if actions, ok := global(msg, ctx); ok {
		return actions, true
	}

	switch msg.String() {
	case "q":
		if ctx.IsOpen() {
			break
		}
		return []types.Action{types.QuitAction{}}, true
	case "?":
		return []types.Action{types.ShowHelpAction{}}, true
	case "H":
		return []types.Action{types.ToggleHelpAction{}}, true
	case "y":
		return []types.Action{types.CopyAction{}}, true
	case "x", "delete":
		return []types.Action{types.ClearAction{}}, true
	}

	return presses(msg)
}
