package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"pickgrip/internal/ui/input/types"
)

// SearchMode sends every printable key to the focused search input
type SearchMode struct{}

func NewSearchMode() *SearchMode {
	return &SearchMode{}
}

func (m *SearchMode) Name() string {
	return "search"
}

func (m *SearchMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *SearchMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *SearchMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	if actions, ok := global(msg, ctx); ok {
		return actions, true
	}
	return presses(msg)
}
