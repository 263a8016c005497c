package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"pickgrip/internal/dom"
	"pickgrip/internal/ui/input/types"
)

// presses translates a terminal key into field key presses. Pasted text
// arrives as several runes and becomes one press per rune.
func presses(msg tea.KeyMsg) ([]types.Action, bool) {
	switch msg.Type {
	case tea.KeyEnter:
		return press(dom.KeyEnter, 0), true
	case tea.KeyEsc:
		return press(dom.KeyEscape, 0), true
	case tea.KeySpace:
		return press(dom.KeySpace, ' '), true
	case tea.KeyUp:
		return press(dom.KeyArrowUp, 0), true
	case tea.KeyDown:
		return press(dom.KeyArrowDown, 0), true
	case tea.KeyLeft:
		return press(dom.KeyLeft, 0), true
	case tea.KeyRight:
		return press(dom.KeyRight, 0), true
	case tea.KeyBackspace, tea.KeyCtrlH:
		return press(dom.KeyBackspace, 0), true
	case tea.KeyRunes:
		if msg.Alt {
			return nil, false
		}
		actions := make([]types.Action, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			if r == ' ' {
				actions = append(actions, types.PressAction{Key: dom.KeySpace, Rune: r})
				continue
			}
			actions = append(actions, types.PressAction{Key: dom.KeyRune, Rune: r})
		}
		return actions, len(actions) > 0
	}
	return nil, false
}

func press(key dom.Key, r rune) []types.Action {
	return []types.Action{types.PressAction{Key: key, Rune: r}}
}

// fieldSwitch leaves the focused field the way Tab does and focuses the next
func fieldSwitch(delta int) []types.Action {
	return []types.Action{
		types.PressAction{Key: dom.KeyTab},
		types.FocusFieldAction{Delta: delta},
	}
}

// global handles the keys every mode shares
func global(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return []types.Action{types.QuitAction{Force: true}}, true
	case tea.KeyCtrlS:
		return []types.Action{types.SubmitAction{}}, true
	case tea.KeyTab:
		if ctx.FieldCount() == 0 {
			return nil, false
		}
		return fieldSwitch(1), true
	case tea.KeyShiftTab:
		if ctx.FieldCount() == 0 {
			return nil, false
		}
		return fieldSwitch(-1), true
	}
	return nil, false
}
