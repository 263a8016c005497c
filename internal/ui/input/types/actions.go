package types

import "pickgrip/internal/dom"

// PressAction types a key into the focused field
type PressAction struct {
	Key  dom.Key
	Rune rune
}

func (a PressAction) Type() string { return "press" }

// FocusFieldAction moves form focus Delta fields forward, wrapping around
type FocusFieldAction struct {
	Delta int
}

func (a FocusFieldAction) Type() string { return "focus_field" }

type SubmitAction struct{}

func (a SubmitAction) Type() string { return "submit" }

// CopyAction copies the focused field's value to the clipboard
type CopyAction struct{}

func (a CopyAction) Type() string { return "copy" }

type ClearAction struct{}

func (a ClearAction) Type() string { return "clear" }

type ShowHelpAction struct{}

func (a ShowHelpAction) Type() string { return "show_help" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for 'q'
}

func (a QuitAction) Type() string { return "quit" }
