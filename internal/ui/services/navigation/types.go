package navigation

import "pickgrip/internal/dom"

// Hooks into the other services. The navigator decides what a key means;
// the owners of the list and the selection carry it out.
type (
	ToggleFunc func(e *dom.Event)
	CloseFunc  func(e *dom.Event, exit bool)
	ApplyFunc  func(index int, e *dom.Event)
)
