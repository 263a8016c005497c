package handlers

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"pickgrip/internal/eventbus"
	"pickgrip/internal/ui/state"
)

// EventHandler handles domain events and updates state
type EventHandler struct {
	state     *state.FormState
	fieldName func(id string) string
}

// NewEventHandler creates a new event handler. fieldName maps a field id to
// the name shown in status messages.
func NewEventHandler(formState *state.FormState, fieldName func(id string) string) *EventHandler {
	return &EventHandler{
		state:     formState,
		fieldName: fieldName,
	}
}

// HandleEvent processes domain events and returns any necessary commands
func (h *EventHandler) HandleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.SelectionChangedEvent:
		if len(e.Values) == 0 {
			h.state.SetStatus(fmt.Sprintf("%s cleared", h.name(e.Source)))
			break
		}
		h.state.SetStatus(fmt.Sprintf("%s: %s", h.name(e.Source), strings.Join(e.Values, ", ")))

	case eventbus.CallbackFailedEvent:
		h.state.SetError(fmt.Sprintf("%s %s failed: %v", h.name(e.Source), e.Callback, e.Err))

	case eventbus.ConfigLoadedEvent:
		h.state.SetStatus(fmt.Sprintf("Loaded %d fields from %s", e.Fields, e.Path))

	case eventbus.ConfigSavedEvent:
		h.state.SetStatus(fmt.Sprintf("Saved selection to %s", e.Path))

	case eventbus.FormSubmittedEvent:
		h.state.Submitted = true
		h.state.Values = e.Values
		return tea.Quit
	}

	return nil
}

func (h *EventHandler) name(id string) string {
	if h.fieldName == nil {
		return id
	}
	if name := h.fieldName(id); name != "" {
		return name
	}
	return id
}
