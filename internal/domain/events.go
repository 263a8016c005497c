package domain

import "pickgrip/internal/dom"

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventListOpened       EventType = "ListOpened"
	EventListClosed       EventType = "ListClosed"
	EventSelectionChanged EventType = "SelectionChanged"
	EventFirstTouch       EventType = "FirstTouch"
	EventCallbackFailed   EventType = "CallbackFailed"
	EventFormSubmitted    EventType = "FormSubmitted"
	EventConfigLoaded     EventType = "ConfigLoaded"
	EventConfigSaved      EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// ListOpenedEvent is emitted when a field's option list opens
type ListOpenedEvent struct {
	Source  string // field id
	Trigger *dom.Event
	Values  []string
}

func (e ListOpenedEvent) Type() EventType { return EventListOpened }

// ListClosedEvent is emitted when a field's option list closes
type ListClosedEvent struct {
	Source  string
	Trigger *dom.Event
	Values  []string
}

func (e ListClosedEvent) Type() EventType { return EventListClosed }

// SelectionChangedEvent is emitted when the user changes a field's selection
type SelectionChangedEvent struct {
	Source  string
	Trigger *dom.Event
	Values  []string
}

func (e SelectionChangedEvent) Type() EventType { return EventSelectionChanged }

// FirstTouchEvent is emitted the first time the user interacts with a field
type FirstTouchEvent struct {
	Source  string
	Trigger *dom.Event
}

func (e FirstTouchEvent) Type() EventType { return EventFirstTouch }

// CallbackFailedEvent is emitted when a lifecycle callback returns an error
type CallbackFailedEvent struct {
	Source   string
	Callback string
	Err      error
}

func (e CallbackFailedEvent) Type() EventType { return EventCallbackFailed }

// FormSubmittedEvent is emitted when the form is submitted
type FormSubmittedEvent struct {
	Values map[string][]string
}

func (e FormSubmittedEvent) Type() EventType { return EventFormSubmitted }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path   string
	Fields int
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
