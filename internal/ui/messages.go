package ui

import "pickgrip/internal/eventbus"

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// indentRetryMsg asks for the tag indent once the terminal width is known
type indentRetryMsg struct{}

// clipboardMsg contains the result of a copy to the clipboard
type clipboardMsg struct {
	text string
	err  error
}

// quitMsg signals that the application should quit
type quitMsg struct{}
