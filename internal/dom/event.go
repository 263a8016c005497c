package dom

// EventType names a kind of input event
type EventType string

const (
	Click      EventType = "click"
	KeyDown    EventType = "keydown"
	KeyUp      EventType = "keyup"
	Focus      EventType = "focus"
	Blur       EventType = "blur"
	MouseEnter EventType = "mouseenter"
	MouseLeave EventType = "mouseleave"
	TouchEnd   EventType = "touchend"
	Change     EventType = "change"
)

// Bubbles reports whether events of this type travel up to the ancestors
func (t EventType) Bubbles() bool {
	switch t {
	case Focus, Blur, MouseEnter, MouseLeave:
		return false
	}
	return true
}

// Key is a logical key, independent of the terminal encoding
type Key int

const (
	KeyNone Key = iota
	KeyTab
	KeyEnter
	KeyEscape
	KeySpace
	KeyArrowUp
	KeyArrowDown
	KeyLeft
	KeyRight
	KeyBackspace
	KeyShift
	KeyCtrl
	KeyAlt
	KeyCapsLock
	KeyMeta
	KeyRune
)

// IsModifier reports keys that never count as a value change on their own
func (k Key) IsModifier() bool {
	switch k {
	case KeyTab, KeyShift, KeyCtrl, KeyAlt, KeyCapsLock, KeyMeta:
		return true
	}
	return false
}

// IsNavigation reports keys the search field forwards instead of filtering
func (k Key) IsNavigation() bool {
	switch k {
	case KeyArrowUp, KeyArrowDown, KeyEnter, KeyEscape:
		return true
	}
	return false
}

// Delta returns the index step for the vertical arrow keys
func (k Key) Delta() int {
	switch k {
	case KeyArrowUp:
		return -1
	case KeyArrowDown:
		return 1
	}
	return 0
}

// Event is a single input event travelling through the element tree
type Event struct {
	Type   EventType
	Target Target
	Key    Key
	Rune   rune

	// MultiSelect is set when the additive modifier (ctrl/cmd) was held
	MultiSelect bool

	stopped   bool
	prevented bool
}

// NewEvent creates an event of the given type aimed at target
func NewEvent(typ EventType, target Target) *Event {
	return &Event{Type: typ, Target: target}
}

// NewKeyEvent creates a keyboard event aimed at target
func NewKeyEvent(typ EventType, target Target, key Key, r rune) *Event {
	return &Event{Type: typ, Target: target, Key: key, Rune: r}
}

// StopPropagation prevents the event from reaching further ancestors
func (e *Event) StopPropagation() { e.stopped = true }

// PreventDefault suppresses the default action (search field editing)
func (e *Event) PreventDefault() { e.prevented = true }

func (e *Event) Stopped() bool          { return e.stopped }
func (e *Event) DefaultPrevented() bool { return e.prevented }

// Printable reports whether the key produces text
func (e *Event) Printable() bool {
	return e.Key == KeyRune || e.Key == KeySpace
}
