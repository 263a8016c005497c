package toggle

import "pickgrip/internal/dom"

// Force overrides the open/closed decision of Toggle
type Force int

const (
	ForceNone Force = iota
	ForceOpen
	ForceClose
)

// Listener names registered while the list is open
const (
	listenerDocumentClick = "toggle.document.click"
	listenerDocumentTouch = "toggle.document.touchend"
	listenerNativeKeyDown = "toggle.native.keydown"
	listenerNativeKeyUp   = "toggle.native.keyup"
)

// Handlers are the component handlers attached only while the list is open
type Handlers struct {
	DocumentClick dom.Handler // outside click detection
	NativeKeyDown dom.Handler
	NativeKeyUp   dom.Handler
}
