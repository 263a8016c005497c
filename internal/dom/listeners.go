package dom

import "sync"

// Handler handles an event delivered to one element
type Handler func(e *Event)

type listenerKey struct {
	target Target
	typ    EventType
}

type listener struct {
	name    string
	handler Handler
}

// Listeners is the listener table of one element tree. Listeners are
// identified by name so that every Add can be paired with a Remove.
type Listeners struct {
	mu    sync.RWMutex
	table map[listenerKey][]listener
}

// NewListeners creates an empty listener table
func NewListeners() *Listeners {
	return &Listeners{
		table: make(map[listenerKey][]listener),
	}
}

// Add registers handler under name. Adding the same name twice to the same
// element and event type is a no-op.
func (l *Listeners) Add(target Target, typ EventType, name string, handler Handler) {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := listenerKey{target, typ}
	for _, existing := range l.table[key] {
		if existing.name == name {
			return
		}
	}
	l.table[key] = append(l.table[key], listener{name: name, handler: handler})
}

// Remove unregisters the named listener
func (l *Listeners) Remove(target Target, typ EventType, name string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := listenerKey{target, typ}
	list := l.table[key]
	for i, existing := range list {
		if existing.name == name {
			l.table[key] = append(list[:i:i], list[i+1:]...)
			break
		}
	}
	if len(l.table[key]) == 0 {
		delete(l.table, key)
	}
}

// Has reports whether the named listener is registered
func (l *Listeners) Has(target Target, typ EventType, name string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, existing := range l.table[listenerKey{target, typ}] {
		if existing.name == name {
			return true
		}
	}
	return false
}

// Count returns the total number of registered listeners
func (l *Listeners) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	total := 0
	for _, list := range l.table {
		total += len(list)
	}
	return total
}

// Clear drops every listener
func (l *Listeners) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.table = make(map[listenerKey][]listener)
}

// Dispatch delivers e to its target and then bubbles it up through the
// ancestors until a handler stops propagation. Focus and pointer
// enter/leave events stay on their target.
func (l *Listeners) Dispatch(e *Event) {
	path := []Target{e.Target}
	if e.Type.Bubbles() {
		path = e.Target.Path()
	}
	for _, node := range path {
		// Copy so handlers can add and remove listeners while we iterate
		l.mu.RLock()
		list := l.table[listenerKey{node, e.Type}]
		handlers := make([]listener, len(list))
		copy(handlers, list)
		l.mu.RUnlock()

		for _, h := range handlers {
			h.handler(e)
		}
		if e.stopped {
			return
		}
	}
}
