package coordinator

import (
	"fmt"
	"log"

	"pickgrip/internal/dom"
	"pickgrip/internal/eventbus"
)

// Callbacks are the lifecycle hooks of a field. Every hook receives the
// element event that caused it, which is nil for programmatic changes. A
// failing hook is logged and reported on the bus; it never interrupts the
// field.
type Callbacks struct {
	OnOpen       func(e *dom.Event, values []string) error
	OnClose      func(e *dom.Event, values []string) error
	OnChange     func(e *dom.Event, values []string) error
	OnFirstTouch func(e *dom.Event) error
}

// subscribeToEvents routes this field's lifecycle events to its callbacks
func (c *Coordinator) subscribeToEvents() {
	c.unsubscribe = append(c.unsubscribe,
		c.bus.Subscribe(eventbus.EventListOpened, func(ev eventbus.DomainEvent) {
			e := ev.(eventbus.ListOpenedEvent)
			if e.Source != c.id || c.callbacks.OnOpen == nil {
				return
			}
			c.run("onOpen", func() error { return c.callbacks.OnOpen(e.Trigger, e.Values) })
		}),

		c.bus.Subscribe(eventbus.EventListClosed, func(ev eventbus.DomainEvent) {
			e := ev.(eventbus.ListClosedEvent)
			if e.Source != c.id || c.callbacks.OnClose == nil {
				return
			}
			c.run("onClose", func() error { return c.callbacks.OnClose(e.Trigger, e.Values) })
		}),

		c.bus.Subscribe(eventbus.EventSelectionChanged, func(ev eventbus.DomainEvent) {
			e := ev.(eventbus.SelectionChangedEvent)
			if e.Source != c.id || c.callbacks.OnChange == nil {
				return
			}
			c.run("onChange", func() error { return c.callbacks.OnChange(e.Trigger, e.Values) })
		}),

		c.bus.Subscribe(eventbus.EventFirstTouch, func(ev eventbus.DomainEvent) {
			e := ev.(eventbus.FirstTouchEvent)
			if e.Source != c.id || c.callbacks.OnFirstTouch == nil {
				return
			}
			c.run("onFirstTouch", func() error { return c.callbacks.OnFirstTouch(e.Trigger) })
		}),
	)
}

// run calls a user callback, turning errors and panics into a logged
// CallbackFailedEvent
func (c *Coordinator) run(name string, fn func() error) {
	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic: %v", r)
			}
		}()
		return fn()
	}()
	if err == nil {
		return
	}

	log.Printf("coordinator: %s callback %s failed: %v", c.id, name, err)
	c.bus.Publish(eventbus.CallbackFailedEvent{Source: c.id, Callback: name, Err: err})
}

// publishChange reports a user driven selection change
func (c *Coordinator) publishChange(e *dom.Event) {
	c.bus.Publish(eventbus.SelectionChangedEvent{Source: c.id, Trigger: e, Values: c.state.Values()})
}
