package coordinator

import (
	"fmt"
	"log"
	"sync/atomic"

	"pickgrip/internal/config"
	"pickgrip/internal/dom"
	"pickgrip/internal/domain"
	"pickgrip/internal/eventbus"
	"pickgrip/internal/native"
	"pickgrip/internal/registry"
	"pickgrip/internal/ui/services/navigation"
	"pickgrip/internal/ui/services/search"
	"pickgrip/internal/ui/services/selection"
	"pickgrip/internal/ui/services/tags"
	"pickgrip/internal/ui/services/toggle"
	"pickgrip/internal/ui/state"
)

var sequence atomic.Uint64

// Coordinator is one dropdown field. It owns the field state, wires the
// services together and translates element events into service calls.
type Coordinator struct {
	// Services
	Navigation *navigation.Service
	Search     *search.Service
	Selection  *selection.Service
	Tags       *tags.Service
	Toggle     *toggle.Service

	// Dependencies
	bus       eventbus.EventBus
	callbacks Callbacks

	id     string
	field  config.Field
	data   []domain.Entry
	origin bool // built from an existing select element

	state       *state.State
	trigger     *dom.Event // keydown behind a search selection
	unsubscribe []func()
}

// New creates a field from its configuration. The native element is created
// and filled from the field data.
func New(bus eventbus.EventBus, field config.Field, cb Callbacks) *Coordinator {
	c := newCoordinator(bus, field, cb)
	c.data = registry.Entries(c.field.Data)
	c.build(native.New(c.field.Multiple), false)
	return c
}

// FromSelect creates a field on top of an existing native select. Its options
// become the field data and its selection the default, unless the field
// configures its own. Destroy puts the element back the way it was.
func FromSelect(bus eventbus.EventBus, sel *native.Select, field config.Field, cb Callbacks) *Coordinator {
	c := newCoordinator(bus, field, cb)
	c.origin = true

	sel.Snapshot()
	sel.Multiple = c.field.Multiple
	c.data = registry.Scrape(sel)

	if c.field.DefaultIndex == nil && c.field.DefaultValue == "" && c.field.Placeholder == "" {
		if idx := sel.SelectedIndex(); idx >= 0 {
			c.field.DefaultIndex = &idx
		}
	}

	c.build(sel, true)
	return c
}

func newCoordinator(bus eventbus.EventBus, field config.Field, cb Callbacks) *Coordinator {
	if bus == nil {
		bus = eventbus.New()
	}
	field = field.Normalized()
	name := field.Name
	if name == "" {
		name = "field"
	}
	c := &Coordinator{
		bus:       bus,
		callbacks: cb,
		id:        fmt.Sprintf("%s-%d", name, sequence.Add(1)),
		field:     field,
	}
	c.subscribeToEvents()
	return c
}

// build creates the state and the services for the current field data
func (c *Coordinator) build(sel *native.Select, reuse bool) {
	f := c.field
	st := state.New(c.id, settingsOf(f), sel)
	if prev := c.state; prev != nil {
		st.FirstTouched = prev.FirstTouched
		st.Disabled = prev.Disabled
		st.ViewportHeight = prev.ViewportHeight
	}
	c.state = st

	options := registry.Flatten(f.Entries(c.data), f.AllowRaw)
	st.Default = config.ResolveDefault(f, options)
	st.Registry = registry.Build(options, sel, registry.BuildOptions{
		Default: st.Default,
		Reuse:   reuse,
	})

	c.Navigation = navigation.NewService(st)
	c.Search = search.NewService(st)
	c.Selection = selection.NewService(st)
	c.Tags = tags.NewService(st, c.bus)
	c.Toggle = toggle.NewService(st, c.bus)
	c.wireServices()

	c.restoreSelected(f.Selected)
	c.Selection.SyncClasses()
	c.Selection.Display()
	c.addListeners()
	if st.Disabled {
		c.removeToggleListeners()
	}

	st.Ready = true
	log.Printf("coordinator: built %s with %d options", c.id, st.Registry.Len())
}

// wireServices connects services with their dependencies
func (c *Coordinator) wireServices() {
	// Tag mode rebuilds the tags every time the display is refreshed
	c.Selection.SetReconcileFunction(c.Tags.Reconcile)

	// Enter on a search with a single match selects it
	c.Search.SetSelectFunction(func(index int, additive bool) bool {
		return c.selectOption(c.trigger, index, additive)
	})

	c.Navigation.SetToggleFunction(c.toggleList)
	c.Navigation.SetCloseFunction(c.Toggle.Close)
	c.Navigation.SetApplyFunction(func(index int, e *dom.Event) {
		c.selectOption(e, index, true)
	})
	c.Navigation.SetPlaceholderFunction(c.Selection.AddPlaceholder)

	c.Toggle.SetHandlers(toggle.Handlers{
		DocumentClick: c.catchBodyClick,
		NativeKeyDown: c.nativeKeyDown,
		NativeKeyUp:   c.nativeKeyUp,
	})
	c.Toggle.SetFocusFunction(c.focus)
	c.Toggle.SetScrollFunction(c.Navigation.ScrollTo)
	c.Toggle.SetResetSearchFunction(func() {
		c.Search.Reset()
		c.Selection.Display()
	})

	c.Tags.SetFocusFunction(c.focus)
}

// restoreSelected applies values remembered from an earlier session
func (c *Coordinator) restoreSelected(values []string) {
	if len(values) == 0 {
		return
	}
	st := c.state
	first := true
	for _, v := range values {
		idx := st.Registry.IndexOfValue(v)
		if idx < 0 || st.Registry.Item(idx).Has(registry.FlagDisabled) {
			log.Printf("coordinator: %s has no selectable option %q, skipping", c.id, v)
			continue
		}
		if first {
			st.Select.SetSelectedIndex(-1)
			first = false
		}
		st.Select.SetSelected(idx, true)
		if !st.Settings.Multiple {
			return
		}
	}
}

// teardown removes every listener of the current build
func (c *Coordinator) teardown() {
	st := c.state
	st.Listeners.Clear()
	st.Open = false
	st.JustOpened = false
	st.Ready = false
}

func settingsOf(f config.Field) state.Settings {
	return state.Settings{
		Search:               f.Search,
		Multiple:             f.Multiple,
		MultipleTags:         f.MultipleTags,
		OpenOnHover:          f.OpenOnHover,
		Placeholder:          f.Placeholder,
		MultipleMessage:      f.MultipleMessage,
		NoMoreOptionsMessage: f.NoMoreOptionsMessage,
		NoResultsMessage:     f.NoResultsMessage,
	}
}
