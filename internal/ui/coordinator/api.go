package coordinator

import (
	"log"

	"pickgrip/internal/config"
	"pickgrip/internal/dom"
	"pickgrip/internal/domain"
	"pickgrip/internal/native"
	"pickgrip/internal/registry"
	"pickgrip/internal/ui/services/toggle"
	"pickgrip/internal/ui/state"
)

// SetByIndex selects options the way clicks would, without firing onChange
// or opening the list. On a multiple select every index after the first is
// added to the selection. The result holds nil for every index that is out
// of range or disabled.
func (c *Coordinator) SetByIndex(indexes ...int) []*domain.Option {
	return c.setByIndex(indexes, false)
}

// SetByIndexAdditive is SetByIndex keeping the current selection
func (c *Coordinator) SetByIndexAdditive(indexes ...int) []*domain.Option {
	return c.setByIndex(indexes, true)
}

// SetByValue selects the options with the given values. Unknown values give
// a nil result.
func (c *Coordinator) SetByValue(values ...string) []*domain.Option {
	return c.setByIndex(c.indexesOf(values), false)
}

// SetByValueAdditive is SetByValue keeping the current selection
func (c *Coordinator) SetByValueAdditive(values ...string) []*domain.Option {
	return c.setByIndex(c.indexesOf(values), true)
}

func (c *Coordinator) indexesOf(values []string) []int {
	indexes := make([]int, len(values))
	for i, v := range values {
		indexes[i] = c.state.Registry.IndexOfValue(v)
	}
	return indexes
}

func (c *Coordinator) setByIndex(indexes []int, additive bool) []*domain.Option {
	out := make([]*domain.Option, len(indexes))
	for n, i := range indexes {
		out[n] = c.setIndex(i, additive || (n > 0 && c.state.Settings.Multiple))
	}
	return out
}

func (c *Coordinator) setIndex(index int, additive bool) *domain.Option {
	st := c.state
	if st.Destroyed {
		return nil
	}
	o, ok := st.Registry.Option(index)
	if !ok || st.Registry.Item(index).Has(registry.FlagDisabled) {
		return nil
	}

	st.ProgrammaticClick = true
	st.ForceMultiple = additive && st.Settings.Multiple
	c.Dispatch(dom.NewEvent(dom.Click, dom.Option(index)))
	st.ProgrammaticClick = false
	st.ForceMultiple = false

	return &o
}

// GetSelected returns the selected options
func (c *Coordinator) GetSelected() []domain.Option {
	return c.Selection.GetSelected()
}

// GetSelectedValues returns the values of the selected options
func (c *Coordinator) GetSelectedValues() []string {
	return c.Selection.GetSelectedValues()
}

// DeselectAll clears the selection without firing onChange
func (c *Coordinator) DeselectAll() {
	c.Selection.DeselectAll()
	c.Selection.Display()
}

// Reconfigure discards the options and every derived state and builds them
// again. A nil data keeps the current options, a nil field keeps the current
// configuration. Values still present after the rebuild stay selected unless
// the new configuration names its own defaults.
func (c *Coordinator) Reconfigure(data []any, field *config.Field) {
	if c.state.Destroyed {
		return
	}
	kept := c.GetSelectedValues()

	if field != nil {
		f := field.Normalized()
		f.Name = c.field.Name
		c.field = f
	}
	switch {
	case data != nil:
		c.field.Data = data
		c.data = registry.Entries(data)
	case field != nil && field.Data != nil:
		c.data = registry.Entries(field.Data)
	}

	if field == nil || (field.DefaultIndex == nil && field.DefaultValue == "" && len(field.Selected) == 0) {
		c.field.Selected = kept
	}

	if c.state.Open {
		c.Toggle.Close(nil, false)
	}
	focused := c.state.Focus.Kind != dom.KindNone

	c.teardown()
	sel := c.state.Select
	sel.Multiple = c.field.Multiple
	c.build(sel, false)
	if focused {
		c.focus(dom.Root())
	}
}

// Disable stops the field from opening. A disabled field closes its list.
func (c *Coordinator) Disable(disabled bool) {
	st := c.state
	if st.Destroyed || st.Disabled == disabled {
		return
	}
	if disabled {
		if st.Open {
			c.Toggle.Toggle(nil, toggle.ForceClose)
		}
		c.removeToggleListeners()
		st.Disabled = true
		return
	}
	st.Disabled = false
	c.addToggleListeners()
}

// Destroy removes every listener and hands the native element back. A field
// built from an existing select gets its original options back unless it
// was configured to keep the changes.
func (c *Coordinator) Destroy() {
	st := c.state
	if st.Destroyed {
		return
	}
	c.teardown()
	for _, unsubscribe := range c.unsubscribe {
		unsubscribe()
	}
	c.unsubscribe = nil

	if c.origin && !c.field.KeepChangesOnDestroy {
		st.Select.Restore()
	}
	st.Focus = dom.None()
	st.Destroyed = true
	log.Printf("coordinator: destroyed %s", c.id)
}

// Dispatch delivers an element event to the field
func (c *Coordinator) Dispatch(e *dom.Event) {
	if c.state.Destroyed {
		return
	}
	c.state.Listeners.Dispatch(e)
}

// Press types a key into the focused element: a keydown, the default edit of
// the search input unless a handler prevented it, then a keyup on whatever
// holds focus afterwards.
func (c *Coordinator) Press(key dom.Key, r rune) {
	st := c.state
	if st.Destroyed || st.Focus.Kind == dom.KindNone {
		return
	}

	down := dom.NewKeyEvent(dom.KeyDown, st.Focus, key, r)
	c.Dispatch(down)
	if st.Focus.Kind == dom.KindSearch && !down.DefaultPrevented() {
		c.editQuery(key, r)
	}

	if st.Focus.Kind != dom.KindNone {
		c.Dispatch(dom.NewKeyEvent(dom.KeyUp, st.Focus, key, r))
	}
}

func (c *Coordinator) editQuery(key dom.Key, r rune) {
	st := c.state
	switch key {
	case dom.KeyRune:
		st.Query += string(r)
	case dom.KeySpace:
		st.Query += " "
	case dom.KeyBackspace:
		if q := []rune(st.Query); len(q) > 0 {
			st.Query = string(q[:len(q)-1])
		}
	}
}

// Click clicks target
func (c *Coordinator) Click(target dom.Target) {
	c.Dispatch(dom.NewEvent(dom.Click, target))
}

// ClickAdditive clicks target with the multi-select modifier held
func (c *Coordinator) ClickAdditive(target dom.Target) {
	e := dom.NewEvent(dom.Click, target)
	e.MultiSelect = true
	c.Dispatch(e)
}

// Hover moves the pointer onto target
func (c *Coordinator) Hover(target dom.Target) {
	c.Dispatch(dom.NewEvent(dom.MouseEnter, target))
}

// Leave moves the pointer off target
func (c *Coordinator) Leave(target dom.Target) {
	c.Dispatch(dom.NewEvent(dom.MouseLeave, target))
}

// TakeFocus gives keyboard focus to the field
func (c *Coordinator) TakeFocus() {
	if c.state.Destroyed || c.state.Focus.Kind != dom.KindNone {
		return
	}
	c.focus(dom.Root())
}

// Blur takes keyboard focus away from the field, closing the list
func (c *Coordinator) Blur() {
	st := c.state
	if st.Destroyed {
		return
	}
	if st.Open {
		c.Selection.AddPlaceholder()
		c.Toggle.Close(nil, true)
		return
	}
	c.Selection.AddPlaceholder()
	c.focus(dom.None())
}

// TagIndent returns the column at which the search input starts after the
// tags. retry is set when the width is not known yet.
func (c *Coordinator) TagIndent(width int) (indent int, retry bool) {
	return c.Tags.Indent(width)
}

// SetViewportHeight sets the number of option rows the panel shows
func (c *Coordinator) SetViewportHeight(height int) {
	if height < 1 {
		height = 1
	}
	c.state.ViewportHeight = height
	if c.state.Cursor >= 0 {
		c.Navigation.ScrollTo(c.state.Cursor)
	}
}

// ID returns the unique id of the field
func (c *Coordinator) ID() string { return c.id }

// Name returns the configured field name
func (c *Coordinator) Name() string { return c.field.Name }

// Field returns the normalized configuration of the field
func (c *Coordinator) Field() config.Field { return c.field }

// Display returns what the closed field shows
func (c *Coordinator) Display() state.Display { return c.state.Display }

// Settings returns the switches of the field
func (c *Coordinator) Settings() state.Settings { return c.state.Settings }

// Messages returns the panel messages currently shown
func (c *Coordinator) Messages() state.Messages { return c.state.Messages }

func (c *Coordinator) IsOpen() bool      { return c.state.Open }
func (c *Coordinator) IsDisabled() bool  { return c.state.Disabled }
func (c *Coordinator) IsDestroyed() bool { return c.state.Destroyed }
func (c *Coordinator) Focus() dom.Target { return c.state.Focus }
func (c *Coordinator) Query() string     { return c.state.Query }
func (c *Coordinator) Cursor() int       { return c.state.Cursor }

// Native returns the native select element backing the field
func (c *Coordinator) Native() *native.Select { return c.state.Select }

// Default returns the option the field started with
func (c *Coordinator) Default() domain.Default { return c.state.Default }

// Options returns the flattened options
func (c *Coordinator) Options() []domain.Option {
	return append([]domain.Option(nil), c.state.Registry.Options...)
}

// Items returns a copy of the option rows
func (c *Coordinator) Items() []registry.Item {
	items := make([]registry.Item, len(c.state.Registry.Items))
	for i, it := range c.state.Registry.Items {
		items[i] = *it
	}
	return items
}

// Rows returns the panel rows, section headers included, that are visible
// right now
func (c *Coordinator) Rows() []registry.Row {
	return c.state.Registry.Rows()
}

// Viewport returns the first visible row and the number of rows shown
func (c *Coordinator) Viewport() (offset, height int) {
	return c.state.ViewportOffset, c.state.ViewportHeight
}

// SelectedTags returns the tags in option order
func (c *Coordinator) SelectedTags() []state.Tag {
	return append([]state.Tag(nil), c.state.Tags...)
}
