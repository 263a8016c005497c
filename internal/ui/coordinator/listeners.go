package coordinator

import (
	"pickgrip/internal/dom"
	"pickgrip/internal/eventbus"
	"pickgrip/internal/registry"
	"pickgrip/internal/ui/services/toggle"
)

// Listener names
const (
	listenerNativeChange = "field.native.change"
	listenerRootKeyDown  = "field.root.keydown"
	listenerDisplayClick = "field.display.click"
	listenerWrapperEnter = "field.wrapper.mouseenter"
	listenerWrapperLeave = "field.wrapper.mouseleave"
	listenerOptionClick  = "field.option.click"
	listenerOptionEnter  = "field.option.mouseenter"
	listenerOptionLeave  = "field.option.mouseleave"
	listenerTagListClick = "field.taglist.click"
	listenerSearchClick  = "field.search.click"
	listenerSearchFocus  = "field.search.focus"
	listenerSearchKeyUp  = "field.search.keyup"
	listenerTouchDisplay = "field.firsttouch.display"
	listenerTouchNative  = "field.firsttouch.native"
	listenerTouchWrapper = "field.firsttouch.wrapper"
)

func (c *Coordinator) addListeners() {
	st := c.state
	st.Listeners.Add(dom.Native(), dom.Change, listenerNativeChange, c.divertTarget)
	c.addToggleListeners()
	c.addFirstTouchListeners()
	c.addOptionListeners()
	if st.Settings.Search {
		c.addSearchListeners()
	}
}

// addToggleListeners attaches the listeners that open the list. Disabling a
// field removes exactly these.
func (c *Coordinator) addToggleListeners() {
	l := c.state.Listeners
	l.Add(dom.Root(), dom.KeyDown, listenerRootKeyDown, c.checkKeypress)
	if c.state.Settings.OpenOnHover {
		l.Add(dom.Wrapper(), dom.MouseEnter, listenerWrapperEnter, c.hoverOpen)
		l.Add(dom.Wrapper(), dom.MouseLeave, listenerWrapperLeave, c.toggleList)
		return
	}
	l.Add(dom.Display(), dom.Click, listenerDisplayClick, c.toggleList)
}

func (c *Coordinator) removeToggleListeners() {
	l := c.state.Listeners
	l.Remove(dom.Root(), dom.KeyDown, listenerRootKeyDown)
	l.Remove(dom.Wrapper(), dom.MouseEnter, listenerWrapperEnter)
	l.Remove(dom.Wrapper(), dom.MouseLeave, listenerWrapperLeave)
	l.Remove(dom.Display(), dom.Click, listenerDisplayClick)
}

func (c *Coordinator) addFirstTouchListeners() {
	if c.state.FirstTouched {
		return
	}
	l := c.state.Listeners
	l.Add(dom.Display(), dom.Click, listenerTouchDisplay, c.firstTouch)
	l.Add(dom.Native(), dom.Focus, listenerTouchNative, c.firstTouch)
	if c.state.Settings.OpenOnHover {
		l.Add(dom.Wrapper(), dom.MouseEnter, listenerTouchWrapper, c.firstTouch)
	}
}

func (c *Coordinator) removeFirstTouchListeners() {
	l := c.state.Listeners
	l.Remove(dom.Display(), dom.Click, listenerTouchDisplay)
	l.Remove(dom.Native(), dom.Focus, listenerTouchNative)
	l.Remove(dom.Wrapper(), dom.MouseEnter, listenerTouchWrapper)
}

func (c *Coordinator) addOptionListeners() {
	l := c.state.Listeners
	for i := range c.state.Registry.Items {
		l.Add(dom.Option(i), dom.MouseEnter, listenerOptionEnter, c.addHover)
		l.Add(dom.Option(i), dom.MouseLeave, listenerOptionLeave, c.removeHover)
		l.Add(dom.Option(i), dom.Click, listenerOptionClick, c.clickSet)
	}
}

func (c *Coordinator) addSearchListeners() {
	l := c.state.Listeners
	l.Add(dom.TagList(), dom.Click, listenerTagListClick, c.toggleListSearchClick)
	l.Add(dom.Search(), dom.Click, listenerSearchClick, c.toggleListSearchClick)
	l.Add(dom.Search(), dom.Focus, listenerSearchFocus, c.searchFocus)
	l.Add(dom.Search(), dom.KeyUp, listenerSearchKeyUp, c.fuzzySearch)
}

// toggleList flips the list open or closed
func (c *Coordinator) toggleList(e *dom.Event) {
	c.Toggle.Toggle(e, toggle.ForceNone)
}

func (c *Coordinator) hoverOpen(e *dom.Event) {
	c.Toggle.Toggle(e, toggle.ForceOpen)
}

func (c *Coordinator) toggleListSearchClick(e *dom.Event) {
	if !c.state.Open {
		c.Toggle.Toggle(e, toggle.ForceOpen)
	}
}

// searchFocus opens the list and clears the display text so the query can
// take its place
func (c *Coordinator) searchFocus(e *dom.Event) {
	c.toggleListSearchClick(e)
	c.Selection.ClearDisplayText()
}

// checkKeypress handles keydowns anywhere inside the field
func (c *Coordinator) checkKeypress(e *dom.Event) {
	st := c.state
	onSearch := st.Focus.Kind == dom.KindSearch

	switch {
	case e.Key == dom.KeyTab:
		c.Selection.AddPlaceholder()
		if st.Open {
			c.Toggle.Close(e, true)
		} else {
			c.focus(dom.None())
		}

	case e.Key == dom.KeyEnter || (e.Key == dom.KeySpace && !onSearch):
		if e.Key == dom.KeyEnter && st.Settings.Search && st.Open {
			c.checkEnterOnSearch(e)
			return
		}
		e.PreventDefault()
		c.toggleList(e)

	case e.Key == dom.KeyBackspace && onSearch && st.Query == "" && st.TagMode():
		if c.Tags.FocusLast() {
			e.PreventDefault()
		}

	case e.Printable() && onSearch:
		c.Selection.ClearDisplayText()
	}
}

// checkEnterOnSearch selects the only unselected match of the query
func (c *Coordinator) checkEnterOnSearch(e *dom.Event) {
	e.PreventDefault()
	c.trigger = e
	defer func() { c.trigger = nil }()
	c.Search.CheckEnter()
}

// fuzzySearch handles keyups in the search input. Navigation keys act on the
// list, everything else refilters it.
func (c *Coordinator) fuzzySearch(e *dom.Event) {
	st := c.state
	e.PreventDefault()

	if e.Key.IsModifier() {
		return
	}
	// keyup of the key that opened the list
	if c.Toggle.ConsumeJustOpened() {
		return
	}
	if !e.Key.IsNavigation() {
		c.Search.Apply(st.Query)
		return
	}

	switch e.Key {
	case dom.KeyEnter:
		if st.TagMode() {
			// Stay open for the next tag
			c.Search.Reset()
			return
		}
		c.Navigation.HandleKey(e)
	case dom.KeyEscape:
		c.Navigation.HandleKey(e)
	default:
		c.Navigation.HandleKey(e)
		if !st.Settings.Multiple {
			c.setSelectValue(e)
		}
	}
}

func (c *Coordinator) nativeKeyDown(e *dom.Event) {
	c.Navigation.HandleKey(e)
}

func (c *Coordinator) nativeKeyUp(e *dom.Event) {
	moved := e.Key.Delta() != 0 && !c.state.Settings.Multiple
	if moved || c.state.JustOpened {
		c.setSelectValue(e)
	}
}

// divertTarget handles a change of the native element itself
func (c *Coordinator) divertTarget(e *dom.Event) {
	st := c.state
	if st.TagMode() {
		e.PreventDefault()
		e.StopPropagation()
	}
	c.setSelectValue(e)
	if !st.Settings.Multiple {
		c.Toggle.Toggle(e, toggle.ForceClose)
	}
}

// clickSet handles a click on an option row
func (c *Coordinator) clickSet(e *dom.Event) {
	st := c.state
	e.PreventDefault()
	e.StopPropagation()

	applied := c.selectOption(e, e.Target.Index, e.MultiSelect)

	if applied && !st.ProgrammaticClick && !st.Settings.Multiple {
		c.Toggle.Toggle(e, toggle.ForceClose)
	}
	st.ProgrammaticClick = false
}

// selectOption toggles option index the way a click does and reports the
// change unless it came from the API
func (c *Coordinator) selectOption(e *dom.Event, index int, additive bool) bool {
	if !c.Selection.Apply(index, additive) {
		return false
	}
	c.Selection.Display()
	if !c.state.ProgrammaticClick {
		c.publishChange(e)
	}
	return true
}

// setSelectValue refreshes the field after the native selection moved. The
// keyup of the key that opened the list is not a change.
func (c *Coordinator) setSelectValue(e *dom.Event) {
	st := c.state
	c.Selection.SyncClasses()
	c.Selection.Display()

	if st.ProgrammaticClick {
		return
	}
	notify := e.Type == dom.Change || e.Type == dom.Blur ||
		(e.Key != dom.KeyNone && !e.Key.IsModifier())
	if !notify || c.Toggle.ConsumeJustOpened() {
		return
	}
	c.publishChange(e)
}

// catchBodyClick closes the list when a click lands outside the field
func (c *Coordinator) catchBodyClick(e *dom.Event) {
	if e.Target.Within(dom.Wrapper()) {
		return
	}
	c.toggleList(e)
	c.Selection.AddPlaceholder()
}

func (c *Coordinator) addHover(e *dom.Event) {
	st := c.state
	item := st.Registry.Item(e.Target.Index)
	if item == nil || !item.Reachable() {
		return
	}
	if old := st.Registry.Item(st.Cursor); old != nil {
		old.Remove(registry.FlagHover)
	}
	item.Add(registry.FlagHover)
	st.Cursor = e.Target.Index
}

func (c *Coordinator) removeHover(e *dom.Event) {
	if item := c.state.Registry.Item(e.Target.Index); item != nil {
		item.Remove(registry.FlagHover)
	}
}

// firstTouch reports the first interaction once and then stops listening
func (c *Coordinator) firstTouch(e *dom.Event) {
	st := c.state
	c.removeFirstTouchListeners()
	if st.FirstTouched {
		return
	}
	st.FirstTouched = true
	c.bus.Publish(eventbus.FirstTouchEvent{Source: c.id, Trigger: e})
}

// focus moves keyboard focus, firing blur on the old element and focus on
// the new one
func (c *Coordinator) focus(t dom.Target) {
	st := c.state
	prev := st.SetFocus(t)
	if prev == t {
		return
	}
	if prev.Kind != dom.KindNone {
		st.Listeners.Dispatch(dom.NewEvent(dom.Blur, prev))
	}
	if t.Kind != dom.KindNone {
		st.Listeners.Dispatch(dom.NewEvent(dom.Focus, t))
	}
}
