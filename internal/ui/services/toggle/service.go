package toggle

import (
	"pickgrip/internal/dom"
	"pickgrip/internal/domain"
	"pickgrip/internal/eventbus"
	"pickgrip/internal/registry"
	"pickgrip/internal/ui/state"
)

// Service owns the open/closed state of the option list
type Service struct {
	state    *state.State
	bus      eventbus.EventBus
	handlers Handlers

	focusFn  func(dom.Target)
	resetFn  func()
	scrollFn func(index int)
}

// NewService creates a new open/close controller
func NewService(st *state.State, bus eventbus.EventBus) *Service {
	if bus == nil {
		bus = eventbus.NullBus{}
	}
	return &Service{
		state: st,
		bus:   bus,
	}
}

// SetHandlers sets the handlers attached while the list is open
func (s *Service) SetHandlers(h Handlers) {
	s.handlers = h
}

// SetFocusFunction sets the function that moves keyboard focus
func (s *Service) SetFocusFunction(fn func(dom.Target)) {
	s.focusFn = fn
}

// SetResetSearchFunction sets the function that clears the search query
func (s *Service) SetResetSearchFunction(fn func()) {
	s.resetFn = fn
}

// SetScrollFunction sets the function that scrolls an option into view
func (s *Service) SetScrollFunction(fn func(index int)) {
	s.scrollFn = fn
}

// IsOpen reports whether the list is open
func (s *Service) IsOpen() bool {
	return s.state.Open
}

// Toggle opens or closes the list. A mouseleave or a forced close always
// closes; otherwise the list flips. Opening from a keydown marks the list as
// just opened so the matching keyup does not count as a change.
func (s *Service) Toggle(e *dom.Event, force Force) {
	if s.state.Disabled || s.state.Destroyed {
		return
	}

	leaving := e != nil && e.Type == dom.MouseLeave
	if leaving || force == ForceClose || (force != ForceOpen && s.state.Open) {
		s.state.JustOpened = false
		if s.state.Open {
			s.Close(e, false)
		}
		return
	}

	if s.state.Open {
		return
	}
	if e != nil && e.Type == dom.KeyDown {
		s.state.JustOpened = true
	}
	s.Open(e)
}

// Open reveals the option list
func (s *Service) Open(e *dom.Event) {
	st := s.state

	s.attach()
	st.Open = true

	if !st.Settings.Multiple {
		if idx := st.Select.SelectedIndex(); idx >= 0 {
			st.Cursor = idx
			s.scroll(idx)
		}
	}

	if st.Settings.Search {
		s.focus(dom.Search())
	} else {
		s.focus(dom.Native())
	}

	st.Messages.NoMoreOptions = false
	if st.TagMode() {
		optionCount := st.Registry.Len()
		if st.Default.Placeholder {
			optionCount--
		}
		if optionCount > 0 && len(st.Tags) >= optionCount {
			st.Messages.NoResults = false
			st.Messages.NoMoreOptions = true
		}
	}

	if st.Ready {
		s.bus.Publish(domain.ListOpenedEvent{Source: st.ID, Trigger: e, Values: st.Values()})
	}
}

// Close hides the option list. Focus returns to the field unless exit is
// set, which means focus is leaving the field altogether.
func (s *Service) Close(e *dom.Event, exit bool) {
	st := s.state

	s.detach()
	st.Open = false
	st.Messages.NoMoreOptions = false

	if st.Settings.Search && s.resetFn != nil {
		s.resetFn()
	}
	if item := st.Registry.Item(st.Cursor); item != nil {
		item.Remove(registry.FlagHover)
	}

	if exit {
		st.SetFocus(dom.None())
	} else {
		s.focus(dom.Root())
	}

	if st.Ready {
		s.bus.Publish(domain.ListClosedEvent{Source: st.ID, Trigger: e, Values: st.Values()})
	}
}

// ConsumeJustOpened clears the just-opened flag and returns its old value
func (s *Service) ConsumeJustOpened() bool {
	was := s.state.JustOpened
	s.state.JustOpened = false
	return was
}

func (s *Service) attach() {
	l := s.state.Listeners
	if s.handlers.NativeKeyDown != nil {
		l.Add(dom.Native(), dom.KeyDown, listenerNativeKeyDown, s.handlers.NativeKeyDown)
	}
	if s.handlers.NativeKeyUp != nil {
		l.Add(dom.Native(), dom.KeyUp, listenerNativeKeyUp, s.handlers.NativeKeyUp)
	}
	if s.handlers.DocumentClick != nil {
		l.Add(dom.Document(), dom.Click, listenerDocumentClick, s.handlers.DocumentClick)
		l.Add(dom.Document(), dom.TouchEnd, listenerDocumentTouch, s.handlers.DocumentClick)
	}
}

func (s *Service) detach() {
	l := s.state.Listeners
	l.Remove(dom.Native(), dom.KeyDown, listenerNativeKeyDown)
	l.Remove(dom.Native(), dom.KeyUp, listenerNativeKeyUp)
	l.Remove(dom.Document(), dom.Click, listenerDocumentClick)
	l.Remove(dom.Document(), dom.TouchEnd, listenerDocumentTouch)
}

func (s *Service) focus(t dom.Target) {
	if s.focusFn != nil {
		s.focusFn(t)
		return
	}
	s.state.SetFocus(t)
}

func (s *Service) scroll(index int) {
	if s.scrollFn != nil {
		s.scrollFn(index)
	}
}
