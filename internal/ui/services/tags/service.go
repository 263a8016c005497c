package tags

import (
	"github.com/charmbracelet/lipgloss"

	"pickgrip/internal/dom"
	"pickgrip/internal/domain"
	"pickgrip/internal/eventbus"
	"pickgrip/internal/registry"
	"pickgrip/internal/ui/state"
)

// Service keeps the tag list of a tag-mode field in step with the selection
type Service struct {
	state   *state.State
	bus     eventbus.EventBus
	focusFn func(dom.Target)
}

// NewService creates a new tag manager
func NewService(st *state.State, bus eventbus.EventBus) *Service {
	if bus == nil {
		bus = eventbus.NullBus{}
	}
	return &Service{
		state: st,
		bus:   bus,
	}
}

// SetFocusFunction sets the function that moves keyboard focus
func (s *Service) SetFocusFunction(fn func(dom.Target)) {
	s.focusFn = fn
}

// Reconcile drops every tag and builds one per selected option. Options
// with an empty value never become tags and are deselected.
func (s *Service) Reconcile(selected []domain.Option) {
	st := s.state

	for _, tag := range st.Tags {
		s.unlisten(tag.Index)
	}
	st.Tags = nil

	for _, o := range selected {
		if o.IsPlaceholder() {
			st.Select.SetSelected(o.Index, false)
			if item := st.Registry.Item(o.Index); item != nil {
				item.Remove(st.SelectedClass())
			}
			continue
		}
		st.Tags = append(st.Tags, state.Tag{Index: o.Index, Text: o.Text})
		s.listen(o.Index)
	}

	if len(st.Tags) == 0 {
		st.Display.Text = st.PlaceholderText()
	}
}

// Remove deselects option index and destroys its tag
func (s *Service) Remove(index int, e *dom.Event) {
	st := s.state
	pos := st.TagPosition(index)
	if pos < 0 {
		return
	}
	if e != nil {
		e.PreventDefault()
		e.StopPropagation()
	}

	st.Select.SetSelected(index, false)
	if item := st.Registry.Item(index); item != nil {
		item.Remove(registry.FlagSelected | registry.FlagSelectedHidden)
	}

	s.unlisten(index)
	st.Tags = append(st.Tags[:pos:pos], st.Tags[pos+1:]...)

	selected := st.SelectedOptions()
	if len(selected) == 0 {
		st.Display = st.DefaultDisplay()
	} else {
		d := state.Display{}
		for _, o := range selected {
			d.Value = append(d.Value, o.Value)
			d.Index = append(d.Index, o.Index)
		}
		st.Display = d
	}

	st.Messages.NoMoreOptions = false
	st.Messages.NoResults = false

	s.bus.Publish(domain.SelectionChangedEvent{Source: st.ID, Trigger: e, Values: st.Values()})
}

// HandleKey handles a keydown on the tag of option index. Left and right
// move between tags and the search input, backspace removes the tag and a
// printable key moves to the search input.
func (s *Service) HandleKey(index int, e *dom.Event) {
	st := s.state
	pos := st.TagPosition(index)
	if pos < 0 {
		return
	}

	switch e.Key {
	case dom.KeyLeft, dom.KeyRight:
		e.PreventDefault()
		e.StopPropagation()
		next := pos + 1
		if e.Key == dom.KeyLeft {
			next = pos - 1
		}
		switch {
		case next > len(st.Tags)-1:
			s.focusSearch()
		case next >= 0:
			s.focus(dom.Tag(st.Tags[next].Index))
		}

	case dom.KeyBackspace:
		e.PreventDefault()
		e.StopPropagation()
		siblings := len(st.Tags) - 1
		s.Remove(index, e)
		if siblings > 0 {
			prev := pos - 1
			if pos == 0 {
				prev = 0
			}
			s.focus(dom.Tag(st.Tags[prev].Index))
		} else {
			s.focusSearch()
		}

	default:
		if e.Printable() {
			s.focusSearch()
		}
	}
}

// FocusLast focuses the last tag, returning false when there is none
func (s *Service) FocusLast() bool {
	if len(s.state.Tags) == 0 {
		return false
	}
	s.focus(dom.Tag(s.state.Tags[len(s.state.Tags)-1].Index))
	return true
}

// Indent returns the column at which the search input starts after the tags
// wrap into lines of width cells. retry is set when the field has not been
// laid out yet and the measurement has to be repeated later.
func (s *Service) Indent(width int) (indent int, retry bool) {
	if len(s.state.Tags) == 0 {
		return 0, false
	}
	if width <= 0 {
		return 0, true
	}

	col := 0
	for _, tag := range s.state.Tags {
		w := lipgloss.Width(Label(tag.Text))
		if w > width {
			w = width
		}
		if col > 0 && col+w > width {
			col = 0
		}
		col += w + Gap
	}
	if col >= width {
		col = 0
	}
	return col, false
}

func (s *Service) listen(index int) {
	l := s.state.Listeners
	l.Add(dom.TagClose(index), dom.Click, listenerTagClose, func(e *dom.Event) {
		s.Remove(index, e)
	})
	l.Add(dom.Tag(index), dom.KeyDown, listenerTagKeyDown, func(e *dom.Event) {
		s.HandleKey(index, e)
	})
}

func (s *Service) unlisten(index int) {
	l := s.state.Listeners
	l.Remove(dom.TagClose(index), dom.Click, listenerTagClose)
	l.Remove(dom.Tag(index), dom.KeyDown, listenerTagKeyDown)
}

func (s *Service) focusSearch() {
	if s.state.Settings.Search {
		s.focus(dom.Search())
		return
	}
	s.focus(dom.Root())
}

func (s *Service) focus(t dom.Target) {
	if s.focusFn != nil {
		s.focusFn(t)
		return
	}
	s.state.SetFocus(t)
}
