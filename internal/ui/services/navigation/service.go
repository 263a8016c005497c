package navigation

import (
	"pickgrip/internal/dom"
	"pickgrip/internal/registry"
	"pickgrip/internal/ui/state"
)

// Service handles keyboard navigation within the option list
type Service struct {
	state         *state.State
	toggleFn      ToggleFunc
	closeFn       CloseFunc
	applyFn       ApplyFunc
	placeholderFn func()
}

// NewService creates a new navigation service
func NewService(st *state.State) *Service {
	return &Service{state: st}
}

// SetToggleFunction sets the function that opens or closes the list
func (s *Service) SetToggleFunction(fn ToggleFunc) {
	s.toggleFn = fn
}

// SetCloseFunction sets the function that closes the list
func (s *Service) SetCloseFunction(fn CloseFunc) {
	s.closeFn = fn
}

// SetApplyFunction sets the function that toggles the option under the cursor
func (s *Service) SetApplyFunction(fn ApplyFunc) {
	s.applyFn = fn
}

// SetPlaceholderFunction sets the function that refills the display on tab
func (s *Service) SetPlaceholderFunction(fn func()) {
	s.placeholderFn = fn
}

// Navigable reports whether keyboard navigation may land on option i
func (s *Service) Navigable(i int) bool {
	item := s.state.Registry.Item(i)
	return item != nil && item.Reachable()
}

// Advance returns the next navigable index from current in the direction
// of delta, wrapping at both ends. If nothing is navigable it returns
// current unchanged.
func (s *Service) Advance(current, delta int) int {
	n := s.state.Registry.Len()
	if n == 0 || delta == 0 {
		return current
	}

	candidate := current
	for step := 0; step < n; step++ {
		candidate += delta
		if candidate > n-1 {
			candidate = 0
		} else if candidate < 0 {
			candidate = n - 1
		}
		if s.Navigable(candidate) {
			return candidate
		}
	}
	return current
}

// HandleKey interprets a keydown while the list has keyboard focus. It
// returns false for keys it does not handle.
func (s *Service) HandleKey(e *dom.Event) bool {
	st := s.state

	switch e.Key {
	case dom.KeyTab:
		if s.placeholderFn != nil {
			s.placeholderFn()
		}
		if s.closeFn != nil {
			s.closeFn(e, true)
		}
		return true

	case dom.KeyEnter, dom.KeyEscape:
		e.PreventDefault()
		s.toggle(e)
		return true

	case dom.KeySpace:
		e.PreventDefault()
		if st.Settings.Multiple && st.Open && s.Navigable(st.Cursor) && s.applyFn != nil {
			s.applyFn(st.Cursor, e)
			return true
		}
		s.toggle(e)
		return true

	case dom.KeyArrowUp, dom.KeyArrowDown:
		e.PreventDefault()
		if st.Settings.Multiple {
			s.moveCursor(e.Key.Delta())
		} else {
			s.moveSelection(e.Key.Delta())
		}
		return true
	}
	return false
}

// moveSelection moves the native selection of a single select
func (s *Service) moveSelection(delta int) {
	st := s.state
	current := st.Select.SelectedIndex()
	next := s.Advance(current, delta)
	if next < 0 || !s.Navigable(next) {
		return
	}
	st.Select.SetSelectedIndex(next)
	s.setCursor(next)
}

// moveCursor moves the hover cursor of a multiple select
func (s *Service) moveCursor(delta int) {
	next := s.Advance(s.state.Cursor, delta)
	if next < 0 || !s.Navigable(next) {
		return
	}
	s.setCursor(next)
}

func (s *Service) setCursor(index int) {
	st := s.state
	if old := st.Registry.Item(st.Cursor); old != nil {
		old.Remove(registry.FlagHover)
	}
	st.Cursor = index
	if st.Settings.Multiple {
		if item := st.Registry.Item(index); item != nil {
			item.Add(registry.FlagHover)
		}
	}
	s.ScrollTo(index)
}

// ScrollTo keeps option index inside the panel viewport
func (s *Service) ScrollTo(index int) {
	st := s.state
	row := st.Registry.RowOf(index)
	if row < 0 {
		return
	}
	// Show the section header above the first option of a section
	if row > 0 {
		if rows := st.Registry.Rows(); rows[row-1].Index < 0 && row-1 < st.ViewportOffset {
			row--
		}
	}

	height := st.ViewportHeight
	if height < 1 {
		height = 1
	}
	if row < st.ViewportOffset {
		st.ViewportOffset = row
	} else if row >= st.ViewportOffset+height {
		st.ViewportOffset = row - height + 1
	}
}

func (s *Service) toggle(e *dom.Event) {
	if s.toggleFn != nil {
		s.toggleFn(e)
	}
}
