package selection

import (
	"fmt"
	"strings"

	"pickgrip/internal/domain"
	"pickgrip/internal/registry"
	"pickgrip/internal/ui/state"
)

// Service handles selection logic. The native element is the source of
// truth; row flags and the display are derived from it.
type Service struct {
	state       *state.State
	reconcileFn ReconcileFunc
}

// NewService creates a new selection service
func NewService(st *state.State) *Service {
	return &Service{state: st}
}

// SetReconcileFunction sets the tag manager hook used in tag mode
func (s *Service) SetReconcileFunction(fn ReconcileFunc) {
	s.reconcileFn = fn
}

// GetSelected returns the selected options in ascending index order
func (s *Service) GetSelected() []domain.Option {
	return s.state.SelectedOptions()
}

// GetSelectedValues returns the values of the selected options
func (s *Service) GetSelectedValues() []string {
	return s.state.Values()
}

// DeselectAll clears every native selection and selected class
func (s *Service) DeselectAll() {
	s.state.Registry.ClearFlag(s.state.SelectedClass())
	s.state.Select.SetSelectedIndex(-1)
}

// Apply toggles option index the way a click does. Unless the click is
// additive, the field is in tag mode or the next click was forced to be
// additive, everything else is deselected first. Returns false when the
// option cannot be selected.
func (s *Service) Apply(index int, additive bool) bool {
	st := s.state
	item := st.Registry.Item(index)
	if item == nil || item.Has(registry.FlagDisabled) {
		st.ForceMultiple = false
		return false
	}

	keep := st.ForceMultiple || (st.Settings.Multiple && (st.Settings.MultipleTags || additive))
	st.ForceMultiple = false

	wasSelected := st.Select.IsSelected(index)
	if !keep {
		s.DeselectAll()
	}

	selectedClass := st.SelectedClass()
	if wasSelected && keep {
		item.Remove(selectedClass)
		st.Select.SetSelected(index, false)
	} else {
		item.Add(selectedClass)
		st.Select.SetSelected(index, true)
	}

	s.enforcePlaceholderExclusivity()
	return true
}

// enforcePlaceholderExclusivity deselects empty-value options whenever they
// are selected together with something else
func (s *Service) enforcePlaceholderExclusivity() {
	st := s.state
	selected := st.Select.SelectedIndexes()
	if len(selected) < 2 {
		return
	}
	for _, i := range selected {
		if o, ok := st.Registry.Option(i); ok && o.IsPlaceholder() {
			st.Select.SetSelected(i, false)
			st.Registry.Item(i).Remove(st.SelectedClass())
		}
	}
}

// SyncClasses re-derives selected classes from the native element. It is the
// keypress path: the navigator has already moved the native selection.
func (s *Service) SyncClasses() {
	st := s.state
	selectedClass := st.SelectedClass()
	for i, item := range st.Registry.Items {
		item.Set(selectedClass, st.Select.IsSelected(i))
	}
	if !st.Settings.Multiple {
		if idx := st.Select.SelectedIndex(); idx >= 0 {
			st.Cursor = idx
		}
	}
}

// Display recomputes what the field shows from the current selection
func (s *Service) Display() {
	st := s.state

	if st.TagMode() && s.reconcileFn != nil {
		// Reconcile may drop empty-value options, so read the selection after
		s.reconcileFn(s.GetSelected())
	}

	selected := s.GetSelected()
	if len(selected) == 0 {
		st.Display = st.DefaultDisplay()
		return
	}

	d := state.Display{
		Value: make([]string, len(selected)),
		Index: make([]int, len(selected)),
	}
	for i, o := range selected {
		d.Value[i] = o.Value
		d.Index[i] = o.Index
	}

	switch {
	case st.TagMode():
		d.Text = ""
	case len(selected) == 1:
		d.Text = selected[0].Text
	default:
		d.Text = s.multipleMessage(len(selected))
	}
	st.Display = d
}

// AddPlaceholder refills the display text after the search field cleared it.
// A single select with nothing selected falls back to its default option.
func (s *Service) AddPlaceholder() {
	st := s.state
	if !st.Settings.Multiple && st.Select.SelectedIndex() < 0 && st.Default.Index >= 0 {
		st.Select.SetSelected(st.Default.Index, true)
		s.SyncClasses()
	}
	s.Display()
}

// ClearDisplayText hides the display text while the user types a query
func (s *Service) ClearDisplayText() {
	s.state.Display.Text = ""
}

func (s *Service) multipleMessage(n int) string {
	msg := s.state.Settings.MultipleMessage
	if msg == "" {
		msg = DefaultMultipleMessage
	}
	if strings.Contains(msg, "%d") {
		return fmt.Sprintf(msg, n)
	}
	return msg
}
