package native

import (
	"net/url"
	"sync"
)

// Option is one option of a native select element
type Option struct {
	Value    string
	Text     string
	Selected bool
	Disabled bool
}

// Select is the headless stand-in for a form's select element. It is the
// submittable artifact: whatever is selected here is what the form sends.
type Select struct {
	mu       sync.RWMutex
	Multiple bool
	options  []*Option
	snapshot []Option

	snapshotMultiple bool
}

// New creates an empty select element
func New(multiple bool) *Select {
	return &Select{Multiple: multiple}
}

// NewWithOptions creates a select element holding copies of opts
func NewWithOptions(multiple bool, opts ...Option) *Select {
	s := New(multiple)
	for i := range opts {
		o := opts[i]
		s.Append(&o)
	}
	return s
}

// Len returns the number of options
func (s *Select) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.options)
}

// Append adds an option at the end
func (s *Select) Append(o *Option) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.options = append(s.options, o)
}

// Insert adds an option at position i
func (s *Select) Insert(i int, o *Option) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 {
		i = 0
	}
	if i >= len(s.options) {
		s.options = append(s.options, o)
		return
	}
	s.options = append(s.options[:i+1], s.options[i:]...)
	s.options[i] = o
}

// Option returns the option at i, or nil when out of range
func (s *Select) Option(i int) *Option {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i < 0 || i >= len(s.options) {
		return nil
	}
	return s.options[i]
}

// Options returns the live option list
func (s *Select) Options() []*Option {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Option, len(s.options))
	copy(out, s.options)
	return out
}

// Clear removes every option
func (s *Select) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.options = nil
}

// IsSelected reports the selected flag of option i
func (s *Select) IsSelected(i int) bool {
	o := s.Option(i)
	return o != nil && o.Selected
}

// SetSelected sets the selected flag of option i. Selecting an option of a
// single select deselects all the others.
func (s *Select) SetSelected(i int, selected bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.options) {
		return
	}
	if selected && !s.Multiple {
		for _, o := range s.options {
			o.Selected = false
		}
	}
	s.options[i].Selected = selected
}

// SelectedIndex returns the first selected index or -1
func (s *Select) SelectedIndex() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i, o := range s.options {
		if o.Selected {
			return i
		}
	}
	return -1
}

// SetSelectedIndex selects exactly option i; -1 clears the selection
func (s *Select) SetSelectedIndex(i int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for j, o := range s.options {
		o.Selected = j == i
	}
}

// SelectedIndexes returns every selected index in ascending order
func (s *Select) SelectedIndexes() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []int
	for i, o := range s.options {
		if o.Selected {
			out = append(out, i)
		}
	}
	return out
}

// Values returns the values of the selected options
func (s *Select) Values() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []string
	for _, o := range s.options {
		if o.Selected {
			out = append(out, o.Value)
		}
	}
	return out
}

// IndexOfValue returns the index of the first option with value v or -1
func (s *Select) IndexOfValue(v string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i, o := range s.options {
		if o.Value == v {
			return i
		}
	}
	return -1
}

// Snapshot records the current options and the multiple attribute so
// Restore can bring them back
func (s *Select) Snapshot() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshotMultiple = s.Multiple
	s.snapshot = make([]Option, len(s.options))
	for i, o := range s.options {
		s.snapshot[i] = *o
	}
}

// HasSnapshot reports whether Snapshot was called since the last Restore
func (s *Select) HasSnapshot() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot != nil
}

// Restore puts back the options and the multiple attribute recorded by
// Snapshot
func (s *Select) Restore() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapshot == nil {
		return
	}
	s.Multiple = s.snapshotMultiple
	s.options = make([]*Option, len(s.snapshot))
	for i := range s.snapshot {
		o := s.snapshot[i]
		s.options[i] = &o
	}
	s.snapshot = nil
}

// Encode renders the selection the way a form submission would
func (s *Select) Encode(name string) string {
	values := url.Values{}
	for _, v := range s.Values() {
		values.Add(name, v)
	}
	return values.Encode()
}
