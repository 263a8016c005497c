package state

import (
	"strconv"
	"strings"

	"pickgrip/internal/dom"
	"pickgrip/internal/domain"
	"pickgrip/internal/native"
	"pickgrip/internal/registry"
)

// Settings are the per-field switches the services consult
type Settings struct {
	Search       bool
	Multiple     bool
	MultipleTags bool
	OpenOnHover  bool

	Placeholder          string
	MultipleMessage      string
	NoMoreOptionsMessage string
	NoResultsMessage     string
}

// Display is what the closed field shows plus its observable attributes
type Display struct {
	Text  string
	Value []string
	Index []int
}

// DataValue renders the value attribute: scalar for one value, comma joined
// for several
func (d Display) DataValue() string {
	return strings.Join(d.Value, ",")
}

// DataIndex renders the index attribute the same way as DataValue
func (d Display) DataIndex() string {
	parts := make([]string, len(d.Index))
	for i, idx := range d.Index {
		parts[i] = strconv.Itoa(idx)
	}
	return strings.Join(parts, ",")
}

// Tag is the removable chip of one selected option in tag mode
type Tag struct {
	Index int
	Text  string
}

// Messages tracks which panel messages are visible
type Messages struct {
	NoMoreOptions bool
	NoResults     bool
}

// State contains everything one dropdown field knows about itself
type State struct {
	ID       string
	Settings Settings

	// Option data
	Registry *registry.Registry
	Select   *native.Select
	Default  domain.Default

	Listeners *dom.Listeners

	// What the field shows
	Display  Display
	Tags     []Tag
	Messages Messages

	// Interaction state
	Open              bool
	JustOpened        bool // opened by a keydown whose keyup is still to come
	ForceMultiple     bool // next click is additive regardless of mode
	ProgrammaticClick bool // current click came from the API, not the user
	Ready             bool // construction finished, lifecycle events may fire
	Disabled          bool
	Destroyed         bool
	FirstTouched      bool

	Focus  dom.Target
	Query  string
	Cursor int // hovered row, -1 when none

	// Panel viewport
	ViewportOffset int
	ViewportHeight int
}

// New creates the state record of a field
func New(id string, settings Settings, sel *native.Select) *State {
	return &State{
		ID:             id,
		Settings:       settings,
		Select:         sel,
		Default:        domain.NoDefault(),
		Listeners:      dom.NewListeners(),
		Focus:          dom.None(),
		Cursor:         -1,
		ViewportHeight: 8, // Default, the UI sizes it
	}
}

// TagMode reports whether selections are shown as tags
func (s *State) TagMode() bool {
	return s.Settings.Multiple && s.Settings.MultipleTags
}

// SelectedClass is the set of row flags that mark a selected option
func (s *State) SelectedClass() registry.Flag {
	if s.TagMode() {
		return registry.FlagSelected | registry.FlagSelectedHidden
	}
	return registry.FlagSelected
}

// PlaceholderText is shown when nothing is selected
func (s *State) PlaceholderText() string {
	if s.Settings.Placeholder != "" {
		return s.Settings.Placeholder
	}
	return s.Default.Text
}

// DefaultDisplay is the display of a field with an empty selection
func (s *State) DefaultDisplay() Display {
	return Display{
		Text:  s.PlaceholderText(),
		Value: []string{s.Default.Value},
		Index: []int{s.Default.Index},
	}
}

// SelectedOptions returns the options whose native option is selected, in
// ascending index order
func (s *State) SelectedOptions() []domain.Option {
	var out []domain.Option
	for _, i := range s.Select.SelectedIndexes() {
		if o, ok := s.Registry.Option(i); ok {
			out = append(out, o)
		}
	}
	return out
}

// Values returns the values of the selected options
func (s *State) Values() []string {
	opts := s.SelectedOptions()
	values := make([]string, len(opts))
	for i, o := range opts {
		values[i] = o.Value
	}
	return values
}

// TagPosition returns the position of the tag for option index, or -1
func (s *State) TagPosition(index int) int {
	for i, t := range s.Tags {
		if t.Index == index {
			return i
		}
	}
	return -1
}

// SetFocus moves focus and returns the previously focused element
func (s *State) SetFocus(t dom.Target) dom.Target {
	prev := s.Focus
	s.Focus = t
	return prev
}
