package state

// FormState holds the form level UI state around the fields
type FormState struct {
	Title   string
	Focused int // index of the field holding keyboard focus

	Width  int
	Height int

	StatusMessage string
	StatusError   bool
	ShowFullHelp  bool

	Submitted bool
	Values    map[string][]string // submitted values by field name
}

// NewFormState creates the state of a form with the given title
func NewFormState(title string) *FormState {
	return &FormState{Title: title}
}

// SetStatus shows an informational status message
func (s *FormState) SetStatus(msg string) {
	s.StatusMessage = msg
	s.StatusError = false
}

// SetError shows an error status message
func (s *FormState) SetError(msg string) {
	s.StatusMessage = msg
	s.StatusError = true
}
