package domain

import "strings"

// ClassHidden marks an option that exists but is never shown in the list
const ClassHidden = "hidden"

// Entry is one element of the configured option data
type Entry struct {
	Text        string
	Value       string
	Disabled    bool
	Description string
	ExtraClass  string

	// Header entries are section labels; their Data is flattened in place
	Header string
	Data   []Entry
}

// IsHeader reports whether the entry is a section label
func (e Entry) IsHeader() bool {
	return e.Header != ""
}

// Option is a single selectable choice
type Option struct {
	Index       int    // flattened position
	Value       string // "" is the placeholder sentinel
	Text        string
	Disabled    bool
	Description string
	ExtraClass  string
	Section     string // header the option was flattened from
}

// IsPlaceholder reports whether the option carries the empty value
func (o Option) IsPlaceholder() bool {
	return o.Value == ""
}

// HasClass reports whether class appears in the option's extra classes
func (o Option) HasClass(class string) bool {
	for _, c := range strings.Fields(o.ExtraClass) {
		if c == class {
			return true
		}
	}
	return false
}

// Default describes what the field shows when nothing is selected
type Default struct {
	Index       int // -1 when there is no default option
	Text        string
	Value       string
	Placeholder bool
}

// NoDefault is the default of a field with nothing to fall back to
func NoDefault() Default {
	return Default{Index: -1}
}
