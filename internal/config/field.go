package config

import (
	"log"

	"pickgrip/internal/domain"
)

// Default panel messages
const (
	DefaultMultipleMessage      = "%d selected"
	DefaultNoMoreOptionsMessage = "No more options to add."
	DefaultNoResultsMessage     = "No matches found"
)

// Field configures one dropdown
type Field struct {
	Name  string `toml:"name"`
	Label string `toml:"label,omitempty"`

	Search       bool `toml:"search"`
	Multiple     bool `toml:"multiple"`
	MultipleTags bool `toml:"multiple_tags"`
	OpenOnHover  bool `toml:"open_on_hover"`
	Disabled     bool `toml:"disabled"`

	Placeholder          string `toml:"placeholder,omitempty"`
	MultipleMessage      string `toml:"multiple_message,omitempty"`
	NoMoreOptionsMessage string `toml:"no_more_options_message,omitempty"`
	NoResultsMessage     string `toml:"no_results_message,omitempty"`

	DefaultIndex *int   `toml:"default_index,omitempty"`
	DefaultValue string `toml:"default_value,omitempty"`

	AllowRaw             bool `toml:"allow_raw"`
	KeepChangesOnDestroy bool `toml:"keep_changes_on_destroy"`

	// Data is the option list: strings, numbers, {text, value, ...} tables
	// or {header, data} sections
	Data []any `toml:"data"`

	// Selected holds the values remembered from the last submit
	Selected []string `toml:"selected,omitempty"`
}

// Normalized returns a copy with the messages filled in and contradictory
// settings resolved
func (f Field) Normalized() Field {
	if f.MultipleTags && !f.Multiple {
		log.Printf("config: field %q sets multiple_tags without multiple, enabling multiple", f.Name)
		f.Multiple = true
	}
	if f.MultipleMessage == "" {
		f.MultipleMessage = DefaultMultipleMessage
	}
	if f.NoMoreOptionsMessage == "" {
		f.NoMoreOptionsMessage = DefaultNoMoreOptionsMessage
	}
	if f.NoResultsMessage == "" {
		f.NoResultsMessage = DefaultNoResultsMessage
	}
	return f
}

// Entries returns the option data as entries, with the placeholder option
// prepended when one is configured
func (f Field) Entries(data []domain.Entry) []domain.Entry {
	if f.Placeholder == "" {
		return data
	}
	placeholder := domain.Entry{
		Text:       f.Placeholder,
		Value:      "",
		ExtraClass: domain.ClassHidden,
	}
	return append([]domain.Entry{placeholder}, data...)
}

// ResolveDefault picks the option a field starts with. A placeholder wins,
// then an explicit default index, then an explicit default value. A single
// select without any of these falls back to its first option, the way a
// native select does; a multiple select starts empty.
func ResolveDefault(f Field, options []domain.Option) domain.Default {
	if len(options) == 0 {
		return domain.NoDefault()
	}

	if f.Placeholder != "" && options[0].IsPlaceholder() {
		return domain.Default{Index: 0, Text: f.Placeholder, Value: "", Placeholder: true}
	}

	if f.DefaultIndex != nil {
		i := *f.DefaultIndex
		if i >= 0 && i < len(options) && !options[i].Disabled {
			return fromOption(options[i])
		}
		log.Printf("config: field %q default_index %d is not selectable, ignoring", f.Name, i)
	}

	if f.DefaultValue != "" {
		for _, o := range options {
			if o.Value == f.DefaultValue && !o.Disabled {
				return fromOption(o)
			}
		}
		log.Printf("config: field %q default_value %q not found, ignoring", f.Name, f.DefaultValue)
	}

	if f.Multiple {
		return domain.NoDefault()
	}
	for _, o := range options {
		if !o.Disabled {
			return fromOption(o)
		}
	}
	return domain.NoDefault()
}

func fromOption(o domain.Option) domain.Default {
	return domain.Default{Index: o.Index, Text: o.Text, Value: o.Value}
}
