package registry

import (
	"strings"

	"pickgrip/internal/domain"
	"pickgrip/internal/native"
)

// Flag is a visual class of a rendered option row
type Flag uint8

const (
	FlagSelected Flag = 1 << iota
	FlagSelectedHidden
	FlagSearchHidden
	FlagHidden
	FlagDisabled
	FlagHover
)

// Unreachable is the set of flags that take a row out of keyboard reach
const Unreachable = FlagHidden | FlagSelectedHidden | FlagSearchHidden | FlagDisabled

var flagNames = []struct {
	flag Flag
	name string
}{
	{FlagSelected, "selected"},
	{FlagSelectedHidden, "selected-hidden"},
	{FlagSearchHidden, "search-hidden"},
	{FlagHidden, "hidden"},
	{FlagDisabled, "disabled"},
	{FlagHover, "hover"},
}

func (f Flag) String() string {
	var parts []string
	for _, fn := range flagNames {
		if f&fn.flag != 0 {
			parts = append(parts, fn.name)
		}
	}
	return strings.Join(parts, " ")
}

// Item is the rendered row of one option
type Item struct {
	Index int
	Role  string
	Flags Flag
}

func (it *Item) Has(f Flag) bool { return it.Flags&f != 0 }
func (it *Item) Add(f Flag)      { it.Flags |= f }
func (it *Item) Remove(f Flag)   { it.Flags &^= f }

func (it *Item) Set(f Flag, on bool) {
	if on {
		it.Add(f)
	} else {
		it.Remove(f)
	}
}

// Toggle flips f and returns the new state
func (it *Item) Toggle(f Flag) bool {
	it.Flags ^= f
	return it.Has(f)
}

// Reachable reports whether keyboard navigation may land on the row
func (it *Item) Reachable() bool {
	return it.Flags&Unreachable == 0
}

// Section groups the options flattened from one header
type Section struct {
	Header string
	Start  int
	End    int // exclusive
}

// Registry holds the options, their rows and the sections they came from.
// Options, Items and the native element are index aligned.
type Registry struct {
	Options  []domain.Option
	Items    []*Item
	Sections []Section
}

// BuildOptions controls how Build treats the native element
type BuildOptions struct {
	Default domain.Default

	// Reuse keeps the native options already present (scraped select)
	Reuse bool
}

// Build creates the rows for options and makes sure the native element holds
// one option per entry. The default option is marked selected on both.
func Build(options []domain.Option, sel *native.Select, opts BuildOptions) *Registry {
	r := &Registry{
		Options: options,
		Items:   make([]*Item, len(options)),
	}

	if !opts.Reuse {
		sel.Clear()
	} else if missing := len(options) - sel.Len(); missing > 0 && opts.Default.Placeholder {
		// A placeholder was prepended to the scraped options
		sel.Insert(0, &native.Option{Value: options[0].Value, Text: options[0].Text})
	}

	for i, o := range options {
		item := &Item{Index: i, Role: "option"}
		if o.Disabled {
			item.Add(FlagDisabled)
		}
		if o.HasClass(domain.ClassHidden) {
			item.Add(FlagHidden)
		}

		no := sel.Option(i)
		if no == nil || !opts.Reuse {
			no = &native.Option{Value: o.Value, Text: o.Text, Disabled: o.Disabled}
			sel.Append(no)
		}
		if no.Disabled {
			item.Add(FlagDisabled)
			r.Options[i].Disabled = true
		}

		if i == opts.Default.Index {
			sel.SetSelected(i, true)
		}
		r.Items[i] = item
	}

	for i, item := range r.Items {
		item.Set(FlagSelected, sel.IsSelected(i))
	}

	r.Sections = sections(options)
	return r
}

func sections(options []domain.Option) []Section {
	var out []Section
	for i, o := range options {
		if o.Section == "" {
			continue
		}
		if n := len(out); n > 0 && out[n-1].Header == o.Section && out[n-1].End == i {
			out[n-1].End = i + 1
			continue
		}
		out = append(out, Section{Header: o.Section, Start: i, End: i + 1})
	}
	return out
}

// Len returns the number of options
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Options)
}

// Option returns option i
func (r *Registry) Option(i int) (domain.Option, bool) {
	if r == nil || i < 0 || i >= len(r.Options) {
		return domain.Option{}, false
	}
	return r.Options[i], true
}

// Item returns the row of option i, or nil
func (r *Registry) Item(i int) *Item {
	if r == nil || i < 0 || i >= len(r.Items) {
		return nil
	}
	return r.Items[i]
}

// IndexOfValue returns the index of the first option with value v or -1
func (r *Registry) IndexOfValue(v string) int {
	if r == nil {
		return -1
	}
	for i, o := range r.Options {
		if o.Value == v {
			return i
		}
	}
	return -1
}

// SectionAt returns the header starting at index i, if any
func (r *Registry) SectionAt(i int) (string, bool) {
	if r == nil {
		return "", false
	}
	for _, s := range r.Sections {
		if s.Start == i {
			return s.Header, true
		}
	}
	return "", false
}

// ClearFlag removes f from every row
func (r *Registry) ClearFlag(f Flag) {
	if r == nil {
		return
	}
	for _, it := range r.Items {
		it.Remove(f)
	}
}

// Row is one line of the option panel: a section header or an option
type Row struct {
	Header string
	Index  int // -1 for header rows
}

// Visible reports whether the row of option i is shown in the panel
func (r *Registry) Visible(i int) bool {
	it := r.Item(i)
	return it != nil && !it.Has(FlagHidden|FlagSelectedHidden|FlagSearchHidden)
}

// Rows lists the panel lines in display order. Headers are only listed when
// at least one of their options is visible.
func (r *Registry) Rows() []Row {
	if r == nil {
		return nil
	}
	var rows []Row
	for _, s := range r.sectionsWithLoose() {
		headerDone := s.Header == ""
		for i := s.Start; i < s.End; i++ {
			if !r.Visible(i) {
				continue
			}
			if !headerDone {
				rows = append(rows, Row{Header: s.Header, Index: -1})
				headerDone = true
			}
			rows = append(rows, Row{Index: i})
		}
	}
	return rows
}

// RowOf returns the panel line of option i, or -1 when it is not shown
func (r *Registry) RowOf(i int) int {
	for n, row := range r.Rows() {
		if row.Index == i {
			return n
		}
	}
	return -1
}

// sectionsWithLoose covers every option: named sections plus unnamed runs
// for options outside any header
func (r *Registry) sectionsWithLoose() []Section {
	var out []Section
	next := 0
	for _, s := range r.Sections {
		if s.Start > next {
			out = append(out, Section{Start: next, End: s.Start})
		}
		out = append(out, s)
		next = s.End
	}
	if next < len(r.Options) {
		out = append(out, Section{Start: next, End: len(r.Options)})
	}
	return out
}
