package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"pickgrip/internal/dom"
	"pickgrip/internal/ui/services/tags"
	"pickgrip/internal/ui/state"
)

// indent is the column at which the control and the panel start
const indent = 4

// minSearchWidth is the narrowest search input shown after the tags
const minSearchWidth = 8

// FieldView is the view data of one field
type FieldView struct {
	Label    string
	Focused  bool // the form focus is on this field
	Disabled bool
	Open     bool
	Multiple bool
	TagMode  bool
	Search   bool

	Focus       dom.Target // element holding keyboard focus inside the field
	Text        string     // display text
	Placeholder bool       // nothing but the placeholder is selected

	Tags        []state.Tag
	TagIndent   int
	Query       string
	SearchInput string // rendered search input while it has focus

	Rows   []RowView
	Offset int // first visible row
	Height int // rows shown at once

	Message string // no results or no more options
}

// RowView is one panel line
type RowView struct {
	Header      string
	Index       int // -1 for headers
	Text        string
	Description string
	Selected    bool
	Hover       bool
	Disabled    bool
}

// FieldRenderer draws a field and records where its elements are
type FieldRenderer struct {
	styles *Styles
}

// NewFieldRenderer creates a new field renderer
func NewFieldRenderer(styles *Styles) *FieldRenderer {
	return &FieldRenderer{styles: styles}
}

// line accumulates styled segments and the zones they cover
type line struct {
	b     strings.Builder
	col   int
	zones []Zone
}

func (l *line) write(s string, style lipgloss.Style) (start, end int) {
	start = l.col
	l.b.WriteString(style.Render(s))
	l.col += ansi.StringWidth(s)
	return start, l.col
}

func (l *line) pad(n int) {
	if n > 0 {
		l.b.WriteString(strings.Repeat(" ", n))
		l.col += n
	}
}

func (l *line) zone(t dom.Target, left, right int) {
	l.zones = append(l.zones, Zone{Target: t, Left: left, Right: right})
}

// Render draws field number n at the given width. Zone lines are relative to
// the first line of the field.
func (r *FieldRenderer) Render(n int, f FieldView, width int) ([]string, Layout) {
	var lines []*line

	lines = append(lines, r.label(f))

	var control []*line
	if f.TagMode {
		control = r.tagLines(f, width)
	} else {
		control = []*line{r.control(f, width)}
	}
	lines = append(lines, control...)

	var panel []*line
	if f.Open {
		panel = r.panel(f, width)
	}
	lines = append(lines, panel...)

	var layout Layout
	out := make([]string, len(lines))
	for y, l := range lines {
		out[y] = l.b.String()
		for _, z := range l.zones {
			z.Field = n
			z.Top, z.Bottom = y, y
			layout.Add(z)
		}
	}

	last := len(lines) - 1
	layout.Add(Zone{Field: n, Target: dom.Wrapper(), Top: 0, Bottom: last, Left: 0, Right: width})
	layout.Add(Zone{Field: n, Target: dom.Root(), Top: 1, Bottom: last, Left: indent, Right: width})
	if len(panel) > 0 {
		top := 1 + len(control)
		layout.Add(Zone{Field: n, Target: dom.Panel(), Top: top, Bottom: last, Left: indent, Right: width})
	}
	return out, layout
}

func (r *FieldRenderer) label(f FieldView) *line {
	l := &line{}
	if f.Focused {
		l.write("› ", r.styles.LabelFocus)
		l.write(f.Label, r.styles.LabelFocus)
	} else {
		l.pad(2)
		l.write(f.Label, r.styles.Label)
	}
	if f.Disabled {
		l.write(" (disabled)", r.styles.Dim)
	}
	return l
}

func (r *FieldRenderer) control(f FieldView, width int) *line {
	l := &line{}
	l.pad(indent)
	room := max(width-indent-2, 1)

	if f.Open && f.Search {
		start, end := l.write(r.searchText(f, room))
		l.zone(dom.Search(), start, max(end, width))
		return l
	}

	style := r.styles.Display
	switch {
	case f.Placeholder:
		style = r.styles.Placeholder
	case f.Open:
		style = r.styles.DisplayOpen
	}
	if f.Disabled {
		style = r.styles.Dim
	}
	text := runewidth.Truncate(f.Text, room, "…")
	start, _ := l.write(text, style)
	arrow := " ▾"
	if f.Open {
		arrow = " ▴"
	}
	_, end := l.write(arrow, r.styles.Arrow)
	l.zone(dom.Display(), start, end)
	return l
}

// searchText returns what the search input shows
func (r *FieldRenderer) searchText(f FieldView, room int) (string, lipgloss.Style) {
	if f.SearchInput != "" {
		return f.SearchInput, lipgloss.NewStyle()
	}
	if f.Query != "" {
		return runewidth.Truncate(f.Query, room, "…"), r.styles.Search
	}
	return runewidth.Truncate(f.Text, room, "…"), r.styles.Placeholder
}

// tagLines lays the tags out the way the tag indent is computed: each tag
// starts a new line when it does not fit, and the search input follows the
// last tag.
func (r *FieldRenderer) tagLines(f FieldView, width int) []*line {
	room := max(width-indent, 4)
	newLine := func() *line {
		l := &line{}
		l.pad(indent)
		return l
	}
	cur := newLine()
	lines := []*line{cur}

	col := 0
	for _, tag := range f.Tags {
		label := runewidth.Truncate(tags.Label(tag.Text), room, "…")
		w := runewidth.StringWidth(label)
		if col > 0 && col+w > room {
			cur = newLine()
			lines = append(lines, cur)
			col = 0
		}
		style := r.styles.Tag
		if f.Focus == dom.Tag(tag.Index) {
			style = r.styles.TagFocus
		}
		closeLabel, text := label[:2], label[2:]
		start, mid := cur.write(closeLabel, style)
		_, end := cur.write(text, style)
		cur.zone(dom.TagClose(tag.Index), start, mid)
		cur.zone(dom.Tag(tag.Index), mid, end)
		cur.pad(tags.Gap)
		col += w + tags.Gap
	}

	if len(f.Tags) > 0 && (f.TagIndent == 0 || room-f.TagIndent < minSearchWidth) && col > 0 {
		cur = newLine()
		lines = append(lines, cur)
	}

	rest := dom.Display()
	if f.Search {
		rest = dom.TagList()
		text, style := r.searchText(f, max(room-f.TagIndent, 1))
		if len(f.Tags) > 0 && f.SearchInput == "" && f.Query == "" {
			text = ""
		}
		start, end := cur.write(text, style)
		cur.zone(dom.Search(), start, max(end, start+minSearchWidth))
	} else if len(f.Tags) == 0 {
		cur.write(runewidth.Truncate(f.Text, room, "…"), r.styles.Placeholder)
	}
	for _, l := range lines {
		l.zone(rest, indent, width)
	}
	return lines
}

func (r *FieldRenderer) panel(f FieldView, width int) []*line {
	var lines []*line
	room := max(width-indent-2, 1)

	offset := min(max(f.Offset, 0), max(len(f.Rows)-1, 0))
	height := max(f.Height, 1)
	end := min(offset+height, len(f.Rows))

	if offset > 0 {
		l := &line{}
		l.pad(indent)
		l.write(fmt.Sprintf("↑ %d more", offset), r.styles.Scroll)
		lines = append(lines, l)
	}

	for _, row := range f.Rows[offset:end] {
		l := &line{}
		l.pad(indent)
		if row.Index < 0 {
			l.write(runewidth.Truncate(row.Header, room, "…"), r.styles.Header)
			lines = append(lines, l)
			continue
		}

		marker := "  "
		if row.Hover {
			marker = "› "
		}
		if f.Multiple {
			if row.Selected {
				marker += "[x] "
			} else {
				marker += "[ ] "
			}
		} else if row.Selected {
			marker += "● "
		} else {
			marker += "  "
		}

		style := r.styles.Option
		switch {
		case row.Disabled:
			style = r.styles.Disabled
		case row.Selected:
			style = r.styles.Selected
		}
		if row.Hover {
			style = style.Inherit(r.styles.Hover)
		}

		text := runewidth.Truncate(row.Text, max(width-indent-runewidth.StringWidth(marker)-1, 1), "…")
		start, _ := l.write(marker, style)
		_, stop := l.write(text, style)
		if row.Description != "" && stop < width {
			desc := runewidth.Truncate(" "+row.Description, width-stop, "…")
			_, stop = l.write(desc, r.styles.Description)
		}
		l.zone(dom.Option(row.Index), start, max(stop, width))
		lines = append(lines, l)
	}

	if below := len(f.Rows) - end; below > 0 {
		l := &line{}
		l.pad(indent)
		l.write(fmt.Sprintf("↓ %d more", below), r.styles.Scroll)
		lines = append(lines, l)
	}

	if f.Message != "" {
		l := &line{}
		l.pad(indent)
		l.write(f.Message, r.styles.Message)
		lines = append(lines, l)
	}
	return lines
}

// TagWidth returns the width the tags of a field are laid out in for a
// terminal width, 0 while the terminal width is unknown
func TagWidth(termWidth int) int {
	if termWidth <= 0 {
		return 0
	}
	return max(termWidth-2*padLeft-indent, 4)
}
