package input

import (
	"pickgrip/internal/dom"
	"pickgrip/internal/ui/coordinator"
)

// FormContext implements the Context interface over the form fields
type FormContext struct {
	Fields  []*coordinator.Coordinator
	Current int
}

func (c *FormContext) FieldCount() int {
	return len(c.Fields)
}

func (c *FormContext) CurrentField() int {
	return c.Current
}

func (c *FormContext) field() *coordinator.Coordinator {
	if c.Current < 0 || c.Current >= len(c.Fields) {
		return nil
	}
	return c.Fields[c.Current]
}

// Typing reports whether the focused field's search input has focus
func (c *FormContext) Typing() bool {
	f := c.field()
	return f != nil && f.Focus().Kind == dom.KindSearch
}

// IsOpen reports whether the focused field shows its list
func (c *FormContext) IsOpen() bool {
	f := c.field()
	return f != nil && f.IsOpen()
}
