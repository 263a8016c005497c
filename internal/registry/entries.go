package registry

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"pickgrip/internal/domain"
	"pickgrip/internal/native"
)

// Coerce turns one element of configured option data into an Entry.
// Primitives become {Text: v, Value: v}; maps are read field by field;
// anything else is logged and becomes an empty entry.
func Coerce(raw any) domain.Entry {
	switch v := raw.(type) {
	case domain.Entry:
		return v
	case *domain.Entry:
		if v == nil {
			return domain.Entry{}
		}
		return *v
	case string:
		return domain.Entry{Text: v, Value: v}
	case bool, int, int64, float64:
		s := primitiveString(v)
		return domain.Entry{Text: s, Value: s}
	case map[string]any:
		return entryFromMap(v)
	case nil:
		return domain.Entry{}
	default:
		log.Printf("registry: unsupported option data %T, using empty option", raw)
		return domain.Entry{}
	}
}

// Entries coerces every element of raw
func Entries(raw []any) []domain.Entry {
	entries := make([]domain.Entry, 0, len(raw))
	for _, r := range raw {
		entries = append(entries, Coerce(r))
	}
	return entries
}

func entryFromMap(m map[string]any) domain.Entry {
	e := domain.Entry{
		Text:        stringField(m, "text"),
		Value:       stringField(m, "value"),
		Description: stringField(m, "description"),
		ExtraClass:  stringField(m, "extra_class"),
		Header:      stringField(m, "header"),
	}
	if e.ExtraClass == "" {
		e.ExtraClass = stringField(m, "extraClass")
	}
	if d, ok := m["disabled"].(bool); ok {
		e.Disabled = d
	}
	if _, hasValue := m["value"]; !hasValue && e.Header == "" {
		e.Value = e.Text
	}
	if _, hasText := m["text"]; !hasText && e.Header == "" {
		e.Text = e.Value
	}

	if data, ok := m["data"]; ok {
		switch list := data.(type) {
		case []any:
			e.Data = Entries(list)
		case []map[string]any:
			for _, item := range list {
				e.Data = append(e.Data, entryFromMap(item))
			}
		default:
			log.Printf("registry: section %q has non-list data %T, ignoring", e.Header, data)
		}
	}
	return e
}

func stringField(m map[string]any, key string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return ""
	}
	return primitiveString(v)
}

func primitiveString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

// Flatten expands headers and assigns sequential indices
func Flatten(entries []domain.Entry, allowRaw bool) []domain.Option {
	var options []domain.Option
	add := func(e domain.Entry, section string) {
		options = append(options, domain.Option{
			Index:       len(options),
			Value:       e.Value,
			Text:        label(e.Text, allowRaw),
			Disabled:    e.Disabled,
			Description: label(e.Description, allowRaw),
			ExtraClass:  e.ExtraClass,
			Section:     section,
		})
	}

	for _, e := range entries {
		if e.IsHeader() {
			for _, child := range e.Data {
				if child.IsHeader() {
					log.Printf("registry: nested section %q flattened as option", child.Header)
					child = domain.Entry{Text: child.Header, Value: child.Header}
				}
				add(child, e.Header)
			}
			continue
		}
		add(e, "")
	}
	return options
}

// Scrape reads the options of an existing select element as entries
func Scrape(sel *native.Select) []domain.Entry {
	opts := sel.Options()
	entries := make([]domain.Entry, 0, len(opts))
	for _, o := range opts {
		entries = append(entries, domain.Entry{
			Text:     o.Text,
			Value:    o.Value,
			Disabled: o.Disabled,
		})
	}
	return entries
}

// label makes option text safe to render. Raw labels keep their styling
// escape sequences; everything else is reduced to plain single-line text.
func label(text string, allowRaw bool) string {
	if allowRaw {
		return text
	}
	text = ansi.Strip(text)
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\t':
			return ' '
		case r < 0x20 || r == 0x7f:
			return -1
		}
		return r
	}, text)
}
