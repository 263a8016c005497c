package coordinator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"pickgrip/internal/config"
	"pickgrip/internal/dom"
	"pickgrip/internal/eventbus"
	"pickgrip/internal/native"
	"pickgrip/internal/registry"
)

func abc() []any {
	return []any{
		map[string]any{"text": "A", "value": "a"},
		map[string]any{"text": "B", "value": "b"},
		map[string]any{"text": "C", "value": "c"},
	}
}

type recorder struct {
	opens   int
	closes  int
	touches int
	changes [][]string
}

func (r *recorder) callbacks() Callbacks {
	return Callbacks{
		OnOpen:  func(*dom.Event, []string) error { r.opens++; return nil },
		OnClose: func(*dom.Event, []string) error { r.closes++; return nil },
		OnChange: func(_ *dom.Event, values []string) error {
			r.changes = append(r.changes, values)
			return nil
		},
		OnFirstTouch: func(*dom.Event) error { r.touches++; return nil },
	}
}

func newField(t *testing.T, f config.Field) (*Coordinator, *recorder) {
	t.Helper()
	if f.Name == "" {
		f.Name = "test"
	}
	if f.Data == nil {
		f.Data = abc()
	}
	rec := &recorder{}
	c := New(nil, f, rec.callbacks())
	t.Cleanup(c.Destroy)
	return c, rec
}

func tagTexts(c *Coordinator) []string {
	var out []string
	for _, tag := range c.SelectedTags() {
		out = append(out, tag.Text)
	}
	return out
}

func TestSingleSelectSetByIndex(t *testing.T) {
	c, rec := newField(t, config.Field{})

	assert.Equal(t, "A", c.Display().Text)
	assert.Equal(t, "0", c.Display().DataIndex())

	got := c.SetByIndex(2)
	require.Len(t, got, 1)
	require.NotNil(t, got[0])
	assert.Equal(t, "C", got[0].Text)

	assert.Equal(t, "C", c.Display().Text)
	assert.Equal(t, "2", c.Display().DataIndex())
	assert.Equal(t, []string{"c"}, c.GetSelectedValues())
	assert.Equal(t, []string{"c"}, c.Native().Values())

	// Programmatic changes neither open the list nor fire onChange
	assert.False(t, c.IsOpen())
	assert.Empty(t, rec.changes)
}

func TestTagsSetByIndexAndRemove(t *testing.T) {
	c, rec := newField(t, config.Field{Multiple: true, MultipleTags: true})

	c.SetByIndex(0, 1)
	assert.Equal(t, []string{"A", "B"}, tagTexts(c))
	assert.Equal(t, "", c.Display().Text)

	c.Click(dom.TagClose(0))

	assert.Equal(t, []string{"B"}, tagTexts(c))
	assert.Equal(t, []string{"b"}, c.GetSelectedValues())
	assert.Equal(t, "1", c.Display().DataIndex())
	assert.Equal(t, [][]string{{"b"}}, rec.changes)
}

func TestRemovingLastTagRestoresPlaceholder(t *testing.T) {
	c, _ := newField(t, config.Field{Placeholder: "Pick", Multiple: true, MultipleTags: true})

	require.Len(t, c.Options(), 4)
	assert.Equal(t, "Pick", c.Display().Text)
	assert.Empty(t, c.GetSelectedValues(), "the placeholder never becomes a tag")

	c.SetByIndex(1, 2)
	assert.Equal(t, []string{"A", "B"}, tagTexts(c))

	c.Click(dom.TagClose(1))
	c.Click(dom.TagClose(2))

	assert.Empty(t, c.SelectedTags())
	assert.Empty(t, c.GetSelectedValues())
	assert.Equal(t, "Pick", c.Display().Text)
	assert.Equal(t, "0", c.Display().DataIndex())
	assert.Equal(t, "", c.Display().DataValue())
}

func TestSettersReportMisses(t *testing.T) {
	data := append(abc(), map[string]any{"text": "D", "value": "d", "disabled": true})
	c, _ := newField(t, config.Field{Data: data})

	assert.Equal(t, []string{"a"}, c.GetSelectedValues())
	assert.Nil(t, c.SetByIndex(7)[0])
	assert.Nil(t, c.SetByIndex(-1)[0])
	assert.Nil(t, c.SetByValue("zz")[0])
	assert.Nil(t, c.SetByValue("d")[0])
	assert.Equal(t, []string{"a"}, c.GetSelectedValues())

	got := c.SetByValue("b")
	require.NotNil(t, got[0])
	assert.Equal(t, 1, got[0].Index)
}

func TestPlaceholderIsExclusive(t *testing.T) {
	c, _ := newField(t, config.Field{Placeholder: "Pick", Multiple: true})

	require.Equal(t, []string{""}, c.GetSelectedValues())

	c.SetByIndexAdditive(2)
	assert.Equal(t, []string{"b"}, c.GetSelectedValues())
	assert.Equal(t, "B", c.Display().Text)

	c.SetByIndexAdditive(3)
	assert.Equal(t, []string{"b", "c"}, c.GetSelectedValues())
	assert.Equal(t, "2 selected", c.Display().Text)
}

func TestClickingAnOptionChangesAndCloses(t *testing.T) {
	c, rec := newField(t, config.Field{})

	c.Click(dom.Display())
	require.True(t, c.IsOpen())
	assert.Equal(t, dom.Native(), c.Focus())

	c.Click(dom.Option(1))

	assert.False(t, c.IsOpen())
	assert.Equal(t, dom.Root(), c.Focus())
	assert.Equal(t, [][]string{{"b"}}, rec.changes)
	assert.Equal(t, 1, rec.opens)
	assert.Equal(t, 1, rec.closes)
	assert.Equal(t, "B", c.Display().Text)
}

func TestMultipleClicksStayOpen(t *testing.T) {
	c, rec := newField(t, config.Field{Multiple: true})

	c.Click(dom.Display())
	c.Click(dom.Option(0))
	c.ClickAdditive(dom.Option(2))

	assert.True(t, c.IsOpen())
	assert.Equal(t, []string{"a", "c"}, c.GetSelectedValues())
	assert.Len(t, rec.changes, 2)
}

func TestKeyboardOpenIsNotAChange(t *testing.T) {
	c, rec := newField(t, config.Field{})

	c.TakeFocus()
	c.Press(dom.KeyEnter, 0)
	require.True(t, c.IsOpen())
	assert.Equal(t, dom.Native(), c.Focus())
	assert.Empty(t, rec.changes)

	c.Press(dom.KeyArrowDown, 0)
	assert.Equal(t, "B", c.Display().Text)
	assert.Equal(t, [][]string{{"b"}}, rec.changes)

	c.Press(dom.KeyEnter, 0)
	assert.False(t, c.IsOpen())
	assert.Equal(t, dom.Root(), c.Focus())
	assert.Len(t, rec.changes, 1)
}

func TestArrowsSkipDisabledAndWrap(t *testing.T) {
	data := []any{"A", map[string]any{"text": "B", "disabled": true}, "C"}
	c, _ := newField(t, config.Field{Data: data})

	c.TakeFocus()
	c.Press(dom.KeyEnter, 0)
	c.Press(dom.KeyArrowDown, 0)
	assert.Equal(t, "C", c.Display().Text)

	c.Press(dom.KeyArrowDown, 0)
	assert.Equal(t, "A", c.Display().Text)

	c.Press(dom.KeyArrowUp, 0)
	assert.Equal(t, "C", c.Display().Text)
}

func TestTabClosesAndLeaves(t *testing.T) {
	c, rec := newField(t, config.Field{})

	c.Click(dom.Display())
	require.True(t, c.state.Listeners.Has(dom.Native(), dom.KeyDown, "toggle.native.keydown"))

	c.Press(dom.KeyTab, 0)

	assert.False(t, c.IsOpen())
	assert.Equal(t, dom.None(), c.Focus())
	assert.Equal(t, 1, rec.closes)
	assert.False(t, c.state.Listeners.Has(dom.Native(), dom.KeyDown, "toggle.native.keydown"))
	assert.False(t, c.state.Listeners.Has(dom.Document(), dom.TouchEnd, "toggle.document.touchend"))
}

func TestSearchFiltersAndEnterSelectsSingleMatch(t *testing.T) {
	c, rec := newField(t, config.Field{Search: true, Data: []any{"Apple", "Banana", "Cherry"}})

	c.Click(dom.Display())
	require.True(t, c.IsOpen())
	assert.Equal(t, dom.Search(), c.Focus())
	assert.Equal(t, "", c.Display().Text, "the query replaces the display text")

	c.Press(dom.KeyRune, 'a')
	assert.Equal(t, "a", c.Query())
	assert.True(t, c.Items()[2].Has(registry.FlagSearchHidden))
	assert.False(t, c.Items()[1].Has(registry.FlagSearchHidden))

	c.Press(dom.KeyRune, 'n')
	assert.True(t, c.Items()[0].Has(registry.FlagSearchHidden))

	c.Press(dom.KeyEnter, 0)

	assert.False(t, c.IsOpen())
	assert.Equal(t, "Banana", c.Display().Text)
	assert.Equal(t, [][]string{{"Banana"}}, rec.changes)
	assert.Equal(t, "", c.Query())
	for _, it := range c.Items() {
		assert.False(t, it.Has(registry.FlagSearchHidden))
	}
}

func TestSearchWithoutMatchesShowsMessage(t *testing.T) {
	c, _ := newField(t, config.Field{Search: true})

	c.Click(dom.Display())
	c.Press(dom.KeyRune, 'z')
	assert.True(t, c.Messages().NoResults)

	c.Press(dom.KeyBackspace, 0)
	assert.Equal(t, "", c.Query())
	assert.False(t, c.Messages().NoResults)

	c.Press(dom.KeyEscape, 0)
	assert.False(t, c.IsOpen())
	assert.Equal(t, "A", c.Display().Text)
}

func TestOutsideClickCloses(t *testing.T) {
	c, rec := newField(t, config.Field{})

	c.Click(dom.Display())
	c.Click(dom.Panel())
	assert.True(t, c.IsOpen(), "clicks inside the field keep it open")

	c.Click(dom.Outside())
	assert.False(t, c.IsOpen())
	assert.Equal(t, 1, rec.closes)
	assert.False(t, c.state.Listeners.Has(dom.Document(), dom.Click, "toggle.document.click"))
}

func TestFirstTouchFiresOnce(t *testing.T) {
	c, rec := newField(t, config.Field{})

	c.Click(dom.Display())
	c.Click(dom.Display())
	c.Click(dom.Display())

	assert.Equal(t, 1, rec.touches)
	assert.False(t, c.state.Listeners.Has(dom.Display(), dom.Click, listenerTouchDisplay))
	assert.False(t, c.state.Listeners.Has(dom.Native(), dom.Focus, listenerTouchNative))
}

func TestHoverMode(t *testing.T) {
	c, rec := newField(t, config.Field{OpenOnHover: true})

	c.Hover(dom.Wrapper())
	require.True(t, c.IsOpen())
	assert.Equal(t, 1, rec.touches)

	// Entering an option does not reach the wrapper
	c.Hover(dom.Option(1))
	assert.True(t, c.IsOpen())
	assert.True(t, c.Items()[1].Has(registry.FlagHover))
	assert.Equal(t, 1, c.Cursor())

	c.Leave(dom.Option(1))
	assert.False(t, c.Items()[1].Has(registry.FlagHover))

	c.Leave(dom.Wrapper())
	assert.False(t, c.IsOpen())
}

func TestSpaceTogglesCursorInMultiple(t *testing.T) {
	c, rec := newField(t, config.Field{Multiple: true})

	c.TakeFocus()
	c.Press(dom.KeyEnter, 0)
	require.True(t, c.IsOpen())

	c.Press(dom.KeyArrowDown, 0)
	assert.True(t, c.Items()[0].Has(registry.FlagHover))
	c.Press(dom.KeySpace, 0)
	c.Press(dom.KeyArrowDown, 0)
	c.Press(dom.KeySpace, 0)

	assert.True(t, c.IsOpen())
	assert.Equal(t, []string{"a", "b"}, c.GetSelectedValues())
	assert.Equal(t, "2 selected", c.Display().Text)
	assert.Len(t, rec.changes, 2)

	c.Press(dom.KeySpace, 0)
	assert.Equal(t, []string{"a"}, c.GetSelectedValues())
}

func TestNativeChangeResyncs(t *testing.T) {
	c, rec := newField(t, config.Field{})

	c.Click(dom.Display())
	c.Native().SetSelectedIndex(2)
	c.Dispatch(dom.NewEvent(dom.Change, dom.Native()))

	assert.Equal(t, "C", c.Display().Text)
	assert.True(t, c.Items()[2].Has(registry.FlagSelected))
	assert.False(t, c.Items()[0].Has(registry.FlagSelected))
	assert.Equal(t, [][]string{{"c"}}, rec.changes)
	assert.False(t, c.IsOpen())
}

func TestTagKeyboard(t *testing.T) {
	c, rec := newField(t, config.Field{Multiple: true, MultipleTags: true, Search: true})

	c.SetByIndex(0, 1, 2)
	c.Click(dom.Display())
	require.True(t, c.IsOpen())
	assert.True(t, c.Messages().NoMoreOptions)

	// Backspace in an empty search moves to the last tag
	c.Press(dom.KeyBackspace, 0)
	assert.Equal(t, dom.Tag(2), c.Focus())

	c.Press(dom.KeyBackspace, 0)
	assert.Equal(t, []string{"A", "B"}, tagTexts(c))
	assert.Equal(t, dom.Tag(1), c.Focus())
	assert.Equal(t, [][]string{{"a", "b"}}, rec.changes)

	c.Press(dom.KeyLeft, 0)
	assert.Equal(t, dom.Tag(0), c.Focus())
	c.Press(dom.KeyRight, 0)
	c.Press(dom.KeyRight, 0)
	assert.Equal(t, dom.Search(), c.Focus())
	assert.True(t, c.IsOpen())
}

func TestTagModeEnterKeepsListOpen(t *testing.T) {
	c, rec := newField(t, config.Field{Multiple: true, MultipleTags: true, Search: true})

	c.Click(dom.Display())
	c.Press(dom.KeyRune, 'b')
	c.Press(dom.KeyEnter, 0)

	assert.True(t, c.IsOpen())
	assert.Equal(t, []string{"B"}, tagTexts(c))
	assert.Equal(t, "", c.Query())
	assert.Len(t, rec.changes, 1)
	assert.True(t, c.Items()[1].Has(registry.FlagSelectedHidden))
}

func TestCallbackFailuresAreIsolated(t *testing.T) {
	bus := eventbus.New()
	var failed []string
	bus.Subscribe(eventbus.EventCallbackFailed, func(e eventbus.DomainEvent) {
		failed = append(failed, e.(eventbus.CallbackFailedEvent).Callback)
	})

	c := New(bus, config.Field{Name: "f", Data: abc()}, Callbacks{
		OnOpen:   func(*dom.Event, []string) error { return errors.New("boom") },
		OnChange: func(*dom.Event, []string) error { panic("worse") },
	})
	defer c.Destroy()

	c.Click(dom.Display())
	c.Click(dom.Option(2))

	assert.Equal(t, []string{"onOpen", "onChange"}, failed)
	assert.False(t, c.IsOpen())
	assert.Equal(t, []string{"c"}, c.GetSelectedValues())
}

func TestCallbacksOnlySeeTheirOwnField(t *testing.T) {
	bus := eventbus.New()
	recA, recB := &recorder{}, &recorder{}
	a := New(bus, config.Field{Name: "a", Data: abc()}, recA.callbacks())
	b := New(bus, config.Field{Name: "b", Data: abc()}, recB.callbacks())
	defer a.Destroy()
	defer b.Destroy()

	a.Click(dom.Display())

	assert.Equal(t, 1, recA.opens)
	assert.Equal(t, 0, recB.opens)
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestDisable(t *testing.T) {
	c, _ := newField(t, config.Field{})

	c.Click(dom.Display())
	c.Disable(true)
	assert.False(t, c.IsOpen())
	assert.True(t, c.IsDisabled())

	c.Click(dom.Display())
	c.TakeFocus()
	c.Press(dom.KeyEnter, 0)
	assert.False(t, c.IsOpen())

	c.Disable(false)
	c.Click(dom.Display())
	assert.True(t, c.IsOpen())
}

func TestFromSelectAndDestroyRestores(t *testing.T) {
	sel := native.NewWithOptions(false,
		native.Option{Value: "x", Text: "X"},
		native.Option{Value: "y", Text: "Y", Selected: true},
	)

	c := FromSelect(nil, sel, config.Field{Name: "s", Placeholder: "Pick"}, Callbacks{})
	require.Len(t, c.Options(), 3)
	assert.Equal(t, 3, sel.Len())

	c.SetByIndex(1)
	assert.Equal(t, []string{"x"}, sel.Values())

	c.Destroy()
	assert.True(t, c.IsDestroyed())
	assert.Equal(t, 2, sel.Len())
	assert.Equal(t, 1, sel.SelectedIndex())
	assert.Equal(t, 0, c.state.Listeners.Count())
	assert.Nil(t, c.SetByIndex(0)[0])
}

func TestDestroyRestoresMultipleAttribute(t *testing.T) {
	sel := native.NewWithOptions(true,
		native.Option{Value: "x", Text: "X", Selected: true},
		native.Option{Value: "y", Text: "Y", Selected: true},
	)

	c := FromSelect(nil, sel, config.Field{Name: "s"}, Callbacks{})
	assert.False(t, sel.Multiple)

	c.Destroy()
	assert.True(t, sel.Multiple)
	assert.Equal(t, []string{"x", "y"}, sel.Values())
}

func TestFromSelectUsesNativeSelection(t *testing.T) {
	sel := native.NewWithOptions(false,
		native.Option{Value: "x", Text: "X"},
		native.Option{Value: "y", Text: "Y", Selected: true},
	)

	c := FromSelect(nil, sel, config.Field{Name: "s", KeepChangesOnDestroy: true}, Callbacks{})
	assert.Equal(t, "Y", c.Display().Text)

	c.SetByIndex(0)
	c.Destroy()
	assert.Equal(t, 0, sel.SelectedIndex())
}

func TestReconfigureKeepsSurvivingValues(t *testing.T) {
	c, _ := newField(t, config.Field{})
	id := c.ID()

	c.SetByIndex(1)
	c.Reconfigure([]any{"x", map[string]any{"text": "Bee", "value": "b"}}, nil)

	assert.Equal(t, id, c.ID())
	assert.Len(t, c.Options(), 2)
	assert.Equal(t, 2, c.Native().Len())
	assert.Equal(t, []string{"b"}, c.GetSelectedValues())
	assert.Equal(t, "Bee", c.Display().Text)

	f := c.Field()
	f.Multiple = true
	f.MultipleTags = true
	f.DefaultValue = "x"
	f.Selected = nil
	c.Reconfigure(nil, &f)
	assert.Equal(t, []string{"x"}, tagTexts(c))
}

func TestReconfigureClosesOpenList(t *testing.T) {
	c, rec := newField(t, config.Field{})

	c.TakeFocus()
	c.Press(dom.KeyEnter, 0)
	require.True(t, c.IsOpen())

	c.Reconfigure([]any{"x", "y"}, nil)

	assert.False(t, c.IsOpen())
	assert.Equal(t, 1, rec.closes)
	assert.Equal(t, dom.Root(), c.Focus())
	assert.False(t, c.state.Listeners.Has(dom.Document(), dom.Click, "toggle.document.click"))

	c.Press(dom.KeyEnter, 0)
	assert.True(t, c.IsOpen(), "the rebuilt field still reacts to keys")
}

func TestRegistryMatchesNativeAndSelectionRoundTrips(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 8).Draw(t, "n")
		data := make([]any, n)
		for i := range data {
			data[i] = map[string]any{
				"text":     string(rune('A' + i)),
				"value":    string(rune('a' + i)),
				"disabled": rapid.Bool().Draw(t, "disabled"),
			}
		}
		f := config.Field{
			Name:         "prop",
			Data:         data,
			Multiple:     rapid.Bool().Draw(t, "multiple"),
			MultipleTags: rapid.Bool().Draw(t, "tags"),
		}
		c := New(nil, f, Callbacks{})
		defer c.Destroy()

		steps := rapid.IntRange(0, 20).Draw(t, "steps")
		for s := 0; s < steps; s++ {
			i := rapid.IntRange(-1, n).Draw(t, "index")
			switch rapid.IntRange(0, 3).Draw(t, "op") {
			case 0:
				c.SetByIndex(i)
			case 1:
				c.SetByIndexAdditive(i)
			case 2:
				c.Click(dom.TagClose(i))
			case 3:
				c.DeselectAll()
			}

			if len(c.Options()) != c.Native().Len() {
				t.Fatalf("%d options but %d native options", len(c.Options()), c.Native().Len())
			}
			values := c.GetSelectedValues()
			held := c.Native().Values()
			if len(values) != len(held) {
				t.Fatalf("selected %v but native holds %v", values, held)
			}
			for k := range values {
				if values[k] != held[k] {
					t.Fatalf("selected %v but native holds %v", values, held)
				}
			}
			for _, o := range c.GetSelected() {
				if o.Disabled {
					t.Fatalf("disabled option %d is selected", o.Index)
				}
			}
			if c.Settings().Multiple && c.Settings().MultipleTags && len(c.SelectedTags()) != len(values) {
				t.Fatalf("%d tags for %d selected options", len(c.SelectedTags()), len(values))
			}
		}
	})
}
