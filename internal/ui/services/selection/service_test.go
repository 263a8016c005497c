package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"pickgrip/internal/domain"
	"pickgrip/internal/native"
	"pickgrip/internal/registry"
	"pickgrip/internal/ui/state"
)

func newState(settings state.Settings, def domain.Default, entries ...domain.Entry) *state.State {
	sel := native.New(settings.Multiple)
	st := state.New("test", settings, sel)
	st.Default = def
	st.Registry = registry.Build(registry.Flatten(entries, false), sel, registry.BuildOptions{Default: def})
	return st
}

func abc() []domain.Entry {
	return []domain.Entry{
		{Text: "A", Value: "a"},
		{Text: "B", Value: "b"},
		{Text: "C", Value: "c"},
	}
}

func TestSingleSelectReplaces(t *testing.T) {
	st := newState(state.Settings{}, domain.Default{Index: 0, Text: "A", Value: "a"}, abc()...)
	s := NewService(st)

	require.True(t, s.Apply(2, false))
	s.Display()

	assert.Equal(t, []string{"c"}, s.GetSelectedValues())
	assert.Equal(t, "C", st.Display.Text)
	assert.Equal(t, "c", st.Display.DataValue())
	assert.Equal(t, "2", st.Display.DataIndex())
	assert.False(t, st.Registry.Item(0).Has(registry.FlagSelected))
	assert.True(t, st.Registry.Item(2).Has(registry.FlagSelected))

	// Clicking the selected option again keeps it selected
	s.Apply(2, false)
	assert.Equal(t, []string{"c"}, s.GetSelectedValues())
}

func TestAdditiveClickTogglesInMultiple(t *testing.T) {
	st := newState(state.Settings{Multiple: true}, domain.NoDefault(), abc()...)
	s := NewService(st)

	s.Apply(0, false)
	s.Apply(2, true)
	s.Display()
	assert.Equal(t, []string{"a", "c"}, s.GetSelectedValues())
	assert.Equal(t, "2 selected", st.Display.Text)
	assert.Equal(t, "a,c", st.Display.DataValue())
	assert.Equal(t, "0,2", st.Display.DataIndex())

	s.Apply(0, true)
	assert.Equal(t, []string{"c"}, s.GetSelectedValues())

	// A plain click replaces the selection
	s.Apply(1, false)
	assert.Equal(t, []string{"b"}, s.GetSelectedValues())
}

func TestForceMultipleIsConsumed(t *testing.T) {
	st := newState(state.Settings{Multiple: true}, domain.NoDefault(), abc()...)
	s := NewService(st)

	s.Apply(0, false)
	st.ForceMultiple = true
	s.Apply(1, false)
	assert.Equal(t, []string{"a", "b"}, s.GetSelectedValues())
	assert.False(t, st.ForceMultiple)

	s.Apply(2, false)
	assert.Equal(t, []string{"c"}, s.GetSelectedValues())
}

func TestDisabledOptionCannotBeApplied(t *testing.T) {
	entries := abc()
	entries[1].Disabled = true
	st := newState(state.Settings{}, domain.NoDefault(), entries...)
	s := NewService(st)

	assert.False(t, s.Apply(1, false))
	assert.False(t, s.Apply(9, false))
	assert.Empty(t, s.GetSelected())
}

func TestPlaceholderIsExclusive(t *testing.T) {
	entries := append([]domain.Entry{{Text: "pick", Value: "", ExtraClass: domain.ClassHidden}}, abc()...)
	def := domain.Default{Index: 0, Text: "pick", Placeholder: true}
	st := newState(state.Settings{Multiple: true, Placeholder: "pick"}, def, entries...)
	s := NewService(st)
	require.Equal(t, []int{0}, st.Select.SelectedIndexes())

	s.Apply(1, true)

	assert.Equal(t, []string{"a"}, s.GetSelectedValues())
	assert.False(t, st.Registry.Item(0).Has(registry.FlagSelected))
}

func TestEmptySelectionShowsDefault(t *testing.T) {
	def := domain.Default{Index: -1, Text: ""}
	st := newState(state.Settings{Multiple: true, Placeholder: "Choose"}, def, abc()...)
	s := NewService(st)

	s.Display()

	assert.Equal(t, "Choose", st.Display.Text)
	assert.Equal(t, "-1", st.Display.DataIndex())
	assert.Equal(t, "", st.Display.DataValue())
}

func TestTagModeDelegatesToReconcile(t *testing.T) {
	st := newState(state.Settings{Multiple: true, MultipleTags: true}, domain.NoDefault(), abc()...)
	s := NewService(st)
	var reconciled []domain.Option
	s.SetReconcileFunction(func(selected []domain.Option) { reconciled = selected })

	s.Apply(0, false)
	s.Apply(1, false)
	s.Display()

	assert.Len(t, reconciled, 2)
	assert.Equal(t, "", st.Display.Text)
	assert.True(t, st.Registry.Item(0).Has(registry.FlagSelected|registry.FlagSelectedHidden))
}

func TestSyncClassesFollowsNative(t *testing.T) {
	st := newState(state.Settings{}, domain.Default{Index: 0, Text: "A", Value: "a"}, abc()...)
	s := NewService(st)

	st.Select.SetSelectedIndex(2)
	s.SyncClasses()

	assert.True(t, st.Registry.Item(2).Has(registry.FlagSelected))
	assert.False(t, st.Registry.Item(0).Has(registry.FlagSelected))
	assert.Equal(t, 2, st.Cursor)
}

func TestAddPlaceholderRestoresDefault(t *testing.T) {
	st := newState(state.Settings{}, domain.Default{Index: 0, Text: "A", Value: "a"}, abc()...)
	s := NewService(st)

	s.DeselectAll()
	s.ClearDisplayText()
	s.AddPlaceholder()

	assert.Equal(t, []string{"a"}, s.GetSelectedValues())
	assert.Equal(t, "A", st.Display.Text)
}

func TestCustomMultipleMessage(t *testing.T) {
	st := newState(state.Settings{Multiple: true, MultipleMessage: "(many)"}, domain.NoDefault(), abc()...)
	s := NewService(st)

	s.Apply(0, true)
	s.Apply(1, true)
	s.Display()

	assert.Equal(t, "(many)", st.Display.Text)
}

func TestGetSelectedRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 12).Draw(t, "n")
		entries := make([]domain.Entry, n)
		for i := range entries {
			v := string(rune('a' + i))
			entries[i] = domain.Entry{Text: v, Value: v}
		}
		st := newState(state.Settings{Multiple: true}, domain.NoDefault(), entries...)
		s := NewService(st)

		picks := rapid.SliceOfNDistinct(rapid.IntRange(0, n-1), 0, n, rapid.ID[int]).Draw(t, "picks")
		for _, p := range picks {
			s.Apply(p, true)
		}

		// Re-applying the values as a fresh selection gives the same values
		values := s.GetSelectedValues()
		s.DeselectAll()
		for _, v := range values {
			s.Apply(st.Registry.IndexOfValue(v), true)
		}
		again := s.GetSelectedValues()
		if len(again) != len(values) {
			t.Fatalf("got %v, want %v", again, values)
		}
		for i := range values {
			if values[i] != again[i] {
				t.Fatalf("got %v, want %v", again, values)
			}
		}
	})
}
