package viewmodels

import (
	"github.com/charmbracelet/bubbles/help"

	"pickgrip/internal/registry"
	"pickgrip/internal/ui/coordinator"
	"pickgrip/internal/ui/state"
	"pickgrip/internal/ui/views"
)

// ViewModel transforms application state into view-ready data
type ViewModel struct {
	state       *state.FormState
	help        help.Model
	keys        help.KeyMap
	inputMode   string
	searchInput string
}

// NewViewModel creates a new view model
func NewViewModel(formState *state.FormState, keys help.KeyMap) *ViewModel {
	return &ViewModel{
		state: formState,
		help:  help.New(),
		keys:  keys,
	}
}

// SetHelp sets the help model
func (vm *ViewModel) SetHelp(helpModel help.Model) {
	vm.help = helpModel
}

// SetInput sets the input mode name and the rendered search input of the
// focused field
func (vm *ViewModel) SetInput(mode, searchInput string) {
	vm.inputMode = mode
	vm.searchInput = searchInput
}

// BuildViewState creates a ViewState for rendering. retry is set when a tag
// indent could not be measured because the terminal width is unknown.
func (vm *ViewModel) BuildViewState(fields []*coordinator.Coordinator) (views.ViewState, bool) {
	vs := views.ViewState{
		Width:         vm.state.Width,
		Height:        vm.state.Height,
		Title:         vm.state.Title,
		Focused:       vm.state.Focused,
		StatusMessage: vm.state.StatusMessage,
		StatusError:   vm.state.StatusError,
		InputMode:     vm.inputMode,
		HelpModel:     vm.help,
		HelpKeys:      vm.keys,
		ShowFullHelp:  vm.state.ShowFullHelp,
	}

	retry := false
	for i, c := range fields {
		focused := i == vm.state.Focused
		searchInput := ""
		if focused {
			searchInput = vm.searchInput
		}
		fv, again := BuildFieldView(c, focused, views.TagWidth(vm.state.Width), searchInput)
		retry = retry || again
		vs.Fields = append(vs.Fields, fv)
	}
	return vs, retry
}

// BuildFieldView turns one field into view data
func BuildFieldView(c *coordinator.Coordinator, focused bool, tagWidth int, searchInput string) (views.FieldView, bool) {
	settings := c.Settings()
	display := c.Display()
	field := c.Field()

	label := field.Label
	if label == "" {
		label = field.Name
	}

	fv := views.FieldView{
		Label:       label,
		Focused:     focused,
		Disabled:    c.IsDisabled(),
		Open:        c.IsOpen(),
		Multiple:    settings.Multiple,
		TagMode:     settings.Multiple && settings.MultipleTags,
		Search:      settings.Search,
		Focus:       c.Focus(),
		Text:        display.Text,
		Placeholder: placeholderShown(display.Value),
		Tags:        c.SelectedTags(),
		Query:       c.Query(),
		SearchInput: searchInput,
	}

	retry := false
	if fv.TagMode {
		fv.TagIndent, retry = c.TagIndent(tagWidth)
	}

	if fv.Open {
		options := c.Options()
		items := c.Items()
		for _, row := range c.Rows() {
			if row.Index < 0 {
				fv.Rows = append(fv.Rows, views.RowView{Header: row.Header, Index: -1})
				continue
			}
			o, it := options[row.Index], items[row.Index]
			fv.Rows = append(fv.Rows, views.RowView{
				Index:       row.Index,
				Text:        o.Text,
				Description: o.Description,
				Selected:    it.Has(registry.FlagSelected),
				Hover:       it.Has(registry.FlagHover),
				Disabled:    it.Has(registry.FlagDisabled),
			})
		}
		fv.Offset, fv.Height = c.Viewport()

		switch msgs := c.Messages(); {
		case msgs.NoResults:
			fv.Message = settings.NoResultsMessage
		case msgs.NoMoreOptions:
			fv.Message = settings.NoMoreOptionsMessage
		}
	}

	return fv, retry
}

// placeholderShown reports whether nothing but empty values is selected
func placeholderShown(values []string) bool {
	for _, v := range values {
		if v != "" {
			return false
		}
	}
	return true
}
