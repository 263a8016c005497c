package ui

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"pickgrip/internal/config"
	"pickgrip/internal/dom"
	"pickgrip/internal/eventbus"
	"pickgrip/internal/ui/coordinator"
	"pickgrip/internal/ui/handlers"
	"pickgrip/internal/ui/input"
	inputtypes "pickgrip/internal/ui/input/types"
	"pickgrip/internal/ui/state"
	"pickgrip/internal/ui/viewmodels"
	"pickgrip/internal/ui/views"
)

// indentRetryDelay is how long the UI waits before measuring the tags again
// while the terminal width is unknown
const indentRetryDelay = 1500 * time.Millisecond

// statusTimeout is how long a status message stays on screen
const statusTimeout = 4 * time.Second

// Model represents the UI state
type Model struct {
	bus    eventbus.EventBus
	config *config.Config
	state  *state.FormState // form level state
	fields []*coordinator.Coordinator

	help help.Model
	keys keyMap

	renderer     *views.Renderer        // view renderer
	eventHandler *handlers.EventHandler // event processing handler
	viewModel    *viewmodels.ViewModel  // view model for rendering
	inputHandler *input.Handler         // input handling
	helpOps      *HelpOps               // help pager

	layout  views.Layout // where the last frame drew each element
	hovered hoverRef     // element under the mouse pointer

	indentRetryPending bool
	pending            []eventbus.DomainEvent // bus events not yet shown
	unsubscribe        []func()

	copyFn func(string) error

	// Program reference for terminal management
	program *tea.Program
}

// hoverRef names the element under the pointer
type hoverRef struct {
	ok     bool
	field  int
	target dom.Target
}

// NewModel creates a new UI model with one field per configured field
func NewModel(bus eventbus.EventBus, cfg *config.Config) *Model {
	if bus == nil {
		bus = eventbus.New()
	}
	formState := state.NewFormState(cfg.Title)

	m := &Model{
		bus:          bus,
		config:       cfg,
		state:        formState,
		help:         help.New(),
		keys:         newKeyMap(),
		renderer:     views.NewRenderer(),
		inputHandler: input.New(),
		copyFn:       clipboard.WriteAll,
	}

	m.eventHandler = handlers.NewEventHandler(formState, m.fieldName)
	m.viewModel = viewmodels.NewViewModel(formState, m.keys)
	m.viewModel.SetHelp(m.help)

	for _, f := range cfg.Fields {
		c := coordinator.New(bus, f, m.callbacksFor(f.Name))
		c.SetViewportHeight(cfg.UISettings.PanelHeight)
		if f.Disabled {
			c.Disable(true)
		}
		m.fields = append(m.fields, c)
	}
	if len(m.fields) > 0 {
		m.fields[0].TakeFocus()
	}

	m.subscribeToEvents()
	return m
}

// subscribeToEvents queues the bus events the status line reports
func (m *Model) subscribeToEvents() {
	queue := func(e eventbus.DomainEvent) {
		m.pending = append(m.pending, e)
	}
	for _, t := range []eventbus.EventType{
		eventbus.EventSelectionChanged,
		eventbus.EventCallbackFailed,
		eventbus.EventConfigSaved,
		eventbus.EventFormSubmitted,
	} {
		m.unsubscribe = append(m.unsubscribe, m.bus.Subscribe(t, queue))
	}
}

// callbacksFor logs the lifecycle of a field
func (m *Model) callbacksFor(name string) coordinator.Callbacks {
	return coordinator.Callbacks{
		OnOpen: func(e *dom.Event, values []string) error {
			log.Printf("field %s opened", name)
			return nil
		},
		OnClose: func(e *dom.Event, values []string) error {
			log.Printf("field %s closed with %v", name, values)
			return nil
		},
		OnChange: func(e *dom.Event, values []string) error {
			log.Printf("field %s changed to %v", name, values)
			return nil
		},
		OnFirstTouch: func(e *dom.Event) error {
			log.Printf("field %s touched", name)
			return nil
		},
	}
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.helpOps = NewHelpOps(p)
}

// Fields returns the form fields
func (m *Model) Fields() []*coordinator.Coordinator {
	return m.fields
}

// Result returns the submitted values by field name. ok is false when the
// form was left without submitting.
func (m *Model) Result() (values map[string][]string, ok bool) {
	return m.state.Values, m.state.Submitted
}

// Close destroys every field and stops listening to the bus
func (m *Model) Close() {
	for _, unsubscribe := range m.unsubscribe {
		unsubscribe()
	}
	m.unsubscribe = nil
	for _, f := range m.fields {
		f.Destroy()
	}
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	m.syncInput()
	return tea.Batch(m.inputHandler.Init(), m.scheduleIndentRetry())
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		m.help.Width = msg.Width
		m.viewModel.SetHelp(m.help)

	case tea.KeyMsg:
		if m.state.ShowFullHelp {
			m.state.ShowFullHelp = false
			return m, nil
		}

		actions := m.inputHandler.HandleKey(msg, m.context())
		for _, action := range actions {
			if cmd := m.processAction(action); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		m.syncInput()

	case tea.MouseMsg:
		m.handleMouse(msg)
		m.syncInput()

	default:
		if cmd := m.inputHandler.Update(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
		if cmd := m.handleNonKeyboardMsg(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	cmds = append(cmds, m.drainEvents()...)
	cmds = append(cmds, m.scheduleIndentRetry())
	return m, tea.Batch(cmds...)
}

// View renders the UI
func (m *Model) View() string {
	m.viewModel.SetInput(m.inputHandler.ModeName(), m.searchInputView())
	vs, _ := m.viewModel.BuildViewState(m.fields)
	out, layout := m.renderer.Render(vs)
	m.layout = layout
	return out
}

func (m *Model) searchInputView() string {
	if m.inputHandler.CurrentMode() != inputtypes.ModeSearch {
		return ""
	}
	return m.inputHandler.TextInput().View()
}

func (m *Model) context() *input.FormContext {
	return &input.FormContext{Fields: m.fields, Current: m.state.Focused}
}

// focused returns the field holding the form focus
func (m *Model) focused() *coordinator.Coordinator {
	if m.state.Focused < 0 || m.state.Focused >= len(m.fields) {
		return nil
	}
	return m.fields[m.state.Focused]
}

// syncInput keeps the input mode and the search input in step with the
// focused field
func (m *Model) syncInput() {
	m.inputHandler.Sync(m.context())
	if f := m.focused(); f != nil {
		m.inputHandler.SetQuery(f.Query())
	}
}

func (m *Model) fieldName(id string) string {
	for _, f := range m.fields {
		if f.ID() == id {
			return f.Name()
		}
	}
	return ""
}

// processAction executes one input action
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.PressAction:
		if f := m.focused(); f != nil {
			f.Press(a.Key, a.Rune)
		}

	case inputtypes.FocusFieldAction:
		m.focusField(m.state.Focused + a.Delta)

	case inputtypes.SubmitAction:
		m.submit()

	case inputtypes.CopyAction:
		return m.copyValues()

	case inputtypes.ClearAction:
		if f := m.focused(); f != nil && !f.IsDisabled() {
			f.DeselectAll()
			m.state.SetStatus(fmt.Sprintf("%s cleared", f.Name()))
			return clearStatusAfter(m.state.StatusMessage)
		}

	case inputtypes.ShowHelpAction:
		return m.fetchHelpPager(NewHelpRenderer().RenderHelpContentPlain())

	case inputtypes.ToggleHelpAction:
		m.state.ShowFullHelp = !m.state.ShowFullHelp

	case inputtypes.QuitAction:
		return func() tea.Msg { return quitMsg{} }
	}
	return nil
}

// focusField moves the form focus to field i, wrapping around
func (m *Model) focusField(i int) {
	n := len(m.fields)
	if n == 0 {
		return
	}
	if old := m.focused(); old != nil && old.Focus().Kind != dom.KindNone {
		old.Blur()
	}
	m.state.Focused = ((i % n) + n) % n
	m.fields[m.state.Focused].TakeFocus()
}

// submit publishes the values of every field. Remembered selections are
// written into the configuration for the caller to save.
func (m *Model) submit() {
	values := make(map[string][]string, len(m.fields))
	for _, f := range m.fields {
		if f.IsDisabled() {
			continue
		}
		values[f.Name()] = f.GetSelectedValues()
	}

	if m.config.UISettings.RememberSelection {
		for i := range m.config.Fields {
			if v, ok := values[m.config.Fields[i].Name]; ok {
				m.config.Fields[i].Selected = v
			}
		}
	}

	log.Printf("form submitted with %d fields", len(values))
	m.bus.Publish(eventbus.FormSubmittedEvent{Values: values})
}

// copyValues copies the focused field's values to the clipboard
func (m *Model) copyValues() tea.Cmd {
	f := m.focused()
	if f == nil {
		return nil
	}
	text := strings.Join(f.GetSelectedValues(), ",")
	copyFn := m.copyFn
	return func() tea.Msg {
		return clipboardMsg{text: text, err: copyFn(text)}
	}
}

// fetchHelpPager shows the help in the pager, falling back to the popup
func (m *Model) fetchHelpPager(helpContent string) tea.Cmd {
	if m.helpOps == nil {
		m.state.ShowFullHelp = true
		return nil
	}
	ops := m.helpOps
	return func() tea.Msg {
		return helpPagerMsg{err: ops.ShowHelpInPager(helpContent)}
	}
}

// handleMouse turns terminal mouse events into element clicks and pointer
// moves
func (m *Model) handleMouse(msg tea.MouseMsg) {
	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.handleClick(msg)
	case msg.Action == tea.MouseActionMotion:
		m.handleMotion(msg)
	}
}

func (m *Model) handleClick(msg tea.MouseMsg) {
	z, ok := m.layout.At(msg.X, msg.Y)
	if ok && z.Field >= len(m.fields) {
		ok = false
	}

	// A click anywhere else closes the open lists
	for i, f := range m.fields {
		if ok && i == z.Field {
			continue
		}
		if f.IsOpen() {
			f.Click(dom.Outside())
		}
	}
	if !ok {
		return
	}

	if z.Field != m.state.Focused {
		m.focusField(z.Field)
	}
	f := m.fields[z.Field]
	f.TakeFocus()
	if msg.Ctrl || msg.Alt {
		f.ClickAdditive(z.Target)
		return
	}
	f.Click(z.Target)
}

func (m *Model) handleMotion(msg tea.MouseMsg) {
	var next hoverRef
	if z, ok := m.layout.At(msg.X, msg.Y); ok && z.Field < len(m.fields) {
		next = hoverRef{ok: true, field: z.Field, target: z.Target}
	}
	prev := m.hovered
	if prev == next {
		return
	}
	m.hovered = next

	sameField := prev.ok && next.ok && prev.field == next.field
	if prev.ok && prev.field < len(m.fields) {
		f := m.fields[prev.field]
		if prev.target != dom.Wrapper() {
			f.Leave(prev.target)
		}
		if !sameField {
			f.Leave(dom.Wrapper())
		}
	}
	if next.ok {
		f := m.fields[next.field]
		if !sameField {
			f.Hover(dom.Wrapper())
		}
		if next.target != dom.Wrapper() {
			f.Hover(next.target)
		}
	}
}

// drainEvents hands the queued bus events to the event handler
func (m *Model) drainEvents() []tea.Cmd {
	var cmds []tea.Cmd
	for len(m.pending) > 0 {
		e := m.pending[0]
		m.pending = m.pending[1:]
		if cmd := m.eventHandler.HandleEvent(e); cmd != nil {
			cmds = append(cmds, cmd)
		}
		if e.Type() == eventbus.EventSelectionChanged || e.Type() == eventbus.EventConfigSaved {
			cmds = append(cmds, clearStatusAfter(m.state.StatusMessage))
		}
	}
	return cmds
}

// scheduleIndentRetry measures the tag indent again later while the terminal
// width is not known yet
func (m *Model) scheduleIndentRetry() tea.Cmd {
	if m.indentRetryPending {
		return nil
	}
	width := views.TagWidth(m.state.Width)
	for _, f := range m.fields {
		if _, retry := f.TagIndent(width); retry {
			m.indentRetryPending = true
			return tea.Tick(indentRetryDelay, func(time.Time) tea.Msg {
				return indentRetryMsg{}
			})
		}
	}
	return nil
}

func (m *Model) handleNonKeyboardMsg(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case EventMsg:
		return m.eventHandler.HandleEvent(msg.Event)

	case indentRetryMsg:
		m.indentRetryPending = false

	case clipboardMsg:
		if msg.err != nil {
			log.Printf("clipboard: %v", msg.err)
			m.state.SetError(fmt.Sprintf("Could not copy: %v", msg.err))
		} else {
			m.state.SetStatus(fmt.Sprintf("Copied %q", msg.text))
		}
		return clearStatusAfter(m.state.StatusMessage)

	case helpPagerMsg:
		if msg.err != nil {
			log.Printf("Help pager failed: %v", msg.err)
			m.state.ShowFullHelp = true
		}

	case clearStatusMsg:
		if msg.message == m.state.StatusMessage {
			m.state.StatusMessage = ""
			m.state.StatusError = false
		}

	case quitMsg:
		return tea.Quit
	}
	return nil
}

// clearStatusMsg clears the status message if it still shows message
type clearStatusMsg struct {
	message string
}

func clearStatusAfter(message string) tea.Cmd {
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg { return clearStatusMsg{message: message} })
}
