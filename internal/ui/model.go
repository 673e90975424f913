package ui

import (
	"context"
	"reflect"
	"time"

	"github.com/atomicstack/personalisation-picker/internal/navigation"
	"github.com/atomicstack/personalisation-picker/internal/theme"
	"github.com/atomicstack/personalisation-picker/internal/ui/command"
	uistate "github.com/atomicstack/personalisation-picker/internal/ui/state"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type level = uistate.Level

const (
	menuHeaderSeparator = "→"
	defaultRootTitle    = "Personalisation"
	rootLevelID         = "root"
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Options configures a Model.
type Options struct {
	Controller *navigation.Controller
	Runner     *navigation.Runner
	Width      int
	Height     int
	ShowFooter bool
	Verbose    bool
}

// Model implements the Bubble Tea model for the personalisation picker. It
// renders navigation.State snapshots and turns key presses into actions.
type Model struct {
	ctrl     *navigation.Controller
	bus      *command.Bus
	level    *level
	revision uint64
	// lastCategory is restored as the cursor position when returning to root.
	lastCategory string

	settingsCursor int

	spinner  spinner.Model
	spinning bool
	keys     keyMap
	help     help.Model

	errMsg     string
	infoMsg    string
	infoExpire time.Time

	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	verbose     bool

	filter textinput.Model

	handlers map[reflect.Type]msgHandler
}

// NewModel initialises the UI around a navigation controller.
func NewModel(ctx context.Context, opts Options) *Model {
	m := &Model{
		ctrl:       opts.Controller,
		bus:        command.New(ctx, opts.Runner),
		keys:       defaultKeyMap(),
		help:       help.New(),
		showFooter: opts.ShowFooter,
		verbose:    opts.Verbose,
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	if styles.Footer != nil {
		m.help.Styles.ShortDesc = styles.Footer.Copy()
		m.help.Styles.FullDesc = styles.Footer.Copy()
	}
	s := spinner.New()
	s.Spinner = spinner.Dot
	if styles.Loading != nil {
		s.Style = styles.Loading.Copy()
	}
	m.spinner = s
	m.filter = newFilterInput()
	m.filter.Width = filterInputWidth(m.width)
	m.syncLevel()
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface. It starts config loading.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.runEffects(m.ctrl.Start())}
	if cmd := m.startSpinner(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	cmds = append(cmds, textinput.Blink)
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	// Keys reach the filter through handleFilterKey; everything else (cursor
	// blinks, pastes) goes straight to the input.
	if _, isKey := msg.(tea.KeyMsg); !isKey {
		cmds = append(cmds, m.updateFilterInput(msg))
	}
	if handler := m.handlerFor(msg); handler != nil {
		cmds = append(cmds, handler(msg))
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(command.ActionMsg{}): m.handleActionMsg,
		reflect.TypeOf(spinner.TickMsg{}):   m.handleSpinnerTickMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

// State returns the navigation state currently rendered.
func (m *Model) State() navigation.State {
	return m.ctrl.State()
}
