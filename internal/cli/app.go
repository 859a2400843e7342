package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/inovacc/nutrilog/internal/core"
	"github.com/inovacc/nutrilog/internal/model"
)

// Screen identifies one view of the app.
type Screen int

const (
	ScreenDashboard Screen = iota
	ScreenAddFood
	ScreenBarcode
	ScreenDatabase
	ScreenHistory
	ScreenSettings

	screenCount
)

var screenNames = [screenCount]string{"Dashboard", "Add food", "Barcode", "Foods", "History", "Settings"}

func (s Screen) String() string {
	if s < 0 || s >= screenCount {
		return fmt.Sprintf("Screen(%d)", int(s))
	}

	return screenNames[s]
}

// Tab returns the tab highlighted while s is shown.
func (s Screen) Tab() Screen {
	switch s {
	case ScreenAddFood, ScreenBarcode:
		return ScreenDashboard
	default:
		return s
	}
}

func (s Screen) next() Screen { return (s + 1) % screenCount }
func (s Screen) prev() Screen { return (s + screenCount - 1) % screenCount }

// tabs are the entries of the tab bar
var tabs = []Screen{ScreenDashboard, ScreenDatabase, ScreenHistory, ScreenSettings}

// env is what every screen needs to reach the service.
type env struct {
	svc *core.Service
	ctx context.Context
	now func() time.Time
}

// screen is implemented by each view hosted by AppModel.
type screen interface {
	// enter is called each time the screen becomes active
	enter() tea.Cmd
	update(msg tea.Msg) tea.Cmd
	view() string
	setSize(width, height int)

	// capturing is true while keystrokes are text input
	capturing() bool
}

// routed messages are delivered to their screen even when it is not active.
type routed interface {
	target() Screen
}

type syncRequestMsg struct{}

type syncedMsg struct{ err error }

type statusMsg struct {
	text string
	err  error
}

type switchMsg struct {
	screen Screen
	food   *model.FoodItem
}

func report(text string, err error) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text, err: err} }
}

func switchTo(s Screen) tea.Cmd {
	return func() tea.Msg { return switchMsg{screen: s} }
}

func requestSync() tea.Msg { return syncRequestMsg{} }

// AppOptions configures NewApp.
type AppOptions struct {
	Context context.Context

	// Now defaults to time.Now
	Now func() time.Time

	// Screen is shown first
	Screen Screen

	// HistoryDays is how many days the history screen covers (default 14)
	HistoryDays int
}

// AppModel is the interactive nutrilog application.
type AppModel struct {
	env     *env
	current Screen
	screens [screenCount]screen

	width  int
	height int

	spinner  spinner.Model
	syncing  bool
	status   string
	err      error
	quitting bool
}

// NewApp builds the application on top of svc.
func NewApp(svc *core.Service, opts AppOptions) *AppModel {
	e := &env{svc: svc, ctx: opts.Context, now: opts.Now}
	if e.ctx == nil {
		e.ctx = context.Background()
	}

	if e.now == nil {
		e.now = time.Now
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	m := &AppModel{env: e, current: opts.Screen, spinner: s}
	m.screens = [screenCount]screen{
		ScreenDashboard: newDashboard(e),
		ScreenAddFood:   newAddFood(e),
		ScreenBarcode:   newBarcode(e),
		ScreenDatabase:  newDatabase(e),
		ScreenHistory:   newHistory(e, opts.HistoryDays),
		ScreenSettings:  newSettings(e),
	}

	return m
}

// Current returns the active screen.
func (m *AppModel) Current() Screen {
	return m.current
}

func (m *AppModel) Init() tea.Cmd {
	m.syncing = true
	return tea.Batch(m.spinner.Tick, m.sync, m.screens[m.current].enter())
}

func (m *AppModel) sync() tea.Msg {
	_, err := m.env.svc.Sync(m.env.ctx, m.env.now())
	return syncedMsg{err: err}
}

func (m *AppModel) switchScreen(s Screen) tea.Cmd {
	if s < 0 || s >= screenCount {
		return nil
	}

	m.current = s
	m.err = nil

	return m.screens[s].enter()
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		for _, s := range m.screens {
			s.setSize(msg.Width, msg.Height-6)
		}

		return m, nil

	case tea.KeyMsg:
		capturing := m.screens[m.current].capturing()

		switch key := msg.String(); key {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "q":
			if !capturing {
				m.quitting = true
				return m, tea.Quit
			}

		case "tab":
			return m, m.switchScreen(m.current.next())

		case "shift+tab":
			return m, m.switchScreen(m.current.prev())

		case "1", "2", "3", "4", "5", "6":
			if !capturing {
				return m, m.switchScreen(Screen(key[0] - '1'))
			}
		}

	case switchMsg:
		cmd := m.switchScreen(msg.screen)
		if msg.food != nil && msg.screen == ScreenAddFood {
			if add, ok := m.screens[ScreenAddFood].(*addFoodModel); ok {
				add.choose(*msg.food)
			}
		}

		return m, cmd

	case syncRequestMsg:
		if m.syncing {
			return m, nil
		}

		m.syncing = true
		m.status = ""

		return m, tea.Batch(m.spinner.Tick, m.sync)

	case syncedMsg:
		m.syncing = false
		m.err = msg.err

		if msg.err == nil {
			snap := m.env.svc.Snapshot()
			m.status = fmt.Sprintf("Synced %d foods and %d meals", len(snap.Foods), len(snap.Meals))
		}

		return m, m.screens[m.current].enter()

	case statusMsg:
		m.status, m.err = msg.text, msg.err
		return m, nil

	case spinner.TickMsg:
		if !m.syncing {
			return m, nil
		}

		var cmd tea.Cmd

		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	}

	if r, ok := msg.(routed); ok {
		return m, m.screens[r.target()].update(msg)
	}

	return m, m.screens[m.current].update(msg)
}

func (m *AppModel) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render(headerStyle.Render("nutrilog")) + "  " + m.tabBar())
	b.WriteString("\n\n")
	b.WriteString(m.screens[m.current].view())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("tab/shift+tab: switch screen • 1-6: jump • q: quit"))

	return b.String()
}

func (m *AppModel) tabBar() string {
	active := m.current.Tab()
	parts := make([]string, 0, len(tabs))

	for _, t := range tabs {
		if t == active {
			parts = append(parts, activeTabStyle.Render(t.String()))
			continue
		}

		parts = append(parts, tabStyle.Render(t.String()))
	}

	return strings.Join(parts, " ")
}

func (m *AppModel) statusLine() string {
	switch {
	case m.syncing:
		return fmt.Sprintf("  %s Syncing with %s", m.spinner.View(), dimStyle.Render("the server"))
	case m.err != nil:
		return errorStyle.Render(fmt.Sprintf("  ✗ %v", m.err))
	case m.status != "":
		return successStyle.Render("  ✓ " + m.status)
	default:
		return ""
	}
}

// Run starts the interactive application and blocks until the user quits.
func Run(svc *core.Service, opts AppOptions) error {
	p := tea.NewProgram(NewApp(svc, opts), tea.WithAltScreen(), tea.WithContext(orBackground(opts.Context)))

	_, err := p.Run()

	return err
}

func orBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}

	return ctx
}
