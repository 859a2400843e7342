package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/inovacc/nutrilog/internal/core"
	"github.com/inovacc/nutrilog/internal/model"
)

const fmtV1 = " %s\n %s\n\n"

var (
	focusedButton = focusedStyle.Render("[ Save ]")
	blurredButton = fmt.Sprintf("[ %s ]", blurredStyle.Render("Save"))
)

type settingsSavedMsg struct {
	settings model.UserSettings
	err      error
}

func (settingsSavedMsg) target() Screen { return ScreenSettings }

var settingsLabels = []string{
	"Basal metabolism (kcal/day):",
	"Protein goal (g/day):",
	"Carbs goal (g/day):",
	"Fat goal (g/day):",
}

type settingsModel struct {
	env        *env
	focusIndex int
	inputs     []textinput.Model
	saving     bool
	err        error
}

func newSettings(e *env) *settingsModel {
	m := &settingsModel{env: e, inputs: make([]textinput.Model, len(settingsLabels))}

	for i := range m.inputs {
		t := textinput.New()
		t.Cursor.Style = cursorStyle
		t.CharLimit = 10
		t.Placeholder = "0"
		m.inputs[i] = t
	}

	m.inputs[0].Placeholder = strconv.Itoa(model.DefaultBasalMetabolism)

	return m
}

// reset loads the current settings into the form.
func (m *settingsModel) reset() {
	s := m.env.svc.Snapshot().Settings

	m.inputs[0].SetValue(strconv.Itoa(s.BasalMetabolism))
	m.inputs[1].SetValue(formatGoal(s.ProteinGoal))
	m.inputs[2].SetValue(formatGoal(s.CarbsGoal))
	m.inputs[3].SetValue(formatGoal(s.FatGoal))
	m.err = nil
}

func formatGoal(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (m *settingsModel) enter() tea.Cmd {
	m.reset()
	m.focusIndex = 0

	return m.focus()
}

func (m *settingsModel) capturing() bool { return m.focusIndex < len(m.inputs) }

func (m *settingsModel) setSize(int, int) {}

func (m *settingsModel) focus() tea.Cmd {
	cmds := make([]tea.Cmd, len(m.inputs))

	for i := 0; i <= len(m.inputs)-1; i++ {
		if i == m.focusIndex {
			// Set focused state
			cmds[i] = m.inputs[i].Focus()
			m.inputs[i].PromptStyle = focusedStyle
			m.inputs[i].TextStyle = focusedStyle

			continue
		}
		// Remove the focused state
		m.inputs[i].Blur()
		m.inputs[i].PromptStyle = noStyle
		m.inputs[i].TextStyle = noStyle
	}

	return tea.Batch(cmds...)
}

func (m *settingsModel) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case settingsSavedMsg:
		m.saving = false
		m.err = msg.err

		if msg.err != nil {
			return nil
		}

		m.reset()

		return report("Settings saved", nil)

	case tea.KeyMsg:
		switch s := msg.String(); s {
		case "esc":
			m.reset()
			return nil

		case "enter", "up", "down":
			// Submit on enter when on the save button
			if s == "enter" && m.focusIndex == len(m.inputs) {
				return m.save()
			}

			// Cycle indexes
			if s == "up" {
				m.focusIndex--
			} else {
				m.focusIndex++
			}

			if m.focusIndex > len(m.inputs) {
				m.focusIndex = 0
			} else if m.focusIndex < 0 {
				m.focusIndex = len(m.inputs)
			}

			return m.focus()
		}
	}

	// Handle character input and blinking
	cmds := make([]tea.Cmd, len(m.inputs))

	// Only text inputs with Focus() set will respond, so it's safe to simply
	// update all of them here without any further logic.
	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}

	return tea.Batch(cmds...)
}

// values parses the form. Parsing errors are reported as validation errors
// of the field.
func (m *settingsModel) values() (model.UserSettings, error) {
	var s model.UserSettings

	basal, err := strconv.Atoi(strings.TrimSpace(m.inputs[0].Value()))
	if err != nil {
		return s, &core.ValidationError{Field: "basal metabolism", Reason: "must be a whole number"}
	}

	s.BasalMetabolism = basal

	goals := []struct {
		field string
		dst   *float64
	}{
		{"protein goal", &s.ProteinGoal},
		{"carbs goal", &s.CarbsGoal},
		{"fat goal", &s.FatGoal},
	}

	for i, g := range goals {
		raw := strings.TrimSpace(m.inputs[i+1].Value())
		if raw == "" {
			continue
		}

		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return s, &core.ValidationError{Field: g.field, Reason: "must be a number"}
		}

		*g.dst = v
	}

	return s, core.ValidateSettings(s)
}

func (m *settingsModel) save() tea.Cmd {
	settings, err := m.values()
	if err != nil {
		m.err = err
		return nil
	}

	if m.saving {
		return nil
	}

	m.saving = true
	m.err = nil
	e := m.env

	return func() tea.Msg {
		saved, err := e.svc.SaveSettings(e.ctx, settings)
		return settingsSavedMsg{settings: saved, err: err}
	}
}

func (m *settingsModel) view() string {
	s := headerStyle.Render("Daily targets") + "\n"
	s += blurredStyle.Render("Edit the fields below and press ↑/↓ to navigate") + "\n\n"

	for i, label := range settingsLabels {
		s += fmt.Sprintf(fmtV1, blurredStyle.Render(label), m.inputs[i].View())
	}

	button := &blurredButton
	if m.focusIndex == len(m.inputs) {
		button = &focusedButton
	}

	s += fmt.Sprintf("\n %s\n", *button)

	switch {
	case m.saving:
		s += dimStyle.Render("\n  Saving…") + "\n"
	case m.err != nil:
		s += errorStyle.Render(fmt.Sprintf("\n  ✗ %v", m.err)) + "\n"
	}

	s += helpStyle.Render("\n↑/↓: navigate • enter: save • esc: discard changes")

	return s
}

// SettingsForm edits the settings outside of the app, for `settings edit`.
type SettingsForm struct {
	form  *settingsModel
	Saved bool
}

// NewSettingsForm builds a form prefilled with the service's settings.
func NewSettingsForm(svc *core.Service, opts AppOptions) *SettingsForm {
	e := &env{svc: svc, ctx: orBackground(opts.Context), now: opts.Now}

	form := newSettings(e)
	form.reset()

	return &SettingsForm{form: form}
}

func (f *SettingsForm) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, f.form.focus())
}

func (f *SettingsForm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case settingsSavedMsg:
		if msg.err != nil {
			f.form.update(msg)
			return f, nil
		}

		f.Saved = true

		return f, tea.Quit

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return f, tea.Quit
		}
	}

	return f, f.form.update(msg)
}

func (f *SettingsForm) View() string {
	if f.Saved {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Render("\n  ✓ Settings saved successfully!\n\n")
	}

	return "\n" + f.form.view()
}

// Settings returns the values saved by the form.
func (f *SettingsForm) Settings() model.UserSettings {
	return f.form.env.svc.Snapshot().Settings
}
