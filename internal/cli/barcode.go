package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/inovacc/nutrilog/internal/core"
	"github.com/inovacc/nutrilog/internal/model"
)

type barcodeResultMsg struct {
	food  model.FoodItem
	added bool
	err   error
}

func (barcodeResultMsg) target() Screen { return ScreenBarcode }

type barcodeModel struct {
	env     *env
	input   textinput.Model
	looking bool
	result  *barcodeResultMsg
}

func newBarcode(e *env) *barcodeModel {
	t := textinput.New()
	t.Placeholder = "8 to 20 digits"
	t.Prompt = "Barcode: "
	t.Cursor.Style = cursorStyle
	t.PromptStyle = focusedStyle
	t.TextStyle = focusedStyle
	t.CharLimit = core.MaxBarcodeLength

	return &barcodeModel{env: e, input: t}
}

func (b *barcodeModel) enter() tea.Cmd {
	b.result = nil
	b.input.SetValue("")

	return b.input.Focus()
}

func (b *barcodeModel) capturing() bool { return b.result == nil }

func (b *barcodeModel) setSize(int, int) {}

func (b *barcodeModel) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case barcodeResultMsg:
		b.looking = false
		b.result = &msg
		b.input.Blur()

		if msg.err == nil && msg.added {
			return report(fmt.Sprintf("Saved %s to your foods", msg.food.Name), nil)
		}

		return nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return switchTo(ScreenDashboard)
		case "enter":
			if b.result != nil {
				return b.enter()
			}

			return b.lookup()
		case "a":
			if b.result != nil && b.result.err == nil {
				food := b.result.food
				return func() tea.Msg { return switchMsg{screen: ScreenAddFood, food: &food} }
			}
		}
	}

	if b.result != nil {
		return nil
	}

	var cmd tea.Cmd

	b.input, cmd = b.input.Update(msg)

	return cmd
}

func (b *barcodeModel) lookup() tea.Cmd {
	code := strings.TrimSpace(b.input.Value())
	if err := core.ValidateBarcode(code); err != nil {
		b.result = &barcodeResultMsg{err: err}
		return nil
	}

	if b.looking {
		return nil
	}

	b.looking = true
	e := b.env

	return func() tea.Msg {
		food, added, err := e.svc.LookupBarcode(e.ctx, code)
		return barcodeResultMsg{food: food, added: added, err: err}
	}
}

func (b *barcodeModel) view() string {
	var s strings.Builder

	s.WriteString(boldStyle.Render("Barcode lookup") + "\n")
	s.WriteString(dimStyle.Render("Type the code printed under the barcode and press enter") + "\n\n")
	s.WriteString(" " + b.input.View() + "\n\n")

	switch {
	case b.looking:
		s.WriteString(dimStyle.Render("  Looking up…") + "\n")
	case b.result == nil:
	case b.result.err != nil:
		s.WriteString(errorStyle.Render(fmt.Sprintf("  ✗ %v", b.result.err)) + "\n")
		s.WriteString(helpStyle.Render("\nenter: try again • esc: back"))

		return s.String()
	default:
		f := b.result.food

		state := "already in your foods"
		if b.result.added {
			state = "saved to your foods"
		}

		s.WriteString(successStyle.Render("  ✓ "+f.Name) + " " + dimStyle.Render(state) + "\n")
		s.WriteString("    " + foodItem{food: f}.Description() + "\n")
		s.WriteString(helpStyle.Render("\na: log a meal of it • enter: new lookup • esc: back"))

		return s.String()
	}

	s.WriteString(helpStyle.Render("enter: look up • esc: back"))

	return s.String()
}
