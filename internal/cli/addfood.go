package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/inovacc/nutrilog/internal/core"
	"github.com/inovacc/nutrilog/internal/model"
	"github.com/inovacc/nutrilog/internal/nutrition"
)

const (
	defaultQuantity = 100
	quantityStep    = 10
	minQuantity     = 1
)

type addStage int

const (
	stagePick addStage = iota
	stageQuantity
)

type mealAddedMsg struct {
	meal model.MealEntry
	err  error
}

func (mealAddedMsg) target() Screen { return ScreenAddFood }

type addFoodModel struct {
	env      *env
	stage    addStage
	filter   textinput.Model
	list     list.Model
	quantity textinput.Model
	food     model.FoodItem
	adding   bool
	err      error
}

func newAddFood(e *env) *addFoodModel {
	filter := textinput.New()
	filter.Placeholder = "type to filter your foods"
	filter.Prompt = "Search: "
	filter.Cursor.Style = cursorStyle
	filter.PromptStyle = focusedStyle
	filter.CharLimit = 64

	qty := textinput.New()
	qty.Placeholder = strconv.Itoa(defaultQuantity)
	qty.Prompt = "Quantity (g): "
	qty.Cursor.Style = cursorStyle
	qty.PromptStyle = focusedStyle
	qty.CharLimit = 8

	l := newFoodList("Saved foods", foodDelegate{})
	l.SetFilteringEnabled(false)

	return &addFoodModel{env: e, filter: filter, list: l, quantity: qty}
}

func (a *addFoodModel) enter() tea.Cmd {
	a.stage = stagePick
	a.err = nil
	a.refresh()
	a.quantity.Blur()

	return a.filter.Focus()
}

func (a *addFoodModel) refresh() {
	foods := core.FilterFoods(a.env.svc.Snapshot().Foods, a.filter.Value())
	a.list.SetItems(foodItems(foods))
}

// choose skips the list and asks the quantity of food.
func (a *addFoodModel) choose(food model.FoodItem) {
	a.food = food
	a.stage = stageQuantity
	a.err = nil
	a.filter.Blur()
	a.quantity.SetValue(strconv.Itoa(defaultQuantity))
	a.quantity.Focus()
}

func (a *addFoodModel) capturing() bool { return true }

func (a *addFoodModel) setSize(width, height int) {
	a.list.SetSize(max(defaultBarWidth, width-4), max(5, height-8))
}

// quantityValue parses the quantity field. ok is false when it is not a
// valid quantity.
func (a *addFoodModel) quantityValue() (float64, bool) {
	q, err := strconv.ParseFloat(strings.TrimSpace(a.quantity.Value()), 64)
	if err != nil || core.ValidateQuantity(q) != nil {
		return 0, false
	}

	return q, true
}

// step adds delta to the quantity, never going below minQuantity.
func (a *addFoodModel) step(delta float64) {
	q, ok := a.quantityValue()
	if !ok {
		q = defaultQuantity
	}

	a.quantity.SetValue(strconv.FormatFloat(max(minQuantity, q+delta), 'f', -1, 64))
	a.quantity.CursorEnd()
}

func (a *addFoodModel) update(msg tea.Msg) tea.Cmd {
	if added, ok := msg.(mealAddedMsg); ok {
		a.adding = false

		if added.err != nil {
			a.err = added.err
			return nil
		}

		return tea.Batch(
			report(fmt.Sprintf("Added %s g of %s", grams(added.meal.Quantity), added.meal.FoodItem.Name), nil),
			switchTo(ScreenDashboard),
		)
	}

	key, isKey := msg.(tea.KeyMsg)

	if a.stage == stageQuantity {
		if isKey {
			switch key.String() {
			case "esc":
				return a.enter()
			case "+", "=", "right":
				a.step(quantityStep)
				return nil
			case "-", "left":
				a.step(-quantityStep)
				return nil
			case "enter":
				return a.submit()
			}
		}

		var cmd tea.Cmd

		a.quantity, cmd = a.quantity.Update(msg)

		return cmd
	}

	if isKey {
		switch key.String() {
		case "esc":
			return switchTo(ScreenDashboard)
		case "up", "down", "pgup", "pgdown":
			var cmd tea.Cmd

			a.list, cmd = a.list.Update(msg)

			return cmd
		case "enter":
			if food, ok := selectedFood(a.list); ok {
				a.choose(food)
			}

			return nil
		}
	}

	before := a.filter.Value()

	var cmd tea.Cmd

	a.filter, cmd = a.filter.Update(msg)
	if a.filter.Value() != before {
		a.refresh()
		a.list.ResetSelected()
	}

	return cmd
}

func (a *addFoodModel) submit() tea.Cmd {
	q, ok := a.quantityValue()
	if !ok {
		a.err = &core.ValidationError{Field: "quantity", Reason: "must be a number greater than 0"}
		return nil
	}

	if a.adding {
		return nil
	}

	a.adding = true
	a.err = nil

	e, id := a.env, a.food.ID

	return func() tea.Msg {
		meal, err := e.svc.AddMeal(e.ctx, id, q)
		return mealAddedMsg{meal: meal, err: err}
	}
}

func (a *addFoodModel) view() string {
	if a.stage == stagePick {
		if len(a.list.Items()) == 0 {
			empty := "  No saved foods. Use the Barcode screen or `nutrilog food add`."
			if a.filter.Value() != "" {
				empty = "  No food matches."
			}

			return fmt.Sprintf(" %s\n\n%s\n\n%s", a.filter.View(), dimStyle.Render(empty),
				helpStyle.Render("esc: back"))
		}

		return fmt.Sprintf(" %s\n\n%s\n%s", a.filter.View(), a.list.View(),
			helpStyle.Render("↑/↓: choose • enter: select • esc: back"))
	}

	var b strings.Builder

	b.WriteString(boldStyle.Render(a.food.Name) + " " + dimStyle.Render(foodItem{food: a.food}.Description()) + "\n\n")
	b.WriteString(" " + a.quantity.View() + "\n\n")

	if q, ok := a.quantityValue(); ok {
		m := nutrition.Scale(a.food, q)
		fmt.Fprintf(&b, "  %s kcal  •  Protein %s g  •  Carbs %s g  •  Fat %s g\n",
			infoStyle.Render(kcal(m.Calories)), grams(m.Protein), grams(m.Carbs), grams(m.Fat))
	} else {
		b.WriteString(warningStyle.Render("  Enter a quantity greater than 0") + "\n")
	}

	switch {
	case a.adding:
		b.WriteString(dimStyle.Render("\n  Adding…") + "\n")
	case a.err != nil:
		b.WriteString(errorStyle.Render(fmt.Sprintf("\n  ✗ %v", a.err)) + "\n")
	}

	b.WriteString(helpStyle.Render("\n+/-: change by 10 g • enter: add meal • esc: back"))

	return b.String()
}
