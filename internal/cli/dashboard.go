package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/inovacc/nutrilog/internal/core"
	"github.com/inovacc/nutrilog/internal/nutrition"
)

const (
	defaultBarWidth = 40
	macroBarWidth   = 20
)

type mealRemovedMsg struct {
	id  string
	err error
}

func (mealRemovedMsg) target() Screen { return ScreenDashboard }

type dashboardModel struct {
	env      *env
	cursor   int
	calories progress.Model
}

func newDashboard(e *env) *dashboardModel {
	return &dashboardModel{
		env:      e,
		calories: progress.New(progress.WithDefaultGradient(), progress.WithWidth(defaultBarWidth), progress.WithoutPercentage()),
	}
}

func (d *dashboardModel) enter() tea.Cmd { return nil }

func (d *dashboardModel) capturing() bool { return false }

func (d *dashboardModel) setSize(width, _ int) {
	d.calories.Width = max(10, min(width-30, defaultBarWidth))
}

func (d *dashboardModel) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		meals := d.env.svc.Today(d.env.now()).Meals

		switch msg.String() {
		case "up", "k":
			if d.cursor > 0 {
				d.cursor--
			}
		case "down", "j":
			if d.cursor < len(meals)-1 {
				d.cursor++
			}
		case "a":
			return switchTo(ScreenAddFood)
		case "b":
			return switchTo(ScreenBarcode)
		case "r":
			return requestSync
		case "x", "delete":
			if d.cursor < len(meals) {
				return d.removeMeal(meals[d.cursor].Meal.ID)
			}
		}

	case mealRemovedMsg:
		if msg.err != nil {
			return report("", msg.err)
		}

		d.cursor = max(0, d.cursor-1)

		return report("Meal removed", nil)
	}

	return nil
}

func (d *dashboardModel) removeMeal(id string) tea.Cmd {
	e := d.env

	return func() tea.Msg {
		return mealRemovedMsg{id: id, err: e.svc.RemoveMeal(e.ctx, id)}
	}
}

func (d *dashboardModel) view() string {
	summary := d.env.svc.Today(d.env.now())
	ev := summary.Evaluation

	var b strings.Builder

	b.WriteString(boldStyle.Render("Today") + " " + dimStyle.Render(summary.Date) + "\n\n")

	balance := signed(ev.Balance) + " kcal"
	if ev.IsDeficit {
		balance = successStyle.Render(balance + " (deficit)")
	} else {
		balance = warningStyle.Render(balance + " (surplus)")
	}

	fmt.Fprintf(&b, "  Consumed %s of %s kcal   Balance %s\n",
		boldStyle.Render(kcal(summary.Totals.TotalCalories)),
		kcal(float64(summary.Settings.BasalMetabolism)),
		balance)
	fmt.Fprintf(&b, "  %s %s%%\n\n", d.calories.ViewAs(ev.ProgressPercent/100), grams(ev.ProgressPercent))

	b.WriteString(boldStyle.Render("Macros") + dimStyle.Render(" (share of grams)") + "\n")
	b.WriteString(macroLine("Protein", ev.Macros.Protein, summary.Totals.TotalProtein, proteinStyle.Render))
	b.WriteString(macroLine("Carbs", ev.Macros.Carbs, summary.Totals.TotalCarbs, carbsStyle.Render))
	b.WriteString(macroLine("Fat", ev.Macros.Fat, summary.Totals.TotalFat, fatStyle.Render))
	b.WriteString("\n")

	b.WriteString(boldStyle.Render("Goals") + "\n")
	b.WriteString(goalLine("Protein", ev.Goals.Protein))
	b.WriteString(goalLine("Carbs", ev.Goals.Carbs))
	b.WriteString(goalLine("Fat", ev.Goals.Fat))
	b.WriteString("\n")

	b.WriteString(boldStyle.Render("Meals") + "\n")
	b.WriteString(d.mealRows(summary.Meals))

	b.WriteString(helpStyle.Render("a: add meal • b: barcode • x: delete meal • r: sync"))

	return b.String()
}

func (d *dashboardModel) mealRows(meals []core.MealView) string {
	if len(meals) == 0 {
		return dimStyle.Render("  No meals yet. Press a to add one.") + "\n"
	}

	var b strings.Builder

	for i, mv := range meals {
		row := fmt.Sprintf("%s  %-24s %6s g  %5s kcal  P %s  C %s  F %s",
			mv.Meal.Time,
			truncate(mv.Meal.FoodItem.Name, 24),
			grams(mv.Meal.Quantity),
			kcal(mv.Macros.Calories),
			grams(mv.Macros.Protein),
			grams(mv.Macros.Carbs),
			grams(mv.Macros.Fat))

		if i == d.cursor {
			b.WriteString(selectedItemStyle.Render("> "+row) + "\n")
			continue
		}

		b.WriteString(itemStyle.Render(row) + "\n")
	}

	return b.String()
}

func macroLine(name string, percent, value float64, color func(...string) string) string {
	return fmt.Sprintf("  %-8s %s %5s%%  %s g\n", name, color(bar(percent, macroBarWidth)), grams(percent), grams(value))
}

func goalLine(name string, g nutrition.GoalProgress) string {
	if g.Goal <= 0 {
		return fmt.Sprintf("  %-8s %s\n", name, dimStyle.Render("no goal set"))
	}

	line := fmt.Sprintf("%s %s / %s g", bar(g.Percent, macroBarWidth), grams(g.Value), grams(g.Goal))
	if g.Over {
		line = warningStyle.Render(line + " over")
	}

	return fmt.Sprintf("  %-8s %s\n", name, line)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}

	return string(r[:n-1]) + "…"
}
