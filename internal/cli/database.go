package cli

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

type foodRemovedMsg struct {
	name string
	err  error
}

func (foodRemovedMsg) target() Screen { return ScreenDatabase }

type databaseModel struct {
	env     *env
	list    list.Model
	confirm string
}

func newDatabase(e *env) *databaseModel {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Saved foods"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	l.Styles.Title = titleStyle

	return &databaseModel{env: e, list: l}
}

func (d *databaseModel) enter() tea.Cmd {
	d.confirm = ""
	return d.list.SetItems(foodItems(d.env.svc.Snapshot().Foods))
}

func (d *databaseModel) capturing() bool {
	return d.list.FilterState() == list.Filtering
}

func (d *databaseModel) setSize(width, height int) {
	h, v := docStyle.GetFrameSize()
	d.list.SetSize(width-h, max(6, height-v-2))
}

func (d *databaseModel) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case foodRemovedMsg:
		if msg.err != nil {
			return report("", msg.err)
		}

		return tea.Batch(d.enter(), report(fmt.Sprintf("Deleted %s", msg.name), nil))

	case tea.KeyMsg:
		if d.capturing() {
			break
		}

		food, ok := selectedFood(d.list)

		switch msg.String() {
		case "x", "delete":
			if !ok {
				return nil
			}

			if d.confirm != food.ID {
				d.confirm = food.ID
				return nil
			}

			d.confirm = ""

			return d.removeFood(food.ID, food.Name)
		case "enter", "m":
			if ok {
				return func() tea.Msg { return switchMsg{screen: ScreenAddFood, food: &food} }
			}
		case "r":
			return requestSync
		default:
			d.confirm = ""
		}
	}

	var cmd tea.Cmd

	d.list, cmd = d.list.Update(msg)

	return cmd
}

func (d *databaseModel) removeFood(id, name string) tea.Cmd {
	e := d.env

	return func() tea.Msg {
		return foodRemovedMsg{name: name, err: e.svc.RemoveFood(e.ctx, id)}
	}
}

func (d *databaseModel) view() string {
	s := d.list.View() + "\n"

	if d.confirm != "" {
		s += warningStyle.Render("  Press x again to delete this food") + "\n"
	}

	return s + helpStyle.Render("/: filter • enter: log a meal • x: delete • r: sync")
}
