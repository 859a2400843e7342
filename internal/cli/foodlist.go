package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/inovacc/nutrilog/internal/model"
)

type foodItem struct {
	food model.FoodItem
}

func (i foodItem) Title() string { return i.food.Name }

func (i foodItem) Description() string {
	desc := fmt.Sprintf("%s kcal • P %s • C %s • F %s per 100 g",
		kcal(i.food.Calories), grams(i.food.Protein), grams(i.food.Carbs), grams(i.food.Fat))

	if i.food.Barcode != "" {
		desc += " • " + i.food.Barcode
	}

	return desc
}

func (i foodItem) FilterValue() string { return i.food.Name }

func foodItems(foods []model.FoodItem) []list.Item {
	items := make([]list.Item, len(foods))
	for i, f := range foods {
		items[i] = foodItem{food: f}
	}

	return items
}

// foodDelegate renders one numbered food per line.
type foodDelegate struct{}

func (d foodDelegate) Height() int                             { return 1 }
func (d foodDelegate) Spacing() int                            { return 0 }
func (d foodDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d foodDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(foodItem)
	if !ok {
		return
	}

	str := fmt.Sprintf("%d. %-28s %s", index+1, truncate(i.food.Name, 28), dimStyle.Render(kcal(i.food.Calories)+" kcal/100 g"))

	fn := itemStyle.Render
	if index == m.Index() {
		fn = func(s ...string) string {
			return selectedItemStyle.Render("> " + s[0])
		}
	}

	_, _ = fmt.Fprint(w, fn(str))
}

func newFoodList(title string, delegate list.ItemDelegate) list.Model {
	l := list.New(nil, delegate, defaultBarWidth, 12)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.Styles.Title = titleStyle
	l.Styles.PaginationStyle = paginationStyle
	l.Styles.HelpStyle = helpStyle

	return l
}

func selectedFood(l list.Model) (model.FoodItem, bool) {
	i, ok := l.SelectedItem().(foodItem)
	return i.food, ok
}
