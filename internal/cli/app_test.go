package cli

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/inovacc/nutrilog/internal/core"
	"github.com/inovacc/nutrilog/internal/model"
	"github.com/inovacc/nutrilog/internal/nutrition"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

// newTestApp builds an app whose commands are never run, so no API is needed.
func newTestApp(t *testing.T) (*AppModel, *core.Service) {
	t.Helper()

	svc := core.NewService(core.Options{Location: time.UTC})
	app := NewApp(svc, AppOptions{Now: func() time.Time { return testNow }})

	return app, svc
}

func keys(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(app *AppModel, msgs ...tea.Msg) {
	for _, msg := range msgs {
		app.Update(msg)
	}
}

func TestScreen_Tab(t *testing.T) {
	tests := []struct {
		screen Screen
		want   Screen
	}{
		{ScreenDashboard, ScreenDashboard},
		{ScreenAddFood, ScreenDashboard},
		{ScreenBarcode, ScreenDashboard},
		{ScreenDatabase, ScreenDatabase},
		{ScreenHistory, ScreenHistory},
		{ScreenSettings, ScreenSettings},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.screen.Tab(), tt.screen.String())
	}
}

func TestAppModel_TabCycles(t *testing.T) {
	app, _ := newTestApp(t)

	press(app, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, ScreenAddFood, app.Current())

	press(app, tea.KeyMsg{Type: tea.KeyShiftTab}, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, ScreenSettings, app.Current())

	press(app, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, ScreenDashboard, app.Current())
}

func TestAppModel_NumberKeys(t *testing.T) {
	app, _ := newTestApp(t)

	press(app, keys("4"))
	assert.Equal(t, ScreenDatabase, app.Current())

	press(app, keys("5"))
	assert.Equal(t, ScreenHistory, app.Current())

	press(app, keys("1"))
	assert.Equal(t, ScreenDashboard, app.Current())
}

func TestAppModel_InputCapturesNumbers(t *testing.T) {
	app, _ := newTestApp(t)

	press(app, keys("3"))
	require.Equal(t, ScreenBarcode, app.Current())

	press(app, keys("5"), keys("q"))
	assert.Equal(t, ScreenBarcode, app.Current())

	b := app.screens[ScreenBarcode].(*barcodeModel)
	assert.Equal(t, "5q", b.input.Value())
}

func TestAppModel_RoutesResultsToOwner(t *testing.T) {
	app, _ := newTestApp(t)

	food := model.FoodItem{ID: "1", Name: "Chocolate"}
	press(app, barcodeResultMsg{food: food, added: true})

	assert.Equal(t, ScreenDashboard, app.Current())

	b := app.screens[ScreenBarcode].(*barcodeModel)
	require.NotNil(t, b.result)
	assert.Equal(t, "Chocolate", b.result.food.Name)
}

func TestAppModel_SwitchWithFood(t *testing.T) {
	app, _ := newTestApp(t)

	food := model.FoodItem{ID: "1", Name: "Oats", Calories: 380}
	press(app, switchMsg{screen: ScreenAddFood, food: &food})

	require.Equal(t, ScreenAddFood, app.Current())

	add := app.screens[ScreenAddFood].(*addFoodModel)
	assert.Equal(t, stageQuantity, add.stage)
	assert.Equal(t, "Oats", add.food.Name)
	assert.Equal(t, "100", add.quantity.Value())
}

func TestAddFood_FilterUsesSavedFoods(t *testing.T) {
	app, svc := newTestApp(t)
	svc.State().SetFoods([]model.FoodItem{
		{ID: "1", Name: "Chicken breast"},
		{ID: "2", Name: "Rice"},
		{ID: "3", Name: "Chickpeas"},
	})

	press(app, keys("2"))
	add := app.screens[ScreenAddFood].(*addFoodModel)
	assert.Len(t, add.list.Items(), 3)

	press(app, keys("C"), keys("H"), keys("I"))
	assert.Len(t, add.list.Items(), 2)

	press(app, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, stageQuantity, add.stage)
	assert.Equal(t, "Chicken breast", add.food.Name)
}

func TestAddFood_QuantityStep(t *testing.T) {
	app, _ := newTestApp(t)
	add := app.screens[ScreenAddFood].(*addFoodModel)
	add.choose(model.FoodItem{ID: "1", Name: "Chicken breast", Calories: 165, Protein: 31, Fat: 3.6})

	add.update(keys("+"))
	assert.Equal(t, "110", add.quantity.Value())

	for range 20 {
		add.update(keys("-"))
	}

	assert.Equal(t, "1", add.quantity.Value())

	add.quantity.SetValue("150")
	view := add.view()
	assert.Contains(t, view, "248")
	assert.Contains(t, view, "46.5")
}

func TestAddFood_RejectsBadQuantity(t *testing.T) {
	app, _ := newTestApp(t)
	add := app.screens[ScreenAddFood].(*addFoodModel)
	add.choose(model.FoodItem{ID: "1", Name: "Rice"})
	add.quantity.SetValue("0")

	cmd := add.submit()
	assert.Nil(t, cmd)
	assert.True(t, core.IsValidation(add.err))
	assert.False(t, add.adding)
}

func TestDashboard_ShowsTodaysMeals(t *testing.T) {
	app, svc := newTestApp(t)
	food := model.FoodItem{ID: "1", Name: "Bread", Calories: 100}
	svc.State().SetSettings(model.UserSettings{BasalMetabolism: 2000})
	svc.State().SetMeals([]model.MealEntry{
		{ID: "a", FoodItem: food, Quantity: 300, Time: "08:00", ConsumedAt: testNow.Add(-4 * time.Hour)},
		{ID: "b", FoodItem: food, Quantity: 450, Time: "11:00", ConsumedAt: testNow.Add(-time.Hour)},
		{ID: "c", FoodItem: food, Quantity: 999, Time: "11:00", ConsumedAt: testNow.AddDate(0, 0, -1)},
	})

	view := app.View()
	assert.Contains(t, view, "750")
	assert.Contains(t, view, "-1250")
	assert.Contains(t, view, "deficit")
	assert.NotContains(t, view, "999.0")
}

func TestSettings_Values(t *testing.T) {
	app, _ := newTestApp(t)
	form := app.screens[ScreenSettings].(*settingsModel)
	form.reset()

	s, err := form.values()
	require.NoError(t, err)
	assert.Equal(t, model.DefaultSettings(), s)

	form.inputs[0].SetValue("2100")
	form.inputs[1].SetValue("150.5")
	form.inputs[3].SetValue("")

	s, err = form.values()
	require.NoError(t, err)
	assert.Equal(t, model.UserSettings{BasalMetabolism: 2100, ProteinGoal: 150.5}, s)

	form.inputs[2].SetValue("lots")
	_, err = form.values()
	assert.True(t, core.IsValidation(err))

	form.inputs[2].SetValue("")
	form.inputs[0].SetValue("0")
	_, err = form.values()
	assert.True(t, core.IsValidation(err))
}

func TestBars(t *testing.T) {
	assert.Equal(t, 0, filledCells(-5, 10))
	assert.Equal(t, 5, filledCells(50, 10))
	assert.Equal(t, 10, filledCells(150, 10))

	mini := macroMiniBar(nutrition.MacroSplit{Protein: 33.4, Carbs: 33.3, Fat: 33.3}, 20)
	assert.Equal(t, 20, strings.Count(mini, barFull))

	assert.Equal(t, "+100", signed(100))
	assert.Equal(t, "-1250", signed(-1250))
	assert.Equal(t, "0", signed(-0.3))
}

func TestAppModel_QuitOutsideInputs(t *testing.T) {
	app, _ := newTestApp(t)

	_, cmd := app.Update(keys("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Contains(t, app.View(), "Goodbye")
}

func TestHistory_ReloadsWhenSyncEndsDuringLoad(t *testing.T) {
	svc := core.NewService(core.Options{Location: time.UTC})
	app := NewApp(svc, AppOptions{Screen: ScreenHistory, Now: func() time.Time { return testNow }})

	hist, ok := app.screens[ScreenHistory].(*historyModel)
	require.True(t, ok)

	app.Init()
	require.True(t, hist.loading)

	_, cmd := app.Update(syncedMsg{})
	assert.Nil(t, cmd)
	assert.True(t, hist.stale)

	_, cmd = app.Update(historyLoadedMsg{days: []core.DaySummary{{Date: "2024-01-15"}}})
	assert.NotNil(t, cmd)
	assert.True(t, hist.loading)
	assert.False(t, hist.stale)

	_, cmd = app.Update(historyLoadedMsg{days: []core.DaySummary{{Date: "2024-01-15"}}})
	assert.Nil(t, cmd)
	assert.False(t, hist.loading)
}
