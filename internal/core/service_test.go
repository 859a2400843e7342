package core

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/inovacc/nutrilog/internal/api"
	"github.com/inovacc/nutrilog/internal/model"
	"github.com/inovacc/nutrilog/internal/nutrition"
	"github.com/inovacc/nutrilog/internal/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noon on 2024-01-15 UTC
var testNow = time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, fake *fakeAPI) (*Service, *fakeSessions) {
	t.Helper()

	sessions := &fakeSessions{}
	svc := NewService(Options{
		API:            fake,
		Sessions:       sessions,
		Location:       time.UTC,
		ServerLocation: time.UTC,
		Now:            func() time.Time { return testNow },
	})

	return svc, sessions
}

func ptr(v float64) *float64 { return &v }

func intPtr(v int) *int { return &v }

func TestSync_LoadsFoodsMealsAndSettings(t *testing.T) {
	fake := newFakeAPI()
	chicken := fake.addFood("Chicken breast", 165, 31, 0, 3.6)
	rice := fake.addFood("Rice", 130, 2.7, 28, 0.3)
	fake.addMeal(chicken.ID, 150, "2024-01-15T08:30:00")
	fake.addMeal(rice.ID, 200, "2024-01-15T13:00:00")
	fake.addMeal(rice.ID, 100, "2024-01-14T20:00:00")
	fake.settings = &api.Settings{MetabolismBase: intPtr(2000), ProteinTarget: ptr(120)}

	svc, _ := newTestService(t, fake)

	snap, err := svc.Sync(context.Background(), testNow)
	require.NoError(t, err)

	assert.Len(t, snap.Foods, 2)
	require.Len(t, snap.Meals, 2)
	assert.Equal(t, "2024-01-15", snap.Meals[0].Date)
	assert.Equal(t, "08:30", snap.Meals[0].Time)
	assert.Equal(t, "Chicken breast", snap.Meals[0].FoodItem.Name)
	assert.Equal(t, 2000, snap.Settings.BasalMetabolism)
	assert.Equal(t, 120.0, snap.Settings.ProteinGoal)

	require.Len(t, fake.rangeQueries, 1)
	assert.Equal(t, [2]string{"2024-01-14", "2024-01-16"}, fake.rangeQueries[0])
}

func TestSync_DropsOrphanMeals(t *testing.T) {
	fake := newFakeAPI()
	apple := fake.addFood("Apple", 52, 0.3, 14, 0.2)
	fake.addMeal(apple.ID, 100, "2024-01-15T09:00:00")
	fake.addMeal("999", 100, "2024-01-15T10:00:00")
	fake.addMeal(apple.ID, 100, "2024-01-15 bad")

	svc, _ := newTestService(t, fake)

	snap, err := svc.Sync(context.Background(), testNow)
	require.NoError(t, err)
	require.Len(t, snap.Meals, 1)
	assert.Equal(t, apple.ID.String(), snap.Meals[0].FoodItem.ID)
}

func TestSync_GroupsByLocalDay(t *testing.T) {
	fake := newFakeAPI()
	apple := fake.addFood("Apple", 52, 0.3, 14, 0.2)

	// 02:00 UTC on the 16th is still the 15th in Sao Paulo (UTC-3)
	fake.addMeal(apple.ID, 100, "2024-01-16T02:00:00")
	fake.addMeal(apple.ID, 100, "2024-01-15T02:00:00")

	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	svc := NewService(Options{API: fake, Location: loc, ServerLocation: time.UTC})

	snap, err := svc.Sync(context.Background(), testNow)
	require.NoError(t, err)
	require.Len(t, snap.Meals, 1)
	assert.Equal(t, "2024-01-15", snap.Meals[0].Date)
	assert.Equal(t, "23:00", snap.Meals[0].Time)
}

func TestLoadSettings_CreatesWhenMissing(t *testing.T) {
	fake := newFakeAPI()
	svc, _ := newTestService(t, fake)

	settings, err := svc.LoadSettings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.DefaultBasalMetabolism, settings.BasalMetabolism)

	require.NotNil(t, fake.settings)
	require.NotNil(t, fake.settings.MetabolismBase)
	assert.Equal(t, model.DefaultBasalMetabolism, *fake.settings.MetabolismBase)
}

func TestLoadSettings_NullTargetsKeepPrior(t *testing.T) {
	fake := newFakeAPI()
	fake.settings = &api.Settings{MetabolismBase: intPtr(1800), CarbsTarget: ptr(200)}

	svc, _ := newTestService(t, fake)
	svc.State().SetSettings(model.UserSettings{BasalMetabolism: 1500, ProteinGoal: 90, FatGoal: 60})

	settings, err := svc.LoadSettings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.UserSettings{BasalMetabolism: 1800, ProteinGoal: 90, CarbsGoal: 200, FatGoal: 60}, settings)
}

func TestLoadSettings_NullBasalKeepsPrior(t *testing.T) {
	fake := newFakeAPI()
	fake.settings = &api.Settings{ProteinTarget: ptr(130)}

	svc, _ := newTestService(t, fake)
	svc.State().SetSettings(model.UserSettings{BasalMetabolism: 2000, ProteinGoal: 120})

	settings, err := svc.LoadSettings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.UserSettings{BasalMetabolism: 2000, ProteinGoal: 130}, settings)
	require.NoError(t, ValidateSettings(settings))
}

func TestSaveSettings(t *testing.T) {
	fake := newFakeAPI()
	svc, _ := newTestService(t, fake)

	_, err := svc.SaveSettings(context.Background(), model.UserSettings{BasalMetabolism: 0})
	require.True(t, IsValidation(err))
	assert.Nil(t, fake.settings, "validation must happen before the remote call")

	want := model.UserSettings{BasalMetabolism: 2100, ProteinGoal: 150, CarbsGoal: 250, FatGoal: 70}

	got, err := svc.SaveSettings(context.Background(), want)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, want, svc.Snapshot().Settings)
}

func TestAddMeal(t *testing.T) {
	fake := newFakeAPI()
	chicken := fake.addFood("Chicken breast", 165, 31, 0, 3.6)
	fake.mealTime = "2024-01-15T19:45:00"

	svc, _ := newTestService(t, fake)
	_, err := svc.Sync(context.Background(), testNow)
	require.NoError(t, err)

	meal, err := svc.AddMeal(context.Background(), chicken.ID.String(), 150)
	require.NoError(t, err)
	assert.Equal(t, "19:45", meal.Time)
	assert.Equal(t, "2024-01-15", meal.Date)
	assert.Equal(t, 150.0, meal.Quantity)

	today := svc.Today(testNow)
	require.Len(t, today.Meals, 1)
	assert.Equal(t, 248.0, today.Totals.TotalCalories)
	assert.Equal(t, 46.5, today.Meals[0].Macros.Protein)
}

func TestAddMeal_Validation(t *testing.T) {
	fake := newFakeAPI()
	svc, _ := newTestService(t, fake)

	for _, q := range []float64{0, -5} {
		_, err := svc.AddMeal(context.Background(), "1", q)
		require.True(t, IsValidation(err), "quantity %v", q)
	}

	_, err := svc.AddMeal(context.Background(), "404", 100)
	require.ErrorIs(t, err, state.ErrNotFound)
	assert.Empty(t, fake.meals)
}

func TestAddMeal_KeepsFoodSnapshot(t *testing.T) {
	fake := newFakeAPI()
	food := fake.addFood("Oats", 380, 13, 60, 7)

	svc, _ := newTestService(t, fake)
	_, err := svc.Sync(context.Background(), testNow)
	require.NoError(t, err)

	_, err = svc.AddMeal(context.Background(), food.ID.String(), 100)
	require.NoError(t, err)

	_, err = svc.UpdateFood(context.Background(), food.ID.String(), model.FoodItem{Name: "Oats", Calories: 400, Protein: 13, Carbs: 60, Fat: 7})
	require.NoError(t, err)

	today := svc.Today(testNow)
	require.Len(t, today.Meals, 1)
	assert.Equal(t, 380.0, today.Totals.TotalCalories)

	updated, ok := svc.State().Food(food.ID.String())
	require.True(t, ok)
	assert.Equal(t, 400.0, updated.Calories)
}

func TestRemoveMeal(t *testing.T) {
	fake := newFakeAPI()
	food := fake.addFood("Egg", 155, 13, 1.1, 11)
	meal := fake.addMeal(food.ID, 50, "2024-01-15T07:00:00")

	svc, _ := newTestService(t, fake)
	_, err := svc.Sync(context.Background(), testNow)
	require.NoError(t, err)

	require.NoError(t, svc.RemoveMeal(context.Background(), meal.ID.String()))
	assert.Empty(t, svc.Snapshot().Meals)
	assert.Empty(t, fake.meals)

	err = svc.RemoveMeal(context.Background(), meal.ID.String())
	require.Error(t, err)
	assert.True(t, api.IsNotFound(err))
}

func TestFoods_CreateUpdateRemove(t *testing.T) {
	fake := newFakeAPI()
	svc, _ := newTestService(t, fake)
	ctx := context.Background()

	_, err := svc.CreateFood(ctx, model.FoodItem{Name: " ", Calories: 10})
	require.True(t, IsValidation(err))

	_, err = svc.CreateFood(ctx, model.FoodItem{Name: "Bad", Calories: -1})
	require.True(t, IsValidation(err))

	created, err := svc.CreateFood(ctx, model.FoodItem{Name: "Banana", Calories: 89, Protein: 1.1, Carbs: 23, Fat: 0.3})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, ok := svc.State().Food(created.ID)
	require.True(t, ok)
	assert.Equal(t, "Banana", got.Name)

	updated, err := svc.UpdateFood(ctx, created.ID, model.FoodItem{Name: "Banana, ripe", Calories: 95, Carbs: 24})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Len(t, svc.Snapshot().Foods, 1)

	require.NoError(t, svc.RemoveFood(ctx, created.ID))
	assert.Empty(t, svc.Snapshot().Foods)
}

func TestLookupBarcode(t *testing.T) {
	fake := newFakeAPI()
	code := "7891000100103"
	fake.foods = append(fake.foods, api.Food{ID: "42", Name: "Chocolate", CaloriesPer100g: 540, Barcode: &code})

	svc, _ := newTestService(t, fake)
	ctx := context.Background()

	for _, bad := range []string{"1234567", "123456789012345678901", "12345abc9"} {
		_, _, err := svc.LookupBarcode(ctx, bad)
		require.True(t, IsValidation(err), bad)
	}

	food, added, err := svc.LookupBarcode(ctx, " "+code+" ")
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, "Chocolate", food.Name)

	_, added, err = svc.LookupBarcode(ctx, code)
	require.NoError(t, err)
	assert.False(t, added)
	assert.Len(t, svc.Snapshot().Foods, 1)

	_, _, err = svc.LookupBarcode(ctx, "00000000")
	assert.True(t, api.IsNotFound(err))
}

func TestFilterFoods(t *testing.T) {
	foods := []model.FoodItem{{ID: "1", Name: "Chicken Breast"}, {ID: "2", Name: "Rice"}, {ID: "3", Name: "chickpeas"}}

	assert.Len(t, FilterFoods(foods, ""), 3)
	assert.Len(t, FilterFoods(foods, "CHICK"), 2)
	assert.Empty(t, FilterFoods(foods, "pasta"))
}

func TestSearchRemote(t *testing.T) {
	fake := newFakeAPI()
	fake.addFood("Rice", 130, 2.7, 28, 0.3)

	svc, _ := newTestService(t, fake)

	_, err := svc.SearchRemote(context.Background(), "  ")
	require.True(t, IsValidation(err))

	found, err := svc.SearchRemote(context.Background(), "Rice")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Empty(t, svc.Snapshot().Foods, "search must not change saved foods")
}

func TestDay_Evaluation(t *testing.T) {
	svc := NewService(Options{API: newFakeAPI(), Location: time.UTC})
	food := model.FoodItem{ID: "1", Name: "Test", Calories: 100}
	svc.State().SetFoods([]model.FoodItem{food})
	svc.State().SetSettings(model.UserSettings{BasalMetabolism: 2000})
	svc.State().SetMeals([]model.MealEntry{
		{ID: "a", FoodItem: food, Quantity: 300, ConsumedAt: time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)},
		{ID: "b", FoodItem: food, Quantity: 450, ConsumedAt: time.Date(2024, 1, 15, 20, 0, 0, 0, time.UTC)},
		{ID: "c", FoodItem: food, Quantity: 100, ConsumedAt: time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC)},
	})

	day, err := svc.Day("2024-01-15")
	require.NoError(t, err)
	assert.Len(t, day.Meals, 2)
	assert.Equal(t, 750.0, day.Totals.TotalCalories)
	assert.Equal(t, -1250.0, day.Evaluation.Balance)
	assert.True(t, day.Evaluation.IsDeficit)
	assert.Equal(t, 37.5, day.Evaluation.ProgressPercent)

	_, err = svc.Day("15/01/2024")
	require.True(t, IsValidation(err))
}

func TestHistory(t *testing.T) {
	fake := newFakeAPI()
	food := fake.addFood("Bread", 250, 9, 49, 3.2)
	fake.addMeal(food.ID, 100, "2024-01-15T08:00:00")
	fake.addMeal(food.ID, 200, "2024-01-13T08:00:00")
	fake.addMeal(food.ID, 100, "2024-01-10T08:00:00")

	svc, _ := newTestService(t, fake)
	_, err := svc.Sync(context.Background(), testNow)
	require.NoError(t, err)

	days, err := svc.History(context.Background(), testNow, 3)
	require.NoError(t, err)
	require.Len(t, days, 3)

	assert.Equal(t, "2024-01-15", days[0].Date)
	assert.Equal(t, 250.0, days[0].Totals.TotalCalories)
	assert.Equal(t, "2024-01-14", days[1].Date)
	assert.Zero(t, days[1].Totals.TotalCalories)
	assert.Equal(t, "2024-01-13", days[2].Date)
	assert.Equal(t, 500.0, days[2].Totals.TotalCalories)

	_, err = svc.History(context.Background(), testNow, 0)
	require.True(t, IsValidation(err))
}

func TestLoadDay_LoadsFoodsBeforeSync(t *testing.T) {
	fake := newFakeAPI()
	food := fake.addFood("Bread", 250, 9, 49, 3.2)
	fake.addMeal(food.ID, 200, "2024-01-14T12:00:00")

	svc, _ := newTestService(t, fake)

	day, err := svc.LoadDay(context.Background(), "2024-01-14")
	require.NoError(t, err)

	require.Len(t, day.Meals, 1)
	assert.Equal(t, "Bread", day.Meals[0].Meal.FoodItem.Name)
	assert.Equal(t, 500.0, day.Totals.TotalCalories)
	assert.Len(t, svc.Snapshot().Foods, 1)
}

func TestHistory_LoadsFoodsBeforeSync(t *testing.T) {
	fake := newFakeAPI()
	food := fake.addFood("Bread", 250, 9, 49, 3.2)
	fake.addMeal(food.ID, 100, "2024-01-15T08:00:00")

	svc, _ := newTestService(t, fake)

	days, err := svc.History(context.Background(), testNow, 2)
	require.NoError(t, err)
	require.Len(t, days, 2)

	assert.Equal(t, 250.0, days[0].Totals.TotalCalories)
	require.Len(t, days[0].Meals, 1)
	assert.Equal(t, days[0].Totals, nutrition.Total([]model.MealEntry{days[0].Meals[0].Meal}))
}

func TestRemoteHistory(t *testing.T) {
	fake := newFakeAPI()
	fake.days = []api.Day{
		{Date: "2024-01-14T00:00:00", TotalCalories: 1900, MetabolismBase: 1800},
		{Date: "2024-01-15", TotalCalories: 1000},
	}

	svc, _ := newTestService(t, fake)

	days, err := svc.RemoteHistory(context.Background(), testNow, 7)
	require.NoError(t, err)
	require.Len(t, days, 2)
	assert.Equal(t, "2024-01-15", days[0].Date)
	assert.True(t, days[0].Evaluation.IsDeficit)
	assert.Equal(t, "2024-01-14", days[1].Date)
	assert.Equal(t, 100.0, days[1].Evaluation.Balance)
	assert.False(t, days[1].Evaluation.IsDeficit)
}

func TestLogin(t *testing.T) {
	fake := newFakeAPI()
	fake.token = "opaque-token"
	fake.user = &api.User{ID: "7", User: "ana"}

	svc, sessions := newTestService(t, fake)
	ctx := context.Background()

	_, err := svc.Login(ctx, "", "secret")
	require.True(t, IsValidation(err))

	_, err = svc.Login(ctx, "ana", "wrong")
	require.ErrorIs(t, err, ErrNotLoggedIn)
	assert.Nil(t, sessions.session)

	session, err := svc.Login(ctx, "ana", "secret")
	require.NoError(t, err)
	assert.Equal(t, "7", session.User.ID)
	assert.Equal(t, "opaque-token", sessions.session.Token)

	current, err := svc.CurrentSession()
	require.NoError(t, err)
	assert.Equal(t, "ana", current.User.Name)
}

func TestLogin_Unreachable(t *testing.T) {
	fake := newFakeAPI()
	fake.err = errors.New("connection refused")

	svc, sessions := newTestService(t, fake)

	_, err := svc.Login(context.Background(), "ana", "secret")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Nil(t, sessions.session)
}

func TestLogin_NoToken(t *testing.T) {
	fake := newFakeAPI()
	svc, _ := newTestService(t, fake)

	_, err := svc.Login(context.Background(), "ana", "secret")
	var remoteErr *RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, "login", remoteErr.Operation)
}

func TestLogout(t *testing.T) {
	fake := newFakeAPI()
	svc, sessions := newTestService(t, fake)
	sessions.session = &model.Session{User: model.User{Name: "ana"}}
	svc.State().SetFoods([]model.FoodItem{{ID: "1", Name: "x"}})

	require.NoError(t, svc.Logout())
	assert.True(t, sessions.cleared)
	assert.Empty(t, svc.Snapshot().Foods)

	_, err := svc.CurrentSession()
	require.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestRegisterAndWhoAmI(t *testing.T) {
	fake := newFakeAPI()
	svc, _ := newTestService(t, fake)
	ctx := context.Background()

	user, err := svc.Register(ctx, "bob", "pw")
	require.NoError(t, err)
	assert.Equal(t, "bob", user.Name)
	assert.Equal(t, 2024, user.CreatedAt.Year())

	_, err = svc.WhoAmI(ctx)
	require.ErrorIs(t, err, ErrNotLoggedIn)

	fake.user = &api.User{ID: "1", User: "bob"}

	user, err = svc.WhoAmI(ctx)
	require.NoError(t, err)
	assert.Equal(t, "bob", user.Name)
}

func TestImportFoods(t *testing.T) {
	fake := newFakeAPI()
	svc, _ := newTestService(t, fake)

	input := `[
		{"name": "Milk", "calories": 42, "protein": 3.4, "carbs": 5, "fat": 1},
		{"name": "", "calories": 10},
		{"name": "Cheese", "calories": 402, "protein": 25, "carbs": 1.3, "fat": 33, "barcode": "12345678"}
	]`

	result, err := svc.ImportFoods(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, result.Created, 2)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, 1, result.Failed[0].Index)
	assert.Equal(t, model.DefaultServingSize, result.Created[0].ServingSize)
	assert.Len(t, svc.Snapshot().Foods, 2)

	_, err = svc.ImportFoods(context.Background(), strings.NewReader(`[{"nome": "x"}]`))
	require.Error(t, err)
}

func TestRemoteErrorWrapping(t *testing.T) {
	fake := newFakeAPI()
	fake.err = &api.Error{Method: http.MethodGet, Path: "/foods/all", Status: http.StatusInternalServerError, Message: "boom"}

	svc, _ := newTestService(t, fake)

	_, err := svc.Sync(context.Background(), testNow)

	var remoteErr *RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, "list foods", remoteErr.Operation)
	assert.NotErrorIs(t, err, ErrNotLoggedIn)
}
