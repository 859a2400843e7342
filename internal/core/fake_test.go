package core

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/inovacc/nutrilog/internal/api"
	"github.com/inovacc/nutrilog/internal/model"
	"github.com/inovacc/nutrilog/internal/store"
)

// fakeAPI is an in-memory API. Timestamps are stored naive, in UTC.
type fakeAPI struct {
	mu sync.Mutex

	nextID   int
	foods    []api.Food
	meals    []api.Meal
	settings *api.Settings
	days     []api.Day

	// rangeQueries records the start/end of every MealsInRange call
	rangeQueries [][2]string

	// mealTime is the consumed_at assigned to new meals
	mealTime string

	// err, when set, is returned by every call
	err error

	token string
	user  *api.User
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{nextID: 100, mealTime: "2024-01-15T12:00:00"}
}

func (f *fakeAPI) id() api.ID {
	f.nextID++
	return api.ID(strconv.Itoa(f.nextID))
}

func notFound(path string) error {
	return &api.Error{Method: http.MethodGet, Path: path, Status: http.StatusNotFound, Message: "not found"}
}

func (f *fakeAPI) addFood(name string, kcal, protein, carbs, fat float64) api.Food {
	f.mu.Lock()
	defer f.mu.Unlock()

	food := api.Food{ID: f.id(), Name: name, CaloriesPer100g: kcal, ProteinPer100g: protein, CarbsPer100g: carbs, FatPer100g: fat}
	f.foods = append(f.foods, food)

	return food
}

func (f *fakeAPI) addMeal(foodID api.ID, grams float64, consumedAt string) api.Meal {
	f.mu.Lock()
	defer f.mu.Unlock()

	meal := api.Meal{ID: f.id(), FoodID: foodID, QuantityGrams: grams, ConsumedAt: consumedAt}
	f.meals = append(f.meals, meal)

	return meal
}

func (f *fakeAPI) Health(context.Context) (string, error) {
	return "ok", f.err
}

func (f *fakeAPI) Register(_ context.Context, user, _ string) (*api.User, error) {
	if f.err != nil {
		return nil, f.err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	return &api.User{ID: f.id(), User: user, CreatedAt: "2024-01-01T08:00:00"}, nil
}

func (f *fakeAPI) Login(_ context.Context, user, password string) (*api.LoginResult, error) {
	if f.err != nil {
		return nil, f.err
	}

	if password != "secret" {
		return nil, &api.Error{Method: http.MethodPost, Path: "/login", Status: http.StatusUnauthorized, Message: "bad credentials"}
	}

	return &api.LoginResult{AccessToken: f.token, TokenType: "bearer", User: f.user}, nil
}

func (f *fakeAPI) Me(context.Context) (*api.User, error) {
	if f.err != nil {
		return nil, f.err
	}

	if f.user == nil {
		return nil, &api.Error{Method: http.MethodGet, Path: "/me", Status: http.StatusUnauthorized, Message: "no token"}
	}

	return f.user, nil
}

func (f *fakeAPI) ListFoods(context.Context) ([]api.Food, error) {
	if f.err != nil {
		return nil, f.err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]api.Food(nil), f.foods...), nil
}

func (f *fakeAPI) SearchFoods(_ context.Context, name string) ([]api.Food, error) {
	if f.err != nil {
		return nil, f.err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	var out []api.Food
	for _, food := range f.foods {
		if food.Name == name {
			out = append(out, food)
		}
	}

	return out, nil
}

func (f *fakeAPI) findFood(id string) (int, bool) {
	for i, food := range f.foods {
		if food.ID.String() == id {
			return i, true
		}
	}

	return -1, false
}

func (f *fakeAPI) GetFood(_ context.Context, id string) (*api.Food, error) {
	if f.err != nil {
		return nil, f.err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	i, ok := f.findFood(id)
	if !ok {
		return nil, notFound("/foods/" + id)
	}

	food := f.foods[i]

	return &food, nil
}

func (f *fakeAPI) FoodByBarcode(_ context.Context, code string) (*api.Food, error) {
	if f.err != nil {
		return nil, f.err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	for _, food := range f.foods {
		if food.Barcode != nil && *food.Barcode == code {
			return &food, nil
		}
	}

	return nil, notFound("/foods/barcode/" + code)
}

func (f *fakeAPI) CreateFood(_ context.Context, in api.FoodInput) (*api.Food, error) {
	if f.err != nil {
		return nil, f.err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	food := api.Food{
		ID:              f.id(),
		Name:            in.Name,
		CaloriesPer100g: in.CaloriesPer100g,
		ProteinPer100g:  in.ProteinPer100g,
		CarbsPer100g:    in.CarbsPer100g,
		FatPer100g:      in.FatPer100g,
		Barcode:         in.Barcode,
	}
	f.foods = append(f.foods, food)

	return &food, nil
}

func (f *fakeAPI) UpdateFood(_ context.Context, id string, in api.FoodInput) (*api.Food, error) {
	if f.err != nil {
		return nil, f.err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	i, ok := f.findFood(id)
	if !ok {
		return nil, notFound("/foods/" + id)
	}

	f.foods[i] = api.Food{
		ID:              f.foods[i].ID,
		Name:            in.Name,
		CaloriesPer100g: in.CaloriesPer100g,
		ProteinPer100g:  in.ProteinPer100g,
		CarbsPer100g:    in.CarbsPer100g,
		FatPer100g:      in.FatPer100g,
		Barcode:         in.Barcode,
	}
	food := f.foods[i]

	return &food, nil
}

func (f *fakeAPI) DeleteFood(_ context.Context, id string) (*api.FoodDeleted, error) {
	if f.err != nil {
		return nil, f.err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	i, ok := f.findFood(id)
	if !ok {
		return nil, notFound("/foods/" + id)
	}

	f.foods = append(f.foods[:i], f.foods[i+1:]...)

	return &api.FoodDeleted{ID: api.ID(id), Deleted: true}, nil
}

func (f *fakeAPI) CreateMeal(_ context.Context, foodID string, grams float64) (*api.Meal, error) {
	if f.err != nil {
		return nil, f.err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	meal := api.Meal{ID: f.id(), FoodID: api.ID(foodID), QuantityGrams: grams, ConsumedAt: f.mealTime}
	f.meals = append(f.meals, meal)

	return &meal, nil
}

// MealsInRange returns meals whose UTC date falls in [start, end].
func (f *fakeAPI) MealsInRange(_ context.Context, start, end string) ([]api.Meal, error) {
	if f.err != nil {
		return nil, f.err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.rangeQueries = append(f.rangeQueries, [2]string{start, end})

	var out []api.Meal
	for _, m := range f.meals {
		if date := m.ConsumedAt[:len(time.DateOnly)]; date >= start && date <= end {
			out = append(out, m)
		}
	}

	return out, nil
}

func (f *fakeAPI) DeleteMeal(_ context.Context, id string) error {
	if f.err != nil {
		return f.err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	for i, m := range f.meals {
		if m.ID.String() == id {
			f.meals = append(f.meals[:i], f.meals[i+1:]...)
			return nil
		}
	}

	return notFound("/meals/" + id)
}

func (f *fakeAPI) GetSettings(context.Context) (*api.Settings, error) {
	if f.err != nil {
		return nil, f.err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.settings == nil {
		return nil, notFound("/settings/me")
	}

	out := *f.settings

	return &out, nil
}

func (f *fakeAPI) CreateSettings(_ context.Context, in api.SettingsInput) (*api.Settings, error) {
	if f.err != nil {
		return nil, f.err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	basal := in.MetabolismBase

	f.settings = &api.Settings{
		MetabolismBase: &basal,
		ProteinTarget:  in.ProteinTarget,
		CarbsTarget:    in.CarbsTarget,
		FatTarget:      in.FatTarget,
	}
	out := *f.settings

	return &out, nil
}

func (f *fakeAPI) UpdateSettings(ctx context.Context, in api.SettingsInput) (*api.Settings, error) {
	f.mu.Lock()
	missing := f.settings == nil
	f.mu.Unlock()

	if missing && f.err == nil {
		return nil, notFound("/settings/update")
	}

	return f.CreateSettings(ctx, in)
}

func (f *fakeAPI) DashboardToday(context.Context) (*api.Day, error) {
	if f.err != nil {
		return nil, f.err
	}

	if len(f.days) == 0 {
		return &api.Day{}, nil
	}

	return &f.days[len(f.days)-1], nil
}

func (f *fakeAPI) DashboardRange(_ context.Context, start, end string) ([]api.Day, error) {
	if f.err != nil {
		return nil, f.err
	}

	var out []api.Day
	for _, d := range f.days {
		if date := d.DateOnly(); date >= start && date <= end {
			out = append(out, d)
		}
	}

	return out, nil
}

// fakeSessions keeps the session in memory.
type fakeSessions struct {
	session *model.Session
	cleared bool
}

func (s *fakeSessions) Save(token string, user model.User) (*model.Session, error) {
	s.session = &model.Session{User: user, Token: token, TokenStorage: model.TokenStoragePlain}
	return s.session, nil
}

func (s *fakeSessions) Load() (*model.Session, error) {
	if s.session == nil {
		return nil, store.ErrNoSession
	}

	return s.session, nil
}

func (s *fakeSessions) Clear() error {
	s.session = nil
	s.cleared = true

	return nil
}
