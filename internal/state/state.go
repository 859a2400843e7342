package state

import (
	"sync"

	"github.com/inovacc/nutrilog/internal/model"
)

// Snapshot is an immutable copy of the state at one point in time.
type Snapshot struct {
	Foods    []model.FoodItem   `json:"foods"`
	Meals    []model.MealEntry  `json:"meals"`
	Settings model.UserSettings `json:"settings"`
}

// Food looks up a food in the snapshot.
func (s Snapshot) Food(id string) (model.FoodItem, bool) {
	for _, f := range s.Foods {
		if f.ID == id {
			return f, true
		}
	}

	return model.FoodItem{}, false
}

// State is the session store.
type State struct {
	mu       sync.Mutex
	foods    *Collection[model.FoodItem]
	meals    *Collection[model.MealEntry]
	settings model.UserSettings
}

// New returns an empty state with default settings.
func New() *State {
	return &State{
		foods:    NewCollection[model.FoodItem](),
		meals:    NewCollection[model.MealEntry](),
		settings: model.DefaultSettings(),
	}
}

// Snapshot returns the current state.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshot()
}

// Food returns the saved food with id.
func (s *State) Food(id string) (model.FoodItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.foods.Get(id)
}

// Meal returns the meal with id.
func (s *State) Meal(id string) (model.MealEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.meals.Get(id)
}

// Settings returns the current settings.
func (s *State) Settings() model.UserSettings {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.settings
}

// AddFood appends a saved food.
func (s *State) AddFood(food model.FoodItem) (Snapshot, error) {
	return s.mutate(func() error { return s.foods.Add(food) })
}

// UpsertFood adds food or replaces the saved food with the same ID.
func (s *State) UpsertFood(food model.FoodItem) Snapshot {
	snap, _ := s.mutate(func() error {
		if err := s.foods.ReplaceByID(food.ID, food); err == nil {
			return nil
		}

		return s.foods.Add(food)
	})

	return snap
}

// ReplaceFood swaps the food with id. Existing meals keep their snapshot.
func (s *State) ReplaceFood(id string, food model.FoodItem) (Snapshot, error) {
	return s.mutate(func() error { return s.foods.ReplaceByID(id, food) })
}

// RemoveFood deletes a saved food. Meals referencing it are kept.
func (s *State) RemoveFood(id string) (Snapshot, error) {
	return s.mutate(func() error {
		if !s.foods.RemoveByID(id) {
			return notFound(id)
		}

		return nil
	})
}

// SetFoods replaces all saved foods.
func (s *State) SetFoods(foods []model.FoodItem) Snapshot {
	snap, _ := s.mutate(func() error {
		s.foods.Reset(foods)
		return nil
	})

	return snap
}

// AddMeal appends a meal.
func (s *State) AddMeal(meal model.MealEntry) (Snapshot, error) {
	return s.mutate(func() error { return s.meals.Add(meal) })
}

// RemoveMeal deletes a meal.
func (s *State) RemoveMeal(id string) (Snapshot, error) {
	return s.mutate(func() error {
		if !s.meals.RemoveByID(id) {
			return notFound(id)
		}

		return nil
	})
}

// SetMeals replaces all meals.
func (s *State) SetMeals(meals []model.MealEntry) Snapshot {
	snap, _ := s.mutate(func() error {
		s.meals.Reset(meals)
		return nil
	})

	return snap
}

// SetSettings replaces the settings singleton wholesale.
func (s *State) SetSettings(settings model.UserSettings) Snapshot {
	snap, _ := s.mutate(func() error {
		s.settings = settings
		return nil
	})

	return snap
}

// Reset clears foods and meals and restores default settings.
func (s *State) Reset() Snapshot {
	snap, _ := s.mutate(func() error {
		s.foods.Reset(nil)
		s.meals.Reset(nil)
		s.settings = model.DefaultSettings()

		return nil
	})

	return snap
}

// mutate runs fn under the lock. On error the snapshot reflects the
// unchanged state.
func (s *State) mutate(fn func() error) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := fn()

	return s.snapshot(), err
}

func (s *State) snapshot() Snapshot {
	return Snapshot{
		Foods:    s.foods.List(),
		Meals:    s.meals.List(),
		Settings: s.settings,
	}
}

func notFound(id string) error {
	return &NotFoundError{ID: id}
}

// NotFoundError names the missing ID and matches ErrNotFound.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return "not found: " + e.ID
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
