package core

import (
	"context"
	"time"

	"github.com/inovacc/nutrilog/internal/api"
	"github.com/inovacc/nutrilog/internal/model"
	"github.com/inovacc/nutrilog/internal/nutrition"
	"github.com/inovacc/nutrilog/internal/state"
)

// Sync loads saved foods, today's meals and the settings from the API.
// Each piece is one state mutation; an error stops the sync with the pieces
// already applied kept.
func (s *Service) Sync(ctx context.Context, now time.Time) (state.Snapshot, error) {
	if err := s.loadFoods(ctx); err != nil {
		return s.state.Snapshot(), err
	}

	today := nutrition.DateOf(now, s.location)

	meals, err := s.mealsForDates(ctx, today, today)
	if err != nil {
		return s.state.Snapshot(), err
	}

	s.state.SetMeals(meals)

	if _, err := s.LoadSettings(ctx); err != nil {
		return s.state.Snapshot(), err
	}

	snap := s.state.Snapshot()
	s.logger.Debug("synced", "foods", len(snap.Foods), "meals", len(snap.Meals), "date", today)

	return snap, nil
}

// loadFoods replaces the saved foods with the API's list.
func (s *Service) loadFoods(ctx context.Context) error {
	foods, err := s.api.ListFoods(ctx)
	if err != nil {
		return remote("list foods", err)
	}

	items := make([]model.FoodItem, 0, len(foods))
	for _, f := range foods {
		items = append(items, f.ToModel())
	}

	s.state.SetFoods(items)

	return nil
}

// ensureFoods loads the saved foods unless some are already held. Meals
// are resolved against them, so without foods every meal is an orphan.
func (s *Service) ensureFoods(ctx context.Context) error {
	if len(s.state.Snapshot().Foods) > 0 {
		return nil
	}

	return s.loadFoods(ctx)
}

// mealsForDates fetches the meals consumed in the local dates [from, to].
// The query is padded by a day on each side because the server cuts days in
// its own zone; the result is filtered on the local bounds.
func (s *Service) mealsForDates(ctx context.Context, from, to string) ([]model.MealEntry, error) {
	start, _, err := nutrition.DayBounds(from, s.location)
	if err != nil {
		return nil, invalid("date", err.Error())
	}

	_, end, err := nutrition.DayBounds(to, s.location)
	if err != nil {
		return nil, invalid("date", err.Error())
	}

	queryFrom := nutrition.FormatDate(start.AddDate(0, 0, -1))
	queryTo := nutrition.FormatDate(end)

	raw, err := s.api.MealsInRange(ctx, queryFrom, queryTo)
	if err != nil {
		return nil, remote("list meals", err)
	}

	return nutrition.MealsBetween(s.resolveMeals(raw), start, end), nil
}

// resolveMeals attaches a food snapshot to each wire meal. Meals whose food
// is unknown or whose timestamp cannot be read are dropped.
func (s *Service) resolveMeals(raw []api.Meal) []model.MealEntry {
	snap := s.state.Snapshot()
	out := make([]model.MealEntry, 0, len(raw))

	for _, m := range raw {
		food, ok := snap.Food(m.FoodID.String())
		if !ok {
			s.logger.Warn("dropping meal with unknown food", "meal_id", m.ID.String(), "food_id", m.FoodID.String())
			continue
		}

		entry, err := s.mealEntry(m, food)
		if err != nil {
			s.logger.Warn("dropping meal with bad timestamp", "meal_id", m.ID.String(), "consumed_at", m.ConsumedAt, "error", err)
			continue
		}

		out = append(out, entry)
	}

	return out
}

func (s *Service) mealEntry(m api.Meal, food model.FoodItem) (model.MealEntry, error) {
	consumedAt, err := api.ParseTimestamp(m.ConsumedAt, s.serverLocation)
	if err != nil {
		return model.MealEntry{}, err
	}

	return model.MealEntry{
		ID:         m.ID.String(),
		FoodItem:   food,
		Quantity:   m.QuantityGrams,
		Time:       nutrition.ClockOf(consumedAt, s.location),
		Date:       nutrition.DateOf(consumedAt, s.location),
		ConsumedAt: consumedAt,
	}, nil
}
