package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/inovacc/nutrilog/internal/model"
	"github.com/inovacc/nutrilog/internal/nutrition"
	"github.com/inovacc/nutrilog/internal/state"
)

// AddMeal records quantity grams of a saved food. The meal keeps a copy of
// the food as it is now.
func (s *Service) AddMeal(ctx context.Context, foodID string, quantity float64) (model.MealEntry, error) {
	if err := ValidateQuantity(quantity); err != nil {
		return model.MealEntry{}, err
	}

	food, ok := s.state.Food(foodID)
	if !ok {
		return model.MealEntry{}, fmt.Errorf("food %s: %w", foodID, state.ErrNotFound)
	}

	created, err := s.api.CreateMeal(ctx, foodID, quantity)
	if err != nil {
		return model.MealEntry{}, remote("add meal", err)
	}

	entry, err := s.mealEntry(*created, food)
	if err != nil {
		s.logger.Warn("meal timestamp unreadable, using local clock", "meal_id", created.ID.String(), "error", err)

		now := s.now()
		entry = model.MealEntry{
			ID:         created.ID.String(),
			FoodItem:   food,
			Quantity:   created.QuantityGrams,
			Time:       nutrition.ClockOf(now, s.location),
			Date:       nutrition.DateOf(now, s.location),
			ConsumedAt: now,
		}
	}

	if entry.Quantity <= 0 {
		entry.Quantity = quantity
	}

	if _, err := s.state.AddMeal(entry); err != nil {
		return model.MealEntry{}, err
	}

	return entry, nil
}

// RemoveMeal deletes a meal remotely, then locally. A meal that was never
// loaded into the state is still deleted on the server.
func (s *Service) RemoveMeal(ctx context.Context, id string) error {
	if err := s.api.DeleteMeal(ctx, id); err != nil {
		return remote("remove meal", err)
	}

	if _, err := s.state.RemoveMeal(id); err != nil && !errors.Is(err, state.ErrNotFound) {
		return err
	}

	return nil
}

// Meals returns the meals of date with their scaled macros. Only meals
// already loaded into the state are considered.
func (s *Service) Meals(date string) ([]MealView, error) {
	summary, err := s.Day(date)
	if err != nil {
		return nil, err
	}

	return summary.Meals, nil
}

// LoadDay fetches the meals of date from the API into the state. The saved
// foods are loaded first when none are held yet.
func (s *Service) LoadDay(ctx context.Context, date string) (DaySummary, error) {
	if err := s.ensureFoods(ctx); err != nil {
		return DaySummary{}, err
	}

	meals, err := s.mealsForDates(ctx, date, date)
	if err != nil {
		return DaySummary{}, err
	}

	s.state.SetMeals(meals)

	return s.Day(date)
}
