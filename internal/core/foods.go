package core

import (
	"context"
	"errors"
	"strings"

	"github.com/inovacc/nutrilog/internal/api"
	"github.com/inovacc/nutrilog/internal/model"
	"github.com/inovacc/nutrilog/internal/state"
)

// CreateFood validates and stores a new food, then saves it locally.
func (s *Service) CreateFood(ctx context.Context, food model.FoodItem) (model.FoodItem, error) {
	if err := ValidateFood(food); err != nil {
		return model.FoodItem{}, err
	}

	created, err := s.api.CreateFood(ctx, api.FoodInputFrom(food))
	if err != nil {
		return model.FoodItem{}, remote("create food", err)
	}

	item := created.ToModel()
	s.state.UpsertFood(item)

	return item, nil
}

// UpdateFood replaces a food. Meals already recorded keep their copy.
func (s *Service) UpdateFood(ctx context.Context, id string, food model.FoodItem) (model.FoodItem, error) {
	if err := ValidateFood(food); err != nil {
		return model.FoodItem{}, err
	}

	updated, err := s.api.UpdateFood(ctx, id, api.FoodInputFrom(food))
	if err != nil {
		return model.FoodItem{}, remote("update food", err)
	}

	item := updated.ToModel()
	if item.ID == "" {
		item.ID = id
	}

	if _, err := s.state.ReplaceFood(id, item); err != nil {
		s.state.UpsertFood(item)
	}

	return item, nil
}

// RemoveFood deletes a food. The server must confirm with deleted=true.
func (s *Service) RemoveFood(ctx context.Context, id string) error {
	if _, err := s.api.DeleteFood(ctx, id); err != nil {
		return remote("remove food", err)
	}

	if _, err := s.state.RemoveFood(id); err != nil && !errors.Is(err, state.ErrNotFound) {
		return err
	}

	return nil
}

// GetFood returns a saved food, asking the API when it is not loaded.
func (s *Service) GetFood(ctx context.Context, id string) (model.FoodItem, error) {
	if food, ok := s.state.Food(id); ok {
		return food, nil
	}

	f, err := s.api.GetFood(ctx, id)
	if err != nil {
		return model.FoodItem{}, remote("get food", err)
	}

	return f.ToModel(), nil
}

// LookupBarcode finds a food by barcode and adds it to the saved foods when
// it is not there yet. added reports whether the saved foods changed.
func (s *Service) LookupBarcode(ctx context.Context, code string) (food model.FoodItem, added bool, err error) {
	code = strings.TrimSpace(code)
	if err := ValidateBarcode(code); err != nil {
		return model.FoodItem{}, false, err
	}

	f, err := s.api.FoodByBarcode(ctx, code)
	if err != nil {
		return model.FoodItem{}, false, remote("barcode lookup", err)
	}

	food = f.ToModel()

	if _, ok := s.state.Food(food.ID); ok {
		return food, false, nil
	}

	if _, err := s.state.AddFood(food); err != nil {
		return model.FoodItem{}, false, err
	}

	return food, true, nil
}

// FilterFoods returns saved foods whose name contains query, ignoring case.
// An empty query returns all of them.
func (s *Service) FilterFoods(query string) []model.FoodItem {
	return FilterFoods(s.state.Snapshot().Foods, query)
}

// FilterFoods filters foods by a case-insensitive name substring.
func FilterFoods(foods []model.FoodItem, query string) []model.FoodItem {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return foods
	}

	out := make([]model.FoodItem, 0, len(foods))
	for _, f := range foods {
		if strings.Contains(strings.ToLower(f.Name), query) {
			out = append(out, f)
		}
	}

	return out
}

// SearchRemote searches the API's food catalog by name.
func (s *Service) SearchRemote(ctx context.Context, name string) ([]model.FoodItem, error) {
	if strings.TrimSpace(name) == "" {
		return nil, invalid("name", "must not be empty")
	}

	foods, err := s.api.SearchFoods(ctx, strings.TrimSpace(name))
	if err != nil {
		return nil, remote("search foods", err)
	}

	out := make([]model.FoodItem, 0, len(foods))
	for _, f := range foods {
		out = append(out, f.ToModel())
	}

	return out, nil
}
