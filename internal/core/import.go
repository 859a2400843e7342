package core

import (
	"context"
	"fmt"
	"io"

	"github.com/inovacc/nutrilog/internal/encoding"
	"github.com/inovacc/nutrilog/internal/model"
)

// ImportFailure is one food of an import file that was not created.
type ImportFailure struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	Error string `json:"error"`
}

// ImportResult reports the outcome of ImportFoods.
type ImportResult struct {
	Created []model.FoodItem `json:"created"`
	Failed  []ImportFailure  `json:"failed,omitempty"`
}

// ImportFoods creates every food of a JSON array read from r. Invalid or
// rejected foods are reported and skipped; the rest are still created.
// A cancelled context stops the import.
func (s *Service) ImportFoods(ctx context.Context, r io.Reader) (ImportResult, error) {
	foods, err := encoding.DecodeJSON[[]model.FoodItem](r)
	if err != nil {
		return ImportResult{}, fmt.Errorf("failed to read foods: %w", err)
	}

	var result ImportResult

	for i, food := range *foods {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		if food.ServingSize == "" {
			food.ServingSize = model.DefaultServingSize
		}

		created, err := s.CreateFood(ctx, food)
		if err != nil {
			s.logger.Warn("food not imported", "index", i, "name", food.Name, "error", err)
			result.Failed = append(result.Failed, ImportFailure{Index: i, Name: food.Name, Error: err.Error()})

			continue
		}

		result.Created = append(result.Created, created)
	}

	return result, nil
}
