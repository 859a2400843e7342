package nutrition

import (
	"math"

	"github.com/inovacc/nutrilog/internal/model"
	"github.com/shopspring/decimal"
)

// ReferenceQuantity is the basis of every macro profile.
const ReferenceQuantity = 100

var hundred = decimal.NewFromInt(ReferenceQuantity)

// Macros are the nutrients of a single consumption event.
type Macros struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// Scale computes the macros of quantity units of food. Calories are rounded
// to an integer and protein, carbs and fat to one decimal, each on its own,
// so the 4/4/9 identity between macros and calories is not preserved.
func Scale(food model.FoodItem, quantity float64) Macros {
	if !finitePositive(quantity) {
		return Macros{}
	}

	q := decimal.NewFromFloat(quantity)

	return Macros{
		Calories: scaled(food.Calories, q, 0),
		Protein:  scaled(food.Protein, q, 1),
		Carbs:    scaled(food.Carbs, q, 1),
		Fat:      scaled(food.Fat, q, 1),
	}
}

func scaled(per100 float64, quantity decimal.Decimal, places int32) float64 {
	if !finiteNonNegative(per100) {
		return 0
	}

	return decimal.NewFromFloat(per100).
		Mul(quantity).
		Div(hundred).
		Round(places).
		InexactFloat64()
}

func finitePositive(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}

func finiteNonNegative(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}
