package model

import "time"

// FoodItem is a saved food with its macro profile per 100 reference units.
type FoodItem struct {
	// ID is the opaque identifier assigned by the remote API
	ID string `json:"id"`

	// Name is the display name of the food
	Name string `json:"name"`

	// Calories is kcal per 100 reference units
	Calories float64 `json:"calories"`

	// Protein is grams per 100 reference units
	Protein float64 `json:"protein"`

	// Carbs is grams per 100 reference units
	Carbs float64 `json:"carbs"`

	// Fat is grams per 100 reference units
	Fat float64 `json:"fat"`

	// ServingSize describes the reference unit (e.g., "100g")
	ServingSize string `json:"serving_size"`

	// Barcode is optional, digits only
	Barcode string `json:"barcode,omitempty"`
}

// GetID returns the collection key of the food.
func (f FoodItem) GetID() string { return f.ID }

// MealEntry is one consumption event. FoodItem is a copy taken when the meal
// was recorded, so later edits to the saved food do not change it.
type MealEntry struct {
	ID       string   `json:"id"`
	FoodItem FoodItem `json:"food_item"`

	// Quantity is grams (or reference units) consumed
	Quantity float64 `json:"quantity"`

	// Time is the local wall clock "HH:MM"
	Time string `json:"time"`

	// Date is the local calendar date "YYYY-MM-DD"
	Date string `json:"date"`

	// ConsumedAt is the instant reported by the API
	ConsumedAt time.Time `json:"consumed_at"`
}

// GetID returns the collection key of the meal.
func (m MealEntry) GetID() string { return m.ID }

// DefaultServingSize is the reference unit used by the API.
const DefaultServingSize = "100g"
