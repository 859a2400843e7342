package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ID is an identifier the API sends as a number or a string. It is kept
// opaque and sent back as a number when it looks like one.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)

	if string(b) == "null" {
		*id = ""
		return nil
	}

	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}

		*id = ID(s)

		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be a number or string: %w", err)
	}

	*id = ID(n.String())

	return nil
}

func (id ID) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(id), nil
	}

	return json.Marshal(string(id))
}

func (id ID) String() string { return string(id) }

var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTimestamp parses an API timestamp. Values with an offset keep it;
// values without one are read in loc.
func ParseTimestamp(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}

	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}

	if loc == nil {
		loc = time.UTC
	}

	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("invalid timestamp: %s", s)
}

// User is an account as returned by /register and /me.
type User struct {
	ID        ID     `json:"id"`
	User      string `json:"user"`
	CreatedAt string `json:"created_at,omitempty"`
}

// LoginResult is the data of a successful /login.
type LoginResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        *User  `json:"usuario,omitempty"`
}

// Credentials is the body of /login and /register.
type Credentials struct {
	User     string `json:"user"`
	Password string `json:"password"`
}

// Food is a food as the API stores it, macros per 100 g.
type Food struct {
	ID              ID      `json:"id"`
	Name            string  `json:"name"`
	CaloriesPer100g float64 `json:"calories_per_100g"`
	ProteinPer100g  float64 `json:"protein_per_100g"`
	CarbsPer100g    float64 `json:"carbs_per_100g"`
	FatPer100g      float64 `json:"fat_per_100g"`
	Barcode         *string `json:"barcode,omitempty"`
	CreatedByID     *ID     `json:"created_by_id,omitempty"`
	CreatedAt       string  `json:"created_at,omitempty"`
}

// FoodInput is the body of /foods/create and PUT /foods/{id}.
type FoodInput struct {
	Name            string  `json:"name"`
	CaloriesPer100g float64 `json:"calories_per_100g"`
	ProteinPer100g  float64 `json:"protein_per_100g"`
	CarbsPer100g    float64 `json:"carbs_per_100g"`
	FatPer100g      float64 `json:"fat_per_100g"`
	Barcode         *string `json:"barcode,omitempty"`
}

// FoodDeleted is the data of DELETE /foods/{id}.
type FoodDeleted struct {
	ID      ID   `json:"id"`
	Deleted bool `json:"deleted"`
}

// Meal is a consumption record. The server-computed macros are informative
// only; the client scales from the food itself.
type Meal struct {
	ID            ID      `json:"id"`
	UserID        ID      `json:"user_id,omitempty"`
	FoodID        ID      `json:"food_id"`
	QuantityGrams float64 `json:"quantity_grams"`
	Calories      float64 `json:"calories,omitempty"`
	Protein       float64 `json:"protein,omitempty"`
	Carbs         float64 `json:"carbs,omitempty"`
	Fat           float64 `json:"fat,omitempty"`
	ConsumedAt    string  `json:"consumed_at"`
}

// MealInput is the body of /meals/create.
type MealInput struct {
	FoodID        ID      `json:"food_id"`
	QuantityGrams float64 `json:"quantity_grams"`
}

// Settings are the user's targets. Nil fields were never set.
type Settings struct {
	ID             ID       `json:"id,omitempty"`
	UserID         ID       `json:"user_id,omitempty"`
	MetabolismBase *int     `json:"metabolism_base"`
	ProteinTarget  *float64 `json:"protein_target"`
	CarbsTarget    *float64 `json:"carbs_target"`
	FatTarget      *float64 `json:"fat_target"`
	UpdatedAt      string   `json:"updated_at,omitempty"`
}

// SettingsInput is the body of /settings/create and /settings/update.
type SettingsInput struct {
	MetabolismBase int      `json:"metabolism_base"`
	ProteinTarget  *float64 `json:"protein_target,omitempty"`
	CarbsTarget    *float64 `json:"carbs_target,omitempty"`
	FatTarget      *float64 `json:"fat_target,omitempty"`
}

// MacroPercentages is the server's calorie-weighted macro split.
type MacroPercentages struct {
	Protein float64 `json:"protein_percent"`
	Carbs   float64 `json:"carbs_percent"`
	Fat     float64 `json:"fat_percent"`
}

// Day is one entry of the dashboard endpoints.
type Day struct {
	Date             string           `json:"date"`
	TotalCalories    float64          `json:"total_calories"`
	MetabolismBase   int              `json:"metabolism_base"`
	Balance          float64          `json:"balance"`
	TotalProtein     float64          `json:"total_protein"`
	TotalCarbs       float64          `json:"total_carbs"`
	TotalFat         float64          `json:"total_fat"`
	MacroPercentages MacroPercentages `json:"macro_percentages"`
}

// items is the {"items": [...]} wrapper of the range endpoints.
type items[T any] struct {
	Items []T `json:"items"`
}
