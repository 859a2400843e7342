package api

import (
	"strings"
	"time"

	"github.com/inovacc/nutrilog/internal/model"
)

// ToModel converts a wire food into the client model.
func (f Food) ToModel() model.FoodItem {
	item := model.FoodItem{
		ID:          f.ID.String(),
		Name:        f.Name,
		Calories:    f.CaloriesPer100g,
		Protein:     f.ProteinPer100g,
		Carbs:       f.CarbsPer100g,
		Fat:         f.FatPer100g,
		ServingSize: model.DefaultServingSize,
	}

	if f.Barcode != nil {
		item.Barcode = strings.TrimSpace(*f.Barcode)
	}

	return item
}

// FoodInputFrom converts a client food into a create/update body.
func FoodInputFrom(f model.FoodItem) FoodInput {
	in := FoodInput{
		Name:            strings.TrimSpace(f.Name),
		CaloriesPer100g: f.Calories,
		ProteinPer100g:  f.Protein,
		CarbsPer100g:    f.Carbs,
		FatPer100g:      f.Fat,
	}

	if code := strings.TrimSpace(f.Barcode); code != "" {
		in.Barcode = &code
	}

	return in
}

// ToModel converts a wire user. An unparsable created_at is left zero.
func (u User) ToModel(loc *time.Location) model.User {
	user := model.User{ID: u.ID.String(), Name: u.User}

	if u.CreatedAt != "" {
		if t, err := ParseTimestamp(u.CreatedAt, loc); err == nil {
			user.CreatedAt = t
		}
	}

	return user
}

// Apply overlays s onto prior. Nil fields keep the prior values, and so does
// a basal metabolism that is not positive.
func (s Settings) Apply(prior model.UserSettings) model.UserSettings {
	out := prior

	if s.MetabolismBase != nil && *s.MetabolismBase > 0 {
		out.BasalMetabolism = *s.MetabolismBase
	}

	if s.ProteinTarget != nil {
		out.ProteinGoal = *s.ProteinTarget
	}

	if s.CarbsTarget != nil {
		out.CarbsGoal = *s.CarbsTarget
	}

	if s.FatTarget != nil {
		out.FatGoal = *s.FatTarget
	}

	return out
}

// SettingsInputFrom converts client settings into a create/update body.
func SettingsInputFrom(s model.UserSettings) SettingsInput {
	protein, carbs, fat := s.ProteinGoal, s.CarbsGoal, s.FatGoal

	return SettingsInput{
		MetabolismBase: s.BasalMetabolism,
		ProteinTarget:  &protein,
		CarbsTarget:    &carbs,
		FatTarget:      &fat,
	}
}

// Totals returns the day's totals as the client model.
func (d Day) Totals() model.DailyTotals {
	return model.DailyTotals{
		TotalCalories: d.TotalCalories,
		TotalProtein:  d.TotalProtein,
		TotalCarbs:    d.TotalCarbs,
		TotalFat:      d.TotalFat,
	}
}

// DateOnly returns the YYYY-MM-DD part of the day's date.
func (d Day) DateOnly() string {
	if len(d.Date) >= len(time.DateOnly) {
		return d.Date[:len(time.DateOnly)]
	}

	return d.Date
}
