package core

import (
	"time"

	"github.com/inovacc/nutrilog/internal/model"
	"github.com/inovacc/nutrilog/internal/nutrition"
)

// MealView is a meal with its macros scaled to the eaten quantity.
type MealView struct {
	Meal   model.MealEntry  `json:"meal"`
	Macros nutrition.Macros `json:"macros"`
}

// DaySummary is everything the dashboard shows for one calendar day.
type DaySummary struct {
	Date       string               `json:"date"`
	Meals      []MealView           `json:"meals,omitempty"`
	Totals     model.DailyTotals    `json:"totals"`
	Settings   model.UserSettings   `json:"settings"`
	Evaluation nutrition.Evaluation `json:"evaluation"`
}

// Today summarizes the calendar day containing now.
func (s *Service) Today(now time.Time) DaySummary {
	summary, _ := s.Day(nutrition.DateOf(now, s.location))
	return summary
}

// Day summarizes date from the meals held in the state.
func (s *Service) Day(date string) (DaySummary, error) {
	start, end, err := nutrition.DayBounds(date, s.location)
	if err != nil {
		return DaySummary{}, invalid("date", err.Error())
	}

	snap := s.state.Snapshot()

	return summarize(date, nutrition.MealsBetween(snap.Meals, start, end), snap.Settings), nil
}

func summarize(date string, meals []model.MealEntry, settings model.UserSettings) DaySummary {
	return summarizeTotals(date, meals, nutrition.Total(meals), settings)
}

// summarizeTotals builds the summary of date from totals already summed
// over meals.
func summarizeTotals(date string, meals []model.MealEntry, totals model.DailyTotals, settings model.UserSettings) DaySummary {
	views := make([]MealView, 0, len(meals))
	for _, m := range meals {
		views = append(views, MealView{Meal: m, Macros: nutrition.MealMacros(m)})
	}

	return DaySummary{
		Date:       date,
		Meals:      views,
		Totals:     totals,
		Settings:   settings,
		Evaluation: nutrition.Evaluate(totals, settings),
	}
}
