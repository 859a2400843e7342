package nutrition

import (
	"time"

	"github.com/inovacc/nutrilog/internal/model"
	"github.com/shopspring/decimal"
)

// accumulator sums macros exactly so totals do not depend on meal order.
type accumulator struct {
	calories, protein, carbs, fat decimal.Decimal
}

func (a *accumulator) add(m Macros) {
	a.calories = a.calories.Add(decimal.NewFromFloat(m.Calories))
	a.protein = a.protein.Add(decimal.NewFromFloat(m.Protein))
	a.carbs = a.carbs.Add(decimal.NewFromFloat(m.Carbs))
	a.fat = a.fat.Add(decimal.NewFromFloat(m.Fat))
}

func (a *accumulator) totals() model.DailyTotals {
	return model.DailyTotals{
		TotalCalories: a.calories.InexactFloat64(),
		TotalProtein:  a.protein.InexactFloat64(),
		TotalCarbs:    a.carbs.InexactFloat64(),
		TotalFat:      a.fat.InexactFloat64(),
	}
}

// MealMacros scales a meal using its food snapshot.
func MealMacros(meal model.MealEntry) Macros {
	return Scale(meal.FoodItem, meal.Quantity)
}

// Total sums every meal in meals.
func Total(meals []model.MealEntry) model.DailyTotals {
	var acc accumulator

	for _, meal := range meals {
		acc.add(MealMacros(meal))
	}

	return acc.totals()
}

// Aggregate sums the meals whose Date equals date exactly. It does not parse
// dates: a meal stamped with a different zone's date string is excluded.
// It is the date-string entry point for callers holding only Date stamps;
// the service groups by ConsumedAt through MealsBetween and Total.
func Aggregate(meals []model.MealEntry, date string) model.DailyTotals {
	var acc accumulator

	for _, meal := range meals {
		if meal.Date != date {
			continue
		}

		acc.add(MealMacros(meal))
	}

	return acc.totals()
}

// AggregateBetween sums the meals consumed in [start, end).
func AggregateBetween(meals []model.MealEntry, start, end time.Time) model.DailyTotals {
	var acc accumulator

	for _, meal := range meals {
		if !within(meal.ConsumedAt, start, end) {
			continue
		}

		acc.add(MealMacros(meal))
	}

	return acc.totals()
}

// MealsBetween returns the meals consumed in [start, end), in input order.
func MealsBetween(meals []model.MealEntry, start, end time.Time) []model.MealEntry {
	out := make([]model.MealEntry, 0, len(meals))

	for _, meal := range meals {
		if within(meal.ConsumedAt, start, end) {
			out = append(out, meal)
		}
	}

	return out
}

// DayTotals pairs a calendar date with its totals.
type DayTotals struct {
	Date   string            `json:"date"`
	Totals model.DailyTotals `json:"totals"`
}

// AggregateDays returns one entry per calendar day from "from" to "to"
// inclusive, oldest first. Days without meals have zero totals.
func AggregateDays(meals []model.MealEntry, from, to string, loc *time.Location) ([]DayTotals, error) {
	first, err := ParseDate(from, loc)
	if err != nil {
		return nil, err
	}

	last, err := ParseDate(to, loc)
	if err != nil {
		return nil, err
	}

	if last.Before(first) {
		return nil, &RangeError{From: from, To: to}
	}

	days := make(map[string]*accumulator)

	for _, meal := range meals {
		date := DateOf(meal.ConsumedAt, loc)

		acc, ok := days[date]
		if !ok {
			acc = &accumulator{}
			days[date] = acc
		}

		acc.add(MealMacros(meal))
	}

	var out []DayTotals

	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		date := FormatDate(day)

		var totals model.DailyTotals
		if acc, ok := days[date]; ok {
			totals = acc.totals()
		}

		out = append(out, DayTotals{Date: date, Totals: totals})
	}

	return out, nil
}

func within(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}
