package nutrition

import (
	"math/rand"
	"testing"
	"time"

	"github.com/inovacc/nutrilog/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func calorieFood(kcal float64) model.FoodItem {
	return model.FoodItem{Name: "fixed", Calories: kcal}
}

func meal(id, date string, food model.FoodItem, quantity float64) model.MealEntry {
	return model.MealEntry{ID: id, FoodItem: food, Quantity: quantity, Date: date}
}

func TestAggregate_SelectsDateOnly(t *testing.T) {
	meals := []model.MealEntry{
		meal("a", "2024-01-15", calorieFood(300), 100),
		meal("b", "2024-01-15", calorieFood(450), 100),
		meal("c", "2024-01-16", calorieFood(500), 100),
	}

	got := Aggregate(meals, "2024-01-15")

	require.Equal(t, 750.0, got.TotalCalories)
}

func TestAggregate_Empty(t *testing.T) {
	assert.Equal(t, model.DailyTotals{}, Aggregate(nil, "2024-01-15"))

	meals := []model.MealEntry{meal("a", "2024-01-16", chickenBreast, 100)}
	assert.Equal(t, model.DailyTotals{}, Aggregate(meals, "2024-01-15"))
}

func TestAggregate_SumsScaledMeals(t *testing.T) {
	meals := []model.MealEntry{
		meal("a", "2024-01-15", chickenBreast, 150),
		meal("b", "2024-01-15", chickenBreast, 100),
	}

	got := Aggregate(meals, "2024-01-15")

	assert.Equal(t, model.DailyTotals{
		TotalCalories: 413,
		TotalProtein:  77.5,
		TotalCarbs:    0,
		TotalFat:      9,
	}, got)
}

func TestAggregate_PermutationInvariant(t *testing.T) {
	foods := []model.FoodItem{
		{Calories: 165, Protein: 31, Fat: 3.6},
		{Calories: 52, Protein: 0.3, Carbs: 13.8, Fat: 0.2},
		{Calories: 389, Protein: 16.9, Carbs: 66.3, Fat: 6.9},
		{Calories: 884, Fat: 100},
		{Calories: 34, Protein: 2.8, Carbs: 6.6, Fat: 0.4},
	}

	var meals []model.MealEntry
	for i := range 40 {
		food := foods[i%len(foods)]
		meals = append(meals, meal(string(rune('a'+i)), "2024-01-15", food, float64(7+i*13)))
	}

	want := Aggregate(meals, "2024-01-15")

	r := rand.New(rand.NewSource(42))
	for range 20 {
		shuffled := append([]model.MealEntry(nil), meals...)
		r.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		require.Equal(t, want, Aggregate(shuffled, "2024-01-15"))
	}
}

func TestAggregateBetween(t *testing.T) {
	loc := time.FixedZone("BRT", -3*3600)
	start, end, err := DayBounds("2024-01-15", loc)
	require.NoError(t, err)

	meals := []model.MealEntry{
		{ID: "a", FoodItem: calorieFood(100), Quantity: 100, ConsumedAt: start},
		{ID: "b", FoodItem: calorieFood(200), Quantity: 100, ConsumedAt: end.Add(-time.Minute)},
		{ID: "c", FoodItem: calorieFood(400), Quantity: 100, ConsumedAt: end},
		{ID: "d", FoodItem: calorieFood(800), Quantity: 100, ConsumedAt: start.Add(-time.Second)},
	}

	got := AggregateBetween(meals, start, end)
	assert.Equal(t, 300.0, got.TotalCalories)

	between := MealsBetween(meals, start, end)
	require.Len(t, between, 2)
	assert.Equal(t, "a", between[0].ID)
	assert.Equal(t, "b", between[1].ID)
}

func TestAggregateDays(t *testing.T) {
	loc := time.UTC
	day := func(date string, hour int) time.Time {
		d, err := ParseDate(date, loc)
		require.NoError(t, err)
		return d.Add(time.Duration(hour) * time.Hour)
	}

	meals := []model.MealEntry{
		{ID: "a", FoodItem: calorieFood(300), Quantity: 100, ConsumedAt: day("2024-01-15", 8)},
		{ID: "b", FoodItem: calorieFood(450), Quantity: 100, ConsumedAt: day("2024-01-15", 20)},
		{ID: "c", FoodItem: calorieFood(500), Quantity: 100, ConsumedAt: day("2024-01-17", 12)},
	}

	got, err := AggregateDays(meals, "2024-01-14", "2024-01-17", loc)
	require.NoError(t, err)
	require.Len(t, got, 4)

	assert.Equal(t, "2024-01-14", got[0].Date)
	assert.Equal(t, 0.0, got[0].Totals.TotalCalories)
	assert.Equal(t, 750.0, got[1].Totals.TotalCalories)
	assert.Equal(t, 0.0, got[2].Totals.TotalCalories)
	assert.Equal(t, "2024-01-17", got[3].Date)
	assert.Equal(t, 500.0, got[3].Totals.TotalCalories)
}

func TestAggregateDays_InvalidRange(t *testing.T) {
	_, err := AggregateDays(nil, "2024-01-17", "2024-01-14", time.UTC)

	var rangeErr *RangeError
	require.ErrorAs(t, err, &rangeErr)

	_, err = AggregateDays(nil, "not-a-date", "2024-01-14", time.UTC)
	require.Error(t, err)
}

func TestTotal(t *testing.T) {
	food := calorieFood(100)
	meals := []model.MealEntry{
		meal("a", "2024-01-15", food, 300),
		meal("b", "2024-01-16", food, 450),
	}

	require.Equal(t, 750.0, Total(meals).TotalCalories)
	require.Zero(t, Total(nil).TotalCalories)
}
