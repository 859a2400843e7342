package nutrition

import (
	"math"

	"github.com/inovacc/nutrilog/internal/model"
)

// MacroSplit holds each macro's share of total macro mass, in percent.
type MacroSplit struct {
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fat     float64 `json:"fat"`
}

// GoalProgress is the state of one goal bar.
type GoalProgress struct {
	Value   float64 `json:"value"`
	Goal    float64 `json:"goal"`
	Percent float64 `json:"percent"`
	Over    bool    `json:"over"`
}

// Goals groups the three macro goal bars.
type Goals struct {
	Protein GoalProgress `json:"protein"`
	Carbs   GoalProgress `json:"carbs"`
	Fat     GoalProgress `json:"fat"`
}

// Evaluation compares a day's totals with the user's targets.
type Evaluation struct {
	// Balance is consumed minus basal metabolism; negative is a deficit
	Balance float64 `json:"balance"`

	// IsDeficit is true when Balance <= 0, zero included
	IsDeficit bool `json:"is_deficit"`

	// ProgressPercent is consumption relative to basal, capped at 100
	ProgressPercent float64 `json:"progress_percent"`

	Macros MacroSplit `json:"macros"`
	Goals  Goals      `json:"goals"`
}

// Evaluate computes balance, progress, macro split and goal bars.
func Evaluate(totals model.DailyTotals, settings model.UserSettings) Evaluation {
	balance := totals.TotalCalories - float64(settings.BasalMetabolism)

	return Evaluation{
		Balance:         balance,
		IsDeficit:       balance <= 0,
		ProgressPercent: CalorieProgress(totals.TotalCalories, settings.BasalMetabolism),
		Macros:          MacroPercentages(totals.TotalProtein, totals.TotalCarbs, totals.TotalFat),
		Goals: Goals{
			Protein: Progress(totals.TotalProtein, settings.ProteinGoal),
			Carbs:   Progress(totals.TotalCarbs, settings.CarbsGoal),
			Fat:     Progress(totals.TotalFat, settings.FatGoal),
		},
	}
}

// CalorieProgress is calories/basal*100 clamped to [0, 100]; 0 when basal <= 0.
func CalorieProgress(calories float64, basal int) float64 {
	if basal <= 0 || !isFinite(calories) {
		return 0
	}

	return clamp(calories/float64(basal)*100, 0, 100)
}

// MacroPercentages splits by grams, not by calories: a gram of fat counts the
// same as a gram of protein. All zero when there is no macro mass.
func MacroPercentages(protein, carbs, fat float64) MacroSplit {
	total := protein + carbs + fat
	if !isFinite(total) || total <= 0 {
		return MacroSplit{}
	}

	return MacroSplit{
		Protein: protein / total * 100,
		Carbs:   carbs / total * 100,
		Fat:     fat / total * 100,
	}
}

// Progress computes a goal bar. A goal of zero disables the bar.
func Progress(value, goal float64) GoalProgress {
	p := GoalProgress{Value: value, Goal: goal}

	if goal > 0 && isFinite(value) {
		p.Percent = math.Min(value/goal*100, 100)
		p.Over = value > goal
	}

	return p
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
