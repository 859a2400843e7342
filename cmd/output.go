package cmd

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/inovacc/nutrilog/internal/core"
	"github.com/inovacc/nutrilog/internal/model"
	"github.com/inovacc/nutrilog/internal/nutrition"
)

func kcal(v float64) string {
	return strconv.FormatFloat(v, 'f', 0, 64)
}

func signedKcal(v float64) string {
	if v > 0 {
		return "+" + kcal(v)
	}

	return kcal(v)
}

func printFoods(w io.Writer, foods []model.FoodItem) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tNAME\tKCAL\tPROTEIN\tCARBS\tFAT\tBARCODE")

	for _, f := range foods {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			f.ID, truncateString(f.Name, 32), kcal(f.Calories),
			nutrition.FormatOneDecimal(f.Protein), nutrition.FormatOneDecimal(f.Carbs), nutrition.FormatOneDecimal(f.Fat),
			f.Barcode)
	}

	_ = tw.Flush()
}

func printFood(w io.Writer, f model.FoodItem) {
	items := []infoItem{
		{"ID", f.ID},
		{"Calories", kcal(f.Calories) + " kcal"},
		{"Protein", nutrition.FormatOneDecimal(f.Protein) + " g"},
		{"Carbs", nutrition.FormatOneDecimal(f.Carbs) + " g"},
		{"Fat", nutrition.FormatOneDecimal(f.Fat) + " g"},
		{"Per", f.ServingSize},
	}

	if f.Barcode != "" {
		items = append(items, infoItem{"Barcode", f.Barcode})
	}

	printInfoBox(w, f.Name, items)
}

func printMeals(w io.Writer, meals []core.MealView) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tTIME\tFOOD\tGRAMS\tKCAL\tPROTEIN\tCARBS\tFAT")

	for _, mv := range meals {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			mv.Meal.ID, mv.Meal.Time, truncateString(mv.Meal.FoodItem.Name, 32),
			nutrition.FormatOneDecimal(mv.Meal.Quantity), kcal(mv.Macros.Calories),
			nutrition.FormatOneDecimal(mv.Macros.Protein), nutrition.FormatOneDecimal(mv.Macros.Carbs),
			nutrition.FormatOneDecimal(mv.Macros.Fat))
	}

	_ = tw.Flush()
}

func goalText(g nutrition.GoalProgress) string {
	if g.Goal <= 0 {
		return nutrition.FormatOneDecimal(g.Value) + " g (no goal)"
	}

	s := fmt.Sprintf("%s / %s g (%s%%)", nutrition.FormatOneDecimal(g.Value), nutrition.FormatOneDecimal(g.Goal),
		nutrition.FormatOneDecimal(g.Percent))
	if g.Over {
		s += " over"
	}

	return s
}

func printDay(w io.Writer, day core.DaySummary) {
	ev := day.Evaluation

	state := "surplus"
	if ev.IsDeficit {
		state = "deficit"
	}

	printInfoBox(w, day.Date, []infoItem{
		{"Consumed", fmt.Sprintf("%s of %d kcal (%s%%)", kcal(day.Totals.TotalCalories), day.Settings.BasalMetabolism,
			nutrition.FormatOneDecimal(ev.ProgressPercent))},
		{"Balance", fmt.Sprintf("%s kcal (%s)", signedKcal(ev.Balance), state)},
		{"Macro split", fmt.Sprintf("P %s%% / C %s%% / F %s%%", nutrition.FormatTwoDecimals(ev.Macros.Protein),
			nutrition.FormatTwoDecimals(ev.Macros.Carbs), nutrition.FormatTwoDecimals(ev.Macros.Fat))},
		{"Protein", goalText(ev.Goals.Protein)},
		{"Carbs", goalText(ev.Goals.Carbs)},
		{"Fat", goalText(ev.Goals.Fat)},
	})

	if len(day.Meals) == 0 {
		_, _ = fmt.Fprintln(w, "\nNo meals recorded.")
		return
	}

	_, _ = fmt.Fprintln(w)
	printMeals(w, day.Meals)
}

func printSettings(w io.Writer, s model.UserSettings) {
	goal := func(v float64) string {
		if v <= 0 {
			return "not set"
		}

		return nutrition.FormatOneDecimal(v) + " g/day"
	}

	printInfoBox(w, "Settings", []infoItem{
		{"Basal metabolism", strconv.Itoa(s.BasalMetabolism) + " kcal/day"},
		{"Protein goal", goal(s.ProteinGoal)},
		{"Carbs goal", goal(s.CarbsGoal)},
		{"Fat goal", goal(s.FatGoal)},
	})
}

// historyHeader is shared by the table and the CSV export.
var historyHeader = []string{"date", "calories", "basal", "balance", "protein", "carbs", "fat"}

func historyRecord(d core.DaySummary) []string {
	return []string{
		d.Date,
		kcal(d.Totals.TotalCalories),
		strconv.Itoa(d.Settings.BasalMetabolism),
		signedKcal(d.Evaluation.Balance),
		nutrition.FormatOneDecimal(d.Totals.TotalProtein),
		nutrition.FormatOneDecimal(d.Totals.TotalCarbs),
		nutrition.FormatOneDecimal(d.Totals.TotalFat),
	}
}

func printHistory(w io.Writer, days []core.DaySummary) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	_, _ = fmt.Fprintln(tw, "DATE\tKCAL\tBASAL\tBALANCE\tPROTEIN\tCARBS\tFAT\t")

	for _, d := range days {
		rec := historyRecord(d)
		for _, field := range rec {
			_, _ = fmt.Fprint(tw, field, "\t")
		}

		_, _ = fmt.Fprintln(tw)
	}

	_ = tw.Flush()
}
