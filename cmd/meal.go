package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/inovacc/nutrilog/internal/core"
	"github.com/inovacc/nutrilog/internal/nutrition"
	"github.com/spf13/cobra"
)

var mealListDate string

var mealCmd = &cobra.Command{
	Use:     "meal",
	Aliases: []string{"meals"},
	Short:   "Record, list and remove meals",
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var mealAddCmd = &cobra.Command{
	Use:   "add <food-id> <grams>",
	Short: "Record a meal of a saved food",
	Long: `Record a meal of a saved food. The quantity is in grams; macros are
scaled from the food's values per 100 g.

Examples:
  nutrilog meal add 42 150
  nutrilog meal add 42 37.5`,
	Args: cobra.ExactArgs(2),
	RunE: runMealAdd,
}

var mealListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List the meals of a day",
	Args:    cobra.NoArgs,
	RunE:    runMealList,
}

var mealRemoveCmd = &cobra.Command{
	Use:     "remove <meal-id>",
	Aliases: []string{"rm"},
	Short:   "Remove a meal",
	Args:    cobra.ExactArgs(1),
	RunE:    runMealRemove,
}

func init() {
	dateFlag(mealListCmd.Flags(), &mealListDate, "Day to list (YYYY-MM-DD, default today)")

	mealCmd.AddCommand(mealAddCmd, mealListCmd, mealRemoveCmd)
	rootCmd.AddCommand(mealCmd)
}

func parseQuantity(s string) (float64, error) {
	q, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &core.ValidationError{Field: "quantity", Reason: fmt.Sprintf("%q is not a number", s)}
	}

	return q, core.ValidateQuantity(q)
}

func runMealAdd(cmd *cobra.Command, args []string) error {
	quantity, err := parseQuantity(args[1])
	if err != nil {
		return err
	}

	rt, err := getRuntime(cmd, true)
	if err != nil {
		return err
	}

	defer func() { _ = rt.Close() }()

	ctx := cmd.Context()

	if _, err := rt.svc.Sync(ctx, time.Now()); err != nil {
		return err
	}

	meal, err := rt.svc.AddMeal(ctx, args[0], quantity)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if flagJSON {
		return printJSON(out, meal)
	}

	m := nutrition.MealMacros(meal)
	_, _ = fmt.Fprintf(out, "Recorded %s g of %s at %s (%s kcal, P %s g, C %s g, F %s g)\n",
		nutrition.FormatOneDecimal(meal.Quantity), meal.FoodItem.Name, meal.Time,
		kcal(m.Calories), nutrition.FormatOneDecimal(m.Protein),
		nutrition.FormatOneDecimal(m.Carbs), nutrition.FormatOneDecimal(m.Fat))

	today := rt.svc.Today(time.Now())
	_, _ = fmt.Fprintf(out, "Today: %s of %d kcal\n", kcal(today.Totals.TotalCalories), today.Settings.BasalMetabolism)

	return nil
}

func runMealList(cmd *cobra.Command, _ []string) error {
	rt, err := getRuntime(cmd, true)
	if err != nil {
		return err
	}

	defer func() { _ = rt.Close() }()

	date := resolveDate(mealListDate, time.Now(), rt.svc.Location())

	day, err := rt.svc.LoadDay(cmd.Context(), date)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if flagJSON {
		return printJSON(out, day.Meals)
	}

	if len(day.Meals) == 0 {
		_, _ = fmt.Fprintf(out, "No meals on %s.\n", date)
		return nil
	}

	printMeals(out, day.Meals)

	_, _ = fmt.Fprintf(out, "\nTotal: %s kcal, P %s g, C %s g, F %s g\n",
		kcal(day.Totals.TotalCalories), nutrition.FormatOneDecimal(day.Totals.TotalProtein),
		nutrition.FormatOneDecimal(day.Totals.TotalCarbs), nutrition.FormatOneDecimal(day.Totals.TotalFat))

	return nil
}

func runMealRemove(cmd *cobra.Command, args []string) error {
	rt, err := getRuntime(cmd, true)
	if err != nil {
		return err
	}

	defer func() { _ = rt.Close() }()

	if err := rt.svc.RemoveMeal(cmd.Context(), args[0]); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Meal %s removed.\n", args[0])

	return nil
}
