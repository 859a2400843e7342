package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/inovacc/nutrilog/internal/core"
	"github.com/inovacc/nutrilog/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	foodListFilter string
	foodRemoveYes  bool
	foodFields     model.FoodItem
)

var foodCmd = &cobra.Command{
	Use:     "food",
	Aliases: []string{"foods"},
	Short:   "Manage the food database",
	Long: `Manage saved foods. Every food has its calories, protein, carbs and
fat per 100 g.

Available Commands:
  list      List saved foods
  search    Search the server's food catalog
  show      Show one food
  add       Create a food
  edit      Change a food
  remove    Delete a food
  barcode   Find a food by barcode and save it
  import    Create foods from a JSON file`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var foodListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List saved foods",
	Args:    cobra.NoArgs,
	RunE:    runFoodList,
}

var foodSearchCmd = &cobra.Command{
	Use:   "search <name>",
	Short: "Search the server's food catalog by name",
	Args:  cobra.ExactArgs(1),
	RunE:  runFoodSearch,
}

var foodShowCmd = &cobra.Command{
	Use:   "show <food-id>",
	Short: "Show a food",
	Args:  cobra.ExactArgs(1),
	RunE:  runFoodShow,
}

var foodAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a food",
	Long: `Create a food from its values per 100 g.

Examples:
  nutrilog food add --name "Chicken breast" --calories 165 --protein 31 --carbs 0 --fat 3.6
  nutrilog food add --name Oats --calories 389 --protein 16.9 --carbs 66.3 --fat 6.9 --barcode 7891000100103`,
	Args: cobra.NoArgs,
	RunE: runFoodAdd,
}

var foodEditCmd = &cobra.Command{
	Use:   "edit <food-id>",
	Short: "Change a food",
	Long: `Change the fields given as flags and keep the others.

Meals already recorded keep the values they were recorded with.

Examples:
  nutrilog food edit 42 --fat 4.1
  nutrilog food edit 42 --name "Chicken breast, grilled"`,
	Args: cobra.ExactArgs(1),
	RunE: runFoodEdit,
}

var foodRemoveCmd = &cobra.Command{
	Use:     "remove <food-id>",
	Aliases: []string{"rm"},
	Short:   "Delete a food",
	Args:    cobra.ExactArgs(1),
	RunE:    runFoodRemove,
}

var foodBarcodeCmd = &cobra.Command{
	Use:   "barcode <code>",
	Short: "Find a food by barcode and save it",
	Args:  cobra.ExactArgs(1),
	RunE:  runFoodBarcode,
}

var foodImportCmd = &cobra.Command{
	Use:   "import <file|->",
	Short: "Create foods from a JSON array",
	Long: `Create every food of a JSON array. Use - to read stdin.

Foods that fail validation or are rejected by the server are reported and
skipped.

Example file:
  [
    {"name": "Rice", "calories": 130, "protein": 2.7, "carbs": 28, "fat": 0.3},
    {"name": "Egg", "calories": 155, "protein": 13, "carbs": 1.1, "fat": 11}
  ]`,
	Args: cobra.ExactArgs(1),
	RunE: runFoodImport,
}

func init() {
	foodListCmd.Flags().StringVarP(&foodListFilter, "filter", "f", "", "Only foods whose name contains this text")
	foodRemoveCmd.Flags().BoolVarP(&foodRemoveYes, "yes", "y", false, "Do not ask for confirmation")

	addFoodFlags(foodAddCmd.Flags())
	addFoodFlags(foodEditCmd.Flags())
	_ = foodAddCmd.MarkFlagRequired("name")

	foodCmd.AddCommand(foodListCmd, foodSearchCmd, foodShowCmd, foodAddCmd, foodEditCmd,
		foodRemoveCmd, foodBarcodeCmd, foodImportCmd)
	rootCmd.AddCommand(foodCmd)
}

var foodFlagNames = []string{"name", "calories", "protein", "carbs", "fat", "serving", "barcode"}

func addFoodFlags(fs *pflag.FlagSet) {
	fs.StringVar(&foodFields.Name, "name", "", "Food name")
	fs.Float64Var(&foodFields.Calories, "calories", 0, "kcal per 100 g")
	fs.Float64Var(&foodFields.Protein, "protein", 0, "Protein grams per 100 g")
	fs.Float64Var(&foodFields.Carbs, "carbs", 0, "Carbohydrate grams per 100 g")
	fs.Float64Var(&foodFields.Fat, "fat", 0, "Fat grams per 100 g")
	fs.StringVar(&foodFields.ServingSize, "serving", model.DefaultServingSize, "Reference unit")
	fs.StringVar(&foodFields.Barcode, "barcode", "", "Barcode digits")
}

// mergeFoodFlags copies the flags that were set onto food.
func mergeFoodFlags(fs *pflag.FlagSet, food model.FoodItem) model.FoodItem {
	if fs.Changed("name") {
		food.Name = foodFields.Name
	}

	if fs.Changed("calories") {
		food.Calories = foodFields.Calories
	}

	if fs.Changed("protein") {
		food.Protein = foodFields.Protein
	}

	if fs.Changed("carbs") {
		food.Carbs = foodFields.Carbs
	}

	if fs.Changed("fat") {
		food.Fat = foodFields.Fat
	}

	if fs.Changed("serving") {
		food.ServingSize = foodFields.ServingSize
	}

	if fs.Changed("barcode") {
		food.Barcode = foodFields.Barcode
	}

	return food
}

func runFoodList(cmd *cobra.Command, _ []string) error {
	rt, err := getRuntime(cmd, true)
	if err != nil {
		return err
	}

	defer func() { _ = rt.Close() }()

	if _, err := rt.svc.Sync(cmd.Context(), time.Now()); err != nil {
		return err
	}

	foods := rt.svc.FilterFoods(foodListFilter)
	out := cmd.OutOrStdout()

	if flagJSON {
		return printJSON(out, foods)
	}

	if len(foods) == 0 {
		if foodListFilter != "" {
			_, _ = fmt.Fprintf(out, "No foods match %q.\n", foodListFilter)
			return nil
		}

		printEmptyResult(out, "foods", "nutrilog food add --name <name> --calories <kcal> ...")

		return nil
	}

	printFoods(out, foods)

	return nil
}

func runFoodSearch(cmd *cobra.Command, args []string) error {
	rt, err := getRuntime(cmd, true)
	if err != nil {
		return err
	}

	defer func() { _ = rt.Close() }()

	foods, err := rt.svc.SearchRemote(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if flagJSON {
		return printJSON(out, foods)
	}

	if len(foods) == 0 {
		_, _ = fmt.Fprintf(out, "Nothing found for %q.\n", args[0])
		return nil
	}

	printFoods(out, foods)

	return nil
}

func runFoodShow(cmd *cobra.Command, args []string) error {
	rt, err := getRuntime(cmd, true)
	if err != nil {
		return err
	}

	defer func() { _ = rt.Close() }()

	food, err := rt.svc.GetFood(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(cmd.OutOrStdout(), food)
	}

	printFood(cmd.OutOrStdout(), food)

	return nil
}

func runFoodAdd(cmd *cobra.Command, _ []string) error {
	food := mergeFoodFlags(cmd.Flags(), model.FoodItem{ServingSize: model.DefaultServingSize})
	if err := core.ValidateFood(food); err != nil {
		return err
	}

	rt, err := getRuntime(cmd, true)
	if err != nil {
		return err
	}

	defer func() { _ = rt.Close() }()

	created, err := rt.svc.CreateFood(cmd.Context(), food)
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(cmd.OutOrStdout(), created)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Food %s created with id %s.\n", created.Name, created.ID)

	return nil
}

func runFoodEdit(cmd *cobra.Command, args []string) error {
	if !anyChanged(cmd.Flags(), foodFlagNames...) {
		return errors.New("nothing to change, pass at least one of --name, --calories, --protein, --carbs, --fat, --serving, --barcode")
	}

	rt, err := getRuntime(cmd, true)
	if err != nil {
		return err
	}

	defer func() { _ = rt.Close() }()

	ctx := cmd.Context()

	current, err := rt.svc.GetFood(ctx, args[0])
	if err != nil {
		return err
	}

	updated, err := rt.svc.UpdateFood(ctx, args[0], mergeFoodFlags(cmd.Flags(), current))
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(cmd.OutOrStdout(), updated)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Food %s updated.\n", updated.ID)

	return nil
}

func runFoodRemove(cmd *cobra.Command, args []string) error {
	rt, err := getRuntime(cmd, true)
	if err != nil {
		return err
	}

	defer func() { _ = rt.Close() }()

	ctx := cmd.Context()

	if !foodRemoveYes {
		food, err := rt.svc.GetFood(ctx, args[0])
		if err != nil {
			return err
		}

		if !promptConfirm(stdin, cmd.ErrOrStderr(), fmt.Sprintf("Delete %s (%s)? [y/N]: ", food.Name, food.ID)) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
			return nil
		}
	}

	if err := rt.svc.RemoveFood(ctx, args[0]); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Food %s removed.\n", args[0])

	return nil
}

func runFoodBarcode(cmd *cobra.Command, args []string) error {
	if err := core.ValidateBarcode(args[0]); err != nil {
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

	food, added, err := rt.svc.LookupBarcode(ctx, args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if flagJSON {
		return printJSON(out, struct {
			Food  model.FoodItem `json:"food"`
			Added bool           `json:"added"`
		}{food, added})
	}

	printFood(out, food)

	if added {
		_, _ = fmt.Fprintln(out, "Added to your foods.")
	} else {
		_, _ = fmt.Fprintln(out, "Already in your foods.")
	}

	return nil
}

func runFoodImport(cmd *cobra.Command, args []string) error {
	var r io.Reader = cmd.InOrStdin()

	if args[0] != "-" {
		path, err := expandPath(args[0])
		if err != nil {
			return err
		}

		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", path, err)
		}

		defer func() { _ = f.Close() }()

		r = f
	}

	rt, err := getRuntime(cmd, true)
	if err != nil {
		return err
	}

	defer func() { _ = rt.Close() }()

	result, err := rt.svc.ImportFoods(cmd.Context(), r)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if flagJSON {
		return printJSON(out, result)
	}

	_, _ = fmt.Fprintf(out, "Imported %d foods.\n", len(result.Created))

	for _, f := range result.Failed {
		_, _ = fmt.Fprintf(out, "  #%d %s: %s\n", f.Index, f.Name, f.Error)
	}

	if len(result.Failed) > 0 {
		return fmt.Errorf("%d foods not imported", len(result.Failed))
	}

	return nil
}
