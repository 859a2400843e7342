package cmd

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/inovacc/nutrilog/internal/cli"
	"github.com/inovacc/nutrilog/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var settingsFields model.UserSettings

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change your daily targets",
	Long: `Show or change your daily targets: basal metabolism in kcal and
protein, carbs and fat goals in grams. A goal of 0 means no goal.

Available Commands:
  show   Show the current targets
  set    Change targets from flags
  edit   Change targets in a form`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current targets",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change targets from flags",
	Long: `Change the targets given as flags and keep the others.

Examples:
  nutrilog settings set --basal 2100
  nutrilog settings set --protein 140 --carbs 220 --fat 70`,
	Args: cobra.NoArgs,
	RunE: runSettingsSet,
}

var settingsEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Change targets in an interactive form",
	Args:  cobra.NoArgs,
	RunE:  runSettingsEdit,
}

func init() {
	fs := settingsSetCmd.Flags()
	fs.IntVar(&settingsFields.BasalMetabolism, "basal", 0, "Basal metabolism in kcal/day")
	fs.Float64Var(&settingsFields.ProteinGoal, "protein", 0, "Protein goal in g/day")
	fs.Float64Var(&settingsFields.CarbsGoal, "carbs", 0, "Carbohydrate goal in g/day")
	fs.Float64Var(&settingsFields.FatGoal, "fat", 0, "Fat goal in g/day")

	settingsCmd.AddCommand(settingsShowCmd, settingsSetCmd, settingsEditCmd)
	rootCmd.AddCommand(settingsCmd)
}

// mergeSettingsFlags copies the flags that were set onto s.
func mergeSettingsFlags(fs *pflag.FlagSet, s model.UserSettings) model.UserSettings {
	if fs.Changed("basal") {
		s.BasalMetabolism = settingsFields.BasalMetabolism
	}

	if fs.Changed("protein") {
		s.ProteinGoal = settingsFields.ProteinGoal
	}

	if fs.Changed("carbs") {
		s.CarbsGoal = settingsFields.CarbsGoal
	}

	if fs.Changed("fat") {
		s.FatGoal = settingsFields.FatGoal
	}

	return s
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	rt, err := getRuntime(cmd, true)
	if err != nil {
		return err
	}

	defer func() { _ = rt.Close() }()

	settings, err := rt.svc.LoadSettings(cmd.Context())
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(cmd.OutOrStdout(), settings)
	}

	printSettings(cmd.OutOrStdout(), settings)

	return nil
}

func runSettingsSet(cmd *cobra.Command, _ []string) error {
	if !anyChanged(cmd.Flags(), "basal", "protein", "carbs", "fat") {
		return errors.New("nothing to change, pass at least one of --basal, --protein, --carbs, --fat")
	}

	rt, err := getRuntime(cmd, true)
	if err != nil {
		return err
	}

	defer func() { _ = rt.Close() }()

	ctx := cmd.Context()

	current, err := rt.svc.LoadSettings(ctx)
	if err != nil {
		return err
	}

	saved, err := rt.svc.SaveSettings(ctx, mergeSettingsFlags(cmd.Flags(), current))
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(cmd.OutOrStdout(), saved)
	}

	printSettings(cmd.OutOrStdout(), saved)

	return nil
}

func runSettingsEdit(cmd *cobra.Command, _ []string) error {
	rt, err := getRuntime(cmd, true)
	if err != nil {
		return err
	}

	defer func() { _ = rt.Close() }()

	ctx := cmd.Context()

	if _, err := rt.svc.LoadSettings(ctx); err != nil {
		return err
	}

	form := cli.NewSettingsForm(rt.svc, cli.AppOptions{Context: ctx})

	if _, err := tea.NewProgram(form, tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("failed to run settings form: %w", err)
	}

	if !form.Saved {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No changes saved.")
		return nil
	}

	printSettings(cmd.OutOrStdout(), form.Settings())

	return nil
}
