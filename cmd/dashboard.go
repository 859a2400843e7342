package cmd

import (
	"time"

	"github.com/inovacc/nutrilog/internal/core"
	"github.com/spf13/cobra"
)

var dashboardDate string

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show calories, macros and meals of a day",
	Long: `Show the calorie balance, macro split, goal progress and meals of a day.

Examples:
  nutrilog dashboard
  nutrilog dashboard --date 2024-01-15
  nutrilog dashboard --json`,
	Aliases: []string{"today"},
	Args:    cobra.NoArgs,
	RunE:    runDashboard,
}

func init() {
	dateFlag(dashboardCmd.Flags(), &dashboardDate, "Day to show (YYYY-MM-DD, default today)")
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	rt, err := getRuntime(cmd, true)
	if err != nil {
		return err
	}

	defer func() { _ = rt.Close() }()

	now := time.Now()
	ctx := cmd.Context()

	if _, err := rt.svc.Sync(ctx, now); err != nil {
		return err
	}

	var day core.DaySummary

	date := resolveDate(dashboardDate, now, rt.svc.Location())
	if date == resolveDate("", now, rt.svc.Location()) {
		day = rt.svc.Today(now)
	} else if day, err = rt.svc.LoadDay(ctx, date); err != nil {
		return err
	}

	if flagJSON {
		return printJSON(cmd.OutOrStdout(), day)
	}

	printDay(cmd.OutOrStdout(), day)

	return nil
}
