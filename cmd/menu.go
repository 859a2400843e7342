package cmd

import (
	"github.com/inovacc/nutrilog/internal/cli"
	"github.com/spf13/cobra"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Open the interactive dashboard",
	Long: `Open the interactive dashboard.

Screens: dashboard, add food, barcode, food database, history and settings.
Switch with tab/shift+tab or the number keys, quit with q or ctrl+c.`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func init() {
	rootCmd.AddCommand(menuCmd)
}

func runMenu(cmd *cobra.Command, _ []string) error {
	rt, err := getRuntime(cmd, true)
	if err != nil {
		return err
	}

	defer func() { _ = rt.Close() }()

	return cli.Run(rt.svc, cli.AppOptions{
		Context:     cmd.Context(),
		HistoryDays: rt.cfg.HistoryDays,
	})
}
