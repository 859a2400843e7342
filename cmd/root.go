package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/inovacc/nutrilog/internal/application"
	"github.com/spf13/cobra"
)

var (
	flagAPIURL  string
	flagToken   string
	flagJSON    bool
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   application.AppName,
	Short: "Track calories and macros against your daily targets",
	Long: `nutrilog is a terminal client for a nutrition tracking API.

It keeps a database of foods with their macros per 100 g, records meals,
and compares each day's calories with your basal metabolism and macro goals.

Run 'nutrilog' without a command to open the interactive dashboard.`,
	SilenceUsage: true,
	RunE:         runMenu,
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// GetRootCmd returns the root command for introspection purposes.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagAPIURL, "api-url", "", "API base URL (overrides config and NUTRILOG_API_URL)")
	pf.StringVar(&flagToken, "token", "", "Bearer token (overrides NUTRILOG_TOKEN and the stored session)")
	pf.BoolVar(&flagJSON, "json", false, "Output as JSON (logs become JSON too)")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug messages to stderr")
}
