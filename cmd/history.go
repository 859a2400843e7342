package cmd

import (
	"fmt"
	"time"

	"github.com/inovacc/nutrilog/internal/core"
	"github.com/inovacc/nutrilog/internal/encoding"
	"github.com/spf13/cobra"
)

var (
	historyDays   int
	historyRemote bool
	historyExport string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show daily totals for the last days",
	Long: `Show calories, balance and macros for each of the last days, newest first.

By default the totals are computed from your meals. With --remote the
server's dashboard range is used instead.

--export writes the rows to a file; a .csv extension selects CSV, anything
else JSON.

Examples:
  nutrilog history
  nutrilog history --days 30
  nutrilog history --remote --export ~/history.csv`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyDays, "days", "d", 0, "Number of days (default from config history_days)")
	historyCmd.Flags().BoolVar(&historyRemote, "remote", false, "Use the server's totals")
	historyCmd.Flags().StringVarP(&historyExport, "export", "o", "", "Write the history to a JSON or CSV file")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	rt, err := getRuntime(cmd, true)
	if err != nil {
		return err
	}

	defer func() { _ = rt.Close() }()

	days := historyDays
	if days == 0 {
		days = rt.cfg.HistoryDays
	}

	now := time.Now()
	ctx := cmd.Context()

	var summaries []core.DaySummary

	if historyRemote {
		if _, err := rt.svc.LoadSettings(ctx); err != nil {
			return err
		}

		summaries, err = rt.svc.RemoteHistory(ctx, now, days)
	} else {
		if _, err := rt.svc.Sync(ctx, now); err != nil {
			return err
		}

		summaries, err = rt.svc.History(ctx, now, days)
	}

	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if historyExport != "" {
		path, err := exportHistory(historyExport, summaries)
		if err != nil {
			return err
		}

		rt.logger.Info("history exported", "path", path, "days", len(summaries))
		_, _ = fmt.Fprintf(out, "Exported %d days to %s\n", len(summaries), path)

		return nil
	}

	if flagJSON {
		return printJSON(out, summaries)
	}

	printHistory(out, summaries)

	return nil
}

func exportHistory(target string, summaries []core.DaySummary) (string, error) {
	path, err := expandPath(target)
	if err != nil {
		return "", err
	}

	switch encoding.FormatFromPath(path) {
	case encoding.FormatCSV:
		rows := make([][]string, 0, len(summaries))
		for _, d := range summaries {
			rows = append(rows, historyRecord(d))
		}

		err = encoding.SaveCSV(path, historyHeader, rows)
	default:
		err = encoding.SaveJSON(path, summaries)
	}

	if err != nil {
		return "", fmt.Errorf("failed to export history: %w", err)
	}

	return path, nil
}
