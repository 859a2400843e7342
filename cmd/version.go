package cmd

import (
	"fmt"
	goruntime "runtime"

	"github.com/inovacc/nutrilog/internal/application"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if flagJSON {
			return printJSON(cmd.OutOrStdout(), map[string]string{
				"name":    application.AppName,
				"version": application.Version,
				"go":      goruntime.Version(),
				"os":      goruntime.GOOS + "/" + goruntime.GOARCH,
			})
		}

		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s, %s/%s)\n",
			application.AppName, application.Version, goruntime.Version(), goruntime.GOOS, goruntime.GOARCH)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
