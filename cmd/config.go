package cmd

import (
	"fmt"

	"github.com/inovacc/nutrilog/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage nutrilog configuration",
	Long: `Commands for managing nutrilog configuration.

Values are read from config.ini in the application directory, then from a
.env file in the working directory, then from NUTRILOG_* environment
variables. Later sources win.

Available Commands:
  show   Show the effective configuration
  get    Print one value
  set    Change one value in config.ini
  path   Print the config.ini location

Keys:
  api_url, timezone, server_timezone, history_days, token_storage,
  log_level, request_timeout`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:       "get <key>",
	Short:     "Print one configuration value",
	Args:      cobra.ExactArgs(1),
	ValidArgs: config.Keys(),
	RunE:      runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one value in config.ini",
	Long: `Change one value in config.ini. Environment overrides still apply
when the configuration is loaded.

Examples:
  nutrilog config set api_url https://nutrition.example.com
  nutrilog config set timezone America/Sao_Paulo
  nutrilog config set token_storage plain`,
	Args:      cobra.ExactArgs(2),
	ValidArgs: config.Keys(),
	RunE:      runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config.ini location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		path, err := config.DefaultPath()
		if err != nil {
			return err
		}

		_, _ = fmt.Fprintln(cmd.OutOrStdout(), path)

		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd, configGetCmd, configSetCmd, configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if flagJSON {
		return printJSON(out, cfg)
	}

	items := make([]infoItem, 0, len(config.Keys()))

	for _, key := range config.Keys() {
		value, err := config.Get(cfg, key)
		if err != nil {
			return err
		}

		items = append(items, infoItem{key, value})
	}

	printInfoBox(out, "Configuration", items)

	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	value, err := config.Get(cfg, args[0])
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), value)

	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	path, err := config.DefaultPath()
	if err != nil {
		return err
	}

	cfg, err := config.LoadFile(path)
	if err != nil {
		return err
	}

	if err := config.Set(&cfg, args[0], args[1]); err != nil {
		return err
	}

	if err := config.Save(path, cfg); err != nil {
		return err
	}

	value, _ := config.Get(cfg, args[0])
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", args[0], value)

	return nil
}
