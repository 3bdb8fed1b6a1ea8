// ABOUTME: CLI commands for viewing and editing the config file.
// ABOUTME: Shows effective settings and writes single keys to config.json.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/fitness/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or edit configuration",
}

var configShowCmd = &cobra.Command{
	Use:         "show",
	Short:       "Print the effective configuration",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{skipStoreAnnotation: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		faint := color.New(color.Faint)

		fmt.Fprintf(out, "%s %s\n", faint.Sprint(padRight("config file", 12)), config.GetConfigPath())
		fmt.Fprintf(out, "%s %s\n", faint.Sprint(padRight("data_dir", 12)), cfg.GetDataDir())
		fmt.Fprintf(out, "%s %s\n", faint.Sprint(padRight("database", 12)), cfg.DBPath())
		fmt.Fprintf(out, "%s %s\n", faint.Sprint(padRight("addr", 12)), cfg.GetAddr())
		fmt.Fprintf(out, "%s %s\n", faint.Sprint(padRight("log_level", 12)), cfg.GetLogLevel())
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value",
	Long: `Set a value in the config file. Environment overrides are not saved.

KEYS:

  data_dir    Directory holding fitness_data.db (supports ~)
  addr        Web server listen address
  log_level   debug, info, warn, or error

EXAMPLES:

  fitness config set addr :8080
  fitness config set data_dir ~/Dropbox/fitness`,
	Args:        cobra.ExactArgs(2),
	Annotations: map[string]string{skipStoreAnnotation: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		fileCfg, err := config.LoadFile()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := fileCfg.Set(args[0], args[1]); err != nil {
			return err
		}
		if err := fileCfg.Save(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Set %s = %s\n", args[0], args[1])
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
