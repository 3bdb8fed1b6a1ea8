// ABOUTME: CLI commands for inspecting and simulating the stats snapshot.
// ABOUTME: Prints the snapshot or a single dashboard projection.
package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/fitness/internal/models"
	"github.com/spf13/cobra"
)

var statsDashboard int

var statsCmd = &cobra.Command{
	Use:     "stats",
	Aliases: []string{"s"},
	Short:   "Inspect the fitness snapshot",
}

var statsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current snapshot",
	Long: `Print the current fitness snapshot.

Use --dashboard to print only the fields of one dashboard:

  1  Daily Activity   steps, calories, active minutes, sleep
  2  Cardio           steps, calories, heart rate, sleep
  3  At a Glance      steps, calories, sleep
  4  Full Report      all six fields

EXAMPLES:

  fitness stats show                 # All fields
  fitness stats show --dashboard 3   # At a Glance`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := statsSvc.Current(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get stats: %w", err)
		}

		d := models.Dashboard{Title: "Current Stats", Fields: models.AllFields}
		if statsDashboard != 0 {
			var ok bool
			d, ok = models.GetDashboard(statsDashboard)
			if !ok {
				return fmt.Errorf("unknown dashboard: %d (valid: 1-%d)", statsDashboard, len(models.Dashboards))
			}
		}

		printTiles(cmd.OutOrStdout(), d.Title, d.Project(*snap))
		return nil
	},
}

var statsSimulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Randomize activity fields",
	Long: `Overwrite steps, calories, active minutes and heart rate with random
values, the same as visiting /simulate_update. Sleep and weight are kept.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := statsSvc.SimulateUpdate(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		color.New(color.FgGreen).Fprintln(out, "✓ Data Updated!")
		printTiles(out, "", models.Dashboards[len(models.Dashboards)-1].Project(*snap))
		return nil
	},
}

func printTiles(w io.Writer, title string, tiles []models.Tile) {
	if title != "" {
		color.New(color.Bold).Fprintln(w, title)
	}
	faint := color.New(color.Faint)
	for _, t := range tiles {
		unit := ""
		if t.Unit != "" {
			unit = " " + faint.Sprint(t.Unit)
		}
		fmt.Fprintf(w, "  %s %s%s\n", padRight(t.Label, 16), t.Value, unit)
	}
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func init() {
	statsShowCmd.Flags().IntVarP(&statsDashboard, "dashboard", "d", 0, "dashboard number (1-4)")
	statsCmd.AddCommand(statsShowCmd)
	statsCmd.AddCommand(statsSimulateCmd)
	rootCmd.AddCommand(statsCmd)
}
