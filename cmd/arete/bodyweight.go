// ABOUTME: CLI commands for bodyweight logging and history.
// ABOUTME: Bodyweight entries are measurements only; they award no XP.
package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	bodyweightUnit  string
	bodyweightNotes string
)

var bodyweightCmd = &cobra.Command{
	Use:     "bodyweight [weight]",
	Aliases: []string{"bw"},
	Short:   "Log a bodyweight entry or show recent entries",
	Long: `Log a bodyweight measurement, or show recent entries when called
without arguments. Bodyweight feeds set XP calculations but awards no
XP itself.

Examples:
  arete bodyweight 82.5
  arete bodyweight 181.2 --unit lbs --notes "morning, fasted"
  arete bodyweight`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return showBodyweight(cmd)
		}
		weight, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid weight %q: %w", args[0], err)
		}
		if err := eng.LogBodyweight(cmd.Context(), userID, weight, bodyweightUnit, bodyweightNotes); err != nil {
			return fmt.Errorf("failed to log bodyweight: %w", err)
		}
		unit := bodyweightUnit
		if unit == "" {
			unit = "kg"
		}
		color.Green("✓ Logged bodyweight: %.1f %s", weight, unit)
		return nil
	},
}

func showBodyweight(cmd *cobra.Command) error {
	progress, err := eng.GetProgress(cmd.Context(), userID)
	if err != nil {
		return fmt.Errorf("failed to get progress: %w", err)
	}
	if len(progress.Bodyweight) == 0 {
		fmt.Println("No bodyweight entries yet.")
		return nil
	}

	entries := progress.Bodyweight
	if len(entries) > 10 {
		entries = entries[len(entries)-10:]
	}
	faint := color.New(color.Faint)
	for _, entry := range entries {
		line := fmt.Sprintf("%s  %.1f %s", entry.Date.Format("2006-01-02"), entry.Weight, entry.Unit)
		if entry.Notes != "" {
			line += "  " + faint.Sprint(entry.Notes)
		}
		fmt.Println(line)
	}
	return nil
}

func init() {
	bodyweightCmd.Flags().StringVar(&bodyweightUnit, "unit", "", "Weight unit (default kg)")
	bodyweightCmd.Flags().StringVar(&bodyweightNotes, "notes", "", "Optional note for this entry")
	rootCmd.AddCommand(bodyweightCmd)
}
