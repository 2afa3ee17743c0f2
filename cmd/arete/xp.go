// ABOUTME: CLI commands for direct XP operations: manual awards, history,
// ABOUTME: and compaction of old transactions into daily summaries.
package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	xpCategory    string
	xpSource      string
	xpDetails     string
	xpHistoryDays int
	xpRollupDays  int
)

var xpCmd = &cobra.Command{
	Use:   "xp",
	Short: "Direct XP operations",
}

var xpAwardCmd = &cobra.Command{
	Use:   "award <amount>",
	Short: "Manually award XP",
	Long: `Manually credit XP, optionally against a movement category.

Examples:
  arete xp award 50
  arete xp award 30 --category legs --details "trail run"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("amount must be a number: %s", args[0])
		}

		result, err := eng.AwardXP(cmd.Context(), userID, amount, xpSource, xpCategory, xpDetails)
		if err != nil {
			return fmt.Errorf("failed to award xp: %w", err)
		}

		color.Green("✓ Awarded %d XP (total: %d, level %d)", result.XPAdded, result.TotalXP, result.CurrentLevel)
		printAwardDetail(result)
		return nil
	},
}

var xpHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the XP timeline by day",
	RunE: func(cmd *cobra.Command, args []string) error {
		to := time.Now()
		from := to.AddDate(0, 0, -xpHistoryDays)

		timeline, err := eng.XPTimeline(cmd.Context(), userID, from, to)
		if err != nil {
			return fmt.Errorf("failed to get timeline: %w", err)
		}

		if len(timeline) == 0 {
			fmt.Println("No XP earned in this window.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, day := range timeline {
			fmt.Printf("%s  %+d XP\n", faint.Sprint(day.Date.Format("2006-01-02")), day.TotalXP)
		}
		return nil
	},
}

var xpRollupCmd = &cobra.Command{
	Use:   "rollup",
	Short: "Compact old XP transactions into daily summaries",
	Long: `Roll XP transactions older than the cutoff into per-day summaries.

Totals and levels are unaffected; only the transaction-level detail is
folded away. Useful for keeping long-lived progress documents small.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cutoff := time.Now().AddDate(0, 0, -xpRollupDays)

		compacted, err := eng.CompactHistory(cmd.Context(), userID, cutoff)
		if err != nil {
			return fmt.Errorf("failed to compact history: %w", err)
		}

		if compacted == 0 {
			fmt.Println("Nothing to compact.")
			return nil
		}
		color.Green("✓ Compacted %d transactions into daily summaries", compacted)
		return nil
	},
}

func init() {
	xpAwardCmd.Flags().StringVarP(&xpCategory, "category", "c", "", "movement category (core, push, pull, legs)")
	xpAwardCmd.Flags().StringVarP(&xpSource, "source", "s", "manual", "event source tag")
	xpAwardCmd.Flags().StringVar(&xpDetails, "details", "", "free text details")
	xpHistoryCmd.Flags().IntVarP(&xpHistoryDays, "days", "n", 30, "days of history to show")
	xpRollupCmd.Flags().IntVar(&xpRollupDays, "older-than", 90, "compact transactions older than this many days")

	xpCmd.AddCommand(xpAwardCmd)
	xpCmd.AddCommand(xpHistoryCmd)
	xpCmd.AddCommand(xpRollupCmd)
	rootCmd.AddCommand(xpCmd)
}
