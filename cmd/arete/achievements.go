// ABOUTME: CLI commands for viewing and claiming achievements.
// ABOUTME: Shows unlock progress for locked achievements.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/arete/internal/achievements"
	"github.com/harperreed/arete/internal/models"
	"github.com/spf13/cobra"
)

var achievementsCmd = &cobra.Command{
	Use:     "achievements",
	Aliases: []string{"a"},
	Short:   "List achievements and unlock progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		progress, err := eng.GetProgress(cmd.Context(), userID)
		if err != nil {
			return fmt.Errorf("failed to get progress: %w", err)
		}
		tasks, err := eng.ListTasks(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list tasks: %w", err)
		}

		snapshot := achievements.Snapshot{Progress: progress}
		for _, t := range tasks {
			if t.BestStreak > snapshot.BestStreak {
				snapshot.BestStreak = t.BestStreak
			}
			snapshot.TotalCompletions += t.TotalCompletions
		}

		faint := color.New(color.Faint)
		for _, def := range eng.Definitions() {
			state, unlocked := progress.Achievements[def.ID]
			switch {
			case unlocked && state.Status == models.AchievementClaimed:
				fmt.Printf("%s %s %s %s\n",
					color.GreenString("✓"), def.Icon, padRight(def.Title, 22), faint.Sprint("claimed"))
			case unlocked:
				fmt.Printf("%s %s %s %s\n",
					color.YellowString("!"), def.Icon, padRight(def.Title, 22),
					color.YellowString("unlocked — claim with: arete achievements claim %s", def.ID))
			default:
				pct := achievements.UnlockProgress(def, snapshot)
				fmt.Printf("  %s %s %s\n",
					def.Icon, padRight(def.Title, 22), faint.Sprintf("%.0f%% — %s", pct, def.Description))
			}
		}
		return nil
	},
}

var achievementsClaimCmd = &cobra.Command{
	Use:   "claim <id>",
	Short: "Claim an unlocked achievement",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := eng.ClaimAchievement(cmd.Context(), userID, args[0]); err != nil {
			return fmt.Errorf("failed to claim achievement: %w", err)
		}
		color.Green("✓ Claimed achievement: %s", args[0])
		return nil
	},
}

func init() {
	achievementsCmd.AddCommand(achievementsClaimCmd)
	rootCmd.AddCommand(achievementsCmd)
}
