// ABOUTME: CLI command showing level, XP, and category progress.
// ABOUTME: Also hosts shared award-output helpers for other commands.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/arete/internal/engine"
	"github.com/harperreed/arete/internal/models"
	"github.com/harperreed/arete/internal/xp"
	"github.com/spf13/cobra"
)

var progressCmd = &cobra.Command{
	Use:     "progress",
	Aliases: []string{"p"},
	Short:   "Show level, XP, and category progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := eng.GetProgress(cmd.Context(), userID)
		if err != nil {
			return fmt.Errorf("failed to get progress: %w", err)
		}

		bold := color.New(color.Bold)
		faint := color.New(color.Faint)

		bold.Printf("Level %d", p.Level)
		fmt.Printf("  %d XP", p.TotalXP)
		faint.Printf("  (%d to next level, %d%%)\n",
			xp.XPToNextLevel(p.TotalXP, p.Level),
			xp.ProgressPercent(p.TotalXP, p.Level))
		fmt.Println()

		for _, c := range models.AllCategories {
			stats := xp.GetCategoryStatistics(p, c)
			line := fmt.Sprintf("%s lvl %d  %d XP  %s",
				padRight(string(c), 6), stats.Level, stats.XP, stats.Rank)
			if stats.NextRank != "" {
				line += faint.Sprintf("  (%.0f%% to %s)", stats.PercentToNextRank, stats.NextRank)
			}
			fmt.Println(line)
		}

		if bw := p.LatestBodyweight(); bw != nil {
			fmt.Println()
			faint.Printf("bodyweight %.1f %s (%s)\n", bw.Weight, bw.Unit, bw.Date.Format("2006-01-02"))
		}
		return nil
	},
}

// printAwardDetail prints level-ups, milestones, and unlocks from an award.
func printAwardDetail(result *engine.AwardResult) {
	if result.LeveledUp {
		color.Yellow("★ Level up! Now level %d", result.CurrentLevel)
	}
	if result.Category != nil && result.Category.Milestone != "" {
		color.Yellow("★ Milestone reached: %s", result.Category.Milestone)
	}
	if result.Achievements != nil {
		for _, a := range result.Achievements.Unlocked {
			color.Yellow("🏆 Achievement unlocked: %s %s (+%d XP)", a.Icon, a.Title, a.XPReward)
		}
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func init() {
	rootCmd.AddCommand(progressCmd)
}
