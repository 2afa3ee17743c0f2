// ABOUTME: CLI statistics commands over the task collection.
// ABOUTME: Streak summaries, category distribution, completion rate, trends.
package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/arete/internal/stats"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Statistics over your tasks and streaks",
	Long: `Aggregate statistics computed from your task collection.

Subcommands:
  streaks     Current and best streak summary across all tasks
  categories  Task distribution by category label
  completion  Recurrence-aware completion rate for a period
  trend       Activity per life domain (ethos, trophe, soma)`,
}

var statsStreaksCmd = &cobra.Command{
	Use:   "streaks",
	Short: "Current and best streak summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		tasks, err := eng.ListTasks(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list tasks: %w", err)
		}
		if len(tasks) == 0 {
			fmt.Println("No tasks yet.")
			return nil
		}

		summary := stats.StreakSummary(tasks)
		fmt.Println(color.New(color.Bold).Sprint("Current streaks"))
		printStreakGroup(summary.CurrentStreaks)
		fmt.Println(color.New(color.Bold).Sprint("Best streaks"))
		printStreakGroup(summary.BestStreaks)
		return nil
	},
}

var statsCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Task distribution by category",
	RunE: func(cmd *cobra.Command, args []string) error {
		tasks, err := eng.ListTasks(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list tasks: %w", err)
		}
		dist := stats.CategoryDistribution(tasks)
		if len(dist) == 0 {
			fmt.Println("No tasks yet.")
			return nil
		}
		for _, cc := range dist {
			name := cc.Category
			if name == "" {
				name = "(none)"
			}
			fmt.Printf("%s %d tasks, %d active, %.0f%% completion\n",
				padRight(name, 14), cc.Count, cc.CompletedCount, cc.CompletionRate)
		}
		return nil
	},
}

var statsPeriod string

var statsCompletionCmd = &cobra.Command{
	Use:   "completion",
	Short: "Completion rate for a period",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !stats.IsValidPeriod(statsPeriod) {
			return fmt.Errorf("invalid period %q (use day, week, month, or year)", statsPeriod)
		}
		tasks, err := eng.ListTasks(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list tasks: %w", err)
		}
		result := stats.CompletionRate(tasks, stats.Period(statsPeriod))
		fmt.Printf("%s: %d/%d due tasks completed (%.1f%%)\n",
			result.Period, result.Completed, result.Total, result.Rate)
		fmt.Println(color.New(color.Faint).Sprintf("%s — %s",
			result.StartDate.Format("2006-01-02"), result.EndDate.Format("2006-01-02")))
		return nil
	},
}

var statsTrendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Activity per life domain",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !stats.IsValidPeriod(statsPeriod) {
			return fmt.Errorf("invalid period %q (use day, week, month, or year)", statsPeriod)
		}
		tasks, err := eng.ListTasks(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list tasks: %w", err)
		}
		period := stats.Period(statsPeriod)
		from, to := period.Bounds(time.Now().UTC())
		result := stats.PerformanceTrend(tasks, period, from, to)
		for _, d := range result.Domains {
			fmt.Printf("%s %d tasks, %d completions\n",
				padRight(string(d.Domain), 8), d.TaskCount, d.Completions)
		}
		return nil
	},
}

func printStreakGroup(g stats.StreakGroup) {
	faint := color.New(color.Faint)
	fmt.Printf("  average %.1f days\n", g.Average)
	fmt.Printf("  highest %d  %s %s\n", g.Highest.Value, g.Highest.TaskName,
		faint.Sprint(shortID(g.Highest.TaskID)))
	fmt.Printf("  lowest  %d  %s %s\n", g.Lowest.Value, g.Lowest.TaskName,
		faint.Sprint(shortID(g.Lowest.TaskID)))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func init() {
	statsCompletionCmd.Flags().StringVarP(&statsPeriod, "period", "p", "week", "Reporting period: day, week, month, year")
	statsTrendCmd.Flags().StringVarP(&statsPeriod, "period", "p", "week", "Reporting period: day, week, month, year")
	statsCmd.AddCommand(statsStreaksCmd, statsCategoriesCmd, statsCompletionCmd, statsTrendCmd)
	rootCmd.AddCommand(statsCmd)
}
