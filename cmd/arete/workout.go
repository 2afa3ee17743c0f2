// ABOUTME: CLI commands for logging training: workouts, sets, exercises,
// ABOUTME: and mastery tiers, each awarding XP through the engine.
package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	workoutCategories []string
	setReps           int
	setHold           int
	exerciseReps      int
	exerciseDiff      int
)

var workoutCmd = &cobra.Command{
	Use:   "workout <difficulty>",
	Short: "Log a workout and earn XP",
	Long: `Log a completed workout session.

The difficulty scales the XP: easy, medium, or hard. The first category
listed is primary and earns the full amount; every other category earns a
30% share.

Examples:
  arete workout hard --categories push,core
  arete workout easy -c legs`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		award, err := eng.LogWorkout(cmd.Context(), userID, args[0], workoutCategories)
		if err != nil {
			return fmt.Errorf("failed to log workout: %w", err)
		}

		color.Green("✓ Logged %s workout: +%d XP", award.Difficulty, award.TotalXP)
		for _, result := range award.Results {
			printAwardDetail(result)
		}
		return nil
	},
}

var workoutSetCmd = &cobra.Command{
	Use:   "set <category> <difficulty>",
	Short: "Log a single exercise set",
	Long: `Log one set of an exercise.

The difficulty is the exercise's 1-10 rating. Reps, hold time, and your
latest logged bodyweight all feed the XP formula.

Examples:
  arete workout set push 5 --reps 10
  arete workout set core 7 --hold 60`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		difficulty, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("difficulty must be a number: %s", args[1])
		}

		result, err := eng.LogSet(cmd.Context(), userID, args[0], difficulty, setReps, setHold)
		if err != nil {
			return fmt.Errorf("failed to log set: %w", err)
		}

		color.Green("✓ Logged set: +%d XP", result.XPAdded)
		printAwardDetail(result)
		return nil
	},
}

var workoutExerciseCmd = &cobra.Command{
	Use:   "exercise <category> <mastery-level>",
	Short: "Log exercise progression at a mastery level",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		level, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("mastery level must be a number: %s", args[1])
		}

		result, err := eng.LogExercise(cmd.Context(), userID, args[0], level, exerciseReps, exerciseDiff)
		if err != nil {
			return fmt.Errorf("failed to log exercise: %w", err)
		}

		color.Green("✓ Logged exercise progression: +%d XP", result.XPAdded)
		printAwardDetail(result)
		return nil
	},
}

var workoutMasteryCmd = &cobra.Command{
	Use:   "mastery <category> <tier>",
	Short: "Record reaching a mastery tier (bronze, silver, gold, platinum)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := eng.LogMastery(cmd.Context(), userID, args[0], args[1])
		if err != nil {
			return fmt.Errorf("failed to record mastery: %w", err)
		}

		color.Green("✓ %s mastery in %s: +%d XP", args[1], args[0], result.XPAdded)
		printAwardDetail(result)
		return nil
	},
}

func init() {
	workoutCmd.Flags().StringSliceVarP(&workoutCategories, "categories", "c", nil, "categories worked, primary first (core, push, pull, legs)")
	workoutSetCmd.Flags().IntVar(&setReps, "reps", 0, "reps performed")
	workoutSetCmd.Flags().IntVar(&setHold, "hold", 0, "hold time in seconds")
	workoutExerciseCmd.Flags().IntVar(&exerciseReps, "reps", 0, "reps performed")
	workoutExerciseCmd.Flags().IntVar(&exerciseDiff, "difficulty", 0, "exercise difficulty 1-10 (default 5)")

	workoutCmd.AddCommand(workoutSetCmd)
	workoutCmd.AddCommand(workoutExerciseCmd)
	workoutCmd.AddCommand(workoutMasteryCmd)
	rootCmd.AddCommand(workoutCmd)
}
