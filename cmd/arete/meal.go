// ABOUTME: CLI command for logging meals.
// ABOUTME: High-protein meals earn a small XP bonus.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	mealProtein float64
	mealDetails string
)

var mealCmd = &cobra.Command{
	Use:   "meal",
	Short: "Log a meal",
	Long: `Log a meal for XP. Meals worth 20g of protein or more earn a
bonus on top of the base award.

Examples:
  arete meal
  arete meal --protein 35 --details "chicken and rice"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := eng.LogMeal(cmd.Context(), userID, mealProtein, mealDetails)
		if err != nil {
			return fmt.Errorf("failed to log meal: %w", err)
		}
		color.Green("✓ Logged meal: +%d XP", result.XPAdded)
		printAwardDetail(result)
		return nil
	},
}

func init() {
	mealCmd.Flags().Float64VarP(&mealProtein, "protein", "p", 0, "Protein grams in this meal")
	mealCmd.Flags().StringVar(&mealDetails, "details", "", "What you ate")
	rootCmd.AddCommand(mealCmd)
}
