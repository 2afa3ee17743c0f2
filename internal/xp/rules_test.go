// ABOUTME: Tests for domain XP calculators.
// ABOUTME: Fixed-point checks for workout, exercise, set, and mastery XP.
package xp

import (
	"testing"

	"github.com/harperreed/arete/internal/models"
)

func TestWorkoutXP(t *testing.T) {
	tests := []struct {
		name          string
		difficulty    string
		categories    []models.Category
		wantPrimary   int
		wantSecondary int
	}{
		{"hard two categories", "hard", []models.Category{models.CategoryPush, models.CategoryCore}, 75, 22},
		{"easy single", "easy", []models.Category{models.CategoryLegs}, 37, 0},
		{"medium single", "medium", []models.Category{models.CategoryPull}, 50, 0},
		{"unknown difficulty defaults to medium", "brutal", []models.Category{models.CategoryCore}, 50, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WorkoutXP(tt.difficulty, tt.categories)
			if got.PrimaryXP != tt.wantPrimary {
				t.Errorf("PrimaryXP = %d, want %d", got.PrimaryXP, tt.wantPrimary)
			}
			if got.SecondaryXP != tt.wantSecondary {
				t.Errorf("SecondaryXP = %d, want %d", got.SecondaryXP, tt.wantSecondary)
			}
			if got.TotalCategories != len(tt.categories) {
				t.Errorf("TotalCategories = %d, want %d", got.TotalCategories, len(tt.categories))
			}
		})
	}
}

func TestExerciseXP(t *testing.T) {
	// floor(25 * 3 * (5/5)) = 75, no bodyweight bonus
	if got := ExerciseXP(3, 0, 0, 5); got != 75 {
		t.Errorf("ExerciseXP(3, 0, 0, 5) = %d, want 75", got)
	}

	// Bodyweight bonus: floor((80-70)*0.1*10) = 10
	if got := ExerciseXP(3, 80, 10, 5); got != 85 {
		t.Errorf("ExerciseXP(3, 80, 10, 5) = %d, want 85", got)
	}

	// Bodyweight at or below baseline never adds a bonus
	if got := ExerciseXP(3, 70, 10, 5); got != 75 {
		t.Errorf("ExerciseXP(3, 70, 10, 5) = %d, want 75", got)
	}

	// Zero difficulty falls back to the default
	if got := ExerciseXP(2, 0, 0, 0); got != 50 {
		t.Errorf("ExerciseXP(2, 0, 0, 0) = %d, want 50", got)
	}
}

func TestSetXP(t *testing.T) {
	// 5*2 + 10*0.5 + 0 + (80-70)*0.05 = 15.5 -> 15
	if got := SetXP(5, 10, 0, 80); got != 15 {
		t.Errorf("SetXP(5, 10, 0, 80) = %d, want 15", got)
	}

	// Hold-based set: 3*2 + 0 + 60*0.1 = 12
	if got := SetXP(3, 0, 60, 0); got != 12 {
		t.Errorf("SetXP(3, 0, 60, 0) = %d, want 12", got)
	}

	// Floor of 1 even for a trivial set
	if got := SetXP(0, 0, 0, 0); got != 1 {
		t.Errorf("SetXP(0, 0, 0, 0) = %d, want 1", got)
	}
}

func TestMasteryXP(t *testing.T) {
	tests := []struct {
		tier string
		want int
	}{
		{"bronze", 100},
		{"silver", 150},
		{"gold", 200},
		{"platinum", 300},
		{"diamond", 0},
	}

	for _, tt := range tests {
		t.Run(tt.tier, func(t *testing.T) {
			if got := MasteryXP(tt.tier); got != tt.want {
				t.Errorf("MasteryXP(%s) = %d, want %d", tt.tier, got, tt.want)
			}
		})
	}
}

func TestTaskXP(t *testing.T) {
	if got := TaskXP(models.PriorityHigh); got != 40 {
		t.Errorf("TaskXP(high) = %d, want 40", got)
	}
	if got := TaskXP("unknown"); got != 25 {
		t.Errorf("TaskXP(unknown) = %d, want medium default 25", got)
	}
}

func TestMealXP(t *testing.T) {
	if got := MealXP(5); got != 10 {
		t.Errorf("MealXP(5) = %d, want 10", got)
	}
	if got := MealXP(30); got != 15 {
		t.Errorf("MealXP(30) = %d, want 15", got)
	}
}
