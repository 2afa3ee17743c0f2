// ABOUTME: Domain-specific XP calculators for training, tasks, and meals.
// ABOUTME: Pure functions turning a domain event into an XP amount.
package xp

import (
	"math"

	"github.com/harperreed/arete/internal/models"
)

// Difficulty multipliers for a full workout session.
const (
	workoutBaseXP       = 50
	secondaryShare      = 0.3
	bodyweightBaseline  = 70.0
	exerciseBaseXP      = 25
	masteryBaseXP       = 100
	defaultExerciseDiff = 5
)

var workoutMultipliers = map[string]float64{
	"easy":   0.75,
	"medium": 1.0,
	"hard":   1.5,
}

// IsValidDifficulty checks if a string names a workout difficulty.
func IsValidDifficulty(s string) bool {
	_, ok := workoutMultipliers[s]
	return ok
}

// WorkoutResult breaks down the XP earned by one workout session.
type WorkoutResult struct {
	PrimaryXP       int
	SecondaryXP     int // per secondary category
	TotalCategories int
}

// WorkoutXP computes XP for a completed workout. The first category in the
// list is primary and earns the full amount; every other category earns
// 30% of it.
func WorkoutXP(difficulty string, categories []models.Category) WorkoutResult {
	mult, ok := workoutMultipliers[difficulty]
	if !ok {
		mult = 1.0
	}

	primary := int(math.Floor(workoutBaseXP * mult))
	secondary := 0
	if len(categories) > 1 {
		secondary = int(math.Floor(float64(primary) * secondaryShare))
	}

	return WorkoutResult{
		PrimaryXP:       primary,
		SecondaryXP:     secondary,
		TotalCategories: len(categories),
	}
}

// ExerciseXP computes XP for unlocking or progressing an exercise at a
// mastery level. When bodyweight exceeds the baseline and reps are known,
// a bodyweight bonus is added; the bonus never subtracts.
func ExerciseXP(masteryLevel int, bodyweight float64, reps int, exerciseDifficulty int) int {
	if exerciseDifficulty <= 0 {
		exerciseDifficulty = defaultExerciseDiff
	}

	base := math.Floor(float64(exerciseBaseXP) * float64(masteryLevel) * float64(exerciseDifficulty) / float64(defaultExerciseDiff))

	bonus := 0.0
	if bodyweight > bodyweightBaseline && reps > 0 {
		bonus = math.Floor((bodyweight - bodyweightBaseline) * 0.1 * float64(reps))
		if bonus < 0 {
			bonus = 0
		}
	}

	return int(base + bonus)
}

// SetXP computes XP for a single set. Always at least 1.
func SetXP(exerciseDifficulty, reps, holdTimeSeconds int, bodyweight float64) int {
	total := float64(exerciseDifficulty)*2 + float64(reps)*0.5 + float64(holdTimeSeconds)*0.1
	if bodyweight > bodyweightBaseline {
		total += (bodyweight - bodyweightBaseline) * 0.05
	}

	result := int(math.Floor(total))
	if result < 1 {
		result = 1
	}
	return result
}

// Mastery tiers for exercise progression rewards.
var masteryMultipliers = map[string]float64{
	"bronze":   1.0,
	"silver":   1.5,
	"gold":     2.0,
	"platinum": 3.0,
}

// IsValidMasteryTier checks if a string names a mastery tier.
func IsValidMasteryTier(s string) bool {
	_, ok := masteryMultipliers[s]
	return ok
}

// MasteryXP computes the one-time reward for reaching a mastery tier.
// Unknown tiers earn nothing.
func MasteryXP(tier string) int {
	mult, ok := masteryMultipliers[tier]
	if !ok {
		return 0
	}
	return int(math.Floor(masteryBaseXP * mult))
}

// Task completion rewards by priority (ethos domain).
var taskPriorityXP = map[string]int{
	models.PriorityLow:    15,
	models.PriorityMedium: 25,
	models.PriorityHigh:   40,
}

// TaskXP returns the XP reward for completing a task of the given priority.
func TaskXP(priority string) int {
	if amount, ok := taskPriorityXP[priority]; ok {
		return amount
	}
	return taskPriorityXP[models.PriorityMedium]
}

// MealXP returns the XP reward for logging a meal (trophe domain).
// Protein-forward meals earn a small bonus.
func MealXP(proteinGrams float64) int {
	base := 10
	if proteinGrams >= 20 {
		base += 5
	}
	return base
}
