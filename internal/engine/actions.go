// ABOUTME: Domain-level award operations: workouts, sets, tasks, meals.
// ABOUTME: Each turns a domain event into AwardXP calls via the XP rules.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/harperreed/arete/internal/models"
	"github.com/harperreed/arete/internal/xp"
)

// WorkoutAward is the outcome of logging a full workout session.
type WorkoutAward struct {
	Difficulty string            `json:"difficulty"`
	TotalXP    int               `json:"total_xp"`
	Results    []*AwardResult    `json:"results"`
	Categories []models.Category `json:"categories"`
}

// LogWorkout awards XP for a completed workout session. The first category
// is primary and earns the full difficulty-scaled amount; the rest earn the
// secondary share each.
func (e *Engine) LogWorkout(ctx context.Context, userID, difficulty string, categories []string) (*WorkoutAward, error) {
	if !xp.IsValidDifficulty(difficulty) {
		return nil, fmt.Errorf("unknown difficulty %q: %w", difficulty, ErrInvalidArgument)
	}
	if len(categories) == 0 {
		return nil, fmt.Errorf("at least one category required: %w", ErrInvalidArgument)
	}
	cats := make([]models.Category, 0, len(categories))
	for _, c := range categories {
		if !models.IsValidCategory(c) {
			return nil, fmt.Errorf("unknown category %q: %w", c, ErrInvalidArgument)
		}
		cats = append(cats, models.Category(c))
	}

	breakdown := xp.WorkoutXP(difficulty, cats)
	award := &WorkoutAward{Difficulty: difficulty, Categories: cats}

	for i, cat := range cats {
		amount := breakdown.PrimaryXP
		if i > 0 {
			amount = breakdown.SecondaryXP
		}
		result, err := e.AwardXP(ctx, userID, amount, "workout_completed", string(cat),
			fmt.Sprintf("%s workout", difficulty))
		if err != nil {
			return nil, err
		}
		award.Results = append(award.Results, result)
		award.TotalXP += amount
	}
	return award, nil
}

// LogSet awards XP for a single exercise set. Bodyweight, when logged,
// scales the reward.
func (e *Engine) LogSet(ctx context.Context, userID, category string, exerciseDifficulty, reps, holdSeconds int) (*AwardResult, error) {
	if exerciseDifficulty < 1 || exerciseDifficulty > 10 {
		return nil, fmt.Errorf("exercise difficulty must be 1-10, got %d: %w", exerciseDifficulty, ErrInvalidArgument)
	}
	if reps < 0 || holdSeconds < 0 {
		return nil, fmt.Errorf("reps and hold time must be non-negative: %w", ErrInvalidArgument)
	}

	amount := xp.SetXP(exerciseDifficulty, reps, holdSeconds, e.latestBodyweight(ctx, userID))
	return e.AwardXP(ctx, userID, amount, "set_completed", category,
		fmt.Sprintf("difficulty %d, %d reps", exerciseDifficulty, reps))
}

// LogExercise awards XP for progressing an exercise at a mastery level.
func (e *Engine) LogExercise(ctx context.Context, userID, category string, masteryLevel, reps, exerciseDifficulty int) (*AwardResult, error) {
	if masteryLevel < 1 {
		return nil, fmt.Errorf("mastery level must be positive, got %d: %w", masteryLevel, ErrInvalidArgument)
	}

	amount := xp.ExerciseXP(masteryLevel, e.latestBodyweight(ctx, userID), reps, exerciseDifficulty)
	return e.AwardXP(ctx, userID, amount, "exercise_completed", category,
		fmt.Sprintf("mastery level %d", masteryLevel))
}

// LogMastery awards the one-time XP for reaching a mastery tier.
func (e *Engine) LogMastery(ctx context.Context, userID, category, tier string) (*AwardResult, error) {
	if !xp.IsValidMasteryTier(tier) {
		return nil, fmt.Errorf("unknown mastery tier %q: %w", tier, ErrInvalidArgument)
	}
	return e.AwardXP(ctx, userID, xp.MasteryXP(tier), "mastery_achieved", category,
		fmt.Sprintf("%s tier", tier))
}

// LogMeal awards XP for logging a meal (trophe domain). Protein-forward
// meals earn a bonus.
func (e *Engine) LogMeal(ctx context.Context, userID string, proteinGrams float64, details string) (*AwardResult, error) {
	if proteinGrams < 0 {
		return nil, fmt.Errorf("protein grams must be non-negative: %w", ErrInvalidArgument)
	}
	return e.AwardXP(ctx, userID, xp.MealXP(proteinGrams), "meal_logged", "", details)
}

// TaskCompletion is the outcome of completing a task: the updated task plus
// the award, when one was earned.
type TaskCompletion struct {
	Task    *models.Task `json:"task"`
	Counted bool         `json:"counted"`
	Award   *AwardResult `json:"award,omitempty"`
}

// CompleteTask records a completion on a task and awards priority-based XP.
// A second completion on the same calendar day updates nothing and earns
// nothing.
func (e *Engine) CompleteTask(ctx context.Context, userID, taskIDOrPrefix string) (*TaskCompletion, error) {
	task, err := e.GetTask(ctx, taskIDOrPrefix)
	if err != nil {
		return nil, err
	}

	if !task.Complete(time.Now()) {
		return &TaskCompletion{Task: task, Counted: false}, nil
	}
	if err := e.repo.UpdateTask(task); err != nil {
		return nil, &StorageError{Op: "update task", Err: err}
	}

	result, err := e.AwardXP(ctx, userID, xp.TaskXP(task.Priority), "task_completed", "", task.Name)
	if err != nil {
		return nil, err
	}
	return &TaskCompletion{Task: task, Counted: true, Award: result}, nil
}

// latestBodyweight returns the user's most recent logged bodyweight, or 0
// when none is logged. Lookup failures degrade to 0 rather than failing
// the award.
func (e *Engine) latestBodyweight(ctx context.Context, userID string) float64 {
	progress, err := e.GetProgress(ctx, userID)
	if err != nil {
		return 0
	}
	if entry := progress.LatestBodyweight(); entry != nil {
		return entry.Weight
	}
	return 0
}
