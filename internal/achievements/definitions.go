// ABOUTME: Static achievement catalog with unlock predicates.
// ABOUTME: Definition order is fixed; checks always run in this order.
package achievements

import (
	"fmt"

	"github.com/harperreed/arete/internal/models"
)

// Type classifies an achievement for display grouping.
type Type string

const (
	TypeStrength    Type = "strength"
	TypeConsistency Type = "consistency"
	TypeNutrition   Type = "nutrition"
	TypeMilestone   Type = "milestone"
)

// Snapshot is the read-only state an unlock predicate evaluates against.
// BestStreak and TotalCompletions come from the task collection; everything
// else from the progress document.
type Snapshot struct {
	Progress         *models.UserProgress
	BestStreak       int
	TotalCompletions int
}

// Definition is a static achievement rule. Unlock must be a pure predicate
// over the snapshot; Progress optionally reports percent-complete for UI.
type Definition struct {
	ID          string
	Title       string
	Description string
	Type        Type
	XPReward    int
	Icon        string
	Unlock      func(Snapshot) bool
	Progress    func(Snapshot) float64
}

// Catalog returns the full achievement catalog in fixed order.
func Catalog() []Definition {
	return []Definition{
		{
			ID:          "first_workout",
			Title:       "First Rep",
			Description: "Complete your first workout",
			Type:        TypeStrength,
			XPReward:    50,
			Icon:        "🏋️",
			Unlock: func(s Snapshot) bool {
				return s.Progress.SourceCount("workout_completed") >= 1
			},
		},
		{
			ID:          "first_task",
			Title:       "Off the Mark",
			Description: "Complete your first task",
			Type:        TypeConsistency,
			XPReward:    25,
			Icon:        "🎯",
			Unlock: func(s Snapshot) bool {
				return s.TotalCompletions >= 1
			},
		},
		{
			ID:          "level_5",
			Title:       "Apprentice",
			Description: "Reach level 5",
			Type:        TypeMilestone,
			XPReward:    100,
			Icon:        "📚",
			Unlock: func(s Snapshot) bool {
				return s.Progress.Level >= 5
			},
			Progress: func(s Snapshot) float64 {
				return ratio(s.Progress.Level, 5)
			},
		},
		{
			ID:          "level_10",
			Title:       "Adept",
			Description: "Reach level 10",
			Type:        TypeMilestone,
			XPReward:    250,
			Icon:        "🧙",
			Unlock: func(s Snapshot) bool {
				return s.Progress.Level >= 10
			},
			Progress: func(s Snapshot) float64 {
				return ratio(s.Progress.Level, 10)
			},
		},
		{
			ID:          "xp_1000",
			Title:       "Grinder",
			Description: "Earn 1,000 total XP",
			Type:        TypeMilestone,
			XPReward:    75,
			Icon:        "⚡",
			Unlock: func(s Snapshot) bool {
				return s.Progress.TotalXP >= 1000
			},
			Progress: func(s Snapshot) float64 {
				return ratio(s.Progress.TotalXP, 1000)
			},
		},
		{
			ID:          "xp_10000",
			Title:       "Relentless",
			Description: "Earn 10,000 total XP",
			Type:        TypeMilestone,
			XPReward:    500,
			Icon:        "🔱",
			Unlock: func(s Snapshot) bool {
				return s.Progress.TotalXP >= 10000
			},
			Progress: func(s Snapshot) float64 {
				return ratio(s.Progress.TotalXP, 10000)
			},
		},
		{
			ID:          "streak_7",
			Title:       "Week of Fire",
			Description: "Hold a 7-day streak on any task",
			Type:        TypeConsistency,
			XPReward:    100,
			Icon:        "🔥",
			Unlock: func(s Snapshot) bool {
				return s.BestStreak >= 7
			},
			Progress: func(s Snapshot) float64 {
				return ratio(s.BestStreak, 7)
			},
		},
		{
			ID:          "streak_30",
			Title:       "Iron Will",
			Description: "Hold a 30-day streak on any task",
			Type:        TypeConsistency,
			XPReward:    500,
			Icon:        "💪",
			Unlock: func(s Snapshot) bool {
				return s.BestStreak >= 30
			},
			Progress: func(s Snapshot) float64 {
				return ratio(s.BestStreak, 30)
			},
		},
		{
			ID:          "century_club",
			Title:       "Century Club",
			Description: "Complete 100 tasks",
			Type:        TypeConsistency,
			XPReward:    300,
			Icon:        "💯",
			Unlock: func(s Snapshot) bool {
				return s.TotalCompletions >= 100
			},
			Progress: func(s Snapshot) float64 {
				return ratio(s.TotalCompletions, 100)
			},
		},
		{
			ID:          "balanced_warrior",
			Title:       "Balanced Warrior",
			Description: "Reach level 3 in all four categories",
			Type:        TypeStrength,
			XPReward:    200,
			Icon:        "⚖️",
			Unlock: func(s Snapshot) bool {
				return categoriesAtLevel(s.Progress, 3) == len(models.AllCategories)
			},
			Progress: func(s Snapshot) float64 {
				return ratio(categoriesAtLevel(s.Progress, 3), len(models.AllCategories))
			},
		},
		{
			ID:          "consistency_master",
			Title:       "Consistency Master",
			Description: "5,000 XP, a 30-day streak, and two categories at level 5",
			Type:        TypeConsistency,
			XPReward:    750,
			Icon:        "👑",
			Unlock: func(s Snapshot) bool {
				return s.Progress.TotalXP >= 5000 &&
					s.BestStreak >= 30 &&
					categoriesAtLevel(s.Progress, 5) >= 2
			},
			Progress: func(s Snapshot) float64 {
				parts := ratio(s.Progress.TotalXP, 5000) +
					ratio(s.BestStreak, 30) +
					ratio(categoriesAtLevel(s.Progress, 5), 2)
				return parts / 3
			},
		},
		{
			ID:          "core_adept",
			Title:       "Core Adept",
			Description: "Reach level 5 in the core category",
			Type:        TypeStrength,
			XPReward:    150,
			Icon:        "🧘",
			Unlock:      categoryLevelPredicate(models.CategoryCore, 5),
		},
		{
			ID:          "push_adept",
			Title:       "Push Adept",
			Description: "Reach level 5 in the push category",
			Type:        TypeStrength,
			XPReward:    150,
			Icon:        "🙌",
			Unlock:      categoryLevelPredicate(models.CategoryPush, 5),
		},
		{
			ID:          "nutrition_novice",
			Title:       "Mindful Eater",
			Description: "Log 10 meals",
			Type:        TypeNutrition,
			XPReward:    50,
			Icon:        "🥗",
			Unlock: func(s Snapshot) bool {
				return s.Progress.SourceCount("meal_logged") >= 10
			},
			Progress: func(s Snapshot) float64 {
				return ratio(s.Progress.SourceCount("meal_logged"), 10)
			},
		},
		{
			ID:          "scale_scholar",
			Title:       "Scale Scholar",
			Description: "Log 10 bodyweight entries",
			Type:        TypeMilestone,
			XPReward:    50,
			Icon:        "⚖️",
			Unlock: func(s Snapshot) bool {
				return len(s.Progress.Bodyweight) >= 10
			},
			Progress: func(s Snapshot) float64 {
				return ratio(len(s.Progress.Bodyweight), 10)
			},
		},
	}
}

// categoriesAtLevel counts categories whose level meets the minimum.
func categoriesAtLevel(p *models.UserProgress, minLevel int) int {
	count := 0
	for _, c := range models.AllCategories {
		if state, ok := p.CategoryProgress[c]; ok && state.Level >= minLevel {
			count++
		}
	}
	return count
}

func categoryLevelPredicate(category models.Category, minLevel int) func(Snapshot) bool {
	return func(s Snapshot) bool {
		state, ok := s.Progress.CategoryProgress[category]
		return ok && state.Level >= minLevel
	}
}

// ratio returns value/target as a percent capped at 100.
func ratio(value, target int) float64 {
	if target <= 0 {
		return 100
	}
	pct := float64(value) / float64(target) * 100
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return pct
}

// Validate checks the catalog for configuration errors: duplicate IDs,
// missing predicates, or negative rewards. Run once at startup; a failure
// here is fatal, not a runtime case.
func Validate(defs []Definition) error {
	seen := make(map[string]bool, len(defs))
	for _, def := range defs {
		if def.ID == "" {
			return fmt.Errorf("achievement config: empty id (title %q)", def.Title)
		}
		if seen[def.ID] {
			return fmt.Errorf("achievement config: duplicate id %q", def.ID)
		}
		seen[def.ID] = true
		if def.Unlock == nil {
			return fmt.Errorf("achievement config: %s has no unlock predicate", def.ID)
		}
		if def.XPReward < 0 {
			return fmt.Errorf("achievement config: %s has negative reward", def.ID)
		}
	}
	return nil
}
