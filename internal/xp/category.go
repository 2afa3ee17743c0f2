// ABOUTME: Per-category XP bookkeeping and milestone detection.
// ABOUTME: Category leveling uses the same curve over the category's own pool.
package xp

import (
	"fmt"

	"github.com/harperreed/arete/internal/models"
)

// Milestone thresholds over a category's cumulative XP, ascending, with
// their rank names.
var (
	MilestoneThresholds = []int{500, 1500, 3000, 6000, 10000}
	MilestoneNames      = []string{"beginner", "intermediate", "advanced", "expert", "master"}
)

// CategoryUpdate describes what changed when XP was applied to a category.
type CategoryUpdate struct {
	LeveledUp bool
	Milestone string // "{category}_{rank}", empty if no threshold crossed
}

// ApplyCategoryXP adds amount to the category's XP pool and running total,
// recomputes the category level, and detects a milestone crossing.
func ApplyCategoryXP(p *models.UserProgress, category models.Category, amount int) CategoryUpdate {
	state, ok := p.CategoryProgress[category]
	if !ok {
		state = &models.CategoryState{Level: 1}
		p.CategoryProgress[category] = state
	}

	previousXP := state.XP
	previousLevel := state.Level

	state.XP += amount
	state.Level = LevelFromXP(state.XP)
	p.CategoryXP[category] += amount

	return CategoryUpdate{
		LeveledUp: state.Level > previousLevel,
		Milestone: CheckMilestone(category, previousXP, state.XP),
	}
}

// CheckMilestone returns the milestone name for the single highest threshold
// crossed between the previous and new XP totals. A jump over several
// thresholds reports only the last one crossed.
func CheckMilestone(category models.Category, previousXP, newXP int) string {
	crossed := ""
	for i, threshold := range MilestoneThresholds {
		if previousXP < threshold && threshold <= newXP {
			crossed = fmt.Sprintf("%s_%s", category, MilestoneNames[i])
		}
	}
	return crossed
}

// RankName returns the milestone rank name for a category XP total,
// or "novice" below the first threshold.
func RankName(categoryXP int) string {
	rank := "novice"
	for i, threshold := range MilestoneThresholds {
		if categoryXP >= threshold {
			rank = MilestoneNames[i]
		}
	}
	return rank
}

// NextRank returns the next rank name and its threshold, or ("", 0) when
// the category has already reached master.
func NextRank(categoryXP int) (string, int) {
	for i, threshold := range MilestoneThresholds {
		if categoryXP < threshold {
			return MilestoneNames[i], threshold
		}
	}
	return "", 0
}

// CategoryStatistics is a derived read-only view of one category.
type CategoryStatistics struct {
	Category          models.Category `json:"category"`
	Level             int             `json:"level"`
	XP                int             `json:"xp"`
	Rank              string          `json:"rank"`
	NextRank          string          `json:"next_rank,omitempty"`
	PercentOfTotal    float64         `json:"percent_of_total"`
	PercentToNextRank float64         `json:"percent_to_next_rank"`
}

// GetCategoryStatistics computes the derived view for one category.
// It never mutates the progress document.
func GetCategoryStatistics(p *models.UserProgress, category models.Category) CategoryStatistics {
	stats := CategoryStatistics{Category: category, Level: 1}

	if state, ok := p.CategoryProgress[category]; ok {
		stats.Level = state.Level
		stats.XP = state.XP
	}
	stats.Rank = RankName(stats.XP)

	total := 0
	for _, c := range models.AllCategories {
		total += p.CategoryXP[c]
	}
	if total > 0 {
		stats.PercentOfTotal = round2(float64(p.CategoryXP[category]) / float64(total) * 100)
	}

	next, threshold := NextRank(stats.XP)
	if next == "" {
		stats.PercentToNextRank = 100
		return stats
	}
	stats.NextRank = next

	prev := 0
	for i, th := range MilestoneThresholds {
		if th == threshold && i > 0 {
			prev = MilestoneThresholds[i-1]
		}
	}
	stats.PercentToNextRank = round2(float64(stats.XP-prev) / float64(threshold-prev) * 100)
	return stats
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}
