// ABOUTME: Streak summary and category distribution over task collections.
// ABOUTME: Pure aggregation, no I/O; empty input yields zero-valued results.
package stats

import (
	"sort"

	"github.com/harperreed/arete/internal/models"
)

// StreakExtreme identifies the task holding a highest or lowest streak.
type StreakExtreme struct {
	Value    int    `json:"value"`
	TaskID   string `json:"task_id"`
	TaskName string `json:"task_name"`
}

// StreakGroup summarizes one streak dimension across all tasks.
type StreakGroup struct {
	Average float64       `json:"average"`
	Highest StreakExtreme `json:"highest"`
	Lowest  StreakExtreme `json:"lowest"`
}

// StreakSummaryResult aggregates current and best streaks.
type StreakSummaryResult struct {
	CurrentStreaks StreakGroup `json:"current_streaks"`
	BestStreaks    StreakGroup `json:"best_streaks"`
}

// StreakSummary computes streak aggregates over the task collection.
// Ties resolve to the first task in input order. Empty input yields a
// zero-valued result with empty ID strings.
func StreakSummary(tasks []*models.Task) StreakSummaryResult {
	var result StreakSummaryResult
	if len(tasks) == 0 {
		return result
	}

	currentSum, bestSum := 0, 0
	for i, task := range tasks {
		current := task.CurrentStreak
		best := task.BestStreak
		if task.TotalCompletions > best {
			best = task.TotalCompletions
		}

		currentSum += current
		bestSum += best

		if i == 0 || current > result.CurrentStreaks.Highest.Value {
			result.CurrentStreaks.Highest = StreakExtreme{current, task.ID.String(), task.Name}
		}
		if i == 0 || current < result.CurrentStreaks.Lowest.Value {
			result.CurrentStreaks.Lowest = StreakExtreme{current, task.ID.String(), task.Name}
		}
		if i == 0 || best > result.BestStreaks.Highest.Value {
			result.BestStreaks.Highest = StreakExtreme{best, task.ID.String(), task.Name}
		}
		if i == 0 || best < result.BestStreaks.Lowest.Value {
			result.BestStreaks.Lowest = StreakExtreme{best, task.ID.String(), task.Name}
		}
	}

	result.CurrentStreaks.Average = round2(float64(currentSum) / float64(len(tasks)))
	result.BestStreaks.Average = round2(float64(bestSum) / float64(len(tasks)))
	return result
}

// CategoryCount summarizes one category label's task activity.
type CategoryCount struct {
	Category       string  `json:"category"`
	Count          int     `json:"count"`
	CompletedCount int     `json:"completed_count"`
	CompletionRate float64 `json:"completion_rate"`
}

// CategoryDistribution groups tasks by category label, sorted by count
// descending with ties broken by first appearance in input order. A task
// counts as completed when it has at least one completion.
func CategoryDistribution(tasks []*models.Task) []CategoryCount {
	byCategory := make(map[string]*CategoryCount)
	var order []string

	for _, task := range tasks {
		cc, ok := byCategory[task.Category]
		if !ok {
			cc = &CategoryCount{Category: task.Category}
			byCategory[task.Category] = cc
			order = append(order, task.Category)
		}
		cc.Count++
		if task.TotalCompletions > 0 {
			cc.CompletedCount++
		}
	}

	result := make([]CategoryCount, 0, len(order))
	for _, category := range order {
		cc := byCategory[category]
		if cc.Count > 0 {
			cc.CompletionRate = round2(float64(cc.CompletedCount) / float64(cc.Count) * 100)
		}
		result = append(result, *cc)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Count > result[j].Count
	})
	return result
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}
