// ABOUTME: MCP tool implementations for the XP engine.
// ABOUTME: Awards, workouts, tasks, achievements, and statistics queries.
package mcp

import (
	"context"
	"fmt"

	"github.com/harperreed/arete/internal/achievements"
	"github.com/harperreed/arete/internal/models"
	"github.com/harperreed/arete/internal/stats"
	"github.com/harperreed/arete/internal/xp"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	// award_xp
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "award_xp",
		Description: "Award XP to a user, optionally against a movement category",
	}, s.handleAwardXP)

	// log_workout
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_workout",
		Description: "Log a completed workout session and award difficulty-scaled XP",
	}, s.handleLogWorkout)

	// log_exercise
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_exercise",
		Description: "Log exercise progression at a mastery level and award XP",
	}, s.handleLogExercise)

	// add_task
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_task",
		Description: "Create a recurring task or habit",
	}, s.handleAddTask)

	// complete_task
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "complete_task",
		Description: "Mark a task complete for today and award priority-based XP",
	}, s.handleCompleteTask)

	// get_progress
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_progress",
		Description: "Get a user's level, XP, and per-category progress",
	}, s.handleGetProgress)

	// get_category
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_category",
		Description: "Get detailed statistics for one movement category",
	}, s.handleGetCategory)

	// get_streaks
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_streaks",
		Description: "Get streak summary across all tasks",
	}, s.handleGetStreaks)

	// get_completion_rate
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_completion_rate",
		Description: "Get task completion rate for a period (day, week, month, year)",
	}, s.handleGetCompletionRate)

	// list_achievements
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_achievements",
		Description: "List all achievements with unlock status and progress",
	}, s.handleListAchievements)

	// claim_achievement
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "claim_achievement",
		Description: "Claim (acknowledge) an unlocked achievement",
	}, s.handleClaimAchievement)

	// log_bodyweight
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_bodyweight",
		Description: "Log a bodyweight measurement",
	}, s.handleLogBodyweight)
}

// Tool input/output types

type awardXPInput struct {
	User     string `json:"user,omitempty" jsonschema:"User ID, defaults to the configured user"`
	Amount   int    `json:"amount" jsonschema:"XP amount (non-negative)"`
	Source   string `json:"source" jsonschema:"Event source tag (e.g. workout_completed, manual)"`
	Category string `json:"category,omitempty" jsonschema:"Movement category (core, push, pull, legs)"`
	Details  string `json:"details,omitempty" jsonschema:"Optional free text"`
}

type logWorkoutInput struct {
	User       string   `json:"user,omitempty" jsonschema:"User ID"`
	Difficulty string   `json:"difficulty" jsonschema:"Workout difficulty (easy, medium, hard)"`
	Categories []string `json:"categories" jsonschema:"Categories worked, primary first"`
}

type logExerciseInput struct {
	User         string `json:"user,omitempty" jsonschema:"User ID"`
	Category     string `json:"category" jsonschema:"Movement category"`
	MasteryLevel int    `json:"mastery_level" jsonschema:"Mastery level reached (1+)"`
	Reps         int    `json:"reps,omitempty" jsonschema:"Reps performed"`
	Difficulty   int    `json:"difficulty,omitempty" jsonschema:"Exercise difficulty 1-10, defaults to 5"`
}

type addTaskInput struct {
	Name       string   `json:"name" jsonschema:"Task name"`
	Category   string   `json:"category,omitempty" jsonschema:"Free-form grouping label"`
	Domain     string   `json:"domain,omitempty" jsonschema:"Life domain (ethos, trophe, soma), defaults to ethos"`
	Recurrence string   `json:"recurrence,omitempty" jsonschema:"Recurrence (daily, weekdays, weekends, weekly, custom), defaults to daily"`
	Weekdays   []int    `json:"weekdays,omitempty" jsonschema:"Weekday numbers for custom recurrence (0=Sunday)"`
	Priority   string   `json:"priority,omitempty" jsonschema:"Priority (low, medium, high), defaults to medium"`
	Labels     []string `json:"labels,omitempty" jsonschema:"Freeform labels"`
}

type taskOutput struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

type completeTaskInput struct {
	User string `json:"user,omitempty" jsonschema:"User ID"`
	ID   string `json:"id" jsonschema:"Task ID or prefix"`
}

type userInput struct {
	User string `json:"user,omitempty" jsonschema:"User ID"`
}

type getCategoryInput struct {
	User     string `json:"user,omitempty" jsonschema:"User ID"`
	Category string `json:"category" jsonschema:"Movement category (core, push, pull, legs)"`
}

type completionRateInput struct {
	Period string `json:"period,omitempty" jsonschema:"Period (day, week, month, year), defaults to week"`
}

type claimAchievementInput struct {
	User string `json:"user,omitempty" jsonschema:"User ID"`
	ID   string `json:"id" jsonschema:"Achievement ID"`
}

type logBodyweightInput struct {
	User   string  `json:"user,omitempty" jsonschema:"User ID"`
	Weight float64 `json:"weight" jsonschema:"Weight value"`
	Unit   string  `json:"unit,omitempty" jsonschema:"Unit, defaults to kg"`
	Notes  string  `json:"notes,omitempty" jsonschema:"Optional notes"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

// Tool handlers

func (s *Server) handleAwardXP(ctx context.Context, req *mcp.CallToolRequest, input awardXPInput) (*mcp.CallToolResult, any, error) {
	result, err := s.engine.AwardXP(ctx, s.user(input.User), input.Amount, input.Source, input.Category, input.Details)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to award xp: %w", err)
	}
	return nil, result, nil
}

func (s *Server) handleLogWorkout(ctx context.Context, req *mcp.CallToolRequest, input logWorkoutInput) (*mcp.CallToolResult, any, error) {
	award, err := s.engine.LogWorkout(ctx, s.user(input.User), input.Difficulty, input.Categories)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to log workout: %w", err)
	}
	return nil, award, nil
}

func (s *Server) handleLogExercise(ctx context.Context, req *mcp.CallToolRequest, input logExerciseInput) (*mcp.CallToolResult, any, error) {
	result, err := s.engine.LogExercise(ctx, s.user(input.User), input.Category, input.MasteryLevel, input.Reps, input.Difficulty)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to log exercise: %w", err)
	}
	return nil, result, nil
}

func (s *Server) handleAddTask(ctx context.Context, req *mcp.CallToolRequest, input addTaskInput) (*mcp.CallToolResult, taskOutput, error) {
	task := models.NewTask(input.Name)
	if input.Category != "" {
		task.WithCategory(input.Category)
	}
	if input.Domain != "" {
		if !models.IsValidDomain(input.Domain) {
			return nil, taskOutput{}, fmt.Errorf("unknown domain: %s", input.Domain)
		}
		task.WithDomain(models.Domain(input.Domain))
	}
	if input.Recurrence != "" {
		if !models.IsValidRecurrence(input.Recurrence) {
			return nil, taskOutput{}, fmt.Errorf("unknown recurrence: %s", input.Recurrence)
		}
		task.WithRecurrence(models.Recurrence(input.Recurrence))
	}
	if len(input.Weekdays) > 0 {
		task.WithWeekdays(input.Weekdays)
	}
	if input.Priority != "" {
		task.WithPriority(input.Priority)
	}
	if len(input.Labels) > 0 {
		task.WithLabels(input.Labels)
	}

	if err := s.engine.CreateTask(ctx, task); err != nil {
		return nil, taskOutput{}, fmt.Errorf("failed to create task: %w", err)
	}

	return nil, taskOutput{
		ID:      task.ID.String()[:8],
		Name:    task.Name,
		Message: fmt.Sprintf("Added task %q (ID: %s)", task.Name, task.ID.String()[:8]),
	}, nil
}

func (s *Server) handleCompleteTask(ctx context.Context, req *mcp.CallToolRequest, input completeTaskInput) (*mcp.CallToolResult, any, error) {
	completion, err := s.engine.CompleteTask(ctx, s.user(input.User), input.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to complete task: %w", err)
	}
	if !completion.Counted {
		return nil, simpleOutput{Message: "Already completed today."}, nil
	}
	return nil, completion, nil
}

func (s *Server) handleGetProgress(ctx context.Context, req *mcp.CallToolRequest, input userInput) (*mcp.CallToolResult, any, error) {
	progress, err := s.engine.GetProgress(ctx, s.user(input.User))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get progress: %w", err)
	}
	return nil, progressOverview(progress), nil
}

func (s *Server) handleGetCategory(ctx context.Context, req *mcp.CallToolRequest, input getCategoryInput) (*mcp.CallToolResult, any, error) {
	if !models.IsValidCategory(input.Category) {
		return nil, nil, fmt.Errorf("unknown category: %s", input.Category)
	}
	progress, err := s.engine.GetProgress(ctx, s.user(input.User))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get progress: %w", err)
	}
	return nil, xp.GetCategoryStatistics(progress, models.Category(input.Category)), nil
}

func (s *Server) handleGetStreaks(ctx context.Context, req *mcp.CallToolRequest, input userInput) (*mcp.CallToolResult, any, error) {
	tasks, err := s.engine.ListTasks(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return nil, stats.StreakSummary(tasks), nil
}

func (s *Server) handleGetCompletionRate(ctx context.Context, req *mcp.CallToolRequest, input completionRateInput) (*mcp.CallToolResult, any, error) {
	period := stats.Period(input.Period)
	if input.Period == "" {
		period = stats.PeriodWeek
	} else if !stats.IsValidPeriod(input.Period) {
		return nil, nil, fmt.Errorf("unknown period: %s", input.Period)
	}

	tasks, err := s.engine.ListTasks(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return nil, stats.CompletionRate(tasks, period), nil
}

type achievementEntry struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Type        string  `json:"type"`
	Icon        string  `json:"icon"`
	XPReward    int     `json:"xp_reward"`
	Status      string  `json:"status"`
	Progress    float64 `json:"progress"`
}

func (s *Server) handleListAchievements(ctx context.Context, req *mcp.CallToolRequest, input userInput) (*mcp.CallToolResult, any, error) {
	progress, err := s.engine.GetProgress(ctx, s.user(input.User))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get progress: %w", err)
	}
	tasks, err := s.engine.ListTasks(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	snapshot := achievements.Snapshot{Progress: progress}
	for _, t := range tasks {
		if t.BestStreak > snapshot.BestStreak {
			snapshot.BestStreak = t.BestStreak
		}
		snapshot.TotalCompletions += t.TotalCompletions
	}

	var entries []achievementEntry
	for _, def := range s.engine.Definitions() {
		status := "locked"
		if state, ok := progress.Achievements[def.ID]; ok {
			status = string(state.Status)
		}
		entries = append(entries, achievementEntry{
			ID:          def.ID,
			Title:       def.Title,
			Description: def.Description,
			Type:        string(def.Type),
			Icon:        def.Icon,
			XPReward:    def.XPReward,
			Status:      status,
			Progress:    achievements.UnlockProgress(def, snapshot),
		})
	}
	return nil, entries, nil
}

func (s *Server) handleClaimAchievement(ctx context.Context, req *mcp.CallToolRequest, input claimAchievementInput) (*mcp.CallToolResult, simpleOutput, error) {
	if _, err := s.engine.ClaimAchievement(ctx, s.user(input.User), input.ID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to claim achievement: %w", err)
	}
	return nil, simpleOutput{
		Message: fmt.Sprintf("Claimed achievement: %s", input.ID),
	}, nil
}

func (s *Server) handleLogBodyweight(ctx context.Context, req *mcp.CallToolRequest, input logBodyweightInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.engine.LogBodyweight(ctx, s.user(input.User), input.Weight, input.Unit, input.Notes); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to log bodyweight: %w", err)
	}
	unit := input.Unit
	if unit == "" {
		unit = "kg"
	}
	return nil, simpleOutput{
		Message: fmt.Sprintf("Logged bodyweight: %.1f %s", input.Weight, unit),
	}, nil
}
