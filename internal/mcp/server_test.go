// ABOUTME: Tests for MCP server, tools, and resources.
// ABOUTME: Covers NewServer, tool handlers, and resource handlers.
package mcp

import (
	"context"
	"testing"

	"github.com/harperreed/arete/internal/engine"
	"github.com/harperreed/arete/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// setupServer creates a server over an in-memory repository.
func setupServer(t *testing.T) *Server {
	t.Helper()

	eng, err := engine.New(storage.NewMemoryStore())
	if err != nil {
		t.Fatalf("engine.New failed: %v", err)
	}
	server, err := NewServer(eng, "default")
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	return server
}

func TestNewServer(t *testing.T) {
	server := setupServer(t)

	if server.mcpServer == nil {
		t.Error("Expected non-nil mcpServer")
	}
	if server.engine == nil {
		t.Error("Expected non-nil engine")
	}
	if server.defaultUser != "default" {
		t.Errorf("defaultUser = %q, want %q", server.defaultUser, "default")
	}
}

func TestHandleAwardXP(t *testing.T) {
	server := setupServer(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		input   awardXPInput
		wantErr bool
	}{
		{
			name:  "plain award",
			input: awardXPInput{Amount: 120, Source: "manual"},
		},
		{
			name:  "award with category",
			input: awardXPInput{Amount: 50, Source: "manual", Category: "push"},
		},
		{
			name:    "negative amount",
			input:   awardXPInput{Amount: -10, Source: "manual"},
			wantErr: true,
		},
		{
			name:    "unknown category",
			input:   awardXPInput{Amount: 10, Source: "manual", Category: "cardio"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, output, err := server.handleAwardXP(ctx, &mcp.CallToolRequest{}, tt.input)

			if tt.wantErr {
				if err == nil {
					t.Error("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Errorf("Unexpected error: %v", err)
				return
			}

			result, ok := output.(*engine.AwardResult)
			if !ok {
				t.Fatal("Expected AwardResult output")
			}
			if result.XPAdded != tt.input.Amount {
				t.Errorf("XPAdded = %d, want %d", result.XPAdded, tt.input.Amount)
			}
		})
	}
}

func TestHandleLogWorkout(t *testing.T) {
	server := setupServer(t)
	ctx := context.Background()

	_, output, err := server.handleLogWorkout(ctx, &mcp.CallToolRequest{}, logWorkoutInput{
		Difficulty: "hard",
		Categories: []string{"push", "core"},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	award, ok := output.(*engine.WorkoutAward)
	if !ok {
		t.Fatal("Expected WorkoutAward output")
	}
	if award.TotalXP != 97 {
		t.Errorf("TotalXP = %d, want 97", award.TotalXP)
	}

	_, _, err = server.handleLogWorkout(ctx, &mcp.CallToolRequest{}, logWorkoutInput{
		Difficulty: "brutal",
		Categories: []string{"push"},
	})
	if err == nil {
		t.Error("Expected error for unknown difficulty")
	}
}

func TestHandleAddAndCompleteTask(t *testing.T) {
	server := setupServer(t)
	ctx := context.Background()

	_, output, err := server.handleAddTask(ctx, &mcp.CallToolRequest{}, addTaskInput{
		Name:     "morning stretch",
		Domain:   "soma",
		Priority: "high",
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if output.ID == "" {
		t.Error("Expected non-empty ID")
	}
	if output.Message == "" {
		t.Error("Expected non-empty Message")
	}

	_, completion, err := server.handleCompleteTask(ctx, &mcp.CallToolRequest{}, completeTaskInput{
		ID: output.ID,
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	done, ok := completion.(*engine.TaskCompletion)
	if !ok {
		t.Fatal("Expected TaskCompletion output")
	}
	if !done.Counted || done.Award.XPAdded != 40 {
		t.Errorf("completion = %+v, want counted with 40 XP", done)
	}

	// Same-day repeat reports a message instead
	_, repeat, err := server.handleCompleteTask(ctx, &mcp.CallToolRequest{}, completeTaskInput{
		ID: output.ID,
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if _, ok := repeat.(simpleOutput); !ok {
		t.Errorf("Expected simpleOutput for repeat, got %T", repeat)
	}
}

func TestHandleAddTaskValidation(t *testing.T) {
	server := setupServer(t)
	ctx := context.Background()

	_, _, err := server.handleAddTask(ctx, &mcp.CallToolRequest{}, addTaskInput{
		Name:   "bad",
		Domain: "mars",
	})
	if err == nil {
		t.Error("Expected error for unknown domain")
	}

	_, _, err = server.handleAddTask(ctx, &mcp.CallToolRequest{}, addTaskInput{
		Name:       "bad",
		Recurrence: "fortnightly",
	})
	if err == nil {
		t.Error("Expected error for unknown recurrence")
	}
}

func TestHandleGetProgress(t *testing.T) {
	server := setupServer(t)
	ctx := context.Background()

	if _, _, err := server.handleAwardXP(ctx, &mcp.CallToolRequest{}, awardXPInput{
		Amount: 120, Source: "manual", Category: "core",
	}); err != nil {
		t.Fatalf("award failed: %v", err)
	}

	_, output, err := server.handleGetProgress(ctx, &mcp.CallToolRequest{}, userInput{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	overview, ok := output.(map[string]interface{})
	if !ok {
		t.Fatal("Expected map output")
	}
	if overview["total_xp"] != 120 {
		t.Errorf("total_xp = %v, want 120", overview["total_xp"])
	}
	if overview["level"] != 2 {
		t.Errorf("level = %v, want 2", overview["level"])
	}
}

func TestHandleGetCategory(t *testing.T) {
	server := setupServer(t)
	ctx := context.Background()

	_, _, err := server.handleGetCategory(ctx, &mcp.CallToolRequest{}, getCategoryInput{Category: "cardio"})
	if err == nil {
		t.Error("Expected error for unknown category")
	}

	_, output, err := server.handleGetCategory(ctx, &mcp.CallToolRequest{}, getCategoryInput{Category: "push"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if output == nil {
		t.Error("Expected non-nil output")
	}
}

func TestHandleGetStreaksEmpty(t *testing.T) {
	server := setupServer(t)

	_, output, err := server.handleGetStreaks(context.Background(), &mcp.CallToolRequest{}, userInput{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if output == nil {
		t.Error("Expected non-nil output for empty task list")
	}
}

func TestHandleGetCompletionRate(t *testing.T) {
	server := setupServer(t)
	ctx := context.Background()

	_, output, err := server.handleGetCompletionRate(ctx, &mcp.CallToolRequest{}, completionRateInput{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if output == nil {
		t.Error("Expected non-nil output")
	}

	_, _, err = server.handleGetCompletionRate(ctx, &mcp.CallToolRequest{}, completionRateInput{Period: "decade"})
	if err == nil {
		t.Error("Expected error for unknown period")
	}
}

func TestHandleListAchievements(t *testing.T) {
	server := setupServer(t)
	ctx := context.Background()

	if _, _, err := server.handleAwardXP(ctx, &mcp.CallToolRequest{}, awardXPInput{
		Amount: 50, Source: "workout_completed", Category: "push",
	}); err != nil {
		t.Fatalf("award failed: %v", err)
	}

	_, output, err := server.handleListAchievements(ctx, &mcp.CallToolRequest{}, userInput{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	entries, ok := output.([]achievementEntry)
	if !ok {
		t.Fatal("Expected achievement entries")
	}
	if len(entries) == 0 {
		t.Fatal("Expected non-empty catalog")
	}

	var found bool
	for _, e := range entries {
		if e.ID == "first_workout" {
			found = true
			if e.Status != "pending" {
				t.Errorf("first_workout status = %q, want pending", e.Status)
			}
			if e.Progress != 100 {
				t.Errorf("first_workout progress = %v, want 100", e.Progress)
			}
		}
	}
	if !found {
		t.Error("first_workout missing from list")
	}
}

func TestHandleClaimAchievement(t *testing.T) {
	server := setupServer(t)
	ctx := context.Background()

	if _, _, err := server.handleAwardXP(ctx, &mcp.CallToolRequest{}, awardXPInput{
		Amount: 50, Source: "workout_completed", Category: "push",
	}); err != nil {
		t.Fatalf("award failed: %v", err)
	}

	_, output, err := server.handleClaimAchievement(ctx, &mcp.CallToolRequest{}, claimAchievementInput{
		ID: "first_workout",
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if output.Message == "" {
		t.Error("Expected non-empty message")
	}

	_, _, err = server.handleClaimAchievement(ctx, &mcp.CallToolRequest{}, claimAchievementInput{
		ID: "streak_30",
	})
	if err == nil {
		t.Error("Expected error for locked achievement")
	}
}

func TestHandleLogBodyweight(t *testing.T) {
	server := setupServer(t)
	ctx := context.Background()

	_, output, err := server.handleLogBodyweight(ctx, &mcp.CallToolRequest{}, logBodyweightInput{
		Weight: 81.5,
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if output.Message == "" {
		t.Error("Expected non-empty message")
	}

	_, _, err = server.handleLogBodyweight(ctx, &mcp.CallToolRequest{}, logBodyweightInput{
		Weight: -5,
	})
	if err == nil {
		t.Error("Expected error for non-positive weight")
	}
}

func TestHandleProgressResource(t *testing.T) {
	server := setupServer(t)
	ctx := context.Background()

	result, err := server.handleProgressResource(ctx, &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(result.Contents) == 0 {
		t.Fatal("Expected non-empty contents")
	}
	if result.Contents[0].URI != "arete://progress" {
		t.Errorf("URI = %s, want arete://progress", result.Contents[0].URI)
	}
	if result.Contents[0].MIMEType != "application/json" {
		t.Errorf("MIMEType = %s, want application/json", result.Contents[0].MIMEType)
	}
	if result.Contents[0].Text == "" {
		t.Error("Expected non-empty Text")
	}
}

func TestHandleAchievementsResource(t *testing.T) {
	server := setupServer(t)
	ctx := context.Background()

	if _, _, err := server.handleAwardXP(ctx, &mcp.CallToolRequest{}, awardXPInput{
		Amount: 50, Source: "workout_completed", Category: "push",
	}); err != nil {
		t.Fatalf("award failed: %v", err)
	}

	result, err := server.handleAchievementsResource(ctx, &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if result.Contents[0].URI != "arete://achievements" {
		t.Errorf("URI = %s, want arete://achievements", result.Contents[0].URI)
	}
	if !contains(result.Contents[0].Text, "first_workout") {
		t.Error("Expected first_workout in achievements resource")
	}
}

func TestUserDefaulting(t *testing.T) {
	server := setupServer(t)

	if got := server.user(""); got != "default" {
		t.Errorf("user(\"\") = %q, want default", got)
	}
	if got := server.user("harper"); got != "harper" {
		t.Errorf("user(\"harper\") = %q, want harper", got)
	}
}

// Helper function.
func contains(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
