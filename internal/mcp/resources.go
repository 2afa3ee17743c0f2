// ABOUTME: MCP resource implementations for the XP engine.
// ABOUTME: Provides arete://progress and arete://achievements resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/harperreed/arete/internal/models"
	"github.com/harperreed/arete/internal/xp"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerResources() {
	// arete://progress - level, XP, and category overview for the default user
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "arete://progress",
		Name:        "Progress Overview",
		Description: "Level, total XP, and per-category progress for the configured user",
		MIMEType:    "application/json",
	}, s.handleProgressResource)

	// arete://achievements - unlock state for the full catalog
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "arete://achievements",
		Name:        "Achievement Status",
		Description: "Unlock and claim status for every achievement",
		MIMEType:    "application/json",
	}, s.handleAchievementsResource)
}

// progressOverview builds the derived progress view shared by the
// get_progress tool and the progress resource.
func progressOverview(p *models.UserProgress) map[string]interface{} {
	categories := make(map[string]interface{}, len(models.AllCategories))
	for _, c := range models.AllCategories {
		categories[string(c)] = xp.GetCategoryStatistics(p, c)
	}

	overview := map[string]interface{}{
		"user_id":          p.UserID,
		"level":            p.Level,
		"total_xp":         p.TotalXP,
		"xp_to_next_level": xp.XPToNextLevel(p.TotalXP, p.Level),
		"progress_percent": xp.ProgressPercent(p.TotalXP, p.Level),
		"categories":       categories,
		"achievements":     len(p.Achievements),
	}
	if bw := p.LatestBodyweight(); bw != nil {
		overview["bodyweight"] = bw
	}
	return overview
}

// Resource handlers

func (s *Server) handleProgressResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	progress, err := s.engine.GetProgress(ctx, s.defaultUser)
	if err != nil {
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}

	data, err := json.MarshalIndent(progressOverview(progress), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      "arete://progress",
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

func (s *Server) handleAchievementsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	progress, err := s.engine.GetProgress(ctx, s.defaultUser)
	if err != nil {
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}

	unlocked := make([]map[string]interface{}, 0)
	locked := make([]map[string]interface{}, 0)
	for _, def := range s.engine.Definitions() {
		entry := map[string]interface{}{
			"id":        def.ID,
			"title":     def.Title,
			"icon":      def.Icon,
			"xp_reward": def.XPReward,
		}
		if state, ok := progress.Achievements[def.ID]; ok {
			entry["status"] = state.Status
			entry["unlocked_at"] = state.UnlockedAt.Format(time.RFC3339)
			unlocked = append(unlocked, entry)
		} else {
			locked = append(locked, entry)
		}
	}

	result := map[string]interface{}{
		"generated_at": time.Now().Format(time.RFC3339),
		"unlocked":     unlocked,
		"locked":       locked,
		"counts": map[string]int{
			"unlocked": len(unlocked),
			"locked":   len(locked),
		},
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      "arete://achievements",
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
