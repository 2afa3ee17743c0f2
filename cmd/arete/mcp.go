// ABOUTME: CLI command for starting the MCP server.
// ABOUTME: Runs a stdio-based MCP server for AI assistant integration.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/arete/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

MCP allows AI assistants like Claude to award XP, log workouts, and manage
tasks through a standardized protocol. The server communicates via
stdin/stdout.

CLAUDE DESKTOP CONFIGURATION:

  Add this to your Claude Desktop config (claude_desktop_config.json):

  {
    "mcpServers": {
      "arete": {
        "command": "arete",
        "args": ["mcp"]
      }
    }
  }

  On macOS, the config is at:
    ~/Library/Application Support/Claude/claude_desktop_config.json

AVAILABLE TOOLS:

  award_xp             Award XP from any source
  log_workout          Log a workout across categories
  log_exercise         Log a single exercise
  add_task             Create a recurring task
  complete_task        Complete a task for today
  get_progress         Level, XP, and category overview
  get_category         One category's detail
  get_streaks          Streak summary across tasks
  get_completion_rate  Completion rate for a period
  list_achievements    Achievements with unlock progress
  claim_achievement    Claim an unlocked achievement
  log_bodyweight       Record a bodyweight entry

AVAILABLE RESOURCES:

  arete://progress      Full progress overview
  arete://achievements  Achievement catalog with status`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(eng, userID)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Handle shutdown signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
