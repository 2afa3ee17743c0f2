// ABOUTME: Root Cobra command for arete CLI.
// ABOUTME: Handles storage and engine lifecycle via PersistentPre/PostRunE.
package main

import (
	"fmt"

	"github.com/harperreed/arete/internal/config"
	"github.com/harperreed/arete/internal/engine"
	"github.com/harperreed/arete/internal/storage"
	"github.com/spf13/cobra"
)

var (
	repo   storage.Repository
	eng    *engine.Engine
	userID string
)

var rootCmd = &cobra.Command{
	Use:   "arete",
	Short: "Personal fitness, nutrition, and habit tracker",
	Long: `Arete tracks training, nutrition, and habits, turning everything you
log into XP. Levels, category ranks, and achievements make consistency
visible.

HOW XP WORKS:

  Every logged event earns XP toward your total level. Training XP also
  feeds one of four movement categories (core, push, pull, legs), each
  with its own level and rank (beginner through master).

QUICK START:

  $ arete workout hard --categories push,core   # Log a workout
  $ arete task add "meditate" --priority high   # Create a daily habit
  $ arete task done abc123                      # Complete it, earn XP
  $ arete progress                              # See level and categories
  $ arete achievements                          # See what you've unlocked

TASKS & STREAKS:

  Tasks recur daily, on weekdays, weekends, weekly, or on custom days.
  Completing a task on consecutive days builds a streak; streaks feed
  achievements like Week of Fire and Iron Will.

STATISTICS:

  $ arete stats streaks        # Best and worst streaks across tasks
  $ arete stats completion     # Completion rate for the week
  $ arete stats trend          # Per-domain completion trend

SYNC (AUTOMATIC):

  With the default charm backend, data syncs across devices via Charm
  Cloud, E2E encrypted with your SSH key. Set "backend": "sqlite" in
  ~/.config/arete/config.json for purely local storage.

MCP INTEGRATION:

  Run 'arete mcp' to start the Model Context Protocol server for use with
  Claude Desktop or other MCP-compatible AI assistants:

  {
    "mcpServers": {
      "arete": { "command": "arete", "args": ["mcp"] }
    }
  }`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip storage init for commands that don't need it
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if userID == "" {
			userID = cfg.GetDefaultUser()
		}

		repo, err = cfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}

		eng, err = engine.New(repo)
		if err != nil {
			return err
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if repo != nil {
			return repo.Close()
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&userID, "user", "u", "", "user ID (defaults to configured user)")
}
