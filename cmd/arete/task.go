// ABOUTME: CLI commands for managing recurring tasks and habits.
// ABOUTME: Supports add, done, list, and delete subcommands.
package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/arete/internal/models"
	"github.com/spf13/cobra"
)

var (
	taskCategory   string
	taskDomain     string
	taskRecurrence string
	taskWeekdays   []int
	taskPriority   string
	taskLabels     []string
	taskDueOnly    bool
)

var taskCmd = &cobra.Command{
	Use:     "task",
	Aliases: []string{"t"},
	Short:   "Manage recurring tasks and habits",
	Long: `Track recurring tasks and habits.

Completing a task earns XP scaled by its priority (low 15, medium 25,
high 40) and builds a streak when completed on consecutive days.

RECURRENCE:

  daily      due every day (default)
  weekdays   due Monday through Friday
  weekends   due Saturday and Sunday
  weekly     due once a week, on the day the task was created
  custom     due on explicit weekdays (--weekdays 1,3,5; 0=Sunday)

DOMAINS:

  ethos      habits and discipline (default)
  trophe     nutrition
  soma       physical training

EXAMPLES:

  arete task add "meditate" --priority high
  arete task add "meal prep" --domain trophe --recurrence weekends
  arete task add "stretch" --recurrence custom --weekdays 1,3,5
  arete task done abc123
  arete task list --due`,
}

var taskAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a new task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		task := models.NewTask(args[0])
		if taskCategory != "" {
			task.WithCategory(taskCategory)
		}
		if taskDomain != "" {
			if !models.IsValidDomain(taskDomain) {
				return fmt.Errorf("unknown domain: %s (use ethos, trophe, or soma)", taskDomain)
			}
			task.WithDomain(models.Domain(taskDomain))
		}
		if taskRecurrence != "" {
			if !models.IsValidRecurrence(taskRecurrence) {
				return fmt.Errorf("unknown recurrence: %s", taskRecurrence)
			}
			task.WithRecurrence(models.Recurrence(taskRecurrence))
		}
		if len(taskWeekdays) > 0 {
			task.WithWeekdays(taskWeekdays)
		}
		if taskPriority != "" {
			task.WithPriority(taskPriority)
		}
		if len(taskLabels) > 0 {
			task.WithLabels(taskLabels)
		}

		if err := eng.CreateTask(cmd.Context(), task); err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}

		color.Green("✓ Added task %q (ID: %s)", task.Name, task.ID.String()[:8])
		return nil
	},
}

var taskDoneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Complete a task for today and earn XP",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		completion, err := eng.CompleteTask(cmd.Context(), userID, args[0])
		if err != nil {
			return fmt.Errorf("failed to complete task: %w", err)
		}

		if !completion.Counted {
			fmt.Printf("%q already completed today.\n", completion.Task.Name)
			return nil
		}

		color.Green("✓ Completed %q: +%d XP (streak: %d)",
			completion.Task.Name, completion.Award.XPAdded, completion.Task.CurrentStreak)
		printAwardDetail(completion.Award)
		return nil
	},
}

var taskListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		tasks, err := eng.ListTasks(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list tasks: %w", err)
		}

		now := time.Now()
		faint := color.New(color.Faint)
		shown := 0
		for _, task := range tasks {
			if taskDueOnly && !task.DueOn(now) {
				continue
			}
			shown++

			mark := " "
			if task.CompletedOn(now) {
				mark = color.GreenString("✓")
			}
			streak := ""
			if task.CurrentStreak > 1 {
				streak = fmt.Sprintf("  🔥%d", task.CurrentStreak)
			}
			fmt.Printf("%s %s %s %s%s\n",
				mark,
				faint.Sprint(task.ID.String()[:8]),
				padRight(truncate(task.Name, 30), 30),
				faint.Sprintf("%s/%s/%s", task.Domain, task.Recurrence, task.Priority),
				streak)
		}

		if shown == 0 {
			fmt.Println("No tasks found.")
		}
		return nil
	},
}

var taskDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := eng.DeleteTask(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("failed to delete task: %w", err)
		}
		color.Green("✓ Deleted task: %s", args[0])
		return nil
	},
}

func init() {
	taskAddCmd.Flags().StringVarP(&taskCategory, "category", "c", "", "free-form grouping label")
	taskAddCmd.Flags().StringVarP(&taskDomain, "domain", "d", "", "life domain (ethos, trophe, soma)")
	taskAddCmd.Flags().StringVarP(&taskRecurrence, "recurrence", "r", "", "recurrence rule (daily, weekdays, weekends, weekly, custom)")
	taskAddCmd.Flags().IntSliceVar(&taskWeekdays, "weekdays", nil, "weekday numbers for custom recurrence (0=Sunday)")
	taskAddCmd.Flags().StringVarP(&taskPriority, "priority", "p", "", "priority (low, medium, high)")
	taskAddCmd.Flags().StringSliceVar(&taskLabels, "labels", nil, "freeform labels")
	taskListCmd.Flags().BoolVar(&taskDueOnly, "due", false, "only show tasks due today")

	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskDoneCmd)
	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskDeleteCmd)
	rootCmd.AddCommand(taskCmd)
}
