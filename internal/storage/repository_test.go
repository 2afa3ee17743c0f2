// ABOUTME: Tests for Repository implementations.
// ABOUTME: Runs the same suite against the SQLite and memory backends.
package storage

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/harperreed/arete/internal/models"
)

func backends(t *testing.T) map[string]Repository {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "arete.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	return map[string]Repository{
		"sqlite": db,
		"memory": NewMemoryStore(),
	}
}

func TestProgressRoundTrip(t *testing.T) {
	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			defer repo.Close()

			_, err := repo.GetProgress("default")
			if !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound for missing progress, got %v", err)
			}

			p := models.NewUserProgress("default")
			p.TotalXP = 150
			p.Level = 2
			p.CategoryXP[models.CategoryPush] = 150
			p.XPHistory = append(p.XPHistory, *models.NewXPTransaction(150, "workout_completed").WithCategory(models.CategoryPush))

			if err := repo.PutProgress(p); err != nil {
				t.Fatalf("PutProgress failed: %v", err)
			}

			got, err := repo.GetProgress("default")
			if err != nil {
				t.Fatalf("GetProgress failed: %v", err)
			}
			if got.TotalXP != 150 || got.Level != 2 {
				t.Errorf("got %d xp level %d, want 150/2", got.TotalXP, got.Level)
			}
			if got.CategoryXP[models.CategoryPush] != 150 {
				t.Errorf("CategoryXP[push] = %d, want 150", got.CategoryXP[models.CategoryPush])
			}
			if len(got.XPHistory) != 1 || got.XPHistory[0].Source != "workout_completed" {
				t.Errorf("history = %+v", got.XPHistory)
			}
		})
	}
}

func TestProgressOverwrite(t *testing.T) {
	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			defer repo.Close()

			p := models.NewUserProgress("default")
			if err := repo.PutProgress(p); err != nil {
				t.Fatalf("PutProgress failed: %v", err)
			}

			p.TotalXP = 500
			if err := repo.PutProgress(p); err != nil {
				t.Fatalf("second PutProgress failed: %v", err)
			}

			got, err := repo.GetProgress("default")
			if err != nil {
				t.Fatalf("GetProgress failed: %v", err)
			}
			if got.TotalXP != 500 {
				t.Errorf("TotalXP = %d, want 500 after overwrite", got.TotalXP)
			}
		})
	}
}

func TestTaskCRUD(t *testing.T) {
	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			defer repo.Close()

			task := models.NewTask("morning pushups").
				WithCategory("fitness").
				WithDomain(models.DomainSoma).
				WithRecurrence(models.RecurCustom).
				WithWeekdays([]int{1, 3, 5}).
				WithPriority(models.PriorityHigh).
				WithLabels([]string{"morning", "strength"})

			if err := repo.CreateTask(task); err != nil {
				t.Fatalf("CreateTask failed: %v", err)
			}

			got, err := repo.GetTask(task.ID.String())
			if err != nil {
				t.Fatalf("GetTask failed: %v", err)
			}
			if got.Name != "morning pushups" || got.Domain != models.DomainSoma {
				t.Errorf("got %+v", got)
			}
			if len(got.Weekdays) != 3 || got.Weekdays[1] != 3 {
				t.Errorf("Weekdays = %v, want [1 3 5]", got.Weekdays)
			}
			if len(got.Labels) != 2 {
				t.Errorf("Labels = %v", got.Labels)
			}

			// Prefix lookup
			byPrefix, err := repo.GetTask(task.ID.String()[:8])
			if err != nil {
				t.Fatalf("GetTask by prefix failed: %v", err)
			}
			if byPrefix.ID != task.ID {
				t.Errorf("prefix lookup returned %s", byPrefix.ID)
			}

			// Update with a completion
			got.Complete(time.Now())
			if err := repo.UpdateTask(got); err != nil {
				t.Fatalf("UpdateTask failed: %v", err)
			}
			updated, err := repo.GetTask(task.ID.String())
			if err != nil {
				t.Fatalf("GetTask after update failed: %v", err)
			}
			if updated.TotalCompletions != 1 || len(updated.CompletionHistory) != 1 {
				t.Errorf("completion not persisted: %+v", updated)
			}

			// Delete
			if err := repo.DeleteTask(task.ID.String()[:8]); err != nil {
				t.Fatalf("DeleteTask failed: %v", err)
			}
			if _, err := repo.GetTask(task.ID.String()); !errors.Is(err, ErrNotFound) {
				t.Errorf("expected ErrNotFound after delete, got %v", err)
			}
		})
	}
}

func TestListTasksOrdered(t *testing.T) {
	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			defer repo.Close()

			first := models.NewTask("first")
			first.CreatedAt = time.Now().Add(-2 * time.Hour).UTC()
			second := models.NewTask("second")
			second.CreatedAt = time.Now().Add(-1 * time.Hour).UTC()

			for _, task := range []*models.Task{second, first} {
				if err := repo.CreateTask(task); err != nil {
					t.Fatalf("CreateTask failed: %v", err)
				}
			}

			tasks, err := repo.ListTasks()
			if err != nil {
				t.Fatalf("ListTasks failed: %v", err)
			}
			if len(tasks) != 2 {
				t.Fatalf("expected 2 tasks, got %d", len(tasks))
			}
			if tasks[0].Name != "first" {
				t.Errorf("expected creation order, got %q first", tasks[0].Name)
			}
		})
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	for name, repo := range backends(t) {
		t.Run(name, func(t *testing.T) {
			defer repo.Close()

			p := models.NewUserProgress("default")
			p.TotalXP = 300
			if err := repo.PutProgress(p); err != nil {
				t.Fatalf("PutProgress failed: %v", err)
			}
			task := models.NewTask("stretch")
			if err := repo.CreateTask(task); err != nil {
				t.Fatalf("CreateTask failed: %v", err)
			}

			data, err := repo.GetAllData()
			if err != nil {
				t.Fatalf("GetAllData failed: %v", err)
			}
			if len(data.Progress) != 1 || len(data.Tasks) != 1 {
				t.Fatalf("export = %d progress / %d tasks", len(data.Progress), len(data.Tasks))
			}

			target := NewMemoryStore()
			if err := target.ImportData(data); err != nil {
				t.Fatalf("ImportData failed: %v", err)
			}
			imported, err := target.GetProgress("default")
			if err != nil {
				t.Fatalf("GetProgress on target failed: %v", err)
			}
			if imported.TotalXP != 300 {
				t.Errorf("imported TotalXP = %d, want 300", imported.TotalXP)
			}

			out, err := ExportJSON(data)
			if err != nil {
				t.Fatalf("ExportJSON failed: %v", err)
			}
			if len(out) == 0 {
				t.Error("empty JSON export")
			}
		})
	}
}
