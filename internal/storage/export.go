// ABOUTME: Export and import functionality for progress and task data.
// ABOUTME: Supports JSON and YAML export formats.
package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/harperreed/arete/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportData represents the full export format.
type ExportData struct {
	Version    string                 `json:"version" yaml:"version"`
	ExportedAt time.Time              `json:"exported_at" yaml:"exported_at"`
	Tool       string                 `json:"tool" yaml:"tool"`
	Progress   []*models.UserProgress `json:"progress" yaml:"progress"`
	Tasks      []*models.Task         `json:"tasks" yaml:"tasks"`
}

// GetAllData retrieves all data for export.
func (d *DB) GetAllData() (*ExportData, error) {
	rows, err := d.db.Query("SELECT document FROM user_progress ORDER BY user_id ASC")
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	defer rows.Close()

	var progress []*models.UserProgress
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan progress: %w", err)
		}
		var p models.UserProgress
		if err := json.Unmarshal([]byte(doc), &p); err != nil {
			return nil, fmt.Errorf("unmarshal progress: %w", err)
		}
		progress = append(progress, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}

	tasks, err := d.ListTasks()
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	return &ExportData{
		Version:    "1.0",
		ExportedAt: time.Now(),
		Tool:       "arete",
		Progress:   progress,
		Tasks:      tasks,
	}, nil
}

// ImportData imports data from an export file.
func (d *DB) ImportData(data *ExportData) error {
	for _, p := range data.Progress {
		if err := d.PutProgress(p); err != nil {
			return fmt.Errorf("import progress: %w", err)
		}
	}
	for _, t := range data.Tasks {
		if err := d.CreateTask(t); err != nil {
			return fmt.Errorf("import task: %w", err)
		}
	}
	return nil
}

// ExportJSON renders an export as indented JSON.
func ExportJSON(data *ExportData) ([]byte, error) {
	return json.MarshalIndent(data, "", "  ")
}

// ExportYAML renders an export as YAML.
func ExportYAML(data *ExportData) ([]byte, error) {
	return yaml.Marshal(data)
}
