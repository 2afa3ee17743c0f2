// ABOUTME: Repository interface for progress and task storage.
// ABOUTME: Defines the contract shared by the charm, sqlite, and memory backends.
package storage

import (
	"errors"

	"github.com/harperreed/arete/internal/models"
)

// ErrNotFound is returned when a requested document does not exist.
var ErrNotFound = errors.New("not found")

// Repository defines the storage interface for progress documents and tasks.
// This interface allows swapping implementations (e.g., for testing).
//
// PutProgress must replace the whole document in a single write so that an
// award operation is atomic from the caller's point of view.
type Repository interface {
	// Progress operations (one document per user)
	GetProgress(userID string) (*models.UserProgress, error)
	PutProgress(p *models.UserProgress) error

	// Task operations
	CreateTask(t *models.Task) error
	GetTask(idOrPrefix string) (*models.Task, error)
	UpdateTask(t *models.Task) error
	ListTasks() ([]*models.Task, error)
	DeleteTask(idOrPrefix string) error

	// Export/Import
	GetAllData() (*ExportData, error)
	ImportData(data *ExportData) error

	// Lifecycle
	Close() error
}
