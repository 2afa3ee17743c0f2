// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: Progress documents are single JSON rows; tasks are relational rows.
package storage

// initSchema creates or updates the database schema. The progress document
// lives in one row per user so an award is a single atomic UPDATE.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS user_progress (
		user_id TEXT PRIMARY KEY,
		document TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS tasks (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		category TEXT,
		domain TEXT NOT NULL,
		recurrence TEXT NOT NULL,
		weekdays TEXT,
		priority TEXT NOT NULL,
		labels TEXT,
		current_streak INTEGER NOT NULL DEFAULT 0,
		best_streak INTEGER NOT NULL DEFAULT 0,
		total_completions INTEGER NOT NULL DEFAULT 0,
		completion_history TEXT,
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_tasks_domain ON tasks(domain);
	CREATE INDEX IF NOT EXISTS idx_tasks_created ON tasks(created_at DESC);
	`

	_, err := d.db.Exec(schema)
	return err
}
