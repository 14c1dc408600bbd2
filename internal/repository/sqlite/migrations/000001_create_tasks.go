package migrations

import (
	"database/sql"
)

func init() {
	RegisterGoMigration(1, "create_tasks", Up_000001_create_tasks)
}

// Up_000001_create_tasks creates the tasks table. Name is the primary key;
// due dates are stored as RFC3339 text. The implicit rowid keeps insertion
// order for stable-sort tiebreaks.
func Up_000001_create_tasks(tx *sql.Tx) error {
	query := `
	CREATE TABLE IF NOT EXISTS tasks (
		name TEXT PRIMARY KEY NOT NULL,
		do_by TEXT NOT NULL,
		complete INTEGER NOT NULL DEFAULT 0
	)`
	_, err := tx.Exec(query)
	return err
}
