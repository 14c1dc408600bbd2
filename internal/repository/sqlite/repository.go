package sqlite

import (
	"context"
	"database/sql"
	"time"

	"todolist/internal/errors"
	"todolist/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// Repository defines the interface for database operations on the task collection
type Repository interface {
	// Create operations
	CreateTask(ctx context.Context, task *Task) error

	// Read operations
	GetTask(ctx context.Context, name string) (*Task, error)
	ListTasks(ctx context.Context, order Order) ([]*Task, error)
	SearchTasksByName(ctx context.Context, name string) ([]*Task, error)

	// Update operations
	UpdateDoBy(ctx context.Context, name string, doBy time.Time) error
	RenameTask(ctx context.Context, name string, newName string) error
	UpdateTask(ctx context.Context, name string, newName string, doBy time.Time) error
	SetCompletion(ctx context.Context, name string, complete bool) error
	ToggleCompletion(ctx context.Context, name string) (*Task, error)

	// Delete operations
	DeleteTask(ctx context.Context, name string) error
	DeleteAllTasks(ctx context.Context) (int, error)

	// Utility
	Close() error
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db *sql.DB
}

// New creates a new SQLite repository instance
func New(dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}

	// One connection: every store call serializes on the single task
	// collection, and :memory: databases stay coherent.
	db.SetMaxOpenConns(1)

	// Run migrations
	if err := migrations.RunMigrations(db); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// CreateTask inserts a new task. A name collision surfaces as a typed
// duplicate key error rather than a raw constraint failure.
func (r *SQLiteRepository) CreateTask(ctx context.Context, task *Task) error {
	query := `INSERT INTO tasks (name, do_by, complete) VALUES (?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query, task.Name, FormatTimeForDB(task.DoBy), task.Complete)
	if err != nil {
		if IsUniqueConstraintError(err) {
			return errors.NewDuplicateKeyError("task", task.Name)
		}
		return HandleDatabaseError("insert task", err)
	}
	return nil
}

// GetTask retrieves a task by name
func (r *SQLiteRepository) GetTask(ctx context.Context, name string) (*Task, error) {
	query := `SELECT name, do_by, complete FROM tasks WHERE name = ?`
	return QuerySingle(ctx, r.db, query, ScanTask, "task", name, name)
}

// ListTasks retrieves all tasks sorted ascending by the requested field.
// The rowid tiebreak keeps the sort stable in insertion order.
func (r *SQLiteRepository) ListTasks(ctx context.Context, order Order) ([]*Task, error) {
	query := `SELECT name, do_by, complete FROM tasks ORDER BY ` + order.Column() + ` ASC, rowid ASC`
	return QueryMultiple(ctx, r.db, query, ScanTasks, "tasks")
}

// SearchTasksByName retrieves tasks matching the name exactly.
// Name is unique so this yields zero or one row, but the contract is a sequence.
func (r *SQLiteRepository) SearchTasksByName(ctx context.Context, name string) ([]*Task, error) {
	query := `SELECT name, do_by, complete FROM tasks WHERE name = ? ORDER BY rowid ASC`
	return QueryMultiple(ctx, r.db, query, ScanTasks, "tasks", name)
}

// UpdateDoBy updates the due date of an existing task
func (r *SQLiteRepository) UpdateDoBy(ctx context.Context, name string, doBy time.Time) error {
	query := `UPDATE tasks SET do_by = ? WHERE name = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "task", name, FormatTimeForDB(doBy), name)
}

// RenameTask changes the primary key of an existing task.
// Renaming onto an existing name fails with a duplicate key error.
func (r *SQLiteRepository) RenameTask(ctx context.Context, name string, newName string) error {
	if name == newName {
		// Still report unknown names consistently.
		_, err := r.GetTask(ctx, name)
		return err
	}

	return WithTransaction(ctx, r.db, func(tx *sql.Tx) error {
		if err := checkRenameTarget(ctx, tx, newName); err != nil {
			return err
		}

		result, err := tx.ExecContext(ctx, `UPDATE tasks SET name = ? WHERE name = ?`, newName, name)
		if err != nil {
			return HandleDatabaseError("rename task", err)
		}
		return ValidateRowsAffected(result, "task", name)
	})
}

// UpdateTask replaces the name and due date of an existing task in one
// atomic operation. Used by the whole-record edit flow.
func (r *SQLiteRepository) UpdateTask(ctx context.Context, name string, newName string, doBy time.Time) error {
	return WithTransaction(ctx, r.db, func(tx *sql.Tx) error {
		if newName != name {
			if err := checkRenameTarget(ctx, tx, newName); err != nil {
				return err
			}
		}

		result, err := tx.ExecContext(ctx, `UPDATE tasks SET name = ?, do_by = ? WHERE name = ?`, newName, FormatTimeForDB(doBy), name)
		if err != nil {
			return HandleDatabaseError("update task", err)
		}
		return ValidateRowsAffected(result, "task", name)
	})
}

// SetCompletion sets the completion status of an existing task
func (r *SQLiteRepository) SetCompletion(ctx context.Context, name string, complete bool) error {
	query := `UPDATE tasks SET complete = ? WHERE name = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "task", name, complete, name)
}

// ToggleCompletion flips the completion status of an existing task as a
// single read-modify-write transaction and returns the updated task.
func (r *SQLiteRepository) ToggleCompletion(ctx context.Context, name string) (*Task, error) {
	var toggled *Task

	err := WithTransaction(ctx, r.db, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, `SELECT name, do_by, complete FROM tasks WHERE name = ?`, name)
		task, err := ScanTask(row)
		if err != nil {
			if err == sql.ErrNoRows {
				return errors.NewNotFoundError("task", name)
			}
			return HandleDatabaseError("scan task", err)
		}

		task.Complete = !task.Complete
		if _, err := tx.ExecContext(ctx, `UPDATE tasks SET complete = ? WHERE name = ?`, task.Complete, name); err != nil {
			return HandleDatabaseError("toggle task completion", err)
		}

		toggled = task
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toggled, nil
}

// DeleteTask deletes a task by name
func (r *SQLiteRepository) DeleteTask(ctx context.Context, name string) error {
	query := `DELETE FROM tasks WHERE name = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "task", name, name)
}

// DeleteAllTasks removes every task in one atomic operation and reports
// how many rows were removed. The collection is either emptied or untouched.
func (r *SQLiteRepository) DeleteAllTasks(ctx context.Context) (int, error) {
	var count int64

	err := WithTransaction(ctx, r.db, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `DELETE FROM tasks`)
		if err != nil {
			return HandleDatabaseError("delete all tasks", err)
		}

		count, err = result.RowsAffected()
		if err != nil {
			return HandleDatabaseError("get rows affected", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

// checkRenameTarget rejects a rename onto a name that is already taken.
func checkRenameTarget(ctx context.Context, tx *sql.Tx, newName string) error {
	var exists int
	err := tx.QueryRowContext(ctx, `SELECT COUNT(1) FROM tasks WHERE name = ?`, newName).Scan(&exists)
	if err != nil {
		return HandleDatabaseError("check rename target", err)
	}
	if exists > 0 {
		return errors.NewDuplicateKeyError("task", newName)
	}
	return nil
}
