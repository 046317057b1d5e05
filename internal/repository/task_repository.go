package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/kavr/tasktrack-be/internal/models"
)

// TaskRepository defines the typed CRUD surface for task records. Every
// read and mutation is scoped by the owning user id; a task belonging to
// another user is indistinguishable from one that does not exist.
type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	ListByOwner(ctx context.Context, userID int64) ([]models.Task, error)
	GetByIDAndOwner(ctx context.Context, id, userID int64) (*models.Task, error)
	MarkComplete(ctx context.Context, id, userID int64) (*models.Task, error)
	Delete(ctx context.Context, id, userID int64) error
}

type sqliteTaskRepository struct {
	db *sqlx.DB
}

// NewTaskRepository creates a new SQLite-based TaskRepository.
func NewTaskRepository(db *sqlx.DB) TaskRepository {
	return &sqliteTaskRepository{db: db}
}

const taskColumns = `id, title, description, priority, complete, user_id`

// Create inserts a new task and fills in its generated id.
func (r *sqliteTaskRepository) Create(ctx context.Context, task *models.Task) error {
	query := `INSERT INTO tasks (title, description, priority, complete, user_id) VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		task.Title, task.Description, task.Priority, task.Complete, task.UserID)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read new task id: %w", err)
	}
	task.ID = id
	return nil
}

// ListByOwner returns all tasks owned by userID in insertion order.
func (r *sqliteTaskRepository) ListByOwner(ctx context.Context, userID int64) ([]models.Task, error) {
	tasks := []models.Task{}
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = ? ORDER BY id`
	if err := r.db.SelectContext(ctx, &tasks, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// GetByIDAndOwner retrieves a single task scoped by owner.
func (r *sqliteTaskRepository) GetByIDAndOwner(ctx context.Context, id, userID int64) (*models.Task, error) {
	var task models.Task
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ? AND user_id = ?`
	if err := r.db.GetContext(ctx, &task, query, id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return &task, nil
}

// MarkComplete sets the completion flag on an owned task and returns the
// updated row. Completing an already-complete task is a no-op success.
func (r *sqliteTaskRepository) MarkComplete(ctx context.Context, id, userID int64) (*models.Task, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET complete = 1 WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to mark task complete: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to check task update: %w", err)
	}
	if affected == 0 {
		return nil, ErrNotFound
	}
	return r.GetByIDAndOwner(ctx, id, userID)
}

// Delete removes an owned task.
func (r *sqliteTaskRepository) Delete(ctx context.Context, id, userID int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM tasks WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check task delete: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
