package services

import (
	"context"
	"errors"

	"github.com/kavr/tasktrack-be/internal/models"
	"github.com/kavr/tasktrack-be/internal/repository"
)

// TaskServiceProvider defines the interface for task services. Every
// operation takes the id of the requesting user and only ever touches
// rows that user owns.
type TaskServiceProvider interface {
	Create(ctx context.Context, userID int64, payload *models.CreateTaskPayload) (*models.Task, error)
	ListForUser(ctx context.Context, userID int64) ([]models.Task, error)
	Complete(ctx context.Context, userID, taskID int64) (*models.Task, error)
	Delete(ctx context.Context, userID, taskID int64) error
}

// TaskService provides business logic for task management.
type TaskService struct {
	tasks repository.TaskRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(tasks repository.TaskRepository) *TaskService {
	return &TaskService{tasks: tasks}
}

// Create persists a new task owned by userID, not yet complete.
func (s *TaskService) Create(ctx context.Context, userID int64, payload *models.CreateTaskPayload) (*models.Task, error) {
	task := &models.Task{
		Title:       payload.Title,
		Description: payload.Description,
		Priority:    *payload.Priority,
		Complete:    false,
		UserID:      userID,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// ListForUser returns all of userID's tasks in creation order.
func (s *TaskService) ListForUser(ctx context.Context, userID int64) ([]models.Task, error) {
	return s.tasks.ListByOwner(ctx, userID)
}

// Complete marks an owned task as done and returns the updated record.
// It is idempotent: completing an already-complete task succeeds.
func (s *TaskService) Complete(ctx context.Context, userID, taskID int64) (*models.Task, error) {
	task, err := s.tasks.MarkComplete(ctx, taskID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

// Delete removes an owned task.
func (s *TaskService) Delete(ctx context.Context, userID, taskID int64) error {
	if err := s.tasks.Delete(ctx, taskID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTaskNotFound
		}
		return err
	}
	return nil
}
