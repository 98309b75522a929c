package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/taskhive/taskhive/internal/apperr"
	taskmodel "github.com/taskhive/taskhive/internal/models/task"
	"github.com/taskhive/taskhive/internal/storage"
)

// DashboardStats extends the raw aggregate counts with a derived completion
// percentage, rounded to two decimal places.
type DashboardStats struct {
	Total          int64   `json:"total"`
	Completed      int64   `json:"completed"`
	Active         int64   `json:"active"`
	Overdue        int64   `json:"overdue"`
	Urgent         int64   `json:"urgent"`
	HighPriority   int64   `json:"high_priority"`
	CompletionRate float64 `json:"completion_rate"`
}

type TaskService struct {
	store storage.TaskStore
}

func NewTaskService(store storage.TaskStore) *TaskService {
	return &TaskService{store: store}
}

func (s *TaskService) Create(ctx context.Context, ownerID string, draft *taskmodel.Draft) (*taskmodel.Task, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	t := &taskmodel.Task{
		ID:          uuid.New().String(),
		UserID:      ownerID,
		Title:       draft.Title,
		Description: draft.Description,
		Status:      draft.NormalizedStatus(),
		Priority:    draft.NormalizedPriority(),
		DueDate:     draft.DueDate,
		Category:    draft.Category,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.CreateTask(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return t, nil
}

func (s *TaskService) List(ctx context.Context, ownerID string, filter storage.ListFilter) ([]*taskmodel.Task, error) {
	if filter.Skip < 0 {
		return nil, apperr.Validationf("skip must not be negative")
	}
	if filter.Status != "" {
		if _, ok := taskmodel.ParseStatus(filter.Status); !ok {
			return nil, apperr.Validationf("status must be one of: active, completed")
		}
	}
	if filter.Priority != "" {
		if _, ok := taskmodel.ParsePriority(filter.Priority); !ok {
			return nil, apperr.Validationf("priority must be one of: low, medium, high, urgent")
		}
	}

	return s.store.ListTasks(ctx, ownerID, filter)
}

// Get returns the task only when ownerID owns it. A task owned by someone
// else yields ErrForbidden rather than ErrNotFound, so its existence leaks,
// which the API accepts in exchange for honest status codes.
func (s *TaskService) Get(ctx context.Context, ownerID, taskID string) (*taskmodel.Task, error) {
	return s.ownedTask(ctx, ownerID, taskID)
}

func (s *TaskService) Update(ctx context.Context, ownerID, taskID string, patch *taskmodel.Patch) (*taskmodel.Task, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	t, err := s.ownedTask(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}

	if patch.IsEmpty() {
		return t, nil
	}

	patch.Apply(t)
	t.UpdatedAt = time.Now()

	if err := s.store.UpdateTask(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return t, nil
}

// Complete marks a task completed. Completing an already completed task is a
// no-op that still succeeds.
func (s *TaskService) Complete(ctx context.Context, ownerID, taskID string) (*taskmodel.Task, error) {
	t, err := s.ownedTask(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}

	if t.Status == taskmodel.StatusCompleted {
		return t, nil
	}

	t.Status = taskmodel.StatusCompleted
	t.UpdatedAt = time.Now()

	if err := s.store.UpdateTask(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to complete task: %w", err)
	}

	return t, nil
}

func (s *TaskService) Delete(ctx context.Context, ownerID, taskID string) error {
	if _, err := s.ownedTask(ctx, ownerID, taskID); err != nil {
		return err
	}

	if err := s.store.DeleteTask(ctx, taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

func (s *TaskService) Stats(ctx context.Context, ownerID string) (*DashboardStats, error) {
	stats, err := s.store.TaskStats(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute stats: %w", err)
	}

	out := &DashboardStats{
		Total:        stats.Total,
		Completed:    stats.Completed,
		Active:       stats.Active,
		Overdue:      stats.Overdue,
		Urgent:       stats.Urgent,
		HighPriority: stats.HighPriority,
	}
	if stats.Total > 0 {
		rate := float64(stats.Completed) / float64(stats.Total) * 100
		out.CompletionRate = float64(int(rate*100+0.5)) / 100
	}

	return out, nil
}

func (s *TaskService) ownedTask(ctx context.Context, ownerID, taskID string) (*taskmodel.Task, error) {
	t, err := s.store.GetTask(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	if t == nil {
		return nil, fmt.Errorf("%w: task %s", apperr.ErrNotFound, taskID)
	}
	if t.UserID != ownerID {
		return nil, fmt.Errorf("%w: task belongs to another user", apperr.ErrForbidden)
	}
	return t, nil
}
