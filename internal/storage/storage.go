package storage

import (
	"context"

	taskmodel "github.com/taskhive/taskhive/internal/models/task"
	usermodel "github.com/taskhive/taskhive/internal/models/user"
)

// MaxListLimit caps a single page of tasks. Larger requests are clamped,
// not rejected.
const MaxListLimit = 100

// ListFilter narrows a task listing. Status and Priority are exact matches,
// case-insensitive; Search is a substring match against title or description.
type ListFilter struct {
	Status   string
	Priority string
	Search   string
	Skip     int
	Limit    int
}

// Stats holds per-owner aggregate counts. Completed and Overdue are disjoint
// by status; the priority counts overlap both.
type Stats struct {
	Total        int64 `json:"total"`
	Completed    int64 `json:"completed"`
	Active       int64 `json:"active"`
	Overdue      int64 `json:"overdue"`
	Urgent       int64 `json:"urgent"`
	HighPriority int64 `json:"high_priority"`
}

type UserStore interface {
	// CreateUser persists a new user; a duplicate email yields
	// apperr.ErrConflict.
	CreateUser(ctx context.Context, req *usermodel.CreateUserRequest, passwordHash string) (*usermodel.User, error)
	// GetUserByEmail returns (nil, nil) when no such user exists.
	GetUserByEmail(ctx context.Context, email string) (*usermodel.User, error)
	GetUserByID(ctx context.Context, userID string) (*usermodel.User, error)
}

type TaskStore interface {
	CreateTask(ctx context.Context, t *taskmodel.Task) error
	// GetTask looks up by ID alone; the service layer decides between
	// not-found and forbidden from the returned owner. Returns (nil, nil)
	// when absent.
	GetTask(ctx context.Context, taskID string) (*taskmodel.Task, error)
	ListTasks(ctx context.Context, ownerID string, filter ListFilter) ([]*taskmodel.Task, error)
	UpdateTask(ctx context.Context, t *taskmodel.Task) error
	DeleteTask(ctx context.Context, taskID string) error
	TaskStats(ctx context.Context, ownerID string) (*Stats, error)
}

// Store bundles both stores behind one backend.
type Store interface {
	UserStore
	TaskStore
}
