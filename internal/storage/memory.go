package storage

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/taskhive/taskhive/internal/apperr"
	taskmodel "github.com/taskhive/taskhive/internal/models/task"
	usermodel "github.com/taskhive/taskhive/internal/models/user"
)

// MemoryStore is the embedded default backend. Task order follows insertion
// order, which the listing contract treats as implementation-defined.
type MemoryStore struct {
	mu        sync.RWMutex
	users     map[string]*usermodel.User
	emails    map[string]string // email -> user ID
	tasks     map[string]*taskmodel.Task
	taskOrder []string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:  make(map[string]*usermodel.User),
		emails: make(map[string]string),
		tasks:  make(map[string]*taskmodel.Task),
	}
}

func (s *MemoryStore) CreateUser(ctx context.Context, req *usermodel.CreateUserRequest, passwordHash string) (*usermodel.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.emails[req.Email]; exists {
		return nil, fmt.Errorf("%w: email already registered", apperr.ErrConflict)
	}

	now := time.Now()
	u := &usermodel.User{
		ID:           uuid.New().String(),
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: passwordHash,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	s.users[u.ID] = u
	s.emails[u.Email] = u.ID

	clone := *u
	return &clone, nil
}

func (s *MemoryStore) GetUserByEmail(ctx context.Context, email string) (*usermodel.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, exists := s.emails[email]
	if !exists {
		return nil, nil
	}

	clone := *s.users[id]
	return &clone, nil
}

func (s *MemoryStore) GetUserByID(ctx context.Context, userID string) (*usermodel.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, exists := s.users[userID]
	if !exists {
		return nil, nil
	}

	clone := *u
	return &clone, nil
}

func (s *MemoryStore) CreateTask(ctx context.Context, t *taskmodel.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tasks[t.ID]; exists {
		return fmt.Errorf("%w: task %s already exists", apperr.ErrConflict, t.ID)
	}

	clone := *t
	s.tasks[t.ID] = &clone
	s.taskOrder = append(s.taskOrder, t.ID)
	return nil
}

func (s *MemoryStore) GetTask(ctx context.Context, taskID string) (*taskmodel.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, exists := s.tasks[taskID]
	if !exists {
		return nil, nil
	}

	clone := *t
	return &clone, nil
}

func (s *MemoryStore) ListTasks(ctx context.Context, ownerID string, filter ListFilter) ([]*taskmodel.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	limit := filter.Limit
	if limit <= 0 || limit > MaxListLimit {
		limit = MaxListLimit
	}

	matched := 0
	tasks := make([]*taskmodel.Task, 0)
	for _, id := range s.taskOrder {
		t, exists := s.tasks[id]
		if !exists || t.UserID != ownerID {
			continue
		}
		if !matchesFilter(t, filter) {
			continue
		}

		if matched < filter.Skip {
			matched++
			continue
		}
		matched++

		if len(tasks) >= limit {
			break
		}
		clone := *t
		tasks = append(tasks, &clone)
	}

	return tasks, nil
}

func matchesFilter(t *taskmodel.Task, filter ListFilter) bool {
	if filter.Status != "" && !strings.EqualFold(string(t.Status), filter.Status) {
		return false
	}
	if filter.Priority != "" && !strings.EqualFold(string(t.Priority), filter.Priority) {
		return false
	}
	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		if !strings.Contains(strings.ToLower(t.Title), needle) &&
			!strings.Contains(strings.ToLower(t.Description), needle) {
			return false
		}
	}
	return true
}

func (s *MemoryStore) UpdateTask(ctx context.Context, t *taskmodel.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tasks[t.ID]; !exists {
		return fmt.Errorf("%w: task %s", apperr.ErrNotFound, t.ID)
	}

	clone := *t
	s.tasks[t.ID] = &clone
	return nil
}

func (s *MemoryStore) DeleteTask(ctx context.Context, taskID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tasks[taskID]; !exists {
		return fmt.Errorf("%w: task %s", apperr.ErrNotFound, taskID)
	}

	delete(s.tasks, taskID)
	for i, id := range s.taskOrder {
		if id == taskID {
			s.taskOrder = append(s.taskOrder[:i], s.taskOrder[i+1:]...)
			break
		}
	}
	return nil
}

func (s *MemoryStore) TaskStats(ctx context.Context, ownerID string) (*Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := time.Now()
	stats := &Stats{}
	for _, t := range s.tasks {
		if t.UserID != ownerID {
			continue
		}
		stats.Total++
		switch t.Status {
		case taskmodel.StatusCompleted:
			stats.Completed++
		case taskmodel.StatusActive:
			stats.Active++
			if t.DueDate != nil && t.DueDate.Before(now) {
				stats.Overdue++
			}
		}
		switch t.Priority {
		case taskmodel.PriorityUrgent:
			stats.Urgent++
		case taskmodel.PriorityHigh:
			stats.HighPriority++
		}
	}

	return stats, nil
}
