package task

import (
	"strings"
	"time"

	"github.com/taskhive/taskhive/internal/apperr"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

const (
	MaxTitleLen       = 200
	MaxDescriptionLen = 1000
	MaxCategoryLen    = 50
)

func ParseStatus(s string) (Status, bool) {
	switch Status(strings.ToLower(s)) {
	case StatusActive:
		return StatusActive, true
	case StatusCompleted:
		return StatusCompleted, true
	}
	return "", false
}

func ParsePriority(s string) (Priority, bool) {
	switch Priority(strings.ToLower(s)) {
	case PriorityLow:
		return PriorityLow, true
	case PriorityMedium:
		return PriorityMedium, true
	case PriorityHigh:
		return PriorityHigh, true
	case PriorityUrgent:
		return PriorityUrgent, true
	}
	return "", false
}

type Task struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      Status     `json:"status"`
	Priority    Priority   `json:"priority"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Category    string     `json:"category,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Draft is the payload for creating a task. Zero-valued status and priority
// take their defaults during validation.
type Draft struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
	Category    string     `json:"category"`
}

// Validate normalizes the draft and reports the first constraint violation.
func (d *Draft) Validate() error {
	if d.Title == "" {
		return apperr.Validationf("title is required")
	}
	if len(d.Title) > MaxTitleLen {
		return apperr.Validationf("title must be at most %d characters", MaxTitleLen)
	}
	if len(d.Description) > MaxDescriptionLen {
		return apperr.Validationf("description must be at most %d characters", MaxDescriptionLen)
	}
	if len(d.Category) > MaxCategoryLen {
		return apperr.Validationf("category must be at most %d characters", MaxCategoryLen)
	}

	if d.Status == "" {
		d.Status = string(StatusActive)
	} else if _, ok := ParseStatus(d.Status); !ok {
		return apperr.Validationf("status must be one of: active, completed")
	}

	if d.Priority == "" {
		d.Priority = string(PriorityMedium)
	} else if _, ok := ParsePriority(d.Priority); !ok {
		return apperr.Validationf("priority must be one of: low, medium, high, urgent")
	}

	return nil
}

// NormalizedStatus returns the draft status after Validate.
func (d *Draft) NormalizedStatus() Status {
	s, _ := ParseStatus(d.Status)
	return s
}

// NormalizedPriority returns the draft priority after Validate.
func (d *Draft) NormalizedPriority() Priority {
	p, _ := ParsePriority(d.Priority)
	return p
}
