package task

import (
	"encoding/json"
	"time"

	"github.com/taskhive/taskhive/internal/apperr"
)

// Patch carries a partial update. Each field has an explicit presence flag
// set while decoding the request body, so a client omitting a field leaves it
// untouched while an explicit null clears the optional ones.
type Patch struct {
	Title       string
	Description string
	Status      Status
	Priority    Priority
	DueDate     *time.Time
	Category    string

	HasTitle       bool
	HasDescription bool
	HasStatus      bool
	HasPriority    bool
	HasDueDate     bool
	HasCategory    bool
}

func (p *Patch) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if v, ok := raw["title"]; ok {
		p.HasTitle = true
		if err := json.Unmarshal(v, &p.Title); err != nil {
			return err
		}
	}
	if v, ok := raw["description"]; ok {
		p.HasDescription = true
		if !isNull(v) {
			if err := json.Unmarshal(v, &p.Description); err != nil {
				return err
			}
		}
	}
	if v, ok := raw["status"]; ok {
		p.HasStatus = true
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return err
		}
		p.Status = Status(s)
	}
	if v, ok := raw["priority"]; ok {
		p.HasPriority = true
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return err
		}
		p.Priority = Priority(s)
	}
	if v, ok := raw["due_date"]; ok {
		p.HasDueDate = true
		if !isNull(v) {
			var t time.Time
			if err := json.Unmarshal(v, &t); err != nil {
				return err
			}
			p.DueDate = &t
		}
	}
	if v, ok := raw["category"]; ok {
		p.HasCategory = true
		if !isNull(v) {
			if err := json.Unmarshal(v, &p.Category); err != nil {
				return err
			}
		}
	}

	return nil
}

func isNull(v json.RawMessage) bool {
	return string(v) == "null"
}

// Validate normalizes present fields and reports the first violation.
func (p *Patch) Validate() error {
	if p.HasTitle {
		if p.Title == "" {
			return apperr.Validationf("title cannot be empty")
		}
		if len(p.Title) > MaxTitleLen {
			return apperr.Validationf("title must be at most %d characters", MaxTitleLen)
		}
	}
	if p.HasDescription && len(p.Description) > MaxDescriptionLen {
		return apperr.Validationf("description must be at most %d characters", MaxDescriptionLen)
	}
	if p.HasCategory && len(p.Category) > MaxCategoryLen {
		return apperr.Validationf("category must be at most %d characters", MaxCategoryLen)
	}
	if p.HasStatus {
		s, ok := ParseStatus(string(p.Status))
		if !ok {
			return apperr.Validationf("status must be one of: active, completed")
		}
		p.Status = s
	}
	if p.HasPriority {
		pr, ok := ParsePriority(string(p.Priority))
		if !ok {
			return apperr.Validationf("priority must be one of: low, medium, high, urgent")
		}
		p.Priority = pr
	}
	return nil
}

// IsEmpty reports whether no field was present in the request body.
func (p *Patch) IsEmpty() bool {
	return !p.HasTitle && !p.HasDescription && !p.HasStatus &&
		!p.HasPriority && !p.HasDueDate && !p.HasCategory
}

// Apply copies present fields onto t. The caller refreshes UpdatedAt.
func (p *Patch) Apply(t *Task) {
	if p.HasTitle {
		t.Title = p.Title
	}
	if p.HasDescription {
		t.Description = p.Description
	}
	if p.HasStatus {
		t.Status = p.Status
	}
	if p.HasPriority {
		t.Priority = p.Priority
	}
	if p.HasDueDate {
		t.DueDate = p.DueDate
	}
	if p.HasCategory {
		t.Category = p.Category
	}
}
