package task

import (
	"encoding/json"
	"testing"
	"time"
)

func TestPatch_UnmarshalTracksPresence(t *testing.T) {
	var p Patch
	if err := json.Unmarshal([]byte(`{"priority":"urgent"}`), &p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !p.HasPriority {
		t.Error("expected priority to be marked present")
	}
	if p.HasTitle || p.HasDescription || p.HasStatus || p.HasDueDate || p.HasCategory {
		t.Error("expected absent fields to stay unmarked")
	}
	if p.Priority != "urgent" {
		t.Errorf("expected priority 'urgent', got '%s'", p.Priority)
	}
}

func TestPatch_ExplicitNullClearsOptionalField(t *testing.T) {
	var p Patch
	if err := json.Unmarshal([]byte(`{"due_date":null,"category":null}`), &p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !p.HasDueDate || !p.HasCategory {
		t.Error("expected null fields to be marked present")
	}
	if p.DueDate != nil {
		t.Error("expected nil due date for explicit null")
	}
	if p.Category != "" {
		t.Errorf("expected empty category for explicit null, got '%s'", p.Category)
	}
}

func TestPatch_ApplyLeavesAbsentFieldsUntouched(t *testing.T) {
	due := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	orig := Task{
		Title:       "write report",
		Description: "quarterly numbers",
		Status:      StatusActive,
		Priority:    PriorityMedium,
		DueDate:     &due,
		Category:    "work",
	}

	var p Patch
	if err := json.Unmarshal([]byte(`{"priority":"urgent"}`), &p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := p.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	updated := orig
	p.Apply(&updated)

	if updated.Priority != PriorityUrgent {
		t.Errorf("expected priority urgent, got %s", updated.Priority)
	}
	if updated.Title != orig.Title || updated.Description != orig.Description ||
		updated.Status != orig.Status || updated.Category != orig.Category {
		t.Error("expected untouched fields to keep their values")
	}
	if updated.DueDate == nil || !updated.DueDate.Equal(due) {
		t.Error("expected due date to be unchanged")
	}
}

func TestPatch_ValidateNormalizesCase(t *testing.T) {
	var p Patch
	if err := json.Unmarshal([]byte(`{"status":"COMPLETED","priority":"High"}`), &p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := p.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.Status != StatusCompleted {
		t.Errorf("expected normalized status 'completed', got '%s'", p.Status)
	}
	if p.Priority != PriorityHigh {
		t.Errorf("expected normalized priority 'high', got '%s'", p.Priority)
	}
}

func TestPatch_ValidateRejectsBadValues(t *testing.T) {
	cases := []string{
		`{"title":""}`,
		`{"status":"pending"}`,
		`{"priority":"critical"}`,
	}

	for _, body := range cases {
		var p Patch
		if err := json.Unmarshal([]byte(body), &p); err != nil {
			t.Fatalf("unexpected decode error for %s: %v", body, err)
		}
		if err := p.Validate(); err == nil {
			t.Errorf("expected validation error for %s", body)
		}
	}
}

func TestDraft_Defaults(t *testing.T) {
	d := Draft{Title: "buy milk"}
	if err := d.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if d.NormalizedStatus() != StatusActive {
		t.Errorf("expected default status active, got %s", d.NormalizedStatus())
	}
	if d.NormalizedPriority() != PriorityMedium {
		t.Errorf("expected default priority medium, got %s", d.NormalizedPriority())
	}
}

func TestDraft_RejectsOverlongFields(t *testing.T) {
	longTitle := make([]byte, MaxTitleLen+1)
	for i := range longTitle {
		longTitle[i] = 'a'
	}

	d := Draft{Title: string(longTitle)}
	if err := d.Validate(); err == nil {
		t.Error("expected validation error for overlong title")
	}

	d = Draft{}
	if err := d.Validate(); err == nil {
		t.Error("expected validation error for missing title")
	}
}
