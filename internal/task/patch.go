package task

import (
	"strings"

	"weekboard/internal/model"
)

// Patch represents a partial update.
// nil pointer => "no change"
// empty string for pointer fields (ProjectName/DueDate) => clear (set to nil)
// Recurrence with an empty day set => clear recurrence
type Patch struct {
	Title       *string           `json:"title,omitempty"`
	Description *string           `json:"description,omitempty"`
	Priority    *model.Priority   `json:"priority,omitempty"`
	Duration    *model.Duration   `json:"durationCategory,omitempty"`
	DueDate     *string           `json:"dueDate,omitempty"`
	Recurrence  *model.Recurrence `json:"recurrence,omitempty"`
	Completed   *bool             `json:"completed,omitempty"`
	Progress    *int              `json:"progress,omitempty"`
	ProjectName *string           `json:"projectName,omitempty"`
	Order       *int              `json:"order,omitempty"`
}

func applyPatch(t *model.Task, p Patch) error {
	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if title == "" {
			return ErrEmptyTitle
		}
		t.Title = title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Priority != nil && p.Priority.Valid() {
		t.Priority = *p.Priority
	}
	if p.Duration != nil {
		if *p.Duration == model.DurationLong {
			t.Duration = model.DurationLong
		} else {
			t.Duration = model.DurationShort
		}
	}

	// Due date and recurrence are mutually exclusive: setting one clears the
	// other. A task is unscheduled, single-dated, or recurring - never both.
	if p.DueDate != nil {
		if *p.DueDate == "" {
			t.DueDate = nil
		} else {
			t.DueDate = p.DueDate
			t.Recurrence = nil
		}
	}
	if p.Recurrence != nil {
		if len(p.Recurrence.Days) == 0 {
			t.Recurrence = nil
		} else {
			t.Recurrence = p.Recurrence
			t.DueDate = nil
		}
	}

	if p.Progress != nil {
		v := *p.Progress
		if v < 0 {
			v = 0
		}
		if v > 100 {
			v = 100
		}
		t.Progress = v
	}

	if p.ProjectName != nil {
		if strings.TrimSpace(*p.ProjectName) == "" {
			t.ProjectName = nil
		} else {
			name := strings.TrimSpace(*p.ProjectName)
			t.ProjectName = &name
		}
	}
	if p.Order != nil {
		t.Order = *p.Order
	}

	return nil
}
