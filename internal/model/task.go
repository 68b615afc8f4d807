package model

import (
	"time"
)

type TaskID string

// DateLayout is the calendar-date format used for due dates and occurrence
// dates throughout the persisted state.
const DateLayout = "2006-01-02"

type Priority string

const (
	PriorityConstant Priority = "constant"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// Rank returns the sort position of a priority. Constant sorts first even
// though it is not semantically "highest"; unknown values sort last.
func (p Priority) Rank() int {
	switch p {
	case PriorityConstant:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	default:
		return 4
	}
}

func (p Priority) Valid() bool {
	switch p {
	case PriorityConstant, PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

type Duration string

const (
	DurationShort Duration = "short"
	DurationLong  Duration = "time-consuming"
)

// Recurrence is a weekly pattern: the set of weekdays a task repeats on.
// A task carrying a Recurrence is a template, not a schedulable instance.
type Recurrence struct {
	Days []time.Weekday `json:"days"`
}

func (r *Recurrence) OnDay(d time.Weekday) bool {
	if r == nil {
		return false
	}
	for _, day := range r.Days {
		if day == d {
			return true
		}
	}
	return false
}

type Task struct {
	ID          TaskID   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Priority    Priority `json:"priority"`
	Duration    Duration `json:"durationCategory,omitempty"`

	DueDate    *string     `json:"dueDate,omitempty"`
	Recurrence *Recurrence `json:"recurrence,omitempty"`

	Completed   bool        `json:"completed"`
	CompletedAt *time.Time  `json:"completedDate,omitempty"`
	Completions []time.Time `json:"completions,omitempty"`
	Progress    int         `json:"progress"`

	ProjectName *string `json:"projectName,omitempty"`
	Order       int     `json:"order,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (t *Task) IsRecurring() bool {
	return t.Recurrence != nil && len(t.Recurrence.Days) > 0
}

// CompletionDate reduces a completion timestamp to its calendar-date
// component; completions are matched per day, not per instant.
func CompletionDate(ts time.Time) string {
	return ts.Format(DateLayout)
}

// CompletedOn reports whether a completion exists for the given date.
func (t *Task) CompletedOn(date string) bool {
	for _, ts := range t.Completions {
		if CompletionDate(ts) == date {
			return true
		}
	}
	return false
}

func (t *Task) Project() string {
	if t.ProjectName == nil {
		return ""
	}
	return *t.ProjectName
}
