package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weekboard/internal/model"
)

func TestWeekStart(t *testing.T) {
	thu := time.Date(2026, 3, 5, 15, 30, 0, 0, time.Local)

	mon := WeekStart(thu, time.Monday)
	assert.Equal(t, "2026-03-02", DateOf(mon))
	assert.Equal(t, 0, mon.Hour())

	// a Monday is its own week start
	assert.Equal(t, "2026-03-02", DateOf(WeekStart(mon, time.Monday)))

	sun := WeekStart(thu, time.Sunday)
	assert.Equal(t, "2026-03-01", DateOf(sun))
}

func TestExpand_EmitsPerMatchingDay(t *testing.T) {
	recurring := model.Task{
		ID:         "t1",
		Title:      "gym",
		Priority:   model.PriorityMedium,
		Recurrence: &model.Recurrence{Days: []time.Weekday{time.Monday, time.Wednesday}},
	}
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.Local) // Mon
	end := start.AddDate(0, 0, 6)

	got := Expand([]model.Task{recurring}, start, end)
	require.Len(t, got, 2)
	assert.Equal(t, "2026-03-02", got[0].Date)
	assert.Equal(t, "2026-03-04", got[1].Date)
	for _, o := range got {
		assert.True(t, o.Virtual)
		assert.Equal(t, model.TaskID("t1"), o.Task.ID)
	}
}

func TestExpand_SkipsCompletedDatesAndNonRecurring(t *testing.T) {
	recurring := model.Task{
		ID:         "t1",
		Title:      "gym",
		Priority:   model.PriorityMedium,
		Recurrence: &model.Recurrence{Days: []time.Weekday{time.Monday, time.Wednesday}},
		Completions: []time.Time{
			time.Date(2026, 3, 2, 9, 0, 0, 0, time.Local),
		},
	}
	plain := model.Task{ID: "t2", Title: "plain", Priority: model.PriorityMedium}

	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.Local)
	got := Expand([]model.Task{recurring, plain}, start, start.AddDate(0, 0, 6))

	require.Len(t, got, 1)
	assert.Equal(t, "2026-03-04", got[0].Date)
}

func TestExpand_ClosedRange(t *testing.T) {
	recurring := model.Task{
		ID:         "t1",
		Title:      "daily-ish",
		Priority:   model.PriorityMedium,
		Recurrence: &model.Recurrence{Days: []time.Weekday{time.Monday}},
	}
	day := time.Date(2026, 3, 2, 12, 0, 0, 0, time.Local) // Monday, mid-day

	// single-day range containing the weekday still matches
	got := Expand([]model.Task{recurring}, day, day)
	require.Len(t, got, 1)
	assert.Equal(t, "2026-03-02", got[0].Date)
}
