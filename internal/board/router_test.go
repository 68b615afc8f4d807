package board

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weekboard/internal/kv"
	"weekboard/internal/model"
	"weekboard/internal/task"
	"weekboard/internal/view"
)

func newTestRouter(t *testing.T) (*Router, *task.Store, *task.FakeClock) {
	t.Helper()
	clock := task.NewFakeClock(time.Date(2026, 3, 4, 11, 0, 0, 0, time.Local)) // Wednesday
	store := task.NewStore(kv.NewMemory(), clock, nil)
	return NewRouter(store, clock, nil), store, clock
}

func strptr(s string) *string { return &s }

func TestMoveToDay_RejectsRecurring(t *testing.T) {
	r, store, _ := newTestRouter(t)

	created, err := store.Create(model.Task{
		Title:      "gym",
		Recurrence: &model.Recurrence{Days: []time.Weekday{time.Monday}},
	})
	require.NoError(t, err)

	_, err = r.MoveToDay(created.ID, "2026-03-06")
	assert.ErrorIs(t, err, ErrRecurringMove)

	// stored fields untouched
	got, _ := store.Get(created.ID)
	assert.Nil(t, got.DueDate)
	require.NotNil(t, got.Recurrence)
	assert.Equal(t, created.UpdatedAt, got.UpdatedAt)
}

func TestMoveToDay_SameDateIsNoop(t *testing.T) {
	r, store, clock := newTestRouter(t)

	created, _ := store.Create(model.Task{Title: "a", DueDate: strptr("2026-03-06")})
	clock.Advance(time.Hour)

	got, err := r.MoveToDay(created.ID, "2026-03-06")
	require.NoError(t, err)
	assert.Equal(t, created.UpdatedAt, got.UpdatedAt)
}

func TestMoveToUnscheduled(t *testing.T) {
	r, store, _ := newTestRouter(t)

	created, _ := store.Create(model.Task{Title: "a", DueDate: strptr("2026-03-06")})

	got, err := r.MoveToUnscheduled(created.ID)
	require.NoError(t, err)
	assert.Nil(t, got.DueDate)

	recurring, _ := store.Create(model.Task{
		Title:      "gym",
		Recurrence: &model.Recurrence{Days: []time.Weekday{time.Monday}},
	})
	_, err = r.MoveToUnscheduled(recurring.ID)
	assert.ErrorIs(t, err, ErrRecurringMove)
}

func TestApplyDrop(t *testing.T) {
	r, store, _ := newTestRouter(t)

	created, _ := store.Create(model.Task{Title: "a"})

	got, err := r.ApplyDrop(DropIntent{
		DraggedTaskID: created.ID,
		DropTargetID:  "day:2026-03-05:short",
	})
	require.NoError(t, err)
	require.NotNil(t, got.DueDate)
	assert.Equal(t, "2026-03-05", *got.DueDate)

	got, err = r.ApplyDrop(DropIntent{DraggedTaskID: created.ID, DropTargetID: "unscheduled"})
	require.NoError(t, err)
	assert.Nil(t, got.DueDate)

	_, err = r.ApplyDrop(DropIntent{DraggedTaskID: created.ID, DropTargetID: "bogus"})
	assert.ErrorIs(t, err, ErrBadDropTarget)

	_, err = r.ApplyDrop(DropIntent{DraggedTaskID: created.ID, DropTargetID: "day:2026-13-99:short"})
	assert.ErrorIs(t, err, ErrBadDropTarget)
}

func TestToggleEntry_VirtualResolvesToOccurrence(t *testing.T) {
	r, store, _ := newTestRouter(t)

	recurring, _ := store.Create(model.Task{
		Title:      "gym",
		Recurrence: &model.Recurrence{Days: []time.Weekday{time.Wednesday}},
	})

	got, err := r.ToggleEntry(model.EntryRef{TaskID: recurring.ID, Date: "2026-03-04", Virtual: true})
	require.NoError(t, err)
	require.Len(t, got.Completions, 1)
	assert.False(t, got.Completed, "template completion flag untouched")

	plain, _ := store.Create(model.Task{Title: "plain"})
	got, err = r.ToggleEntry(model.EntryRef{TaskID: plain.ID})
	require.NoError(t, err)
	assert.True(t, got.Completed)
}

func TestDeleteEntry_ResolvesToParentTask(t *testing.T) {
	r, store, _ := newTestRouter(t)

	recurring, _ := store.Create(model.Task{
		Title:      "gym",
		Recurrence: &model.Recurrence{Days: []time.Weekday{time.Wednesday}},
	})

	r.DeleteEntry(model.EntryRef{TaskID: recurring.ID, Date: "2026-03-04", Virtual: true})
	_, err := store.Get(recurring.ID)
	assert.ErrorIs(t, err, task.ErrNotFound)
}

func TestMoveOverdueToToday(t *testing.T) {
	r, store, _ := newTestRouter(t)

	old1, _ := store.Create(model.Task{Title: "old1", DueDate: strptr("2026-03-01")})
	old2, _ := store.Create(model.Task{Title: "old2", DueDate: strptr("2026-03-03")})
	store.Create(model.Task{Title: "future", DueDate: strptr("2026-03-09")})

	moved := r.MoveOverdueToToday(view.Filters{})
	assert.Equal(t, 2, moved)

	for _, id := range []model.TaskID{old1.ID, old2.ID} {
		got, _ := store.Get(id)
		require.NotNil(t, got.DueDate)
		assert.Equal(t, "2026-03-04", *got.DueDate)
	}
}

func TestClearOverdue_RequiresConfirmation(t *testing.T) {
	r, store, _ := newTestRouter(t)

	overdue, _ := store.Create(model.Task{Title: "old", DueDate: strptr("2026-03-01")})

	_, err := r.ClearOverdue(view.Filters{}, false)
	assert.ErrorIs(t, err, ErrConfirmationRequired)
	_, err = store.Get(overdue.ID)
	assert.NoError(t, err)

	removed, err := r.ClearOverdue(view.Filters{}, true)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	_, err = store.Get(overdue.ID)
	assert.ErrorIs(t, err, task.ErrNotFound)
}
