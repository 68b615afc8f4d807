// Package board translates user intents (drops, toggles, bulk overdue
// actions) into task store calls. It owns the legality rules for moves; the
// drag layer itself is a black box that only reports what landed where.
package board

import (
	"errors"
	"log"

	"weekboard/internal/model"
	"weekboard/internal/task"
	"weekboard/internal/view"
)

var (
	// ErrRecurringMove rejects relocating a recurring template: its schedule
	// is the weekday pattern, not a single date.
	ErrRecurringMove = errors.New("recurring tasks cannot be rescheduled by drag")
	// ErrConfirmationRequired guards bulk destructive actions.
	ErrConfirmationRequired = errors.New("confirmation required")
)

type Router struct {
	store  *task.Store
	clock  task.Clock
	logger *log.Logger
}

func NewRouter(store *task.Store, clock task.Clock, logger *log.Logger) *Router {
	if clock == nil {
		clock = task.RealClock{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Router{store: store, clock: clock, logger: logger}
}

// ApplyDrop routes a drag-end report to the matching move.
func (r *Router) ApplyDrop(intent DropIntent) (model.Task, error) {
	target, err := parseDropTarget(intent.DropTargetID)
	if err != nil {
		return model.Task{}, err
	}
	if target.unscheduled {
		return r.MoveToUnscheduled(intent.DraggedTaskID)
	}
	return r.MoveToDay(intent.DraggedTaskID, target.date)
}

// MoveToDay reschedules a task to a specific date. Recurring templates are
// rejected; a drop on the date the task already occupies is a no-op.
func (r *Router) MoveToDay(id model.TaskID, date string) (model.Task, error) {
	t, err := r.store.Get(id)
	if err != nil {
		return model.Task{}, err
	}
	if t.IsRecurring() {
		return model.Task{}, ErrRecurringMove
	}
	if t.DueDate != nil && *t.DueDate == date {
		return t, nil
	}
	return r.store.Update(id, task.Patch{DueDate: &date})
}

// MoveToUnscheduled clears a task's due date. Recurring templates are
// rejected.
func (r *Router) MoveToUnscheduled(id model.TaskID) (model.Task, error) {
	t, err := r.store.Get(id)
	if err != nil {
		return model.Task{}, err
	}
	if t.IsRecurring() {
		return model.Task{}, ErrRecurringMove
	}
	if t.DueDate == nil {
		return t, nil
	}
	cleared := ""
	return r.store.Update(id, task.Patch{DueDate: &cleared})
}

// ToggleEntry flips completion for a projected entry. Virtual refs resolve
// back to (parent task, occurrence date) so only that date's completion
// record changes; real refs toggle the task itself.
func (r *Router) ToggleEntry(ref model.EntryRef) (model.Task, error) {
	if ref.Virtual {
		return r.store.Toggle(ref.TaskID, ref.Date)
	}
	return r.store.Toggle(ref.TaskID, "")
}

// DeleteEntry removes the task behind a projected entry. The ref resolves to
// the original task id whether the entry was real or a synthetic recurring
// completion; deletion is idempotent either way.
func (r *Router) DeleteEntry(ref model.EntryRef) {
	r.store.Delete(ref.TaskID)
}

// MoveOverdueToToday reschedules every overdue task to the current day and
// reports how many moved.
func (r *Router) MoveOverdueToToday(f view.Filters) int {
	today := view.DateOf(r.clock.Now())
	moved := 0
	for _, entry := range view.Overdue(r.store.List(), r.clock.Now(), f) {
		if _, err := r.store.Update(entry.Task.ID, task.Patch{DueDate: &today}); err != nil {
			r.logger.Printf("weekboard: reschedule overdue %s: %v", entry.Task.ID, err)
			continue
		}
		moved++
	}
	return moved
}

// ClearOverdue deletes every overdue task. Destructive and irreversible, so
// it refuses to run without the caller's explicit confirmation.
func (r *Router) ClearOverdue(f view.Filters, confirmed bool) (int, error) {
	if !confirmed {
		return 0, ErrConfirmationRequired
	}
	removed := 0
	for _, entry := range view.Overdue(r.store.List(), r.clock.Now(), f) {
		r.store.Delete(entry.Task.ID)
		removed++
	}
	return removed, nil
}
