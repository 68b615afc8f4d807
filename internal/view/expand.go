package view

import (
	"time"

	"weekboard/internal/model"
)

// DateOf reduces an instant to its local calendar date.
func DateOf(t time.Time) string {
	return t.Format(model.DateLayout)
}

// WeekStart returns the calendar day at or before t whose weekday is
// startDay, truncated to midnight local time.
func WeekStart(t time.Time, startDay time.Weekday) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	diff := (int(day.Weekday()) - int(startDay) + 7) % 7
	return day.AddDate(0, 0, -diff)
}

// Expand materializes virtual occurrences for every recurring task over the
// closed date range [start, end]: one entry per in-range date whose weekday
// is in the task's pattern, unless a completion already covers that date.
// Completed occurrences surface through the history projection instead.
//
// Results are recomputed fresh on every call; occurrence identity is the
// (task id, date) pair and nothing is written back to the store.
func Expand(tasks []model.Task, start, end time.Time) []model.Occurrence {
	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	end = time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, end.Location())

	var out []model.Occurrence
	for _, t := range tasks {
		if !t.IsRecurring() {
			continue
		}
		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			if !t.Recurrence.OnDay(d.Weekday()) {
				continue
			}
			date := DateOf(d)
			if t.CompletedOn(date) {
				continue
			}
			out = append(out, model.VirtualEntry(t, date))
		}
	}
	return out
}
