// Package view derives the display buckets from the live task collection.
// Every projection is a pure function over the store's List() output plus
// the active filters, safe to recompute after every mutation.
package view

import (
	"sort"
	"time"

	"weekboard/internal/model"
)

// Unscheduled lists non-completed, non-recurring tasks with no due date,
// ordered by priority (constant, high, medium, low) with ties broken by
// insertion order.
func Unscheduled(tasks []model.Task, f Filters) []model.Occurrence {
	var out []model.Occurrence
	for _, t := range tasks {
		if t.Completed || t.IsRecurring() || t.DueDate != nil {
			continue
		}
		if !f.match(t) {
			continue
		}
		out = append(out, model.RealEntry(t))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Task.Priority.Rank() < out[j].Task.Priority.Rank()
	})
	return out
}

// DayBucket is one day of the week grid, partitioned by duration category.
type DayBucket struct {
	Date  string             `json:"date"`
	Short []model.Occurrence `json:"short"`
	Long  []model.Occurrence `json:"timeConsuming"`
}

// Week projects the seven days starting at weekStart: dated tasks due that
// day plus the virtual occurrences of recurring tasks. Within each duration
// sub-bucket entries sort by priority, then manual order, then insertion
// order.
func Week(tasks []model.Task, weekStart time.Time, f Filters) []DayBucket {
	start := time.Date(weekStart.Year(), weekStart.Month(), weekStart.Day(), 0, 0, 0, 0, weekStart.Location())
	end := start.AddDate(0, 0, 6)

	byDate := make(map[string][]model.Occurrence, 7)
	for _, t := range tasks {
		if t.Completed || t.IsRecurring() || t.DueDate == nil {
			continue
		}
		if !f.match(t) {
			continue
		}
		byDate[*t.DueDate] = append(byDate[*t.DueDate], model.RealEntry(t))
	}
	for _, occ := range Expand(tasks, start, end) {
		if !f.match(occ.Task) {
			continue
		}
		byDate[occ.Date] = append(byDate[occ.Date], occ)
	}

	out := make([]DayBucket, 0, 7)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		date := DateOf(d)
		bucket := DayBucket{Date: date}
		entries := byDate[date]
		sort.SliceStable(entries, func(i, j int) bool {
			ri, rj := entries[i].Task.Priority.Rank(), entries[j].Task.Priority.Rank()
			if ri != rj {
				return ri < rj
			}
			return entries[i].Task.Order < entries[j].Task.Order
		})
		for _, e := range entries {
			if e.Task.Duration == model.DurationLong {
				bucket.Long = append(bucket.Long, e)
			} else {
				bucket.Short = append(bucket.Short, e)
			}
		}
		out = append(out, bucket)
	}
	return out
}

// Overdue lists non-completed, non-recurring tasks due strictly before the
// current calendar day. Recurring tasks are never overdue; each occurrence's
// window is its own weekday.
func Overdue(tasks []model.Task, today time.Time, f Filters) []model.Occurrence {
	cutoff := DateOf(today)
	var out []model.Occurrence
	for _, t := range tasks {
		if t.Completed || t.IsRecurring() || t.DueDate == nil {
			continue
		}
		if *t.DueDate >= cutoff {
			continue
		}
		if !f.match(t) {
			continue
		}
		out = append(out, model.RealEntry(t))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if *out[i].Task.DueDate != *out[j].Task.DueDate {
			return *out[i].Task.DueDate < *out[j].Task.DueDate
		}
		return out[i].Task.Priority.Rank() < out[j].Task.Priority.Rank()
	})
	return out
}

// History merges completed one-off tasks with one synthetic entry per
// recorded completion of every recurring task, newest first. Synthetic
// entries look like completed tasks: the recurrence and due-date fields are
// suppressed and completedDate carries the specific completion timestamp, so
// the caller needs no special casing to display them.
func History(tasks []model.Task, f Filters) []model.Occurrence {
	var out []model.Occurrence
	for _, t := range tasks {
		if !f.match(t) {
			continue
		}
		if t.IsRecurring() {
			for _, ts := range t.Completions {
				out = append(out, syntheticCompletion(t, ts))
			}
			continue
		}
		if t.Completed {
			out = append(out, model.RealEntry(t))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return completedAt(out[i]).After(completedAt(out[j]))
	})
	return out
}

func syntheticCompletion(t model.Task, ts time.Time) model.Occurrence {
	done := t
	done.Completed = true
	done.CompletedAt = &ts
	done.Recurrence = nil
	done.DueDate = nil
	done.Completions = nil
	return model.VirtualEntry(done, model.CompletionDate(ts))
}

func completedAt(o model.Occurrence) time.Time {
	if o.Task.CompletedAt != nil {
		return *o.Task.CompletedAt
	}
	return time.Time{}
}
