package model

import "sort"

// Normalize repairs a task loaded from a sparse persisted blob. The stored
// format evolved over time (durationCategory, progress and completions were
// added later), so defaulting happens here, once, instead of at every read
// site. The persisted format stays sparse for backward compatibility.
func Normalize(t *Task) {
	if t.Priority == "" || !t.Priority.Valid() {
		t.Priority = PriorityMedium
	}
	if t.Duration != DurationLong {
		t.Duration = DurationShort
	}

	if t.Recurrence != nil && len(t.Recurrence.Days) == 0 {
		t.Recurrence = nil
	}
	// A task is unscheduled, single-dated, or recurring - never both dated
	// and recurring. The template wins if a stale blob has both.
	if t.Recurrence != nil && t.DueDate != nil {
		t.DueDate = nil
	}

	if t.Progress < 0 {
		t.Progress = 0
	}
	if t.Progress > 100 {
		t.Progress = 100
	}
	if t.Completed && !t.IsRecurring() {
		t.Progress = 100
	}

	normalizeCompletions(t)
}

// normalizeCompletions dedupes completion timestamps per calendar date
// (first write wins) and keeps them in chronological order.
func normalizeCompletions(t *Task) {
	if len(t.Completions) == 0 {
		t.Completions = nil
		return
	}
	sort.Slice(t.Completions, func(i, j int) bool {
		return t.Completions[i].Before(t.Completions[j])
	})
	seen := make(map[string]bool, len(t.Completions))
	out := t.Completions[:0]
	for _, ts := range t.Completions {
		d := CompletionDate(ts)
		if seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, ts)
	}
	t.Completions = out
}
