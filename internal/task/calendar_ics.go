package task

import (
	"fmt"
	"strings"
	"time"

	"weekboard/internal/model"
)

const icsDateLayout = "20060102"

var icsByDay = map[time.Weekday]string{
	time.Sunday:    "SU",
	time.Monday:    "MO",
	time.Tuesday:   "TU",
	time.Wednesday: "WE",
	time.Thursday:  "TH",
	time.Friday:    "FR",
	time.Saturday:  "SA",
}

// BuildTaskCalendarICS exports a task as a single all-day iCalendar event.
// Dated tasks need a due date; recurring templates anchor on their next
// occurrence and carry a weekly RRULE over the pattern's weekdays.
func BuildTaskCalendarICS(t model.Task, now time.Time) (string, error) {
	var start time.Time
	switch {
	case t.IsRecurring():
		start = nextOccurrence(t.Recurrence, now)
	case t.DueDate != nil:
		due, err := time.ParseInLocation(model.DateLayout, strings.TrimSpace(*t.DueDate), time.Local)
		if err != nil {
			return "", fmt.Errorf("task due date must be YYYY-MM-DD")
		}
		start = due
	default:
		return "", fmt.Errorf("unscheduled task has no date for calendar export")
	}
	end := start.AddDate(0, 0, 1)

	title := strings.TrimSpace(t.Title)
	if title == "" {
		title = "Weekboard Task"
	}

	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//Weekboard//Task Export//EN",
		"CALSCALE:GREGORIAN",
		"METHOD:PUBLISH",
		"BEGIN:VEVENT",
		"UID:" + escapeICSText(fmt.Sprintf("task-%s@weekboard", t.ID)),
		"DTSTAMP:" + now.UTC().Format("20060102T150405Z"),
		"SUMMARY:" + escapeICSText(title),
		"DTSTART;VALUE=DATE:" + start.Format(icsDateLayout),
		"DTEND;VALUE=DATE:" + end.Format(icsDateLayout),
	}
	if desc := strings.TrimSpace(t.Description); desc != "" {
		lines = append(lines, "DESCRIPTION:"+escapeICSText(desc))
	}
	if rrule := recurrenceToICSRRULE(t.Recurrence); rrule != "" {
		lines = append(lines, "RRULE:"+rrule)
	}
	lines = append(lines, "END:VEVENT", "END:VCALENDAR", "")

	return strings.Join(lines, "\r\n"), nil
}

// nextOccurrence finds the first date at or after now whose weekday is in
// the pattern. The pattern is non-empty for any task that reports
// IsRecurring, so the scan terminates within a week.
func nextOccurrence(rec *model.Recurrence, now time.Time) time.Time {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	for i := 0; i < 7; i++ {
		if rec.OnDay(day.Weekday()) {
			return day
		}
		day = day.AddDate(0, 0, 1)
	}
	return day
}

func recurrenceToICSRRULE(rec *model.Recurrence) string {
	if rec == nil || len(rec.Days) == 0 {
		return ""
	}
	days := make([]string, 0, len(rec.Days))
	for _, d := range rec.Days {
		if code, ok := icsByDay[d]; ok {
			days = append(days, code)
		}
	}
	if len(days) == 0 {
		return ""
	}
	return "FREQ=WEEKLY;BYDAY=" + strings.Join(days, ",")
}

func escapeICSText(s string) string {
	repl := strings.NewReplacer(
		"\\", "\\\\",
		";", "\\;",
		",", "\\,",
		"\r\n", "\\n",
		"\n", "\\n",
		"\r", "\\n",
	)
	return repl.Replace(s)
}
