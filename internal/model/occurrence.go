package model

// Occurrence is one displayable entry: either a real task or a virtual
// per-day instance of a recurring template. Virtual occurrences are derived
// on demand and never persisted; their identity is the (task id, date) pair.
type Occurrence struct {
	Task    Task   `json:"task"`
	Date    string `json:"date,omitempty"`
	Virtual bool   `json:"virtual,omitempty"`
}

func RealEntry(t Task) Occurrence {
	date := ""
	if t.DueDate != nil {
		date = *t.DueDate
	}
	return Occurrence{Task: t, Date: date}
}

func VirtualEntry(t Task, date string) Occurrence {
	return Occurrence{Task: t, Date: date, Virtual: true}
}

// EntryRef identifies an occurrence for mutation routing. Virtual refs carry
// the occurrence date so toggles land on the parent task's completion list.
type EntryRef struct {
	TaskID  TaskID `json:"taskId"`
	Date    string `json:"date,omitempty"`
	Virtual bool   `json:"virtual,omitempty"`
}

func (o Occurrence) Ref() EntryRef {
	return EntryRef{TaskID: o.Task.ID, Date: o.Date, Virtual: o.Virtual}
}
