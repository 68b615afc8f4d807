package view

import (
	"strings"

	"weekboard/internal/model"
)

// ProjectNone is the project-filter sentinel matching tasks that carry no
// project label.
const ProjectNone = "none"

// Filters narrow every projection before bucketing.
//
//	Project:  "" | "all" => disabled, "none" => no project, else exact name
//	Priority: "" | "all" => disabled, else exact match
type Filters struct {
	Project  string
	Priority string
}

func (f Filters) match(t model.Task) bool {
	switch strings.ToLower(strings.TrimSpace(f.Project)) {
	case "", "all":
	case ProjectNone:
		if t.ProjectName != nil {
			return false
		}
	default:
		if t.Project() != strings.TrimSpace(f.Project) {
			return false
		}
	}

	switch p := strings.ToLower(strings.TrimSpace(f.Priority)); p {
	case "", "all":
	default:
		if t.Priority != model.Priority(p) {
			return false
		}
	}

	return true
}
