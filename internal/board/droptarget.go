package board

import (
	"errors"
	"strings"
	"time"

	"weekboard/internal/model"
)

// TargetUnscheduled is the drop-zone sentinel for the unscheduled bucket.
const TargetUnscheduled = "unscheduled"

var ErrBadDropTarget = errors.New("unrecognized drop target")

// DropIntent is what the drag layer reports after a gesture ends. The target
// is either the unscheduled sentinel or a "day:YYYY-MM-DD:<category>"
// composite naming a week-grid cell.
type DropIntent struct {
	DraggedTaskID model.TaskID `json:"draggedTaskId"`
	DropTargetID  string       `json:"dropTargetId"`
}

type dropTarget struct {
	unscheduled bool
	date        string
	category    model.Duration
}

func parseDropTarget(id string) (dropTarget, error) {
	id = strings.TrimSpace(id)
	if id == TargetUnscheduled {
		return dropTarget{unscheduled: true}, nil
	}

	parts := strings.Split(id, ":")
	if len(parts) != 3 || parts[0] != "day" {
		return dropTarget{}, ErrBadDropTarget
	}
	if _, err := time.ParseInLocation(model.DateLayout, parts[1], time.Local); err != nil {
		return dropTarget{}, ErrBadDropTarget
	}
	var cat model.Duration
	switch model.Duration(parts[2]) {
	case model.DurationShort:
		cat = model.DurationShort
	case model.DurationLong:
		cat = model.DurationLong
	default:
		return dropTarget{}, ErrBadDropTarget
	}
	return dropTarget{date: parts[1], category: cat}, nil
}
