package task

import (
	"encoding/json"
	"errors"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"weekboard/internal/kv"
	"weekboard/internal/model"
)

var (
	ErrEmptyTitle      = errors.New("task title must not be empty")
	ErrNotFound        = errors.New("task not found")
	ErrRecurringToggle = errors.New("recurring task requires an occurrence date to toggle")
	ErrBadDate         = errors.New("date must be YYYY-MM-DD")
)

const (
	keyTasks    = "tasks"
	keyProjects = "projects"
)

// Store owns the canonical task collection and the project name registry.
// All mutations run to completion under one lock and persist best-effort
// afterwards; in-memory state stays authoritative for the session when a
// write fails.
type Store struct {
	mu       sync.RWMutex
	tasks    map[model.TaskID]model.Task
	order    []model.TaskID // insertion order, also the persisted array order
	projects map[string]bool

	blobs  kv.Store
	clock  Clock
	logger *log.Logger
}

func NewStore(blobs kv.Store, clock Clock, logger *log.Logger) *Store {
	if clock == nil {
		clock = RealClock{}
	}
	if logger == nil {
		logger = log.Default()
	}
	s := &Store{
		tasks:    map[model.TaskID]model.Task{},
		projects: map[string]bool{},
		blobs:    blobs,
		clock:    clock,
		logger:   logger,
	}
	s.load()
	return s
}

// load hydrates state from the blob store. Any read or decode failure means
// starting empty; a corrupted blob must not prevent the session from opening.
func (s *Store) load() {
	if s.blobs == nil {
		return
	}

	if b, ok, err := s.blobs.Get(keyTasks); err != nil {
		s.logger.Printf("weekboard: read tasks blob: %v (starting empty)", err)
	} else if ok {
		var loaded []model.Task
		if err := json.Unmarshal(b, &loaded); err != nil {
			s.logger.Printf("weekboard: decode tasks blob: %v (starting empty)", err)
		} else {
			for i := range loaded {
				t := loaded[i]
				if t.ID == "" {
					continue
				}
				model.Normalize(&t)
				if _, dup := s.tasks[t.ID]; dup {
					continue
				}
				s.tasks[t.ID] = t
				s.order = append(s.order, t.ID)
				if name := t.Project(); name != "" {
					s.projects[name] = true
				}
			}
		}
	}

	if b, ok, err := s.blobs.Get(keyProjects); err != nil {
		s.logger.Printf("weekboard: read projects blob: %v", err)
	} else if ok {
		var names []string
		if err := json.Unmarshal(b, &names); err != nil {
			s.logger.Printf("weekboard: decode projects blob: %v", err)
		} else {
			for _, n := range names {
				if n = strings.TrimSpace(n); n != "" {
					s.projects[n] = true
				}
			}
		}
	}
}

// persistLocked writes both blobs. Fire-and-forget: failures are logged and
// the session continues on in-memory state.
func (s *Store) persistLocked() {
	if s.blobs == nil {
		return
	}

	tasks := s.listLocked()
	if b, err := json.MarshalIndent(tasks, "", "  "); err != nil {
		s.logger.Printf("weekboard: encode tasks: %v", err)
	} else if err := s.blobs.Put(keyTasks, b); err != nil {
		s.logger.Printf("weekboard: write tasks blob: %v (state kept in memory)", err)
	}

	names := s.projectsLocked()
	if b, err := json.Marshal(names); err != nil {
		s.logger.Printf("weekboard: encode projects: %v", err)
	} else if err := s.blobs.Put(keyProjects, b); err != nil {
		s.logger.Printf("weekboard: write projects blob: %v (state kept in memory)", err)
	}
}

func (s *Store) listLocked() []model.Task {
	out := make([]model.Task, 0, len(s.order))
	for _, id := range s.order {
		if t, ok := s.tasks[id]; ok {
			out = append(out, t)
		}
	}
	return out
}

func (s *Store) projectsLocked() []string {
	out := make([]string, 0, len(s.projects))
	for name := range s.projects {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Create validates and stores a new task. The caller provides the mutable
// fields; id, timestamps and defaults are assigned here. Referencing an
// unknown project name registers it.
func (s *Store) Create(t model.Task) (model.Task, error) {
	if strings.TrimSpace(t.Title) == "" {
		return model.Task{}, ErrEmptyTitle
	}
	if t.DueDate != nil {
		if _, err := time.ParseInLocation(model.DateLayout, *t.DueDate, time.Local); err != nil {
			return model.Task{}, ErrBadDate
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	t.ID = model.TaskID(uuid.NewString())
	t.Title = strings.TrimSpace(t.Title)
	t.Completed = false
	t.CompletedAt = nil
	t.Completions = nil
	t.CreatedAt = now
	t.UpdatedAt = now
	model.Normalize(&t)

	s.tasks[t.ID] = t
	s.order = append(s.order, t.ID)
	if name := t.Project(); name != "" {
		s.projects[name] = true
	}

	s.persistLocked()
	return t, nil
}

func (s *Store) Get(id model.TaskID) (model.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tasks[id]
	if !ok {
		return model.Task{}, ErrNotFound
	}
	return t, nil
}

// List returns all tasks in insertion order.
func (s *Store) List() []model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listLocked()
}

// Update merges a partial patch into an existing task. Unknown ids are an
// explicit error rather than a silent no-op so callers (and tests) can tell
// a stale reference from a successful write.
func (s *Store) Update(id model.TaskID, p Patch) (model.Task, error) {
	if p.DueDate != nil && *p.DueDate != "" {
		if _, err := time.ParseInLocation(model.DateLayout, *p.DueDate, time.Local); err != nil {
			return model.Task{}, ErrBadDate
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return model.Task{}, ErrNotFound
	}

	if err := applyPatch(&t, p); err != nil {
		return model.Task{}, err
	}
	// completed/completedDate are meaningless on a recurring template;
	// per-occurrence completion goes through Toggle.
	if p.Completed != nil && !t.IsRecurring() {
		s.setCompletedLocked(&t, *p.Completed)
	}

	t.UpdatedAt = s.clock.Now()
	model.Normalize(&t)

	s.tasks[id] = t
	if name := t.Project(); name != "" {
		s.projects[name] = true
	}

	s.persistLocked()
	return t, nil
}

// Delete removes a task. Idempotent: deleting an unknown id is a no-op.
func (s *Store) Delete(id model.TaskID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return
	}
	delete(s.tasks, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.persistLocked()
}

func (s *Store) setCompletedLocked(t *model.Task, completed bool) {
	t.Completed = completed
	if completed {
		now := s.clock.Now()
		t.CompletedAt = &now
		t.Progress = 100
	} else {
		t.CompletedAt = nil
	}
}

// Toggle flips completion state.
//
// For a recurring task, occurrenceDate selects which weekly instance to
// toggle: an existing completion on that calendar date is removed, otherwise
// a completion is recorded combining the occurrence date with the current
// wall-clock time (history shows when it was marked done, not just which day
// it covers). Toggling a recurring template without an occurrence date is
// rejected - completed/completedDate are meaningless on a template.
//
// For a non-recurring task, occurrenceDate is ignored and the whole task
// flips; completing forces progress to 100.
func (s *Store) Toggle(id model.TaskID, occurrenceDate string) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return model.Task{}, ErrNotFound
	}

	if t.IsRecurring() {
		if occurrenceDate == "" {
			return model.Task{}, ErrRecurringToggle
		}
		day, err := time.ParseInLocation(model.DateLayout, occurrenceDate, time.Local)
		if err != nil {
			return model.Task{}, ErrBadDate
		}
		if t.CompletedOn(occurrenceDate) {
			out := t.Completions[:0]
			for _, ts := range t.Completions {
				if model.CompletionDate(ts) != occurrenceDate {
					out = append(out, ts)
				}
			}
			t.Completions = out
		} else {
			now := s.clock.Now()
			ts := time.Date(day.Year(), day.Month(), day.Day(),
				now.Hour(), now.Minute(), now.Second(), now.Nanosecond(), time.Local)
			t.Completions = append(t.Completions, ts)
		}
	} else {
		s.setCompletedLocked(&t, !t.Completed)
	}

	t.UpdatedAt = s.clock.Now()
	model.Normalize(&t)
	s.tasks[id] = t

	s.persistLocked()
	return t, nil
}

// AddProject registers a project name. Idempotent; blank names are ignored.
func (s *Store) AddProject(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.projects[name] {
		return
	}
	s.projects[name] = true
	s.persistLocked()
}

// DeleteProject removes a name from the registry. Tasks referencing the name
// keep their projectName - projects are labels, not foreign keys.
func (s *Store) DeleteProject(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.projects[name] {
		return
	}
	delete(s.projects, name)
	s.persistLocked()
}

func (s *Store) Projects() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.projectsLocked()
}
