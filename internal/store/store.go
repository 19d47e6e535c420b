// Package store owns the in-memory task list and its persistence.
//
// Every mutation validates, applies in memory, and saves the full list
// back to the data file before returning. Deletion is soft: records are
// marked and retained so ids are never reused.
package store

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Makepad-fr/taskpad/internal/model"
	"github.com/Makepad-fr/taskpad/internal/store/jsonstore"
)

// ErrNotFound is returned for operations on an unknown or deleted id.
var ErrNotFound = errors.New("task not found")

// Store holds the task list for one data file.
type Store struct {
	path      string
	tasks     []model.Task
	recovered bool
}

// Open loads the store from path. A missing file yields an empty store;
// a corrupt file also yields an empty store but marks it recovered so
// the caller can warn before the next save overwrites the file.
func Open(path string) (*Store, error) {
	tasks, err := jsonstore.Load(path)
	if err != nil {
		if !errors.Is(err, jsonstore.ErrCorrupt) {
			return nil, fmt.Errorf("load tasks: %w", err)
		}
		return &Store{path: path, tasks: []model.Task{}, recovered: true}, nil
	}
	return &Store{path: path, tasks: tasks}, nil
}

// Path returns the backing data file path.
func (s *Store) Path() string { return s.path }

// Recovered reports whether Open discarded a corrupt data file.
func (s *Store) Recovered() bool { return s.recovered }

// Tasks returns the non-deleted tasks in insertion order. The slice is
// a copy; mutating it does not affect the store.
func (s *Store) Tasks() []model.Task {
	out := make([]model.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if !t.Deleted {
			out = append(out, t)
		}
	}
	return out
}

// Len returns the number of non-deleted tasks.
func (s *Store) Len() int { return len(s.Tasks()) }

// Get returns the task with the given id, or ErrNotFound if the id is
// unknown or the task is deleted.
func (s *Store) Get(id int64) (*model.Task, error) {
	t := s.find(id)
	if t == nil {
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	cp := *t
	return &cp, nil
}

// Add creates a task, assigns the next id and the creation timestamp,
// appends it and persists.
func (s *Store) Add(text string, priority model.Priority, due model.Date) (*model.Task, error) {
	text = strings.TrimSpace(text)
	if priority == "" {
		priority = model.DefaultPriority
	}
	task := model.Task{
		ID:       s.nextID(),
		Text:     text,
		Priority: priority,
		Due:      due,
		Created:  time.Now(),
	}
	if err := task.Validate(); err != nil {
		return nil, err
	}
	s.tasks = append(s.tasks, task)
	if err := s.save(); err != nil {
		return &task, err
	}
	return &task, nil
}

// Changes describes a partial update. Nil fields are left untouched; a
// pointer to the zero Date clears the due date.
type Changes struct {
	Text     *string
	Priority *model.Priority
	Due      *model.Date
}

// Edit applies changes to the task with the given id and persists.
// The created timestamp is immutable and cannot be changed.
func (s *Store) Edit(id int64, ch Changes) (*model.Task, error) {
	t := s.find(id)
	if t == nil {
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	updated := *t
	if ch.Text != nil {
		updated.Text = strings.TrimSpace(*ch.Text)
	}
	if ch.Priority != nil {
		updated.Priority = *ch.Priority
	}
	if ch.Due != nil {
		updated.Due = *ch.Due
	}
	if err := updated.Validate(); err != nil {
		return nil, err
	}
	*t = updated
	if err := s.save(); err != nil {
		return t, err
	}
	cp := *t
	return &cp, nil
}

// ToggleComplete flips the completed flag and persists.
func (s *Store) ToggleComplete(id int64) (*model.Task, error) {
	t := s.find(id)
	if t == nil {
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	t.Completed = !t.Completed
	if err := s.save(); err != nil {
		return t, err
	}
	cp := *t
	return &cp, nil
}

// Delete soft-deletes the task: the record stays in storage but is
// excluded from every view, and its id is never reused.
func (s *Store) Delete(id int64) error {
	t := s.find(id)
	if t == nil {
		return fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	t.Deleted = true
	return s.save()
}

// ClearCompleted soft-deletes every completed task and returns how many
// were cleared.
func (s *Store) ClearCompleted() (int, error) {
	n := 0
	for i := range s.tasks {
		if s.tasks[i].Completed && !s.tasks[i].Deleted {
			s.tasks[i].Deleted = true
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	return n, s.save()
}

// find returns a pointer to the live record, or nil when the id is
// unknown or deleted.
func (s *Store) find(id int64) *model.Task {
	for i := range s.tasks {
		if s.tasks[i].ID == id && !s.tasks[i].Deleted {
			return &s.tasks[i]
		}
	}
	return nil
}

// nextID scans all records, deleted included, so ids are never reused.
func (s *Store) nextID() int64 {
	var max int64
	for _, t := range s.tasks {
		if t.ID > max {
			max = t.ID
		}
	}
	return max + 1
}

func (s *Store) save() error {
	if err := jsonstore.Save(s.path, s.tasks); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	return nil
}
