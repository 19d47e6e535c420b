// Package model holds the task record and its validation rules.
//
// A Task is the sole entity of the application. Records are persisted as
// a JSON array with the field names fixed by the data file format; ids
// are assigned once and never reused, even across soft-deleted tasks.
package model

import "time"

// MaxTextLength is the maximum allowed length for a task's text.
const MaxTextLength = 500

// Task is a single to-do item.
type Task struct {
	// ID is unique across all tasks ever created, including deleted ones.
	ID int64 `json:"id"`

	// Text is the task description. Required, non-empty after trim.
	Text string `json:"text"`

	// Priority is High, Medium or Low. Defaults to Medium.
	Priority Priority `json:"priority"`

	// Due is the optional due date.
	Due Date `json:"due_date"`

	// Created is set once at creation and never changes.
	Created time.Time `json:"created"`

	// Completed marks the task as done.
	Completed bool `json:"completed"`

	// Deleted marks the task as soft-deleted. Deleted tasks stay in
	// storage but are excluded from every view.
	Deleted bool `json:"deleted"`
}

// Validate checks the task's invariants.
func (t *Task) Validate() error {
	if err := ValidateText(t.Text); err != nil {
		return err
	}
	if !t.Priority.IsValid() {
		return &ValidationError{Field: "priority", Err: ErrInvalidPriority, Value: string(t.Priority)}
	}
	return nil
}

// ValidateText checks a task description. The caller trims; an
// all-whitespace string is treated as empty.
func ValidateText(text string) error {
	if text == "" {
		return &ValidationError{Field: "text", Err: ErrEmptyText}
	}
	if len(text) > MaxTextLength {
		return &ValidationError{Field: "text", Err: ErrTextTooLong}
	}
	return nil
}

// StatusLabel renders the completion state the way the list and export
// views show it.
func (t *Task) StatusLabel() string {
	if t.Completed {
		return "Done"
	}
	return "Pending"
}

// Overdue reports whether the task has a due date in the past and is
// still pending.
func (t *Task) Overdue(today Date) bool {
	return !t.Completed && !t.Due.IsZero() && t.Due.Before(today)
}
