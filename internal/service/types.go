package service

import (
	"errors"
	"fmt"

	"mdtodo/internal/task"
)

var (
	// ErrNotFound is returned when a task or remote list does not exist.
	ErrNotFound = errors.New("not found")

	// ErrEmptyText is returned when a task would be added with no text.
	ErrEmptyText = errors.New("task text required")

	// ErrAmbiguous is returned when a remote list name matches several lists.
	ErrAmbiguous = errors.New("ambiguous")
)

// PersistError reports a mutation that was applied in memory but could not
// be written to disk.
type PersistError struct {
	Err error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("save failed: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *PersistError) Unwrap() error {
	return e.Err
}

// FromTaskError maps task package errors onto service errors.
func FromTaskError(err error) error {
	switch {
	case errors.Is(err, task.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, task.ErrEmptyText):
		return ErrEmptyText
	default:
		return err
	}
}

// RemoteList is a list in a mirror backend.
type RemoteList struct {
	ID    string
	Title string
}

// RemoteTask is an open task in a mirror backend.
type RemoteTask struct {
	ID     string
	Title  string
	Status string // "needsAction" or "completed"
}
