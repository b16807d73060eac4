// Package task defines the to-do record and the ordered pending/done lists
// that own it.
package task

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the calendar date format used for every task date.
const DateLayout = "2006-01-02"

// Task is a single to-do item.
type Task struct {
	// ID is an in-memory handle. It is assigned on creation or load and is
	// never written to disk.
	ID string

	Text          string
	DateAdded     string // YYYY-MM-DD
	Completed     bool
	DateCompleted string // YYYY-MM-DD, empty unless Completed
}

// Today returns the UTC calendar date of now.
func Today(now time.Time) string {
	return now.UTC().Format(DateLayout)
}

// NewID returns a fresh task handle.
func NewID() string {
	return uuid.NewString()
}

// NewTask builds a pending task from user input.
func NewTask(text, today string) Task {
	return Task{
		ID:        NewID(),
		Text:      strings.TrimSpace(text),
		DateAdded: today,
	}
}

// MarkCompleted flags the task as done on the given date.
func (t *Task) MarkCompleted(today string) {
	t.Completed = true
	t.DateCompleted = today
}

// MarkPending flags the task as not done and clears its completion date.
func (t *Task) MarkPending(_ string) {
	t.Completed = false
	t.DateCompleted = ""
}

// Reset clears every field. Only meant for scratch input buffers.
func (t *Task) Reset() {
	*t = Task{}
}
