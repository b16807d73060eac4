package task

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned when no task has the requested ID.
	ErrNotFound = errors.New("task not found")

	// ErrEmptyText is returned when a task would be added with no text.
	ErrEmptyText = errors.New("task text is empty")
)

// Book owns the pending and done lists. Both lists are ordered
// most-recent-first and a task lives in exactly one of them.
//
// Book is not safe for concurrent use; it has a single owner.
type Book struct {
	pending []Task
	done    []Task
}

// NewBook creates a book from already loaded lists. Completion flags are
// normalized to list membership.
func NewBook(pending, done []Task) *Book {
	b := &Book{
		pending: make([]Task, 0, len(pending)),
		done:    make([]Task, 0, len(done)),
	}
	for _, t := range pending {
		if t.ID == "" {
			t.ID = NewID()
		}
		t.Completed = false
		t.DateCompleted = ""
		b.pending = append(b.pending, t)
	}
	for _, t := range done {
		if t.ID == "" {
			t.ID = NewID()
		}
		t.Completed = true
		b.done = append(b.done, t)
	}
	return b
}

// Pending returns a copy of the pending list.
func (b *Book) Pending() []Task {
	return append([]Task(nil), b.pending...)
}

// Done returns a copy of the done list.
func (b *Book) Done() []Task {
	return append([]Task(nil), b.done...)
}

// Len returns the number of pending and done tasks.
func (b *Book) Len() (pending, done int) {
	return len(b.pending), len(b.done)
}

// Find looks a task up by ID in either list.
func (b *Book) Find(id string) (Task, bool) {
	if i := indexOf(b.pending, id); i >= 0 {
		return b.pending[i], true
	}
	if i := indexOf(b.done, id); i >= 0 {
		return b.done[i], true
	}
	return Task{}, false
}

// Add creates a pending task and puts it at the top of the pending list.
func (b *Book) Add(text, today string) (Task, error) {
	if strings.TrimSpace(text) == "" {
		return Task{}, ErrEmptyText
	}
	t := NewTask(text, today)
	b.pending = insertFront(b.pending, t)
	return t, nil
}

// Toggle moves the task with the given ID to the done list (done == true) or
// back to the pending list, stamping it on the way. The moved task goes to
// the top of its new list. Toggling a task into its current state changes
// nothing.
func (b *Book) Toggle(id string, done bool, today string) (Task, error) {
	from, to := &b.pending, &b.done
	if !done {
		from, to = &b.done, &b.pending
	}

	i := indexOf(*from, id)
	if i < 0 {
		if j := indexOf(*to, id); j >= 0 {
			return (*to)[j], nil
		}
		return Task{}, ErrNotFound
	}

	t := (*from)[i]
	*from = append((*from)[:i], (*from)[i+1:]...)
	if done {
		t.MarkCompleted(today)
	} else {
		t.MarkPending(today)
	}
	*to = insertFront(*to, t)
	return t, nil
}

func indexOf(list []Task, id string) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}

func insertFront(list []Task, t Task) []Task {
	list = append(list, Task{})
	copy(list[1:], list)
	list[0] = t
	return list
}
