// Package service defines the backend-agnostic interfaces the front ends call.
package service

import (
	"context"

	"mdtodo/internal/task"
)

// Service is the state-mutation boundary between a front end and the task
// store. Tasks are addressed by their stable ID, never by display position.
type Service interface {
	// Pending returns the pending tasks, most recent first.
	Pending(ctx context.Context) ([]task.Task, error)

	// Done returns the done tasks, most recently completed first.
	Done(ctx context.Context) ([]task.Task, error)

	// Add creates a pending task from text and persists both lists.
	// Returns ErrEmptyText if text is blank after trimming.
	Add(ctx context.Context, text string) (task.Task, error)

	// SetDone moves a task to the done list (done == true) or back to the
	// pending list and persists both lists.
	// Returns ErrNotFound if no task has the ID.
	SetDone(ctx context.Context, id string, done bool) (task.Task, error)
}

// Mirror is a remote task list the local lists can be published to.
// Commands never import a remote SDK directly.
type Mirror interface {
	// ResolveList finds a remote list by name (case-insensitive, trimmed).
	ResolveList(ctx context.Context, name string) (RemoteList, error)

	// CreateList creates a remote list and returns it.
	CreateList(ctx context.Context, name string) (RemoteList, error)

	// ListOpenTasks returns every open task of a remote list.
	ListOpenTasks(ctx context.Context, listID string) ([]RemoteTask, error)

	// CreateTask creates an open task in a remote list.
	CreateTask(ctx context.Context, listID, title string) error

	// CompleteTask marks a remote task completed.
	CompleteTask(ctx context.Context, listID, taskID string) error
}
