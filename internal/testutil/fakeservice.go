// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"mdtodo/internal/service"
	"mdtodo/internal/task"
)

// FakeToday is the date stamped by FakeService.
const FakeToday = "2025-06-01"

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu   sync.Mutex
	book *task.Book

	// Error injection for testing
	PendingErr error
	DoneErr    error
	AddErr     error
	SetDoneErr error

	// SaveErr is wrapped in a service.PersistError after a mutation is applied.
	SaveErr error

	// Calls records mutations in order, e.g. "add:buy milk", "done:<id>".
	Calls []string
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{book: task.NewBook(nil, nil)}
}

// AddPending seeds a pending task (appended, so seeds read top to bottom).
func (f *FakeService) AddPending(id, text, added string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	pending := append(f.book.Pending(), task.Task{ID: id, Text: text, DateAdded: added})
	f.book = task.NewBook(pending, f.book.Done())
}

// AddDone seeds a done task (appended).
func (f *FakeService) AddDone(id, text, added, completed string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	done := append(f.book.Done(), task.Task{ID: id, Text: text, DateAdded: added, Completed: true, DateCompleted: completed})
	f.book = task.NewBook(f.book.Pending(), done)
}

// Pending implements service.Service.
func (f *FakeService) Pending(ctx context.Context) ([]task.Task, error) {
	if f.PendingErr != nil {
		return nil, f.PendingErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.book.Pending(), nil
}

// Done implements service.Service.
func (f *FakeService) Done(ctx context.Context) ([]task.Task, error) {
	if f.DoneErr != nil {
		return nil, f.DoneErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.book.Done(), nil
}

// Add implements service.Service.
func (f *FakeService) Add(ctx context.Context, text string) (task.Task, error) {
	if f.AddErr != nil {
		return task.Task{}, f.AddErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	t, err := f.book.Add(text, FakeToday)
	if err != nil {
		return task.Task{}, service.FromTaskError(err)
	}
	f.Calls = append(f.Calls, "add:"+t.Text)
	return t, f.saveErr()
}

// SetDone implements service.Service.
func (f *FakeService) SetDone(ctx context.Context, id string, done bool) (task.Task, error) {
	if f.SetDoneErr != nil {
		return task.Task{}, f.SetDoneErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	t, err := f.book.Toggle(id, done, FakeToday)
	if err != nil {
		return task.Task{}, service.FromTaskError(err)
	}
	verb := "undo"
	if done {
		verb = "done"
	}
	f.Calls = append(f.Calls, verb+":"+id)
	return t, f.saveErr()
}

func (f *FakeService) saveErr() error {
	if f.SaveErr != nil {
		return &service.PersistError{Err: f.SaveErr}
	}
	return nil
}

// FakeMirror is an in-memory implementation of service.Mirror for testing.
type FakeMirror struct {
	mu    sync.Mutex
	lists []service.RemoteList
	tasks map[string][]service.RemoteTask // listID -> tasks

	// Error injection for testing
	ResolveListErr   error
	CreateListErr    error
	ListOpenTasksErr error
	CreateTaskErr    error
	CompleteTaskErr  error
}

// NewFakeMirror creates an empty FakeMirror.
func NewFakeMirror() *FakeMirror {
	return &FakeMirror{tasks: make(map[string][]service.RemoteTask)}
}

// AddList adds a remote list.
func (f *FakeMirror) AddList(id, title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists = append(f.lists, service.RemoteList{ID: id, Title: title})
}

// AddTask adds an open remote task.
func (f *FakeMirror) AddTask(listID, taskID, title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks[listID] = append(f.tasks[listID], service.RemoteTask{ID: taskID, Title: title, Status: "needsAction"})
}

// Lists returns all remote lists.
func (f *FakeMirror) Lists() []service.RemoteList {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]service.RemoteList(nil), f.lists...)
}

// Tasks returns every remote task of a list, open or completed.
func (f *FakeMirror) Tasks(listID string) []service.RemoteTask {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]service.RemoteTask(nil), f.tasks[listID]...)
}

// ResolveList implements service.Mirror.
func (f *FakeMirror) ResolveList(ctx context.Context, name string) (service.RemoteList, error) {
	if f.ResolveListErr != nil {
		return service.RemoteList{}, f.ResolveListErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	want := strings.ToLower(strings.TrimSpace(name))
	var matches []service.RemoteList
	for _, l := range f.lists {
		if strings.ToLower(strings.TrimSpace(l.Title)) == want {
			matches = append(matches, l)
		}
	}

	switch len(matches) {
	case 0:
		return service.RemoteList{}, service.ErrNotFound
	case 1:
		return matches[0], nil
	default:
		return service.RemoteList{}, service.ErrAmbiguous
	}
}

// CreateList implements service.Mirror.
func (f *FakeMirror) CreateList(ctx context.Context, name string) (service.RemoteList, error) {
	if f.CreateListErr != nil {
		return service.RemoteList{}, f.CreateListErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	list := service.RemoteList{ID: fmt.Sprintf("list-%d", len(f.lists)+1), Title: name}
	f.lists = append(f.lists, list)
	return list, nil
}

// ListOpenTasks implements service.Mirror.
func (f *FakeMirror) ListOpenTasks(ctx context.Context, listID string) ([]service.RemoteTask, error) {
	if f.ListOpenTasksErr != nil {
		return nil, f.ListOpenTasksErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	var open []service.RemoteTask
	for _, t := range f.tasks[listID] {
		if t.Status == "needsAction" {
			open = append(open, t)
		}
	}
	return open, nil
}

// CreateTask implements service.Mirror.
func (f *FakeMirror) CreateTask(ctx context.Context, listID, title string) error {
	if f.CreateTaskErr != nil {
		return f.CreateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	id := fmt.Sprintf("%s-task-%d", listID, len(f.tasks[listID])+1)
	f.tasks[listID] = append(f.tasks[listID], service.RemoteTask{ID: id, Title: title, Status: "needsAction"})
	return nil
}

// CompleteTask implements service.Mirror.
func (f *FakeMirror) CompleteTask(ctx context.Context, listID, taskID string) error {
	if f.CompleteTaskErr != nil {
		return f.CompleteTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, t := range f.tasks[listID] {
		if t.ID == taskID {
			f.tasks[listID][i].Status = "completed"
			return nil
		}
	}
	return service.ErrNotFound
}
