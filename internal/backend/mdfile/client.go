// Package mdfile implements service.Service on top of the markdown task files.
package mdfile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"mdtodo/internal/config"
	"mdtodo/internal/logging"
	"mdtodo/internal/service"
	"mdtodo/internal/store"
	"mdtodo/internal/task"
)

// ErrNotLoaded is wrapped by the PersistError returned when a save would
// overwrite a task file that failed to load.
var ErrNotLoaded = errors.New("task file was not loaded; refusing to overwrite it")

// Client owns the in-memory task book and writes both files after every
// mutation. It is meant for a single goroutine.
type Client struct {
	book        *task.Book
	pendingPath string
	donePath    string
	logger      *log.Logger
	now         func() time.Time

	// unreadable holds the paths that failed to load, with the load error.
	unreadable map[string]error
}

// Option configures a Client.
type Option func(*Client)

// WithClock overrides the clock used to stamp dates.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// New loads both task files and returns a client. A file that cannot be read
// is logged and its list starts empty; that file is then never written by
// this client.
func New(cfg *config.Config, logger *log.Logger, opts ...Option) *Client {
	c := &Client{
		pendingPath: cfg.PendingPath,
		donePath:    cfg.DonePath,
		logger:      logger,
		now:         time.Now,
		unreadable:  make(map[string]error),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logging.Discard()
	}

	pending := c.load(c.pendingPath, store.LoadPending)
	done := c.load(c.donePath, store.LoadDone)
	c.book = task.NewBook(pending, done)
	c.logger.Debug("loaded tasks", "pending", len(pending), "done", len(done))

	return c
}

func (c *Client) load(path string, load func(string) ([]task.Task, error)) []task.Task {
	tasks, err := load(path)
	if err != nil {
		c.logger.Warn("error loading task file; continuing with empty list", "path", path, "err", err)
		c.unreadable[path] = err
		return []task.Task{}
	}
	return tasks
}

// Pending implements service.Service.
func (c *Client) Pending(ctx context.Context) ([]task.Task, error) {
	return c.book.Pending(), nil
}

// Done implements service.Service.
func (c *Client) Done(ctx context.Context) ([]task.Task, error) {
	return c.book.Done(), nil
}

// Add implements service.Service.
func (c *Client) Add(ctx context.Context, text string) (task.Task, error) {
	t, err := c.book.Add(text, c.today())
	if err != nil {
		return task.Task{}, service.FromTaskError(err)
	}
	c.logger.Debug("added task", "id", t.ID, "text", t.Text)
	return t, c.persist()
}

// SetDone implements service.Service.
func (c *Client) SetDone(ctx context.Context, id string, done bool) (task.Task, error) {
	t, err := c.book.Toggle(id, done, c.today())
	if err != nil {
		return task.Task{}, service.FromTaskError(err)
	}
	c.logger.Debug("toggled task", "id", t.ID, "done", t.Completed)
	return t, c.persist()
}

func (c *Client) today() string {
	return task.Today(c.now())
}

// persist writes both lists. The in-memory state is kept on failure.
func (c *Client) persist() error {
	for _, path := range []string{c.pendingPath, c.donePath} {
		if loadErr, ok := c.unreadable[path]; ok {
			err := fmt.Errorf("%s: %w (load error: %v)", path, ErrNotLoaded, loadErr)
			c.logger.Error("error saving task lists", "err", err)
			return &service.PersistError{Err: err}
		}
	}

	if err := store.Save(c.book.Pending(), c.book.Done(), c.pendingPath, c.donePath); err != nil {
		c.logger.Error("error saving task lists", "err", err)
		return &service.PersistError{Err: err}
	}
	return nil
}
