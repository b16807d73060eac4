// Package googletasks implements service.Mirror using the Google Tasks API.
package googletasks

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	tasks "google.golang.org/api/tasks/v1"

	"mdtodo/internal/config"
	"mdtodo/internal/service"
)

const (
	// PageSize is the number of tasks fetched per API call.
	PageSize = 100

	// APITimeout is the timeout for API calls.
	APITimeout = 5 * time.Second

	// Scope is the OAuth scope for Google Tasks.
	Scope = tasks.TasksScope

	statusCompleted = "completed"
)

// Client implements service.Mirror using Google Tasks API.
type Client struct {
	svc *tasks.Service
}

// New creates a new Google Tasks client.
// Requires oauth_client.json and token.json to exist.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	oauthConfig, err := OAuthConfig(cfg)
	if err != nil {
		return nil, err
	}

	tokenData, err := os.ReadFile(cfg.TokenPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read token.json: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(tokenData, &token); err != nil {
		return nil, fmt.Errorf("invalid token.json: %w", err)
	}

	// Token source refreshes automatically.
	httpClient := oauth2.NewClient(ctx, oauthConfig.TokenSource(ctx, &token))
	return NewWithHTTPClient(ctx, httpClient)
}

// OAuthConfig reads the OAuth client credentials from the config dir.
func OAuthConfig(cfg *config.Config) (*oauth2.Config, error) {
	clientJSON, err := os.ReadFile(cfg.OAuthClientPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read oauth_client.json: %w", err)
	}
	oauthConfig, err := google.ConfigFromJSON(clientJSON, Scope)
	if err != nil {
		return nil, fmt.Errorf("invalid oauth_client.json: %w", err)
	}
	return oauthConfig, nil
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewWithHTTPClient(ctx context.Context, httpClient *http.Client, opts ...option.ClientOption) (*Client, error) {
	opts = append([]option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)
	svc, err := tasks.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create tasks service: %w", err)
	}
	return &Client{svc: svc}, nil
}

// ResolveList finds a list by name (case-insensitive, trimmed).
func (c *Client) ResolveList(ctx context.Context, name string) (service.RemoteList, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	want := strings.ToLower(strings.TrimSpace(name))

	var matches []service.RemoteList
	err := c.svc.Tasklists.List().MaxResults(PageSize).Pages(ctx, func(resp *tasks.TaskLists) error {
		for _, list := range resp.Items {
			if strings.ToLower(strings.TrimSpace(list.Title)) == want {
				matches = append(matches, service.RemoteList{ID: list.Id, Title: list.Title})
			}
		}
		return nil
	})
	if err != nil {
		return service.RemoteList{}, wrapError(err)
	}

	switch len(matches) {
	case 0:
		return service.RemoteList{}, fmt.Errorf("list %s: %w", name, service.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return service.RemoteList{}, fmt.Errorf("list %s: %w", name, service.ErrAmbiguous)
	}
}

// CreateList creates a new task list.
func (c *Client) CreateList(ctx context.Context, name string) (service.RemoteList, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	list, err := c.svc.Tasklists.Insert(&tasks.TaskList{Title: name}).Context(ctx).Do()
	if err != nil {
		return service.RemoteList{}, wrapError(err)
	}
	return service.RemoteList{ID: list.Id, Title: list.Title}, nil
}

// ListOpenTasks returns every open task of a list in API order.
func (c *Client) ListOpenTasks(ctx context.Context, listID string) ([]service.RemoteTask, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	var result []service.RemoteTask
	err := c.svc.Tasks.List(listID).
		MaxResults(PageSize).
		ShowCompleted(false).
		ShowDeleted(false).
		ShowHidden(false).
		Pages(ctx, func(resp *tasks.Tasks) error {
			for _, t := range resp.Items {
				result = append(result, service.RemoteTask{
					ID:     t.Id,
					Title:  t.Title,
					Status: t.Status,
				})
			}
			return nil
		})
	if err != nil {
		return nil, wrapError(err)
	}
	return result, nil
}

// CreateTask creates a new task in the specified list.
func (c *Client) CreateTask(ctx context.Context, listID, title string) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	_, err := c.svc.Tasks.Insert(listID, &tasks.Task{Title: title}).Context(ctx).Do()
	if err != nil {
		return wrapError(err)
	}
	return nil
}

// CompleteTask marks a task as completed.
func (c *Client) CompleteTask(ctx context.Context, listID, taskID string) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	_, err := c.svc.Tasks.Patch(listID, taskID, &tasks.Task{
		Status: statusCompleted,
	}).Context(ctx).Do()
	if err != nil {
		return wrapError(err)
	}
	return nil
}

// wrapError wraps API errors with user-friendly messages.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	errStr := err.Error()

	if strings.Contains(errStr, "context deadline exceeded") {
		return fmt.Errorf("request timed out")
	}

	if strings.Contains(errStr, "401") || strings.Contains(errStr, "403") {
		return fmt.Errorf("token expired or revoked (run: mdtodo login)")
	}

	if strings.Contains(errStr, "404") {
		return service.ErrNotFound
	}

	return err
}
