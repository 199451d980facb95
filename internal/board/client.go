// Package board is an HTTP client for the Vibe Kanban API.
package board

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
)

// requestTimeout bounds every board API call.
const requestTimeout = 30 * time.Second

// Client talks to a Vibe Kanban server.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *logrus.Logger
}

// NewClient creates a Client for the server at baseURL.
func NewClient(baseURL string, logger *logrus.Logger) *Client {
	if logger == nil {
		logger = logrus.New()
	}
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		logger: logger,
	}
}

// BaseURL returns the server URL the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FetchProjects lists the board's projects.
func (c *Client) FetchProjects(ctx context.Context) ([]Project, error) {
	data, err := c.get(ctx, "/api/projects", nil)
	if err != nil {
		return nil, err
	}

	var projects []Project
	if err := json.Unmarshal(data, &projects); err != nil {
		return nil, fmt.Errorf("decoding projects: %w", err)
	}
	return projects, nil
}

// FetchTasks lists the tasks of one project.
func (c *Client) FetchTasks(ctx context.Context, projectID string) ([]Task, error) {
	query := url.Values{"project_id": []string{projectID}}
	data, err := c.get(ctx, "/api/tasks", query)
	if err != nil {
		c.logger.WithFields(logrus.Fields{
			"project_id": projectID,
			"error":      err,
		}).Error("failed to fetch board tasks")
		return nil, err
	}

	var tasks []Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("decoding tasks: %w", err)
	}
	return tasks, nil
}

// CreateTask adds a task to a project. Only 200 and 201 count as success.
func (c *Client) CreateTask(ctx context.Context, projectID, title, content string) error {
	body, err := json.Marshal(createTaskRequest{
		Title:     title,
		ProjectID: projectID,
		Content:   content,
	})
	if err != nil {
		return fmt.Errorf("marshal task: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/tasks", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return c.transportError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		c.logger.WithFields(logrus.Fields{
			"title":  title,
			"status": resp.StatusCode,
		}).Error("failed to create task")
		return fmt.Errorf("%w: status %d: %s", ErrAPIFailure, resp.StatusCode, string(respBody))
	}

	c.logger.WithField("title", title).Info("created task")
	return nil
}

// DeleteTask removes a task by ID. Used only by the clear command; sync
// never deletes.
func (c *Client) DeleteTask(ctx context.Context, taskID string) error {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/api/tasks/"+taskID, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return c.transportError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("%w: status %d", ErrAPIFailure, resp.StatusCode)
	}
	return nil
}

// Available checks whether the server answers the projects endpoint with a
// success envelope within a short deadline.
func (c *Client) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/projects", nil)
	if err != nil {
		return false
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false
	}
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return false
	}
	return env.Success
}

// get performs an envelope-wrapped GET and returns the data payload.
func (c *Client) get(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, c.transportError(ctx, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d: %s", ErrAPIFailure, resp.StatusCode, string(respBody))
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return nil, fmt.Errorf("decoding envelope: %w", err)
	}
	if !env.Success {
		return nil, fmt.Errorf("%w: success=false", ErrAPIFailure)
	}
	return env.Data, nil
}

// transportError maps network failures onto the package sentinels.
func (c *Client) transportError(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return ErrTimeout
	}
	var netErr *net.OpError
	if errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return err
}
