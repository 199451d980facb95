// Package github fetches open issues from GitHub through the gh CLI.
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Issue is one open item from the GitHub issue tracker.
type Issue struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
	Body   string `json:"body"`
	URL    string `json:"url"`
}

// Default timeouts for gh invocations.
const (
	issueListTimeout = 60 * time.Second
	userTimeout      = 10 * time.Second
)

// runner executes an external command and returns its stdout.
// Injected so tests never exec a real gh binary.
type runner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Client fetches issues by shelling out to the gh CLI.
type Client struct {
	binary string
	limit  int
	run    runner
	logger *logrus.Logger
}

// NewClient creates a Client that invokes gh with the given per-repo issue
// limit.
func NewClient(limit int, logger *logrus.Logger) *Client {
	if logger == nil {
		logger = logrus.New()
	}
	return &Client{
		binary: "gh",
		limit:  limit,
		run:    execRunner,
		logger: logger,
	}
}

// FetchOpenIssues lists open issues for repo ("owner/repo"). The caller is
// expected to treat any error as "no issues this cycle".
func (c *Client) FetchOpenIssues(ctx context.Context, repo string) ([]Issue, error) {
	ctx, cancel := context.WithTimeout(ctx, issueListTimeout)
	defer cancel()

	args := []string{
		"issue", "list",
		"--repo", repo,
		"--state", "open",
		"--limit", strconv.Itoa(c.limit),
		"--json", "number,title,body,url",
	}

	out, err := c.run(ctx, c.binary, args...)
	if err != nil {
		if ctx.Err() != nil {
			c.logger.WithField("repo", repo).Error("timeout fetching issues")
			return nil, ErrTimeout
		}
		c.logger.WithFields(logrus.Fields{
			"repo":  repo,
			"error": commandError(err),
		}).Error("failed to fetch issues")
		return nil, fmt.Errorf("%w: %v", ErrCommandFailed, err)
	}

	var issues []Issue
	if err := json.Unmarshal(out, &issues); err != nil {
		c.logger.WithField("repo", repo).Error("failed to parse gh output")
		return nil, fmt.Errorf("%w: %v", ErrBadOutput, err)
	}
	return issues, nil
}

// Username returns the login of the authenticated gh user. Used by setup to
// suggest owner/repo names.
func (c *Client) Username(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, userTimeout)
	defer cancel()

	out, err := c.run(ctx, c.binary, "api", "user", "--jq", ".login")
	if err != nil {
		if ctx.Err() != nil {
			return "", ErrTimeout
		}
		return "", fmt.Errorf("%w: %v", ErrCommandFailed, err)
	}
	login := strings.TrimSpace(string(out))
	if login == "" {
		return "", ErrBadOutput
	}
	return login, nil
}

// commandError extracts stderr from an ExitError so log lines carry the gh
// diagnostic instead of just "exit status 1".
func commandError(err error) string {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
		return strings.TrimSpace(string(exitErr.Stderr))
	}
	return err.Error()
}
