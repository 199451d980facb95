package board

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrCLINotFound indicates the vibe-kanban binary is not installed.
var ErrCLINotFound = errors.New("vibe-kanban cli not found (install with: npm install -g vibe-kanban)")

// Homebrew locations checked when the binary is not on PATH.
var fallbackCLIPaths = []string{
	"/opt/homebrew/bin/vibe-kanban",
	"/usr/local/bin/vibe-kanban",
}

// LocateCLI finds the vibe-kanban executable on PATH or in common install
// locations.
func LocateCLI() (string, error) {
	if path, err := exec.LookPath("vibe-kanban"); err == nil {
		return path, nil
	}
	for _, path := range fallbackCLIPaths {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", ErrCLINotFound
}

// StartServer launches vibe-kanban detached and polls for up to ten seconds
// until it answers, returning the discovered URL. Used only by setup.
func StartServer(ctx context.Context, logger *logrus.Logger) (string, error) {
	if logger == nil {
		logger = logrus.New()
	}

	cliPath, err := LocateCLI()
	if err != nil {
		return "", err
	}
	logger.WithField("path", cliPath).Info("starting vibe kanban")

	cmd := exec.Command(cliPath)
	cmd.Stdout = nil
	cmd.Stderr = nil
	if err := cmd.Start(); err != nil {
		return "", err
	}
	// Detach: the server outlives this process.
	if err := cmd.Process.Release(); err != nil {
		return "", err
	}

	for i := 0; i < 10; i++ {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(time.Second):
		}
		if url := Discover(ctx, logger); url != "" {
			return url, nil
		}
	}
	return "", errors.New("vibe kanban started but did not answer within 10s")
}
