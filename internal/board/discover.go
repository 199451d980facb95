package board

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// DefaultPorts are the local ports Vibe Kanban is commonly found on.
var DefaultPorts = []int{3000, 3001, 8080, 8000, 5000}

// Discover probes candidate local ports for a running Vibe Kanban server and
// returns its base URL, or "" when none answers. An empty ports list falls
// back to DefaultPorts.
func Discover(ctx context.Context, logger *logrus.Logger, ports ...int) string {
	if logger == nil {
		logger = logrus.New()
	}
	if len(ports) == 0 {
		ports = DefaultPorts
	}

	for _, port := range ports {
		if ctx.Err() != nil {
			return ""
		}
		url := fmt.Sprintf("http://localhost:%d", port)
		probe := NewClient(url, logger)
		if probe.Available(ctx) {
			logger.WithField("url", url).Info("found vibe kanban")
			return url
		}
	}
	return ""
}

// ResolveURL verifies the configured URL and falls back to port discovery
// when it does not respond. Always returns a usable-looking URL; the caller
// learns about a dead server from the first real request.
func ResolveURL(ctx context.Context, logger *logrus.Logger, configured string) string {
	if logger == nil {
		logger = logrus.New()
	}

	if configured != "" {
		probe := NewClient(configured, logger)
		if probe.Available(ctx) {
			return configured
		}
		logger.WithField("url", configured).Warn("configured url not responding, attempting auto-detection")
	}

	if detected := Discover(ctx, logger); detected != "" {
		return detected
	}

	logger.Error("could not connect to vibe kanban, make sure it's running")
	if configured != "" {
		return configured
	}
	return "http://localhost:3000"
}
