package github

import "errors"

var (
	// ErrCommandFailed indicates the gh CLI exited non-zero or could not run.
	ErrCommandFailed = errors.New("gh command failed")

	// ErrTimeout indicates the gh CLI did not finish within the timeout.
	ErrTimeout = errors.New("gh command timed out")

	// ErrBadOutput indicates gh produced output that could not be parsed.
	ErrBadOutput = errors.New("unparseable gh output")
)
