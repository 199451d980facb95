package board

import "errors"

var (
	// ErrUnavailable indicates the Vibe Kanban server is unreachable.
	ErrUnavailable = errors.New("vibe kanban unavailable")

	// ErrTimeout indicates a board request exceeded its timeout.
	ErrTimeout = errors.New("board request timed out")

	// ErrAPIFailure indicates the board answered with a non-success status
	// or a success=false envelope.
	ErrAPIFailure = errors.New("board api failure")
)
