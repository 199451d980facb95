package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vibesync/vibesync/internal/board"
)

func TestFilterTasks(t *testing.T) {
	tasks := []board.Task{
		{ID: "t-1", Title: "Fix login bug", Content: "see stack trace"},
		{ID: "t-2", Title: "Add docs", Content: "mention the LOGIN flow"},
		{ID: "t-3", Title: "Refactor sync", Content: ""},
	}

	tests := []struct {
		name   string
		filter string
		want   []string
	}{
		{"empty filter keeps everything", "", []string{"t-1", "t-2", "t-3"}},
		{"title match case-insensitive", "fix", []string{"t-1"}},
		{"content match case-insensitive", "login", []string{"t-1", "t-2"}},
		{"no match", "deploy", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := filterTasks(tasks, tt.filter)
			var ids []string
			for _, task := range got {
				ids = append(ids, task.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}
