// Package syncer mirrors open GitHub issues into Vibe Kanban projects.
package syncer

import (
	"regexp"
	"strings"

	"github.com/vibesync/vibesync/internal/board"
	"github.com/vibesync/vibesync/internal/github"
)

// URLMarker prefixes the source issue URL embedded in a task's content.
// Tasks created by vibe-sync always carry it; detection also regex-scans for
// bare GitHub URLs to catch tasks whose content was edited.
const URLMarker = "Original Issue: "

var githubURLPattern = regexp.MustCompile(`https://github\.com/[^\s\)]+`)

// TaskContent renders the content stored on a board task for an issue:
// the issue body followed by the marker line.
func TaskContent(issue github.Issue) string {
	return issue.Body + "\n\n" + URLMarker + issue.URL
}

// TaskIndex answers whether an issue already has a task on the board. It
// tracks issue URLs found in task contents and trimmed task titles. Title
// matching is a fallback for tasks created before the URL marker existed; it
// can false-positive when repos sharing one project reuse issue titles,
// which is accepted.
type TaskIndex struct {
	urls   map[string]struct{}
	titles map[string]struct{}
}

// NewTaskIndex builds an index from one cycle's existing tasks.
func NewTaskIndex(tasks []board.Task) *TaskIndex {
	idx := &TaskIndex{
		urls:   make(map[string]struct{}),
		titles: make(map[string]struct{}),
	}

	for _, task := range tasks {
		if title := strings.TrimSpace(task.Title); title != "" {
			idx.titles[title] = struct{}{}
		}

		if url := markerURL(task.Content); url != "" {
			idx.urls[url] = struct{}{}
		}
		for _, url := range githubURLPattern.FindAllString(task.Content, -1) {
			idx.urls[strings.TrimSpace(url)] = struct{}{}
		}
	}
	return idx
}

// IsDuplicate reports whether the issue is already represented: its URL is
// known, or its trimmed title matches an existing task title.
func (idx *TaskIndex) IsDuplicate(issue github.Issue) bool {
	if _, ok := idx.urls[issue.URL]; ok {
		return true
	}
	_, ok := idx.titles[strings.TrimSpace(issue.Title)]
	return ok
}

// Add registers a task created during the current cycle so later issues with
// the same URL or title are suppressed without refetching the board.
func (idx *TaskIndex) Add(title, url string) {
	if title = strings.TrimSpace(title); title != "" {
		idx.titles[title] = struct{}{}
	}
	if url != "" {
		idx.urls[url] = struct{}{}
	}
}

// markerURL extracts the URL following URLMarker, up to the next line break
// or the end of content.
func markerURL(content string) string {
	start := strings.Index(content, URLMarker)
	if start == -1 {
		return ""
	}
	rest := content[start+len(URLMarker):]
	if end := strings.IndexByte(rest, '\n'); end != -1 {
		rest = rest[:end]
	}
	return strings.TrimSpace(rest)
}
