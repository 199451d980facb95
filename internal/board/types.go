package board

import "encoding/json"

// Task is a work item on the kanban board. Content may be JSON null on the
// wire; it decodes to the empty string.
type Task struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	ProjectID string `json:"project_id"`
}

// Project is a board project tasks belong to.
type Project struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// envelope is the response wrapper every board endpoint uses.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

// createTaskRequest is the JSON body sent to POST /api/tasks.
type createTaskRequest struct {
	Title     string `json:"title"`
	ProjectID string `json:"project_id"`
	Content   string `json:"content"`
}
