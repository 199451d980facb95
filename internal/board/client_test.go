package board

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestFetchTasks_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tasks", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "p-1", r.URL.Query().Get("project_id"))

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"success":true,"data":[
			{"id":"t-1","title":"fix bug","content":"body\n\nOriginal Issue: https://github.com/o/r/issues/5","project_id":"p-1"},
			{"id":"t-2","title":"untitled","content":null,"project_id":"p-1"}
		]}`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, quietLogger())
	tasks, err := client.FetchTasks(context.Background(), "p-1")
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "t-1", tasks[0].ID)
	assert.Equal(t, "fix bug", tasks[0].Title)
	assert.Empty(t, tasks[1].Content, "null content decodes to empty string")
}

func TestFetchTasks_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, quietLogger())
	tasks, err := client.FetchTasks(context.Background(), "p-1")
	assert.ErrorIs(t, err, ErrAPIFailure)
	assert.Empty(t, tasks)
}

func TestFetchTasks_SuccessFalseEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"success":false,"data":null}`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, quietLogger())
	_, err := client.FetchTasks(context.Background(), "p-1")
	assert.ErrorIs(t, err, ErrAPIFailure)
}

func TestFetchTasks_Unreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", quietLogger()) // nothing listening

	_, err := client.FetchTasks(context.Background(), "p-1")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestCreateTask_PostsPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tasks", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req createTaskRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "fix bug", req.Title)
		assert.Equal(t, "p-1", req.ProjectID)
		assert.Contains(t, req.Content, "Original Issue: https://github.com/o/r/issues/5")

		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"success":true,"data":{}}`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, quietLogger())
	err := client.CreateTask(context.Background(), "p-1", "fix bug",
		"body\n\nOriginal Issue: https://github.com/o/r/issues/5")
	assert.NoError(t, err)
}

func TestCreateTask_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad request", http.StatusBadRequest)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, quietLogger())
	err := client.CreateTask(context.Background(), "p-1", "fix bug", "content")
	assert.ErrorIs(t, err, ErrAPIFailure)
}

func TestDeleteTask(t *testing.T) {
	var deletedPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		deletedPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, quietLogger())
	require.NoError(t, client.DeleteTask(context.Background(), "t-9"))
	assert.Equal(t, "/api/tasks/t-9", deletedPath)
}

func TestFetchProjects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/projects", r.URL.Path)
		io.WriteString(w, `{"success":true,"data":[{"id":"p-1","name":"Hello World"}]}`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, quietLogger())
	projects, err := client.FetchProjects(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "Hello World", projects[0].Name)
}

func TestAvailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"success":true,"data":[]}`)
	}))
	defer srv.Close()

	assert.True(t, NewClient(srv.URL, quietLogger()).Available(context.Background()))
	assert.False(t, NewClient("http://127.0.0.1:1", quietLogger()).Available(context.Background()))
}
