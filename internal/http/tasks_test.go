package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/library/internal/tasks"
)

type fakeTaskClient struct {
	enqueued  []backlite.Task
	statuses  map[string]backlite.TaskStatus
	enqueueFn func() error
}

func (f *fakeTaskClient) Enqueue(_ context.Context, ts ...backlite.Task) ([]string, error) {
	if f.enqueueFn != nil {
		if err := f.enqueueFn(); err != nil {
			return nil, err
		}
	}
	f.enqueued = append(f.enqueued, ts...)
	ids := make([]string, len(ts))
	for i := range ts {
		ids[i] = "task-1"
	}
	return ids, nil
}

func (f *fakeTaskClient) Status(_ context.Context, taskID string) (backlite.TaskStatus, error) {
	if status, ok := f.statuses[taskID]; ok {
		return status, nil
	}
	return backlite.TaskStatusNotFound, nil
}

func setupTasksRouter(client TaskClient) *gin.Engine {
	return NewRouter(RouterConfig{TaskClient: client, AuditRetentionDays: 30})
}

func serve(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestTasksController_ListTaskTypes(t *testing.T) {
	router := setupTasksRouter(&fakeTaskClient{})

	w := serve(router, "GET", "/api/tasks/types", "")
	require.Equal(t, http.StatusOK, w.Code)

	type taskTypes struct {
		TaskTypes []TaskTypeInfo `json:"taskTypes"`
	}
	resp := decode[taskTypes](t, w)
	require.Len(t, resp.TaskTypes, 2)
	assert.Equal(t, "cleanup_audit_events", resp.TaskTypes[0].Type)
	assert.Equal(t, "cleanup_audit_events", resp.TaskTypes[0].Queue)
	assert.Equal(t, "check_dangling_references", resp.TaskTypes[1].Type)
}

func TestTasksController_RunTask(t *testing.T) {
	t.Run("cleanup with configured retention", func(t *testing.T) {
		client := &fakeTaskClient{}
		router := setupTasksRouter(client)

		w := serve(router, "POST", "/api/tasks/cleanup_audit_events/run", "")
		require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())
		assert.JSONEq(t, `{"taskId":"task-1","type":"cleanup_audit_events","message":"task enqueued"}`, w.Body.String())

		require.Len(t, client.enqueued, 1)
		assert.Equal(t, tasks.CleanupAuditEventsTask{RetentionDays: 30}, client.enqueued[0])
	})

	t.Run("cleanup with explicit retention", func(t *testing.T) {
		client := &fakeTaskClient{}
		router := setupTasksRouter(client)

		w := serve(router, "POST", "/api/tasks/cleanup_audit_events/run", `{"retentionDays":7}`)
		require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())
		require.Len(t, client.enqueued, 1)
		assert.Equal(t, tasks.CleanupAuditEventsTask{RetentionDays: 7}, client.enqueued[0])
	})

	t.Run("negative retention is rejected", func(t *testing.T) {
		client := &fakeTaskClient{}
		router := setupTasksRouter(client)

		w := serve(router, "POST", "/api/tasks/cleanup_audit_events/run", `{"retentionDays":-1}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, client.enqueued)
	})

	t.Run("dangling reference check", func(t *testing.T) {
		client := &fakeTaskClient{}
		router := setupTasksRouter(client)

		w := serve(router, "POST", "/api/tasks/check_dangling_references/run", "")
		require.Equal(t, http.StatusAccepted, w.Code)
		require.Len(t, client.enqueued, 1)
		assert.IsType(t, tasks.CheckDanglingReferencesTask{}, client.enqueued[0])
	})

	t.Run("unknown type", func(t *testing.T) {
		router := setupTasksRouter(&fakeTaskClient{})

		w := serve(router, "POST", "/api/tasks/reindex/run", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "unknown task type: reindex")
	})

	t.Run("enqueue failure", func(t *testing.T) {
		client := &fakeTaskClient{enqueueFn: func() error { return errors.New("queue closed") }}
		router := setupTasksRouter(client)

		w := serve(router, "POST", "/api/tasks/check_dangling_references/run", "")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "queue closed")
	})
}

func TestTasksController_GetTaskStatus(t *testing.T) {
	client := &fakeTaskClient{statuses: map[string]backlite.TaskStatus{"abc": backlite.TaskStatusSuccess}}
	router := setupTasksRouter(client)

	w := serve(router, "GET", "/api/tasks/abc", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"abc","status":"success"}`, w.Body.String())

	w = serve(router, "GET", "/api/tasks/missing", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"missing","status":"not_found"}`, w.Body.String())
}

func TestTaskStatusToString(t *testing.T) {
	assert.Equal(t, "pending", taskStatusToString(backlite.TaskStatusPending))
	assert.Equal(t, "running", taskStatusToString(backlite.TaskStatusRunning))
	assert.Equal(t, "failure", taskStatusToString(backlite.TaskStatusFailure))
}
