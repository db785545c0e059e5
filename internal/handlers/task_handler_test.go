package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"task-tracker-api/internal/manager"
	"task-tracker-api/internal/realtime"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, hub *realtime.Hub) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h := New(manager.NewDefault(), hub)

	r := gin.New()
	r.GET("/tasks", h.GetTasks)
	r.POST("/tasks", h.SaveTask)
	r.DELETE("/tasks", h.DeleteAllTasks)
	r.GET("/tasks/:id", h.GetTaskByID)
	r.PUT("/tasks/:id", h.UpdateTask)
	r.DELETE("/tasks/:id", h.DeleteTask)

	r.GET("/epics", h.GetEpics)
	r.POST("/epics", h.SaveEpic)
	r.DELETE("/epics", h.DeleteAllEpics)
	r.GET("/epics/:id", h.GetEpicByID)
	r.PUT("/epics/:id", h.UpdateEpic)
	r.DELETE("/epics/:id", h.DeleteEpic)
	r.GET("/epics/:id/subtasks", h.GetEpicSubtasks)

	r.GET("/subtasks", h.GetSubtasks)
	r.POST("/subtasks", h.SaveSubtask)
	r.DELETE("/subtasks", h.DeleteAllSubtasks)
	r.GET("/subtasks/:id", h.GetSubtaskByID)
	r.PUT("/subtasks/:id", h.UpdateSubtask)
	r.DELETE("/subtasks/:id", h.DeleteSubtask)

	r.GET("/history", h.GetHistory)
	r.GET("/prioritized", h.GetPrioritized)
	r.GET("/ws", h.WebSocket)
	return r
}

func do(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

type listResponse struct {
	Tasks       []TaskPayload `json:"tasks"`
	Epics       []TaskPayload `json:"epics"`
	Subtasks    []TaskPayload `json:"subtasks"`
	History     []TaskPayload `json:"history"`
	Prioritized []TaskPayload `json:"prioritized"`
	Count       int           `json:"count"`
}

func TestSaveTask_CreatesThenGetRecordsHistory(t *testing.T) {
	r := newTestRouter(t, nil)

	w := do(r, http.MethodPost, "/tasks", map[string]any{
		"name":        "Write report",
		"description": "quarterly",
		"startTime":   "01.03.2025 10:00:00",
		"duration":    "60",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[TaskPayload](t, w)
	require.Equal(t, 1, created.ID)
	require.Equal(t, "NEW", string(created.Status))
	require.Equal(t, "TASK", string(created.Type))
	require.NotNil(t, created.EndTime)
	require.Equal(t, "01.03.2025 11:00:00", created.EndTime.Format(TimeLayout))

	w = do(r, http.MethodGet, "/history", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 0, decode[listResponse](t, w).Count)

	w = do(r, http.MethodGet, "/tasks/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "Write report", decode[TaskPayload](t, w).Name)

	w = do(r, http.MethodGet, "/history", nil)
	history := decode[listResponse](t, w)
	require.Equal(t, 1, history.Count)
	require.Equal(t, 1, history.History[0].ID)
}

func TestSaveTask_WithIDUpdates(t *testing.T) {
	r := newTestRouter(t, nil)
	require.Equal(t, http.StatusCreated, do(r, http.MethodPost, "/tasks", map[string]any{"name": "a"}).Code)

	w := do(r, http.MethodPost, "/tasks", map[string]any{"id": 1, "name": "b", "status": "DONE"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Equal(t, "DONE", string(decode[TaskPayload](t, w).Status))

	w = do(r, http.MethodPost, "/tasks", map[string]any{"id": 42, "name": "ghost"})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateTask_PathIDWins(t *testing.T) {
	r := newTestRouter(t, nil)
	do(r, http.MethodPost, "/tasks", map[string]any{"name": "a"})
	do(r, http.MethodPost, "/tasks", map[string]any{"name": "b"})

	w := do(r, http.MethodPut, "/tasks/2", map[string]any{"id": 1, "name": "renamed"})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 2, decode[TaskPayload](t, w).ID)

	w = do(r, http.MethodGet, "/tasks/1", nil)
	require.Equal(t, "a", decode[TaskPayload](t, w).Name)
}

func TestErrorStatusMapping(t *testing.T) {
	r := newTestRouter(t, nil)
	do(r, http.MethodPost, "/tasks", map[string]any{
		"name":      "busy",
		"startTime": "01.03.2025 10:00:00",
		"duration":  60,
	})

	tests := map[string]struct {
		method string
		path   string
		body   any
		want   int
	}{
		"missing task":        {http.MethodGet, "/tasks/99", nil, http.StatusNotFound},
		"missing epic":        {http.MethodGet, "/epics/99", nil, http.StatusNotFound},
		"delete missing":      {http.MethodDelete, "/subtasks/99", nil, http.StatusNotFound},
		"bad path id":         {http.MethodGet, "/tasks/abc", nil, http.StatusInternalServerError},
		"malformed json":      {http.MethodPost, "/tasks", `{"name":`, http.StatusInternalServerError},
		"bad time format":     {http.MethodPost, "/tasks", map[string]any{"name": "x", "startTime": "2025-03-01"}, http.StatusInternalServerError},
		"unknown status":      {http.MethodPost, "/tasks", map[string]any{"name": "x", "status": "BOGUS"}, http.StatusBadRequest},
		"negative duration":   {http.MethodPost, "/tasks", map[string]any{"name": "x", "startTime": "02.03.2025 10:00:00", "duration": "-30"}, http.StatusBadRequest},
		"overlapping task":    {http.MethodPost, "/tasks", map[string]any{"name": "x", "startTime": "01.03.2025 10:30:00", "duration": "15"}, http.StatusNotAcceptable},
		"shared boundary":     {http.MethodPost, "/tasks", map[string]any{"name": "x", "startTime": "01.03.2025 11:00:00", "duration": "15"}, http.StatusNotAcceptable},
		"subtask of no epic":  {http.MethodPost, "/subtasks", map[string]any{"name": "x", "epicId": 7}, http.StatusNotFound},
		"subtasks of no epic": {http.MethodGet, "/epics/7/subtasks", nil, http.StatusNotFound},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			w := do(r, tc.method, tc.path, tc.body)
			require.Equal(t, tc.want, w.Code, w.Body.String())
			require.Contains(t, w.Body.String(), `"error"`)
		})
	}
}

func TestEpicLifecycle(t *testing.T) {
	r := newTestRouter(t, nil)

	w := do(r, http.MethodPost, "/epics", map[string]any{"name": "Release", "status": "DONE"})
	require.Equal(t, http.StatusCreated, w.Code)
	epic := decode[TaskPayload](t, w)
	require.Equal(t, "NEW", string(epic.Status))
	require.NotNil(t, epic.SubtaskIDs)
	require.Empty(t, *epic.SubtaskIDs)

	w = do(r, http.MethodPost, "/subtasks", map[string]any{
		"name":      "Build",
		"epicId":    epic.ID,
		"status":    "DONE",
		"startTime": "02.03.2025 09:00:00",
		"duration":  "30",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	sub := decode[TaskPayload](t, w)
	require.NotNil(t, sub.EpicID)
	require.Equal(t, epic.ID, *sub.EpicID)

	do(r, http.MethodPost, "/subtasks", map[string]any{"name": "Ship", "epicId": epic.ID})

	w = do(r, http.MethodGet, "/epics/1", nil)
	got := decode[TaskPayload](t, w)
	require.Equal(t, "IN_PROGRESS", string(got.Status))
	require.Equal(t, []int{2, 3}, *got.SubtaskIDs)
	require.Equal(t, "02.03.2025 09:00:00", got.StartTime.Format(TimeLayout))
	require.Equal(t, "02.03.2025 09:30:00", got.EndTime.Format(TimeLayout))

	w = do(r, http.MethodGet, "/epics/1/subtasks", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 2, decode[listResponse](t, w).Count)

	w = do(r, http.MethodPut, "/subtasks/3", map[string]any{"name": "Ship", "epicId": epic.ID, "status": "DONE"})
	require.Equal(t, http.StatusOK, w.Code)
	w = do(r, http.MethodGet, "/epics/1", nil)
	require.Equal(t, "DONE", string(decode[TaskPayload](t, w).Status))

	w = do(r, http.MethodDelete, "/epics/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/subtasks/2", nil).Code)

	w = do(r, http.MethodGet, "/history", nil)
	require.Equal(t, 0, decode[listResponse](t, w).Count)
}

func TestUpdateSubtask_CannotMoveEpic(t *testing.T) {
	r := newTestRouter(t, nil)
	do(r, http.MethodPost, "/epics", map[string]any{"name": "e1"})
	do(r, http.MethodPost, "/epics", map[string]any{"name": "e2"})
	do(r, http.MethodPost, "/subtasks", map[string]any{"name": "s", "epicId": 1})

	w := do(r, http.MethodPut, "/subtasks/3", map[string]any{"name": "s", "epicId": 2})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPut, "/subtasks/3", map[string]any{"name": "s", "epicId": 3})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetPrioritized(t *testing.T) {
	r := newTestRouter(t, nil)
	do(r, http.MethodPost, "/tasks", map[string]any{"name": "late", "startTime": "05.03.2025 10:00:00", "duration": "10"})
	do(r, http.MethodPost, "/tasks", map[string]any{"name": "unscheduled"})
	do(r, http.MethodPost, "/epics", map[string]any{"name": "epic"})
	do(r, http.MethodPost, "/subtasks", map[string]any{"name": "early", "epicId": 3, "startTime": "01.03.2025 10:00:00", "duration": "10"})

	w := do(r, http.MethodGet, "/prioritized", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[listResponse](t, w)
	require.Equal(t, 2, resp.Count)
	require.Equal(t, "early", resp.Prioritized[0].Name)
	require.Equal(t, "SUBTASK", string(resp.Prioritized[0].Type))
	require.Equal(t, "late", resp.Prioritized[1].Name)
}

func TestDeleteAll(t *testing.T) {
	r := newTestRouter(t, nil)
	do(r, http.MethodPost, "/tasks", map[string]any{"name": "a"})
	do(r, http.MethodPost, "/tasks", map[string]any{"name": "b"})
	do(r, http.MethodGet, "/tasks/1", nil)

	require.Equal(t, http.StatusOK, do(r, http.MethodDelete, "/tasks", nil).Code)
	require.Equal(t, 0, decode[listResponse](t, do(r, http.MethodGet, "/tasks", nil)).Count)
	require.Equal(t, 0, decode[listResponse](t, do(r, http.MethodGet, "/history", nil)).Count)

	// ids are not reused after a clear
	w := do(r, http.MethodPost, "/tasks", map[string]any{"name": "c"})
	require.Equal(t, 3, decode[TaskPayload](t, w).ID)
}

type recordingClient struct {
	messages [][]byte
}

func (c *recordingClient) Send(message []byte) bool {
	c.messages = append(c.messages, message)
	return true
}

func (c *recordingClient) Close() {}

func TestMutationsPublishEvents(t *testing.T) {
	hub := realtime.NewHub()
	tasks := &recordingClient{}
	all := &recordingClient{}
	hub.Register(TopicTasks, tasks)
	hub.Register(realtime.TopicAll, all)
	r := newTestRouter(t, hub)

	do(r, http.MethodPost, "/tasks", map[string]any{"name": "a"})
	do(r, http.MethodPut, "/tasks/1", map[string]any{"name": "b"})
	do(r, http.MethodDelete, "/tasks/1", nil)
	do(r, http.MethodPost, "/epics", map[string]any{"name": "e"})
	// rejected operations publish nothing
	do(r, http.MethodGet, "/tasks/1", nil)
	do(r, http.MethodDelete, "/tasks/1", nil)

	require.Len(t, tasks.messages, 3)
	require.Len(t, all.messages, 4)

	var evt realtime.Event
	require.NoError(t, json.Unmarshal(tasks.messages[0], &evt))
	require.Equal(t, "task_created", evt.Type)
	require.Equal(t, "TASK", evt.Kind)
	require.Equal(t, 1, evt.ID)
	require.NotEmpty(t, evt.EventID)

	require.NoError(t, json.Unmarshal(all.messages[3], &evt))
	require.Equal(t, "epic_created", evt.Type)
}
