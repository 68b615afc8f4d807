package serverapp

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weekboard/internal/config"
	"weekboard/internal/model"
	"weekboard/internal/task"
	"weekboard/internal/view"
)

func newTestServer(t *testing.T) (http.Handler, *task.FakeClock) {
	t.Helper()

	cfg := config.Default()
	cfg.Storage.Backend = config.BackendMemory

	clock := task.NewFakeClock(time.Date(2026, 3, 4, 10, 0, 0, 0, time.Local)) // Wednesday
	handler, err := NewHandler(Options{Config: cfg, Clock: clock})
	require.NoError(t, err)
	return handler, clock
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHealthz(t *testing.T) {
	h, _ := newTestServer(t)
	rec := doJSON(t, h, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody[map[string]any](t, rec)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "weekboard", body["service"])
}

func TestTaskLifecycleOverHTTP(t *testing.T) {
	h, _ := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/api/tasks", map[string]any{
		"title":       "water plants",
		"priority":    "high",
		"projectName": "garden",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeBody[model.Task](t, rec)
	require.NotEmpty(t, created.ID)

	// implicit project registration
	rec = doJSON(t, h, http.MethodGet, "/api/projects", nil)
	assert.Equal(t, []string{"garden"}, decodeBody[[]string](t, rec))

	// empty title is a validation failure
	rec = doJSON(t, h, http.MethodPost, "/api/tasks", map[string]any{"title": "  "})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	// schedule via drop, then verify the week view
	rec = doJSON(t, h, http.MethodPost, "/api/board/drop", map[string]any{
		"draggedTaskId": created.ID,
		"dropTargetId":  "day:2026-03-04:short",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/views/week?start=2026-03-02", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	week := decodeBody[[]view.DayBucket](t, rec)
	require.Len(t, week, 7)
	require.Len(t, week[2].Short, 1)
	assert.Equal(t, created.ID, week[2].Short[0].Task.ID)

	// toggle done, check history
	rec = doJSON(t, h, http.MethodPost, "/api/tasks/"+string(created.ID)+"/toggle", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/views/history", nil)
	history := decodeBody[[]model.Occurrence](t, rec)
	require.Len(t, history, 1)
	assert.True(t, history[0].Task.Completed)

	rec = doJSON(t, h, http.MethodDelete, "/api/tasks/"+string(created.ID), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRecurringFlowOverHTTP(t *testing.T) {
	h, _ := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/api/tasks", map[string]any{
		"title":      "standup",
		"priority":   "constant",
		"recurrence": map[string]any{"days": []int{1, 3}}, // Mon, Wed
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeBody[model.Task](t, rec)

	// dragging a recurring template is rejected
	rec = doJSON(t, h, http.MethodPost, "/api/board/drop", map[string]any{
		"draggedTaskId": created.ID,
		"dropTargetId":  "day:2026-03-06:short",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// complete Wednesday's occurrence
	rec = doJSON(t, h, http.MethodPost, "/api/board/toggle", map[string]any{
		"taskId":  created.ID,
		"date":    "2026-03-04",
		"virtual": true,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/views/week?start=2026-03-02", nil)
	week := decodeBody[[]view.DayBucket](t, rec)
	assert.Empty(t, week[2].Short, "completed Wednesday suppressed")
	require.Len(t, week[0].Short, 1, "Monday occurrence unaffected")

	rec = doJSON(t, h, http.MethodGet, "/api/views/history", nil)
	history := decodeBody[[]model.Occurrence](t, rec)
	require.Len(t, history, 1)
	assert.Equal(t, "2026-03-04", history[0].Date)
	assert.True(t, history[0].Virtual)
}

func TestOverdueFlowOverHTTP(t *testing.T) {
	h, _ := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/api/tasks", map[string]any{
		"title":   "pay bill",
		"dueDate": "2026-03-01",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/views/overdue", nil)
	overdue := decodeBody[[]model.Occurrence](t, rec)
	require.Len(t, overdue, 1)

	// clearing without confirmation is refused
	rec = doJSON(t, h, http.MethodPost, "/api/board/overdue/clear", map[string]any{})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/api/board/overdue/reschedule", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	moved := decodeBody[map[string]int](t, rec)
	assert.Equal(t, 1, moved["moved"])

	rec = doJSON(t, h, http.MethodGet, "/api/views/overdue", nil)
	assert.Empty(t, decodeBody[[]model.Occurrence](t, rec))
}
