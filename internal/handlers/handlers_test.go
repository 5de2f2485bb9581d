package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/pakbaz/todolist/internal/migrations"
	"github.com/pakbaz/todolist/internal/repositories"
	"github.com/pakbaz/todolist/internal/services"
	"github.com/pakbaz/todolist/internal/types"
	"github.com/pakbaz/todolist/models"
)

// newTestRouter builds the full route table over an in-memory database.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	sqlDB, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	db := bun.NewDB(sqlDB, sqlitedialect.New())
	t.Cleanup(func() { db.Close() })

	require.NoError(t, migrations.Run(context.Background(), slog.Default(), "info", "sqlite", db))

	config := &models.Config{
		AppName:     "TodoList",
		Environment: "test",
	}

	repo := repositories.NewBunTodoRepository(db)
	service := services.NewTodoService(repo, nil, slog.Default())

	router := chi.NewRouter()
	for _, route := range GetRoutes(config, service, slog.Default()) {
		router.Method(route.Method, route.Path, route.Handler)
	}

	return router
}

func doRequest(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) types.MessageResponse {
	t.Helper()

	var resp types.MessageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func decodeList(t *testing.T, rec *httptest.ResponseRecorder) types.ListResponse {
	t.Helper()

	var resp types.ListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestTodoLifecycle(t *testing.T) {
	router := newTestRouter(t)

	// Create
	rec := doRequest(t, router, http.MethodPost, "/todos", `{"title":"Buy milk"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeMessage(t, rec)
	assert.True(t, resp.Success)
	assert.Contains(t, resp.Message, "Buy milk")

	// Duplicate create is a 200, not an error
	rec = doRequest(t, router, http.MethodPost, "/todos", `{"title":"Buy milk"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	resp = decodeMessage(t, rec)
	assert.True(t, resp.Success)
	assert.Contains(t, resp.Message, "already exists")

	// List
	rec = doRequest(t, router, http.MethodGet, "/todos", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	list := decodeList(t, rec)
	assert.True(t, list.Success)
	require.Equal(t, 1, list.Count)
	assert.Equal(t, "Buy milk", list.Todos[0].Title)
	assert.False(t, list.Todos[0].IsDone)

	// Mark done
	path := "/todos/" + url.PathEscape("Buy milk")
	rec = doRequest(t, router, http.MethodPut, path, `{"isDone":true}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	resp = decodeMessage(t, rec)
	assert.True(t, resp.Success)

	rec = doRequest(t, router, http.MethodGet, "/todos", "")
	list = decodeList(t, rec)
	require.Equal(t, 1, list.Count)
	assert.True(t, list.Todos[0].IsDone)

	// Delete
	rec = doRequest(t, router, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	resp = decodeMessage(t, rec)
	assert.True(t, resp.Success)

	rec = doRequest(t, router, http.MethodGet, "/todos", "")
	list = decodeList(t, rec)
	assert.Equal(t, 0, list.Count)
	assert.Empty(t, list.Todos)
}

func TestAddTodo_InvalidPayloads(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/todos", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/todos", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeMessage(t, rec)
	assert.False(t, resp.Success)
	assert.Equal(t, "title is required", resp.Message)

	rec = doRequest(t, router, http.MethodPost, "/todos", `{"title":"   "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateAndDelete_UnknownTitle(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPut, "/todos/missing", `{"isDone":true}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeMessage(t, rec)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Message, "no todo found")

	rec = doRequest(t, router, http.MethodDelete, "/todos/missing", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	resp = decodeMessage(t, rec)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Message, "no todo found")
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "healthy", payload["status"])
	assert.Equal(t, "test", payload["environment"])
	assert.NotEmpty(t, payload["timestamp"])
}
