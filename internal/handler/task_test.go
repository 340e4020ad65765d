package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/BuzzLyutic/tasklist-sync/internal/model"
	"github.com/BuzzLyutic/tasklist-sync/internal/repo"
	"github.com/BuzzLyutic/tasklist-sync/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupRouter(t *testing.T) (http.Handler, *repo.MemoryRepo) {
	t.Helper()
	store := repo.NewMemoryRepo()
	h := NewTaskHandler(service.NewTaskService(store), zap.NewNop())
	return NewRouter(h, false), store
}

func do(t *testing.T, h http.Handler, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestTaskHandler_Create(t *testing.T) {
	router, _ := setupRouter(t)

	tests := []struct {
		name          string
		body          interface{}
		idempKey      string
		wantCode      int
		checkResponse func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name:     "successful creation",
			body:     map[string]string{"title": "buy milk"},
			wantCode: http.StatusCreated,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				var task model.Task
				require.NoError(t, json.NewDecoder(w.Body).Decode(&task))
				assert.NotZero(t, task.ID)
				assert.Equal(t, "buy milk", task.Title)
				assert.False(t, task.Completed)
			},
		},
		{
			name:     "client cannot preset completion",
			body:     map[string]interface{}{"title": "sneaky", "completed": true},
			wantCode: http.StatusCreated,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				var task model.Task
				require.NoError(t, json.NewDecoder(w.Body).Decode(&task))
				assert.False(t, task.Completed)
			},
		},
		{
			name:     "empty body",
			body:     nil,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "invalid json",
			body:     "{not json",
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "validation error",
			body:     map[string]string{"title": "   "},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "with idempotency key",
			body:     map[string]string{"title": "once"},
			idempKey: "test-key-123",
			wantCode: http.StatusCreated,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				w2 := do(t, router, http.MethodPost, "/create", map[string]string{"title": "once"},
					map[string]string{"Idempotency-Key": "test-key-123"})

				var task1, task2 model.Task
				json.NewDecoder(w.Body).Decode(&task1)
				json.NewDecoder(w2.Body).Decode(&task2)
				assert.Equal(t, task1.ID, task2.ID, "should return same task")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := map[string]string{}
			if tt.idempKey != "" {
				headers["Idempotency-Key"] = tt.idempKey
			}
			w := do(t, router, http.MethodPost, "/create", tt.body, headers)

			assert.Equal(t, tt.wantCode, w.Code)
			if tt.checkResponse != nil {
				tt.checkResponse(t, w)
			}
		})
	}
}

func TestTaskHandler_List(t *testing.T) {
	router, store := setupRouter(t)

	t.Run("empty list is an empty array", func(t *testing.T) {
		w := do(t, router, http.MethodGet, "/", nil, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})

	for _, title := range []string{"a", "b", "c"} {
		store.Create(context.Background(), model.Task{Title: title})
	}

	t.Run("tasks in id order", func(t *testing.T) {
		w := do(t, router, http.MethodGet, "/", nil, map[string]string{"X-Requested-With": "XMLHttpRequest"})
		assert.Equal(t, http.StatusOK, w.Code)

		var tasks []model.Task
		require.NoError(t, json.NewDecoder(w.Body).Decode(&tasks))
		require.Len(t, tasks, 3)
		assert.Equal(t, "a", tasks[0].Title)
		assert.Equal(t, "c", tasks[2].Title)
	})
}

func TestTaskHandler_DeleteAndComplete(t *testing.T) {
	router, store := setupRouter(t)
	created, _ := store.Create(context.Background(), model.Task{Title: "x"})

	t.Run("complete accepts the whole task", func(t *testing.T) {
		w := do(t, router, http.MethodPost, "/complete", created, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"result":"Ok"}`, w.Body.String())

		got, err := store.Get(context.Background(), created.ID)
		require.NoError(t, err)
		assert.True(t, got.Completed)
	})

	t.Run("complete again stays completed", func(t *testing.T) {
		w := do(t, router, http.MethodPost, "/complete", map[string]int64{"id": created.ID}, nil)
		assert.Equal(t, http.StatusOK, w.Code)

		got, _ := store.Get(context.Background(), created.ID)
		assert.True(t, got.Completed)
	})

	t.Run("missing id", func(t *testing.T) {
		w := do(t, router, http.MethodPost, "/delete", map[string]string{"title": "x"}, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalid json", func(t *testing.T) {
		w := do(t, router, http.MethodPost, "/complete", "nope", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("successful delete", func(t *testing.T) {
		w := do(t, router, http.MethodPost, "/delete", created, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unknown id", func(t *testing.T) {
		w := do(t, router, http.MethodPost, "/delete", map[string]int64{"id": created.ID}, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = do(t, router, http.MethodPost, "/complete", map[string]int64{"id": 99999}, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestTaskHandler_StatsAndHealth(t *testing.T) {
	router, store := setupRouter(t)
	ctx := context.Background()
	a, _ := store.Create(ctx, model.Task{Title: "a"})
	store.Create(ctx, model.Task{Title: "b"})
	store.Complete(ctx, a.ID)

	w := do(t, router, http.MethodGet, "/stats", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var stats model.Stats
	require.NoError(t, json.NewDecoder(w.Body).Decode(&stats))
	assert.Equal(t, model.Stats{Total: 2, Completed: 1, Open: 1}, stats)

	w = do(t, router, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

type brokenRepo struct {
	*repo.MemoryRepo
}

func (brokenRepo) List(context.Context) ([]model.Task, error) {
	return nil, errors.New("connection reset")
}

func TestTaskHandler_InternalError(t *testing.T) {
	h := NewTaskHandler(service.NewTaskService(brokenRepo{repo.NewMemoryRepo()}), zap.NewNop())
	router := NewRouter(h, false)

	w := do(t, router, http.MethodGet, "/", nil, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal error"}`, w.Body.String())
}
