// Package client keeps a local copy of a server-owned task list in sync.
//
// Every mutation is sent to the server and followed by a full re-read of
// the list; the local collection is never patched in place.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	HeaderRequestedWith = "X-Requested-With"
	RequestedWithXHR    = "XMLHttpRequest"
	HeaderIdempotency   = "Idempotency-Key"

	// errorBodyLimit caps how much of a failed response ends up in a StatusError.
	errorBodyLimit = 512
)

// Config configures a Session. Only BaseURL is required.
type Config struct {
	BaseURL      string
	CreatePath   string
	DeletePath   string
	CompletePath string

	HTTPClient *http.Client
	Logger     *zap.Logger
	// OnError is called for every failed operation in addition to the
	// error being returned. Defaults to logging at error level.
	OnError ErrorHandler
}

// Session is one client's view of the task list: the last fetched
// collection plus the draft being composed. Operations run one at a time;
// a second call waits until the first, including its refetch, is done.
type Session struct {
	endpoints Endpoints
	http      *http.Client
	logger    *zap.Logger
	onError   ErrorHandler

	action sync.Mutex // serializes operations

	mu    sync.RWMutex // guards tasks and draft
	tasks []Task
	draft Task
}

func New(cfg Config) (*Session, error) {
	endpoints, err := NewEndpoints(cfg.BaseURL, cfg.CreatePath, cfg.DeletePath, cfg.CompletePath)
	if err != nil {
		return nil, err
	}

	s := &Session{
		endpoints: endpoints,
		http:      cfg.HTTPClient,
		logger:    cfg.Logger,
		onError:   cfg.OnError,
		tasks:     []Task{},
	}
	if s.http == nil {
		s.http = http.DefaultClient
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.onError == nil {
		logger := s.logger
		s.onError = func(op string, err error) {
			logger.Error("task list request failed", zap.String("op", op), zap.Error(err))
		}
	}
	return s, nil
}

func (s *Session) Endpoints() Endpoints {
	return s.endpoints
}

// Tasks returns a copy of the last fetched collection, in server order.
func (s *Session) Tasks() []Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s *Session) Draft() Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.draft
}

func (s *Session) SetDraftTitle(title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Title = title
}

// FetchTasks replaces the collection with the server's list. On failure
// the previous collection is kept.
func (s *Session) FetchTasks(ctx context.Context) error {
	s.action.Lock()
	defer s.action.Unlock()

	return s.report("list", s.fetch(ctx))
}

// CreateTask posts the draft, re-reads the list and clears the draft
// title. If the create request itself fails the draft is left intact;
// once the server has accepted it the draft is cleared even if the
// refetch fails.
func (s *Session) CreateTask(ctx context.Context) error {
	s.action.Lock()
	defer s.action.Unlock()

	draft := s.Draft()
	if err := s.post(ctx, "create", s.endpoints.Create, draft, uuid.NewString()); err != nil {
		return s.report("create", err)
	}

	err := s.fetch(ctx)

	s.mu.Lock()
	s.draft.Title = ""
	s.mu.Unlock()

	return s.report("list", err)
}

// DeleteTask asks the server to delete task and re-reads the list.
func (s *Session) DeleteTask(ctx context.Context, task Task) error {
	return s.mutate(ctx, "delete", s.endpoints.Delete, task)
}

// CompleteTask asks the server to mark task complete and re-reads the
// list. What "complete" means, including whether it toggles, is up to the
// server.
func (s *Session) CompleteTask(ctx context.Context, task Task) error {
	return s.mutate(ctx, "complete", s.endpoints.Complete, task)
}

func (s *Session) mutate(ctx context.Context, op, endpoint string, task Task) error {
	s.action.Lock()
	defer s.action.Unlock()

	if err := s.post(ctx, op, endpoint, task, ""); err != nil {
		return s.report(op, err)
	}
	return s.report("list", s.fetch(ctx))
}

func (s *Session) report(op string, err error) error {
	if err != nil {
		s.onError(op, err)
	}
	return err
}

func (s *Session) fetch(ctx context.Context) error {
	const op = "list"
	url := s.endpoints.List

	req, err := s.newRequest(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := s.do(op, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &RequestError{Op: op, URL: url, Kind: ErrNetwork, Err: err}
	}

	tasks, err := decodeTasks(body)
	if err != nil {
		return &RequestError{Op: op, URL: url, Kind: ErrDecode, Err: err}
	}

	s.mu.Lock()
	s.tasks = tasks
	s.mu.Unlock()

	s.logger.Debug("task list fetched", zap.Int("tasks", len(tasks)))
	return nil
}

// post sends body and discards the response; only the status matters.
func (s *Session) post(ctx context.Context, op, url string, body Task, idempKey string) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%s: encode body: %w", op, err)
	}

	req, err := s.newRequest(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	if idempKey != "" {
		req.Header.Set(HeaderIdempotency, idempKey)
	}

	resp, err := s.do(op, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	io.Copy(io.Discard, resp.Body)
	return nil
}

func (s *Session) newRequest(ctx context.Context, method, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(HeaderRequestedWith, RequestedWithXHR)
	return req, nil
}

// do sends req and turns transport failures and non-2xx replies into
// typed errors. On success the caller owns resp.Body.
func (s *Session) do(op string, req *http.Request) (*http.Response, error) {
	url := req.URL.String()
	start := time.Now()

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, &RequestError{Op: op, URL: url, Kind: ErrNetwork, Err: err}
	}

	s.logger.Debug("request done",
		zap.String("op", op),
		zap.String("method", req.Method),
		zap.String("url", url),
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		return nil, &StatusError{Op: op, URL: url, Code: resp.StatusCode, Body: strings.TrimSpace(string(excerpt))}
	}
	return resp, nil
}

var errExpectedArray = errors.New("expected a JSON array")

func decodeTasks(body []byte) ([]Task, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, errExpectedArray
	}

	tasks := []Task{}
	if err := json.Unmarshal(trimmed, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}
