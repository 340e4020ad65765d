package client

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

type recordedRequest struct {
	Method string
	Path   string
	Body   string
	Header http.Header
}

// fakeServer answers list requests with whatever listBody currently holds
// and records every request it sees.
type fakeServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests []recordedRequest
	listBody string
	status   map[string]int    // path -> forced status
	onPost   func(path string) // runs before replying to a POST
}

func newFakeServer(t *testing.T, listBody string) *fakeServer {
	return newWrappedFakeServer(t, listBody, nil)
}

// newWrappedFakeServer puts wrap, if set, in front of the fake handler.
func newWrappedFakeServer(t *testing.T, listBody string, wrap func(http.Handler) http.Handler) *fakeServer {
	t.Helper()
	f := &fakeServer{listBody: listBody, status: map[string]int{}}
	var h http.Handler = http.HandlerFunc(f.serve)
	if wrap != nil {
		h = wrap(h)
	}
	f.Server = httptest.NewServer(h)
	t.Cleanup(f.Close)
	return f
}

func (f *fakeServer) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	f.mu.Lock()
	f.requests = append(f.requests, recordedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Body:   string(body),
		Header: r.Header.Clone(),
	})
	code, forced := f.status[r.URL.Path]
	hook := f.onPost
	f.mu.Unlock()

	if forced {
		w.WriteHeader(code)
		io.WriteString(w, `{"error":"forced"}`)
		return
	}
	if r.Method == http.MethodPost {
		if hook != nil {
			hook(r.URL.Path)
		}
		io.WriteString(w, `{"result":"Ok"}`)
		return
	}

	f.mu.Lock()
	list := f.listBody
	f.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	io.WriteString(w, list)
}

func (f *fakeServer) setList(body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listBody = body
}

func (f *fakeServer) setOnPost(hook func(path string)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onPost = hook
}

func (f *fakeServer) setStatus(path string, code int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status[path] = code
}

func (f *fakeServer) recorded() []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]recordedRequest, len(f.requests))
	copy(out, f.requests)
	return out
}

func (f *fakeServer) reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = nil
}

func calls(reqs []recordedRequest) []string {
	out := make([]string, len(reqs))
	for i, r := range reqs {
		out[i] = r.Method + " " + r.Path
	}
	return out
}
