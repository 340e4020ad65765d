package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter mounts the task list endpoints. Action paths are relative to
// the list URL, so the list lives at "/" and actions are its siblings.
func NewRouter(h *TaskHandler, requestLogging bool) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	if requestLogging {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"ok"}`)
	})

	r.Get("/", h.List)
	r.Post("/create", h.Create)
	r.Post("/delete", h.Delete)
	r.Post("/complete", h.Complete)
	r.Get("/stats", h.Stats)

	return r
}
