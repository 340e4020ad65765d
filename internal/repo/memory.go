package repo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/BuzzLyutic/tasklist-sync/internal/model"
)

// MemoryRepo keeps tasks in process memory. Used for local runs without
// PostgreSQL and in tests.
type MemoryRepo struct {
	mu     sync.RWMutex
	nextID int64
	tasks  map[int64]model.Task
	keys   map[string]int64
	now    func() time.Time
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		tasks: make(map[int64]model.Task),
		keys:  make(map[string]int64),
		now:   time.Now,
	}
}

func (r *MemoryRepo) Create(_ context.Context, t model.Task) (model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	t.ID = r.nextID
	t.Date = r.now().UTC()
	t.Completed = false
	r.tasks[t.ID] = t
	return t, nil
}

func (r *MemoryRepo) Get(_ context.Context, id int64) (model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tasks[id]
	if !ok {
		return model.Task{}, ErrorNotFound
	}
	return t, nil
}

func (r *MemoryRepo) List(_ context.Context) ([]model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tasks := make([]model.Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		tasks = append(tasks, t)
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks, nil
}

func (r *MemoryRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[id]; !ok {
		return ErrorNotFound
	}
	delete(r.tasks, id)
	// как ON DELETE CASCADE в схеме
	for k, rid := range r.keys {
		if rid == id {
			delete(r.keys, k)
		}
	}
	return nil
}

func (r *MemoryRepo) Complete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tasks[id]
	if !ok {
		return ErrorNotFound
	}
	t.Completed = true
	r.tasks[id] = t
	return nil
}

func (r *MemoryRepo) SaveIdempotencyKey(_ context.Context, key string, resourceID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[resourceID]; !ok {
		return ErrorNotFound
	}
	if _, exists := r.keys[key]; !exists {
		r.keys[key] = resourceID
	}
	return nil
}

func (r *MemoryRepo) GetIdempotencyKey(_ context.Context, key string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.keys[key]
	if !ok {
		return 0, ErrorNotFound
	}
	return id, nil
}

func (r *MemoryRepo) GetStats(_ context.Context) (model.Stats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var s model.Stats
	for _, t := range r.tasks {
		s.Total++
		if t.Completed {
			s.Completed++
		}
	}
	s.Open = s.Total - s.Completed
	return s, nil
}
