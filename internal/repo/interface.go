package repo

import (
	"context"
	"errors"

	"github.com/BuzzLyutic/tasklist-sync/internal/model"
)

var (
	ErrorNotFound = errors.New("not found")
	ErrorConflict = errors.New("conflict")
)

// TaskRepository определяет интерфейс для работы с задачами
type TaskRepository interface {
	Create(ctx context.Context, t model.Task) (model.Task, error)
	Get(ctx context.Context, id int64) (model.Task, error)
	// List returns every task ordered by id.
	List(ctx context.Context) ([]model.Task, error)
	Delete(ctx context.Context, id int64) error
	Complete(ctx context.Context, id int64) error
	SaveIdempotencyKey(ctx context.Context, key string, resourceID int64) error
	GetIdempotencyKey(ctx context.Context, key string) (int64, error)
	GetStats(ctx context.Context) (model.Stats, error)
}
