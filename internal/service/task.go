package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/BuzzLyutic/tasklist-sync/internal/model"
	"github.com/BuzzLyutic/tasklist-sync/internal/repo"
)

// MaxTitleLength matches the tasks.title column.
const MaxTitleLength = 140

var (
	ErrValidation = errors.New("validation error")
)

type TaskService struct {
	repo repo.TaskRepository
}

func NewTaskService(repo repo.TaskRepository) *TaskService {
	return &TaskService{repo: repo}
}

func (s *TaskService) Create(ctx context.Context, t model.Task, idempKey string) (model.Task, error) {
	if err := s.validate(t); err != nil {
		return t, err
	}

	if idempKey != "" { // Повторный запрос с тем же ключом возвращает уже созданную задачу
		if existingID, err := s.repo.GetIdempotencyKey(ctx, idempKey); err == nil {
			return s.repo.Get(ctx, existingID)
		}
	}

	resource, err := s.repo.Create(ctx, t)
	if err != nil {
		return resource, err
	}

	if idempKey != "" {
		// Ошибку сохранения ключа не отдаем клиенту: задача уже создана
		_ = s.repo.SaveIdempotencyKey(ctx, idempKey, resource.ID)
	}

	return resource, nil
}

func (s *TaskService) List(ctx context.Context) ([]model.Task, error) {
	return s.repo.List(ctx)
}

func (s *TaskService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *TaskService) Complete(ctx context.Context, id int64) error {
	return s.repo.Complete(ctx, id)
}

func (s *TaskService) GetStats(ctx context.Context) (model.Stats, error) {
	return s.repo.GetStats(ctx)
}

func (s *TaskService) validate(t model.Task) error {
	if strings.TrimSpace(t.Title) == "" {
		return ErrValidation
	}
	if utf8.RuneCountInString(t.Title) > MaxTitleLength {
		return ErrValidation
	}
	return nil
}
