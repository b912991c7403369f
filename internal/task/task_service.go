package task

import (
	"context"
	"errors"
	"strings"
	"time"

	taskerrors "github.com/Netrahoni/SmartPayroll/internal/task/errors"
	"github.com/Netrahoni/SmartPayroll/internal/shared/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=task_service.go -destination=mock/task_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateTaskRequest) (TaskResponse, error)
	GetAll(ctx context.Context) ([]TaskResponse, error)
	Toggle(ctx context.Context, id string) (TaskResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("task.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("task.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateTaskRequest) (TaskResponse, error) {
	if strings.TrimSpace(req.Text) == "" {
		return TaskResponse{}, taskerrors.ErrTaskTextRequired
	}

	t := Task{
		ID:   uuid.New(),
		Text: req.Text,
	}
	if err := s.repo.Create(ctx, &t); err != nil {
		s.logger.Error("create task failed", zap.Error(err))
		return TaskResponse{}, apperror.Persistence(err)
	}

	return mapToResponse(t), nil
}

func (s *service) GetAll(ctx context.Context) ([]TaskResponse, error) {
	tasks, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all tasks failed", zap.Error(err))
		return nil, apperror.Persistence(err)
	}

	resp := make([]TaskResponse, len(tasks))
	for i, t := range tasks {
		resp[i] = mapToResponse(t)
	}
	return resp, nil
}

// Toggle flips the completion flag; the client sends no body.
func (s *service) Toggle(ctx context.Context, id string) (TaskResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return TaskResponse{}, taskerrors.ErrInvalidTaskID
	}

	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return TaskResponse{}, mapRepoError(err)
	}

	t.Completed = !t.Completed
	if err := s.repo.Update(ctx, t); err != nil {
		s.logger.Error("toggle task failed", zap.String("task_id", id), zap.Error(err))
		return TaskResponse{}, apperror.Persistence(err)
	}

	return mapToResponse(*t), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return taskerrors.ErrInvalidTaskID
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepoError(err)
	}
	return nil
}

func mapRepoError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return taskerrors.ErrTaskNotFound
	}
	return apperror.Persistence(err)
}

func mapToResponse(t Task) TaskResponse {
	resp := TaskResponse{
		ID:        t.ID.String(),
		Text:      t.Text,
		Completed: t.Completed,
	}
	if !t.CreatedAt.IsZero() {
		resp.CreatedAt = t.CreatedAt.UTC().Format(time.RFC3339)
	}
	return resp
}
