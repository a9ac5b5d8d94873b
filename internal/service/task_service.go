package service

import (
	"context"
	"errors"
	"strings"

	"taskboard/internal/domain"
	"taskboard/internal/repository"
)

var (
	// ErrTaskNotFound is returned when a task is absent or owned by someone
	// else; the two cases are indistinguishable by design.
	ErrTaskNotFound = errors.New("task not found")
	// ErrTitleRequired rejects tasks without a non-empty title.
	ErrTitleRequired = errors.New("title is required")
	// ErrInvalidStatus rejects status values outside the enumeration.
	ErrInvalidStatus = errors.New("invalid status value")
	// ErrNoUpdateFields rejects partial updates carrying no recognized field.
	ErrNoUpdateFields = errors.New("no valid fields provided for update")
	// ErrNegativeMinutes rejects negative logged time.
	ErrNegativeMinutes = errors.New("total minutes cannot be negative")
)

// TaskService serves task operations for an authenticated user. Every lookup
// is scoped by the requesting user's id.
type TaskService interface {
	List(ctx context.Context, user *domain.User) ([]domain.Task, error)
	Get(ctx context.Context, user *domain.User, id int64) (*domain.Task, error)
	Create(ctx context.Context, user *domain.User, title, description string, status domain.TaskStatus) (*domain.Task, error)
	Update(ctx context.Context, user *domain.User, id int64, update domain.TaskUpdate) (*domain.Task, error)
	SetStatus(ctx context.Context, user *domain.User, id int64, status domain.TaskStatus) (*domain.Task, error)
	Delete(ctx context.Context, user *domain.User, id int64) error
}

type taskService struct {
	tasks repository.TaskRepository
}

func NewTaskService(tasks repository.TaskRepository) TaskService {
	return &taskService{tasks: tasks}
}

func (s *taskService) List(ctx context.Context, user *domain.User) ([]domain.Task, error) {
	return s.tasks.ListByOwner(ctx, user.ID)
}

func (s *taskService) Get(ctx context.Context, user *domain.User, id int64) (*domain.Task, error) {
	task, err := s.tasks.Get(ctx, id, user.ID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return task, nil
}

func (s *taskService) Create(ctx context.Context, user *domain.User, title, description string, status domain.TaskStatus) (*domain.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if status == "" {
		status = domain.TaskStatusBacklog
	} else if !domain.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	// owner comes from the authenticated identity, never from the input
	task := &domain.Task{
		Title:       title,
		Description: description,
		Status:      status,
		UserID:      user.ID,
	}

	if _, err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) Update(ctx context.Context, user *domain.User, id int64, update domain.TaskUpdate) (*domain.Task, error) {
	if update.Empty() {
		return nil, ErrNoUpdateFields
	}
	if update.Title != nil && strings.TrimSpace(*update.Title) == "" {
		return nil, ErrTitleRequired
	}
	if update.Status != nil && !domain.ValidStatus(*update.Status) {
		return nil, ErrInvalidStatus
	}
	if update.TotalMinutes != nil && *update.TotalMinutes < 0 {
		return nil, ErrNegativeMinutes
	}

	task, err := s.tasks.Update(ctx, id, user.ID, update)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return task, nil
}

func (s *taskService) SetStatus(ctx context.Context, user *domain.User, id int64, status domain.TaskStatus) (*domain.Task, error) {
	// validated before any store round trip
	if !domain.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	task, err := s.tasks.UpdateStatus(ctx, id, user.ID, status)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return task, nil
}

func (s *taskService) Delete(ctx context.Context, user *domain.User, id int64) error {
	if err := s.tasks.Delete(ctx, id, user.ID); err != nil {
		return mapNotFound(err)
	}
	return nil
}

func mapNotFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrTaskNotFound
	}
	return err
}
