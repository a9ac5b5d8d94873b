package repository

import (
	"context"

	"taskboard/internal/domain"
)

// TaskRepository exposes persistence operations for Task entities. Every
// per-task operation is scoped by both task id and owner id in a single
// query, never load-then-compare.
type TaskRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, task *domain.Task) (int64, error)
	Get(ctx context.Context, id, ownerID int64) (*domain.Task, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Task, error)
	Update(ctx context.Context, id, ownerID int64, update domain.TaskUpdate) (*domain.Task, error)
	UpdateStatus(ctx context.Context, id, ownerID int64, status domain.TaskStatus) (*domain.Task, error)
	Delete(ctx context.Context, id, ownerID int64) error
}
