package service

import (
	"context"

	"task_tracker/internal/domain"
)

// TaskStore is the persistence boundary for tasks. Every lookup and write is
// scoped to the owner; implementations return repository.ErrNotFound for
// tasks that are missing or owned by someone else.
type TaskStore interface {
	Insert(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, owner, id string) (*domain.Task, error)
	ListByOwner(ctx context.Context, owner string) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, owner, id string) error
}

type UserStore interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

type AuditStore interface {
	Create(ctx context.Context, log *domain.AuditLog) error
	ListByUser(ctx context.Context, userID string, limit int) ([]*domain.AuditLog, error)
}

// EventPublisher delivers task events to a user's live connections.
type EventPublisher interface {
	Publish(userID string, ev domain.TaskEvent)
}
