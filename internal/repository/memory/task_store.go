// Package memory provides map-backed stores used when no DATABASE_URL is
// configured and in tests.
package memory

import (
	"context"
	"sync"

	"task_tracker/internal/domain"
	"task_tracker/internal/repository"
)

// TaskStore keeps tasks in insertion order. Every read and write copies the
// task so callers never share memory with the store.
type TaskStore struct {
	mu    sync.RWMutex
	order []string
	tasks map[string]*domain.Task
}

func NewTaskStore() *TaskStore {
	return &TaskStore{tasks: make(map[string]*domain.Task)}
}

func (s *TaskStore) Insert(_ context.Context, t *domain.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[t.ID]; ok {
		return repository.ErrDuplicate
	}
	s.tasks[t.ID] = t.Clone()
	s.order = append(s.order, t.ID)
	return nil
}

func (s *TaskStore) GetByID(_ context.Context, owner, id string) (*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tasks[id]
	if !ok || t.UserID != owner {
		return nil, repository.ErrNotFound
	}
	return t.Clone(), nil
}

func (s *TaskStore) ListByOwner(_ context.Context, owner string) ([]*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := make([]*domain.Task, 0)
	for _, id := range s.order {
		if t := s.tasks[id]; t.UserID == owner {
			res = append(res, t.Clone())
		}
	}
	return res, nil
}

func (s *TaskStore) Update(_ context.Context, t *domain.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.tasks[t.ID]
	if !ok || cur.UserID != t.UserID {
		return repository.ErrNotFound
	}
	next := t.Clone()
	next.CreatedAt = cur.CreatedAt
	s.tasks[t.ID] = next
	return nil
}

func (s *TaskStore) Delete(_ context.Context, owner, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok || t.UserID != owner {
		return repository.ErrNotFound
	}
	delete(s.tasks, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}
