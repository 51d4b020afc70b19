package tasks

import (
	"time"

	"task_tracker/internal/domain"
)

var base = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

type taskOpt func(*domain.Task)

func newTask(id, owner string, opts ...taskOpt) *domain.Task {
	t := &domain.Task{
		ID:        id,
		UserID:    owner,
		Title:     id,
		Priority:  domain.PriorityMedium,
		Tags:      []string{},
		CreatedAt: base,
		UpdatedAt: base,
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

func title(s string) taskOpt { return func(t *domain.Task) { t.Title = s } }
func desc(s string) taskOpt { return func(t *domain.Task) { t.Description = &s } }
func done() taskOpt { return func(t *domain.Task) { t.Completed = true } }
func prio(p domain.Priority) taskOpt { return func(t *domain.Task) { t.Priority = p } }
func due(s string) taskOpt { return func(t *domain.Task) { t.DueDate = &s } }
func category(s string) taskOpt { return func(t *domain.Task) { t.Category = &s } }
func tags(ts ...string) taskOpt { return func(t *domain.Task) { t.Tags = ts } }
func created(at time.Time) taskOpt { return func(t *domain.Task) { t.CreatedAt = at } }
func updated(at time.Time) taskOpt { return func(t *domain.Task) { t.UpdatedAt = at } }
func boolPtr(b bool) *bool { return &b }

func ids(ts []*domain.Task) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.ID
	}
	return out
}
