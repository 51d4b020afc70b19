package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"task_tracker/internal/domain"
	"task_tracker/internal/logger"
	"task_tracker/internal/repository"
	"task_tracker/internal/tasks"

	"github.com/google/uuid"
)

// CreateTaskInput holds the fields accepted when creating a task.
type CreateTaskInput struct {
	Title       string
	Description *string
	Priority    domain.Priority
	DueDate     *string
	Category    *string
	Tags        []string
}

// TaskPatch lists the fields to change; nil means leave as is. Empty strings
// for the optional text fields clear them.
type TaskPatch struct {
	Title       *string
	Description *string
	Priority    *domain.Priority
	Completed   *bool
	DueDate     *string
	Category    *string
	Tags        *[]string
}

type TaskService struct {
	store  TaskStore
	audit  *AuditService
	events EventPublisher
	loc    *time.Location
	now    func() time.Time
}

// NewTaskService wires the task service. audit and events may be nil;
// loc decides calendar days for statistics and defaults to UTC.
func NewTaskService(store TaskStore, audit *AuditService, events EventPublisher, loc *time.Location) *TaskService {
	if loc == nil {
		loc = time.UTC
	}
	return &TaskService{
		store:  store,
		audit:  audit,
		events: events,
		loc:    loc,
		now:    time.Now,
	}
}

func (s *TaskService) Create(ctx context.Context, owner string, in CreateTaskInput) (*domain.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidTask)
	}
	priority := in.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}
	if !priority.Valid() {
		return nil, fmt.Errorf("%w: priority must be High, Medium or Low", ErrInvalidTask)
	}
	if err := validateDueDate(in.DueDate); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	t := &domain.Task{
		ID:          uuid.NewString(),
		UserID:      owner,
		Title:       title,
		Description: emptyToNil(in.Description),
		Priority:    priority,
		DueDate:     emptyToNil(in.DueDate),
		Category:    emptyToNil(in.Category),
		Tags:        append([]string{}, in.Tags...),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.Insert(ctx, t); err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}

	TaskOperations.WithLabelValues("create").Inc()
	s.audit.LogTask(ctx, owner, domain.AuditActionTaskCreate, t)
	s.publish(owner, domain.EventTaskCreated, t)
	return t, nil
}

// List returns owner's tasks filtered and ordered by p. Invalid parameters
// are rejected before the store is touched.
func (s *TaskService) List(ctx context.Context, owner string, p tasks.Params) ([]*domain.Task, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	all, err := s.store.ListByOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	TaskOperations.WithLabelValues("list").Inc()
	return tasks.Query(all, owner, p)
}

// Stats builds the statistics report for owner as of now.
func (s *TaskService) Stats(ctx context.Context, owner string) (tasks.Report, error) {
	all, err := s.store.ListByOwner(ctx, owner)
	if err != nil {
		return tasks.Report{}, fmt.Errorf("list tasks: %w", err)
	}

	r := tasks.Aggregate(all, owner, s.now().In(s.loc))
	if r.Malformed > 0 {
		logger.WithContext(ctx).Warn("tasks with unparsable due dates skipped", "user_id", owner, "count", r.Malformed)
	}
	TaskOperations.WithLabelValues("stats").Inc()
	return r, nil
}

func (s *TaskService) Get(ctx context.Context, owner, id string) (*domain.Task, error) {
	t, err := s.store.GetByID(ctx, owner, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrTaskNotFound
	}
	return t, err
}

// Update applies the supplied fields of patch and refreshes updated_at.
func (s *TaskService) Update(ctx context.Context, owner, id string, patch TaskPatch) (*domain.Task, error) {
	t, err := s.Get(ctx, owner, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title must not be empty", ErrInvalidTask)
		}
		t.Title = title
	}
	if patch.Description != nil {
		t.Description = emptyToNil(patch.Description)
	}
	if patch.Priority != nil {
		if !patch.Priority.Valid() {
			return nil, fmt.Errorf("%w: priority must be High, Medium or Low", ErrInvalidTask)
		}
		t.Priority = *patch.Priority
	}
	if patch.Completed != nil {
		t.Completed = *patch.Completed
	}
	if patch.DueDate != nil {
		if err := validateDueDate(patch.DueDate); err != nil {
			return nil, err
		}
		t.DueDate = emptyToNil(patch.DueDate)
	}
	if patch.Category != nil {
		t.Category = emptyToNil(patch.Category)
	}
	if patch.Tags != nil {
		t.Tags = append([]string{}, (*patch.Tags)...)
	}

	if err := s.save(ctx, t); err != nil {
		return nil, err
	}

	TaskOperations.WithLabelValues("update").Inc()
	s.audit.LogTask(ctx, owner, domain.AuditActionTaskUpdate, t)
	s.publish(owner, domain.EventTaskUpdated, t)
	return t, nil
}

// SetCompleted flips the completion flag.
func (s *TaskService) SetCompleted(ctx context.Context, owner, id string, completed bool) (*domain.Task, error) {
	t, err := s.Get(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	t.Completed = completed
	if err := s.save(ctx, t); err != nil {
		return nil, err
	}

	action := domain.AuditActionTaskComplete
	if !completed {
		action = domain.AuditActionTaskReopen
	}
	TaskOperations.WithLabelValues("complete").Inc()
	s.audit.LogTask(ctx, owner, action, t)
	s.publish(owner, domain.EventTaskUpdated, t)
	return t, nil
}

func (s *TaskService) Delete(ctx context.Context, owner, id string) error {
	t, err := s.Get(ctx, owner, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, owner, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("delete task: %w", err)
	}

	TaskOperations.WithLabelValues("delete").Inc()
	s.audit.LogTask(ctx, owner, domain.AuditActionTaskDelete, t)
	s.publish(owner, domain.EventTaskDeleted, t)
	return nil
}

func (s *TaskService) save(ctx context.Context, t *domain.Task) error {
	t.UpdatedAt = s.now().UTC()
	if err := s.store.Update(ctx, t); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("update task: %w", err)
	}
	return nil
}

func (s *TaskService) publish(owner, kind string, t *domain.Task) {
	if s.events == nil {
		return
	}
	s.events.Publish(owner, domain.TaskEvent{Type: kind, Task: t.Clone()})
}

func validateDueDate(s *string) error {
	if s == nil || *s == "" {
		return nil
	}
	if _, err := tasks.ParseDueDate(*s, time.UTC); err != nil {
		return fmt.Errorf("%w: due_date must be an ISO-8601 date or timestamp", ErrInvalidTask)
	}
	return nil
}

func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	v := *s
	return &v
}
