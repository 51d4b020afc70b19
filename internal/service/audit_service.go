package service

import (
	"context"

	"task_tracker/internal/domain"
	"task_tracker/internal/logger"
)

const (
	DefaultAuditLimit = 50
	MaxAuditLimit     = 200
)

// AuditService handles audit logging. Writes are best effort: failures are
// logged and never reach the caller.
type AuditService struct {
	repo AuditStore
}

func NewAuditService(repo AuditStore) *AuditService {
	return &AuditService{repo: repo}
}

// Log creates a new audit log entry
func (s *AuditService) Log(ctx context.Context, userID, action, category string, details map[string]interface{}) {
	s.LogWithRequest(ctx, userID, action, category, "", "", details)
}

// LogWithRequest creates an audit log with request info (IP, User-Agent)
func (s *AuditService) LogWithRequest(ctx context.Context, userID, action, category, ip, userAgent string, details map[string]interface{}) {
	if s == nil || s.repo == nil {
		return
	}
	if details == nil {
		details = make(map[string]interface{})
	}
	log := &domain.AuditLog{
		UserID:    userID,
		Action:    action,
		Category:  category,
		Details:   details,
		IP:        ip,
		UserAgent: userAgent,
	}

	if err := s.repo.Create(ctx, log); err != nil {
		logger.WithContext(ctx).Error("failed to create audit log", "error", err, "action", action, "user_id", userID)
	}
}

// LogTask records a task mutation.
func (s *AuditService) LogTask(ctx context.Context, userID, action string, task *domain.Task) {
	s.Log(ctx, userID, action, domain.AuditCategoryTask, map[string]interface{}{
		"task_id": task.ID,
		"title":   task.Title,
	})
}

// GetUserAuditLogs returns the newest audit logs for a user. limit is
// clamped to [1, MaxAuditLimit].
func (s *AuditService) GetUserAuditLogs(ctx context.Context, userID string, limit int) ([]*domain.AuditLog, error) {
	if limit <= 0 {
		limit = DefaultAuditLimit
	}
	if limit > MaxAuditLimit {
		limit = MaxAuditLimit
	}
	return s.repo.ListByUser(ctx, userID, limit)
}
