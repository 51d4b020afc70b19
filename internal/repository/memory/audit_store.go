package memory

import (
	"context"
	"sync"
	"time"

	"task_tracker/internal/domain"
)

type AuditStore struct {
	mu   sync.Mutex
	seq  int64
	logs []*domain.AuditLog
}

func NewAuditStore() *AuditStore {
	return &AuditStore{}
}

func (s *AuditStore) Create(_ context.Context, log *domain.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	cp := *log
	cp.ID = s.seq
	cp.CreatedAt = time.Now().UTC()
	s.logs = append(s.logs, &cp)
	return nil
}

// ListByUser returns at most limit entries for userID, newest first.
func (s *AuditStore) ListByUser(_ context.Context, userID string, limit int) ([]*domain.AuditLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := make([]*domain.AuditLog, 0)
	for i := len(s.logs) - 1; i >= 0 && len(res) < limit; i-- {
		if s.logs[i].UserID == userID {
			cp := *s.logs[i]
			res = append(res, &cp)
		}
	}
	return res, nil
}
