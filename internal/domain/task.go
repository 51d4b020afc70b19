package domain

import "time"

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Valid reports whether p is one of the three known priorities.
// Stored tasks may still carry other values; readers must tolerate them.
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

type Task struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"user_id"`
	Title       string    `db:"title" json:"title"`
	Description *string   `db:"description" json:"description"`
	Completed   bool      `db:"completed" json:"completed"`
	Priority    Priority  `db:"priority" json:"priority"`
	DueDate     *string   `db:"due_date" json:"due_date"`
	Category    *string   `db:"category" json:"category"`
	Tags        []string  `db:"tags" json:"tags"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Clone returns a deep copy so callers can hand out tasks without sharing
// pointer fields with the store.
func (t *Task) Clone() *Task {
	c := *t
	c.Description = cloneString(t.Description)
	c.DueDate = cloneString(t.DueDate)
	c.Category = cloneString(t.Category)
	c.Tags = append([]string{}, t.Tags...)
	return &c
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
