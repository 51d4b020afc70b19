package domain

const (
	EventTaskCreated = "task.created"
	EventTaskUpdated = "task.updated"
	EventTaskDeleted = "task.deleted"
)

// TaskEvent is pushed to the owner's live connections after a mutation.
type TaskEvent struct {
	Type string `json:"type"`
	Task *Task  `json:"task"`
}
