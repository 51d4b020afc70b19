package tasks

import "task_tracker/internal/domain"

// Rank orders priorities by severity: High < Medium < Low < anything else.
// Unrecognised values never error, they simply sort last.
func Rank(p domain.Priority) int {
	switch p {
	case domain.PriorityHigh:
		return 1
	case domain.PriorityMedium:
		return 2
	case domain.PriorityLow:
		return 3
	default:
		return 4
	}
}
