package tasks

import (
	"time"

	"task_tracker/internal/domain"
)

// Uncategorized is the histogram label for tasks with no category.
const Uncategorized = "Uncategorized"

// Report is a derived snapshot of a user's tasks. It is rebuilt on every
// request and never stored.
type Report struct {
	Total          int            `json:"total"`
	Completed      int            `json:"completed"`
	Pending        int            `json:"pending"`
	HighPriority   int            `json:"high_priority"`
	MediumPriority int            `json:"medium_priority"`
	LowPriority    int            `json:"low_priority"`
	Overdue        int            `json:"overdue"`
	DueToday       int            `json:"due_today"`
	Categories     map[string]int `json:"categories"`

	// Malformed counts pending tasks whose due date could not be parsed and
	// were left out of the overdue and due-today buckets.
	Malformed int `json:"-"`
}

// Aggregate summarises owner's tasks as of asOf. Calendar days for the
// due-today bucket are taken in asOf's location.
func Aggregate(all []*domain.Task, owner string, asOf time.Time) Report {
	r := Report{Categories: make(map[string]int)}
	loc := asOf.Location()
	ay, am, ad := asOf.Date()

	for _, t := range all {
		if t.UserID != owner {
			continue
		}

		r.Total++
		r.Categories[categoryLabel(t.Category)]++

		if t.Completed {
			r.Completed++
			continue
		}
		r.Pending++

		switch t.Priority {
		case domain.PriorityHigh:
			r.HighPriority++
		case domain.PriorityMedium:
			r.MediumPriority++
		case domain.PriorityLow:
			r.LowPriority++
		}

		if t.DueDate == nil || *t.DueDate == "" {
			continue
		}
		due, err := ParseDueDate(*t.DueDate, loc)
		if err != nil {
			r.Malformed++
			continue
		}
		if due.Before(asOf) {
			r.Overdue++
			continue
		}
		if y, m, d := due.In(loc).Date(); y == ay && m == am && d == ad {
			r.DueToday++
		}
	}

	return r
}

func categoryLabel(c *string) string {
	if c == nil || *c == "" {
		return Uncategorized
	}
	return *c
}
