// Package tasks holds the pure query and statistics logic over a snapshot
// of a user's tasks. Nothing here performs I/O or keeps state, so every
// function is safe for concurrent use as long as the snapshot isn't mutated
// during the call.
package tasks

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"task_tracker/internal/domain"
)

// SortField is the closed set of fields a task list can be ordered by.
type SortField int

const (
	SortCreatedAt SortField = iota
	SortUpdatedAt
	SortDueDate
	SortPriority
	SortTitle
	SortCategory
)

var sortFieldNames = [...]string{
	SortCreatedAt: "created_at",
	SortUpdatedAt: "updated_at",
	SortDueDate:   "due_date",
	SortPriority:  "priority",
	SortTitle:     "title",
	SortCategory:  "category",
}

func (f SortField) String() string {
	if f < 0 || int(f) >= len(sortFieldNames) {
		return fmt.Sprintf("SortField(%d)", int(f))
	}
	return sortFieldNames[f]
}

func (f SortField) valid() bool {
	return f >= 0 && int(f) < len(sortFieldNames)
}

// ParseSortField maps a wire name such as "due_date" to its SortField.
// An empty name selects created_at.
func ParseSortField(name string) (SortField, error) {
	if name == "" {
		return SortCreatedAt, nil
	}
	for f, n := range sortFieldNames {
		if n == name {
			return SortField(f), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown sort field %q", ErrInvalidQuery, name)
}

// Direction is the sort order. The zero value is Descending, matching the
// API default of newest first.
type Direction int

const (
	Descending Direction = iota
	Ascending
)

func (d Direction) String() string {
	switch d {
	case Descending:
		return "desc"
	case Ascending:
		return "asc"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// ParseDirection accepts "1"/"asc"/"ascending" and "-1"/"desc"/"descending".
// An empty value selects Descending.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "-1", "desc", "descending":
		return Descending, nil
	case "1", "asc", "ascending":
		return Ascending, nil
	}
	return 0, fmt.Errorf("%w: unknown sort order %q", ErrInvalidQuery, s)
}

// Params selects and orders tasks. Every filter is optional and they
// combine with AND semantics.
type Params struct {
	// Completed filters on the completion flag when non-nil.
	Completed *bool
	// Category keeps only tasks whose category equals it exactly.
	Category string
	// Search matches title and description case-insensitively as a
	// substring, or any tag exactly.
	Search string
	SortBy SortField
	Order  Direction
}

// Validate rejects sort fields and directions outside the known sets.
func (p Params) Validate() error {
	if !p.SortBy.valid() {
		return fmt.Errorf("%w: unknown sort field %s", ErrInvalidQuery, p.SortBy)
	}
	if p.Order != Ascending && p.Order != Descending {
		return fmt.Errorf("%w: unknown sort order %s", ErrInvalidQuery, p.Order)
	}
	return nil
}

// Query returns owner's tasks from all that pass every filter in p, ordered
// by p.SortBy. Ties keep input order; Descending reverses the whole ordering,
// tie-break included, except that tasks without a usable due date stay last
// when sorting by due_date.
func Query(all []*domain.Task, owner string, p Params) ([]*domain.Task, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	needle := strings.ToLower(p.Search)

	type entry struct {
		task   *domain.Task
		pos    int
		due    time.Time
		hasDue bool
	}

	var entries []entry
	for i, t := range all {
		if t.UserID != owner {
			continue
		}
		if p.Completed != nil && t.Completed != *p.Completed {
			continue
		}
		if p.Category != "" && (t.Category == nil || *t.Category != p.Category) {
			continue
		}
		if p.Search != "" && !matchesSearch(t, p.Search, needle) {
			continue
		}

		e := entry{task: t, pos: i}
		if p.SortBy == SortDueDate && t.DueDate != nil {
			if due, err := ParseDueDate(*t.DueDate, time.UTC); err == nil {
				e.due, e.hasDue = due, true
			}
		}
		entries = append(entries, e)
	}

	slices.SortFunc(entries, func(a, b entry) int {
		if p.SortBy == SortDueDate && a.hasDue != b.hasDue {
			if a.hasDue {
				return -1
			}
			return 1
		}

		var c int
		switch p.SortBy {
		case SortCreatedAt:
			c = a.task.CreatedAt.Compare(b.task.CreatedAt)
		case SortUpdatedAt:
			c = a.task.UpdatedAt.Compare(b.task.UpdatedAt)
		case SortDueDate:
			c = a.due.Compare(b.due)
		case SortPriority:
			// Ascending runs from least to most severe.
			c = cmp.Compare(Rank(b.task.Priority), Rank(a.task.Priority))
		case SortTitle:
			c = strings.Compare(a.task.Title, b.task.Title)
		case SortCategory:
			c = strings.Compare(deref(a.task.Category), deref(b.task.Category))
		}
		if c == 0 {
			c = cmp.Compare(a.pos, b.pos)
		}
		if p.Order == Descending {
			c = -c
		}
		return c
	})

	out := make([]*domain.Task, len(entries))
	for i, e := range entries {
		out[i] = e.task
	}
	return out, nil
}

func matchesSearch(t *domain.Task, term, lowered string) bool {
	if strings.Contains(strings.ToLower(t.Title), lowered) {
		return true
	}
	if t.Description != nil && strings.Contains(strings.ToLower(*t.Description), lowered) {
		return true
	}
	return slices.Contains(t.Tags, term)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
