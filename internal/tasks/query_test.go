package tasks

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task_tracker/internal/domain"
)

func TestQuery_OwnerScoping(t *testing.T) {
	all := []*domain.Task{
		newTask("a1", "alice"),
		newTask("b1", "bob", category("work"), tags("urgent")),
		newTask("a2", "alice", done()),
		newTask("b2", "bob", title("urgent thing")),
	}

	params := []Params{
		{},
		{Completed: boolPtr(true)},
		{Completed: boolPtr(false)},
		{Category: "work"},
		{Search: "urgent"},
		{SortBy: SortPriority, Order: Ascending},
		{SortBy: SortDueDate},
	}

	for _, p := range params {
		got, err := Query(all, "alice", p)
		require.NoError(t, err)
		for _, task := range got {
			assert.Equal(t, "alice", task.UserID, "params %+v leaked %s", p, task.ID)
		}
	}

	got, err := Query(all, "carol", Params{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestQuery_CompletionFilter(t *testing.T) {
	all := []*domain.Task{
		newTask("t1", "u"),
		newTask("t2", "u", done()),
		newTask("t3", "u"),
	}

	got, err := Query(all, "u", Params{Completed: boolPtr(true), Order: Ascending})
	require.NoError(t, err)
	assert.Equal(t, []string{"t2"}, ids(got))

	got, err = Query(all, "u", Params{Completed: boolPtr(false), Order: Ascending})
	require.NoError(t, err)
	assert.Equal(t, []string{"t1", "t3"}, ids(got))
}

func TestQuery_CategoryIsExactAndCaseSensitive(t *testing.T) {
	all := []*domain.Task{
		newTask("t1", "u", category("Work")),
		newTask("t2", "u", category("work")),
		newTask("t3", "u", category("Workshop")),
		newTask("t4", "u"),
	}

	got, err := Query(all, "u", Params{Category: "Work"})
	require.NoError(t, err)
	assert.Equal(t, []string{"t1"}, ids(got))
}

func TestQuery_Search(t *testing.T) {
	all := []*domain.Task{
		newTask("desc", "u", desc("this is urgent work")),
		newTask("tag", "u", tags("home", "urgent")),
		newTask("near-tag", "u", tags("urgently")),
		newTask("title", "u", title("URGENT: call bank")),
		newTask("none", "u", title("groceries")),
	}

	got, err := Query(all, "u", Params{Search: "urgent", Order: Ascending})
	require.NoError(t, err)
	assert.Equal(t, []string{"desc", "tag", "title"}, ids(got))
}

func TestQuery_SearchTagMatchIsCaseSensitive(t *testing.T) {
	all := []*domain.Task{
		newTask("t1", "u", tags("Urgent")),
	}

	got, err := Query(all, "u", Params{Search: "urgent"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestQuery_FiltersAreConjunctive(t *testing.T) {
	all := []*domain.Task{
		newTask("t1", "u", category("work"), desc("urgent report")),
		newTask("t2", "u", category("work"), desc("urgent report"), done()),
		newTask("t3", "u", category("home"), desc("urgent chores")),
		newTask("t4", "u", category("work"), desc("weekly sync")),
		newTask("t5", "u", category("work"), tags("urgent")),
	}

	completed := boolPtr(false)
	combined, err := Query(all, "u", Params{Completed: completed, Category: "work", Search: "urgent", Order: Ascending})
	require.NoError(t, err)

	byCompletion, _ := Query(all, "u", Params{Completed: completed})
	byCategory, _ := Query(all, "u", Params{Category: "work"})
	bySearch, _ := Query(all, "u", Params{Search: "urgent"})

	want := map[string]bool{}
	for _, id := range ids(byCompletion) {
		want[id] = true
	}
	for _, set := range [][]*domain.Task{byCategory, bySearch} {
		in := map[string]bool{}
		for _, id := range ids(set) {
			in[id] = true
		}
		for id := range want {
			if !in[id] {
				delete(want, id)
			}
		}
	}

	assert.Len(t, combined, len(want))
	for _, task := range combined {
		assert.True(t, want[task.ID], "unexpected %s", task.ID)
	}
	assert.Equal(t, []string{"t1", "t5"}, ids(combined))
}

func TestQuery_SortByPriority(t *testing.T) {
	all := []*domain.Task{
		newTask("low", "u", prio(domain.PriorityLow)),
		newTask("odd", "u", prio("Someday")),
		newTask("high1", "u", prio(domain.PriorityHigh)),
		newTask("med", "u", prio(domain.PriorityMedium)),
		newTask("high2", "u", prio(domain.PriorityHigh)),
	}

	desc, err := Query(all, "u", Params{SortBy: SortPriority, Order: Descending})
	require.NoError(t, err)
	assert.Equal(t, []string{"high2", "high1", "med", "low", "odd"}, ids(desc))

	asc, err := Query(all, "u", Params{SortBy: SortPriority, Order: Ascending})
	require.NoError(t, err)
	assert.Equal(t, []string{"odd", "low", "med", "high1", "high2"}, ids(asc))
}

func TestQuery_SortByTitleAndCategory(t *testing.T) {
	all := []*domain.Task{
		newTask("t1", "u", title("beta"), category("b")),
		newTask("t2", "u", title("Alpha")),
		newTask("t3", "u", title("alpha"), category("a")),
	}

	got, err := Query(all, "u", Params{SortBy: SortTitle, Order: Ascending})
	require.NoError(t, err)
	assert.Equal(t, []string{"t2", "t3", "t1"}, ids(got))

	got, err = Query(all, "u", Params{SortBy: SortCategory, Order: Ascending})
	require.NoError(t, err)
	assert.Equal(t, []string{"t2", "t3", "t1"}, ids(got))
}

func TestQuery_SortByTimestamps(t *testing.T) {
	all := []*domain.Task{
		newTask("mid", "u", created(base), updated(base.Add(3*time.Hour))),
		newTask("old", "u", created(base.Add(-time.Hour)), updated(base.Add(time.Hour))),
		newTask("new", "u", created(base.Add(time.Hour)), updated(base.Add(2*time.Hour))),
	}

	got, err := Query(all, "u", Params{})
	require.NoError(t, err)
	assert.Equal(t, []string{"new", "mid", "old"}, ids(got))

	got, err = Query(all, "u", Params{SortBy: SortUpdatedAt, Order: Ascending})
	require.NoError(t, err)
	assert.Equal(t, []string{"old", "new", "mid"}, ids(got))
}

func TestQuery_SortByDueDateKeepsMissingLast(t *testing.T) {
	all := []*domain.Task{
		newTask("none", "u"),
		newTask("late", "u", due("2024-06-01T00:00:00Z")),
		newTask("bad", "u", due("next tuesday")),
		newTask("early", "u", due("2024-05-01T09:00:00+02:00")),
		newTask("mid", "u", due("2024-05-15")),
	}

	asc, err := Query(all, "u", Params{SortBy: SortDueDate, Order: Ascending})
	require.NoError(t, err)
	assert.Equal(t, []string{"early", "mid", "late", "none", "bad"}, ids(asc))

	desc, err := Query(all, "u", Params{SortBy: SortDueDate, Order: Descending})
	require.NoError(t, err)
	assert.Equal(t, []string{"late", "mid", "early", "bad", "none"}, ids(desc))
}

func TestQuery_TiesFollowInputOrderAndFlipWithDirection(t *testing.T) {
	all := []*domain.Task{
		newTask("t1", "u"),
		newTask("t2", "u"),
		newTask("t3", "u"),
	}

	asc, err := Query(all, "u", Params{Order: Ascending})
	require.NoError(t, err)
	assert.Equal(t, []string{"t1", "t2", "t3"}, ids(asc))

	desc, err := Query(all, "u", Params{Order: Descending})
	require.NoError(t, err)
	assert.Equal(t, []string{"t3", "t2", "t1"}, ids(desc))
}

func TestQuery_Deterministic(t *testing.T) {
	var all []*domain.Task
	for i, p := range []domain.Priority{"High", "Low", "Medium", "High", "x", "Low", "Medium"} {
		all = append(all, newTask(string(rune('a'+i)), "u", prio(p)))
	}

	first, err := Query(all, "u", Params{SortBy: SortPriority})
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		again, err := Query(all, "u", Params{SortBy: SortPriority})
		require.NoError(t, err)
		assert.Equal(t, ids(first), ids(again))
	}
}

func TestQuery_DoesNotMutateInput(t *testing.T) {
	all := []*domain.Task{
		newTask("t1", "u", prio(domain.PriorityLow)),
		newTask("t2", "u", prio(domain.PriorityHigh)),
	}

	_, err := Query(all, "u", Params{SortBy: SortPriority})
	require.NoError(t, err)
	assert.Equal(t, []string{"t1", "t2"}, ids(all))
}

func TestQuery_InvalidParams(t *testing.T) {
	_, err := Query(nil, "u", Params{SortBy: SortField(42)})
	assert.True(t, errors.Is(err, ErrInvalidQuery))

	_, err = Query(nil, "u", Params{Order: Direction(7)})
	assert.True(t, errors.Is(err, ErrInvalidQuery))
}

func TestParseSortField(t *testing.T) {
	for name, want := range map[string]SortField{
		"":           SortCreatedAt,
		"created_at": SortCreatedAt,
		"updated_at": SortUpdatedAt,
		"due_date":   SortDueDate,
		"priority":   SortPriority,
		"title":      SortTitle,
		"category":   SortCategory,
	} {
		got, err := ParseSortField(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseSortField("bogus_field")
	assert.ErrorIs(t, err, ErrInvalidQuery)

	_, err = ParseSortField("Priority")
	assert.ErrorIs(t, err, ErrInvalidQuery)
}

func TestParseDirection(t *testing.T) {
	for in, want := range map[string]Direction{
		"":     Descending,
		"-1":   Descending,
		"desc": Descending,
		"DESC": Descending,
		"1":    Ascending,
		"asc":  Ascending,
	} {
		got, err := ParseDirection(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseDirection("sideways")
	assert.ErrorIs(t, err, ErrInvalidQuery)
}
