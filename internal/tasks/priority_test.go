package tasks

import (
	"testing"

	"task_tracker/internal/domain"
)

func TestRank(t *testing.T) {
	cases := []struct {
		p    domain.Priority
		want int
	}{
		{domain.PriorityHigh, 1},
		{domain.PriorityMedium, 2},
		{domain.PriorityLow, 3},
		{"Urgent", 4},
		{"high", 4},
		{"", 4},
	}

	for _, tc := range cases {
		if got := Rank(tc.p); got != tc.want {
			t.Fatalf("Rank(%q) = %d; want %d", tc.p, got, tc.want)
		}
	}
}

func TestRankOrdersBySeverityNotLexically(t *testing.T) {
	if !(Rank(domain.PriorityHigh) < Rank(domain.PriorityMedium) && Rank(domain.PriorityMedium) < Rank(domain.PriorityLow)) {
		t.Fatalf("expected High < Medium < Low")
	}
	if Rank(domain.PriorityLow) >= Rank("bogus") {
		t.Fatalf("expected unrecognised priority to rank after Low")
	}
}
