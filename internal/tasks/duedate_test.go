package tasks

import (
	"testing"
	"time"
)

func TestParseDueDate(t *testing.T) {
	loc := time.FixedZone("X", 2*3600)
	cases := []struct {
		in   string
		want time.Time
	}{
		{"2024-05-10T12:00:00Z", time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)},
		{"2024-05-10T12:00:00.123456+00:00", time.Date(2024, 5, 10, 12, 0, 0, 123456000, time.UTC)},
		{"2024-05-10T14:00:00+02:00", time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)},
		{"2024-05-10T14:00:00", time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)},
		{"2024-05-10T14:00", time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)},
		{"2024-05-10 14:00:00", time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)},
		{"2024-05-10", time.Date(2024, 5, 10, 21, 59, 59, 999999999, time.UTC)},
	}

	for _, tc := range cases {
		got, err := ParseDueDate(tc.in, loc)
		if err != nil {
			t.Fatalf("ParseDueDate(%q) error: %v", tc.in, err)
		}
		if !got.Equal(tc.want) {
			t.Fatalf("ParseDueDate(%q) = %v; want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseDueDateRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "   ", "tomorrow", "2024-13-01", "10/05/2024"} {
		if _, err := ParseDueDate(in, time.UTC); err == nil {
			t.Fatalf("ParseDueDate(%q) expected error", in)
		}
	}
}
