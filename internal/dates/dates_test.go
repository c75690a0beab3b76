package dates

import (
	"testing"
	"time"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in    string
		order Order
		want  string
	}{
		{"2024-03-15", DayFirst, "2024-03-15"},
		{"2024-03-15T10:22:00", DayFirst, "2024-03-15"},
		{"15/03/2024", DayFirst, "2024-03-15"},
		{"15.03.2024", DayFirst, "2024-03-15"},
		{"05-03-24", DayFirst, "2024-03-05"},
		{"3/15/24", MonthFirst, "2024-03-15"},
		{"03/05/2024", MonthFirst, "2024-03-05"},
		{"3/15/2024", DayFirst, "2024-03-15"}, // month 15 is impossible, swapped
		{"45366", MonthFirst, "2024-03-15"},
		{"15 marzo 2024", DayFirst, "2024-03-15"},
		{"31/02/2024", DayFirst, ""},
		{"", DayFirst, ""},
		{"not a date", DayFirst, ""},
		{"12345", DayFirst, ""},
	}
	for _, tc := range cases {
		if got := Normalize(tc.in, tc.order); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFind(t *testing.T) {
	got := Find("Data documento: 07/01/2025 ore 10:30", DayFirst)
	if got != "2025-01-07" {
		t.Fatalf("Find = %q", got)
	}
	if got := Find("nessuna data qui", DayFirst); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	b := time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC)
	if d := DaysBetween(a, b); d != 7 {
		t.Fatalf("DaysBetween = %d", d)
	}
	if d := DaysBetween(b, a); d != 7 {
		t.Fatalf("DaysBetween reversed = %d", d)
	}
}
