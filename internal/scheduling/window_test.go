package scheduling

import (
	"errors"
	"testing"
	"time"
)

func at(hour, min int) time.Time {
	return time.Date(2024, 1, 1, hour, min, 0, 0, time.UTC)
}

func mustWindow(t *testing.T, start, end time.Time) TimeWindow {
	t.Helper()
	w, err := NewTimeWindow(start, end)
	if err != nil {
		t.Fatalf("NewTimeWindow(%v, %v): %v", start, end, err)
	}
	return w
}

func TestNewTimeWindowRejectsInvertedBounds(t *testing.T) {
	cases := []struct {
		name       string
		start, end time.Time
	}{
		{"end before start", at(12, 0), at(9, 0)},
		{"zero length", at(9, 0), at(9, 0)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewTimeWindow(tc.start, tc.end); !errors.Is(err, ErrInvalidWindow) {
				t.Fatalf("expected ErrInvalidWindow, got %v", err)
			}
		})
	}
}

func TestTimeWindowContains(t *testing.T) {
	w := mustWindow(t, at(9, 0), at(12, 0))

	cases := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{"fully inside", at(10, 0), at(11, 0), true},
		{"exact bounds", at(9, 0), at(12, 0), true},
		{"starts before", at(8, 30), at(10, 0), false},
		{"ends after", at(11, 0), at(12, 30), false},
		{"outside", at(13, 0), at(14, 0), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := w.Contains(tc.start, tc.end); got != tc.want {
				t.Fatalf("Contains(%v, %v) = %v, want %v", tc.start, tc.end, got, tc.want)
			}
		})
	}
}

func TestTimeWindowOverlaps(t *testing.T) {
	w := mustWindow(t, at(9, 0), at(12, 0))

	cases := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{"inside", at(10, 0), at(11, 0), true},
		{"straddles start", at(8, 0), at(9, 30), true},
		{"straddles end", at(11, 30), at(13, 0), true},
		{"touching start boundary", at(8, 0), at(9, 0), false},
		{"touching end boundary", at(12, 0), at(13, 0), false},
		{"disjoint", at(13, 0), at(14, 0), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := w.Overlaps(tc.start, tc.end); got != tc.want {
				t.Fatalf("Overlaps(%v, %v) = %v, want %v", tc.start, tc.end, got, tc.want)
			}
		})
	}
}
