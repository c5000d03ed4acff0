package scheduling

import (
	"testing"
	"time"
)

func collectStarts(req AppointmentRequest, clinic ClinicSchedule) []time.Time {
	var starts []time.Time
	for start := range CandidateStarts(req, clinic) {
		starts = append(starts, start)
	}
	return starts
}

func TestCandidateStartsSteppedByGranularity(t *testing.T) {
	req := AppointmentRequest{
		Start:              at(9, 0),
		End:                at(11, 0),
		DurationMinutes:    30,
		GranularityMinutes: 30,
	}

	got := collectStarts(req, ClinicSchedule{})
	want := []time.Time{at(9, 0), at(9, 30), at(10, 0), at(10, 30)}
	if len(got) != len(want) {
		t.Fatalf("got %d starts, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("start[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestCandidateStartsRespectsClinicWindows(t *testing.T) {
	req := AppointmentRequest{
		Start:              at(8, 0),
		End:                at(12, 0),
		DurationMinutes:    60,
		GranularityMinutes: 60,
	}
	clinic := ClinicSchedule{
		OperatingWindows: []TimeWindow{mustWindow(t, at(9, 0), at(12, 0))},
		BlockedWindows:   []TimeWindow{mustWindow(t, at(10, 0), at(10, 30))},
	}

	// 08:00 falls outside operating hours and 10:00 overlaps the block.
	got := collectStarts(req, clinic)
	want := []time.Time{at(9, 0), at(11, 0)}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("start[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestCandidateStartsEmptyWhenHorizonTooShort(t *testing.T) {
	req := AppointmentRequest{
		Start:              at(9, 0),
		End:                at(9, 20),
		DurationMinutes:    30,
		GranularityMinutes: 15,
	}

	if got := collectStarts(req, ClinicSchedule{}); len(got) != 0 {
		t.Fatalf("expected no candidates, got %v", got)
	}
}

func TestCandidateStartsIsRestartable(t *testing.T) {
	req := AppointmentRequest{
		Start:              at(9, 0),
		End:                at(10, 0),
		DurationMinutes:    15,
		GranularityMinutes: 15,
	}

	seq := CandidateStarts(req, ClinicSchedule{})
	first := 0
	for range seq {
		first++
	}
	second := 0
	for range seq {
		second++
	}
	if first == 0 || first != second {
		t.Fatalf("sequence not restartable: first pass %d, second pass %d", first, second)
	}
}
