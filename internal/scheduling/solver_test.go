package scheduling

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

// Doctor and room both available 09:00-12:00, clinic open 08:00-18:00,
// 30 minute appointments on a 30 minute grid.
func TestFindFeasibleSlotsSimpleGeneration(t *testing.T) {
	doctor := NewDoctorAvailability(1, nil, []TimeWindow{mustWindow(t, at(9, 0), at(12, 0))}, nil)
	room := NewRoomAvailability(1, "Exam", nil, []TimeWindow{mustWindow(t, at(9, 0), at(12, 0))}, nil)
	req := AppointmentRequest{
		Start:              at(9, 0),
		End:                at(12, 0),
		DurationMinutes:    30,
		GranularityMinutes: 30,
	}
	clinic := ClinicSchedule{OperatingWindows: []TimeWindow{mustWindow(t, at(8, 0), at(18, 0))}}

	slots, err := FindFeasibleSlots([]DoctorAvailability{doctor}, []RoomAvailability{room}, req, clinic)
	if err != nil {
		t.Fatal(err)
	}

	wantStarts := []time.Time{at(9, 0), at(9, 30), at(10, 0), at(10, 30), at(11, 0), at(11, 30)}
	if len(slots) != len(wantStarts) {
		t.Fatalf("got %d slots, want %d: %+v", len(slots), len(wantStarts), slots)
	}
	for i, slot := range slots {
		if !slot.Start.Equal(wantStarts[i]) {
			t.Errorf("slot[%d].Start = %v, want %v", i, slot.Start, wantStarts[i])
		}
		if !slot.End.Equal(wantStarts[i].Add(30 * time.Minute)) {
			t.Errorf("slot[%d].End = %v, want %v", i, slot.End, wantStarts[i].Add(30*time.Minute))
		}
		if slot.DoctorID != 1 || slot.RoomID != 1 {
			t.Errorf("slot[%d] assigned (%d, %d), want (1, 1)", i, slot.DoctorID, slot.RoomID)
		}
	}
}

func TestFindFeasibleSlotsNoDoctorMatchesSpecialty(t *testing.T) {
	doctor := NewDoctorAvailability(1, []string{"Dentistry"}, nil, nil)
	room := NewRoomAvailability(1, "", nil, nil, nil)
	req := AppointmentRequest{
		Start:               at(9, 0),
		End:                 at(12, 0),
		DurationMinutes:     30,
		GranularityMinutes:  30,
		RequiredSpecialties: []string{"Surgery"},
	}

	slots, err := FindFeasibleSlots([]DoctorAvailability{doctor}, []RoomAvailability{room}, req, ClinicSchedule{})
	if err != nil {
		t.Fatal(err)
	}
	if len(slots) != 0 {
		t.Fatalf("expected no slots, got %+v", slots)
	}
}

// One of two rooms has the required equipment; the doctor has a one hour
// blackout inside an otherwise open 09:00-13:00 window.
func TestFindFeasibleSlotsEquipmentAndBlackout(t *testing.T) {
	doctor := NewDoctorAvailability(1, nil,
		[]TimeWindow{mustWindow(t, at(9, 0), at(13, 0))},
		[]TimeWindow{mustWindow(t, at(10, 0), at(11, 0))},
	)
	equipped := NewRoomAvailability(1, "", []string{"Anesthesia"}, nil, nil)
	plain := NewRoomAvailability(2, "", nil, nil, nil)
	req := AppointmentRequest{
		Start:              at(9, 0),
		End:                at(13, 0),
		DurationMinutes:    60,
		GranularityMinutes: 30,
		RequiredEquipment:  []string{"Anesthesia"},
	}

	slots, err := FindFeasibleSlots(
		[]DoctorAvailability{doctor},
		[]RoomAvailability{equipped, plain},
		req, ClinicSchedule{},
	)
	if err != nil {
		t.Fatal(err)
	}

	wantStarts := []time.Time{at(9, 0), at(11, 0), at(11, 30), at(12, 0)}
	if len(slots) != len(wantStarts) {
		t.Fatalf("got %d slots, want %d: %+v", len(slots), len(wantStarts), slots)
	}
	for i, slot := range slots {
		if !slot.Start.Equal(wantStarts[i]) {
			t.Errorf("slot[%d].Start = %v, want %v", i, slot.Start, wantStarts[i])
		}
		if slot.RoomID != 1 {
			t.Errorf("slot[%d] bound to room %d, want the equipped room", i, slot.RoomID)
		}
	}
}

func TestFindFeasibleSlotsCrossProductOrdering(t *testing.T) {
	doctors := []DoctorAvailability{
		NewDoctorAvailability(2, nil, nil, nil),
		NewDoctorAvailability(1, nil, nil, nil),
	}
	rooms := []RoomAvailability{
		NewRoomAvailability(2, "", nil, nil, nil),
		NewRoomAvailability(1, "", nil, nil, nil),
	}
	req := AppointmentRequest{
		Start:              at(9, 0),
		End:                at(10, 0),
		DurationMinutes:    30,
		GranularityMinutes: 30,
	}

	slots, err := FindFeasibleSlots(doctors, rooms, req, ClinicSchedule{})
	if err != nil {
		t.Fatal(err)
	}

	want := []Slot{
		{1, 1, at(9, 0), at(9, 30)},
		{1, 2, at(9, 0), at(9, 30)},
		{2, 1, at(9, 0), at(9, 30)},
		{2, 2, at(9, 0), at(9, 30)},
		{1, 1, at(9, 30), at(10, 0)},
		{1, 2, at(9, 30), at(10, 0)},
		{2, 1, at(9, 30), at(10, 0)},
		{2, 2, at(9, 30), at(10, 0)},
	}
	if !reflect.DeepEqual(slots, want) {
		t.Fatalf("slot order mismatch:\n got %+v\nwant %+v", slots, want)
	}
}

func TestFindFeasibleSlotsDeterministic(t *testing.T) {
	doctors := []DoctorAvailability{
		NewDoctorAvailability(1, nil, nil, []TimeWindow{mustWindow(t, at(10, 0), at(10, 30))}),
		NewDoctorAvailability(2, nil, nil, nil),
	}
	rooms := []RoomAvailability{
		NewRoomAvailability(1, "", nil, nil, nil),
	}
	req := AppointmentRequest{
		Start:              at(9, 0),
		End:                at(11, 0),
		DurationMinutes:    30,
		GranularityMinutes: 30,
	}

	first, err := FindFeasibleSlots(doctors, rooms, req, ClinicSchedule{})
	if err != nil {
		t.Fatal(err)
	}
	second, err := FindFeasibleSlots(doctors, rooms, req, ClinicSchedule{})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("two runs differ:\n%+v\n%+v", first, second)
	}
}

func TestFindFeasibleSlotsAlignment(t *testing.T) {
	doctor := NewDoctorAvailability(1, nil, nil, nil)
	room := NewRoomAvailability(1, "", nil, nil, nil)
	req := AppointmentRequest{
		Start:              at(9, 10),
		End:                at(11, 0),
		DurationMinutes:    25,
		GranularityMinutes: 20,
	}

	slots, err := FindFeasibleSlots([]DoctorAvailability{doctor}, []RoomAvailability{room}, req, ClinicSchedule{})
	if err != nil {
		t.Fatal(err)
	}
	if len(slots) == 0 {
		t.Fatal("expected slots")
	}
	for _, slot := range slots {
		if slot.End.Sub(slot.Start) != 25*time.Minute {
			t.Errorf("slot %v has duration %v, want 25m", slot, slot.End.Sub(slot.Start))
		}
		offset := slot.Start.Sub(req.Start)
		if offset < 0 || offset%(20*time.Minute) != 0 {
			t.Errorf("slot start %v not aligned to the request grid", slot.Start)
		}
	}
}

func TestFindFeasibleSlotsExtraPredicate(t *testing.T) {
	doctor := NewDoctorAvailability(1, nil, nil, nil)
	room := NewRoomAvailability(1, "", nil, nil, nil)
	req := AppointmentRequest{
		Start:              at(9, 0),
		End:                at(10, 0),
		DurationMinutes:    30,
		GranularityMinutes: 30,
	}

	// Veto everything before 09:30 to prove added rules narrow the output
	// without disturbing its shape.
	afterHalfPast := func(_ *DoctorAvailability, _ *RoomAvailability, start, _ time.Time) bool {
		return !start.Before(at(9, 30))
	}

	slots, err := FindFeasibleSlotsWith([]DoctorAvailability{doctor}, []RoomAvailability{room}, req, ClinicSchedule{}, afterHalfPast)
	if err != nil {
		t.Fatal(err)
	}
	if len(slots) != 1 || !slots[0].Start.Equal(at(9, 30)) {
		t.Fatalf("predicate not applied: %+v", slots)
	}
}

func TestFindFeasibleSlotsValidation(t *testing.T) {
	doctor := NewDoctorAvailability(1, nil, nil, nil)
	room := NewRoomAvailability(1, "", nil, nil, nil)

	cases := []struct {
		name string
		req  AppointmentRequest
		want error
	}{
		{"inverted horizon", AppointmentRequest{Start: at(12, 0), End: at(9, 0), DurationMinutes: 30, GranularityMinutes: 30}, ErrInvalidHorizon},
		{"zero duration", AppointmentRequest{Start: at(9, 0), End: at(12, 0), GranularityMinutes: 30}, ErrInvalidDuration},
		{"zero granularity", AppointmentRequest{Start: at(9, 0), End: at(12, 0), DurationMinutes: 30}, ErrInvalidGranularity},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := FindFeasibleSlots([]DoctorAvailability{doctor}, []RoomAvailability{room}, tc.req, ClinicSchedule{})
			if !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}
}
