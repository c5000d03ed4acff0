package usecase

import (
	"testing"
	"time"

	"interpaws-backend/internal/delivery/dto"
	"interpaws-backend/internal/domain/entity"
	"interpaws-backend/internal/scheduling"
)

func day(hour, min int) time.Time {
	return time.Date(2024, 5, 1, hour, min, 0, 0, time.UTC)
}

func intPtr(v int) *int {
	return &v
}

func TestBuildAvailabilityRoutesConstraintsByResource(t *testing.T) {
	doctors := []entity.Doctor{
		{ID: 1, ClinicID: 1, DisplayName: "Dr. Ames", Specialty: "dermatology"},
		{ID: 2, ClinicID: 1, DisplayName: "Dr. Boyd"},
	}
	rooms := []entity.Room{
		{ID: 10, ClinicID: 1, Name: "Exam A", RoomType: "exam"},
	}
	constraints := []entity.Constraint{
		{ClinicID: 1, DoctorID: intPtr(1), Kind: entity.ConstraintKindOperating, StartTime: day(9, 0), EndTime: day(17, 0)},
		{ClinicID: 1, DoctorID: intPtr(1), Kind: entity.ConstraintKindBlocked, StartTime: day(12, 0), EndTime: day(13, 0)},
		{ClinicID: 1, RoomID: intPtr(10), Kind: entity.ConstraintKindBlocked, StartTime: day(15, 0), EndTime: day(16, 0)},
		{ClinicID: 1, Kind: entity.ConstraintKindOperating, StartTime: day(8, 0), EndTime: day(18, 0)},
		{ClinicID: 1, Kind: entity.ConstraintKindBlocked, StartTime: day(13, 0), EndTime: day(13, 30)},
	}

	got := buildAvailability(doctors, rooms, constraints, nil)

	if len(got.doctors) != 2 {
		t.Fatalf("doctors = %d, want 2", len(got.doctors))
	}
	first := got.doctors[0]
	if len(first.AvailableWindows) != 1 || !first.AvailableWindows[0].Start.Equal(day(9, 0)) {
		t.Errorf("doctor 1 available windows = %v", first.AvailableWindows)
	}
	if len(first.UnavailableWindows) != 1 || !first.UnavailableWindows[0].Start.Equal(day(12, 0)) {
		t.Errorf("doctor 1 unavailable windows = %v", first.UnavailableWindows)
	}
	if len(first.Specialties) != 1 || first.Specialties[0] != "dermatology" {
		t.Errorf("doctor 1 specialties = %v", first.Specialties)
	}

	// A doctor with no constraints of their own is unrestricted.
	second := got.doctors[1]
	if len(second.AvailableWindows) != 0 || len(second.UnavailableWindows) != 0 {
		t.Errorf("doctor 2 windows = %v / %v, want none", second.AvailableWindows, second.UnavailableWindows)
	}

	if len(got.rooms) != 1 {
		t.Fatalf("rooms = %d, want 1", len(got.rooms))
	}
	if len(got.rooms[0].UnavailableWindows) != 1 || !got.rooms[0].UnavailableWindows[0].Start.Equal(day(15, 0)) {
		t.Errorf("room 10 unavailable windows = %v", got.rooms[0].UnavailableWindows)
	}

	if len(got.clinic.OperatingWindows) != 1 || !got.clinic.OperatingWindows[0].Start.Equal(day(8, 0)) {
		t.Errorf("clinic operating windows = %v", got.clinic.OperatingWindows)
	}
	if len(got.clinic.BlockedWindows) != 1 || !got.clinic.BlockedWindows[0].Start.Equal(day(13, 0)) {
		t.Errorf("clinic blocked windows = %v", got.clinic.BlockedWindows)
	}
}

func TestBuildAvailabilityBlocksBookedDoctorAndRoom(t *testing.T) {
	doctors := []entity.Doctor{{ID: 1, ClinicID: 1}}
	rooms := []entity.Room{{ID: 10, ClinicID: 1}}
	appointments := []entity.Appointment{
		{ClinicID: 1, DoctorID: 1, RoomID: 10, Status: entity.AppointmentStatusConfirmed, StartTime: day(10, 0), EndTime: day(10, 30)},
	}

	got := buildAvailability(doctors, rooms, nil, appointments)

	if len(got.doctors[0].UnavailableWindows) != 1 {
		t.Fatalf("doctor unavailable windows = %v, want the booked slot", got.doctors[0].UnavailableWindows)
	}
	if len(got.rooms[0].UnavailableWindows) != 1 {
		t.Fatalf("room unavailable windows = %v, want the booked slot", got.rooms[0].UnavailableWindows)
	}
	if !got.doctors[0].UnavailableWindows[0].Start.Equal(day(10, 0)) {
		t.Errorf("blocked window start = %v, want %v", got.doctors[0].UnavailableWindows[0].Start, day(10, 0))
	}
}

func TestBuildAvailabilitySkipsInvertedWindows(t *testing.T) {
	doctors := []entity.Doctor{{ID: 1, ClinicID: 1}}
	constraints := []entity.Constraint{
		{ClinicID: 1, DoctorID: intPtr(1), Kind: entity.ConstraintKindBlocked, StartTime: day(12, 0), EndTime: day(11, 0)},
	}

	got := buildAvailability(doctors, nil, constraints, nil)

	if len(got.doctors[0].UnavailableWindows) != 0 {
		t.Errorf("unavailable windows = %v, want inverted row dropped", got.doctors[0].UnavailableWindows)
	}
}

func TestPayloadOperatingWindows(t *testing.T) {
	windows, err := payloadOperatingWindows([]dto.OperatingWindowRequest{
		{StartTime: "2024-05-01T09:00:00Z", EndTime: "2024-05-01T12:00:00Z"},
		{StartTime: "2024-05-01T13:00:00", EndTime: "2024-05-01T17:00:00"},
	})
	if err != nil {
		t.Fatalf("payloadOperatingWindows error: %v", err)
	}
	if len(windows) != 2 {
		t.Fatalf("windows = %d, want 2", len(windows))
	}
	if !windows[0].Start.Equal(day(9, 0)) || !windows[0].End.Equal(day(12, 0)) {
		t.Errorf("first window = %v", windows[0])
	}
	if !windows[1].Start.Equal(day(13, 0)) || !windows[1].End.Equal(day(17, 0)) {
		t.Errorf("second window = %v", windows[1])
	}

	if _, err := payloadOperatingWindows([]dto.OperatingWindowRequest{
		{StartTime: "2024-05-01T12:00:00Z", EndTime: "2024-05-01T09:00:00Z"},
	}); err != ErrInvalidWindowOrder {
		t.Errorf("inverted window: err = %v, want ErrInvalidWindowOrder", err)
	}

	if _, err := payloadOperatingWindows([]dto.OperatingWindowRequest{
		{StartTime: "whenever", EndTime: "2024-05-01T09:00:00Z"},
	}); err != ErrInvalidTimestamp {
		t.Errorf("malformed timestamp: err = %v, want ErrInvalidTimestamp", err)
	}

	if windows, err := payloadOperatingWindows(nil); err != nil || windows != nil {
		t.Errorf("empty input = %v, %v, want nil, nil", windows, err)
	}
}

func TestCandidateSlotsAssignsSequentialIDs(t *testing.T) {
	doctors := []entity.Doctor{
		{ID: 1, Specialty: "dermatology"},
		{ID: 2, Specialty: "surgery"},
	}
	slots := []scheduling.Slot{
		{DoctorID: 2, RoomID: 10, Start: day(9, 0), End: day(9, 30)},
		{DoctorID: 1, RoomID: 11, Start: day(9, 30), End: day(10, 0)},
	}

	got := candidateSlots(slots, doctors)

	if len(got) != 2 {
		t.Fatalf("candidates = %d, want 2", len(got))
	}
	if got[0].SlotID != 1 || got[1].SlotID != 2 {
		t.Errorf("slot ids = %d, %d, want 1, 2", got[0].SlotID, got[1].SlotID)
	}
	if got[0].DoctorSpecialty != "surgery" {
		t.Errorf("slot 1 specialty = %q, want surgery", got[0].DoctorSpecialty)
	}
	if got[1].DoctorSpecialty != "dermatology" {
		t.Errorf("slot 2 specialty = %q, want dermatology", got[1].DoctorSpecialty)
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{name: "rfc3339 utc", input: "2024-05-01T09:00:00Z", want: day(9, 0)},
		{name: "rfc3339 offset", input: "2024-05-01T11:00:00+02:00", want: day(9, 0)},
		{name: "naive treated as utc", input: "2024-05-01T09:00:00", want: day(9, 0)},
		{name: "date only", input: "2024-05-01", wantErr: true},
		{name: "garbage", input: "next tuesday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseTimestamp(tt.input)
			if tt.wantErr {
				if err != ErrInvalidTimestamp {
					t.Fatalf("err = %v, want ErrInvalidTimestamp", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseTimestamp(%q) error: %v", tt.input, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("parseTimestamp(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseWindowRejectsInvertedOrder(t *testing.T) {
	if _, _, err := parseWindow("2024-05-01T10:00:00Z", "2024-05-01T09:00:00Z"); err != ErrInvalidWindowOrder {
		t.Fatalf("err = %v, want ErrInvalidWindowOrder", err)
	}
	if _, _, err := parseWindow("2024-05-01T09:00:00Z", "2024-05-01T09:00:00Z"); err != ErrInvalidWindowOrder {
		t.Fatalf("equal endpoints: err = %v, want ErrInvalidWindowOrder", err)
	}

	start, end, err := parseWindow("2024-05-01T09:00:00Z", "2024-05-01T10:00:00Z")
	if err != nil {
		t.Fatalf("parseWindow error: %v", err)
	}
	if !start.Equal(day(9, 0)) || !end.Equal(day(10, 0)) {
		t.Errorf("window = [%v, %v]", start, end)
	}
}
