package converter

import (
	"testing"
	"time"

	"interpaws-backend/internal/domain/entity"
)

func windowAt(hour int) (time.Time, time.Time) {
	start := time.Date(2024, 5, 1, hour, 0, 0, 0, time.UTC)
	return start, start.Add(8 * time.Hour)
}

func TestClinicToResponseSurfacesClinicWideOperatingWindows(t *testing.T) {
	doctorID := 1
	roomID := 10
	opStart, opEnd := windowAt(8)
	blockStart, blockEnd := windowAt(12)

	active := true
	clinic := &entity.Clinic{
		ID:       1,
		Name:     "Paws & Claws",
		Timezone: "UTC",
		Doctors: []entity.Doctor{
			{ID: doctorID, DisplayName: "Dr. Ames", IsActive: &active},
		},
		Rooms: []entity.Room{
			{ID: roomID, Name: "Exam A", RoomType: "exam", Capacity: 1, IsActive: &active},
		},
		Constraints: []entity.Constraint{
			{ClinicID: 1, Kind: entity.ConstraintKindOperating, StartTime: opStart, EndTime: opEnd},
			{ClinicID: 1, Kind: entity.ConstraintKindBlocked, StartTime: blockStart, EndTime: blockEnd},
			{ClinicID: 1, DoctorID: &doctorID, Kind: entity.ConstraintKindOperating, StartTime: opStart, EndTime: opEnd},
			{ClinicID: 1, RoomID: &roomID, Kind: entity.ConstraintKindOperating, StartTime: opStart, EndTime: opEnd},
		},
	}

	got := ClinicToResponse(clinic)
	if got == nil {
		t.Fatal("ClinicToResponse returned nil")
	}

	if len(got.OperatingWindows) != 1 {
		t.Fatalf("operating windows = %d, want only the clinic-wide operating row", len(got.OperatingWindows))
	}
	if !got.OperatingWindows[0].StartTime.Equal(opStart) || !got.OperatingWindows[0].EndTime.Equal(opEnd) {
		t.Errorf("operating window = [%v, %v], want [%v, %v]",
			got.OperatingWindows[0].StartTime, got.OperatingWindows[0].EndTime, opStart, opEnd)
	}

	if len(got.Doctors) != 1 || got.Doctors[0].DisplayName != "Dr. Ames" {
		t.Errorf("doctors = %v", got.Doctors)
	}
	if len(got.Rooms) != 1 || got.Rooms[0].Name != "Exam A" {
		t.Errorf("rooms = %v", got.Rooms)
	}
}

func TestClinicToResponseWithoutConstraints(t *testing.T) {
	got := ClinicToResponse(&entity.Clinic{ID: 2, Name: "Empty", Timezone: "UTC"})
	if got == nil {
		t.Fatal("ClinicToResponse returned nil")
	}
	if got.OperatingWindows != nil {
		t.Errorf("operating windows = %v, want none", got.OperatingWindows)
	}

	if resp := ClinicToResponse(nil); resp != nil {
		t.Errorf("nil clinic = %v, want nil", resp)
	}
}
