package scheduling

import (
	"errors"
	"sort"
	"strings"
	"time"
)

var (
	ErrInvalidHorizon     = errors.New("request end must be after start")
	ErrInvalidDuration    = errors.New("duration_minutes must be positive")
	ErrInvalidGranularity = errors.New("granularity_minutes must be positive")
)

// DoctorAvailability describes when a single doctor can be booked. An empty
// AvailableWindows means the doctor is available everywhere by default;
// UnavailableWindows are always enforced.
type DoctorAvailability struct {
	ID                 int
	Specialties        []string
	AvailableWindows   []TimeWindow
	UnavailableWindows []TimeWindow
}

func NewDoctorAvailability(id int, specialties []string, available, unavailable []TimeWindow) DoctorAvailability {
	return DoctorAvailability{
		ID:                 id,
		Specialties:        normalizeSet(specialties),
		AvailableWindows:   append([]TimeWindow(nil), available...),
		UnavailableWindows: append([]TimeWindow(nil), unavailable...),
	}
}

// RoomAvailability describes when a single room can be used, with the same
// window semantics as DoctorAvailability.
type RoomAvailability struct {
	ID                 int
	RoomType           string
	Equipment          []string
	AvailableWindows   []TimeWindow
	UnavailableWindows []TimeWindow
}

func NewRoomAvailability(id int, roomType string, equipment []string, available, unavailable []TimeWindow) RoomAvailability {
	return RoomAvailability{
		ID:                 id,
		RoomType:           strings.TrimSpace(roomType),
		Equipment:          normalizeSet(equipment),
		AvailableWindows:   append([]TimeWindow(nil), available...),
		UnavailableWindows: append([]TimeWindow(nil), unavailable...),
	}
}

// ClinicSchedule holds the clinic-wide rules. A candidate slot must be fully
// contained in one operating window (when any exist) and must not overlap any
// blocked window.
type ClinicSchedule struct {
	OperatingWindows []TimeWindow
	BlockedWindows   []TimeWindow
}

// AppointmentRequest describes a single slot search. Empty allow-lists and
// requirement sets mean "unrestricted".
type AppointmentRequest struct {
	Start              time.Time
	End                time.Time
	DurationMinutes    int
	GranularityMinutes int
	AllowedDoctorIDs   []int
	AllowedRoomIDs     []int
	RequiredSpecialties []string
	RequiredRoomType    string
	RequiredEquipment   []string
}

// Normalize validates the request and returns a copy with categorical sets
// cleaned up (empties dropped, duplicates removed).
func (r AppointmentRequest) Normalize() (AppointmentRequest, error) {
	if !r.End.After(r.Start) {
		return AppointmentRequest{}, ErrInvalidHorizon
	}
	if r.DurationMinutes <= 0 {
		return AppointmentRequest{}, ErrInvalidDuration
	}
	if r.GranularityMinutes <= 0 {
		return AppointmentRequest{}, ErrInvalidGranularity
	}

	out := r
	out.AllowedDoctorIDs = append([]int(nil), r.AllowedDoctorIDs...)
	out.AllowedRoomIDs = append([]int(nil), r.AllowedRoomIDs...)
	out.RequiredSpecialties = normalizeSet(r.RequiredSpecialties)
	out.RequiredRoomType = strings.TrimSpace(r.RequiredRoomType)
	out.RequiredEquipment = normalizeSet(r.RequiredEquipment)
	return out, nil
}

// Duration returns the appointment length.
func (r AppointmentRequest) Duration() time.Duration {
	return time.Duration(r.DurationMinutes) * time.Minute
}

// Step returns the candidate generation step.
func (r AppointmentRequest) Step() time.Duration {
	return time.Duration(r.GranularityMinutes) * time.Minute
}

// Slot is one feasible (doctor, room, start) assignment, End = Start + duration.
type Slot struct {
	DoctorID int
	RoomID   int
	Start    time.Time
	End      time.Time
}

// normalizeSet trims entries, drops empty ones, removes duplicates, and sorts
// so that equal sets compare equal.
func normalizeSet(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// containsAll reports whether every element of want is present in have.
func containsAll(have, want []string) bool {
	if len(want) == 0 {
		return true
	}
	set := make(map[string]bool, len(have))
	for _, v := range have {
		set[v] = true
	}
	for _, v := range want {
		if !set[v] {
			return false
		}
	}
	return true
}
