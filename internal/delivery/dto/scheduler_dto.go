package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type FindSlotsRequest struct {
	ClinicID            int      `json:"clinic_id" validate:"required,min=1"`
	StartTime           string   `json:"start_time" validate:"required"`
	EndTime             string   `json:"end_time" validate:"required"`
	DurationMinutes     int      `json:"duration_minutes" validate:"required,min=1"`
	GranularityMinutes  int      `json:"granularity_minutes" validate:"omitempty,min=1"`
	AllowedDoctorIDs    []int    `json:"allowed_doctor_ids" validate:"omitempty,dive,min=1"`
	AllowedRoomIDs      []int    `json:"allowed_room_ids" validate:"omitempty,dive,min=1"`
	RequiredSpecialties []string `json:"required_specialties" validate:"omitempty,dive,min=1"`
	RequiredRoomType    string   `json:"required_room_type" validate:"omitempty"`
	RequiredEquipment   []string `json:"required_equipment" validate:"omitempty,dive,min=1"`

	// Caller-supplied operating hours, merged with the clinic's stored
	// clinic-wide operating constraints.
	OperatingHours []OperatingWindowRequest `json:"operating_hours" validate:"omitempty,dive"`

	ReasonForVisit string `json:"reason_for_visit" validate:"omitempty"`
	Urgency        string `json:"urgency" validate:"omitempty,oneof=routine urgent emergency"`
}

type SuggestionEcho struct {
	SlotID    int      `json:"slot_id" validate:"required,min=1"`
	Rank      int      `json:"rank" validate:"required,min=1"`
	Score     *float64 `json:"score" validate:"omitempty"`
	Rationale string   `json:"rationale" validate:"omitempty"`
}

type BookAppointmentRequest struct {
	ClinicID    int             `json:"clinic_id" validate:"required,min=1"`
	DoctorID    int             `json:"doctor_id" validate:"required,min=1"`
	RoomID      int             `json:"room_id" validate:"required,min=1"`
	StartTime   string          `json:"start_time" validate:"required"`
	EndTime     string          `json:"end_time" validate:"required"`
	PatientName string          `json:"patient_name" validate:"required,min=1"`
	Reason      string          `json:"reason" validate:"omitempty"`
	Suggestion  *SuggestionEcho `json:"suggestion" validate:"omitempty"`
}

// Response DTOs

type RankedSlotResponse struct {
	SlotID    int       `json:"slot_id"`
	Rank      int       `json:"rank"`
	Score     *float64  `json:"score,omitempty"`
	Rationale string    `json:"rationale,omitempty"`
	DoctorID  int       `json:"doctor_id"`
	Doctor    string    `json:"doctor"`
	Specialty string    `json:"specialty,omitempty"`
	RoomID    int       `json:"room_id"`
	Room      string    `json:"room"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

type FindSlotsResponse struct {
	ClinicID int                  `json:"clinic_id"`
	Slots    []RankedSlotResponse `json:"slots"`
	Total    int                  `json:"total"`
	Ranker   string               `json:"ranker"`
}

type AppointmentResponse struct {
	ID          uuid.UUID `json:"id"`
	ClinicID    int       `json:"clinic_id"`
	DoctorID    int       `json:"doctor_id"`
	RoomID      int       `json:"room_id"`
	PatientName string    `json:"patient_name"`
	Reason      string    `json:"reason,omitempty"`
	Status      string    `json:"status"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}
