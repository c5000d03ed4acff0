package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateFeedbackRequest struct {
	ClinicID      int        `json:"clinic_id" validate:"required,min=1"`
	AppointmentID *uuid.UUID `json:"appointment_id" validate:"omitempty"`
	Outcome       string     `json:"outcome" validate:"required,oneof=accepted rejected dismissed"`
	SlotID        int        `json:"slot_id" validate:"required,min=1"`
	Rank          int        `json:"rank" validate:"required,min=1"`
	Score         *float64   `json:"score" validate:"omitempty"`
	Rationale     string     `json:"rationale" validate:"omitempty"`
	DoctorID      int        `json:"doctor_id" validate:"required,min=1"`
	RoomID        int        `json:"room_id" validate:"required,min=1"`
	StartTime     string     `json:"start_time" validate:"required"`
	EndTime       string     `json:"end_time" validate:"required"`
}

// Response DTOs

type FeedbackEventResponse struct {
	ID            int64      `json:"id"`
	ClinicID      int        `json:"clinic_id"`
	AppointmentID *uuid.UUID `json:"appointment_id,omitempty"`
	Outcome       string     `json:"outcome"`
	SlotID        int        `json:"slot_id"`
	Rank          int        `json:"rank"`
	Score         *float64   `json:"score,omitempty"`
	Rationale     string     `json:"rationale,omitempty"`
	DoctorID      int        `json:"doctor_id"`
	RoomID        int        `json:"room_id"`
	StartTime     time.Time  `json:"start_time"`
	EndTime       time.Time  `json:"end_time"`
	CreatedAt     time.Time  `json:"created_at"`
}

type FeedbackListResponse struct {
	Events []FeedbackEventResponse `json:"events"`
	Total  int                     `json:"total"`
}
