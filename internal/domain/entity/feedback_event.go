package entity

import (
	"time"

	"github.com/google/uuid"
)

// FeedbackOutcome records what the staff member did with a suggestion
type FeedbackOutcome string

const (
	FeedbackOutcomeAccepted  FeedbackOutcome = "accepted"
	FeedbackOutcomeRejected  FeedbackOutcome = "rejected"
	FeedbackOutcomeDismissed FeedbackOutcome = "dismissed"
)

// FeedbackEvent captures how a ranked suggestion was received. The slot
// fields echo the suggestion as it was shown so later analysis does not
// depend on the live schedule.
type FeedbackEvent struct {
	ID            int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	ClinicID      int             `gorm:"not null;index" json:"clinic_id"`
	UserID        *uuid.UUID      `gorm:"type:uuid;index" json:"user_id,omitempty"`
	AppointmentID *uuid.UUID      `gorm:"type:uuid;index" json:"appointment_id,omitempty"`
	Outcome       FeedbackOutcome `gorm:"type:varchar(20);not null;index" json:"outcome"`
	SlotID        int             `gorm:"not null" json:"slot_id"`
	Rank          int             `gorm:"not null" json:"rank"`
	Score         *float64        `json:"score,omitempty"`
	Rationale     string          `gorm:"type:text" json:"rationale,omitempty"`
	DoctorID      int             `gorm:"not null" json:"doctor_id"`
	RoomID        int             `gorm:"not null" json:"room_id"`
	StartTime     time.Time       `gorm:"not null" json:"start_time"`
	EndTime       time.Time       `gorm:"not null" json:"end_time"`
	CreatedAt     time.Time       `gorm:"autoCreateTime;index" json:"created_at"`

	// Relationships
	User        *User        `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Appointment *Appointment `gorm:"foreignKey:AppointmentID" json:"appointment,omitempty"`
}

func (FeedbackEvent) TableName() string {
	return "feedback_events"
}
