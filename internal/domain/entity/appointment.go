package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// Appointment represents a booked visit binding a doctor and a room
type Appointment struct {
	ID          uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ClinicID    int               `gorm:"not null;index" json:"clinic_id"`
	DoctorID    int               `gorm:"not null;index" json:"doctor_id"`
	RoomID      int               `gorm:"not null;index" json:"room_id"`
	CreatedBy   uuid.UUID         `gorm:"type:uuid;not null;index" json:"created_by"`
	PatientName string            `gorm:"type:varchar(255);not null" json:"patient_name"`
	Reason      string            `gorm:"type:text" json:"reason,omitempty"`
	Status      AppointmentStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	StartTime   time.Time         `gorm:"not null;index" json:"start_time"`
	EndTime     time.Time         `gorm:"not null" json:"end_time"`
	CreatedAt   time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor  Doctor `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Room    Room   `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	Creator User   `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsPending checks if the appointment is still pending
func (a *Appointment) IsPending() bool {
	return a.Status == AppointmentStatusPending
}

// Confirm changes appointment status to confirmed
func (a *Appointment) Confirm() {
	a.Status = AppointmentStatusConfirmed
}

// Cancel changes appointment status to cancelled
func (a *Appointment) Cancel() {
	a.Status = AppointmentStatusCancelled
}
