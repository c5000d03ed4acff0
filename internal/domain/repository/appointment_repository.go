package repository

import (
	"time"

	"interpaws-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	FindByClinicID(db *gorm.DB, clinicID int) ([]entity.Appointment, error)
	FindActiveInRange(db *gorm.DB, clinicID int, start, end time.Time) ([]entity.Appointment, error)
	FindOverlapping(db *gorm.DB, clinicID, doctorID, roomID int, start, end time.Time) ([]entity.Appointment, error)
	CancelAppointment(db *gorm.DB, id uuid.UUID) (int64, error)
}
