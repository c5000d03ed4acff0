package repository

import (
	"errors"
	"time"

	"interpaws-backend/internal/domain/entity"
	domainRepo "interpaws-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Create(appointment).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Preload("Doctor").Preload("Room").Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByClinicID(db *gorm.DB, clinicID int) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Doctor").Preload("Room").
		Where("clinic_id = ?", clinicID).
		Order("start_time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

// FindActiveInRange returns non-cancelled appointments that touch the
// given window.
func (r *appointmentRepository) FindActiveInRange(db *gorm.DB, clinicID int, start, end time.Time) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Where("clinic_id = ? AND status != ? AND start_time < ? AND end_time > ?",
		clinicID, entity.AppointmentStatusCancelled, end, start).
		Order("start_time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

// FindOverlapping returns live appointments that collide with the proposed
// window for either the doctor or the room. Cancelled rows do not count.
func (r *appointmentRepository) FindOverlapping(db *gorm.DB, clinicID, doctorID, roomID int, start, end time.Time) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Where("clinic_id = ? AND (doctor_id = ? OR room_id = ?) AND status != ? AND start_time < ? AND end_time > ?",
		clinicID, doctorID, roomID, entity.AppointmentStatusCancelled, end, start).
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

// CancelAppointment atomically cancels ONLY if not already cancelled.
// Returns affected rows: 1 = success, 0 = already cancelled.
func (r *appointmentRepository) CancelAppointment(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Model(&entity.Appointment{}).
		Where("id = ? AND status != ?", id, entity.AppointmentStatusCancelled).
		Update("status", entity.AppointmentStatusCancelled)
	return result.RowsAffected, result.Error
}
