package repository

import (
	"interpaws-backend/internal/domain/entity"

	"gorm.io/gorm"
)

type DoctorRepository interface {
	Create(db *gorm.DB, doctor *entity.Doctor) error
	FindByID(db *gorm.DB, id int) (*entity.Doctor, error)
	FindActiveByClinicID(db *gorm.DB, clinicID int) ([]entity.Doctor, error)
	Update(db *gorm.DB, doctor *entity.Doctor) error
}
