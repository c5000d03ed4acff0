package repository

import (
	"time"

	"interpaws-backend/internal/domain/entity"

	"gorm.io/gorm"
)

type ConstraintRepository interface {
	Create(db *gorm.DB, constraint *entity.Constraint) error
	FindByClinicID(db *gorm.DB, clinicID int) ([]entity.Constraint, error)
	FindByClinicIDInRange(db *gorm.DB, clinicID int, start, end time.Time) ([]entity.Constraint, error)
	Delete(db *gorm.DB, id int64) (int64, error)
}
