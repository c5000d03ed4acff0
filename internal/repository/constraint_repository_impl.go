package repository

import (
	"time"

	"interpaws-backend/internal/domain/entity"
	domainRepo "interpaws-backend/internal/domain/repository"

	"gorm.io/gorm"
)

type constraintRepository struct{}

func NewConstraintRepository() domainRepo.ConstraintRepository {
	return &constraintRepository{}
}

func (r *constraintRepository) Create(db *gorm.DB, constraint *entity.Constraint) error {
	return db.Create(constraint).Error
}

func (r *constraintRepository) FindByClinicID(db *gorm.DB, clinicID int) ([]entity.Constraint, error) {
	var constraints []entity.Constraint
	err := db.Where("clinic_id = ?", clinicID).
		Order("start_time ASC, id ASC").
		Find(&constraints).Error
	if err != nil {
		return nil, err
	}
	return constraints, nil
}

// FindByClinicIDInRange returns constraints whose window touches the given
// range. Operating windows outside the range still matter for containment
// checks, so those are returned regardless of overlap.
func (r *constraintRepository) FindByClinicIDInRange(db *gorm.DB, clinicID int, start, end time.Time) ([]entity.Constraint, error) {
	var constraints []entity.Constraint
	err := db.Where("clinic_id = ? AND (kind = ? OR (start_time < ? AND end_time > ?))",
		clinicID, entity.ConstraintKindOperating, end, start).
		Order("start_time ASC, id ASC").
		Find(&constraints).Error
	if err != nil {
		return nil, err
	}
	return constraints, nil
}

func (r *constraintRepository) Delete(db *gorm.DB, id int64) (int64, error) {
	affected := db.Where("id = ?", id).Delete(&entity.Constraint{})
	return affected.RowsAffected, affected.Error
}
