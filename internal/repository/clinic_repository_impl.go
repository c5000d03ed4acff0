package repository

import (
	"errors"

	"interpaws-backend/internal/domain/entity"
	domainRepo "interpaws-backend/internal/domain/repository"

	"gorm.io/gorm"
)

type clinicRepository struct{}

func NewClinicRepository() domainRepo.ClinicRepository {
	return &clinicRepository{}
}

// Create persists the clinic together with any doctors, rooms and
// constraints attached to it, in one insert chain.
func (r *clinicRepository) Create(db *gorm.DB, clinic *entity.Clinic) error {
	return db.Create(clinic).Error
}

func (r *clinicRepository) FindByID(db *gorm.DB, id int) (*entity.Clinic, error) {
	var clinic entity.Clinic
	err := db.Where("id = ?", id).First(&clinic).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &clinic, nil
}

func (r *clinicRepository) FindByIDWithResources(db *gorm.DB, id int) (*entity.Clinic, error) {
	var clinic entity.Clinic
	err := db.
		Preload("Doctors", "is_active = ?", true).
		Preload("Rooms", "is_active = ?", true).
		Preload("Constraints").
		Where("id = ?", id).
		First(&clinic).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &clinic, nil
}

func (r *clinicRepository) FindAll(db *gorm.DB) ([]entity.Clinic, error) {
	var clinics []entity.Clinic
	err := db.Order("name ASC").Find(&clinics).Error
	if err != nil {
		return nil, err
	}
	return clinics, nil
}
