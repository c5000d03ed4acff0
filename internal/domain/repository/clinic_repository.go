package repository

import (
	"interpaws-backend/internal/domain/entity"

	"gorm.io/gorm"
)

type ClinicRepository interface {
	Create(db *gorm.DB, clinic *entity.Clinic) error
	FindByID(db *gorm.DB, id int) (*entity.Clinic, error)
	FindByIDWithResources(db *gorm.DB, id int) (*entity.Clinic, error)
	FindAll(db *gorm.DB) ([]entity.Clinic, error)
}
