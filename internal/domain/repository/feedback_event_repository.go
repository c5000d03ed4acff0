package repository

import (
	"interpaws-backend/internal/domain/entity"

	"gorm.io/gorm"
)

type FeedbackEventRepository interface {
	Create(db *gorm.DB, event *entity.FeedbackEvent) error
	FindByClinicID(db *gorm.DB, clinicID int) ([]entity.FeedbackEvent, error)
}
