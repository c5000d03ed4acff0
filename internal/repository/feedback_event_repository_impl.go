package repository

import (
	"interpaws-backend/internal/domain/entity"
	domainRepo "interpaws-backend/internal/domain/repository"

	"gorm.io/gorm"
)

type feedbackEventRepository struct{}

func NewFeedbackEventRepository() domainRepo.FeedbackEventRepository {
	return &feedbackEventRepository{}
}

func (r *feedbackEventRepository) Create(db *gorm.DB, event *entity.FeedbackEvent) error {
	return db.Create(event).Error
}

func (r *feedbackEventRepository) FindByClinicID(db *gorm.DB, clinicID int) ([]entity.FeedbackEvent, error) {
	var events []entity.FeedbackEvent
	err := db.Where("clinic_id = ?", clinicID).
		Order("created_at DESC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}
