package repository

import (
	"interpaws-backend/internal/domain/entity"

	"gorm.io/gorm"
)

type RoomRepository interface {
	Create(db *gorm.DB, room *entity.Room) error
	FindByID(db *gorm.DB, id int) (*entity.Room, error)
	FindActiveByClinicID(db *gorm.DB, clinicID int) ([]entity.Room, error)
	Update(db *gorm.DB, room *entity.Room) error
}
