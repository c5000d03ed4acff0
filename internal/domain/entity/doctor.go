package entity

import "time"

// Doctor represents a practicing veterinarian attached to a clinic
type Doctor struct {
	ID            int       `gorm:"primaryKey;autoIncrement" json:"id"`
	ClinicID      int       `gorm:"not null;index" json:"clinic_id"`
	DisplayName   string    `gorm:"type:varchar(255);not null" json:"display_name"`
	Specialty     string    `gorm:"type:varchar(100);index" json:"specialty,omitempty"`
	LicenseNumber string    `gorm:"type:varchar(50);uniqueIndex" json:"license_number,omitempty"`
	Biography     string    `gorm:"type:text" json:"biography,omitempty"`
	IsActive      *bool     `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Clinic Clinic `gorm:"foreignKey:ClinicID" json:"clinic,omitempty"`
}

func (Doctor) TableName() string {
	return "doctors"
}
