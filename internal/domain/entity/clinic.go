package entity

import "time"

// Clinic represents a veterinary practice tenant
type Clinic struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Address   string    `gorm:"type:text" json:"address,omitempty"`
	Phone     string    `gorm:"type:varchar(50)" json:"phone,omitempty"`
	Timezone  string    `gorm:"type:varchar(64);not null;default:'UTC'" json:"timezone"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctors     []Doctor     `gorm:"foreignKey:ClinicID" json:"doctors,omitempty"`
	Rooms       []Room       `gorm:"foreignKey:ClinicID" json:"rooms,omitempty"`
	Constraints []Constraint `gorm:"foreignKey:ClinicID" json:"constraints,omitempty"`
}

func (Clinic) TableName() string {
	return "clinics"
}
