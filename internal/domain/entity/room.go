package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Room represents a bookable treatment or examination space
type Room struct {
	ID        int        `gorm:"primaryKey;autoIncrement" json:"id"`
	ClinicID  int        `gorm:"not null;index" json:"clinic_id"`
	Name      string     `gorm:"type:varchar(255);not null" json:"name"`
	RoomType  string     `gorm:"type:varchar(100);not null;index" json:"room_type"`
	Equipment StringList `gorm:"type:jsonb" json:"equipment,omitempty"`
	Capacity  int        `gorm:"not null;default:1" json:"capacity"`
	Notes     string     `gorm:"type:text" json:"notes,omitempty"`
	IsActive  *bool      `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Clinic Clinic `gorm:"foreignKey:ClinicID" json:"clinic,omitempty"`
}

func (Room) TableName() string {
	return "rooms"
}

// StringList type for GORM JSONB support
type StringList []string

// Value returns json value, implement driver.Valuer interface
func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return nil, nil
	}
	return json.Marshal(l)
}

// Scan scan value into the list, implements sql.Scanner interface
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal JSONB value:", value))
	}

	result := []string{}
	err := json.Unmarshal(bytes, &result)
	*l = StringList(result)
	return err
}
