package entity

import "time"

// ConstraintKind distinguishes opening windows from blocked ones
type ConstraintKind string

const (
	ConstraintKindOperating ConstraintKind = "operating"
	ConstraintKindBlocked   ConstraintKind = "blocked"
)

// Constraint represents a time window rule. A row with a doctor or room id
// applies to that resource only; a row with neither applies clinic wide.
type Constraint struct {
	ID        int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	ClinicID  int            `gorm:"not null;index" json:"clinic_id"`
	DoctorID  *int           `gorm:"index" json:"doctor_id,omitempty"`
	RoomID    *int           `gorm:"index" json:"room_id,omitempty"`
	Kind      ConstraintKind `gorm:"type:varchar(20);not null;index" json:"kind"`
	Reason    string         `gorm:"type:varchar(255)" json:"reason,omitempty"`
	StartTime time.Time      `gorm:"not null;index" json:"start_time"`
	EndTime   time.Time      `gorm:"not null" json:"end_time"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Doctor *Doctor `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Room   *Room   `gorm:"foreignKey:RoomID" json:"room,omitempty"`
}

func (Constraint) TableName() string {
	return "constraints"
}

// IsClinicWide checks if the constraint binds every resource in the clinic
func (c *Constraint) IsClinicWide() bool {
	return c.DoctorID == nil && c.RoomID == nil
}
