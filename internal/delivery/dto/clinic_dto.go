package dto

import "time"

// Request DTOs

type OnboardDoctorRequest struct {
	DisplayName   string `json:"display_name" validate:"required,min=2"`
	Specialty     string `json:"specialty" validate:"omitempty"`
	LicenseNumber string `json:"license_number" validate:"omitempty"`
	Biography     string `json:"biography" validate:"omitempty"`
}

type OnboardRoomRequest struct {
	Name      string   `json:"name" validate:"required,min=1"`
	RoomType  string   `json:"room_type" validate:"required"`
	Equipment []string `json:"equipment" validate:"omitempty,dive,min=1"`
	Capacity  int      `json:"capacity" validate:"omitempty,min=1"`
	Notes     string   `json:"notes" validate:"omitempty"`
}

type OperatingWindowRequest struct {
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
}

type OnboardClinicRequest struct {
	Name                string                   `json:"name" validate:"required,min=2"`
	Address             string                   `json:"address" validate:"omitempty"`
	Phone               string                   `json:"phone" validate:"omitempty"`
	Timezone            string                   `json:"timezone" validate:"omitempty"`
	Doctors             []OnboardDoctorRequest   `json:"doctors" validate:"omitempty,dive"`
	Rooms               []OnboardRoomRequest     `json:"rooms" validate:"omitempty,dive"`
	UnassignedEquipment []string                 `json:"unassigned_equipment" validate:"omitempty,dive,min=1"`
	OperatingWindows    []OperatingWindowRequest `json:"operating_windows" validate:"omitempty,dive"`
}

// Response DTOs

type DoctorResponse struct {
	ID            int    `json:"id"`
	DisplayName   string `json:"display_name"`
	Specialty     string `json:"specialty,omitempty"`
	LicenseNumber string `json:"license_number,omitempty"`
	Biography     string `json:"biography,omitempty"`
	IsActive      bool   `json:"is_active"`
}

type RoomResponse struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	RoomType  string   `json:"room_type"`
	Equipment []string `json:"equipment,omitempty"`
	Capacity  int      `json:"capacity"`
	Notes     string   `json:"notes,omitempty"`
	IsActive  bool     `json:"is_active"`
}

type OperatingWindowResponse struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

type ClinicResponse struct {
	ID               int                       `json:"id"`
	Name             string                    `json:"name"`
	Address          string                    `json:"address,omitempty"`
	Phone            string                    `json:"phone,omitempty"`
	Timezone         string                    `json:"timezone"`
	Doctors          []DoctorResponse          `json:"doctors,omitempty"`
	Rooms            []RoomResponse            `json:"rooms,omitempty"`
	OperatingWindows []OperatingWindowResponse `json:"operating_windows,omitempty"`
	CreatedAt        time.Time                 `json:"created_at"`
	UpdatedAt        time.Time                 `json:"updated_at"`
}

type ClinicListResponse struct {
	Clinics []ClinicResponse `json:"clinics"`
	Total   int              `json:"total"`
}
