package converter

import (
	"interpaws-backend/internal/delivery/dto"
	"interpaws-backend/internal/domain/entity"
)

// ClinicToResponse converts a Clinic entity to ClinicResponse DTO
// Includes doctors and rooms if they are loaded
func ClinicToResponse(clinic *entity.Clinic) *dto.ClinicResponse {
	if clinic == nil {
		return nil
	}

	response := &dto.ClinicResponse{
		ID:        clinic.ID,
		Name:      clinic.Name,
		Address:   clinic.Address,
		Phone:     clinic.Phone,
		Timezone:  clinic.Timezone,
		CreatedAt: clinic.CreatedAt,
		UpdatedAt: clinic.UpdatedAt,
	}

	if len(clinic.Doctors) > 0 {
		response.Doctors = DoctorsToResponses(clinic.Doctors)
	}
	if len(clinic.Rooms) > 0 {
		response.Rooms = RoomsToResponses(clinic.Rooms)
	}

	// Only clinic-wide operating hours belong in the snapshot; per-resource
	// constraints stay internal to the scheduler.
	for _, c := range clinic.Constraints {
		if !c.IsClinicWide() || c.Kind != entity.ConstraintKindOperating {
			continue
		}
		response.OperatingWindows = append(response.OperatingWindows, dto.OperatingWindowResponse{
			StartTime: c.StartTime,
			EndTime:   c.EndTime,
		})
	}

	return response
}

// ClinicsToResponses converts a slice of Clinic entities to slice of ClinicResponse DTOs
func ClinicsToResponses(clinics []entity.Clinic) []dto.ClinicResponse {
	responses := make([]dto.ClinicResponse, len(clinics))
	for i, clinic := range clinics {
		resp := ClinicToResponse(&clinic)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

// DoctorToResponse converts a Doctor entity to DoctorResponse DTO
func DoctorToResponse(doctor *entity.Doctor) *dto.DoctorResponse {
	if doctor == nil {
		return nil
	}

	active := doctor.IsActive != nil && *doctor.IsActive
	return &dto.DoctorResponse{
		ID:            doctor.ID,
		DisplayName:   doctor.DisplayName,
		Specialty:     doctor.Specialty,
		LicenseNumber: doctor.LicenseNumber,
		Biography:     doctor.Biography,
		IsActive:      active,
	}
}

// DoctorsToResponses converts a slice of Doctor entities to slice of DoctorResponse DTOs
func DoctorsToResponses(doctors []entity.Doctor) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(doctors))
	for i, doctor := range doctors {
		resp := DoctorToResponse(&doctor)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

// RoomToResponse converts a Room entity to RoomResponse DTO
func RoomToResponse(room *entity.Room) *dto.RoomResponse {
	if room == nil {
		return nil
	}

	active := room.IsActive != nil && *room.IsActive
	return &dto.RoomResponse{
		ID:        room.ID,
		Name:      room.Name,
		RoomType:  room.RoomType,
		Equipment: room.Equipment,
		Capacity:  room.Capacity,
		Notes:     room.Notes,
		IsActive:  active,
	}
}

// RoomsToResponses converts a slice of Room entities to slice of RoomResponse DTOs
func RoomsToResponses(rooms []entity.Room) []dto.RoomResponse {
	responses := make([]dto.RoomResponse, len(rooms))
	for i, room := range rooms {
		resp := RoomToResponse(&room)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
