package converter

import (
	"interpaws-backend/internal/delivery/dto"
	"interpaws-backend/internal/domain/entity"
)

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	return &dto.AppointmentResponse{
		ID:          appointment.ID,
		ClinicID:    appointment.ClinicID,
		DoctorID:    appointment.DoctorID,
		RoomID:      appointment.RoomID,
		PatientName: appointment.PatientName,
		Reason:      appointment.Reason,
		Status:      string(appointment.Status),
		StartTime:   appointment.StartTime,
		EndTime:     appointment.EndTime,
		CreatedAt:   appointment.CreatedAt,
		UpdatedAt:   appointment.UpdatedAt,
	}
}

// AppointmentsToResponses converts a slice of Appointment entities to slice of AppointmentResponse DTOs
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i, appointment := range appointments {
		resp := AppointmentToResponse(&appointment)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
