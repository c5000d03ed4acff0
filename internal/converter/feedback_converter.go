package converter

import (
	"interpaws-backend/internal/delivery/dto"
	"interpaws-backend/internal/domain/entity"
)

// FeedbackEventToResponse converts a FeedbackEvent entity to FeedbackEventResponse DTO
func FeedbackEventToResponse(event *entity.FeedbackEvent) *dto.FeedbackEventResponse {
	if event == nil {
		return nil
	}

	return &dto.FeedbackEventResponse{
		ID:            event.ID,
		ClinicID:      event.ClinicID,
		AppointmentID: event.AppointmentID,
		Outcome:       string(event.Outcome),
		SlotID:        event.SlotID,
		Rank:          event.Rank,
		Score:         event.Score,
		Rationale:     event.Rationale,
		DoctorID:      event.DoctorID,
		RoomID:        event.RoomID,
		StartTime:     event.StartTime,
		EndTime:       event.EndTime,
		CreatedAt:     event.CreatedAt,
	}
}

// FeedbackEventsToResponses converts a slice of FeedbackEvent entities to slice of FeedbackEventResponse DTOs
func FeedbackEventsToResponses(events []entity.FeedbackEvent) []dto.FeedbackEventResponse {
	responses := make([]dto.FeedbackEventResponse, len(events))
	for i, event := range events {
		resp := FeedbackEventToResponse(&event)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
