package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"interpaws-backend/internal/delivery/dto"
	"interpaws-backend/internal/scheduling"
	"interpaws-backend/internal/usecase"
	"interpaws-backend/pkg/response"
	"interpaws-backend/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type SchedulerHandler struct {
	schedulerUsecase usecase.SchedulerUsecase
	validator        *validator.CustomValidator
}

func NewSchedulerHandler(schedulerUsecase usecase.SchedulerUsecase, validator *validator.CustomValidator) *SchedulerHandler {
	return &SchedulerHandler{
		schedulerUsecase: schedulerUsecase,
		validator:        validator,
	}
}

// FindSlots runs the feasibility search over the requested window and
// returns the candidate slots ordered by the ranking pipeline.
func (h *SchedulerHandler) FindSlots(w http.ResponseWriter, r *http.Request) {
	var req dto.FindSlotsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.schedulerUsecase.FindSlots(r.Context(), &req)
	if err != nil {
		switch {
		case err == usecase.ErrClinicNotFound:
			response.NotFound(w, "Clinic not found")
		case err == usecase.ErrInvalidTimestamp, err == usecase.ErrInvalidWindowOrder:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		case errors.Is(err, scheduling.ErrInvalidHorizon), errors.Is(err, scheduling.ErrInvalidDuration), errors.Is(err, scheduling.ErrInvalidGranularity), errors.Is(err, scheduling.ErrInvalidWindow):
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to search for slots")
		}
		return
	}

	response.Success(w, http.StatusOK, "Slots retrieved successfully", result)
}

// BookAppointment books a doctor and room pair for a window, echoing an
// optional ranked suggestion back as accepted feedback.
func (h *SchedulerHandler) BookAppointment(w http.ResponseWriter, r *http.Request) {
	var req dto.BookAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.schedulerUsecase.BookAppointment(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrClinicNotFound:
			response.NotFound(w, "Clinic not found")
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found in clinic")
		case usecase.ErrRoomNotFound:
			response.NotFound(w, "Room not found in clinic")
		case usecase.ErrSlotConflict:
			response.Conflict(w, "Doctor or room is no longer free for that window")
		case usecase.ErrSlotBeingBooked:
			response.Conflict(w, "Slot is being booked by someone else, try again")
		case usecase.ErrInvalidTimestamp, usecase.ErrInvalidWindowOrder:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to book appointment")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Appointment booked successfully", appointment)
}

func (h *SchedulerHandler) GetAppointments(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	clinicID, err := strconv.Atoi(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid clinic ID", nil)
		return
	}

	appointments, err := h.schedulerUsecase.GetAppointments(r.Context(), clinicID)
	if err != nil {
		switch err {
		case usecase.ErrClinicNotFound:
			response.NotFound(w, "Clinic not found")
		default:
			response.InternalServerError(w, "Failed to get appointments")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

func (h *SchedulerHandler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	if err := h.schedulerUsecase.CancelAppointment(r.Context(), id); err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrAppointmentAlreadyCancelled:
			response.Conflict(w, "Appointment is already cancelled")
		default:
			response.InternalServerError(w, "Failed to cancel appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment cancelled successfully", nil)
}
