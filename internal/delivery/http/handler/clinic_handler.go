package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"interpaws-backend/internal/delivery/dto"
	"interpaws-backend/internal/usecase"
	"interpaws-backend/pkg/response"
	"interpaws-backend/pkg/validator"

	"github.com/gorilla/mux"
)

type ClinicHandler struct {
	clinicUsecase usecase.ClinicUsecase
	validator     *validator.CustomValidator
}

func NewClinicHandler(clinicUsecase usecase.ClinicUsecase, validator *validator.CustomValidator) *ClinicHandler {
	return &ClinicHandler{
		clinicUsecase: clinicUsecase,
		validator:     validator,
	}
}

// Onboard registers a clinic together with its doctors, rooms and
// operating hours in a single call.
func (h *ClinicHandler) Onboard(w http.ResponseWriter, r *http.Request) {
	var req dto.OnboardClinicRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	clinic, err := h.clinicUsecase.Onboard(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrClinicNameTaken:
			response.Conflict(w, "Clinic name already exists")
		case usecase.ErrInvalidTimestamp, usecase.ErrInvalidWindowOrder:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to onboard clinic")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Clinic onboarded successfully", clinic)
}

func (h *ClinicHandler) GetClinic(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid clinic ID", nil)
		return
	}

	clinic, err := h.clinicUsecase.GetClinic(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrClinicNotFound:
			response.NotFound(w, "Clinic not found")
		default:
			response.InternalServerError(w, "Failed to get clinic")
		}
		return
	}

	response.Success(w, http.StatusOK, "Clinic retrieved successfully", clinic)
}

func (h *ClinicHandler) GetAllClinics(w http.ResponseWriter, r *http.Request) {
	clinics, err := h.clinicUsecase.GetAllClinics(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get clinics")
		return
	}

	response.Success(w, http.StatusOK, "Clinics retrieved successfully", clinics)
}
