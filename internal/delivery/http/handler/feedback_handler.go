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

type FeedbackHandler struct {
	feedbackUsecase usecase.FeedbackUsecase
	validator       *validator.CustomValidator
}

func NewFeedbackHandler(feedbackUsecase usecase.FeedbackUsecase, validator *validator.CustomValidator) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackUsecase: feedbackUsecase,
		validator:       validator,
	}
}

// CreateFeedback records how a user reacted to a ranked suggestion.
func (h *FeedbackHandler) CreateFeedback(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	event, err := h.feedbackUsecase.CreateFeedback(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrClinicNotFound:
			response.NotFound(w, "Clinic not found")
		case usecase.ErrInvalidTimestamp, usecase.ErrInvalidWindowOrder:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to record feedback")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Feedback recorded successfully", event)
}

func (h *FeedbackHandler) GetClinicFeedback(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	clinicID, err := strconv.Atoi(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid clinic ID", nil)
		return
	}

	events, err := h.feedbackUsecase.GetClinicFeedback(r.Context(), clinicID)
	if err != nil {
		switch err {
		case usecase.ErrClinicNotFound:
			response.NotFound(w, "Clinic not found")
		default:
			response.InternalServerError(w, "Failed to get feedback")
		}
		return
	}

	response.Success(w, http.StatusOK, "Feedback retrieved successfully", events)
}
