package usecase

import (
	"context"
	"errors"

	"interpaws-backend/internal/converter"
	"interpaws-backend/internal/delivery/dto"
	"interpaws-backend/internal/delivery/http/middleware"
	"interpaws-backend/internal/domain/entity"
	"interpaws-backend/internal/domain/repository"
	"interpaws-backend/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type FeedbackUsecase interface {
	CreateFeedback(ctx context.Context, req *dto.CreateFeedbackRequest) (*dto.FeedbackEventResponse, error)
	GetClinicFeedback(ctx context.Context, clinicID int) (*dto.FeedbackListResponse, error)
}

type feedbackUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	feedbackRepo repository.FeedbackEventRepository
	clinicRepo   repository.ClinicRepository
	auditService service.AuditService
}

func NewFeedbackUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	feedbackRepo repository.FeedbackEventRepository,
	clinicRepo repository.ClinicRepository,
	auditService service.AuditService,
) FeedbackUsecase {
	return &feedbackUsecase{
		db:           db,
		log:          log,
		feedbackRepo: feedbackRepo,
		clinicRepo:   clinicRepo,
		auditService: auditService,
	}
}

// CreateFeedback records how a ranked suggestion was received. Rejections
// and dismissals arrive here; acceptances are usually written by the
// booking flow instead.
func (u *feedbackUsecase) CreateFeedback(ctx context.Context, req *dto.CreateFeedbackRequest) (*dto.FeedbackEventResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	start, end, err := parseWindow(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	db := u.db.WithContext(ctx)
	clinic, err := u.clinicRepo.FindByID(db, req.ClinicID)
	if err != nil {
		u.log.Warnf("Failed to find clinic %d: %+v", req.ClinicID, err)
		return nil, err
	}
	if clinic == nil {
		return nil, ErrClinicNotFound
	}

	tx := db.Begin()
	defer tx.Rollback()

	event := &entity.FeedbackEvent{
		ClinicID:      req.ClinicID,
		UserID:        &userID,
		AppointmentID: req.AppointmentID,
		Outcome:       entity.FeedbackOutcome(req.Outcome),
		SlotID:        req.SlotID,
		Rank:          req.Rank,
		Score:         req.Score,
		Rationale:     req.Rationale,
		DoctorID:      req.DoctorID,
		RoomID:        req.RoomID,
		StartTime:     start,
		EndTime:       end,
	}

	if err := u.feedbackRepo.Create(tx, event); err != nil {
		u.log.Warnf("Failed to create feedback event: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogAction(ctx, tx, &userID, entity.AuditActionFeedbackCreate, entity.JSON{
		"clinic_id": req.ClinicID,
		"outcome":   req.Outcome,
		"slot_id":   req.SlotID,
		"rank":      req.Rank,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.FeedbackEventToResponse(event), nil
}

func (u *feedbackUsecase) GetClinicFeedback(ctx context.Context, clinicID int) (*dto.FeedbackListResponse, error) {
	events, err := u.feedbackRepo.FindByClinicID(u.db.WithContext(ctx), clinicID)
	if err != nil {
		u.log.Warnf("Failed to find feedback for clinic %d: %+v", clinicID, err)
		return nil, err
	}

	return &dto.FeedbackListResponse{
		Events: converter.FeedbackEventsToResponses(events),
		Total:  len(events),
	}, nil
}
