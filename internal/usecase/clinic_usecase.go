package usecase

import (
	"context"
	"errors"
	"time"

	"interpaws-backend/internal/converter"
	"interpaws-backend/internal/delivery/dto"
	"interpaws-backend/internal/delivery/http/middleware"
	"interpaws-backend/internal/domain/entity"
	"interpaws-backend/internal/domain/repository"
	"interpaws-backend/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrClinicNameTaken    = errors.New("clinic name already exists")
	ErrInvalidTimestamp   = errors.New("invalid timestamp, use RFC3339 or YYYY-MM-DDTHH:MM:SS")
	ErrInvalidWindowOrder = errors.New("window end must be after start")
)

// storageRoomName is the room that collects equipment submitted without a
// room assignment during onboarding.
const storageRoomName = "General Equipment Storage"

type ClinicUsecase interface {
	Onboard(ctx context.Context, req *dto.OnboardClinicRequest) (*dto.ClinicResponse, error)
	GetClinic(ctx context.Context, id int) (*dto.ClinicResponse, error)
	GetAllClinics(ctx context.Context) (*dto.ClinicListResponse, error)
}

type clinicUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	clinicRepo     repository.ClinicRepository
	constraintRepo repository.ConstraintRepository
	auditService   service.AuditService
}

func NewClinicUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	clinicRepo repository.ClinicRepository,
	constraintRepo repository.ConstraintRepository,
	auditService service.AuditService,
) ClinicUsecase {
	return &clinicUsecase{
		db:             db,
		log:            log,
		clinicRepo:     clinicRepo,
		constraintRepo: constraintRepo,
		auditService:   auditService,
	}
}

// Onboard creates a clinic together with its doctors, rooms and operating
// hours in a single transaction. Equipment submitted without a room lands
// in a dedicated storage room so nothing from the intake form is lost.
func (u *clinicUsecase) Onboard(ctx context.Context, req *dto.OnboardClinicRequest) (*dto.ClinicResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	timezone := req.Timezone
	if timezone == "" {
		timezone = "UTC"
	}

	active := true
	clinic := &entity.Clinic{
		Name:     req.Name,
		Address:  req.Address,
		Phone:    req.Phone,
		Timezone: timezone,
	}

	for _, d := range req.Doctors {
		clinic.Doctors = append(clinic.Doctors, entity.Doctor{
			DisplayName:   d.DisplayName,
			Specialty:     d.Specialty,
			LicenseNumber: d.LicenseNumber,
			Biography:     d.Biography,
			IsActive:      &active,
		})
	}

	for _, r := range req.Rooms {
		capacity := r.Capacity
		if capacity < 1 {
			capacity = 1
		}
		clinic.Rooms = append(clinic.Rooms, entity.Room{
			Name:      r.Name,
			RoomType:  r.RoomType,
			Equipment: entity.StringList(r.Equipment),
			Capacity:  capacity,
			Notes:     r.Notes,
			IsActive:  &active,
		})
	}

	if len(req.UnassignedEquipment) > 0 {
		clinic.Rooms = append(clinic.Rooms, entity.Room{
			Name:      storageRoomName,
			RoomType:  "storage",
			Equipment: entity.StringList(req.UnassignedEquipment),
			Capacity:  1,
			IsActive:  &active,
		})
	}

	if err := u.clinicRepo.Create(tx, clinic); err != nil {
		if isDuplicateKeyError(err, "name") {
			return nil, ErrClinicNameTaken
		}
		u.log.Warnf("Failed to create clinic: %+v", err)
		return nil, err
	}

	for _, w := range req.OperatingWindows {
		start, end, err := parseWindow(w.StartTime, w.EndTime)
		if err != nil {
			return nil, err
		}
		constraint := &entity.Constraint{
			ClinicID:  clinic.ID,
			Kind:      entity.ConstraintKindOperating,
			StartTime: start,
			EndTime:   end,
		}
		if err := u.constraintRepo.Create(tx, constraint); err != nil {
			u.log.Warnf("Failed to create operating window: %+v", err)
			return nil, err
		}
	}

	userID, _ := middleware.GetUserIDFromContext(ctx)
	if err := u.auditService.LogCreate(ctx, tx, &userID, entity.AuditActionClinicOnboarding, "clinic", clinic.Name, map[string]interface{}{
		"doctors": len(clinic.Doctors),
		"rooms":   len(clinic.Rooms),
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.ClinicToResponse(clinic), nil
}

func (u *clinicUsecase) GetClinic(ctx context.Context, id int) (*dto.ClinicResponse, error) {
	clinic, err := u.clinicRepo.FindByIDWithResources(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find clinic %d: %+v", id, err)
		return nil, err
	}
	if clinic == nil {
		return nil, ErrClinicNotFound
	}

	return converter.ClinicToResponse(clinic), nil
}

func (u *clinicUsecase) GetAllClinics(ctx context.Context) (*dto.ClinicListResponse, error) {
	clinics, err := u.clinicRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find all clinics: %+v", err)
		return nil, err
	}

	return &dto.ClinicListResponse{
		Clinics: converter.ClinicsToResponses(clinics),
		Total:   len(clinics),
	}, nil
}

// parseTimestamp accepts RFC3339 first, then a naive local timestamp which
// is interpreted as UTC.
func parseTimestamp(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02T15:04:05", value)
	if err != nil {
		return time.Time{}, ErrInvalidTimestamp
	}
	return t.UTC(), nil
}

func parseWindow(startValue, endValue string) (time.Time, time.Time, error) {
	start, err := parseTimestamp(startValue)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := parseTimestamp(endValue)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, ErrInvalidWindowOrder
	}
	return start, end, nil
}
