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
	"interpaws-backend/internal/ranking"
	"interpaws-backend/internal/scheduling"
	"interpaws-backend/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrDoctorNotFound              = errors.New("doctor not found in clinic")
	ErrRoomNotFound                = errors.New("room not found in clinic")
	ErrSlotConflict                = errors.New("doctor or room is no longer free for that window")
	ErrSlotBeingBooked             = errors.New("slot is being booked by someone else, try again")
	ErrAppointmentNotFound         = errors.New("appointment not found")
	ErrAppointmentAlreadyCancelled = errors.New("appointment is already cancelled")
)

const defaultGranularityMinutes = 30

// SlotRanker abstracts the ranking pipeline so the usecase can be tested
// without a live model endpoint.
type SlotRanker interface {
	Rank(ctx context.Context, slots []ranking.CandidateSlot, reqCtx ranking.RequestContext) ([]ranking.RankedSlot, string)
}

type SchedulerUsecase interface {
	FindSlots(ctx context.Context, req *dto.FindSlotsRequest) (*dto.FindSlotsResponse, error)
	BookAppointment(ctx context.Context, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error)
	GetAppointments(ctx context.Context, clinicID int) (*dto.AppointmentListResponse, error)
	CancelAppointment(ctx context.Context, id uuid.UUID) error
}

type schedulerUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	clinicRepo      repository.ClinicRepository
	doctorRepo      repository.DoctorRepository
	roomRepo        repository.RoomRepository
	constraintRepo  repository.ConstraintRepository
	appointmentRepo repository.AppointmentRepository
	feedbackRepo    repository.FeedbackEventRepository
	ranker          SlotRanker
	slotHoldService *service.SlotHoldService
	auditService    service.AuditService
}

func NewSchedulerUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	clinicRepo repository.ClinicRepository,
	doctorRepo repository.DoctorRepository,
	roomRepo repository.RoomRepository,
	constraintRepo repository.ConstraintRepository,
	appointmentRepo repository.AppointmentRepository,
	feedbackRepo repository.FeedbackEventRepository,
	ranker SlotRanker,
	slotHoldService *service.SlotHoldService,
	auditService service.AuditService,
) SchedulerUsecase {
	return &schedulerUsecase{
		db:              db,
		log:             log,
		clinicRepo:      clinicRepo,
		doctorRepo:      doctorRepo,
		roomRepo:        roomRepo,
		constraintRepo:  constraintRepo,
		appointmentRepo: appointmentRepo,
		feedbackRepo:    feedbackRepo,
		ranker:          ranker,
		slotHoldService: slotHoldService,
		auditService:    auditService,
	}
}

// FindSlots runs the feasibility search over the clinic's doctors, rooms,
// stored constraints and live appointments, then hands every feasible slot
// to the ranker. The ranked list is total: ranking never drops a slot.
func (u *schedulerUsecase) FindSlots(ctx context.Context, req *dto.FindSlotsRequest) (*dto.FindSlotsResponse, error) {
	start, end, err := parseWindow(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	payloadWindows, err := payloadOperatingWindows(req.OperatingHours)
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

	doctors, err := u.doctorRepo.FindActiveByClinicID(db, req.ClinicID)
	if err != nil {
		u.log.Warnf("Failed to find doctors for clinic %d: %+v", req.ClinicID, err)
		return nil, err
	}

	rooms, err := u.roomRepo.FindActiveByClinicID(db, req.ClinicID)
	if err != nil {
		u.log.Warnf("Failed to find rooms for clinic %d: %+v", req.ClinicID, err)
		return nil, err
	}

	constraints, err := u.constraintRepo.FindByClinicIDInRange(db, req.ClinicID, start, end)
	if err != nil {
		u.log.Warnf("Failed to find constraints for clinic %d: %+v", req.ClinicID, err)
		return nil, err
	}

	appointments, err := u.appointmentRepo.FindActiveInRange(db, req.ClinicID, start, end)
	if err != nil {
		u.log.Warnf("Failed to find appointments for clinic %d: %+v", req.ClinicID, err)
		return nil, err
	}

	granularity := req.GranularityMinutes
	if granularity <= 0 {
		granularity = defaultGranularityMinutes
	}

	schedReq := scheduling.AppointmentRequest{
		Start:               start,
		End:                 end,
		DurationMinutes:     req.DurationMinutes,
		GranularityMinutes:  granularity,
		AllowedDoctorIDs:    req.AllowedDoctorIDs,
		AllowedRoomIDs:      req.AllowedRoomIDs,
		RequiredSpecialties: req.RequiredSpecialties,
		RequiredRoomType:    req.RequiredRoomType,
		RequiredEquipment:   req.RequiredEquipment,
	}

	availability := buildAvailability(doctors, rooms, constraints, appointments)
	availability.clinic.OperatingWindows = append(availability.clinic.OperatingWindows, payloadWindows...)

	slots, err := scheduling.FindFeasibleSlots(availability.doctors, availability.rooms, schedReq, availability.clinic)
	if err != nil {
		return nil, err
	}

	candidates := candidateSlots(slots, doctors)
	reqCtx := ranking.RequestContext{
		ClinicName:      clinic.Name,
		ReasonForVisit:  req.ReasonForVisit,
		Urgency:         req.Urgency,
		PreferredStart:  start.Format(time.RFC3339),
		PreferredEnd:    end.Format(time.RFC3339),
		DurationMinutes: req.DurationMinutes,
	}
	ranked, source := u.ranker.Rank(ctx, candidates, reqCtx)

	userID, ok := middleware.GetUserIDFromContext(ctx)
	if ok {
		if err := u.auditService.LogAction(ctx, db, &userID, entity.AuditActionSlotSearch, entity.JSON{
			"clinic_id": req.ClinicID,
			"total":     len(ranked),
			"ranker":    source,
		}); err != nil {
			return nil, err
		}
	}

	return &dto.FindSlotsResponse{
		ClinicID: req.ClinicID,
		Slots:    rankedSlotResponses(ranked, doctors, rooms),
		Total:    len(ranked),
		Ranker:   source,
	}, nil
}

// BookAppointment books a doctor/room pair for a window. A short Redis hold
// closes the race between the conflict check and the insert.
func (u *schedulerUsecase) BookAppointment(ctx context.Context, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error) {
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

	doctor, err := u.doctorRepo.FindByID(db, req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %d: %+v", req.DoctorID, err)
		return nil, err
	}
	if doctor == nil || doctor.ClinicID != req.ClinicID {
		return nil, ErrDoctorNotFound
	}

	room, err := u.roomRepo.FindByID(db, req.RoomID)
	if err != nil {
		u.log.Warnf("Failed to find room %d: %+v", req.RoomID, err)
		return nil, err
	}
	if room == nil || room.ClinicID != req.ClinicID {
		return nil, ErrRoomNotFound
	}

	// Hold the doctor and room before checking conflicts, so two
	// concurrent bookings of the same slot serialize here.
	if err := u.slotHoldService.AcquireHold(ctx, req.ClinicID, req.DoctorID, req.RoomID, start, userID.String()); err != nil {
		if errors.Is(err, service.ErrSlotHeld) {
			return nil, ErrSlotBeingBooked
		}
		return nil, err
	}
	defer u.slotHoldService.ReleaseHold(ctx, req.ClinicID, req.DoctorID, req.RoomID, start)

	conflicts, err := u.appointmentRepo.FindOverlapping(db, req.ClinicID, req.DoctorID, req.RoomID, start, end)
	if err != nil {
		u.log.Warnf("Failed to check conflicts: %+v", err)
		return nil, err
	}
	if len(conflicts) > 0 {
		return nil, ErrSlotConflict
	}

	tx := db.Begin()
	defer tx.Rollback()

	appointment := &entity.Appointment{
		ClinicID:    req.ClinicID,
		DoctorID:    req.DoctorID,
		RoomID:      req.RoomID,
		CreatedBy:   userID,
		PatientName: req.PatientName,
		Reason:      req.Reason,
		Status:      entity.AppointmentStatusConfirmed,
		StartTime:   start,
		EndTime:     end,
	}
	if err := u.appointmentRepo.Create(tx, appointment); err != nil {
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	// A booking made from a ranked suggestion records acceptance feedback
	// in the same transaction.
	if req.Suggestion != nil {
		event := &entity.FeedbackEvent{
			ClinicID:      req.ClinicID,
			UserID:        &userID,
			AppointmentID: &appointment.ID,
			Outcome:       entity.FeedbackOutcomeAccepted,
			SlotID:        req.Suggestion.SlotID,
			Rank:          req.Suggestion.Rank,
			Score:         req.Suggestion.Score,
			Rationale:     req.Suggestion.Rationale,
			DoctorID:      req.DoctorID,
			RoomID:        req.RoomID,
			StartTime:     start,
			EndTime:       end,
		}
		if err := u.feedbackRepo.Create(tx, event); err != nil {
			u.log.Warnf("Failed to create feedback event: %+v", err)
			return nil, err
		}
	}

	if err := u.auditService.LogCreate(ctx, tx, &userID, entity.AuditActionBookingCreate, "appointment", appointment.ID.String(), map[string]interface{}{
		"doctor_id": req.DoctorID,
		"room_id":   req.RoomID,
		"start":     start.Format(time.RFC3339),
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.AppointmentToResponse(appointment), nil
}

func (u *schedulerUsecase) GetAppointments(ctx context.Context, clinicID int) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindByClinicID(u.db.WithContext(ctx), clinicID)
	if err != nil {
		u.log.Warnf("Failed to find appointments for clinic %d: %+v", clinicID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *schedulerUsecase) CancelAppointment(ctx context.Context, id uuid.UUID) error {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return errors.New("user not found in context")
	}

	db := u.db.WithContext(ctx)
	appointment, err := u.appointmentRepo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}

	tx := db.Begin()
	defer tx.Rollback()

	affected, err := u.appointmentRepo.CancelAppointment(tx, id)
	if err != nil {
		u.log.Warnf("Failed to cancel appointment %s: %+v", id, err)
		return err
	}
	if affected == 0 {
		return ErrAppointmentAlreadyCancelled
	}

	if err := u.auditService.LogUpdate(ctx, tx, &userID, entity.AuditActionBookingCancel, "appointment", id.String(),
		string(appointment.Status), string(entity.AppointmentStatusCancelled)); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}

// clinicAvailability holds the solver-shaped view of the clinic.
type clinicAvailability struct {
	doctors []scheduling.DoctorAvailability
	rooms   []scheduling.RoomAvailability
	clinic  scheduling.ClinicSchedule
}

// buildAvailability translates stored constraints and live appointments
// into solver inputs. Clinic-wide rows shape the clinic schedule;
// per-resource rows become that resource's windows. A booked appointment
// blocks both its doctor and its room.
func buildAvailability(doctors []entity.Doctor, rooms []entity.Room, constraints []entity.Constraint, appointments []entity.Appointment) clinicAvailability {
	doctorAvailable := map[int][]scheduling.TimeWindow{}
	doctorBlocked := map[int][]scheduling.TimeWindow{}
	roomAvailable := map[int][]scheduling.TimeWindow{}
	roomBlocked := map[int][]scheduling.TimeWindow{}
	var clinic scheduling.ClinicSchedule

	for _, c := range constraints {
		window, err := scheduling.NewTimeWindow(c.StartTime, c.EndTime)
		if err != nil {
			continue
		}
		switch {
		case c.DoctorID != nil:
			if c.Kind == entity.ConstraintKindOperating {
				doctorAvailable[*c.DoctorID] = append(doctorAvailable[*c.DoctorID], window)
			} else {
				doctorBlocked[*c.DoctorID] = append(doctorBlocked[*c.DoctorID], window)
			}
		case c.RoomID != nil:
			if c.Kind == entity.ConstraintKindOperating {
				roomAvailable[*c.RoomID] = append(roomAvailable[*c.RoomID], window)
			} else {
				roomBlocked[*c.RoomID] = append(roomBlocked[*c.RoomID], window)
			}
		default:
			if c.Kind == entity.ConstraintKindOperating {
				clinic.OperatingWindows = append(clinic.OperatingWindows, window)
			} else {
				clinic.BlockedWindows = append(clinic.BlockedWindows, window)
			}
		}
	}

	for _, a := range appointments {
		window, err := scheduling.NewTimeWindow(a.StartTime, a.EndTime)
		if err != nil {
			continue
		}
		doctorBlocked[a.DoctorID] = append(doctorBlocked[a.DoctorID], window)
		roomBlocked[a.RoomID] = append(roomBlocked[a.RoomID], window)
	}

	out := clinicAvailability{clinic: clinic}
	for _, d := range doctors {
		var specialties []string
		if d.Specialty != "" {
			specialties = []string{d.Specialty}
		}
		out.doctors = append(out.doctors, scheduling.NewDoctorAvailability(
			d.ID, specialties, doctorAvailable[d.ID], doctorBlocked[d.ID]))
	}
	for _, r := range rooms {
		out.rooms = append(out.rooms, scheduling.NewRoomAvailability(
			r.ID, r.RoomType, r.Equipment, roomAvailable[r.ID], roomBlocked[r.ID]))
	}
	return out
}

// payloadOperatingWindows parses caller-supplied operating hours into solver
// windows. Unlike stored constraint rows, a malformed window here is a
// request error, not a row to skip.
func payloadOperatingWindows(windows []dto.OperatingWindowRequest) ([]scheduling.TimeWindow, error) {
	if len(windows) == 0 {
		return nil, nil
	}
	out := make([]scheduling.TimeWindow, 0, len(windows))
	for _, w := range windows {
		start, end, err := parseWindow(w.StartTime, w.EndTime)
		if err != nil {
			return nil, err
		}
		window, err := scheduling.NewTimeWindow(start, end)
		if err != nil {
			return nil, err
		}
		out = append(out, window)
	}
	return out, nil
}

// candidateSlots tags each feasible slot with a stable 1-based id for the
// ranking prompt and the feedback echo.
func candidateSlots(slots []scheduling.Slot, doctors []entity.Doctor) []ranking.CandidateSlot {
	specialtyByID := make(map[int]string, len(doctors))
	for _, d := range doctors {
		specialtyByID[d.ID] = d.Specialty
	}

	candidates := make([]ranking.CandidateSlot, len(slots))
	for i, slot := range slots {
		candidates[i] = ranking.CandidateSlot{
			SlotID:          i + 1,
			DoctorID:        slot.DoctorID,
			DoctorSpecialty: specialtyByID[slot.DoctorID],
			RoomID:          slot.RoomID,
			StartTime:       slot.Start,
			EndTime:         slot.End,
		}
	}
	return candidates
}

func rankedSlotResponses(ranked []ranking.RankedSlot, doctors []entity.Doctor, rooms []entity.Room) []dto.RankedSlotResponse {
	doctorByID := make(map[int]entity.Doctor, len(doctors))
	for _, d := range doctors {
		doctorByID[d.ID] = d
	}
	roomByID := make(map[int]entity.Room, len(rooms))
	for _, r := range rooms {
		roomByID[r.ID] = r
	}

	responses := make([]dto.RankedSlotResponse, len(ranked))
	for i, slot := range ranked {
		responses[i] = dto.RankedSlotResponse{
			SlotID:    slot.SlotID,
			Rank:      slot.Rank,
			Score:     slot.Score,
			Rationale: slot.Rationale,
			DoctorID:  slot.DoctorID,
			Doctor:    doctorByID[slot.DoctorID].DisplayName,
			Specialty: slot.DoctorSpecialty,
			RoomID:    slot.RoomID,
			Room:      roomByID[slot.RoomID].Name,
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
		}
	}
	return responses
}
