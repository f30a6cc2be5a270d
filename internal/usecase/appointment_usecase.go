package usecase

import (
	"context"
	"errors"
	"time"

	"smarthealth/internal/delivery/dto"
	"smarthealth/internal/domain/entity"
	"smarthealth/internal/domain/repository"
	"smarthealth/pkg/timeslot"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrPatientNotFound      = errors.New("patient not found")
	ErrSlotNotFound         = errors.New("availability slot not found")
	ErrSlotNotBookable      = errors.New("slot is not open for booking")
	ErrDoctorSlotMismatch   = errors.New("slot does not belong to the given doctor")
	ErrPastSlot             = errors.New("cannot book past slots")
	ErrSubProfileNotFound   = errors.New("sub profile not found")
	ErrSubProfileMismatch   = errors.New("sub profile does not belong to the patient")
	ErrAppointmentNotFound  = errors.New("appointment not found")
	ErrNoAppointmentAccess  = errors.New("no access to this appointment")
	ErrInvalidRole          = errors.New("invalid role")
	ErrStatusUpdateFailed   = errors.New("failed to update appointment status")
	ErrNoAppointmentForSlot = errors.New("no appointment found for slot")
	ErrInvalidDoctorID      = errors.New("invalid doctor id")
)

type AppointmentUsecase interface {
	Book(ctx context.Context, principal Principal, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error)
	// ChangeStatus moves one appointment through the status state machine.
	// Admins skip the ownership check. A transition that is legal for the
	// role but not applicable to the current status returns a message, not
	// an error.
	ChangeStatus(ctx context.Context, principal Principal, id int, status entity.AppointmentStatus) (string, error)
	// ChangeStatusBySlot addresses the current appointment of a slot instead
	// of an appointment id.
	ChangeStatusBySlot(ctx context.Context, principal Principal, req *dto.ChangeSlotAppointmentStatusRequest) (string, error)
	ListForPatient(ctx context.Context, principal Principal) ([]dto.AppointmentResponse, error)
}

type appointmentUsecase struct {
	db                 *gorm.DB
	log                *logrus.Logger
	appointmentRepo    repository.AppointmentRepository
	availabilityRepo   repository.AvailabilityRepository
	patientProfileRepo repository.PatientProfileRepository
	subProfileRepo     repository.SubProfileRepository
	doctorProfileRepo  repository.DoctorProfileRepository

	now func() time.Time
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	availabilityRepo repository.AvailabilityRepository,
	patientProfileRepo repository.PatientProfileRepository,
	subProfileRepo repository.SubProfileRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:                 db,
		log:                log,
		appointmentRepo:    appointmentRepo,
		availabilityRepo:   availabilityRepo,
		patientProfileRepo: patientProfileRepo,
		subProfileRepo:     subProfileRepo,
		doctorProfileRepo:  doctorProfileRepo,
		now:                time.Now,
	}
}

func (u *appointmentUsecase) Book(ctx context.Context, principal Principal, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error) {
	doctorID, err := uuid.Parse(req.DoctorID)
	if err != nil {
		return nil, ErrInvalidDoctorID
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient, err := u.patientProfileRepo.FindByUserID(tx, principal.UserID)
	if err != nil {
		u.log.Warnf("Failed to find patient profile: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	availability, err := u.availabilityRepo.FindByID(tx, req.AvailabilityID)
	if err != nil {
		u.log.Warnf("Failed to find availability slot: %+v", err)
		return nil, err
	}
	if availability == nil {
		return nil, ErrSlotNotFound
	}
	if !availability.IsBookable() {
		return nil, ErrSlotNotBookable
	}
	if availability.DoctorID != doctorID {
		return nil, ErrDoctorSlotMismatch
	}
	if !timeslot.EndsAfter(availability.Date, availability.EndTime, u.now()) {
		return nil, ErrPastSlot
	}

	subProfileID, err := u.resolveSubProfile(tx, patient.UserID, req.SubProfile)
	if err != nil {
		return nil, err
	}

	// Conditional update: a concurrent booking of the same slot loses here.
	booked, err := u.availabilityRepo.MarkBooked(tx, availability.ID)
	if err != nil {
		u.log.Warnf("Failed to mark slot booked: %+v", err)
		return nil, err
	}
	if booked != 1 {
		return nil, ErrSlotNotBookable
	}

	appointment := &entity.Appointment{
		AvailabilityID: availability.ID,
		PatientID:      patient.UserID,
		SubProfileID:   subProfileID,
		Status:         entity.AppointmentStatusBooked,
		Note:           req.Note,
	}
	if err := u.appointmentRepo.Create(tx, appointment); err != nil {
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return &dto.AppointmentResponse{
		ID: appointment.ID,
		Availability: dto.AvailabilityResponse{
			ID:        availability.ID,
			Date:      availability.Date.Format("2006-01-02"),
			StartTime: availability.StartTime,
			EndTime:   availability.EndTime,
			Status:    entity.SlotStatusBooked,
			Mode:      availability.Mode,
		},
		Status:       appointment.Status,
		Note:         appointment.Note,
		SubProfileID: appointment.SubProfileID,
		CreatedAt:    appointment.CreatedAt,
		UpdatedAt:    appointment.UpdatedAt,
	}, nil
}

// resolveSubProfile returns the sub profile id for a booking. An explicit id
// must belong to the patient; inline details create a new dependent.
func (u *appointmentUsecase) resolveSubProfile(tx *gorm.DB, patientID uuid.UUID, input *dto.SubProfileInput) (*int, error) {
	if input == nil {
		return nil, nil
	}
	if input.ID != nil {
		subProfile, err := u.subProfileRepo.FindByID(tx, *input.ID)
		if err != nil {
			u.log.Warnf("Failed to find sub profile: %+v", err)
			return nil, err
		}
		if subProfile == nil {
			return nil, ErrSubProfileNotFound
		}
		if subProfile.PatientID != patientID {
			return nil, ErrSubProfileMismatch
		}
		return &subProfile.ID, nil
	}

	subProfile := &entity.SubProfile{
		PatientID: patientID,
		Name:      input.Name,
		Phone:     input.Phone,
		Relation:  input.Relation,
	}
	if err := u.subProfileRepo.Create(tx, subProfile); err != nil {
		u.log.Warnf("Failed to create sub profile: %+v", err)
		return nil, err
	}
	return &subProfile.ID, nil
}

func (u *appointmentUsecase) ChangeStatus(ctx context.Context, principal Principal, id int, status entity.AppointmentStatus) (string, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.appointmentRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return "", err
	}
	if appointment == nil {
		return "", ErrAppointmentNotFound
	}

	if principal.Role != entity.RoleAdmin {
		if err := u.validateAccess(principal, appointment); err != nil {
			return "", err
		}
	}

	current := appointment.Status
	valid, err := isAppointmentTransitionValid(principal.Role, current, status)
	if err != nil {
		return "", err
	}
	if !valid {
		return rejectedTransitionMessage(string(status), string(current)), nil
	}

	changed, err := u.appointmentRepo.UpdateStatus(tx, id, status)
	if err != nil {
		u.log.Warnf("Failed to update appointment status: %+v", err)
		return "", err
	}
	if changed != 1 {
		return "", ErrStatusUpdateFailed
	}

	if err := u.updateSlotIfRequired(tx, status, appointment.AvailabilityID); err != nil {
		return "", err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return "", err
	}
	return successMessageForStatusChange(status), nil
}

func (u *appointmentUsecase) ChangeStatusBySlot(ctx context.Context, principal Principal, req *dto.ChangeSlotAppointmentStatusRequest) (string, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	availability, err := u.availabilityRepo.FindByID(tx, req.SlotID)
	if err != nil {
		u.log.Warnf("Failed to find availability slot: %+v", err)
		return "", err
	}
	if availability == nil {
		return "", ErrSlotNotFound
	}
	if principal.Role != entity.RoleAdmin && availability.DoctorID != principal.UserID {
		return "", ErrDoctorSlotMismatch
	}

	allowedCurrent, err := allowedCurrentStatusesFor(req.Status)
	if err != nil {
		return "", err
	}

	changed, err := u.appointmentRepo.UpdateStatusByAvailabilityID(tx, req.SlotID, req.Status, allowedCurrent)
	if err != nil {
		u.log.Warnf("Failed to update appointment status by slot: %+v", err)
		return "", err
	}
	if changed == 1 {
		if req.Status == entity.AppointmentStatusDCancelled {
			if _, err := u.availabilityRepo.UpdateStatus(tx, req.SlotID, entity.SlotStatusCancelled); err != nil {
				u.log.Warnf("Failed to cancel availability slot: %+v", err)
				return "", err
			}
		}
		if err := tx.Commit().Error; err != nil {
			u.log.Warnf("Failed commit transaction: %+v", err)
			return "", err
		}
		return successMessageForStatusChange(req.Status), nil
	}

	appointment, err := u.appointmentRepo.FindLatestByAvailabilityID(tx, req.SlotID)
	if err != nil {
		u.log.Warnf("Failed to find appointment for slot: %+v", err)
		return "", err
	}
	if appointment == nil {
		return "", ErrNoAppointmentForSlot
	}
	return failureMessageForStatusChange(req.Status, appointment.Status), nil
}

func (u *appointmentUsecase) ListForPatient(ctx context.Context, principal Principal) ([]dto.AppointmentResponse, error) {
	appointments, err := u.appointmentRepo.FindByPatientID(u.db.WithContext(ctx), principal.UserID)
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, err
	}

	responses := make([]dto.AppointmentResponse, 0, len(appointments))
	for _, appointment := range appointments {
		responses = append(responses, dto.AppointmentResponse{
			ID: appointment.ID,
			Availability: dto.AvailabilityResponse{
				ID:        appointment.Availability.ID,
				Date:      appointment.Availability.Date.Format("2006-01-02"),
				StartTime: appointment.Availability.StartTime,
				EndTime:   appointment.Availability.EndTime,
				Status:    appointment.Availability.Status,
				Mode:      appointment.Availability.Mode,
			},
			Status:       appointment.Status,
			Note:         appointment.Note,
			SubProfileID: appointment.SubProfileID,
			CreatedAt:    appointment.CreatedAt,
			UpdatedAt:    appointment.UpdatedAt,
		})
	}
	return responses, nil
}

func (u *appointmentUsecase) validateAccess(principal Principal, appointment *entity.Appointment) error {
	switch principal.Role {
	case entity.RolePatient:
		if appointment.PatientID != principal.UserID {
			return ErrNoAppointmentAccess
		}
	case entity.RoleDoctor:
		if appointment.Availability.DoctorID != principal.UserID {
			return ErrNoAppointmentAccess
		}
	default:
		return ErrInvalidRole
	}
	return nil
}

// updateSlotIfRequired re-opens the slot after a patient cancellation and
// withdraws it after a doctor cancellation.
func (u *appointmentUsecase) updateSlotIfRequired(tx *gorm.DB, status entity.AppointmentStatus, availabilityID int) error {
	switch status {
	case entity.AppointmentStatusPCancelled:
		_, err := u.availabilityRepo.UpdateStatus(tx, availabilityID, entity.SlotStatusReAvailable)
		return err
	case entity.AppointmentStatusDCancelled:
		_, err := u.availabilityRepo.UpdateStatus(tx, availabilityID, entity.SlotStatusCancelled)
		return err
	}
	return nil
}
