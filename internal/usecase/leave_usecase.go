package usecase

import (
	"context"
	"errors"
	"time"

	"smarthealth/config"
	"smarthealth/internal/delivery/dto"
	"smarthealth/internal/domain/entity"
	"smarthealth/internal/domain/repository"
	"smarthealth/pkg/timeslot"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrLeaveNotFound         = errors.New("leave not found")
	ErrLeaveOverlap          = errors.New("leave overlaps an existing booked or approved leave")
	ErrInvalidLeaveRange     = errors.New("invalid leave date range")
	ErrLeaveStatusUpdateFail = errors.New("unable to update leave status")
)

type LeaveUsecase interface {
	Apply(ctx context.Context, principal Principal, req *dto.ApplyLeaveRequest) (*dto.LeaveResponse, error)
	// ChangeStatus decides a leave request. Approval cascades over the
	// already generated slots inside the generation horizon.
	ChangeStatus(ctx context.Context, role entity.RoleName, id int, status entity.LeaveStatus) (string, error)
	List(ctx context.Context, principal Principal) ([]dto.LeaveResponse, error)
}

type leaveUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	leaveRepo        repository.DoctorLeaveRepository
	holidayRepo      repository.HolidayRepository
	availabilityRepo repository.AvailabilityRepository
	appointmentRepo  repository.AppointmentRepository
	doctorRepo       repository.DoctorProfileRepository
	slotsConfig      config.SlotsConfig

	now func() time.Time
}

func NewLeaveUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	leaveRepo repository.DoctorLeaveRepository,
	holidayRepo repository.HolidayRepository,
	availabilityRepo repository.AvailabilityRepository,
	appointmentRepo repository.AppointmentRepository,
	doctorRepo repository.DoctorProfileRepository,
	slotsConfig config.SlotsConfig,
) LeaveUsecase {
	return &leaveUsecase{
		db:               db,
		log:              log,
		leaveRepo:        leaveRepo,
		holidayRepo:      holidayRepo,
		availabilityRepo: availabilityRepo,
		appointmentRepo:  appointmentRepo,
		doctorRepo:       doctorRepo,
		slotsConfig:      slotsConfig,
		now:              time.Now,
	}
}

func (u *leaveUsecase) Apply(ctx context.Context, principal Principal, req *dto.ApplyLeaveRequest) (*dto.LeaveResponse, error) {
	if principal.Role != entity.RoleDoctor {
		return nil, ErrInvalidRole
	}

	from, err := time.Parse("2006-01-02", req.FromDate)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	to, err := time.Parse("2006-01-02", req.ToDate)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	if to.Before(from) {
		return nil, ErrInvalidLeaveRange
	}

	db := u.db.WithContext(ctx)

	doctor, err := u.doctorRepo.FindByUserID(db, principal.UserID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	overlap, err := u.leaveRepo.HasOverlapping(db, doctor.UserID, from, to)
	if err != nil {
		u.log.Warnf("Failed to check overlapping leaves: %+v", err)
		return nil, err
	}
	if overlap {
		return nil, ErrLeaveOverlap
	}

	effectiveDays, err := u.countEffectiveDays(db, from, to)
	if err != nil {
		return nil, err
	}

	leave := &entity.DoctorLeave{
		DoctorID: doctor.UserID,
		FromDate: from,
		ToDate:   to,
		Status:   entity.LeaveStatusBooked,
		Days:     effectiveDays,
		Reason:   req.Reason,
	}
	if err := u.leaveRepo.Create(db, leave); err != nil {
		u.log.Warnf("Failed to create leave: %+v", err)
		return nil, err
	}

	return toLeaveResponse(leave), nil
}

// countEffectiveDays counts the days in [from, to] that are neither Sundays
// nor holidays; those days never carry slots, so they do not consume leave.
func (u *leaveUsecase) countEffectiveDays(db *gorm.DB, from, to time.Time) (int, error) {
	holidays, err := u.holidayRepo.FindAll(db)
	if err != nil {
		u.log.Warnf("Failed to load holidays: %+v", err)
		return 0, err
	}
	holidaySet := make(map[string]struct{}, len(holidays))
	for _, h := range holidays {
		holidaySet[h.HolidayDate.Format("2006-01-02")] = struct{}{}
	}

	days := 0
	for date := timeslot.DateOnly(from); !date.After(to); date = date.AddDate(0, 0, 1) {
		if date.Weekday() == time.Sunday {
			continue
		}
		if _, ok := holidaySet[date.Format("2006-01-02")]; ok {
			continue
		}
		days++
	}
	return days, nil
}

func (u *leaveUsecase) ChangeStatus(ctx context.Context, role entity.RoleName, id int, status entity.LeaveStatus) (string, error) {
	if role != entity.RoleDoctor {
		return "", ErrInvalidRole
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	leave, err := u.leaveRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find leave: %+v", err)
		return "", err
	}
	if leave == nil {
		return "", ErrLeaveNotFound
	}

	valid, err := isLeaveTransitionValid(leave.Status, status)
	if err != nil {
		return "", err
	}
	if !valid {
		return rejectedTransitionMessage(string(status), string(leave.Status)), nil
	}

	changed, err := u.leaveRepo.UpdateStatus(tx, id, status)
	if err != nil {
		u.log.Warnf("Failed to update leave status: %+v", err)
		return "", err
	}
	if changed != 1 {
		return "", ErrLeaveStatusUpdateFail
	}

	// Approval withdraws the slots already generated inside the leave.
	if status == entity.LeaveStatusApproved {
		if err := u.cascadeApprovedLeave(tx, leave); err != nil {
			return "", err
		}
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return "", err
	}
	return successMessageForLeaveStatusChange(status), nil
}

// cascadeApprovedLeave reconciles generated slots with an approved leave.
// Slots are only generated up to the configured horizon, so dates beyond it
// need no work. Inside the clamped window: AVAILABLE slots are deleted,
// RE_AVAILABLE slots are cancelled, BOOKED slots are cancelled together with
// their live appointments. CANCELLED slots stay as they are.
func (u *leaveUsecase) cascadeApprovedLeave(tx *gorm.DB, leave *entity.DoctorLeave) error {
	today := timeslot.DateOnly(u.now())
	limitDate := today.AddDate(0, 0, u.slotsConfig.MaximumGenerationDays)

	from := timeslot.DateOnly(leave.FromDate)
	to := timeslot.DateOnly(leave.ToDate)
	if from.After(limitDate) {
		u.log.Infof("Approved leave starts beyond the slot generation horizon, doctorId: %s, from: %s", leave.DoctorID, from.Format("2006-01-02"))
		return nil
	}
	if to.After(limitDate) {
		to = limitDate
	}
	if from.Before(today) {
		from = today
	}

	slots, err := u.availabilityRepo.FindByDoctorAndDateRange(tx, leave.DoctorID, from, to)
	if err != nil {
		u.log.Warnf("Failed to load slots for leave cascade: %+v", err)
		return err
	}
	if len(slots) == 0 {
		u.log.Infof("No slots found for doctorId: %s from: %s to: %s", leave.DoctorID, from.Format("2006-01-02"), to.Format("2006-01-02"))
		return nil
	}

	var slotsToDelete, slotsToCancel, appointmentsToCancel []int
	for _, slot := range slots {
		switch slot.Status {
		case entity.SlotStatusAvailable:
			slotsToDelete = append(slotsToDelete, slot.ID)
		case entity.SlotStatusBooked:
			slotsToCancel = append(slotsToCancel, slot.ID)
			appointmentsToCancel = append(appointmentsToCancel, slot.ID)
		case entity.SlotStatusReAvailable:
			slotsToCancel = append(slotsToCancel, slot.ID)
		}
	}

	if len(slotsToDelete) > 0 {
		if _, err := u.availabilityRepo.DeleteByIDs(tx, slotsToDelete); err != nil {
			u.log.Warnf("Failed to delete slots for leave cascade: %+v", err)
			return err
		}
	}
	if len(slotsToCancel) > 0 {
		if _, err := u.availabilityRepo.UpdateStatusBulk(tx, slotsToCancel, entity.SlotStatusCancelled); err != nil {
			u.log.Warnf("Failed to cancel slots for leave cascade: %+v", err)
			return err
		}
	}
	if len(appointmentsToCancel) > 0 {
		allowedCurrent := []entity.AppointmentStatus{entity.AppointmentStatusBooked, entity.AppointmentStatusApproved}
		if _, err := u.appointmentRepo.UpdateStatusByAvailabilityIDs(tx, appointmentsToCancel, entity.AppointmentStatusDCancelled, allowedCurrent); err != nil {
			u.log.Warnf("Failed to cancel appointments for leave cascade: %+v", err)
			return err
		}
	}
	return nil
}

func (u *leaveUsecase) List(ctx context.Context, principal Principal) ([]dto.LeaveResponse, error) {
	leaves, err := u.leaveRepo.FindByDoctorID(u.db.WithContext(ctx), principal.UserID)
	if err != nil {
		u.log.Warnf("Failed to list leaves: %+v", err)
		return nil, err
	}

	responses := make([]dto.LeaveResponse, 0, len(leaves))
	for i := range leaves {
		responses = append(responses, *toLeaveResponse(&leaves[i]))
	}
	return responses, nil
}

func toLeaveResponse(leave *entity.DoctorLeave) *dto.LeaveResponse {
	return &dto.LeaveResponse{
		ID:        leave.ID,
		FromDate:  leave.FromDate.Format("2006-01-02"),
		ToDate:    leave.ToDate.Format("2006-01-02"),
		Status:    leave.Status,
		Days:      leave.Days,
		Reason:    leave.Reason,
		CreatedAt: leave.CreatedAt,
	}
}
