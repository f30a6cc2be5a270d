package usecase

import (
	"context"
	"testing"

	"smarthealth/internal/delivery/dto"
	"smarthealth/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyLeaveCountsEffectiveDays(t *testing.T) {
	db := newTestDB(t)
	u := newLeaveUsecaseForTest(t, db, fixedClock())
	doctor := seedDoctor(t, db)
	principal := Principal{UserID: doctor.UserID, Role: entity.RoleDoctor}

	// 2026-03-08 is a Sunday and 2026-03-06 is a holiday; 7 calendar days
	// shrink to 5 effective ones.
	require.NoError(t, db.Create(&entity.Holiday{HolidayDate: date(2026, 3, 6), Name: "Holiday"}).Error)

	leave, err := u.Apply(context.Background(), principal, &dto.ApplyLeaveRequest{
		FromDate: "2026-03-03",
		ToDate:   "2026-03-09",
		Reason:   "conference",
	})
	require.NoError(t, err)
	assert.Equal(t, 5, leave.Days)
	assert.Equal(t, entity.LeaveStatusBooked, leave.Status)
}

func TestApplyLeaveRejectsNonDoctors(t *testing.T) {
	db := newTestDB(t)
	u := newLeaveUsecaseForTest(t, db, fixedClock())
	patient := seedPatient(t, db)

	_, err := u.Apply(context.Background(), Principal{UserID: patient.UserID, Role: entity.RolePatient}, &dto.ApplyLeaveRequest{
		FromDate: "2026-03-03",
		ToDate:   "2026-03-04",
	})
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestApplyLeaveInvalidRange(t *testing.T) {
	db := newTestDB(t)
	u := newLeaveUsecaseForTest(t, db, fixedClock())
	doctor := seedDoctor(t, db)
	principal := Principal{UserID: doctor.UserID, Role: entity.RoleDoctor}

	_, err := u.Apply(context.Background(), principal, &dto.ApplyLeaveRequest{
		FromDate: "2026-03-05",
		ToDate:   "2026-03-03",
	})
	assert.ErrorIs(t, err, ErrInvalidLeaveRange)
}

func TestApplyLeaveRejectsOverlap(t *testing.T) {
	db := newTestDB(t)
	u := newLeaveUsecaseForTest(t, db, fixedClock())
	doctor := seedDoctor(t, db)
	principal := Principal{UserID: doctor.UserID, Role: entity.RoleDoctor}

	_, err := u.Apply(context.Background(), principal, &dto.ApplyLeaveRequest{
		FromDate: "2026-03-03",
		ToDate:   "2026-03-05",
	})
	require.NoError(t, err)

	_, err = u.Apply(context.Background(), principal, &dto.ApplyLeaveRequest{
		FromDate: "2026-03-05",
		ToDate:   "2026-03-07",
	})
	assert.ErrorIs(t, err, ErrLeaveOverlap)

	// A rejected leave does not block a new request.
	require.NoError(t, db.Model(&entity.DoctorLeave{}).
		Where("doctor_id = ?", doctor.UserID).
		Update("status", entity.LeaveStatusRejected).Error)

	_, err = u.Apply(context.Background(), principal, &dto.ApplyLeaveRequest{
		FromDate: "2026-03-05",
		ToDate:   "2026-03-07",
	})
	require.NoError(t, err)
}

func TestChangeLeaveStatusApprovalCascades(t *testing.T) {
	db := newTestDB(t)
	u := newLeaveUsecaseForTest(t, db, fixedClock())
	doctor := seedDoctor(t, db)
	patient := seedPatient(t, db)

	available := seedSlot(t, db, doctor.UserID, date(2026, 3, 4), "09:00", "09:30", entity.SlotStatusAvailable)
	reAvailable := seedSlot(t, db, doctor.UserID, date(2026, 3, 4), "10:00", "10:30", entity.SlotStatusReAvailable)
	booked := seedSlot(t, db, doctor.UserID, date(2026, 3, 5), "09:00", "09:30", entity.SlotStatusBooked)
	cancelled := seedSlot(t, db, doctor.UserID, date(2026, 3, 5), "10:00", "10:30", entity.SlotStatusCancelled)
	outside := seedSlot(t, db, doctor.UserID, date(2026, 3, 7), "09:00", "09:30", entity.SlotStatusAvailable)

	appointment := &entity.Appointment{AvailabilityID: booked.ID, PatientID: patient.UserID, Status: entity.AppointmentStatusApproved}
	require.NoError(t, db.Create(appointment).Error)

	leave := &entity.DoctorLeave{
		DoctorID: doctor.UserID,
		FromDate: date(2026, 3, 4),
		ToDate:   date(2026, 3, 5),
		Status:   entity.LeaveStatusBooked,
		Days:     2,
	}
	require.NoError(t, db.Create(leave).Error)

	msg, err := u.ChangeStatus(context.Background(), entity.RoleDoctor, leave.ID, entity.LeaveStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, "Leave Approved Successfully", msg)

	// AVAILABLE slots are gone.
	var count int64
	require.NoError(t, db.Model(&entity.Availability{}).Where("id = ?", available.ID).Count(&count).Error)
	assert.Zero(t, count)

	// RE_AVAILABLE and BOOKED slots are cancelled. Each read gets its own
	// destination struct; a populated primary key would leak into the next
	// query's conditions.
	var gotReAvailable, gotBooked entity.Availability
	require.NoError(t, db.First(&gotReAvailable, reAvailable.ID).Error)
	assert.Equal(t, entity.SlotStatusCancelled, gotReAvailable.Status)
	require.NoError(t, db.First(&gotBooked, booked.ID).Error)
	assert.Equal(t, entity.SlotStatusCancelled, gotBooked.Status)

	// Already cancelled slots and slots outside the leave stay untouched.
	var gotCancelled, gotOutside entity.Availability
	require.NoError(t, db.First(&gotCancelled, cancelled.ID).Error)
	assert.Equal(t, entity.SlotStatusCancelled, gotCancelled.Status)
	require.NoError(t, db.First(&gotOutside, outside.ID).Error)
	assert.Equal(t, entity.SlotStatusAvailable, gotOutside.Status)

	// The live appointment is cancelled on the doctor's behalf.
	var updated entity.Appointment
	require.NoError(t, db.First(&updated, appointment.ID).Error)
	assert.Equal(t, entity.AppointmentStatusDCancelled, updated.Status)
}

func TestChangeLeaveStatusBeyondHorizonSkipsCascade(t *testing.T) {
	db := newTestDB(t)
	// Horizon is 15 days from 2026-03-02; the leave starts on 2026-04-01.
	u := newLeaveUsecaseForTest(t, db, fixedClock())
	doctor := seedDoctor(t, db)

	slot := seedSlot(t, db, doctor.UserID, date(2026, 4, 1), "09:00", "09:30", entity.SlotStatusAvailable)
	leave := &entity.DoctorLeave{
		DoctorID: doctor.UserID,
		FromDate: date(2026, 4, 1),
		ToDate:   date(2026, 4, 3),
		Status:   entity.LeaveStatusBooked,
		Days:     3,
	}
	require.NoError(t, db.Create(leave).Error)

	_, err := u.ChangeStatus(context.Background(), entity.RoleDoctor, leave.ID, entity.LeaveStatusApproved)
	require.NoError(t, err)

	var unchanged entity.Availability
	require.NoError(t, db.First(&unchanged, slot.ID).Error)
	assert.Equal(t, entity.SlotStatusAvailable, unchanged.Status)
}

func TestChangeLeaveStatusRejectionDoesNotCascade(t *testing.T) {
	db := newTestDB(t)
	u := newLeaveUsecaseForTest(t, db, fixedClock())
	doctor := seedDoctor(t, db)

	slot := seedSlot(t, db, doctor.UserID, date(2026, 3, 4), "09:00", "09:30", entity.SlotStatusAvailable)
	leave := &entity.DoctorLeave{
		DoctorID: doctor.UserID,
		FromDate: date(2026, 3, 4),
		ToDate:   date(2026, 3, 4),
		Status:   entity.LeaveStatusBooked,
		Days:     1,
	}
	require.NoError(t, db.Create(leave).Error)

	msg, err := u.ChangeStatus(context.Background(), entity.RoleDoctor, leave.ID, entity.LeaveStatusRejected)
	require.NoError(t, err)
	assert.Equal(t, "Leave Rejected Successfully", msg)

	var unchanged entity.Availability
	require.NoError(t, db.First(&unchanged, slot.ID).Error)
	assert.Equal(t, entity.SlotStatusAvailable, unchanged.Status)
}

func TestChangeLeaveStatusGuards(t *testing.T) {
	db := newTestDB(t)
	u := newLeaveUsecaseForTest(t, db, fixedClock())
	doctor := seedDoctor(t, db)

	leave := &entity.DoctorLeave{
		DoctorID: doctor.UserID,
		FromDate: date(2026, 3, 4),
		ToDate:   date(2026, 3, 4),
		Status:   entity.LeaveStatusApproved,
		Days:     1,
	}
	require.NoError(t, db.Create(leave).Error)

	_, err := u.ChangeStatus(context.Background(), entity.RolePatient, leave.ID, entity.LeaveStatusApproved)
	assert.ErrorIs(t, err, ErrInvalidRole)

	_, err = u.ChangeStatus(context.Background(), entity.RoleDoctor, leave.ID, entity.LeaveStatusBooked)
	assert.ErrorIs(t, err, ErrInvalidStatusRequested)

	_, err = u.ChangeStatus(context.Background(), entity.RoleDoctor, leave.ID+1, entity.LeaveStatusApproved)
	assert.ErrorIs(t, err, ErrLeaveNotFound)

	// Deciding an already decided leave returns a message, not an error.
	msg, err := u.ChangeStatus(context.Background(), entity.RoleDoctor, leave.ID, entity.LeaveStatusRejected)
	require.NoError(t, err)
	assert.Equal(t, "Not able to change status to REJECTED as current status is: APPROVED", msg)
}

func TestListLeaves(t *testing.T) {
	db := newTestDB(t)
	u := newLeaveUsecaseForTest(t, db, fixedClock())
	doctor := seedDoctor(t, db)
	principal := Principal{UserID: doctor.UserID, Role: entity.RoleDoctor}

	_, err := u.Apply(context.Background(), principal, &dto.ApplyLeaveRequest{
		FromDate: "2026-03-03",
		ToDate:   "2026-03-04",
		Reason:   "family",
	})
	require.NoError(t, err)

	leaves, err := u.List(context.Background(), principal)
	require.NoError(t, err)
	require.Len(t, leaves, 1)
	assert.Equal(t, "2026-03-03", leaves[0].FromDate)
	assert.Equal(t, "family", leaves[0].Reason)
}
