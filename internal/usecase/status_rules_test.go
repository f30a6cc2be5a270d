package usecase

import (
	"testing"

	"smarthealth/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppointmentTransitionsPatient(t *testing.T) {
	ok, err := isAppointmentTransitionValid(entity.RolePatient, entity.AppointmentStatusBooked, entity.AppointmentStatusPCancelled)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = isAppointmentTransitionValid(entity.RolePatient, entity.AppointmentStatusApproved, entity.AppointmentStatusPCancelled)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = isAppointmentTransitionValid(entity.RolePatient, entity.AppointmentStatusCompleted, entity.AppointmentStatusPCancelled)
	require.NoError(t, err)
	assert.False(t, ok)

	// Patients cannot approve, complete or doctor-cancel.
	for _, target := range []entity.AppointmentStatus{
		entity.AppointmentStatusApproved,
		entity.AppointmentStatusCompleted,
		entity.AppointmentStatusDCancelled,
	} {
		_, err := isAppointmentTransitionValid(entity.RolePatient, entity.AppointmentStatusBooked, target)
		assert.ErrorIs(t, err, ErrInvalidStatusRequested)
	}
}

func TestAppointmentTransitionsDoctor(t *testing.T) {
	cases := []struct {
		current entity.AppointmentStatus
		target  entity.AppointmentStatus
		allowed bool
	}{
		{entity.AppointmentStatusBooked, entity.AppointmentStatusApproved, true},
		{entity.AppointmentStatusApproved, entity.AppointmentStatusApproved, false},
		{entity.AppointmentStatusBooked, entity.AppointmentStatusDCancelled, true},
		{entity.AppointmentStatusApproved, entity.AppointmentStatusDCancelled, true},
		{entity.AppointmentStatusCompleted, entity.AppointmentStatusDCancelled, false},
		{entity.AppointmentStatusApproved, entity.AppointmentStatusCompleted, true},
		{entity.AppointmentStatusBooked, entity.AppointmentStatusCompleted, false},
	}
	for _, c := range cases {
		ok, err := isAppointmentTransitionValid(entity.RoleDoctor, c.current, c.target)
		require.NoError(t, err)
		assert.Equal(t, c.allowed, ok, "current=%s target=%s", c.current, c.target)
	}

	_, err := isAppointmentTransitionValid(entity.RoleDoctor, entity.AppointmentStatusBooked, entity.AppointmentStatusPCancelled)
	assert.ErrorIs(t, err, ErrInvalidStatusRequested)
}

func TestAppointmentTransitionsAdmin(t *testing.T) {
	// Admins combine the doctor's powers with the patient cancellation.
	ok, err := isAppointmentTransitionValid(entity.RoleAdmin, entity.AppointmentStatusBooked, entity.AppointmentStatusPCancelled)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = isAppointmentTransitionValid(entity.RoleAdmin, entity.AppointmentStatusApproved, entity.AppointmentStatusCompleted)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = isAppointmentTransitionValid(entity.RoleAdmin, entity.AppointmentStatusBooked, entity.AppointmentStatusRejected)
	assert.ErrorIs(t, err, ErrInvalidStatusRequested)
}

func TestAllowedCurrentStatusesFor(t *testing.T) {
	allowed, err := allowedCurrentStatusesFor(entity.AppointmentStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, []entity.AppointmentStatus{entity.AppointmentStatusBooked}, allowed)

	allowed, err = allowedCurrentStatusesFor(entity.AppointmentStatusDCancelled)
	require.NoError(t, err)
	assert.Equal(t, []entity.AppointmentStatus{entity.AppointmentStatusBooked, entity.AppointmentStatusApproved}, allowed)

	allowed, err = allowedCurrentStatusesFor(entity.AppointmentStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, []entity.AppointmentStatus{entity.AppointmentStatusApproved}, allowed)

	_, err = allowedCurrentStatusesFor(entity.AppointmentStatusPCancelled)
	assert.ErrorIs(t, err, ErrInvalidStatusRequested)
}

func TestLeaveTransitions(t *testing.T) {
	ok, err := isLeaveTransitionValid(entity.LeaveStatusBooked, entity.LeaveStatusApproved)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = isLeaveTransitionValid(entity.LeaveStatusBooked, entity.LeaveStatusRejected)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = isLeaveTransitionValid(entity.LeaveStatusApproved, entity.LeaveStatusRejected)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = isLeaveTransitionValid(entity.LeaveStatusBooked, entity.LeaveStatusBooked)
	assert.ErrorIs(t, err, ErrInvalidStatusRequested)
}

func TestStatusChangeMessages(t *testing.T) {
	assert.Equal(t, "Appointment Cancelled Successfully", successMessageForStatusChange(entity.AppointmentStatusPCancelled))
	assert.Equal(t, "Appointment Cancelled Successfully", successMessageForStatusChange(entity.AppointmentStatusDCancelled))
	assert.Equal(t, "Appointment Approved Successfully", successMessageForStatusChange(entity.AppointmentStatusApproved))
	assert.Equal(t, "Appointment Completed Successfully", successMessageForStatusChange(entity.AppointmentStatusCompleted))

	assert.Equal(t, "Not able to Approve as current status is: D_CANCELLED",
		failureMessageForStatusChange(entity.AppointmentStatusApproved, entity.AppointmentStatusDCancelled))
	assert.Equal(t, "Not able to Cancel as current status is: COMPLETED",
		failureMessageForStatusChange(entity.AppointmentStatusDCancelled, entity.AppointmentStatusCompleted))

	assert.Equal(t, "Not able to change status to APPROVED as current status is: COMPLETED",
		rejectedTransitionMessage("APPROVED", "COMPLETED"))
}
