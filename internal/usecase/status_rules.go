package usecase

import (
	"errors"
	"fmt"

	"smarthealth/internal/domain/entity"
)

var ErrInvalidStatusRequested = errors.New("invalid status in change request")

// appointmentTransitions maps actor role -> requested status -> allowed
// current statuses. A role requesting a status absent from its map is an
// invalid request; a present status with a non-matching current status is a
// legal request that gets rejected with a message instead of an error.
var appointmentTransitions = map[entity.RoleName]map[entity.AppointmentStatus][]entity.AppointmentStatus{
	entity.RolePatient: {
		entity.AppointmentStatusPCancelled: {entity.AppointmentStatusBooked, entity.AppointmentStatusApproved},
	},
	entity.RoleDoctor: {
		entity.AppointmentStatusApproved:   {entity.AppointmentStatusBooked},
		entity.AppointmentStatusDCancelled: {entity.AppointmentStatusBooked, entity.AppointmentStatusApproved},
		entity.AppointmentStatusCompleted:  {entity.AppointmentStatusApproved},
	},
	entity.RoleAdmin: {
		entity.AppointmentStatusApproved:   {entity.AppointmentStatusBooked},
		entity.AppointmentStatusDCancelled: {entity.AppointmentStatusBooked, entity.AppointmentStatusApproved},
		entity.AppointmentStatusPCancelled: {entity.AppointmentStatusBooked, entity.AppointmentStatusApproved},
		entity.AppointmentStatusCompleted:  {entity.AppointmentStatusApproved},
	},
}

// isAppointmentTransitionValid reports whether role may move an appointment
// from current to target. An unknown target for the role is an error.
func isAppointmentTransitionValid(role entity.RoleName, current, target entity.AppointmentStatus) (bool, error) {
	targets, ok := appointmentTransitions[role]
	if !ok {
		return false, nil
	}
	allowedCurrent, ok := targets[target]
	if !ok {
		return false, ErrInvalidStatusRequested
	}
	for _, s := range allowedCurrent {
		if s == current {
			return true, nil
		}
	}
	return false, nil
}

// allowedCurrentStatusesFor returns the current statuses from which an
// appointment may move to target when addressed through its slot.
func allowedCurrentStatusesFor(target entity.AppointmentStatus) ([]entity.AppointmentStatus, error) {
	switch target {
	case entity.AppointmentStatusApproved:
		return []entity.AppointmentStatus{entity.AppointmentStatusBooked}, nil
	case entity.AppointmentStatusDCancelled:
		return []entity.AppointmentStatus{entity.AppointmentStatusBooked, entity.AppointmentStatusApproved}, nil
	case entity.AppointmentStatusCompleted:
		return []entity.AppointmentStatus{entity.AppointmentStatusApproved}, nil
	default:
		return nil, ErrInvalidStatusRequested
	}
}

// isLeaveTransitionValid reports whether a leave may move from current to
// target. Only BOOKED leaves can be decided.
func isLeaveTransitionValid(current, target entity.LeaveStatus) (bool, error) {
	switch target {
	case entity.LeaveStatusApproved, entity.LeaveStatusRejected:
		return current == entity.LeaveStatusBooked, nil
	default:
		return false, ErrInvalidStatusRequested
	}
}

func successMessageForStatusChange(status entity.AppointmentStatus) string {
	switch status {
	case entity.AppointmentStatusPCancelled, entity.AppointmentStatusDCancelled:
		return "Appointment Cancelled Successfully"
	case entity.AppointmentStatusApproved:
		return "Appointment Approved Successfully"
	case entity.AppointmentStatusCompleted:
		return "Appointment Completed Successfully"
	default:
		return "Appointment Status Changed Successfully"
	}
}

func failureMessageForStatusChange(requested, current entity.AppointmentStatus) string {
	switch requested {
	case entity.AppointmentStatusDCancelled:
		return fmt.Sprintf("Not able to Cancel as current status is: %s", current)
	case entity.AppointmentStatusApproved:
		return fmt.Sprintf("Not able to Approve as current status is: %s", current)
	case entity.AppointmentStatusCompleted:
		return fmt.Sprintf("Not able to Complete as current status is: %s", current)
	default:
		return fmt.Sprintf("Not able to change status as current status is: %s", current)
	}
}

func rejectedTransitionMessage(target, current string) string {
	return fmt.Sprintf("Not able to change status to %s as current status is: %s", target, current)
}

func successMessageForLeaveStatusChange(status entity.LeaveStatus) string {
	switch status {
	case entity.LeaveStatusApproved:
		return "Leave Approved Successfully"
	case entity.LeaveStatusRejected:
		return "Leave Rejected Successfully"
	default:
		return "Leave Status Changed Successfully"
	}
}
