package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"smarthealth/internal/delivery/dto"
	"smarthealth/internal/delivery/http/middleware"
	"smarthealth/internal/domain/entity"
	"smarthealth/internal/service"
	"smarthealth/internal/usecase"
	"smarthealth/pkg/response"
	"smarthealth/pkg/validator"

	"github.com/gorilla/mux"
)

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	auditService       service.AuditService
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, auditService service.AuditService, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		auditService:       auditService,
		validator:          validator,
	}
}

func (h *AppointmentHandler) Book(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.BookAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.Book(r.Context(), principal, &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidDoctorID:
			response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient profile not found")
		case usecase.ErrSlotNotFound:
			response.NotFound(w, "Slot not found")
		case usecase.ErrDoctorSlotMismatch:
			response.Error(w, http.StatusBadRequest, "Slot does not belong to the requested doctor", nil)
		case usecase.ErrSlotNotBookable:
			response.Error(w, http.StatusConflict, "Slot is no longer available", nil)
		case usecase.ErrPastSlot:
			response.Error(w, http.StatusConflict, "Slot is in the past", nil)
		case usecase.ErrSubProfileNotFound, usecase.ErrSubProfileMismatch:
			response.Error(w, http.StatusBadRequest, "Invalid sub profile", nil)
		default:
			response.InternalServerError(w, "Failed to book appointment")
		}
		return
	}

	h.auditService.Log(r.Context(), &principal.UserID, entity.AuditActionAppointmentBook, entity.JSON{"appointment_id": appointment.ID, "availability_id": req.AvailabilityID})
	response.Success(w, http.StatusCreated, "Appointment booked successfully", appointment)
}

func (h *AppointmentHandler) List(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	appointments, err := h.appointmentUsecase.ListForPatient(r.Context(), principal)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient profile not found")
		default:
			response.InternalServerError(w, "Failed to list appointments")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

// ChangeStatus handles appointment status changes. Ownership rules and the
// admin override are derived from the authenticated role in the usecase.
func (h *AppointmentHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	var req dto.ChangeAppointmentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	message, err := h.appointmentUsecase.ChangeStatus(r.Context(), principal, id, req.Status)
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrNoAppointmentAccess:
			response.Forbidden(w, "You don't have access to this appointment")
		case usecase.ErrInvalidStatusRequested:
			response.Error(w, http.StatusBadRequest, "Requested status is not allowed for your role", nil)
		case usecase.ErrStatusUpdateFailed:
			response.Error(w, http.StatusConflict, "Appointment status changed concurrently, please retry", nil)
		default:
			response.InternalServerError(w, "Failed to change appointment status")
		}
		return
	}

	h.auditService.Log(r.Context(), &principal.UserID, entity.AuditActionAppointmentStatus, entity.JSON{"appointment_id": id, "status": req.Status})
	response.Success(w, http.StatusOK, message, dto.StatusChangeResponse{Message: message})
}

// ChangeStatusBySlot handles status changes addressed by slot id.
func (h *AppointmentHandler) ChangeStatusBySlot(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.ChangeSlotAppointmentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	message, err := h.appointmentUsecase.ChangeStatusBySlot(r.Context(), principal, &req)
	if err != nil {
		switch err {
		case usecase.ErrSlotNotFound:
			response.NotFound(w, "Slot not found")
		case usecase.ErrNoAppointmentAccess:
			response.Forbidden(w, "You don't have access to this slot")
		case usecase.ErrInvalidStatusRequested:
			response.Error(w, http.StatusBadRequest, "Requested status is not allowed for your role", nil)
		case usecase.ErrNoAppointmentForSlot:
			response.NotFound(w, "No appointment found for this slot")
		default:
			response.InternalServerError(w, "Failed to change appointment status")
		}
		return
	}

	h.auditService.Log(r.Context(), &principal.UserID, entity.AuditActionAppointmentStatus, entity.JSON{"slot_id": req.SlotID, "status": req.Status})
	response.Success(w, http.StatusOK, message, dto.StatusChangeResponse{Message: message})
}
