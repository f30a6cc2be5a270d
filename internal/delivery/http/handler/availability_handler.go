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

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AvailabilityHandler struct {
	availabilityUsecase usecase.AvailabilityUsecase
	auditService        service.AuditService
	validator           *validator.CustomValidator
}

func NewAvailabilityHandler(availabilityUsecase usecase.AvailabilityUsecase, auditService service.AuditService, validator *validator.CustomValidator) *AvailabilityHandler {
	return &AvailabilityHandler{
		availabilityUsecase: availabilityUsecase,
		auditService:        auditService,
		validator:           validator,
	}
}

// Generate creates availability slots for the authenticated doctor according
// to the requested generation mode.
func (h *AvailabilityHandler) Generate(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.GenerateSlotsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.availabilityUsecase.Generate(r.Context(), principal, &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidMode, usecase.ErrInvalidDateFormat, usecase.ErrInvalidTimeRange:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrPreferenceNotFound:
			response.NotFound(w, "Generation preference not found")
		case usecase.ErrIncompleteDoctorProfile:
			response.Forbidden(w, "Complete your doctor profile before generating slots")
		default:
			response.InternalServerError(w, "Failed to generate slots")
		}
		return
	}

	h.auditService.Log(r.Context(), &principal.UserID, entity.AuditActionSlotsGenerate, entity.JSON{"mode": result.Mode, "created": result.Created})
	response.Success(w, http.StatusOK, "Slots generated successfully", result)
}

func (h *AvailabilityHandler) GetPreference(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	pref, err := h.availabilityUsecase.GetPreference(r.Context(), principal)
	if err != nil {
		switch err {
		case usecase.ErrPreferenceNotFound:
			response.NotFound(w, "Generation preference not found")
		default:
			response.InternalServerError(w, "Failed to get preference")
		}
		return
	}

	response.Success(w, http.StatusOK, "Preference retrieved successfully", pref)
}

func (h *AvailabilityHandler) ActivatePreference(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	if err := h.availabilityUsecase.ActivatePreference(r.Context(), principal); err != nil {
		switch err {
		case usecase.ErrPreferenceNotFound:
			response.NotFound(w, "Generation preference not found")
		default:
			response.InternalServerError(w, "Failed to activate preference")
		}
		return
	}

	response.Success(w, http.StatusOK, "Preference activated successfully", nil)
}

// ListMySlots lists the authenticated doctor's own slots.
func (h *AvailabilityHandler) ListMySlots(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	h.listSlots(w, r, principal.UserID)
}

// ListDoctorSlots lists a given doctor's slots, used by patients when booking.
func (h *AvailabilityHandler) ListDoctorSlots(w http.ResponseWriter, r *http.Request) {
	doctorID, err := uuid.Parse(mux.Vars(r)["doctorId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	h.listSlots(w, r, doctorID)
}

func (h *AvailabilityHandler) listSlots(w http.ResponseWriter, r *http.Request, doctorID uuid.UUID) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")

	slots, err := h.availabilityUsecase.ListSlots(r.Context(), doctorID, from, to)
	if err != nil {
		switch err {
		case usecase.ErrInvalidDateFormat:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to list slots")
		}
		return
	}

	response.Success(w, http.StatusOK, "Slots retrieved successfully", slots)
}

func (h *AvailabilityHandler) DeleteSlot(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid slot ID", nil)
		return
	}

	if err := h.availabilityUsecase.DeleteSlot(r.Context(), principal, id); err != nil {
		switch err {
		case usecase.ErrSlotNotDeletable:
			response.Error(w, http.StatusConflict, "Only available slots can be deleted", nil)
		default:
			response.InternalServerError(w, "Failed to delete slot")
		}
		return
	}

	h.auditService.Log(r.Context(), &principal.UserID, entity.AuditActionSlotDelete, entity.JSON{"slot_id": id})
	response.Success(w, http.StatusOK, "Slot deleted successfully", nil)
}

func (h *AvailabilityHandler) BulkDeleteSlots(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.BulkDeleteSlotsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	deleted, err := h.availabilityUsecase.BulkDeleteSlots(r.Context(), principal, &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidDateFormat, usecase.ErrInvalidTimeRange:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to delete slots")
		}
		return
	}

	h.auditService.Log(r.Context(), &principal.UserID, entity.AuditActionSlotDelete, entity.JSON{"deleted": deleted})
	response.Success(w, http.StatusOK, "Slots deleted successfully", map[string]int64{"deleted": deleted})
}
