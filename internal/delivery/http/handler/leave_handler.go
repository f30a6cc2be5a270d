package handler

import (
	"encoding/json"
	"net/http"

	"smarthealth/internal/delivery/dto"
	"smarthealth/internal/delivery/http/middleware"
	"smarthealth/internal/domain/entity"
	"smarthealth/internal/service"
	"smarthealth/internal/usecase"
	"smarthealth/pkg/response"
	"smarthealth/pkg/validator"
)

type LeaveHandler struct {
	leaveUsecase usecase.LeaveUsecase
	auditService service.AuditService
	validator    *validator.CustomValidator
}

func NewLeaveHandler(leaveUsecase usecase.LeaveUsecase, auditService service.AuditService, validator *validator.CustomValidator) *LeaveHandler {
	return &LeaveHandler{
		leaveUsecase: leaveUsecase,
		auditService: auditService,
		validator:    validator,
	}
}

func (h *LeaveHandler) Apply(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.ApplyLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	leave, err := h.leaveUsecase.Apply(r.Context(), principal, &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidRole:
			response.Forbidden(w, "Only doctors can apply for leave")
		case usecase.ErrInvalidDateFormat, usecase.ErrInvalidLeaveRange:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrLeaveOverlap:
			response.Error(w, http.StatusConflict, "You have booked appointments in the requested period", nil)
		default:
			response.InternalServerError(w, "Failed to apply for leave")
		}
		return
	}

	h.auditService.Log(r.Context(), &principal.UserID, entity.AuditActionLeaveApply, entity.JSON{"leave_id": leave.ID, "from": req.FromDate, "to": req.ToDate})
	response.Success(w, http.StatusCreated, "Leave applied successfully", leave)
}

func (h *LeaveHandler) List(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipalFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	leaves, err := h.leaveUsecase.List(r.Context(), principal)
	if err != nil {
		response.InternalServerError(w, "Failed to list leaves")
		return
	}

	response.Success(w, http.StatusOK, "Leaves retrieved successfully", leaves)
}
