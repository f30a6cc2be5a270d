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

// AdminHandler groups the admin-only operations: holiday management and
// deciding doctor leave requests.
type AdminHandler struct {
	holidayUsecase usecase.HolidayUsecase
	leaveUsecase   usecase.LeaveUsecase
	auditService   service.AuditService
	validator      *validator.CustomValidator
}

func NewAdminHandler(holidayUsecase usecase.HolidayUsecase, leaveUsecase usecase.LeaveUsecase, auditService service.AuditService, validator *validator.CustomValidator) *AdminHandler {
	return &AdminHandler{
		holidayUsecase: holidayUsecase,
		leaveUsecase:   leaveUsecase,
		auditService:   auditService,
		validator:      validator,
	}
}

func (h *AdminHandler) AddHoliday(w http.ResponseWriter, r *http.Request) {
	var req dto.HolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	holiday, err := h.holidayUsecase.Add(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidDateFormat:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		case usecase.ErrHolidayOnSunday:
			response.Error(w, http.StatusBadRequest, "Sundays are already non working days", nil)
		case usecase.ErrHolidayAlreadyExists:
			response.Error(w, http.StatusConflict, "Holiday already exists on this date", nil)
		default:
			response.InternalServerError(w, "Failed to add holiday")
		}
		return
	}

	if userID, ok := middleware.GetUserIDFromContext(r.Context()); ok {
		h.auditService.Log(r.Context(), &userID, entity.AuditActionHolidayCreate, entity.JSON{"date": req.Date, "name": req.Name})
	}
	response.Success(w, http.StatusCreated, "Holiday added successfully", holiday)
}

func (h *AdminHandler) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid holiday ID", nil)
		return
	}

	if err := h.holidayUsecase.Delete(r.Context(), id); err != nil {
		switch err {
		case usecase.ErrHolidayNotFound:
			response.NotFound(w, "Holiday not found")
		default:
			response.InternalServerError(w, "Failed to delete holiday")
		}
		return
	}

	if userID, ok := middleware.GetUserIDFromContext(r.Context()); ok {
		h.auditService.Log(r.Context(), &userID, entity.AuditActionHolidayDelete, entity.JSON{"holiday_id": id})
	}
	response.Success(w, http.StatusOK, "Holiday deleted successfully", nil)
}

func (h *AdminHandler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	holidays, err := h.holidayUsecase.List(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list holidays")
		return
	}

	response.Success(w, http.StatusOK, "Holidays retrieved successfully", holidays)
}

// ChangeLeaveStatus decides a doctor's leave request. The role path segment
// names whose leave is being decided and currently only doctors have leaves.
func (h *AdminHandler) ChangeLeaveStatus(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	role := entity.RoleName(vars["role"])

	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid leave ID", nil)
		return
	}

	var req dto.ChangeLeaveStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	message, err := h.leaveUsecase.ChangeStatus(r.Context(), role, id, req.Status)
	if err != nil {
		switch err {
		case usecase.ErrInvalidRole:
			response.Error(w, http.StatusBadRequest, "Leaves can only be managed for doctors", nil)
		case usecase.ErrLeaveNotFound:
			response.NotFound(w, "Leave not found")
		case usecase.ErrInvalidStatusRequested:
			response.Error(w, http.StatusBadRequest, "Leave can only be approved or rejected", nil)
		case usecase.ErrLeaveStatusUpdateFail:
			response.Error(w, http.StatusConflict, "Leave status changed concurrently, please retry", nil)
		default:
			response.InternalServerError(w, "Failed to change leave status")
		}
		return
	}

	if userID, ok := middleware.GetUserIDFromContext(r.Context()); ok {
		h.auditService.Log(r.Context(), &userID, entity.AuditActionLeaveStatus, entity.JSON{"leave_id": id, "status": req.Status})
	}
	response.Success(w, http.StatusOK, message, dto.StatusChangeResponse{Message: message})
}
