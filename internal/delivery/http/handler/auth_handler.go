package handler

import (
	"encoding/json"
	"net/http"

	"smarthealth/internal/delivery/dto"
	"smarthealth/internal/delivery/http/middleware"
	"smarthealth/internal/domain/entity"
	"smarthealth/internal/service"
	"smarthealth/internal/usecase"
	"smarthealth/pkg/jwt"
	"smarthealth/pkg/response"
	"smarthealth/pkg/validator"
)

type AuthHandler struct {
	authUsecase  usecase.AuthUsecase
	auditService service.AuditService
	validator    *validator.CustomValidator
	jwtService   *jwt.JWTService
}

func NewAuthHandler(authUsecase usecase.AuthUsecase, auditService service.AuditService, validator *validator.CustomValidator, jwtService *jwt.JWTService) *AuthHandler {
	return &AuthHandler{
		authUsecase:  authUsecase,
		auditService: auditService,
		validator:    validator,
		jwtService:   jwtService,
	}
}

func (h *AuthHandler) RegisterPatient(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterPatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	user, err := h.authUsecase.RegisterPatient(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrEmailAlreadyExists:
			response.Error(w, http.StatusConflict, "Email already exists", nil)
		case usecase.ErrInvalidDateFormat:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to register patient")
		}
		return
	}

	h.auditService.Log(r.Context(), &user.ID, entity.AuditActionUserRegister, entity.JSON{"role": string(entity.RolePatient), "email": user.Email})
	response.Success(w, http.StatusCreated, "Patient registered successfully", user)
}

func (h *AuthHandler) RegisterDoctor(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterDoctorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	user, err := h.authUsecase.RegisterDoctor(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrEmailAlreadyExists:
			response.Error(w, http.StatusConflict, "Email already exists", nil)
		default:
			response.InternalServerError(w, "Failed to register doctor")
		}
		return
	}

	h.auditService.Log(r.Context(), &user.ID, entity.AuditActionUserRegister, entity.JSON{"role": string(entity.RoleDoctor), "email": user.Email})
	response.Success(w, http.StatusCreated, "Doctor registered successfully", user)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	tokens, err := h.authUsecase.Login(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidCredentials:
			response.Error(w, http.StatusUnauthorized, "Invalid email or password", nil)
		case usecase.ErrUserInactive:
			response.Forbidden(w, "Account is deactivated")
		default:
			response.InternalServerError(w, "Failed to login")
		}
		return
	}

	h.auditService.Log(r.Context(), nil, entity.AuditActionUserLogin, entity.JSON{"email": req.Email})
	response.Success(w, http.StatusOK, "Login successful", tokens)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	tokenID, ok := middleware.GetTokenIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	json.NewDecoder(r.Body).Decode(&req)

	refreshTokenID := ""
	if req.RefreshToken != "" {
		claims, err := h.jwtService.ValidateToken(req.RefreshToken)
		if err == nil {
			refreshTokenID = claims.TokenID
		}
	}

	if err := h.authUsecase.Logout(r.Context(), tokenID, refreshTokenID); err != nil {
		response.InternalServerError(w, "Failed to logout")
		return
	}

	if userID, ok := middleware.GetUserIDFromContext(r.Context()); ok {
		h.auditService.Log(r.Context(), &userID, entity.AuditActionUserLogout, nil)
	}
	response.Success(w, http.StatusOK, "Logout successful", nil)
}

func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req dto.RefreshTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	tokens, err := h.authUsecase.RefreshToken(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidToken, usecase.ErrTokenRevoked:
			response.Unauthorized(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to refresh token")
		}
		return
	}

	response.Success(w, http.StatusOK, "Token refreshed successfully", tokens)
}

func (h *AuthHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	user, err := h.authUsecase.GetCurrentUser(r.Context(), userID)
	if err != nil {
		switch err {
		case usecase.ErrUserNotFound:
			response.NotFound(w, "User not found")
		default:
			response.InternalServerError(w, "Failed to get user")
		}
		return
	}

	response.Success(w, http.StatusOK, "User retrieved successfully", user)
}
