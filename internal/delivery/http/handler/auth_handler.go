package handler

import (
	"encoding/json"
	"net/http"

	"calmseek-backend/internal/delivery/dto"
	"calmseek-backend/internal/delivery/http/middleware"
	"calmseek-backend/internal/usecase"
	"calmseek-backend/pkg/jwt"
	"calmseek-backend/pkg/response"
	"calmseek-backend/pkg/validator"
)

type AuthHandler struct {
	authUsecase usecase.AuthUsecase
	validator   *validator.CustomValidator
	jwtService  *jwt.JWTService
}

func NewAuthHandler(authUsecase usecase.AuthUsecase, validator *validator.CustomValidator, jwtService *jwt.JWTService) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		validator:   validator,
		jwtService:  jwtService,
	}
}

// RegisterClient handles client registration
// @Summary Register a new client
// @Description Register a client account with username, email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterClientRequest true "Register Client Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /auth/register/client [post]
func (h *AuthHandler) RegisterClient(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	account, err := h.authUsecase.RegisterClient(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrUsernameAlreadyExists:
			response.Conflict(w, "Username already exists")
		case usecase.ErrEmailAlreadyExists:
			response.Conflict(w, "Email already exists")
		default:
			response.InternalServerError(w, "Failed to register account")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Account registered successfully", account)
}

// RegisterProvider handles provider registration
// @Summary Register a new provider
// @Description Register a provider account with license number and specialization
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterProviderRequest true "Register Provider Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /auth/register/provider [post]
func (h *AuthHandler) RegisterProvider(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterProviderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	account, err := h.authUsecase.RegisterProvider(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrUsernameAlreadyExists:
			response.Conflict(w, "Username already exists")
		case usecase.ErrEmailAlreadyExists:
			response.Conflict(w, "Email already exists")
		case usecase.ErrLicenseAlreadyExists:
			response.Conflict(w, "License number already exists")
		case usecase.ErrInvalidSpecialization:
			response.Error(w, http.StatusBadRequest, "Unknown specialization", nil)
		default:
			response.InternalServerError(w, "Failed to register account")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Account registered successfully", account)
}

// Login handles user login
// @Summary Login
// @Description Login with username and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/login [post]
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
			response.Error(w, http.StatusUnauthorized, "Invalid username or password", nil)
		default:
			response.InternalServerError(w, "Failed to login")
		}
		return
	}

	response.Success(w, http.StatusOK, "Login successful", tokens)
}

// Logout handles user logout
// @Summary Logout
// @Description Logout and revoke tokens
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	tokenID, ok := middleware.GetTokenIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	// Get refresh token from request body if provided
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

	response.Success(w, http.StatusOK, "Logout successful", nil)
}

// RefreshToken handles token refresh
// @Summary Refresh access token
// @Description Get new access token using refresh token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh Token Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/refresh-token [post]
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
			response.Error(w, http.StatusUnauthorized, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to refresh token")
		}
		return
	}

	response.Success(w, http.StatusOK, "Token refreshed successfully", tokens)
}

// GetCurrentUser handles getting current account info
// @Summary Get current account
// @Description Get authenticated account information with role profile
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/me [get]
func (h *AuthHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	account, err := h.authUsecase.GetCurrentUser(r.Context(), userID)
	if err != nil {
		switch err {
		case usecase.ErrAccountNotFound:
			response.NotFound(w, "Account not found")
		default:
			response.InternalServerError(w, "Failed to get account info")
		}
		return
	}

	response.Success(w, http.StatusOK, "Account retrieved successfully", account)
}

// RequestPasswordReset handles password reset requests
// @Summary Request password reset
// @Description Email a single-use password reset link
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.PasswordResetRequest true "Password Reset Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /auth/password-reset [post]
func (h *AuthHandler) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req dto.PasswordResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	if err := h.authUsecase.RequestPasswordReset(r.Context(), &req); err != nil {
		switch err {
		case usecase.ErrAccountNotFound:
			response.NotFound(w, "No account matches that username and email")
		default:
			response.InternalServerError(w, "Failed to request password reset")
		}
		return
	}

	response.Success(w, http.StatusOK, "Password reset email sent", nil)
}

// ResetPassword handles password reset confirmation
// @Summary Reset password
// @Description Set a new password using a reset token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.PasswordResetConfirmRequest true "Password Reset Confirm Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /auth/password-reset/confirm [post]
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req dto.PasswordResetConfirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	if err := h.authUsecase.ResetPassword(r.Context(), &req); err != nil {
		switch err {
		case usecase.ErrInvalidResetToken:
			response.Error(w, http.StatusBadRequest, "Invalid or expired reset token", nil)
		default:
			response.InternalServerError(w, "Failed to reset password")
		}
		return
	}

	response.Success(w, http.StatusOK, "Password reset successfully", nil)
}
