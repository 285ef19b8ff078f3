package handler

import (
	"encoding/json"
	"net/http"

	"calmseek-backend/internal/delivery/dto"
	"calmseek-backend/internal/delivery/http/middleware"
	"calmseek-backend/internal/usecase"
	"calmseek-backend/pkg/response"
	"calmseek-backend/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AccountHandler struct {
	accountUsecase usecase.AccountUsecase
	validator      *validator.CustomValidator
}

func NewAccountHandler(accountUsecase usecase.AccountUsecase, validator *validator.CustomValidator) *AccountHandler {
	return &AccountHandler{
		accountUsecase: accountUsecase,
		validator:      validator,
	}
}

// UpdateClientProfile handles client profile updates
// @Summary Update client profile
// @Description Update the authenticated client's profile fields
// @Tags Account
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.UpdateClientProfileRequest true "Update Client Profile Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /profile/client [put]
func (h *AccountHandler) UpdateClientProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.UpdateClientProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	account, err := h.accountUsecase.UpdateClientProfile(r.Context(), userID, &req)
	if err != nil {
		switch err {
		case usecase.ErrAccountNotFound, usecase.ErrProfileNotFound:
			response.NotFound(w, "Profile not found")
		default:
			response.InternalServerError(w, "Failed to update profile")
		}
		return
	}

	response.Success(w, http.StatusOK, "Profile updated successfully", account)
}

// UpdateProviderProfile handles provider profile updates
// @Summary Update provider profile
// @Description Update the authenticated provider's profile fields
// @Tags Account
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.UpdateProviderProfileRequest true "Update Provider Profile Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /profile/provider [put]
func (h *AccountHandler) UpdateProviderProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.UpdateProviderProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	account, err := h.accountUsecase.UpdateProviderProfile(r.Context(), userID, &req)
	if err != nil {
		switch err {
		case usecase.ErrAccountNotFound, usecase.ErrProfileNotFound:
			response.NotFound(w, "Profile not found")
		case usecase.ErrInvalidSpecialization:
			response.Error(w, http.StatusBadRequest, "Unknown specialization", nil)
		default:
			response.InternalServerError(w, "Failed to update profile")
		}
		return
	}

	response.Success(w, http.StatusOK, "Profile updated successfully", account)
}

// AddFavorite handles adding a provider to favorites
// @Summary Add favorite provider
// @Description Add a provider to the authenticated account's favorites
// @Tags Account
// @Security BearerAuth
// @Produce json
// @Param id path string true "Provider ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /favorites/{id} [post]
func (h *AccountHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	favoriteID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid provider ID", nil)
		return
	}

	if err := h.accountUsecase.AddFavorite(r.Context(), userID, favoriteID); err != nil {
		switch err {
		case usecase.ErrAccountNotFound:
			response.NotFound(w, "Account not found")
		case usecase.ErrNotAProvider:
			response.Error(w, http.StatusBadRequest, "Account is not a provider", nil)
		case usecase.ErrSelfFavorite:
			response.Error(w, http.StatusBadRequest, "Cannot favorite yourself", nil)
		default:
			response.InternalServerError(w, "Failed to add favorite")
		}
		return
	}

	response.Success(w, http.StatusOK, "Favorite added successfully", nil)
}

// RemoveFavorite handles removing a provider from favorites
// @Summary Remove favorite provider
// @Description Remove a provider from the authenticated account's favorites
// @Tags Account
// @Security BearerAuth
// @Produce json
// @Param id path string true "Provider ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /favorites/{id} [delete]
func (h *AccountHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	favoriteID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid provider ID", nil)
		return
	}

	if err := h.accountUsecase.RemoveFavorite(r.Context(), userID, favoriteID); err != nil {
		switch err {
		case usecase.ErrAccountNotFound:
			response.NotFound(w, "Account not found")
		default:
			response.InternalServerError(w, "Failed to remove favorite")
		}
		return
	}

	response.Success(w, http.StatusOK, "Favorite removed successfully", nil)
}

// ListFavorites handles listing favorite providers
// @Summary List favorite providers
// @Description List the authenticated account's favorite providers
// @Tags Account
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /favorites [get]
func (h *AccountHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	favorites, err := h.accountUsecase.ListFavorites(r.Context(), userID)
	if err != nil {
		response.InternalServerError(w, "Failed to list favorites")
		return
	}

	response.Success(w, http.StatusOK, "Favorites retrieved successfully", favorites)
}
