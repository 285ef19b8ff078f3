package handler

import (
	"net/http"

	"calmseek-backend/internal/delivery/http/middleware"
	"calmseek-backend/internal/domain/entity"
	"calmseek-backend/internal/usecase"
	"calmseek-backend/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type ProviderHandler struct {
	providerUsecase usecase.ProviderUsecase
}

func NewProviderHandler(providerUsecase usecase.ProviderUsecase) *ProviderHandler {
	return &ProviderHandler{providerUsecase: providerUsecase}
}

// ListProviders handles the provider directory listing
// @Summary Browse providers
// @Description List activated providers, filterable by specialization and address
// @Tags Provider
// @Security BearerAuth
// @Produce json
// @Param specialization query string false "Specialization filter"
// @Param address query string false "Address free-text filter"
// @Success 200 {object} response.Response
// @Router /providers [get]
func (h *ProviderHandler) ListProviders(w http.ResponseWriter, r *http.Request) {
	filter := &entity.ProviderFilter{
		Specialization: r.URL.Query().Get("specialization"),
		Address:        r.URL.Query().Get("address"),
	}

	providers, err := h.providerUsecase.ListProviders(r.Context(), filter)
	if err != nil {
		response.InternalServerError(w, "Failed to list providers")
		return
	}

	response.Success(w, http.StatusOK, "Providers retrieved successfully", providers)
}

// GetProvider handles fetching a single provider profile
// @Summary Get provider
// @Description Get a provider's public profile by account ID
// @Tags Provider
// @Security BearerAuth
// @Produce json
// @Param id path string true "Provider ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /providers/{id} [get]
func (h *ProviderHandler) GetProvider(w http.ResponseWriter, r *http.Request) {
	providerID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid provider ID", nil)
		return
	}

	provider, err := h.providerUsecase.GetProvider(r.Context(), providerID)
	if err != nil {
		switch err {
		case usecase.ErrProviderNotFound:
			response.NotFound(w, "Provider not found")
		default:
			response.InternalServerError(w, "Failed to get provider")
		}
		return
	}

	response.Success(w, http.StatusOK, "Provider retrieved successfully", provider)
}

// ActivateProvider handles admin license verification
// @Summary Activate provider
// @Description Mark a provider's license as verified (admin only)
// @Tags Provider
// @Security BearerAuth
// @Produce json
// @Param id path string true "Provider ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/providers/{id}/activate [post]
func (h *ProviderHandler) ActivateProvider(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetUserIDFromContext(r.Context()); !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	providerID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid provider ID", nil)
		return
	}

	if err := h.providerUsecase.ActivateProvider(r.Context(), providerID); err != nil {
		switch err {
		case usecase.ErrProviderNotFound:
			response.NotFound(w, "Provider not found")
		default:
			response.InternalServerError(w, "Failed to activate provider")
		}
		return
	}

	response.Success(w, http.StatusOK, "Provider activated successfully", nil)
}
