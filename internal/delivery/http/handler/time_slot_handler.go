package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"calmseek-backend/internal/delivery/dto"
	"calmseek-backend/internal/delivery/http/middleware"
	"calmseek-backend/internal/domain/entity"
	"calmseek-backend/internal/usecase"
	"calmseek-backend/pkg/response"
	"calmseek-backend/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type TimeSlotHandler struct {
	slotUsecase usecase.TimeSlotUsecase
	validator   *validator.CustomValidator
}

func NewTimeSlotHandler(slotUsecase usecase.TimeSlotUsecase, validator *validator.CustomValidator) *TimeSlotHandler {
	return &TimeSlotHandler{
		slotUsecase: slotUsecase,
		validator:   validator,
	}
}

// CreateSlot handles publishing a single time slot
// @Summary Create time slot
// @Description Publish a single bookable time slot (provider only)
// @Tags TimeSlot
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateSlotRequest true "Create Slot Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /slots [post]
func (h *TimeSlotHandler) CreateSlot(w http.ResponseWriter, r *http.Request) {
	providerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.CreateSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	slot, err := h.slotUsecase.CreateSlot(r.Context(), providerID, &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidSlotWindow, usecase.ErrSlotInPast:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to create time slot")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Time slot created successfully", slot)
}

// CreateRecurringSlots handles publishing recurring time slots
// @Summary Create recurring time slots
// @Description Publish one slot per weekday over the next N weeks (provider only)
// @Tags TimeSlot
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateRecurringSlotsRequest true "Create Recurring Slots Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /slots/recurring [post]
func (h *TimeSlotHandler) CreateRecurringSlots(w http.ResponseWriter, r *http.Request) {
	providerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.CreateRecurringSlotsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	slots, err := h.slotUsecase.CreateRecurringSlots(r.Context(), providerID, &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidSlotWindow, usecase.ErrInvalidTimeOfDay, usecase.ErrNoRecurringMatches:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to create recurring slots")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Recurring slots created successfully", slots)
}

// DeleteSlot handles removing a published slot
// @Summary Delete time slot
// @Description Delete an owned time slot along with any booking (provider only)
// @Tags TimeSlot
// @Security BearerAuth
// @Produce json
// @Param id path int true "Slot ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /slots/{id} [delete]
func (h *TimeSlotHandler) DeleteSlot(w http.ResponseWriter, r *http.Request) {
	providerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	slotID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid slot ID", nil)
		return
	}

	if err := h.slotUsecase.DeleteSlot(r.Context(), providerID, slotID); err != nil {
		switch err {
		case usecase.ErrSlotNotFound:
			response.NotFound(w, "Time slot not found")
		case usecase.ErrNotSlotOwner:
			response.Forbidden(w, "Time slot belongs to another provider")
		default:
			response.InternalServerError(w, "Failed to delete time slot")
		}
		return
	}

	response.Success(w, http.StatusOK, "Time slot deleted successfully", nil)
}

// ListMySlots handles listing the provider's own slots
// @Summary List own time slots
// @Description List every slot the authenticated provider has published
// @Tags TimeSlot
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /slots/mine [get]
func (h *TimeSlotHandler) ListMySlots(w http.ResponseWriter, r *http.Request) {
	providerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	slots, err := h.slotUsecase.ListProviderSlots(r.Context(), providerID)
	if err != nil {
		response.InternalServerError(w, "Failed to list time slots")
		return
	}

	response.Success(w, http.StatusOK, "Time slots retrieved successfully", slots)
}

// ListAvailableSlots handles browsing open slots
// @Summary List available time slots
// @Description List open slots, filterable by provider and date
// @Tags TimeSlot
// @Security BearerAuth
// @Produce json
// @Param provider_id query string false "Provider ID filter"
// @Param date query string false "Date filter (YYYY-MM-DD)"
// @Success 200 {object} response.Response
// @Router /slots [get]
func (h *TimeSlotHandler) ListAvailableSlots(w http.ResponseWriter, r *http.Request) {
	filter := &entity.SlotFilter{
		Date: r.URL.Query().Get("date"),
	}

	if raw := r.URL.Query().Get("provider_id"); raw != "" {
		providerID, err := uuid.Parse(raw)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid provider ID", nil)
			return
		}
		filter.ProviderID = &providerID
	}

	slots, err := h.slotUsecase.ListAvailableSlots(r.Context(), filter)
	if err != nil {
		response.InternalServerError(w, "Failed to list available slots")
		return
	}

	response.Success(w, http.StatusOK, "Available slots retrieved successfully", slots)
}
