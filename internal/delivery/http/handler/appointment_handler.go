package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"calmseek-backend/internal/delivery/dto"
	"calmseek-backend/internal/delivery/http/middleware"
	"calmseek-backend/internal/usecase"
	"calmseek-backend/pkg/response"
	"calmseek-backend/pkg/validator"

	"github.com/gorilla/mux"
)

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

// Book handles booking an appointment
// @Summary Book appointment
// @Description Book an available time slot (client only)
// @Tags Appointment
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.BookAppointmentRequest true "Book Appointment Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /appointments [post]
func (h *AppointmentHandler) Book(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
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

	appointment, err := h.appointmentUsecase.Book(r.Context(), userID, &req)
	if err != nil {
		switch err {
		case usecase.ErrSlotNotFound:
			response.NotFound(w, "Time slot not found")
		case usecase.ErrSlotNotAvailable:
			response.Conflict(w, "Time slot is no longer available")
		case usecase.ErrInvalidAppointmentType:
			response.Error(w, http.StatusBadRequest, "Unknown appointment type", nil)
		default:
			response.InternalServerError(w, "Failed to book appointment")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Appointment booked successfully", appointment)
}

// Cancel handles cancelling an appointment
// @Summary Cancel appointment
// @Description Cancel an appointment and release its slot. Allowed for the booking client and the slot's provider
// @Tags Appointment
// @Security BearerAuth
// @Produce json
// @Param id path int true "Appointment ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /appointments/{id} [delete]
func (h *AppointmentHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	appointmentID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	if err := h.appointmentUsecase.Cancel(r.Context(), actorID, appointmentID); err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrNotAppointmentOwner:
			response.Forbidden(w, "Appointment belongs to another account")
		default:
			response.InternalServerError(w, "Failed to cancel appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment cancelled successfully", nil)
}

// Reschedule handles moving an appointment to a new slot
// @Summary Reschedule appointment
// @Description Move an appointment to a different available slot (client only)
// @Tags Appointment
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Appointment ID"
// @Param request body dto.RescheduleAppointmentRequest true "Reschedule Request"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /appointments/{id}/reschedule [put]
func (h *AppointmentHandler) Reschedule(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	appointmentID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	var req dto.RescheduleAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.Reschedule(r.Context(), userID, appointmentID, &req)
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrNotAppointmentOwner:
			response.Forbidden(w, "Appointment belongs to another account")
		case usecase.ErrSlotNotFound:
			response.NotFound(w, "Time slot not found")
		case usecase.ErrSlotNotAvailable:
			response.Conflict(w, "Time slot is no longer available")
		case usecase.ErrInvalidAppointmentType:
			response.Error(w, http.StatusBadRequest, "Unknown appointment type", nil)
		default:
			response.InternalServerError(w, "Failed to reschedule appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment rescheduled successfully", appointment)
}

// ListMine handles listing the client's own appointments
// @Summary List own appointments
// @Description List the authenticated client's appointments
// @Tags Appointment
// @Security BearerAuth
// @Produce json
// @Param upcoming query bool false "Only upcoming appointments"
// @Success 200 {object} response.Response
// @Router /appointments [get]
func (h *AppointmentHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	upcomingOnly := r.URL.Query().Get("upcoming") == "true"

	appointments, err := h.appointmentUsecase.ListForUser(r.Context(), userID, upcomingOnly)
	if err != nil {
		response.InternalServerError(w, "Failed to list appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

// ListForProvider handles listing bookings against the provider's slots
// @Summary List provider appointments
// @Description List appointments booked against the authenticated provider's slots
// @Tags Appointment
// @Security BearerAuth
// @Produce json
// @Param upcoming query bool false "Only upcoming appointments"
// @Success 200 {object} response.Response
// @Router /appointments/provider [get]
func (h *AppointmentHandler) ListForProvider(w http.ResponseWriter, r *http.Request) {
	providerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	upcomingOnly := r.URL.Query().Get("upcoming") == "true"

	appointments, err := h.appointmentUsecase.ListForProvider(r.Context(), providerID, upcomingOnly)
	if err != nil {
		response.InternalServerError(w, "Failed to list appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}
