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

type ContactHandler struct {
	contactUsecase usecase.ContactUsecase
	validator      *validator.CustomValidator
}

func NewContactHandler(contactUsecase usecase.ContactUsecase, validator *validator.CustomValidator) *ContactHandler {
	return &ContactHandler{
		contactUsecase: contactUsecase,
		validator:      validator,
	}
}

// SendFriendRequest handles sending a friend request
// @Summary Send friend request
// @Description Send a friend request to another account
// @Tags Contact
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.FriendRequestRequest true "Friend Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /contacts/requests [post]
func (h *ContactHandler) SendFriendRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.FriendRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	contact, err := h.contactUsecase.SendFriendRequest(r.Context(), userID, req.FriendID)
	if err != nil {
		switch err {
		case usecase.ErrSelfContact:
			response.Error(w, http.StatusBadRequest, "Cannot befriend yourself", nil)
		case usecase.ErrAccountNotFound:
			response.NotFound(w, "Account not found")
		case usecase.ErrAlreadyFriends:
			response.Conflict(w, "Already friends")
		case usecase.ErrRequestAlreadySent:
			response.Conflict(w, "Friend request already sent")
		default:
			response.InternalServerError(w, "Failed to send friend request")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Friend request sent successfully", contact)
}

// AcceptFriendRequest handles accepting a pending friend request
// @Summary Accept friend request
// @Description Accept a pending friend request from the given account
// @Tags Contact
// @Security BearerAuth
// @Produce json
// @Param id path string true "Requester account ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /contacts/requests/{id}/accept [post]
func (h *ContactHandler) AcceptFriendRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	requesterID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid account ID", nil)
		return
	}

	if err := h.contactUsecase.AcceptFriendRequest(r.Context(), userID, requesterID); err != nil {
		switch err {
		case usecase.ErrRequestNotFound:
			response.NotFound(w, "Friend request not found")
		default:
			response.InternalServerError(w, "Failed to accept friend request")
		}
		return
	}

	response.Success(w, http.StatusOK, "Friend request accepted", nil)
}

// RejectFriendRequest handles rejecting a pending friend request
// @Summary Reject friend request
// @Description Reject a pending friend request from the given account
// @Tags Contact
// @Security BearerAuth
// @Produce json
// @Param id path string true "Requester account ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /contacts/requests/{id}/reject [post]
func (h *ContactHandler) RejectFriendRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	requesterID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid account ID", nil)
		return
	}

	if err := h.contactUsecase.RejectFriendRequest(r.Context(), userID, requesterID); err != nil {
		switch err {
		case usecase.ErrRequestNotFound:
			response.NotFound(w, "Friend request not found")
		default:
			response.InternalServerError(w, "Failed to reject friend request")
		}
		return
	}

	response.Success(w, http.StatusOK, "Friend request rejected", nil)
}

// RemoveFriend handles removing an existing friend
// @Summary Remove friend
// @Description Remove the friendship with the given account
// @Tags Contact
// @Security BearerAuth
// @Produce json
// @Param id path string true "Friend account ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /contacts/friends/{id} [delete]
func (h *ContactHandler) RemoveFriend(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	friendID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid account ID", nil)
		return
	}

	if err := h.contactUsecase.RemoveFriend(r.Context(), userID, friendID); err != nil {
		switch err {
		case usecase.ErrNotFriends:
			response.NotFound(w, "Friendship not found")
		default:
			response.InternalServerError(w, "Failed to remove friend")
		}
		return
	}

	response.Success(w, http.StatusOK, "Friend removed successfully", nil)
}

// ListFriends handles listing confirmed friends
// @Summary List friends
// @Description List the authenticated account's confirmed friends
// @Tags Contact
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /contacts/friends [get]
func (h *ContactHandler) ListFriends(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	friends, err := h.contactUsecase.ListFriends(r.Context(), userID)
	if err != nil {
		response.InternalServerError(w, "Failed to list friends")
		return
	}

	response.Success(w, http.StatusOK, "Friends retrieved successfully", friends)
}

// ListPendingRequests handles listing incoming friend requests
// @Summary List pending friend requests
// @Description List friend requests awaiting the authenticated account's response
// @Tags Contact
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /contacts/requests [get]
func (h *ContactHandler) ListPendingRequests(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	requests, err := h.contactUsecase.ListPendingRequests(r.Context(), userID)
	if err != nil {
		response.InternalServerError(w, "Failed to list friend requests")
		return
	}

	response.Success(w, http.StatusOK, "Friend requests retrieved successfully", requests)
}

// SendMessage handles sending a direct message
// @Summary Send direct message
// @Description Send a direct message to another account
// @Tags Contact
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.SendMessageRequest true "Send Message Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /messages [post]
func (h *ContactHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	senderID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	message, err := h.contactUsecase.SendMessage(r.Context(), senderID, &req)
	if err != nil {
		switch err {
		case usecase.ErrSelfMessage:
			response.Error(w, http.StatusBadRequest, "Cannot message yourself", nil)
		case usecase.ErrAccountNotFound:
			response.NotFound(w, "Account not found")
		default:
			response.InternalServerError(w, "Failed to send message")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Message sent successfully", message)
}

// GetConversation handles loading a two-way message history
// @Summary Get conversation
// @Description Load the message history with another account, oldest first
// @Tags Contact
// @Security BearerAuth
// @Produce json
// @Param id path string true "Partner account ID"
// @Success 200 {object} response.Response
// @Router /messages/{id} [get]
func (h *ContactHandler) GetConversation(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	partnerID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid account ID", nil)
		return
	}

	messages, err := h.contactUsecase.GetConversation(r.Context(), userID, partnerID)
	if err != nil {
		response.InternalServerError(w, "Failed to load conversation")
		return
	}

	response.Success(w, http.StatusOK, "Conversation retrieved successfully", messages)
}
