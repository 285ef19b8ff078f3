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

type GroupHandler struct {
	groupUsecase usecase.GroupUsecase
	validator    *validator.CustomValidator
}

func NewGroupHandler(groupUsecase usecase.GroupUsecase, validator *validator.CustomValidator) *GroupHandler {
	return &GroupHandler{
		groupUsecase: groupUsecase,
		validator:    validator,
	}
}

// CreateGroup handles creating a discussion group
// @Summary Create group
// @Description Create a group with the authenticated account as creator and first member
// @Tags Group
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateGroupRequest true "Create Group Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /groups [post]
func (h *GroupHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.CreateGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	group, err := h.groupUsecase.CreateGroup(r.Context(), userID, &req)
	if err != nil {
		response.InternalServerError(w, "Failed to create group")
		return
	}

	response.Success(w, http.StatusCreated, "Group created successfully", group)
}

// GetGroup handles fetching one group with its members
// @Summary Get group
// @Description Get a group's details including members (members only)
// @Tags Group
// @Security BearerAuth
// @Produce json
// @Param id path int true "Group ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /groups/{id} [get]
func (h *GroupHandler) GetGroup(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	groupID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid group ID", nil)
		return
	}

	group, err := h.groupUsecase.GetGroup(r.Context(), userID, groupID)
	if err != nil {
		switch err {
		case usecase.ErrGroupNotFound:
			response.NotFound(w, "Group not found")
		case usecase.ErrNotGroupMember:
			response.Forbidden(w, "You are not a member of this group")
		default:
			response.InternalServerError(w, "Failed to get group")
		}
		return
	}

	response.Success(w, http.StatusOK, "Group retrieved successfully", group)
}

// ListMyGroups handles listing the account's groups
// @Summary List own groups
// @Description List groups the authenticated account belongs to
// @Tags Group
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /groups [get]
func (h *GroupHandler) ListMyGroups(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	groups, err := h.groupUsecase.ListMyGroups(r.Context(), userID)
	if err != nil {
		response.InternalServerError(w, "Failed to list groups")
		return
	}

	response.Success(w, http.StatusOK, "Groups retrieved successfully", groups)
}

// DeleteGroup handles deleting a group
// @Summary Delete group
// @Description Delete a group with its messages and invitations (creator only)
// @Tags Group
// @Security BearerAuth
// @Produce json
// @Param id path int true "Group ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /groups/{id} [delete]
func (h *GroupHandler) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	groupID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid group ID", nil)
		return
	}

	if err := h.groupUsecase.DeleteGroup(r.Context(), userID, groupID); err != nil {
		switch err {
		case usecase.ErrGroupNotFound:
			response.NotFound(w, "Group not found")
		case usecase.ErrNotGroupCreator:
			response.Forbidden(w, "Only the group creator can delete the group")
		default:
			response.InternalServerError(w, "Failed to delete group")
		}
		return
	}

	response.Success(w, http.StatusOK, "Group deleted successfully", nil)
}

// LeaveGroup handles a member quitting a group
// @Summary Leave group
// @Description Leave a group the authenticated account belongs to
// @Tags Group
// @Security BearerAuth
// @Produce json
// @Param id path int true "Group ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /groups/{id}/leave [post]
func (h *GroupHandler) LeaveGroup(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	groupID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid group ID", nil)
		return
	}

	if err := h.groupUsecase.LeaveGroup(r.Context(), userID, groupID); err != nil {
		switch err {
		case usecase.ErrGroupNotFound:
			response.NotFound(w, "Group not found")
		case usecase.ErrCreatorCannotLeave:
			response.Error(w, http.StatusBadRequest, "Group creator cannot leave; delete the group instead", nil)
		default:
			response.InternalServerError(w, "Failed to leave group")
		}
		return
	}

	response.Success(w, http.StatusOK, "Left group successfully", nil)
}

// InviteUsers handles inviting accounts to a group
// @Summary Invite to group
// @Description Invite accounts to a group; existing members are skipped (creator only)
// @Tags Group
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Group ID"
// @Param request body dto.InviteToGroupRequest true "Invite Request"
// @Success 201 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /groups/{id}/invitations [post]
func (h *GroupHandler) InviteUsers(w http.ResponseWriter, r *http.Request) {
	creatorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	groupID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid group ID", nil)
		return
	}

	var req dto.InviteToGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	invitations, err := h.groupUsecase.InviteUsers(r.Context(), creatorID, groupID, &req)
	if err != nil {
		switch err {
		case usecase.ErrGroupNotFound:
			response.NotFound(w, "Group not found")
		case usecase.ErrNotGroupCreator:
			response.Forbidden(w, "Only the group creator can send invitations")
		case usecase.ErrAccountNotFound:
			response.NotFound(w, "Account not found")
		default:
			response.InternalServerError(w, "Failed to send invitations")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Invitations sent successfully", invitations)
}

// RespondToInvitation handles accepting or declining an invitation
// @Summary Respond to invitation
// @Description Accept or decline a pending group invitation
// @Tags Group
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Invitation ID"
// @Param request body dto.RespondInvitationRequest true "Respond Request"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /invitations/{id} [put]
func (h *GroupHandler) RespondToInvitation(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	invitationID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid invitation ID", nil)
		return
	}

	var req dto.RespondInvitationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	if err := h.groupUsecase.RespondToInvitation(r.Context(), userID, invitationID, &req); err != nil {
		switch err {
		case usecase.ErrInvitationNotFound:
			response.NotFound(w, "Invitation not found")
		case usecase.ErrInvitationNotYours:
			response.Forbidden(w, "Invitation belongs to another account")
		case usecase.ErrInvitationResolved:
			response.Conflict(w, "Invitation has already been responded to")
		default:
			response.InternalServerError(w, "Failed to respond to invitation")
		}
		return
	}

	response.Success(w, http.StatusOK, "Invitation response recorded", nil)
}

// ListMyInvitations handles listing pending invitations
// @Summary List pending invitations
// @Description List the authenticated account's pending group invitations
// @Tags Group
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /invitations [get]
func (h *GroupHandler) ListMyInvitations(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	invitations, err := h.groupUsecase.ListMyInvitations(r.Context(), userID)
	if err != nil {
		response.InternalServerError(w, "Failed to list invitations")
		return
	}

	response.Success(w, http.StatusOK, "Invitations retrieved successfully", invitations)
}

// PostMessage handles posting a message to a group
// @Summary Post group message
// @Description Post a message to a group (members only)
// @Tags Group
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Group ID"
// @Param request body dto.PostGroupMessageRequest true "Post Message Request"
// @Success 201 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /groups/{id}/messages [post]
func (h *GroupHandler) PostMessage(w http.ResponseWriter, r *http.Request) {
	senderID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	groupID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid group ID", nil)
		return
	}

	var req dto.PostGroupMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	message, err := h.groupUsecase.PostMessage(r.Context(), senderID, groupID, &req)
	if err != nil {
		switch err {
		case usecase.ErrGroupNotFound:
			response.NotFound(w, "Group not found")
		case usecase.ErrNotGroupMember:
			response.Forbidden(w, "You are not a member of this group")
		default:
			response.InternalServerError(w, "Failed to post message")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Message posted successfully", message)
}

// GetMessages handles loading a group's message history
// @Summary Get group messages
// @Description Load a group's messages, oldest first (members only)
// @Tags Group
// @Security BearerAuth
// @Produce json
// @Param id path int true "Group ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /groups/{id}/messages [get]
func (h *GroupHandler) GetMessages(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	groupID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid group ID", nil)
		return
	}

	messages, err := h.groupUsecase.GetMessages(r.Context(), userID, groupID)
	if err != nil {
		switch err {
		case usecase.ErrNotGroupMember:
			response.Forbidden(w, "You are not a member of this group")
		default:
			response.InternalServerError(w, "Failed to load messages")
		}
		return
	}

	response.Success(w, http.StatusOK, "Messages retrieved successfully", messages)
}
