package converter

import (
	"calmseek-backend/internal/delivery/dto"
	"calmseek-backend/internal/domain/entity"
)

// GroupToResponse converts a Group entity to GroupResponse DTO.
// Includes member summaries if the Members relation is loaded.
func GroupToResponse(group *entity.Group) *dto.GroupResponse {
	if group == nil {
		return nil
	}

	response := &dto.GroupResponse{
		ID:          group.ID,
		Name:        group.Name,
		Description: group.Description,
		CreatedByID: group.CreatedByID,
		CreatedAt:   group.CreatedAt,
	}

	if len(group.Members) > 0 {
		response.Members = AccountsToSummaries(group.Members)
	}

	return response
}

// GroupsToResponses converts a slice of Group entities
func GroupsToResponses(groups []entity.Group) []dto.GroupResponse {
	responses := make([]dto.GroupResponse, len(groups))
	for i, group := range groups {
		resp := GroupToResponse(&group)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

// GroupMessageToResponse converts a GroupMessage entity to its DTO
func GroupMessageToResponse(message *entity.GroupMessage) *dto.GroupMessageResponse {
	if message == nil {
		return nil
	}

	return &dto.GroupMessageResponse{
		ID:         message.ID,
		GroupID:    message.GroupID,
		SenderID:   message.SenderID,
		SenderName: message.Sender.FullName,
		Content:    message.Content,
		Timestamp:  message.Timestamp,
	}
}

// GroupMessagesToResponses converts a slice of GroupMessage entities
func GroupMessagesToResponses(messages []entity.GroupMessage) []dto.GroupMessageResponse {
	responses := make([]dto.GroupMessageResponse, len(messages))
	for i, message := range messages {
		resp := GroupMessageToResponse(&message)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

// InvitationToResponse converts an Invitation entity to its DTO
func InvitationToResponse(invitation *entity.Invitation) *dto.InvitationResponse {
	if invitation == nil {
		return nil
	}

	return &dto.InvitationResponse{
		ID:        invitation.ID,
		GroupID:   invitation.GroupID,
		GroupName: invitation.Group.Name,
		UserID:    invitation.UserID,
		Status:    string(invitation.Status),
		CreatedAt: invitation.CreatedAt,
	}
}

// InvitationsToResponses converts a slice of Invitation entities
func InvitationsToResponses(invitations []entity.Invitation) []dto.InvitationResponse {
	responses := make([]dto.InvitationResponse, len(invitations))
	for i, invitation := range invitations {
		resp := InvitationToResponse(&invitation)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
