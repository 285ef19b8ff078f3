package converter

import (
	"calmseek-backend/internal/delivery/dto"
	"calmseek-backend/internal/domain/entity"

	"github.com/google/uuid"
)

// ContactToResponse converts a Contact entity to ContactResponse DTO.
// Includes the related account summaries if the relations are loaded.
func ContactToResponse(contact *entity.Contact) *dto.ContactResponse {
	if contact == nil {
		return nil
	}

	response := &dto.ContactResponse{
		ID:       contact.ID,
		UserID:   contact.UserID,
		FriendID: contact.FriendID,
		IsFriend: contact.IsFriend,
	}

	if contact.Friend.ID != uuid.Nil {
		response.Friend = AccountToSummary(&contact.Friend)
	}
	if contact.User.ID != uuid.Nil {
		response.User = AccountToSummary(&contact.User)
	}

	return response
}

// ContactsToResponses converts a slice of Contact entities
func ContactsToResponses(contacts []entity.Contact) []dto.ContactResponse {
	responses := make([]dto.ContactResponse, len(contacts))
	for i, contact := range contacts {
		resp := ContactToResponse(&contact)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

// DirectMessageToResponse converts a DirectMessage entity to its DTO
func DirectMessageToResponse(message *entity.DirectMessage) *dto.DirectMessageResponse {
	if message == nil {
		return nil
	}

	return &dto.DirectMessageResponse{
		ID:         message.ID,
		SenderID:   message.SenderID,
		ReceiverID: message.ReceiverID,
		Content:    message.Content,
		Timestamp:  message.Timestamp,
	}
}

// DirectMessagesToResponses converts a slice of DirectMessage entities
func DirectMessagesToResponses(messages []entity.DirectMessage) []dto.DirectMessageResponse {
	responses := make([]dto.DirectMessageResponse, len(messages))
	for i, message := range messages {
		resp := DirectMessageToResponse(&message)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
