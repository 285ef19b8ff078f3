package converter

import (
	"calmseek-backend/internal/delivery/dto"
	"calmseek-backend/internal/domain/entity"
)

// TimeSlotToResponse converts a TimeSlot entity to TimeSlotResponse DTO
func TimeSlotToResponse(slot *entity.TimeSlot) *dto.TimeSlotResponse {
	if slot == nil {
		return nil
	}

	return &dto.TimeSlotResponse{
		ID:           slot.ID,
		ProviderID:   slot.ProviderID,
		ProviderName: slot.Provider.FullName,
		StartTime:    slot.StartTime,
		EndTime:      slot.EndTime,
		IsAvailable:  slot.IsAvailable,
	}
}

// TimeSlotsToResponses converts a slice of TimeSlot entities
func TimeSlotsToResponses(slots []entity.TimeSlot) []dto.TimeSlotResponse {
	responses := make([]dto.TimeSlotResponse, len(slots))
	for i, slot := range slots {
		resp := TimeSlotToResponse(&slot)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
