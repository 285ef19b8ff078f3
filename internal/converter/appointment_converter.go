package converter

import (
	"calmseek-backend/internal/delivery/dto"
	"calmseek-backend/internal/domain/entity"
)

// AppointmentToResponse converts an Appointment entity to its DTO
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:              appointment.ID,
		UserID:          appointment.UserID,
		UserName:        appointment.User.FullName,
		AppointmentType: string(appointment.AppointmentType),
		Comments:        appointment.Comments,
		BookedOn:        appointment.BookedOn,
	}

	// Include slot info if available
	if appointment.TimeSlot.ID != 0 {
		response.TimeSlot = TimeSlotToResponse(&appointment.TimeSlot)
	}

	return response
}

// AppointmentsToResponses converts a slice of Appointment entities
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i, appointment := range appointments {
		resp := AppointmentToResponse(&appointment)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
