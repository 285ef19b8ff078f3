package converter

import (
	"calmseek-backend/internal/delivery/dto"
	"calmseek-backend/internal/domain/entity"
)

// ProviderDetailToResponse converts a ProviderDetail entity to its DTO.
// Includes the account's full name if the User relation is loaded.
func ProviderDetailToResponse(detail *entity.ProviderDetail) *dto.ProviderDetailResponse {
	if detail == nil {
		return nil
	}

	return &dto.ProviderDetailResponse{
		UserID:         detail.UserID,
		FullName:       detail.User.FullName,
		Bio:            detail.Bio,
		PhoneNumber:    detail.PhoneNumber,
		LicenseNumber:  detail.LicenseNumber,
		Specialization: string(detail.Specialization),
		IsActivated:    detail.IsActivated,
		AddressLine1:   detail.AddressLine1,
		AddressLine2:   detail.AddressLine2,
		City:           detail.City,
		State:          detail.State,
		PostalCode:     detail.PostalCode,
		PictureURL:     detail.PictureURL,
		SessionFee:     detail.SessionFee,
	}
}

// ProviderDetailsToResponses converts a slice of ProviderDetail entities
func ProviderDetailsToResponses(details []entity.ProviderDetail) []dto.ProviderDetailResponse {
	responses := make([]dto.ProviderDetailResponse, len(details))
	for i, detail := range details {
		resp := ProviderDetailToResponse(&detail)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
