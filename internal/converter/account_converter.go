package converter

import (
	"calmseek-backend/internal/delivery/dto"
	"calmseek-backend/internal/domain/entity"
)

// AccountToResponse converts an Account entity to AccountResponse DTO
// Includes ProviderDetail and ClientDetail if they are loaded
func AccountToResponse(account *entity.Account) *dto.AccountResponse {
	if account == nil {
		return nil
	}

	response := &dto.AccountResponse{
		ID:        account.ID,
		Username:  account.Username,
		Email:     account.Email,
		FullName:  account.FullName,
		Role:      entity.RoleName(account.RoleID),
		IsActive:  account.IsActive,
		CreatedAt: account.CreatedAt,
		UpdatedAt: account.UpdatedAt,
	}

	if account.ProviderDetail != nil {
		response.ProviderDetail = ProviderDetailToResponse(account.ProviderDetail)
	}

	if account.ClientDetail != nil {
		response.ClientDetail = &dto.ClientDetailResponse{
			UserID:      account.ClientDetail.UserID,
			PhoneNumber: account.ClientDetail.PhoneNumber,
			Bio:         account.ClientDetail.Bio,
		}
	}

	return response
}

// AccountToSummary converts an Account entity to the compact list shape
func AccountToSummary(account *entity.Account) *dto.AccountSummaryResponse {
	if account == nil {
		return nil
	}
	return &dto.AccountSummaryResponse{
		ID:       account.ID,
		Username: account.Username,
		FullName: account.FullName,
		Role:     entity.RoleName(account.RoleID),
	}
}

// AccountsToSummaries converts a slice of Account entities to summaries
func AccountsToSummaries(accounts []entity.Account) []dto.AccountSummaryResponse {
	summaries := make([]dto.AccountSummaryResponse, len(accounts))
	for i, account := range accounts {
		summary := AccountToSummary(&account)
		if summary != nil {
			summaries[i] = *summary
		}
	}
	return summaries
}
