package dto

import "github.com/ignatzorin/proposal-backend/internal/models"

// GenerateRequest тело POST /api/proposals/generate.
// onboardingId позволяет выбрать пакет внедрения по id каталога.
type GenerateRequest struct {
	models.FirmData
	OnboardingID string `json:"onboardingId"`
}

// AddAccountExecutiveRequest тело POST /api/account-executives.
type AddAccountExecutiveRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
}

// PromptRequest тело PUT /api/settings/prompt.
type PromptRequest struct {
	Value string `json:"value"`
}
