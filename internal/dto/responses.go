package dto

import "github.com/ignatzorin/proposal-backend/internal/models"

// ErrorResponse стандартный ответ с ошибкой.
type ErrorResponse struct {
	Error string `json:"error"`
}

// CatalogResponse тарифы, пакеты внедрения и категории функций.
type CatalogResponse struct {
	Plans              []models.Plan              `json:"plans"`
	Languages          []models.Language          `json:"languages"`
	OnboardingPackages []models.OnboardingPackage `json:"onboardingPackages"`
	FeatureCategories  []models.FeatureCategory   `json:"featureCategories"`
	RetentionDays      int                        `json:"retentionDays"`
}

// PromptResponse текущий шаблон промпта.
type PromptResponse struct {
	Value        string   `json:"value"`
	IsCustom     bool     `json:"isCustom"`
	Placeholders []string `json:"placeholders,omitempty"`
}

// TranscriptResponse текст загруженной расшифровки звонка.
type TranscriptResponse struct {
	FileName   string `json:"fileName"`
	Transcript string `json:"transcript"`
	Truncated  bool   `json:"truncated"`
}
