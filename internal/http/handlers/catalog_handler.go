package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/proposal-backend/internal/dto"
	"github.com/ignatzorin/proposal-backend/internal/http/handlers/common"
	"github.com/ignatzorin/proposal-backend/internal/models"
)

// CatalogHandler отдаёт справочник тарифов, пакетов внедрения и функций.
type CatalogHandler struct{}

// NewCatalogHandler создаёт хэндлер каталога.
func NewCatalogHandler() *CatalogHandler {
	return &CatalogHandler{}
}

// Get обслуживает GET /api/catalog.
func (h *CatalogHandler) Get(c *gin.Context) {
	common.RespondJSON(c, http.StatusOK, dto.CatalogResponse{
		Plans:              append([]models.Plan(nil), models.Plans...),
		Languages:          []models.Language{models.LanguageEnglish, models.LanguageSpanish},
		OnboardingPackages: models.OnboardingPackages(),
		FeatureCategories:  models.FeatureCategories(),
		RetentionDays:      models.ProposalRetentionDays,
	})
}
