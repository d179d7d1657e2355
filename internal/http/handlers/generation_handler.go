package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/proposal-backend/internal/dto"
	"github.com/ignatzorin/proposal-backend/internal/http/handlers/common"
	"github.com/ignatzorin/proposal-backend/internal/service"
)

// GenerationHandler запускает генерацию предложения.
type GenerationHandler struct {
	generation *service.GenerationService
}

// NewGenerationHandler создаёт хэндлер генерации.
func NewGenerationHandler(generation *service.GenerationService) *GenerationHandler {
	return &GenerationHandler{generation: generation}
}

// Generate обслуживает POST /api/proposals/generate.
// Ответ {firmData, content}; ничего не сохраняет.
func (h *GenerationHandler) Generate(c *gin.Context) {
	var req dto.GenerateRequest
	if err := common.BindJSON(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	result, err := h.generation.Generate(c.Request.Context(), req.FirmData, req.OnboardingID)
	if err != nil {
		common.Fail(c, err)
		return
	}

	common.RespondJSON(c, http.StatusOK, result)
}
