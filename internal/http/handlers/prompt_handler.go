package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/proposal-backend/internal/ai"
	"github.com/ignatzorin/proposal-backend/internal/dto"
	"github.com/ignatzorin/proposal-backend/internal/http/handlers/common"
	"github.com/ignatzorin/proposal-backend/internal/service"
)

// PromptHandler общий шаблон промпта.
type PromptHandler struct {
	sync *service.SyncManager
}

// NewPromptHandler создаёт хэндлер шаблона.
func NewPromptHandler(sync *service.SyncManager) *PromptHandler {
	return &PromptHandler{sync: sync}
}

// Get обслуживает GET /api/settings/prompt. 404, если шаблон не настроен.
func (h *PromptHandler) Get(c *gin.Context) {
	state := h.sync.PromptTemplate()
	if !state.IsCustom {
		common.RespondNotFound(c, "no custom prompt template")
		return
	}
	common.RespondJSON(c, http.StatusOK, toPromptResponse(state))
}

// Default обслуживает GET /api/settings/prompt/default.
func (h *PromptHandler) Default(c *gin.Context) {
	common.RespondJSON(c, http.StatusOK, dto.PromptResponse{
		Value:        ai.DefaultPromptTemplate,
		Placeholders: ai.Placeholders,
	})
}

// Put обслуживает PUT /api/settings/prompt.
func (h *PromptHandler) Put(c *gin.Context) {
	var req dto.PromptRequest
	if err := common.BindJSON(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	state, err := h.sync.SetPromptTemplate(c.Request.Context(), req.Value)
	if err != nil {
		common.Fail(c, err)
		return
	}
	common.RespondJSON(c, http.StatusOK, toPromptResponse(state))
}

// Reset обслуживает DELETE /api/settings/prompt.
func (h *PromptHandler) Reset(c *gin.Context) {
	state, err := h.sync.ResetPromptTemplate(c.Request.Context())
	if err != nil {
		common.Fail(c, err)
		return
	}
	common.RespondJSON(c, http.StatusOK, toPromptResponse(state))
}

func toPromptResponse(state service.PromptState) dto.PromptResponse {
	return dto.PromptResponse{Value: state.Value, IsCustom: state.IsCustom}
}
