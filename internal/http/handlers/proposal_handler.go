package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/proposal-backend/internal/http/handlers/common"
	"github.com/ignatzorin/proposal-backend/internal/http/middleware"
	"github.com/ignatzorin/proposal-backend/internal/models"
	"github.com/ignatzorin/proposal-backend/internal/pkg/apperror"
	"github.com/ignatzorin/proposal-backend/internal/service"
)

// ProposalHandler сохранённые предложения.
type ProposalHandler struct {
	sync *service.SyncManager
}

// NewProposalHandler создаёт хэндлер предложений.
func NewProposalHandler(sync *service.SyncManager) *ProposalHandler {
	return &ProposalHandler{sync: sync}
}

// List обслуживает GET /api/proposals. Ответ всегда массив; если хранилище
// недоступно, массив пустой и выставлен заголовок X-Store-Degraded.
func (h *ProposalHandler) List(c *gin.Context) {
	list, err := h.sync.ListProposals(c.Request.Context())
	if err != nil {
		if !apperror.IsStoreUnavailable(err) {
			common.Fail(c, err)
			return
		}
		c.Header(middleware.DegradedHeader, "true")
	}
	common.RespondJSON(c, http.StatusOK, list)
}

// Save обслуживает POST /api/proposals (вставка или замена по id).
func (h *ProposalHandler) Save(c *gin.Context) {
	var req models.SavedProposal
	if err := common.BindJSON(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	saved, err := h.sync.SaveProposal(c.Request.Context(), req)
	if err != nil {
		common.Fail(c, err)
		return
	}

	common.RespondJSON(c, http.StatusOK, saved)
}

// Delete обслуживает DELETE /api/proposals/:id.
func (h *ProposalHandler) Delete(c *gin.Context) {
	id, err := common.RequiredParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if err := h.sync.DeleteProposal(c.Request.Context(), id); err != nil {
		common.Fail(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
