package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/proposal-backend/internal/dto"
	"github.com/ignatzorin/proposal-backend/internal/http/handlers/common"
	"github.com/ignatzorin/proposal-backend/internal/http/middleware"
	"github.com/ignatzorin/proposal-backend/internal/models"
	"github.com/ignatzorin/proposal-backend/internal/pkg/apperror"
	"github.com/ignatzorin/proposal-backend/internal/service"
)

// AccountExecutiveHandler управляет командой менеджеров.
type AccountExecutiveHandler struct {
	sync *service.SyncManager
}

// NewAccountExecutiveHandler создаёт хэндлер команды.
func NewAccountExecutiveHandler(sync *service.SyncManager) *AccountExecutiveHandler {
	return &AccountExecutiveHandler{sync: sync}
}

// List обслуживает GET /api/account-executives. Если хранилище недоступно,
// отдаётся состав из памяти с заголовком X-Store-Degraded.
func (h *AccountExecutiveHandler) List(c *gin.Context) {
	team, err := h.sync.ListAccountExecutives(c.Request.Context())
	if err != nil {
		if !apperror.IsStoreUnavailable(err) {
			common.Fail(c, err)
			return
		}
		c.Header(middleware.DegradedHeader, "true")
	}
	common.RespondJSON(c, http.StatusOK, team)
}

// Replace обслуживает PUT /api/account-executives (весь список).
func (h *AccountExecutiveHandler) Replace(c *gin.Context) {
	var req []models.AccountExecutive
	if err := common.BindJSON(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	team, err := h.sync.SaveAccountExecutives(c.Request.Context(), req)
	if err != nil {
		common.Fail(c, err)
		return
	}
	common.RespondJSON(c, http.StatusOK, team)
}

// Add обслуживает POST /api/account-executives.
func (h *AccountExecutiveHandler) Add(c *gin.Context) {
	var req dto.AddAccountExecutiveRequest
	if err := common.BindJSON(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	ae, err := h.sync.AddAccountExecutive(c.Request.Context(), req.Name, req.Email)
	if err != nil {
		common.Fail(c, err)
		return
	}
	common.RespondJSON(c, http.StatusCreated, ae)
}

// Remove обслуживает DELETE /api/account-executives/:id.
func (h *AccountExecutiveHandler) Remove(c *gin.Context) {
	id, err := common.RequiredParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	team, err := h.sync.RemoveAccountExecutive(c.Request.Context(), id)
	if err != nil {
		common.Fail(c, err)
		return
	}
	common.RespondJSON(c, http.StatusOK, team)
}

// Reconcile обслуживает POST /api/account-executives/reconcile.
func (h *AccountExecutiveHandler) Reconcile(c *gin.Context) {
	team, err := h.sync.ReconcileAccountExecutives(c.Request.Context())
	if err != nil {
		common.Fail(c, err)
		return
	}
	common.RespondJSON(c, http.StatusOK, team)
}
